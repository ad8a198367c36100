package inquiry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an inquiry cannot be located.
var ErrNotFound = errors.New("inquiry not found")

// ErrValidation is returned when input validation fails.
var ErrValidation = errors.New("validation error")

// ValidationError wraps a validation message so callers can distinguish
// client errors from internal failures.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Inquiry is a contact-form submission from the public site.
type Inquiry struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Contact    string     `db:"contact" json:"contact,omitempty"`
	Message    string     `db:"message" json:"message"`
	Answer     string     `db:"answer" json:"answer,omitempty"`
	AnsweredAt *time.Time `db:"answered_at" json:"answeredAt,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

// CreateInput carries the fields of a public submission.
type CreateInput struct {
	Name    string
	Contact string
	Message string
}

// Repository defines inquiry persistence.
type Repository interface {
	List(ctx context.Context) ([]Inquiry, error)
	Create(ctx context.Context, inq Inquiry) (Inquiry, error)
	Answer(ctx context.Context, id uuid.UUID, answer string, answeredAt time.Time) (Inquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
