package announce

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an announcement cannot be located.
var ErrNotFound = errors.New("announcement not found")

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

// Announcement is a notice shown on the public board.
type Announcement struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Pinned    bool      `db:"pinned" json:"pinned"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateInput carries the fields accepted when creating an announcement.
type CreateInput struct {
	Title   string
	Content string
	Pinned  bool
}

// UpdateInput carries the fields accepted when updating an announcement.
type UpdateInput struct {
	Title   string
	Content string
	Pinned  bool
}

// Repository defines announcement persistence.
type Repository interface {
	List(ctx context.Context, limit int) ([]Announcement, error)
	Get(ctx context.Context, id uuid.UUID) (Announcement, error)
	Create(ctx context.Context, a Announcement) (Announcement, error)
	Update(ctx context.Context, a Announcement) (Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
