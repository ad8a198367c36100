package safety

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an item or request cannot be located.
var ErrNotFound = errors.New("not found")

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

// Item is a piece of safety equipment employees can request.
type Item struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// RequestStatus tracks an item request through its workflow.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusDelivered RequestStatus = "delivered"
)

// ValidStatus reports whether s is a known request status.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDelivered:
		return true
	}
	return false
}

// Request is one employee's request for a safety item.
type Request struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	ItemID     uuid.UUID     `db:"item_id" json:"itemId"`
	ItemName   string        `db:"item_name" json:"itemName"`
	Requester  string        `db:"requester" json:"requester"`
	Department string        `db:"department" json:"department"`
	Quantity   int           `db:"quantity" json:"quantity"`
	Note       string        `db:"note" json:"note,omitempty"`
	Status     RequestStatus `db:"status" json:"status"`
	CreatedAt  time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updatedAt"`
}

// ItemInput carries the fields accepted when creating or updating an item.
type ItemInput struct {
	Name        string
	Description string
	ImageURL    string
}

// RequestInput carries the fields of a public request submission.
type RequestInput struct {
	ItemID     uuid.UUID
	Requester  string
	Department string
	Quantity   int
	Note       string
}

// RequestFilter narrows a request listing.
type RequestFilter struct {
	Status *RequestStatus
}

// Repository defines persistence for items and requests.
type Repository interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (Item, error)
	CreateItem(ctx context.Context, item Item) (Item, error)
	UpdateItem(ctx context.Context, item Item) (Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error

	ListRequests(ctx context.Context, filter RequestFilter) ([]Request, error)
	CreateRequest(ctx context.Context, req Request) (Request, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus, updatedAt time.Time) (Request, error)
}
