package safety

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxNameLength = 100
	maxNoteLength = 1000
	maxQuantity   = 100
)

// Service orchestrates validation and persistence for safety items and
// item requests.
type Service struct {
	repo Repository
}

// NewService wires a Service with the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListItems returns the requestable equipment catalogue.
func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	return s.repo.ListItems(ctx)
}

// CreateItem validates and persists a catalogue entry.
func (s *Service) CreateItem(ctx context.Context, input ItemInput) (Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Item{}, &ValidationError{Message: "item name is required"}
	}
	if len(name) > maxNameLength {
		return Item{}, &ValidationError{Message: fmt.Sprintf("item name too long (max %d)", maxNameLength)}
	}

	item := Item{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		CreatedAt:   time.Now(),
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}
	return created, nil
}

// UpdateItem validates and applies changes to a catalogue entry.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Item{}, &ValidationError{Message: "item name is required"}
	}

	existing, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return Item{}, err
	}

	existing.Name = name
	existing.Description = strings.TrimSpace(input.Description)
	existing.ImageURL = strings.TrimSpace(input.ImageURL)

	return s.repo.UpdateItem(ctx, existing)
}

// DeleteItem removes a catalogue entry.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}

// CreateRequest validates and records a public item request. New requests
// always start pending.
func (s *Service) CreateRequest(ctx context.Context, input RequestInput) (Request, error) {
	requester := strings.TrimSpace(input.Requester)
	if requester == "" {
		return Request{}, &ValidationError{Message: "requester name is required"}
	}
	if input.Quantity < 1 || input.Quantity > maxQuantity {
		return Request{}, &ValidationError{Message: fmt.Sprintf("quantity must be between 1 and %d", maxQuantity)}
	}
	if len(input.Note) > maxNoteLength {
		return Request{}, &ValidationError{Message: fmt.Sprintf("note too long (max %d)", maxNoteLength)}
	}

	item, err := s.repo.GetItem(ctx, input.ItemID)
	if err != nil {
		return Request{}, err
	}

	now := time.Now()
	req := Request{
		ID:         uuid.New(),
		ItemID:     item.ID,
		ItemName:   item.Name,
		Requester:  requester,
		Department: strings.TrimSpace(input.Department),
		Quantity:   input.Quantity,
		Note:       strings.TrimSpace(input.Note),
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.CreateRequest(ctx, req)
	if err != nil {
		return Request{}, fmt.Errorf("create request: %w", err)
	}
	return created, nil
}

// ListRequests returns requests, optionally filtered by status.
func (s *Service) ListRequests(ctx context.Context, filter RequestFilter) ([]Request, error) {
	if filter.Status != nil && !ValidStatus(*filter.Status) {
		return nil, &ValidationError{Message: "invalid status filter"}
	}
	return s.repo.ListRequests(ctx, filter)
}

// UpdateRequestStatus moves a request to a new workflow status.
func (s *Service) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus) (Request, error) {
	if !ValidStatus(status) {
		return Request{}, &ValidationError{Message: "invalid request status"}
	}
	return s.repo.UpdateRequestStatus(ctx, id, status, time.Now())
}
