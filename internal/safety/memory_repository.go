package safety

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository is a thread-safe in-memory store used for local
// development and tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	items    map[uuid.UUID]Item
	requests map[uuid.UUID]Request
}

// NewInMemoryRepository creates a repository seeded with the given items.
func NewInMemoryRepository(seed []Item) *InMemoryRepository {
	items := make(map[uuid.UUID]Item, len(seed))
	for _, item := range seed {
		items[item.ID] = item
	}
	return &InMemoryRepository{
		items:    items,
		requests: make(map[uuid.UUID]Request),
	}
}

func (r *InMemoryRepository) ListItems(_ context.Context) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) GetItem(_ context.Context, id uuid.UUID) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

func (r *InMemoryRepository) CreateItem(_ context.Context, item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return item, nil
}

func (r *InMemoryRepository) UpdateItem(_ context.Context, item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return Item{}, ErrNotFound
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *InMemoryRepository) DeleteItem(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryRepository) ListRequests(_ context.Context, filter RequestFilter) ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Request, 0, len(r.requests))
	for _, req := range r.requests {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) CreateRequest(_ context.Context, req Request) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests[req.ID] = req
	return req, nil
}

func (r *InMemoryRepository) UpdateRequestStatus(_ context.Context, id uuid.UUID, status RequestStatus, updatedAt time.Time) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = updatedAt
	r.requests[id] = req
	return req, nil
}
