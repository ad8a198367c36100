package inquiry

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
	mu      sync.RWMutex
	records map[uuid.UUID]Inquiry
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[uuid.UUID]Inquiry)}
}

func (r *InMemoryRepository) List(_ context.Context) ([]Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Inquiry, 0, len(r.records))
	for _, inq := range r.records {
		out = append(out, inq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Create(_ context.Context, inq Inquiry) (Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[inq.ID] = inq
	return inq, nil
}

func (r *InMemoryRepository) Answer(_ context.Context, id uuid.UUID, answer string, answeredAt time.Time) (Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inq, ok := r.records[id]
	if !ok {
		return Inquiry{}, ErrNotFound
	}
	inq.Answer = answer
	inq.AnsweredAt = &answeredAt
	r.records[id] = inq
	return inq, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return ErrNotFound
	}
	delete(r.records, id)
	return nil
}
