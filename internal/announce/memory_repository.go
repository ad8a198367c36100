package announce

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository is a thread-safe in-memory store used for local
// development and tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Announcement
}

// NewInMemoryRepository creates a repository seeded with the given announcements.
func NewInMemoryRepository(seed []Announcement) *InMemoryRepository {
	records := make(map[uuid.UUID]Announcement, len(seed))
	for _, a := range seed {
		records[a.ID] = a
	}
	return &InMemoryRepository{records: records}
}

func (r *InMemoryRepository) List(_ context.Context, limit int) ([]Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Announcement, 0, len(r.records))
	for _, a := range r.records {
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Get(_ context.Context, id uuid.UUID) (Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.records[id]
	if !ok {
		return Announcement{}, ErrNotFound
	}
	return a, nil
}

func (r *InMemoryRepository) Create(_ context.Context, a Announcement) (Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[a.ID] = a
	return a, nil
}

func (r *InMemoryRepository) Update(_ context.Context, a Announcement) (Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[a.ID]; !ok {
		return Announcement{}, ErrNotFound
	}
	r.records[a.ID] = a
	return a, nil
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
