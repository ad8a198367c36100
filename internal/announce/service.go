package announce

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxTitleLength   = 200
	maxContentLength = 20000
	defaultListLimit = 50
)

// Service orchestrates validation and persistence for announcements.
type Service struct {
	repo Repository
}

// NewService wires a Service with the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns announcements, pinned first, newest first within each group.
func (s *Service) List(ctx context.Context, limit int) ([]Announcement, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, limit)
}

// Create validates and persists a new announcement.
func (s *Service) Create(ctx context.Context, input CreateInput) (Announcement, error) {
	title, content, err := normalize(input.Title, input.Content)
	if err != nil {
		return Announcement{}, err
	}

	now := time.Now()
	created, err := s.repo.Create(ctx, Announcement{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Pinned:    input.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Announcement{}, fmt.Errorf("create announcement: %w", err)
	}
	return created, nil
}

// Update validates and applies changes to an existing announcement.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (Announcement, error) {
	title, content, err := normalize(input.Title, input.Content)
	if err != nil {
		return Announcement{}, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Announcement{}, err
	}

	existing.Title = title
	existing.Content = content
	existing.Pinned = input.Pinned
	existing.UpdatedAt = time.Now()

	return s.repo.Update(ctx, existing)
}

// Delete removes an announcement.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func normalize(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return "", "", &ValidationError{Message: "title is required"}
	}
	if len(title) > maxTitleLength {
		return "", "", &ValidationError{Message: fmt.Sprintf("title too long (max %d)", maxTitleLength)}
	}
	if content == "" {
		return "", "", &ValidationError{Message: "content is required"}
	}
	if len(content) > maxContentLength {
		return "", "", &ValidationError{Message: fmt.Sprintf("content too long (max %d)", maxContentLength)}
	}
	return title, content, nil
}
