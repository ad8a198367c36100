package inquiry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxNameLength    = 100
	maxMessageLength = 5000
	maxAnswerLength  = 5000
)

// Service orchestrates validation and persistence for inquiries.
type Service struct {
	repo Repository
}

// NewService wires a Service with the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and records a public submission.
func (s *Service) Create(ctx context.Context, input CreateInput) (Inquiry, error) {
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)

	if name == "" {
		return Inquiry{}, &ValidationError{Message: "name is required"}
	}
	if len(name) > maxNameLength {
		return Inquiry{}, &ValidationError{Message: fmt.Sprintf("name too long (max %d)", maxNameLength)}
	}
	if message == "" {
		return Inquiry{}, &ValidationError{Message: "message is required"}
	}
	if len(message) > maxMessageLength {
		return Inquiry{}, &ValidationError{Message: fmt.Sprintf("message too long (max %d)", maxMessageLength)}
	}

	created, err := s.repo.Create(ctx, Inquiry{
		ID:        uuid.New(),
		Name:      name,
		Contact:   strings.TrimSpace(input.Contact),
		Message:   message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return Inquiry{}, fmt.Errorf("create inquiry: %w", err)
	}
	return created, nil
}

// List returns all inquiries, newest first.
func (s *Service) List(ctx context.Context) ([]Inquiry, error) {
	return s.repo.List(ctx)
}

// Answer records the admin reply to an inquiry.
func (s *Service) Answer(ctx context.Context, id uuid.UUID, answer string) (Inquiry, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Inquiry{}, &ValidationError{Message: "answer is required"}
	}
	if len(answer) > maxAnswerLength {
		return Inquiry{}, &ValidationError{Message: fmt.Sprintf("answer too long (max %d)", maxAnswerLength)}
	}
	return s.repo.Answer(ctx, id, answer, time.Now())
}

// Delete removes an inquiry.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
