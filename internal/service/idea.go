package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ideadrop/api/internal/domain"
)

// IdeaService handles idea CRUD, validation, and ownership checks.
type IdeaService struct {
	ideas domain.IdeaRepository
}

// NewIdeaService creates a new IdeaService.
func NewIdeaService(ideas domain.IdeaRepository) *IdeaService {
	return &IdeaService{ideas: ideas}
}

// List returns ideas newest-first, capped at limit when limit > 0.
func (s *IdeaService) List(ctx context.Context, limit int) ([]domain.Idea, error) {
	return s.ideas.List(ctx, limit)
}

// GetByID returns a single idea.
func (s *IdeaService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	return s.ideas.GetByID(ctx, id)
}

// Create validates and stores a new idea owned by the given user.
func (s *IdeaService) Create(ctx context.Context, userID uuid.UUID, idea *domain.Idea) error {
	normalize(idea)
	if err := validate(idea); err != nil {
		return err
	}

	idea.UserID = userID
	if err := s.ideas.Create(ctx, idea); err != nil {
		return fmt.Errorf("create idea: %w", err)
	}
	return nil
}

// Update replaces all mutable fields of an existing idea. Only the owner
// may update; the read-then-write is not atomic against a concurrent
// delete, which surfaces as ErrNotFound from the repository.
func (s *IdeaService) Update(ctx context.Context, userID uuid.UUID, idea *domain.Idea) error {
	existing, err := s.ideas.GetByID(ctx, idea.ID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrForbidden
	}

	normalize(idea)
	if err := validate(idea); err != nil {
		return err
	}

	idea.UserID = existing.UserID
	idea.CreatedAt = existing.CreatedAt
	if err := s.ideas.Update(ctx, idea); err != nil {
		return fmt.Errorf("update idea: %w", err)
	}
	return nil
}

// Delete removes an idea after an ownership check.
func (s *IdeaService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	existing, err := s.ideas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrForbidden
	}

	return s.ideas.Delete(ctx, id)
}

func normalize(idea *domain.Idea) {
	idea.Title = strings.TrimSpace(idea.Title)
	idea.Summary = strings.TrimSpace(idea.Summary)
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
}

func validate(idea *domain.Idea) error {
	if idea.Title == "" || idea.Summary == "" || idea.Description == "" {
		return fmt.Errorf("%w: title, summary, and description are required", domain.ErrInvalidInput)
	}
	return nil
}
