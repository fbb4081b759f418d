package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Idea represents a user-submitted idea.
type Idea struct {
	ID          uuid.UUID
	Title       string
	Summary     string
	Description string
	Tags        []string
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IdeaRepository defines persistence operations for ideas.
type IdeaRepository interface {
	Create(ctx context.Context, idea *Idea) error
	GetByID(ctx context.Context, id uuid.UUID) (*Idea, error)
	// List returns ideas newest-first. A limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]Idea, error)
	Update(ctx context.Context, idea *Idea) error
	Delete(ctx context.Context, id uuid.UUID) error
}
