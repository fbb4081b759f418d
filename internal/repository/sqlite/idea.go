package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideadrop/api/internal/domain"
)

// IdeaRepository implements domain.IdeaRepository using SQLite.
// Tags are stored as a JSON array in a TEXT column.
type IdeaRepository struct {
	db *sql.DB
}

// NewIdeaRepository creates a new SQLite-backed IdeaRepository.
func NewIdeaRepository(db *DB) *IdeaRepository {
	return &IdeaRepository{db: db.SqlDB}
}

func (r *IdeaRepository) Create(ctx context.Context, idea *domain.Idea) error {
	id := uuid.New()
	now := time.Now().UTC()

	tags, err := encodeTags(idea.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO ideas (id, title, summary, description, tags, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), idea.Title, idea.Summary, idea.Description, tags,
		idea.UserID.String(), formatTime(now), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("insert idea: %w", err)
	}

	idea.ID = id
	idea.CreatedAt = now
	idea.UpdatedAt = now
	return nil
}

func (r *IdeaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, summary, description, tags, user_id, created_at, updated_at
		 FROM ideas WHERE id = ?`, id.String())

	idea, err := scanIdea(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query idea by id: %w", err)
	}
	return idea, nil
}

func (r *IdeaRepository) List(ctx context.Context, limit int) ([]domain.Idea, error) {
	query := `SELECT id, title, summary, description, tags, user_id, created_at, updated_at
	          FROM ideas ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ideas: %w", err)
	}
	defer rows.Close()

	var ideas []domain.Idea
	for rows.Next() {
		idea, err := scanIdea(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		ideas = append(ideas, *idea)
	}
	return ideas, rows.Err()
}

func (r *IdeaRepository) Update(ctx context.Context, idea *domain.Idea) error {
	now := time.Now().UTC()

	tags, err := encodeTags(idea.Tags)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE ideas SET title = ?, summary = ?, description = ?, tags = ?, updated_at = ?
		 WHERE id = ?`,
		idea.Title, idea.Summary, idea.Description, tags, formatTime(now), idea.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update idea: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	idea.UpdatedAt = now
	return nil
}

func (r *IdeaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM ideas WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanIdea(scan func(dest ...any) error) (*domain.Idea, error) {
	idea := &domain.Idea{}
	var idStr, userIDStr, tagsJSON, createdAt, updatedAt string
	err := scan(&idStr, &idea.Title, &idea.Summary, &idea.Description, &tagsJSON,
		&userIDStr, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if idea.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse idea id: %w", err)
	}
	if idea.UserID, err = uuid.Parse(userIDStr); err != nil {
		return nil, fmt.Errorf("parse idea user id: %w", err)
	}
	if idea.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if idea.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &idea.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
	return idea, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}
