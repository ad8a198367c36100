package announce

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository persists announcements to a Postgres database.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository constructs a repository backed by sqlx.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const announcementColumns = `id, title, content, pinned, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Announcement, error) {
	query := fmt.Sprintf(`
SELECT %s FROM announcements
ORDER BY pinned DESC, created_at DESC
LIMIT $1`, announcementColumns)

	var out []Announcement
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (Announcement, error) {
	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE id = $1`, announcementColumns)

	var a Announcement
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Announcement{}, ErrNotFound
		}
		return Announcement{}, fmt.Errorf("get announcement: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a Announcement) (Announcement, error) {
	const query = `
INSERT INTO announcements (id, title, content, pinned, created_at, updated_at)
VALUES (:id, :title, :content, :pinned, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return Announcement{}, fmt.Errorf("insert announcement: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a Announcement) (Announcement, error) {
	const query = `
UPDATE announcements
SET title = :title, content = :content, pinned = :pinned, updated_at = :updated_at
WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return Announcement{}, fmt.Errorf("update announcement: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return Announcement{}, ErrNotFound
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
