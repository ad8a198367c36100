package inquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository persists inquiries to a Postgres database.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository constructs a repository backed by sqlx.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const inquiryColumns = `id, name, contact, message, answer, answered_at, created_at`

func (r *PostgresRepository) List(ctx context.Context) ([]Inquiry, error) {
	query := fmt.Sprintf(`SELECT %s FROM inquiries ORDER BY created_at DESC`, inquiryColumns)

	var out []Inquiry
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, inq Inquiry) (Inquiry, error) {
	const query = `
INSERT INTO inquiries (id, name, contact, message, answer, answered_at, created_at)
VALUES (:id, :name, :contact, :message, :answer, :answered_at, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, inq); err != nil {
		return Inquiry{}, fmt.Errorf("insert inquiry: %w", err)
	}
	return inq, nil
}

func (r *PostgresRepository) Answer(ctx context.Context, id uuid.UUID, answer string, answeredAt time.Time) (Inquiry, error) {
	query := fmt.Sprintf(`
UPDATE inquiries
SET answer = $2, answered_at = $3
WHERE id = $1
RETURNING %s`, inquiryColumns)

	var inq Inquiry
	if err := r.db.GetContext(ctx, &inq, query, id, answer, answeredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Inquiry{}, ErrNotFound
		}
		return Inquiry{}, fmt.Errorf("answer inquiry: %w", err)
	}
	return inq, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
