package safety

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository persists items and requests to a Postgres database.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository constructs a repository backed by sqlx.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListItems(ctx context.Context) ([]Item, error) {
	const query = `
SELECT id, name, description, image_url, created_at
FROM safety_items
ORDER BY name`

	var out []Item
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list safety items: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, id uuid.UUID) (Item, error) {
	const query = `
SELECT id, name, description, image_url, created_at
FROM safety_items
WHERE id = $1`

	var item Item
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("get safety item: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item Item) (Item, error) {
	const query = `
INSERT INTO safety_items (id, name, description, image_url, created_at)
VALUES (:id, :name, :description, :image_url, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return Item{}, fmt.Errorf("insert safety item: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item Item) (Item, error) {
	const query = `
UPDATE safety_items
SET name = :name, description = :description, image_url = :image_url
WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return Item{}, fmt.Errorf("update safety item: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return Item{}, ErrNotFound
	}
	return item, nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM safety_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete safety item: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListRequests(ctx context.Context, filter RequestFilter) ([]Request, error) {
	query := `
SELECT id, item_id, item_name, requester, department, quantity, note, status, created_at, updated_at
FROM item_requests`
	args := []any{}

	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	var out []Request
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list item requests: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) CreateRequest(ctx context.Context, req Request) (Request, error) {
	const query = `
INSERT INTO item_requests (id, item_id, item_name, requester, department, quantity, note, status, created_at, updated_at)
VALUES (:id, :item_id, :item_name, :requester, :department, :quantity, :note, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return Request{}, fmt.Errorf("insert item request: %w", err)
	}
	return req, nil
}

func (r *PostgresRepository) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus, updatedAt time.Time) (Request, error) {
	const query = `
UPDATE item_requests
SET status = $2, updated_at = $3
WHERE id = $1
RETURNING id, item_id, item_name, requester, department, quantity, note, status, created_at, updated_at`

	var req Request
	if err := r.db.GetContext(ctx, &req, query, id, status, updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Request{}, ErrNotFound
		}
		return Request{}, fmt.Errorf("update request status: %w", err)
	}
	return req, nil
}
