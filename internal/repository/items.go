package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todo-web/internal/models"
	"todo-web/pkg/logger"
)

const (
	itemColumns = `id, owner_id, list_name, start_date, date_created, completed`

	insertItemSQL    = `INSERT INTO todo_items (list_name, start_date, completed, date_created, owner_id) VALUES ($1, $2, FALSE, $3, $4) RETURNING id`
	itemsByOwnerSQL  = `SELECT ` + itemColumns + ` FROM todo_items WHERE owner_id = $1 ORDER BY id ASC`
	itemsByStatusSQL = `SELECT ` + itemColumns + ` FROM todo_items WHERE owner_id = $1 AND completed = $2 ORDER BY id ASC`
	markCompleteSQL  = `UPDATE todo_items SET completed = TRUE WHERE id = $1 AND owner_id = $2`
	deleteItemSQL    = `DELETE FROM todo_items WHERE id = $1 AND owner_id = $2`
	itemOwnerSQL     = `SELECT owner_id FROM todo_items WHERE id = $1`
)

// Items is the Postgres-backed item store. Every mutation is scoped to the
// requesting principal.
type Items struct {
	db *sql.DB
}

func NewItems(db *sql.DB) *Items {
	return &Items{db: db}
}

// Create inserts item as not completed and fills in its id.
func (r *Items) Create(ctx context.Context, item *models.Item) error {
	item.Completed = false
	err := r.db.QueryRowContext(ctx, insertItemSQL,
		item.ListName, item.StartDate, item.DateCreated, item.OwnerID).Scan(&item.ID)
	if err != nil {
		logger.Error(ctx, "Repository CreateItem failed", "error", err, "owner_id", item.OwnerID)
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// ByOwner lists every item of ownerID in id order.
func (r *Items) ByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	return r.list(ctx, itemsByOwnerSQL, ownerID)
}

// ByOwnerAndStatus lists ownerID's items with the given completion state in id order.
func (r *Items) ByOwnerAndStatus(ctx context.Context, ownerID int64, completed bool) ([]models.Item, error) {
	return r.list(ctx, itemsByStatusSQL, ownerID, completed)
}

// MarkComplete sets completed on an item owned by principalID. Completing an
// already completed item is a no-op.
func (r *Items) MarkComplete(ctx context.Context, itemID, principalID int64) error {
	return r.mutate(ctx, "MarkComplete", markCompleteSQL, itemID, principalID)
}

// Delete removes an item owned by principalID.
func (r *Items) Delete(ctx context.Context, itemID, principalID int64) error {
	return r.mutate(ctx, "DeleteItem", deleteItemSQL, itemID, principalID)
}

func (r *Items) mutate(ctx context.Context, op, query string, itemID, principalID int64) error {
	res, err := r.db.ExecContext(ctx, query, itemID, principalID)
	if err != nil {
		logger.Error(ctx, "Repository "+op+" failed", "error", err, "id", itemID)
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		return nil
	}
	return r.checkOwner(ctx, itemID, principalID)
}

// checkOwner explains why a scoped mutation matched nothing.
func (r *Items) checkOwner(ctx context.Context, itemID, principalID int64) error {
	var owner int64
	err := r.db.QueryRowContext(ctx, itemOwnerSQL, itemID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select item owner: %w", err)
	}
	if owner != principalID {
		logger.Warn(ctx, "Item mutation by non-owner rejected", "id", itemID, "principal", principalID)
		return ErrForbidden
	}
	return nil
}

func (r *Items) list(ctx context.Context, query string, args ...interface{}) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error(ctx, "Repository list items failed", "error", err)
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()
	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.ListName, &it.StartDate, &it.DateCreated, &it.Completed); err != nil {
			logger.Error(ctx, "Repository scan item failed", "error", err)
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
