package database

import (
	"context"
	"database/sql"
	"fmt"

	"todo-web/pkg/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS todo_items (
		id           BIGSERIAL PRIMARY KEY,
		list_name    TEXT NOT NULL,
		start_date   TIMESTAMPTZ NOT NULL DEFAULT now(),
		completed    BOOLEAN NOT NULL DEFAULT FALSE,
		date_created TIMESTAMPTZ NOT NULL,
		owner_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS todo_items_owner_idx ON todo_items (owner_id, id)`,
}

// Migrate creates the users and todo_items tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	logger.Info(ctx, "Schema ensured", "statements", len(schema))
	return nil
}
