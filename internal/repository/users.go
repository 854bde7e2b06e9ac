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
	insertUserSQL     = `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, created_at`
	userByEmailSQL    = `SELECT id, name, email, password, created_at FROM users WHERE email = $1`
	userByIDSQL       = `SELECT id, name, email, password, created_at FROM users WHERE id = $1`
	updatePasswordSQL = `UPDATE users SET password = $1 WHERE id = $2`
)

// Users is the Postgres-backed credential store.
type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// Create inserts a user in one statement. A taken email yields ErrDuplicateEmail
// and writes nothing.
func (r *Users) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	u := &models.User{Name: name, Email: NormalizeEmail(email), PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx, insertUserSQL, u.Name, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		logger.Error(ctx, "Repository CreateUser failed", "error", err)
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// ByEmail looks a user up by (normalized) email.
func (r *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(ctx, userByEmailSQL, NormalizeEmail(email))
}

// ByID looks a user up by id.
func (r *Users) ByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanOne(ctx, userByIDSQL, id)
}

// UpdatePassword overwrites the stored hash.
func (r *Users) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, updatePasswordSQL, passwordHash, id)
	if err != nil {
		logger.Error(ctx, "Repository UpdatePassword failed", "error", err, "user_id", id)
		return fmt.Errorf("update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Users) scanOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository user lookup failed", "error", err)
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
