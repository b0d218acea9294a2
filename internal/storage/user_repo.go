package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type UserRepo struct {
	q DBTX
}

func NewUserRepo(q DBTX) *UserRepo {
	return &UserRepo{q: q}
}

// Insert creates a user row. The username is globally unique; a duplicate
// surfaces as a constraint error from the store.
func (r *UserRepo) Insert(ctx context.Context, username, email string, createdAt time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO users (username, email, created_at)
		VALUES (?, ?, ?)
	`, username, email, fmtTime(createdAt))
	if err != nil {
		return 0, fmt.Errorf("user insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	return id, nil
}

// FindByUsername returns nil when no such user exists.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, username, email, created_at
		FROM users
		WHERE username = ?
	`, username)

	var (
		u       User
		created string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user find: %w", err)
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, fmt.Errorf("user find: %w", err)
	}
	u.CreatedAt = t
	return &u, nil
}

// UpdateEmail is the only mutation a user row allows after creation.
func (r *UserRepo) UpdateEmail(ctx context.Context, id int64, email string) error {
	if _, err := r.q.ExecContext(ctx, `UPDATE users SET email = ? WHERE id = ?`, email, id); err != nil {
		return fmt.Errorf("user update email: %w", err)
	}
	return nil
}
