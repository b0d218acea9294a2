package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	q DBTX
}

func NewTaskRepo(q DBTX) *TaskRepo {
	return &TaskRepo{q: q}
}

type TaskInsert struct {
	UserID      int64
	Title       string
	Priority    string
	Status      string
	DueDate     *time.Time
	Description string
	CreatedAt   time.Time
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO tasks (user_id, title, priority, status, due_date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.UserID, in.Title, in.Priority, in.Status, fmtTimePtr(in.DueDate), in.Description, fmtTime(in.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

const taskColumns = `id, user_id, title, priority, status, due_date, description, created_at, completed_at`

func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListByUser returns the user's tasks in insertion order, optionally
// filtered to a single status.
func (r *TaskRepo) ListByUser(ctx context.Context, userID int64, status string) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? ORDER BY id ASC`
	args := []any{userID}
	if status != "" {
		query = `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? AND status = ? ORDER BY id ASC`
		args = append(args, status)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// UpdateStatus rewrites the status and, for completions, the completion
// timestamp.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id int64, status string, completedAt *time.Time) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE tasks SET status = ?, completed_at = ? WHERE id = ?
	`, status, fmtTimePtr(completedAt), id)
	if err != nil {
		return fmt.Errorf("task update status: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*Task, error) {
	var (
		t           Task
		due         sql.NullString
		created     string
		completed   sql.NullString
		description sql.NullString
	)
	if err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Priority, &t.Status,
		&due, &description, &created, &completed,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	t.Description = description.String

	createdAt, err := parseTime(created)
	if err != nil {
		return nil, fmt.Errorf("task scan: %w", err)
	}
	t.CreatedAt = createdAt

	if t.DueDate, err = parseTimeNull(due); err != nil {
		return nil, fmt.Errorf("task scan: %w", err)
	}
	if t.CompletedAt, err = parseTimeNull(completed); err != nil {
		return nil, fmt.Errorf("task scan: %w", err)
	}
	return &t, nil
}
