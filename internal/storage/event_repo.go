package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EventRepo appends to the xp_events audit log. Every XP-affecting mutation
// (completion, failure, achievement reward) leaves one row here.
type EventRepo struct {
	q DBTX
}

func NewEventRepo(q DBTX) *EventRepo {
	return &EventRepo{q: q}
}

func (r *EventRepo) Append(ctx context.Context, playerID int64, taskID *int64, kind string, xpDelta int, at time.Time) error {
	var tid any
	if taskID != nil {
		tid = *taskID
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO xp_events (player_id, task_id, kind, xp_delta, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, playerID, tid, kind, xpDelta, fmtTime(at))
	if err != nil {
		return fmt.Errorf("xp event append: %w", err)
	}
	return nil
}

// ListByPlayer returns the newest events first, up to limit (0 = all).
func (r *EventRepo) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]XPEvent, error) {
	query := `
		SELECT id, player_id, task_id, kind, xp_delta, created_at
		FROM xp_events
		WHERE player_id = ?
		ORDER BY id DESC
	`
	args := []any{playerID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("xp event list: %w", err)
	}
	defer rows.Close()

	var out []XPEvent
	for rows.Next() {
		var (
			e       XPEvent
			tid     sql.NullInt64
			created string
		)
		if err := rows.Scan(&e.ID, &e.PlayerID, &tid, &e.Kind, &e.XPDelta, &created); err != nil {
			return nil, fmt.Errorf("xp event scan: %w", err)
		}
		if tid.Valid {
			v := tid.Int64
			e.TaskID = &v
		}
		t, err := parseTime(created)
		if err != nil {
			return nil, fmt.Errorf("xp event scan: %w", err)
		}
		e.CreatedAt = t
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("xp event rows: %w", err)
	}
	return out, nil
}
