package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type PlayerRepo struct {
	q DBTX
}

func NewPlayerRepo(q DBTX) *PlayerRepo {
	return &PlayerRepo{q: q}
}

// Insert creates a default stat row for the user. One player per user.
func (r *PlayerRepo) Insert(ctx context.Context, userID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO players (user_id, xp, level, tasks_completed, tasks_failed,
			current_streak, longest_streak, tasks_completed_early, critical_tasks_completed)
		VALUES (?, 0, 1, 0, 0, 0, 0, 0, 0)
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("player insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("player last insert id: %w", err)
	}
	return id, nil
}

// GetByUserID returns nil when the user has no player row yet.
func (r *PlayerRepo) GetByUserID(ctx context.Context, userID int64) (*Player, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, user_id, xp, level, tasks_completed, tasks_failed,
			current_streak, longest_streak, tasks_completed_early,
			critical_tasks_completed, previous_rank
		FROM players
		WHERE user_id = ?
	`, userID)

	var (
		p        Player
		prevRank sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.XP, &p.Level, &p.TasksCompleted, &p.TasksFailed,
		&p.CurrentStreak, &p.LongestStreak, &p.TasksCompletedEarly,
		&p.CriticalTasksCompleted, &prevRank,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("player get: %w", err)
	}
	p.PreviousRank = prevRank.String
	return &p, nil
}

// UpdateStats writes the full stat set in one statement.
func (r *PlayerRepo) UpdateStats(ctx context.Context, p *Player) error {
	var prevRank any
	if p.PreviousRank != "" {
		prevRank = p.PreviousRank
	}
	_, err := r.q.ExecContext(ctx, `
		UPDATE players
		SET xp = ?, level = ?, tasks_completed = ?, tasks_failed = ?,
			current_streak = ?, longest_streak = ?, tasks_completed_early = ?,
			critical_tasks_completed = ?, previous_rank = ?
		WHERE id = ?
	`, p.XP, p.Level, p.TasksCompleted, p.TasksFailed,
		p.CurrentStreak, p.LongestStreak, p.TasksCompletedEarly,
		p.CriticalTasksCompleted, prevRank, p.ID)
	if err != nil {
		return fmt.Errorf("player update: %w", err)
	}
	return nil
}
