package storage

import (
	"context"
	"fmt"
)

type AchievementRepo struct {
	q DBTX
}

func NewAchievementRepo(q DBTX) *AchievementRepo {
	return &AchievementRepo{q: q}
}

func (r *AchievementRepo) Insert(ctx context.Context, a *Achievement) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO achievements (player_id, kind, name, description, date_earned,
			xp_reward, streak_length, rank_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.PlayerID, a.Kind, a.Name, a.Description, fmtTime(a.DateEarned),
		a.XPReward, a.StreakLength, a.RankName)
	if err != nil {
		return 0, fmt.Errorf("achievement insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("achievement last insert id: %w", err)
	}
	return id, nil
}

// ListByPlayer returns the player's achievements in award order.
func (r *AchievementRepo) ListByPlayer(ctx context.Context, playerID int64) ([]Achievement, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, player_id, kind, name, description, date_earned,
			xp_reward, streak_length, rank_name
		FROM achievements
		WHERE player_id = ?
		ORDER BY id ASC
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		var (
			a      Achievement
			earned string
		)
		if err := rows.Scan(
			&a.ID, &a.PlayerID, &a.Kind, &a.Name, &a.Description, &earned,
			&a.XPReward, &a.StreakLength, &a.RankName,
		); err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		t, err := parseTime(earned)
		if err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		a.DateEarned = t
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}
