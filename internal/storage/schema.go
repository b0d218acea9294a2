package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the schema. Timestamps are stored as ISO-8601 text and ids
// are surrogate integers, matching the on-disk format earlier releases used.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER UNIQUE NOT NULL,
			xp INTEGER DEFAULT 0,
			level INTEGER DEFAULT 1,
			tasks_completed INTEGER DEFAULT 0,
			tasks_failed INTEGER DEFAULT 0,
			current_streak INTEGER DEFAULT 0,
			longest_streak INTEGER DEFAULT 0,
			tasks_completed_early INTEGER DEFAULT 0,
			critical_tasks_completed INTEGER DEFAULT 0,
			previous_rank TEXT,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			priority TEXT NOT NULL,
			status TEXT NOT NULL,
			due_date TEXT,
			description TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			completed_at TEXT,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			date_earned TEXT NOT NULL,
			xp_reward INTEGER DEFAULT 0,
			streak_length INTEGER DEFAULT 0,
			rank_name TEXT NOT NULL DEFAULT '',
			FOREIGN KEY(player_id) REFERENCES players(id)
		);`,
		// Audit trail of every XP-affecting event.
		`CREATE TABLE IF NOT EXISTS xp_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL,
			task_id INTEGER,
			kind TEXT NOT NULL,
			xp_delta INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY(player_id) REFERENCES players(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id_status ON tasks(user_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_achievements_player_id ON achievements(player_id);`,
		`CREATE INDEX IF NOT EXISTS idx_xp_events_player_id ON xp_events(player_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
