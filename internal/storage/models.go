package storage

import (
	"database/sql"
	"fmt"
	"time"
)

type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// Player is the persisted stat row, one per user.
type Player struct {
	ID                     int64
	UserID                 int64
	XP                     int
	Level                  int
	TasksCompleted         int
	TasksFailed            int
	CurrentStreak          int
	LongestStreak          int
	TasksCompletedEarly    int
	CriticalTasksCompleted int
	PreviousRank           string
}

type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Priority    string
	Status      string
	DueDate     *time.Time
	Description string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type Achievement struct {
	ID           int64
	PlayerID     int64
	Kind         string
	Name         string
	Description  string
	DateEarned   time.Time
	XPReward     int
	StreakLength int
	RankName     string
}

type XPEvent struct {
	ID        int64
	PlayerID  int64
	TaskID    *int64
	Kind      string
	XPDelta   int
	CreatedAt time.Time
}

// timeFormat is the on-disk timestamp layout. ISO-8601 text keeps the rows
// readable and compatible with the original database files.
const timeFormat = time.RFC3339Nano

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func fmtTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		// Older rows may lack sub-second precision or a zone.
		if t2, err2 := time.Parse("2006-01-02T15:04:05", s); err2 == nil {
			return t2.UTC(), nil
		}
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseTimeNull(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
