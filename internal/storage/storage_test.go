package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "gamelife.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	id, err := NewUserRepo(db).Insert(context.Background(), "tester", "tester@example.com", time.Now().UTC())
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gamelife.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	seedUser(t, db)
	db.Close()

	db, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen over existing schema: %v", err)
	}
	defer db.Close()

	u, err := NewUserRepo(db).FindByUsername(ctx, "tester")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u == nil {
		t.Fatal("user lost across reopen")
	}
}

func TestUsernameUnique(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepo(db)
	now := time.Now().UTC()

	if _, err := repo.Insert(ctx, "tester", "a@example.com", now); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(ctx, "tester", "b@example.com", now); err == nil {
		t.Fatal("duplicate username should violate the unique constraint")
	}
}

func TestTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedUser(t, db)
	repo := NewTaskRepo(db)

	due := time.Date(2025, 7, 1, 9, 30, 0, 123456789, time.UTC)
	created := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)
	id, err := repo.Insert(ctx, TaskInsert{
		UserID:      userID,
		Title:       "write report",
		Priority:    "high",
		Status:      "pending",
		DueDate:     &due,
		Description: "quarterly numbers",
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("task not found")
	}
	if got.Title != "write report" || got.Priority != "high" || got.Status != "pending" ||
		got.Description != "quarterly numbers" {
		t.Fatalf("round trip mangled fields: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at=%v, want %v", got.CreatedAt, created)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("due_date=%v, want %v (sub-second precision must survive)", got.DueDate, due)
	}
	if got.CompletedAt != nil {
		t.Fatal("completed_at should start null")
	}
}

func TestTaskNullDueDate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedUser(t, db)
	repo := NewTaskRepo(db)

	id, err := repo.Insert(ctx, TaskInsert{
		UserID:    userID,
		Title:     "undated",
		Priority:  "low",
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DueDate != nil {
		t.Fatalf("due_date=%v, want nil", got.DueDate)
	}
}

func TestTaskLegacyTimestamp(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedUser(t, db)

	// Rows written by earlier tooling carry second-precision local-naive
	// timestamps; the scanner must still read them.
	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (user_id, title, priority, status, due_date, description, created_at)
		VALUES (?, 'old row', 'medium', 'pending', '2024-01-15T10:30:00', '', '2024-01-10T08:00:00')
	`, userID)
	if err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	tasks, err := NewTaskRepo(db).ListByUser(ctx, userID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if tasks[0].DueDate == nil || !tasks[0].DueDate.Equal(want) {
		t.Fatalf("due_date=%v, want %v", tasks[0].DueDate, want)
	}
}

func TestTaskUpdateStatusAndFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedUser(t, db)
	repo := NewTaskRepo(db)

	now := time.Now().UTC()
	var ids []int64
	for _, title := range []string{"a", "b", "c"} {
		id, err := repo.Insert(ctx, TaskInsert{
			UserID: userID, Title: title, Priority: "low", Status: "pending", CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("insert %s: %v", title, err)
		}
		ids = append(ids, id)
	}

	done := now.Add(time.Hour)
	if err := repo.UpdateStatus(ctx, ids[1], "completed", &done); err != nil {
		t.Fatalf("update: %v", err)
	}

	pending, err := repo.ListByUser(ctx, userID, "pending")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending tasks, want 2", len(pending))
	}

	completed, err := repo.ListByUser(ctx, userID, "completed")
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 || completed[0].CompletedAt == nil || !completed[0].CompletedAt.Equal(done) {
		t.Fatalf("completed row wrong: %+v", completed)
	}
}

func TestPlayerStatsRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedUser(t, db)
	repo := NewPlayerRepo(db)

	if _, err := repo.Insert(ctx, userID); err != nil {
		t.Fatalf("insert: %v", err)
	}
	p, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p == nil || p.XP != 0 || p.Level != 1 {
		t.Fatalf("fresh player %+v, want xp 0 level 1", p)
	}

	p.XP = 340
	p.Level = 4
	p.TasksCompleted = 12
	p.TasksFailed = 2
	p.CurrentStreak = 3
	p.LongestStreak = 7
	p.TasksCompletedEarly = 5
	p.CriticalTasksCompleted = 1
	p.PreviousRank = "Doer"
	if err := repo.UpdateStats(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *got != *p {
		t.Fatalf("reloaded %+v, want %+v", got, p)
	}
}

func TestAchievementListOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedUser(t, db)
	playerID, err := NewPlayerRepo(db).Insert(ctx, userID)
	if err != nil {
		t.Fatalf("player insert: %v", err)
	}
	repo := NewAchievementRepo(db)

	now := time.Now().UTC()
	for i, name := range []string{"First Task Completed", "Task Streak 5"} {
		_, err := repo.Insert(ctx, &Achievement{
			PlayerID:     playerID,
			Kind:         "task_streak",
			Name:         name,
			DateEarned:   now,
			XPReward:     10,
			StreakLength: i * 5,
		})
		if err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	list, err := repo.ListByPlayer(ctx, playerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "First Task Completed" || list[1].Name != "Task Streak 5" {
		t.Fatalf("award order lost: %+v", list)
	}
}

func TestEventLogNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedUser(t, db)
	playerID, err := NewPlayerRepo(db).Insert(ctx, userID)
	if err != nil {
		t.Fatalf("player insert: %v", err)
	}
	repo := NewEventRepo(db)

	now := time.Now().UTC()
	taskID := int64(42)
	if err := repo.Append(ctx, playerID, &taskID, "task_completed", 25, now); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, playerID, nil, "achievement:first_task", 25, now); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, playerID, &taskID, "task_failed", -38, now); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.ListByPlayer(ctx, playerID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Kind != "task_failed" || events[2].Kind != "task_completed" {
		t.Fatalf("events not newest-first: %+v", events)
	}
	if events[1].TaskID != nil {
		t.Fatal("achievement event should carry no task id")
	}
	if events[0].XPDelta != -38 {
		t.Fatalf("xp_delta=%d, want -38", events[0].XPDelta)
	}

	limited, err := repo.ListByPlayer(ctx, playerID, 2)
	if err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("got %d events with limit 2", len(limited))
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := seedUser(t, db)

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := NewTaskRepo(tx).Insert(ctx, TaskInsert{
			UserID: userID, Title: "doomed", Priority: "low", Status: "pending", CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want the callback error", err)
	}

	tasks, err := NewTaskRepo(db).ListByUser(ctx, userID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("rollback left %d rows behind", len(tasks))
	}
}
