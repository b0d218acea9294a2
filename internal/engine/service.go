package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamelife/internal/storage"
)

// Service is the task manager: it owns the logged-in user's session state
// (player aggregate, active/completed/failed task sets) and is the only
// writer of game state. Single user, single goroutine; every operation runs
// to completion, persistence included, before the next one starts.
type Service struct {
	db   *sql.DB
	cfg  Config
	calc Calculator

	// now is injectable for tests.
	now func() time.Time

	user      *User
	player    *Player
	active    []*Task
	completed []*Task
	failed    []*Task
}

func NewService(db *sql.DB, cfg Config) *Service {
	return &Service{
		db:   db,
		cfg:  cfg,
		calc: NewCalculator(cfg),
		now:  time.Now,
	}
}

// Login looks up or creates the user and player, then hydrates the session's
// task sets and achievement list from the store.
func (s *Service) Login(ctx context.Context, username, email string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}

	users := storage.NewUserRepo(s.db)
	players := storage.NewPlayerRepo(s.db)

	u, err := users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		now := s.now().UTC()
		id, err := users.Insert(ctx, username, email, now)
		if err != nil {
			return err
		}
		u = &storage.User{ID: id, Username: username, Email: email, CreatedAt: now}
	}

	p, err := players.GetByUserID(ctx, u.ID)
	if err != nil {
		return err
	}
	if p == nil {
		id, err := players.Insert(ctx, u.ID)
		if err != nil {
			return err
		}
		p, err = players.GetByUserID(ctx, u.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("player %d vanished after insert", id)
		}
	}

	s.user = &User{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
	s.player = playerFromRow(p, s.cfg)

	rows, err := storage.NewAchievementRepo(s.db).ListByPlayer(ctx, p.ID)
	if err != nil {
		return err
	}
	for i := range rows {
		s.player.Achievements = append(s.player.Achievements, achievementFromRow(&rows[i]))
	}

	tasks, err := storage.NewTaskRepo(s.db).ListByUser(ctx, u.ID, "")
	if err != nil {
		return err
	}
	s.active, s.completed, s.failed = nil, nil, nil
	for i := range tasks {
		t := taskFromRow(&tasks[i])
		switch {
		case t.Status.IsActive():
			s.active = append(s.active, t)
		case t.Status == StatusCompleted:
			s.completed = append(s.completed, t)
		case t.Status == StatusFailed:
			s.failed = append(s.failed, t)
		}
	}
	return nil
}

// User returns the logged-in identity, nil before Login.
func (s *Service) User() *User { return s.user }

// Player returns the session's progression aggregate, nil before Login.
// Callers must treat it as read-only.
func (s *Service) Player() *Player { return s.player }

// RecentEvents returns the newest XP audit entries, up to limit (0 = all).
func (s *Service) RecentEvents(ctx context.Context, limit int) ([]storage.XPEvent, error) {
	if s.player == nil {
		return nil, errors.New("not logged in")
	}
	return storage.NewEventRepo(s.db).ListByPlayer(ctx, s.player.ID, limit)
}

func (s *Service) requireSession() error {
	if s.user == nil || s.player == nil {
		return errors.New("not logged in")
	}
	return nil
}

func (s *Service) findActive(id int64) (int, *Task) {
	for i, t := range s.active {
		if t.ID == id {
			return i, t
		}
	}
	return -1, nil
}

// inactiveError distinguishes "task exists but is terminal" from "no such
// task" for operations that require an active task.
func (s *Service) inactiveError(op string, id int64) error {
	for _, set := range [][]*Task{s.completed, s.failed} {
		for _, t := range set {
			if t.ID == id {
				return TaskStateError{TaskID: id, Status: t.Status, Op: op}
			}
		}
	}
	return UnknownTaskError{TaskID: id}
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

func playerFromRow(row *storage.Player, cfg Config) *Player {
	return &Player{
		ID:                     row.ID,
		UserID:                 row.UserID,
		XP:                     row.XP,
		Level:                  row.Level,
		TasksCompleted:         row.TasksCompleted,
		TasksFailed:            row.TasksFailed,
		CurrentStreak:          row.CurrentStreak,
		LongestStreak:          row.LongestStreak,
		TasksCompletedEarly:    row.TasksCompletedEarly,
		CriticalTasksCompleted: row.CriticalTasksCompleted,
		PreviousRank:           row.PreviousRank,
		cfg:                    cfg,
	}
}

func playerToRow(p *Player) *storage.Player {
	return &storage.Player{
		ID:                     p.ID,
		UserID:                 p.UserID,
		XP:                     p.XP,
		Level:                  p.Level,
		TasksCompleted:         p.TasksCompleted,
		TasksFailed:            p.TasksFailed,
		CurrentStreak:          p.CurrentStreak,
		LongestStreak:          p.LongestStreak,
		TasksCompletedEarly:    p.TasksCompletedEarly,
		CriticalTasksCompleted: p.CriticalTasksCompleted,
		PreviousRank:           p.PreviousRank,
	}
}

func taskFromRow(row *storage.Task) *Task {
	return &Task{
		ID:          row.ID,
		Title:       row.Title,
		Priority:    Priority(row.Priority),
		Status:      Status(row.Status),
		DueDate:     row.DueDate,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		CompletedAt: row.CompletedAt,
	}
}

func achievementFromRow(row *storage.Achievement) Achievement {
	return Achievement{
		ID:           row.ID,
		Kind:         AchievementKind(row.Kind),
		Name:         row.Name,
		Description:  row.Description,
		DateEarned:   row.DateEarned,
		XPReward:     row.XPReward,
		StreakLength: row.StreakLength,
		RankName:     row.RankName,
	}
}

func achievementToRow(playerID int64, a *Achievement) *storage.Achievement {
	return &storage.Achievement{
		PlayerID:     playerID,
		Kind:         string(a.Kind),
		Name:         a.Name,
		Description:  a.Description,
		DateEarned:   a.DateEarned,
		XPReward:     a.XPReward,
		StreakLength: a.StreakLength,
		RankName:     a.RankName,
	}
}
