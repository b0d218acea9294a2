package engine

import (
	"context"
	"database/sql"

	"gamelife/internal/storage"
)

// CompleteResult reports what a completion changed. XPEarned is the task's
// own reward (base plus early bonus); achievement rewards land on the player
// but are itemized in Achievements.
type CompleteResult struct {
	TaskID       int64
	XPEarned     int
	LevelBefore  int
	Level        int
	LeveledUp    bool
	Achievements []Achievement
	RankChanged  bool
	NewRank      string
}

// FailResult reports what a failure cost.
type FailResult struct {
	TaskID      int64
	XPLost      int
	LevelBefore int
	Level       int
	LevelDown   bool
}

// CompleteTask moves an active task to completed and applies the full
// progression update: XP, streak, counters, achievement triggers, and rank
// change detection. All writes happen in one transaction; the in-memory
// session only advances after the transaction commits, so a persistence
// failure leaves memory and store agreeing on the pre-call state.
func (s *Service) CompleteTask(ctx context.Context, id int64) (*CompleteResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	idx, task := s.findActive(id)
	if task == nil {
		return nil, s.inactiveError("complete", id)
	}

	now := s.now().UTC()
	xp := s.calc.CompletionXP(task, &now)

	// All mutation happens on a scratch copy until the write commits.
	scratch := *s.player
	scratch.Achievements = append([]Achievement(nil), s.player.Achievements...)
	levelBefore := scratch.Level

	scratch.AddXP(xp)
	scratch.TasksCompleted++
	scratch.CurrentStreak++
	if task.Priority == PriorityCritical {
		scratch.CriticalTasksCompleted++
	}
	if task.DueDate != nil && now.Before(*task.DueDate) {
		scratch.TasksCompletedEarly++
	}

	granted := evaluateTriggers(&scratch, now)

	// Rank detection runs over the post-achievement XP. The very first rank
	// establishment is recorded but not reported as a change.
	rankChanged := false
	newRank := scratch.Rank()
	if newRank != scratch.PreviousRank {
		if scratch.PreviousRank != "" {
			rankChanged = true
			rankUp := NewRankUp(newRank, now)
			if !scratch.HasAchievement(rankUp) {
				scratch.AwardAchievement(rankUp)
				granted = append(granted, rankUp)
			}
		}
		scratch.PreviousRank = newRank
	}

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewTaskRepo(tx).UpdateStatus(ctx, task.ID, string(StatusCompleted), &now); err != nil {
			return err
		}
		achievements := storage.NewAchievementRepo(tx)
		for i := range granted {
			aid, err := achievements.Insert(ctx, achievementToRow(scratch.ID, &granted[i]))
			if err != nil {
				return err
			}
			granted[i].ID = aid
		}
		if err := storage.NewPlayerRepo(tx).UpdateStats(ctx, playerToRow(&scratch)); err != nil {
			return err
		}
		events := storage.NewEventRepo(tx)
		if err := events.Append(ctx, scratch.ID, &task.ID, "task_completed", xp, now); err != nil {
			return err
		}
		for i := range granted {
			if err := events.Append(ctx, scratch.ID, nil, "achievement:"+string(granted[i].Kind), granted[i].XPReward, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Propagate the assigned ids onto the scratch copies of the new badges.
	for i := range granted {
		for j := range scratch.Achievements {
			if sameBadge(scratch.Achievements[j], granted[i]) {
				scratch.Achievements[j].ID = granted[i].ID
			}
		}
	}

	*s.player = scratch
	task.Status = StatusCompleted
	completedAt := now
	task.CompletedAt = &completedAt
	s.active = append(s.active[:idx], s.active[idx+1:]...)
	s.completed = append(s.completed, task)

	res := &CompleteResult{
		TaskID:       task.ID,
		XPEarned:     xp,
		LevelBefore:  levelBefore,
		Level:        s.player.Level,
		LeveledUp:    s.player.Level > levelBefore,
		Achievements: granted,
		RankChanged:  rankChanged,
	}
	if rankChanged {
		res.NewRank = newRank
	}
	return res, nil
}

// FailTask moves an active task to failed: the penalty comes off the XP
// (floored), the streak resets, and the full player snapshot persists in the
// same transaction as the status change.
func (s *Service) FailTask(ctx context.Context, id int64) (*FailResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	idx, task := s.findActive(id)
	if task == nil {
		return nil, s.inactiveError("fail", id)
	}

	now := s.now().UTC()
	penalty := s.calc.FailurePenalty(task)

	scratch := *s.player
	scratch.Achievements = append([]Achievement(nil), s.player.Achievements...)
	levelBefore := scratch.Level

	scratch.AddXP(-penalty)
	scratch.TasksFailed++
	scratch.CurrentStreak = 0

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewTaskRepo(tx).UpdateStatus(ctx, task.ID, string(StatusFailed), nil); err != nil {
			return err
		}
		if err := storage.NewPlayerRepo(tx).UpdateStats(ctx, playerToRow(&scratch)); err != nil {
			return err
		}
		return storage.NewEventRepo(tx).Append(ctx, scratch.ID, &task.ID, "task_failed", -penalty, now)
	})
	if err != nil {
		return nil, err
	}

	*s.player = scratch
	task.Status = StatusFailed
	s.active = append(s.active[:idx], s.active[idx+1:]...)
	s.failed = append(s.failed, task)

	return &FailResult{
		TaskID:      task.ID,
		XPLost:      penalty,
		LevelBefore: levelBefore,
		Level:       s.player.Level,
		LevelDown:   s.player.Level < levelBefore,
	}, nil
}
