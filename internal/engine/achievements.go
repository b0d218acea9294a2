package engine

import (
	"fmt"
	"time"
)

// AchievementKind discriminates the achievement variants. The kind plus the
// kind-specific payload (streak length or rank name) identifies a badge; a
// player never holds two badges with the same identity.
type AchievementKind string

const (
	KindFirstTask  AchievementKind = "first_task"
	KindTaskStreak AchievementKind = "task_streak"
	KindEarlyBird  AchievementKind = "early_bird"
	KindRankUp     AchievementKind = "rank_up"
)

// Achievement is an immutable badge record. XPReward is applied once, at
// award time.
type Achievement struct {
	ID          int64
	Kind        AchievementKind
	Name        string
	Description string
	DateEarned  time.Time
	XPReward    int

	// Kind-specific payload.
	StreakLength int    // KindTaskStreak
	RankName     string // KindRankUp
}

const (
	firstTaskReward = 25
	earlyBirdReward = 50
	rankUpReward    = 50

	// EarlyBirdThreshold is the early-completion count that triggers the
	// Early Bird badge.
	EarlyBirdThreshold = 10

	streakRewardPerTask = 10
)

// StreakMilestones are the streak lengths that earn a Task Streak badge.
var StreakMilestones = []int{5, 10, 25, 50, 100}

func NewFirstTaskCompleted(now time.Time) Achievement {
	return Achievement{
		Kind:        KindFirstTask,
		Name:        "First Task Completed",
		Description: "Awarded for completing your first task.",
		DateEarned:  now,
		XPReward:    firstTaskReward,
	}
}

func NewTaskStreak(length int, now time.Time) Achievement {
	return Achievement{
		Kind:         KindTaskStreak,
		Name:         fmt.Sprintf("Task Streak %d", length),
		Description:  fmt.Sprintf("Awarded for completing %d tasks in a row.", length),
		DateEarned:   now,
		XPReward:     length * streakRewardPerTask,
		StreakLength: length,
	}
}

func NewEarlyBird(now time.Time) Achievement {
	return Achievement{
		Kind:        KindEarlyBird,
		Name:        "Early Bird",
		Description: fmt.Sprintf("Awarded for completing %d tasks before their due date.", EarlyBirdThreshold),
		DateEarned:  now,
		XPReward:    earlyBirdReward,
	}
}

func NewRankUp(rankName string, now time.Time) Achievement {
	return Achievement{
		Kind:        KindRankUp,
		Name:        fmt.Sprintf("Rank Up: %s", rankName),
		Description: fmt.Sprintf("Awarded for reaching the rank of %s.", rankName),
		DateEarned:  now,
		XPReward:    rankUpReward,
		RankName:    rankName,
	}
}

// sameBadge reports whether two achievements are the same badge identity.
func sameBadge(a, b Achievement) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindTaskStreak:
		return a.StreakLength == b.StreakLength
	case KindRankUp:
		return a.RankName == b.RankName
	default:
		return true
	}
}

// evaluateTriggers grants every achievement the current player stats earn,
// in a fixed order, and maintains the longest-streak invariant. Each grant
// goes through Player.AwardAchievement so its XP reward (and any resulting
// level change) lands immediately. Returns the newly granted badges.
func evaluateTriggers(p *Player, now time.Time) []Achievement {
	var granted []Achievement

	grant := func(a Achievement) {
		if p.HasAchievement(a) {
			return
		}
		p.AwardAchievement(a)
		granted = append(granted, a)
	}

	if p.TasksCompleted == 1 {
		grant(NewFirstTaskCompleted(now))
	}
	for _, m := range StreakMilestones {
		if p.CurrentStreak == m {
			grant(NewTaskStreak(m, now))
		}
	}
	if p.TasksCompletedEarly == EarlyBirdThreshold {
		grant(NewEarlyBird(now))
	}

	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}

	return granted
}
