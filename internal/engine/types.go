package engine

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// DefaultPriority is used when user input is missing.
const DefaultPriority Priority = PriorityMedium

// Priorities returns all priority levels, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// SortRank gives the strict total order used when listing by priority:
// critical < high < medium < low.
func (p Priority) SortRank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

func ParsePriority(input string) (Priority, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %q", input)
	}
	return p, nil
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOverdue    Status = "overdue"
	StatusFailed     Status = "failed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue, StatusFailed:
		return true
	default:
		return false
	}
}

// IsActive reports whether a task in this status can still be completed or
// failed. Overdue is an advisory flag, not a terminal state.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusOverdue:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the task lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task is one unit of work owned by a single user. Once it reaches a
// terminal status it is never mutated again.
type Task struct {
	ID          int64
	Title       string
	Priority    Priority
	Status      Status
	DueDate     *time.Time
	Description string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// User is the identity a player hangs off. Immutable after creation except
// for the email.
type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// SortOrder selects the ordering of ActiveTasks snapshots.
type SortOrder string

const (
	SortByAdded    SortOrder = "added"
	SortByPriority SortOrder = "priority"
	SortByDueDate  SortOrder = "due"
)

func ParseSortOrder(input string) (SortOrder, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "", "added":
		return SortByAdded, nil
	case "priority":
		return SortByPriority, nil
	case "due", "due_date":
		return SortByDueDate, nil
	default:
		return "", fmt.Errorf("invalid sort order: %q", input)
	}
}

// Config carries the progression tables the calculator and player derive
// everything from. It is passed in at construction time and never mutated.
type Config struct {
	XPPerLevel int
	XPFloor    int
	Rewards    map[Priority]int
	Penalties  map[Priority]int
	EarlyBonus []BonusTier
	Ranks      []Rank
}

// BonusTier is one rung of the early-completion ladder. Exactly one of
// DaysEarly/HoursEarly is set.
type BonusTier struct {
	DaysEarly  int
	HoursEarly int
	BonusPct   int
}

// Rank is a named XP milestone. Ranks are ordered by ascending XPMin with
// the lowest at zero.
type Rank struct {
	Name  string
	XPMin int
}
