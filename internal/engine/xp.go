package engine

import "time"

// Calculator turns task events into XP deltas. It is pure given its config:
// same task and timestamps always yield the same numbers.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) Calculator {
	return Calculator{cfg: cfg}
}

// CompletionXP returns the base reward for the task's priority plus the
// early-completion bonus. The bonus applies only when the task has a due
// date and a completion time; the ladder is scanned in configured order and
// only the first matching tier pays out.
func (c Calculator) CompletionXP(task *Task, completedAt *time.Time) int {
	base := c.cfg.Rewards[task.Priority]
	return base + c.earlyBonus(base, task.DueDate, completedAt)
}

func (c Calculator) earlyBonus(base int, dueDate, completedAt *time.Time) int {
	if dueDate == nil || completedAt == nil {
		return 0
	}
	early := dueDate.Sub(*completedAt)
	if early <= 0 {
		return 0
	}

	// Whole days/hours early, truncated toward zero.
	daysEarly := int(early.Hours() / 24)
	hoursEarly := int(early.Hours())

	for _, tier := range c.cfg.EarlyBonus {
		switch {
		case tier.DaysEarly > 0 && daysEarly >= tier.DaysEarly:
			return base * tier.BonusPct / 100
		case tier.HoursEarly > 0 && hoursEarly >= tier.HoursEarly:
			return base * tier.BonusPct / 100
		}
	}
	return 0
}

// FailurePenalty returns the non-negative penalty for failing the task.
// Callers apply it as a negative XP delta.
func (c Calculator) FailurePenalty(task *Task) int {
	pen := c.cfg.Penalties[task.Priority]
	if pen < 0 {
		pen = 0
	}
	return pen
}
