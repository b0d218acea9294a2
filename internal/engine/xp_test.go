package engine

import (
	"testing"
	"time"
)

func testConfig(xpPerLevel int) Config {
	return Config{
		XPPerLevel: xpPerLevel,
		XPFloor:    0,
		Rewards: map[Priority]int{
			PriorityLow:      10,
			PriorityMedium:   25,
			PriorityHigh:     50,
			PriorityCritical: 100,
		},
		Penalties: map[Priority]int{
			PriorityLow:      15,
			PriorityMedium:   38,
			PriorityHigh:     75,
			PriorityCritical: 150,
		},
		EarlyBonus: []BonusTier{
			{DaysEarly: 7, BonusPct: 50},
			{DaysEarly: 3, BonusPct: 25},
			{HoursEarly: 24, BonusPct: 10},
		},
		Ranks: []Rank{
			{Name: "Procrastinator", XPMin: 0},
			{Name: "Dabbler", XPMin: 100},
			{Name: "Doer", XPMin: 300},
			{Name: "Achiever", XPMin: 600},
			{Name: "Champion", XPMin: 1000},
			{Name: "Master", XPMin: 1500},
			{Name: "Legend", XPMin: 2500},
		},
	}
}

func TestCompletionXPWithoutDueDate(t *testing.T) {
	calc := NewCalculator(testConfig(100))
	now := time.Now().UTC()

	for _, p := range Priorities() {
		task := &Task{Title: "t", Priority: p}
		if got, want := calc.CompletionXP(task, &now), testConfig(100).Rewards[p]; got != want {
			t.Fatalf("CompletionXP(%s)=%d, want base %d", p, got, want)
		}
	}
}

func TestCompletionXPNoCompletionTime(t *testing.T) {
	calc := NewCalculator(testConfig(100))
	due := time.Now().UTC().Add(10 * 24 * time.Hour)
	task := &Task{Title: "t", Priority: PriorityHigh, DueDate: &due}

	if got := calc.CompletionXP(task, nil); got != 50 {
		t.Fatalf("CompletionXP without completion time=%d, want 50", got)
	}
}

func TestEarlyBonusTiers(t *testing.T) {
	calc := NewCalculator(testConfig(100))
	due := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		early    time.Duration
		priority Priority
		want     int
	}{
		{"8 days early hits 50% tier", 8 * 24 * time.Hour, PriorityCritical, 150},
		{"exactly 7 days early hits 50% tier", 7 * 24 * time.Hour, PriorityCritical, 150},
		{"4 days early hits 25% tier", 4 * 24 * time.Hour, PriorityCritical, 125},
		{"30 hours early hits 10% tier", 30 * time.Hour, PriorityCritical, 110},
		{"12 hours early gets no bonus", 12 * time.Hour, PriorityCritical, 100},
		{"late completion gets no bonus", -2 * time.Hour, PriorityCritical, 100},
		{"truncation: 25% of 10 is 2", 4 * 24 * time.Hour, PriorityLow, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := &Task{Title: "t", Priority: tc.priority, DueDate: &due}
			completed := due.Add(-tc.early)
			if got := calc.CompletionXP(task, &completed); got != tc.want {
				t.Fatalf("CompletionXP=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestEarlyBonusMonotonic(t *testing.T) {
	calc := NewCalculator(testConfig(100))
	due := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	task := &Task{Title: "t", Priority: PriorityHigh, DueDate: &due}

	prev := -1
	// Walk from latest to earliest completion; the bonus must never shrink
	// as the margin grows.
	for hours := 0; hours <= 10*24; hours += 6 {
		completed := due.Add(-time.Duration(hours) * time.Hour)
		got := calc.CompletionXP(task, &completed)
		if got < prev {
			t.Fatalf("bonus shrank at %dh early: %d < %d", hours, got, prev)
		}
		prev = got
	}
}

func TestFailurePenalty(t *testing.T) {
	calc := NewCalculator(testConfig(100))
	for _, p := range Priorities() {
		task := &Task{Title: "t", Priority: p}
		pen := calc.FailurePenalty(task)
		if pen < 0 {
			t.Fatalf("penalty for %s is negative: %d", p, pen)
		}
		if pen != testConfig(100).Penalties[p] {
			t.Fatalf("penalty for %s=%d, want %d", p, pen, testConfig(100).Penalties[p])
		}
	}
}
