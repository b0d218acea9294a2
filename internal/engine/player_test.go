package engine

import (
	"testing"
	"time"
)

func TestAddXPLevelUp(t *testing.T) {
	p := NewPlayer(1, testConfig(200))
	p.XP = 190
	p.Level = 1

	if !p.AddXP(50) {
		t.Fatal("AddXP(50) from 190 xp should report a level up")
	}
	if p.XP != 240 {
		t.Fatalf("xp=%d, want 240", p.XP)
	}
	if p.Level != 2 {
		t.Fatalf("level=%d, want 2", p.Level)
	}
}

func TestAddXPFloor(t *testing.T) {
	p := NewPlayer(1, testConfig(100))
	p.AddXP(30)

	if p.AddXP(-150) {
		t.Fatal("losing xp must never report a level up")
	}
	if p.XP != 0 {
		t.Fatalf("xp=%d, want floor 0", p.XP)
	}
	if p.Level != 1 {
		t.Fatalf("level=%d, want 1", p.Level)
	}
}

func TestAddXPLevelDown(t *testing.T) {
	p := NewPlayer(1, testConfig(100))
	p.AddXP(250)
	if p.Level != 3 {
		t.Fatalf("level=%d, want 3", p.Level)
	}

	p.AddXP(-100)
	if p.Level != 2 {
		t.Fatalf("level after loss=%d, want 2", p.Level)
	}
}

func TestRankLadder(t *testing.T) {
	cases := []struct {
		xp   int
		want string
	}{
		{0, "Procrastinator"},
		{99, "Procrastinator"},
		{100, "Dabbler"},
		{299, "Dabbler"},
		{300, "Doer"},
		{600, "Achiever"},
		{1000, "Champion"},
		{1500, "Master"},
		{2500, "Legend"},
		{9999, "Legend"},
	}
	for _, tc := range cases {
		p := NewPlayer(1, testConfig(100))
		p.XP = tc.xp
		if got := p.Rank(); got != tc.want {
			t.Fatalf("rank at %d xp=%q, want %q", tc.xp, got, tc.want)
		}
	}
}

func TestRankMonotonic(t *testing.T) {
	cfg := testConfig(100)
	rankIndex := func(name string) int {
		for i, r := range cfg.Ranks {
			if r.Name == name {
				return i
			}
		}
		t.Fatalf("unknown rank %q", name)
		return -1
	}

	p := NewPlayer(1, cfg)
	prev := rankIndex(p.Rank())
	for xp := 0; xp <= 3000; xp += 50 {
		p.XP = xp
		idx := rankIndex(p.Rank())
		if idx < prev {
			t.Fatalf("rank regressed at %d xp", xp)
		}
		prev = idx
	}
}

func TestProgressToNextLevel(t *testing.T) {
	p := NewPlayer(1, testConfig(200))
	p.XP = 250

	if got := p.ProgressToNextLevel(); got != 25 {
		t.Fatalf("progress=%v, want 25", got)
	}
	p.XP = 0
	if got := p.ProgressToNextLevel(); got != 0 {
		t.Fatalf("progress at 0 xp=%v, want 0", got)
	}
}

func TestAwardAchievementAppliesReward(t *testing.T) {
	p := NewPlayer(1, testConfig(100))
	p.AddXP(90)

	a := NewFirstTaskCompleted(time.Now().UTC())
	if !p.AwardAchievement(a) {
		t.Fatal("reward crossing the level boundary should report a level up")
	}
	if p.XP != 115 {
		t.Fatalf("xp=%d, want 115", p.XP)
	}
	if !p.HasAchievement(a) {
		t.Fatal("awarded achievement not found on player")
	}
}

func TestHasAchievementIdentity(t *testing.T) {
	now := time.Now().UTC()
	p := NewPlayer(1, testConfig(100))
	p.AwardAchievement(NewTaskStreak(5, now))

	if !p.HasAchievement(NewTaskStreak(5, now.Add(time.Hour))) {
		t.Fatal("streak badge of the same length should match regardless of timestamp")
	}
	if p.HasAchievement(NewTaskStreak(10, now)) {
		t.Fatal("streak badge of a different length must not match")
	}
	if p.HasAchievement(NewRankUp("Dabbler", now)) {
		t.Fatal("different kind must not match")
	}
}
