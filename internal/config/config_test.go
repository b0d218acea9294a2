package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamelife/internal/engine"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.XPPerLevel != 100 {
		t.Fatalf("xp_per_level=%d, want default 100", cfg.XPPerLevel)
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamelife.yml")
	doc := `
xp_per_level: 200
rewards:
  critical: 120
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.XPPerLevel != 200 {
		t.Fatalf("xp_per_level=%d, want 200", cfg.XPPerLevel)
	}
	if cfg.Rewards[engine.PriorityCritical] != 120 {
		t.Fatalf("critical reward=%d, want 120", cfg.Rewards[engine.PriorityCritical])
	}
	// Untouched entries keep their defaults.
	if cfg.Rewards[engine.PriorityLow] != 10 {
		t.Fatalf("low reward=%d, want default 10", cfg.Rewards[engine.PriorityLow])
	}
	if len(cfg.Ranks) != 7 {
		t.Fatalf("ranks=%d, want default ladder", len(cfg.Ranks))
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			"zero xp per level",
			func(c *Config) { c.XPPerLevel = 0 },
			"xp_per_level",
		},
		{
			"missing reward",
			func(c *Config) { delete(c.Rewards, engine.PriorityHigh) },
			"rewards table missing",
		},
		{
			"negative penalty",
			func(c *Config) { c.Penalties[engine.PriorityLow] = -1 },
			"must be non-negative",
		},
		{
			"bonus tier with no window",
			func(c *Config) { c.EarlyBonus[0] = BonusTier{BonusPct: 50} },
			"days_early or hours_early",
		},
		{
			"bonus tier with both windows",
			func(c *Config) { c.EarlyBonus[0] = BonusTier{DaysEarly: 7, HoursEarly: 24, BonusPct: 50} },
			"cannot set both",
		},
		{
			"no ranks",
			func(c *Config) { c.Ranks = nil },
			"at least one rank",
		},
		{
			"lowest rank above zero",
			func(c *Config) { c.Ranks[0].XPMin = 50 },
			"xp_min 0",
		},
		{
			"non-increasing ladder",
			func(c *Config) { c.Ranks[2].XPMin = c.Ranks[1].XPMin },
			"must exceed",
		},
		{
			"unnamed rank",
			func(c *Config) { c.Ranks[3].Name = "" },
			"empty name",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("err=%q, want it to mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestFromYAMLRejectsInvalid(t *testing.T) {
	if _, err := FromYAML([]byte("xp_per_level: -5\n")); err == nil {
		t.Fatal("negative xp_per_level should fail validation")
	}
	if _, err := FromYAML([]byte("ranks: [banana\n")); err == nil {
		t.Fatal("malformed yaml should fail to parse")
	}
}

func TestEngineConversion(t *testing.T) {
	ec := Default().Engine()
	if ec.XPPerLevel != 100 {
		t.Fatalf("XPPerLevel=%d, want 100", ec.XPPerLevel)
	}
	if len(ec.EarlyBonus) != 3 || ec.EarlyBonus[0].DaysEarly != 7 || ec.EarlyBonus[0].BonusPct != 50 {
		t.Fatalf("bonus ladder lost in conversion: %+v", ec.EarlyBonus)
	}
	if len(ec.Ranks) != 7 || ec.Ranks[6].Name != "Legend" || ec.Ranks[6].XPMin != 2500 {
		t.Fatalf("rank ladder lost in conversion: %+v", ec.Ranks)
	}
	if ec.Rewards[engine.PriorityMedium] != 25 {
		t.Fatalf("rewards lost in conversion: %+v", ec.Rewards)
	}
}
