package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gamelife/internal/engine"
)

// BonusTier is one rung of the early-completion bonus ladder. Exactly one of
// DaysEarly/HoursEarly should be set; tiers are evaluated in listed order and
// the first match wins.
type BonusTier struct {
	DaysEarly  int `yaml:"days_early"`
	HoursEarly int `yaml:"hours_early"`
	BonusPct   int `yaml:"bonus_pct"`
}

// Rank is a named XP milestone. The ladder must start at xp_min 0 and be
// strictly increasing.
type Rank struct {
	Name  string `yaml:"name"`
	XPMin int    `yaml:"xp_min"`
}

// Config models gamelife.yml. All progression tables live here; the engine
// never reads process-wide state.
type Config struct {
	XPPerLevel int `yaml:"xp_per_level"`
	XPFloor    int `yaml:"xp_floor"`

	Rewards   map[engine.Priority]int `yaml:"rewards"`
	Penalties map[engine.Priority]int `yaml:"penalties"`

	EarlyBonus []BonusTier `yaml:"early_bonus"`
	Ranks      []Rank      `yaml:"ranks"`
}

// Default returns the built-in progression tables.
func Default() *Config {
	return &Config{
		XPPerLevel: 100,
		XPFloor:    0,
		Rewards: map[engine.Priority]int{
			engine.PriorityLow:      10,
			engine.PriorityMedium:   25,
			engine.PriorityHigh:     50,
			engine.PriorityCritical: 100,
		},
		Penalties: map[engine.Priority]int{
			engine.PriorityLow:      15,
			engine.PriorityMedium:   38,
			engine.PriorityHigh:     75,
			engine.PriorityCritical: 150,
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

// Load reads config from path, or returns the defaults when path is empty or
// the file does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return FromYAML(data)
}

// FromYAML parses and validates a config document. Missing sections fall back
// to the defaults so a partial override file stays valid.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the progression tables are usable by the engine.
func (c *Config) Validate() error {
	if c.XPPerLevel <= 0 {
		return fmt.Errorf("xp_per_level must be positive, got %d", c.XPPerLevel)
	}
	for _, p := range engine.Priorities() {
		if _, ok := c.Rewards[p]; !ok {
			return fmt.Errorf("rewards table missing priority %q", p)
		}
		if c.Rewards[p] < 0 {
			return fmt.Errorf("reward for %q must be non-negative", p)
		}
		pen, ok := c.Penalties[p]
		if !ok {
			return fmt.Errorf("penalties table missing priority %q", p)
		}
		if pen < 0 {
			return fmt.Errorf("penalty for %q must be non-negative", p)
		}
	}
	for i, t := range c.EarlyBonus {
		if t.DaysEarly <= 0 && t.HoursEarly <= 0 {
			return fmt.Errorf("early_bonus[%d] needs days_early or hours_early", i)
		}
		if t.DaysEarly > 0 && t.HoursEarly > 0 {
			return fmt.Errorf("early_bonus[%d] cannot set both days_early and hours_early", i)
		}
		if t.BonusPct <= 0 {
			return fmt.Errorf("early_bonus[%d] bonus_pct must be positive", i)
		}
	}
	if len(c.Ranks) == 0 {
		return fmt.Errorf("at least one rank is required")
	}
	if c.Ranks[0].XPMin != 0 {
		return fmt.Errorf("lowest rank %q must have xp_min 0", c.Ranks[0].Name)
	}
	for i, r := range c.Ranks {
		if r.Name == "" {
			return fmt.Errorf("ranks[%d] has empty name", i)
		}
		if i > 0 && r.XPMin <= c.Ranks[i-1].XPMin {
			return fmt.Errorf("rank %q xp_min must exceed %q", r.Name, c.Ranks[i-1].Name)
		}
	}
	return nil
}

// Engine converts the config into the value the engine constructors take.
func (c *Config) Engine() engine.Config {
	ec := engine.Config{
		XPPerLevel: c.XPPerLevel,
		XPFloor:    c.XPFloor,
		Rewards:    c.Rewards,
		Penalties:  c.Penalties,
	}
	for _, t := range c.EarlyBonus {
		ec.EarlyBonus = append(ec.EarlyBonus, engine.BonusTier{
			DaysEarly:  t.DaysEarly,
			HoursEarly: t.HoursEarly,
			BonusPct:   t.BonusPct,
		})
	}
	for _, r := range c.Ranks {
		ec.Ranks = append(ec.Ranks, engine.Rank{Name: r.Name, XPMin: r.XPMin})
	}
	return ec
}

// DefaultPath returns the default config file location, next to the database.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".gamelife.yml"), nil
}
