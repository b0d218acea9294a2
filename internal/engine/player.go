package engine

// Player is the progression aggregate, one per user. It is mutated only by
// the Service; the level and rank are pure functions of the current XP, so
// losing XP can move both down.
type Player struct {
	ID     int64
	UserID int64

	XP    int
	Level int

	TasksCompleted         int
	TasksFailed            int
	CurrentStreak          int
	LongestStreak          int
	TasksCompletedEarly    int
	CriticalTasksCompleted int

	// PreviousRank is the last rank reported to the user. Empty until the
	// first rank has been established.
	PreviousRank string

	Achievements []Achievement

	cfg Config
}

// NewPlayer returns a fresh level-1 player bound to the given config.
func NewPlayer(userID int64, cfg Config) *Player {
	return &Player{UserID: userID, Level: 1, XP: cfg.XPFloor, cfg: cfg}
}

// AddXP applies a (possibly negative) delta, floors the result, and
// recomputes the level. Reports whether the level increased.
func (p *Player) AddXP(delta int) bool {
	before := p.Level

	p.XP += delta
	if p.XP < p.cfg.XPFloor {
		p.XP = p.cfg.XPFloor
	}
	p.Level = p.XP/p.cfg.XPPerLevel + 1
	if p.Level < 1 {
		// Only reachable with a negative XP floor.
		p.Level = 1
	}

	return p.Level > before
}

// Rank scans the ladder from the highest threshold down and returns the
// first rank whose minimum the player meets. The lowest rank starts at 0,
// so a match always exists.
func (p *Player) Rank() string {
	for i := len(p.cfg.Ranks) - 1; i >= 0; i-- {
		if p.XP >= p.cfg.Ranks[i].XPMin {
			return p.cfg.Ranks[i].Name
		}
	}
	return p.cfg.Ranks[0].Name
}

// ProgressToNextLevel returns how far into the current level the player is,
// as a percentage in [0, 100).
func (p *Player) ProgressToNextLevel() float64 {
	return float64(p.XP%p.cfg.XPPerLevel) / float64(p.cfg.XPPerLevel) * 100
}

// AwardAchievement appends the badge and applies its XP reward. The reward
// goes through AddXP, so an achievement can itself raise the level; reports
// whether it did.
func (p *Player) AwardAchievement(a Achievement) bool {
	p.Achievements = append(p.Achievements, a)
	if a.XPReward == 0 {
		return false
	}
	return p.AddXP(a.XPReward)
}

// HasAchievement reports whether the player already holds a badge with the
// same identity (kind plus streak length or rank name).
func (p *Player) HasAchievement(a Achievement) bool {
	for i := range p.Achievements {
		if sameBadge(p.Achievements[i], a) {
			return true
		}
	}
	return false
}
