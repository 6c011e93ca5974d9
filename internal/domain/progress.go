package domain

// XP awarded per record.
const (
	XPPerMood  = 20
	XPPerNote  = 10
	XPPerLevel = 100
)

// Badge is an achievement unlocked by crossing a fixed threshold.
type Badge struct {
	ID   string `json:"id"   example:"pioneer"`
	Name string `json:"name" example:"First Step"`
	Icon string `json:"icon" example:"🌱"`
}

// Progress is the gamification snapshot derived from record counts. It is
// never stored.
type Progress struct {
	XP     int     `json:"xp"      example:"80"`
	Level  int     `json:"level"   example:"1"`
	XPNext int     `json:"xp_next" example:"20"`
	Badges []Badge `json:"badges"`
}

// badgeRule unlocks a badge from (moods, notes, level).
type badgeRule struct {
	badge  Badge
	unlock func(moods, notes, level int) bool
}

// badgeRules are evaluated in order; the output keeps this order.
var badgeRules = []badgeRule{
	{Badge{ID: "pioneer", Name: "First Step", Icon: "🌱"}, func(m, _, _ int) bool { return m >= 1 }},
	{Badge{ID: "constant", Name: "Deep Reflector", Icon: "💎"}, func(m, _, _ int) bool { return m >= 5 }},
	{Badge{ID: "kind", Name: "Positivity Beacon", Icon: "🌟"}, func(_, n, _ int) bool { return n >= 3 }},
	{Badge{ID: "level2", Name: "Rising Star", Icon: "🚀"}, func(_, _, l int) bool { return l >= 2 }},
}

// DefaultProgress is the snapshot shown when counts are unavailable.
func DefaultProgress() Progress {
	return Progress{XP: 0, Level: 1, XPNext: XPPerLevel, Badges: []Badge{}}
}

// ComputeProgress derives XP, level, remaining XP to the next level, and the
// unlocked badges. noteCount is the number of notes used for community XP.
// Negative counts are treated as zero.
func ComputeProgress(moodCount, noteCount int) Progress {
	if moodCount < 0 {
		moodCount = 0
	}
	if noteCount < 0 {
		noteCount = 0
	}
	xp := moodCount*XPPerMood + noteCount*XPPerNote
	level := xp/XPPerLevel + 1

	badges := make([]Badge, 0, len(badgeRules))
	for _, r := range badgeRules {
		if r.unlock(moodCount, noteCount, level) {
			badges = append(badges, r.badge)
		}
	}
	return Progress{
		XP:     xp,
		Level:  level,
		XPNext: XPPerLevel - xp%XPPerLevel,
		Badges: badges,
	}
}
