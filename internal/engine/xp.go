package engine

// XPPerLevel is the flat XP width of every level.
const XPPerLevel = 100

// LevelForXP returns the level for a total XP amount. Level 1 starts at 0 XP.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// ProgressWithinLevel is the XP earned since the current level began.
func ProgressWithinLevel(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp % XPPerLevel
}

// ProgressFraction is ProgressWithinLevel scaled to [0, 1).
func ProgressFraction(xp int) float64 {
	return float64(ProgressWithinLevel(xp)) / XPPerLevel
}

// NextLevelAt is the total XP at which the given level ends.
func NextLevelAt(level int) int {
	return XPPerLevel * level
}

// Points is the headline score shown on the dashboard.
func Points(r Record) int {
	return r.XP + r.Coins
}
