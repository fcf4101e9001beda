package ledger

import "math"

// XPForLevel returns the XP needed to advance from level-1 to level.
func XPForLevel(level int) int {
	return int(100 * math.Pow(float64(level), 1.5))
}

// LevelForLifetimeXP walks the curve and returns the level reached with
// the given lifetime XP total.
func LevelForLifetimeXP(lifetime int) int {
	level := 1
	remaining := lifetime
	for {
		needed := XPForLevel(level + 1)
		if remaining < needed {
			return level
		}
		remaining -= needed
		level++
	}
}

// LevelReward returns the faith points granted on reaching level.
func LevelReward(level int) int {
	return 50 + (level * 10)
}
