package engagement

import "github.com/studyflow-app/studyflow/internal/domain"

// LevelForXP derives level state from a total XP amount.
// The bracket is linear: level = totalXP/100 + 1, so 0 XP is level 1 with the
// full 100 XP still to earn. Total function — any non-negative input works.
func LevelForXP(totalXP int) domain.LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}
	return domain.LevelInfo{
		TotalXP:  totalXP,
		Level:    totalXP/domain.XPPerLevel + 1,
		XPToNext: domain.XPPerLevel - totalXP%domain.XPPerLevel,
	}
}

// XPForDuration is the per-session XP contribution: 2 XP per minute.
// Stored denormalized on the session for display; level derivation always
// re-sums the live log instead of trusting a cached total.
func XPForDuration(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return minutes * domain.XPPerMinute
}
