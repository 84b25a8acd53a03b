package engagement

import "github.com/studyflow-app/studyflow/internal/domain"

// Evaluate returns the catalog definitions whose requirement is newly met:
// qualifying under stats and not present in unlocked. Pure and idempotent —
// re-running with an up-to-date unlocked set returns nothing new. Definitions
// with an unknown requirement kind, or a subject_area requirement without a
// target area, are skipped silently rather than treated as errors.
func Evaluate(stats domain.UserStats, catalog []domain.AchievementDef, unlocked map[string]bool) []domain.AchievementDef {
	var newly []domain.AchievementDef
	for _, def := range catalog {
		if unlocked[def.ID] {
			continue
		}
		if qualifies(stats, def) {
			newly = append(newly, def)
		}
	}
	return newly
}

// qualifies applies one definition's threshold rule to the stats snapshot.
func qualifies(stats domain.UserStats, def domain.AchievementDef) bool {
	switch def.Requirement {
	case domain.ReqStudyTime:
		return stats.TotalMinutes >= def.RequirementValue

	case domain.ReqStreak:
		return stats.CurrentStreak >= def.RequirementValue

	case domain.ReqSubjectArea:
		if def.TargetArea == "" {
			return false
		}
		return stats.SessionsByArea[def.TargetArea] >= def.RequirementValue

	case domain.ReqAllAreas:
		for _, area := range domain.CoreAreas {
			if stats.SessionsByArea[area] < def.RequirementValue {
				return false
			}
		}
		return true

	default:
		return false
	}
}
