// Package catalog provides the achievement catalog: the read-only reference
// data the achievement evaluator runs against. A built-in catalog ships with
// the binary; a TOML file can extend or override it. Definitions are seeded
// into the database at daemon start and treated as read-only afterwards.
package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// Builtin is the built-in achievement catalog. Per-area achievements carry an
// explicit target area rather than relying on keywords in their names.
func Builtin() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Study time ─────────────────────────────────────────────────
		{
			ID: "first_steps", Name: "First Steps", Icon: "🎯", RewardXP: 50,
			Description: "Log your first 30 minutes of study.",
			Requirement: domain.ReqStudyTime, RequirementValue: 30,
		},
		{
			ID: "dedicated_10h", Name: "Dedicated Scholar", Icon: "📚", RewardXP: 150,
			Description: "Reach 10 hours of total study time.",
			Requirement: domain.ReqStudyTime, RequirementValue: 600,
		},
		{
			ID: "marathon_50h", Name: "Study Marathon", Icon: "🏃", RewardXP: 500,
			Description: "Reach 50 hours of total study time.",
			Requirement: domain.ReqStudyTime, RequirementValue: 3000,
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak_3", Name: "Warming Up", Icon: "✨", RewardXP: 75,
			Description: "Study 3 days in a row.",
			Requirement: domain.ReqStreak, RequirementValue: 3,
		},
		{
			ID: "streak_7", Name: "Week Warrior", Icon: "🔥", RewardXP: 200,
			Description: "Study 7 days in a row.",
			Requirement: domain.ReqStreak, RequirementValue: 7,
		},
		{
			ID: "streak_30", Name: "Unstoppable", Icon: "💪", RewardXP: 1000,
			Description: "Study 30 days in a row.",
			Requirement: domain.ReqStreak, RequirementValue: 30,
		},

		// ── Per-area ───────────────────────────────────────────────────
		{
			ID: "linguist", Name: "Linguist", Icon: "🗣️", RewardXP: 250,
			Description: "Complete 10 sessions in language subjects.",
			Requirement: domain.ReqSubjectArea, RequirementValue: 10,
			TargetArea:  domain.AreaLanguages,
		},
		{
			ID: "humanist", Name: "Humanist", Icon: "🏛️", RewardXP: 250,
			Description: "Complete 10 sessions in the humanities.",
			Requirement: domain.ReqSubjectArea, RequirementValue: 10,
			TargetArea:  domain.AreaHumanities,
		},
		{
			ID: "scientist", Name: "Scientist", Icon: "🔬", RewardXP: 250,
			Description: "Complete 10 sessions in the natural sciences.",
			Requirement: domain.ReqSubjectArea, RequirementValue: 10,
			TargetArea:  domain.AreaNaturalSciences,
		},
		{
			ID: "mathematician", Name: "Mathematician", Icon: "➗", RewardXP: 250,
			Description: "Complete 10 math sessions.",
			Requirement: domain.ReqSubjectArea, RequirementValue: 10,
			TargetArea:  domain.AreaMath,
		},
		{
			ID: "wordsmith", Name: "Wordsmith", Icon: "✍️", RewardXP: 250,
			Description: "Complete 10 writing sessions.",
			Requirement: domain.ReqSubjectArea, RequirementValue: 10,
			TargetArea:  domain.AreaWriting,
		},

		// ── Coverage ───────────────────────────────────────────────────
		{
			ID: "exam_ready", Name: "Exam Ready", Icon: "🏆", RewardXP: 750,
			Description: "Complete at least 3 sessions in every core area.",
			Requirement: domain.ReqAllAreas, RequirementValue: 3,
		},
	}
}

// fileCatalog is the TOML shape of a catalog file.
type fileCatalog struct {
	Achievement []fileAchievement `toml:"achievement"`
}

type fileAchievement struct {
	ID               string `toml:"id"`
	Name             string `toml:"name"`
	Description      string `toml:"description"`
	Icon             string `toml:"icon"`
	RewardXP         int    `toml:"reward_xp"`
	RequirementType  string `toml:"requirement_type"`
	RequirementValue int    `toml:"requirement_value"`
	TargetArea       string `toml:"target_area"`
}

// LoadFile reads achievement definitions from a TOML catalog file.
func LoadFile(path string) ([]domain.AchievementDef, error) {
	var fc fileCatalog
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	defs := make([]domain.AchievementDef, 0, len(fc.Achievement))
	for _, a := range fc.Achievement {
		if a.ID == "" || a.RequirementType == "" {
			return nil, fmt.Errorf("catalog %s: achievement entries need id and requirement_type", path)
		}
		defs = append(defs, domain.AchievementDef{
			ID:               a.ID,
			Name:             a.Name,
			Description:      a.Description,
			Icon:             a.Icon,
			RewardXP:         a.RewardXP,
			Requirement:      domain.RequirementKind(a.RequirementType),
			RequirementValue: a.RequirementValue,
			TargetArea:       domain.Area(a.TargetArea),
		})
	}
	return defs, nil
}

// Seed upserts definitions into the store. Idempotent — re-seeding the same
// catalog changes nothing.
func Seed(store domain.AchievementStore, defs []domain.AchievementDef) error {
	for _, def := range defs {
		if err := store.UpsertAchievementDef(def); err != nil {
			return fmt.Errorf("seed achievement %s: %w", def.ID, err)
		}
	}
	return nil
}
