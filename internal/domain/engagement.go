package domain

import "time"

// ─── Streak Types ───────────────────────────────────────────────────────────

// Streak tracks consecutive study days for one user.
// A day counts if at least one session was logged on it.
type Streak struct {
	CurrentDays int       `json:"current_days"`
	LongestDays int       `json:"longest_days"`
	LastDate    time.Time `json:"last_date"` // Zero when no session was ever logged
}

// ─── Level / XP Types ───────────────────────────────────────────────────────

// XP constants. The bracket is linear: every level costs the same 100 XP,
// and every study minute earns 2 XP.
const (
	XPPerLevel  = 100
	XPPerMinute = 2
)

// LevelInfo is derived state: always recomputed from the live sum of
// per-session XP, never trusted from a cache.
type LevelInfo struct {
	TotalXP  int `json:"total_xp"`
	Level    int `json:"level"`
	XPToNext int `json:"xp_to_next_level"`
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// RequirementKind selects which stat an achievement threshold applies to.
type RequirementKind string

const (
	ReqStudyTime   RequirementKind = "study_time"   // Total minutes across all sessions
	ReqStreak      RequirementKind = "streak"       // Current streak length in days
	ReqSubjectArea RequirementKind = "subject_area" // Session count in TargetArea
	ReqAllAreas    RequirementKind = "all_areas"    // Session count in every core area
)

// AchievementDef is catalog reference data: the engine reads it, never writes.
// TargetArea binds subject_area achievements to their area explicitly; it is
// empty for the other kinds.
type AchievementDef struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	RewardXP         int             `json:"reward_xp"`
	Requirement      RequirementKind `json:"requirement_type"`
	RequirementValue int             `json:"requirement_value"`
	TargetArea       Area            `json:"target_area,omitempty"`
}

// UnlockedAchievement records that a user earned an achievement.
// At most one record per (user, achievement) pair.
type UnlockedAchievement struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// UserStats is the aggregated snapshot fed to achievement evaluation and
// surfaced on the stats endpoints. Rebuilt from the full session log.
type UserStats struct {
	TotalMinutes     int          `json:"total_minutes"`
	TotalXP          int          `json:"total_xp"`
	Level            int          `json:"level"`
	XPToNext         int          `json:"xp_to_next_level"`
	CurrentStreak    int          `json:"current_streak"`
	LongestStreak    int          `json:"longest_streak"`
	SessionsThisWeek int          `json:"sessions_this_week"`
	SessionsByArea   map[Area]int `json:"sessions_by_area"`
}

// SessionResult is what the orchestrator hands back after a logging action.
type SessionResult struct {
	Session       StudySession     `json:"session"`
	Streak        Streak           `json:"streak"`
	Level         LevelInfo        `json:"level"`
	NewlyUnlocked []AchievementDef `json:"newly_unlocked"`
}

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes engagement notifications.
type NotificationType string

const (
	NotifyAchievement  NotificationType = "achievement"
	NotifyLevelUp      NotificationType = "level_up"
	NotifyDailySummary NotificationType = "daily_summary"
	NotifyReminder     NotificationType = "reminder"
)

// Notification is a user-facing message queued for display.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy caps how often notifications are created.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy is deliberately quiet: at most three messages a
// day, none at night.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  3,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}
