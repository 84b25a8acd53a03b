package domain

import "time"

// ─── Store Interfaces ───────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// SessionStore is the event log accessor. ListSessions makes no ordering
// guarantee; InsertSession is the transaction boundary for a logging action.
type SessionStore interface {
	InsertSession(s StudySession) error
	ListSessions(userID string) ([]StudySession, error)
	GetSession(userID, id string) (*StudySession, error)
	DeleteSession(userID, id string) error
}

// StreakStore persists the per-user streak record. The record is a cache
// rebuildable from the session log, not a source of truth.
type StreakStore interface {
	GetStreak(userID string) (Streak, error)
	SaveStreak(userID string, s Streak) error
}

// AchievementStore holds the read-only catalog and per-user unlock records.
// UnlockAchievement reports false when the pair already existed.
type AchievementStore interface {
	ListAchievementDefs() ([]AchievementDef, error)
	UpsertAchievementDef(def AchievementDef) error
	UnlockAchievement(userID, achievementID string, at time.Time) (bool, error)
	ListUnlocked(userID string) ([]UnlockedAchievement, error)
	UnlockedIDs(userID string) (map[string]bool, error)
}

// NotificationStore persists engagement notifications.
type NotificationStore interface {
	InsertNotification(n Notification) (int64, error)
	ListPendingNotifications(userID string, limit int) ([]Notification, error)
	MarkNotificationShown(id int64) error
	NotificationCountToday(userID string, now time.Time) (int, error)
}

// EngagementStore is everything the gamification orchestrator needs.
type EngagementStore interface {
	SessionStore
	StreakStore
	AchievementStore
}
