package engagement

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyflow-app/studyflow/internal/domain"
	"github.com/studyflow-app/studyflow/internal/infra/metrics"
)

// Service is the gamification orchestrator. A logging action runs the strict
// sequence: validate → append session → update streak → recompute level →
// evaluate achievements → persist unlocks. The session insert is the
// transaction boundary: if it fails, nothing else is written. Failures in the
// derived steps are logged, not rolled back — the next action rebuilds all
// derived state from the full log, so stale records self-correct.
type Service struct {
	store    domain.EngagementStore
	notifier *NotificationService // Optional; nil disables notifications
	now      func() time.Time
}

// NewService creates the orchestrator. notifier may be nil.
func NewService(store domain.EngagementStore, notifier *NotificationService) *Service {
	return &Service{store: store, notifier: notifier, now: time.Now}
}

// LogSession records one study session and updates all derived state.
// date may be zero, meaning today. Validation errors surface before any
// store call; a store error after the session insert returns the partially
// updated result alongside the error.
func (s *Service) LogSession(userID, subject string, minutes int, notes string, date time.Time) (domain.SessionResult, error) {
	var result domain.SessionResult

	userID = strings.TrimSpace(userID)
	subject = strings.TrimSpace(subject)
	switch {
	case userID == "":
		return result, domain.ErrEmptyUserID
	case subject == "":
		return result, domain.ErrEmptySubject
	case minutes <= 0:
		return result, domain.ErrInvalidDuration
	}

	now := s.now()
	if date.IsZero() {
		date = now
	}

	session := domain.StudySession{
		ID:              uuid.NewString(),
		UserID:          userID,
		Subject:         subject,
		Area:            domain.AreaForSubject(subject),
		DurationMinutes: minutes,
		XPEarned:        XPForDuration(minutes),
		Notes:           notes,
		Date:            domain.Day(date),
		CreatedAt:       now,
	}

	// Step 1: append. The only step that may abort the whole action.
	if err := s.store.InsertSession(session); err != nil {
		return result, fmt.Errorf("insert session: %w", err)
	}
	result.Session = session
	metrics.SessionsLogged.WithLabelValues(string(session.Area)).Inc()
	metrics.XPEarned.Add(float64(session.XPEarned))

	// Step 2: streak. Best effort from here on.
	result.Streak = s.updateStreak(userID, session.Date)

	// Steps 3–4: level + achievements need the full log.
	sessions, err := s.store.ListSessions(userID)
	if err != nil {
		return result, fmt.Errorf("list sessions: %w", err)
	}
	stats := AggregateStats(sessions, result.Streak, now)
	result.Level = LevelForXP(stats.TotalXP)

	newly, err := s.unlockNew(userID, stats, now)
	if err != nil {
		return result, err
	}
	result.NewlyUnlocked = newly

	s.notifyProgress(userID, result)
	return result, nil
}

// updateStreak applies the incremental streak rule and persists the record.
// A failed read falls back to a full rebuild on the next action; a failed
// write just leaves the stale record for the same rebuild to fix.
func (s *Service) updateStreak(userID string, day time.Time) domain.Streak {
	prev, err := s.store.GetStreak(userID)
	if err != nil {
		log.Printf("engagement: read streak for %s: %v (continuing with empty record)", userID, err)
	}
	updated := UpdateStreak(prev, day)
	if err := s.store.SaveStreak(userID, updated); err != nil {
		log.Printf("engagement: save streak for %s: %v (derived state stale until next action)", userID, err)
	}
	metrics.StreakDays.Set(float64(updated.CurrentDays))
	return updated
}

// unlockNew evaluates the catalog and persists one unlock row per newly
// qualifying definition. The INSERT OR IGNORE in the store keeps unlocking
// exactly-once even if two actions race.
func (s *Service) unlockNew(userID string, stats domain.UserStats, now time.Time) ([]domain.AchievementDef, error) {
	catalog, err := s.store.ListAchievementDefs()
	if err != nil {
		return nil, fmt.Errorf("list achievement defs: %w", err)
	}
	unlocked, err := s.store.UnlockedIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocked: %w", err)
	}

	var newly []domain.AchievementDef
	for _, def := range Evaluate(stats, catalog, unlocked) {
		isNew, err := s.store.UnlockAchievement(userID, def.ID, now)
		if err != nil {
			return newly, fmt.Errorf("unlock %s: %w", def.ID, err)
		}
		if isNew {
			newly = append(newly, def)
			metrics.AchievementsUnlocked.Inc()
		}
	}
	return newly, nil
}

// notifyProgress queues level-up and achievement notifications, if a notifier
// is wired. Suppression (daily cap, quiet hours) happens inside the notifier.
func (s *Service) notifyProgress(userID string, result domain.SessionResult) {
	if s.notifier == nil {
		return
	}

	prevLevel := LevelForXP(result.Level.TotalXP - result.Session.XPEarned).Level
	if result.Level.Level > prevLevel {
		s.notifier.Notify(userID, domain.NotifyLevelUp,
			fmt.Sprintf("Level %d reached", result.Level.Level),
			fmt.Sprintf("You now have %d XP. %d XP to the next level.", result.Level.TotalXP, result.Level.XPToNext))
	}
	for _, def := range result.NewlyUnlocked {
		s.notifier.Notify(userID, domain.NotifyAchievement,
			fmt.Sprintf("Achievement unlocked: %s", def.Name), def.Description)
	}
}

// DeleteSession removes a session and rebuilds the streak record from the
// remaining log, so deletions do not leave phantom streak days behind.
func (s *Service) DeleteSession(userID, id string) error {
	if err := s.store.DeleteSession(userID, id); err != nil {
		return err
	}

	sessions, err := s.store.ListSessions(userID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	rebuilt := RebuildStreak(sessions)
	if err := s.store.SaveStreak(userID, rebuilt); err != nil {
		return fmt.Errorf("save rebuilt streak: %w", err)
	}
	metrics.StreakDays.Set(float64(rebuilt.CurrentDays))
	return nil
}

// Stats rebuilds the aggregated snapshot from the full session log.
func (s *Service) Stats(userID string) (domain.UserStats, error) {
	sessions, err := s.store.ListSessions(userID)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("list sessions: %w", err)
	}
	streak, err := s.store.GetStreak(userID)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("get streak: %w", err)
	}
	return AggregateStats(sessions, streak, s.now()), nil
}

// Sessions returns the user's session log, newest first.
func (s *Service) Sessions(userID string) ([]domain.StudySession, error) {
	return s.store.ListSessions(userID)
}

// Streak returns the persisted streak record.
func (s *Service) Streak(userID string) (domain.Streak, error) {
	return s.store.GetStreak(userID)
}

// Unlocked returns the user's unlock records, newest first.
func (s *Service) Unlocked(userID string) ([]domain.UnlockedAchievement, error) {
	return s.store.ListUnlocked(userID)
}

// Catalog returns all achievement definitions for display.
func (s *Service) Catalog() ([]domain.AchievementDef, error) {
	return s.store.ListAchievementDefs()
}
