// Package pomodoro records completed focus/break cycle sets. A cycle set
// with a subject also counts as study time: it is logged through the
// gamification orchestrator, so pomodoro work earns XP and advances the
// streak exactly like a manually logged session.
package pomodoro

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyflow-app/studyflow/internal/app/engagement"
	"github.com/studyflow-app/studyflow/internal/domain"
	"github.com/studyflow-app/studyflow/internal/infra/metrics"
	"github.com/studyflow-app/studyflow/internal/infra/sqlite"
)

// Service records pomodoro sessions.
type Service struct {
	db     *sqlite.DB
	engine *engagement.Service
}

// NewService creates a pomodoro service. engine may be nil, in which case
// cycle sets are recorded without feeding the gamification engine.
func NewService(db *sqlite.DB, engine *engagement.Service) *Service {
	return &Service{db: db, engine: engine}
}

// Complete records a finished cycle set. Returns the stored session and, when
// a subject was set and the engine is wired, the gamification result for the
// study time earned.
func (s *Service) Complete(userID, task, subject string, focusMinutes, breakMinutes, cycles int) (domain.PomodoroSession, *domain.SessionResult, error) {
	if strings.TrimSpace(task) == "" {
		return domain.PomodoroSession{}, nil, domain.ErrEmptySubject
	}
	if focusMinutes <= 0 || cycles <= 0 {
		return domain.PomodoroSession{}, nil, domain.ErrInvalidDuration
	}

	now := time.Now()
	session := domain.PomodoroSession{
		ID:           uuid.NewString(),
		UserID:       userID,
		Task:         task,
		Subject:      subject,
		FocusMinutes: focusMinutes,
		BreakMinutes: breakMinutes,
		Cycles:       cycles,
		Date:         domain.Day(now),
		CreatedAt:    now,
	}
	if err := s.db.InsertPomodoro(session); err != nil {
		return domain.PomodoroSession{}, nil, fmt.Errorf("insert pomodoro: %w", err)
	}
	metrics.PomodoroCycles.Add(float64(cycles))

	if s.engine == nil || strings.TrimSpace(subject) == "" {
		return session, nil, nil
	}

	studyMinutes := focusMinutes * cycles
	notes := fmt.Sprintf("Pomodoro: %s (%d × %d min)", task, cycles, focusMinutes)
	result, err := s.engine.LogSession(userID, subject, studyMinutes, notes, now)
	if err != nil {
		return session, nil, fmt.Errorf("log pomodoro study time: %w", err)
	}
	return session, &result, nil
}

// History returns the user's recent cycle sets, newest first.
func (s *Service) History(userID string, limit int) ([]domain.PomodoroSession, error) {
	return s.db.ListPomodoros(userID, limit)
}

// CompletedToday counts cycle sets recorded today.
func (s *Service) CompletedToday(userID string) (int, error) {
	return s.db.PomodoroCountOn(userID, time.Now())
}
