// Package habits implements habit check-ins and measurable goals. Habit
// streaks reuse the engagement streak rules, so a habit behaves exactly like
// the study streak: same-day check-ins are idempotent, gaps reset to 1.
package habits

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

// Service manages habits and goals.
type Service struct {
	db *sqlite.DB
}

// NewService creates a habits service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// ─── Habits ─────────────────────────────────────────────────────────────────

// CreateHabit registers a new habit with an empty streak.
func (s *Service) CreateHabit(userID, title, category string) (domain.Habit, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Habit{}, domain.ErrEmptySubject
	}

	habit := domain.Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Category:  category,
		CreatedAt: time.Now(),
	}
	if err := s.db.InsertHabit(habit); err != nil {
		return domain.Habit{}, fmt.Errorf("insert habit: %w", err)
	}
	return habit, nil
}

// Habits lists the user's habits.
func (s *Service) Habits(userID string) ([]domain.Habit, error) {
	return s.db.ListHabits(userID)
}

// CheckIn marks a habit done for the given day and returns the updated habit.
// A zero day means today.
func (s *Service) CheckIn(userID, habitID string, day time.Time) (domain.Habit, error) {
	habit, err := s.db.GetHabit(userID, habitID)
	if err != nil {
		return domain.Habit{}, err
	}

	if day.IsZero() {
		day = time.Now()
	}
	updated := engagement.UpdateStreak(habit.Streak, day)
	if updated == habit.Streak {
		return *habit, nil // Same-day repeat or backdated — nothing to persist
	}

	if err := s.db.SaveHabitStreak(userID, habitID, updated); err != nil {
		return domain.Habit{}, fmt.Errorf("save habit streak: %w", err)
	}
	metrics.HabitCheckins.Inc()

	habit.Streak = updated
	return *habit, nil
}

// DeleteHabit removes a habit and its streak.
func (s *Service) DeleteHabit(userID, habitID string) error {
	return s.db.DeleteHabit(userID, habitID)
}

// ─── Goals ──────────────────────────────────────────────────────────────────

// CreateGoal registers a measurable goal.
func (s *Service) CreateGoal(userID, title string, targetValue int) (domain.Goal, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Goal{}, domain.ErrEmptySubject
	}
	if targetValue <= 0 {
		return domain.Goal{}, domain.ErrInvalidAmount
	}

	goal := domain.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		TargetValue: targetValue,
		Status:      domain.GoalActive,
		CreatedAt:   time.Now(),
	}
	if err := s.db.InsertGoal(goal); err != nil {
		return domain.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	return goal, nil
}

// Goals lists the user's goals.
func (s *Service) Goals(userID string) ([]domain.Goal, error) {
	return s.db.ListGoals(userID)
}

// Progress adds delta to a goal's current value and completes it when the
// target is reached. Progress on a completed goal is rejected.
func (s *Service) Progress(userID, goalID string, delta int) (domain.Goal, error) {
	if delta <= 0 {
		return domain.Goal{}, domain.ErrInvalidAmount
	}

	goal, err := s.db.GetGoal(userID, goalID)
	if err != nil {
		return domain.Goal{}, err
	}
	if goal.Status == domain.GoalCompleted {
		return domain.Goal{}, domain.ErrGoalCompleted
	}

	goal.CurrentValue += delta
	if goal.CurrentValue >= goal.TargetValue {
		goal.CurrentValue = goal.TargetValue
		goal.Status = domain.GoalCompleted
		goal.CompletedAt = time.Now()
	}

	if err := s.db.UpdateGoalProgress(*goal); err != nil {
		return domain.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	return *goal, nil
}
