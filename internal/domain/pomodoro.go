package domain

import "time"

// PomodoroSession records one completed focus/break cycle set. When a subject
// is set, the focus time is also logged as a study session through the
// gamification orchestrator, so pomodoro work earns XP like manual logging.
type PomodoroSession struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Task         string    `json:"task"`
	Subject      string    `json:"subject,omitempty"`
	FocusMinutes int       `json:"focus_minutes"`
	BreakMinutes int       `json:"break_minutes"`
	Cycles       int       `json:"cycles"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}
