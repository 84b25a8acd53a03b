package domain

import "time"

// ─── Habit Types ────────────────────────────────────────────────────────────

// Habit is a recurring practice the user checks in on. Each habit carries its
// own streak, updated with the same rules as the study streak.
type Habit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Streak    Streak    `json:"streak"`
	CreatedAt time.Time `json:"created_at"`
}

// ─── Goal Types ─────────────────────────────────────────────────────────────

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

// Goal is a measurable target with accumulated progress.
type Goal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	TargetValue  int        `json:"target_value"`
	CurrentValue int        `json:"current_value"`
	Status       GoalStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  time.Time  `json:"completed_at,omitempty"`
}

// ProgressPct returns completion percentage (0-100).
func (g Goal) ProgressPct() float64 {
	if g.TargetValue <= 0 {
		return 100.0
	}
	pct := float64(g.CurrentValue) / float64(g.TargetValue) * 100.0
	if pct > 100.0 {
		pct = 100.0
	}
	return pct
}
