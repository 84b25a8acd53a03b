package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Validation errors. Raised before any store call, so they never leave
	// partial state behind.
	ErrEmptySubject    = errors.New("subject must not be empty")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrEmptyUserID     = errors.New("user id must not be empty")

	// Lookup errors
	ErrSessionNotFound     = errors.New("study session not found")
	ErrHabitNotFound       = errors.New("habit not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAchievementNotFound = errors.New("achievement not found")

	// Finance errors
	ErrInsufficientFunds = errors.New("insufficient account balance")
	ErrSameAccount       = errors.New("transfer source and destination must differ")
	ErrInvalidAmount     = errors.New("amount must be positive")

	// Goal errors
	ErrGoalCompleted = errors.New("goal is already completed")
)
