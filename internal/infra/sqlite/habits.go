package sqlite

import (
	"database/sql"
	"time"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// ─── Habits ─────────────────────────────────────────────────────────────────

// InsertHabit creates a habit.
func (d *DB) InsertHabit(h domain.Habit) error {
	_, err := d.db.Exec(
		`INSERT INTO habits (id, user_id, title, category, current_days, longest_days, last_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.UserID, h.Title, h.Category,
		h.Streak.CurrentDays, h.Streak.LongestDays, dayString(h.Streak.LastDate), h.CreatedAt.Unix(),
	)
	return err
}

// GetHabit retrieves one habit; ErrHabitNotFound when absent.
func (d *DB) GetHabit(userID, id string) (*domain.Habit, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, title, category, current_days, longest_days, last_date, created_at
		 FROM habits WHERE user_id = ? AND id = ?`, userID, id,
	)
	h, err := scanHabit(row)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrHabitNotFound
	}
	return h, nil
}

// ListHabits returns all habits for a user, oldest first.
func (d *DB) ListHabits(userID string) ([]domain.Habit, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, title, category, current_days, longest_days, last_date, created_at
		 FROM habits WHERE user_id = ? ORDER BY created_at ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// SaveHabitStreak updates a habit's streak columns.
func (d *DB) SaveHabitStreak(userID, id string, s domain.Streak) error {
	result, err := d.db.Exec(
		`UPDATE habits SET current_days = ?, longest_days = ?, last_date = ?
		 WHERE user_id = ? AND id = ?`,
		s.CurrentDays, s.LongestDays, dayString(s.LastDate), userID, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

// DeleteHabit removes a habit.
func (d *DB) DeleteHabit(userID, id string) error {
	result, err := d.db.Exec(`DELETE FROM habits WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func scanHabit(s scanner) (*domain.Habit, error) {
	var h domain.Habit
	var lastDate string
	var createdAt int64

	err := s.Scan(&h.ID, &h.UserID, &h.Title, &h.Category,
		&h.Streak.CurrentDays, &h.Streak.LongestDays, &lastDate, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	h.Streak.LastDate = parseDay(lastDate)
	h.CreatedAt = time.Unix(createdAt, 0)
	return &h, nil
}

// ─── Goals ──────────────────────────────────────────────────────────────────

// InsertGoal creates a goal.
func (d *DB) InsertGoal(g domain.Goal) error {
	_, err := d.db.Exec(
		`INSERT INTO goals (id, user_id, title, target_value, current_value, status, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.TargetValue, g.CurrentValue,
		string(g.Status), g.CreatedAt.Unix(), nullableUnix(g.CompletedAt),
	)
	return err
}

// GetGoal retrieves one goal; ErrGoalNotFound when absent.
func (d *DB) GetGoal(userID, id string) (*domain.Goal, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, title, target_value, current_value, status, created_at, completed_at
		 FROM goals WHERE user_id = ? AND id = ?`, userID, id,
	)
	g, err := scanGoal(row)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrGoalNotFound
	}
	return g, nil
}

// ListGoals returns all goals for a user, oldest first.
func (d *DB) ListGoals(userID string) ([]domain.Goal, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, title, target_value, current_value, status, created_at, completed_at
		 FROM goals WHERE user_id = ? ORDER BY created_at ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// UpdateGoalProgress writes a goal's progress and status.
func (d *DB) UpdateGoalProgress(g domain.Goal) error {
	result, err := d.db.Exec(
		`UPDATE goals SET current_value = ?, status = ?, completed_at = ?
		 WHERE user_id = ? AND id = ?`,
		g.CurrentValue, string(g.Status), nullableUnix(g.CompletedAt), g.UserID, g.ID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func scanGoal(s scanner) (*domain.Goal, error) {
	var g domain.Goal
	var status string
	var createdAt int64
	var completedAt sql.NullInt64

	err := s.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetValue,
		&g.CurrentValue, &status, &createdAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g.Status = domain.GoalStatus(status)
	g.CreatedAt = time.Unix(createdAt, 0)
	if completedAt.Valid {
		g.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	return &g, nil
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
