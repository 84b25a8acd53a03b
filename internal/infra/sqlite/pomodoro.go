package sqlite

import (
	"time"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// InsertPomodoro records one completed pomodoro cycle set.
func (d *DB) InsertPomodoro(p domain.PomodoroSession) error {
	_, err := d.db.Exec(
		`INSERT INTO pomodoro_sessions (id, user_id, task, subject, focus_minutes, break_minutes, cycles, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Task, p.Subject, p.FocusMinutes, p.BreakMinutes,
		p.Cycles, dayString(p.Date), p.CreatedAt.Unix(),
	)
	return err
}

// ListPomodoros returns a user's pomodoro log, newest first.
func (d *DB) ListPomodoros(userID string, limit int) ([]domain.PomodoroSession, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, task, subject, focus_minutes, break_minutes, cycles, date, created_at
		 FROM pomodoro_sessions WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.PomodoroSession
	for rows.Next() {
		var p domain.PomodoroSession
		var date string
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.UserID, &p.Task, &p.Subject, &p.FocusMinutes,
			&p.BreakMinutes, &p.Cycles, &date, &createdAt); err != nil {
			return nil, err
		}
		p.Date = parseDay(date)
		p.CreatedAt = time.Unix(createdAt, 0)
		sessions = append(sessions, p)
	}
	return sessions, rows.Err()
}

// PomodoroCountOn counts cycle sets recorded for a given calendar day.
func (d *DB) PomodoroCountOn(userID string, day time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM pomodoro_sessions WHERE user_id = ? AND date = ?`,
		userID, dayString(day),
	).Scan(&count)
	return count, err
}

// SessionCountOn counts study sessions logged for a given calendar day.
// The reminder scheduler uses this to skip users who already studied today.
func (d *DB) SessionCountOn(userID string, day time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM study_sessions WHERE user_id = ? AND date = ?`,
		userID, dayString(day),
	).Scan(&count)
	return count, err
}

// KnownUserIDs returns every user id that appears in the session log.
func (d *DB) KnownUserIDs() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT user_id FROM study_sessions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
