package sqlite

import (
	"database/sql"
	"time"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// ─── Session Log ────────────────────────────────────────────────────────────

// InsertSession appends a session to the event log.
func (d *DB) InsertSession(s domain.StudySession) error {
	_, err := d.db.Exec(
		`INSERT INTO study_sessions (id, user_id, subject, area, duration_minutes, xp_earned, notes, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Subject, string(s.Area), s.DurationMinutes,
		s.XPEarned, s.Notes, dayString(s.Date), s.CreatedAt.Unix(),
	)
	return err
}

// ListSessions returns all sessions for a user, newest date first.
// Callers that recompute derived state must not rely on the ordering.
func (d *DB) ListSessions(userID string) ([]domain.StudySession, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, subject, area, duration_minutes, xp_earned, notes, date, created_at
		 FROM study_sessions WHERE user_id = ? ORDER BY date DESC, created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.StudySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// GetSession retrieves a single session. Returns ErrSessionNotFound when the
// id does not exist for this user.
func (d *DB) GetSession(userID, id string) (*domain.StudySession, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, subject, area, duration_minutes, xp_earned, notes, date, created_at
		 FROM study_sessions WHERE user_id = ? AND id = ?`, userID, id,
	)
	s, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// DeleteSession removes a session from the log.
func (d *DB) DeleteSession(userID, id string) error {
	result, err := d.db.Exec(
		`DELETE FROM study_sessions WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func scanSession(s scanner) (*domain.StudySession, error) {
	var out domain.StudySession
	var area, date string
	var createdAt int64

	err := s.Scan(&out.ID, &out.UserID, &out.Subject, &area,
		&out.DurationMinutes, &out.XPEarned, &out.Notes, &date, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	out.Area = domain.Area(area)
	out.Date = parseDay(date)
	out.CreatedAt = time.Unix(createdAt, 0)
	return &out, nil
}
