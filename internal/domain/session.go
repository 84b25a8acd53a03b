// Package domain holds the StudyFlow core types and the interfaces between
// layers. Everything here is pure — no storage, no HTTP, no clocks beyond
// the timestamps carried in the types themselves.
package domain

import "time"

// StudySession is one logged unit of study work. Sessions are immutable once
// created; deleting one triggers a full rebuild of derived state.
type StudySession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Subject         string    `json:"subject"`
	Area            Area      `json:"area"`
	DurationMinutes int       `json:"duration_minutes"`
	XPEarned        int       `json:"xp_earned"`
	Notes           string    `json:"notes,omitempty"`
	Date            time.Time `json:"date"` // Calendar day, normalized to midnight UTC
	CreatedAt       time.Time `json:"created_at"`
}

// Day normalizes a timestamp to midnight UTC. Streak arithmetic and session
// dates only care about the calendar day, never the time of day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day difference to − from after both are
// normalized. Negative when to precedes from (a backdated entry).
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}
