package cli

import (
	"fmt"
	"strings"

	"github.com/studyflow-app/studyflow/internal/daemon"
	"github.com/studyflow-app/studyflow/internal/domain"
)

// shortID truncates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveSessionID accepts a full session ID or a unique shortID prefix.
func resolveSessionID(d *daemon.Daemon, userID, ref string) (string, error) {
	sessions, err := d.Engagement.Sessions(userID)
	if err != nil {
		return "", err
	}
	var match string
	for _, s := range sessions {
		if s.ID == ref {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("session id %q is ambiguous", ref)
			}
			match = s.ID
		}
	}
	if match == "" {
		return "", domain.ErrSessionNotFound
	}
	return match, nil
}

// resolveHabitID accepts a full habit ID or a unique shortID prefix.
func resolveHabitID(d *daemon.Daemon, userID, ref string) (string, error) {
	habits, err := d.Habits.Habits(userID)
	if err != nil {
		return "", err
	}
	var match string
	for _, h := range habits {
		if h.ID == ref {
			return h.ID, nil
		}
		if strings.HasPrefix(h.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("habit id %q is ambiguous", ref)
			}
			match = h.ID
		}
	}
	if match == "" {
		return "", domain.ErrHabitNotFound
	}
	return match, nil
}

// resolveGoalID accepts a full goal ID or a unique shortID prefix.
func resolveGoalID(d *daemon.Daemon, userID, ref string) (string, error) {
	goals, err := d.Habits.Goals(userID)
	if err != nil {
		return "", err
	}
	var match string
	for _, g := range goals {
		if g.ID == ref {
			return g.ID, nil
		}
		if strings.HasPrefix(g.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("goal id %q is ambiguous", ref)
			}
			match = g.ID
		}
	}
	if match == "" {
		return "", domain.ErrGoalNotFound
	}
	return match, nil
}

// resolveAccountID accepts an account ID, a unique prefix, or an account name.
func resolveAccountID(d *daemon.Daemon, userID, ref string) (string, error) {
	accounts, err := d.Finance.Accounts(userID)
	if err != nil {
		return "", err
	}
	var match string
	for _, a := range accounts {
		if a.ID == ref || a.Name == ref {
			return a.ID, nil
		}
		if strings.HasPrefix(a.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("account %q is ambiguous", ref)
			}
			match = a.ID
		}
	}
	if match == "" {
		return "", domain.ErrAccountNotFound
	}
	return match, nil
}

// cents renders an integer cent amount for display.
func cents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
