// Package engagement implements the StudyFlow gamification engine:
// streaks, XP/levels, achievement unlocks, and the orchestrator that ties
// them to the session log. The calculators are pure functions; the
// orchestrator owns persistence and step ordering.
package engagement

import (
	"sort"
	"time"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// UpdateStreak folds one new session day into a streak record.
//
// Rules:
//   - first ever session: {1, 1, day}
//   - same day repeat: unchanged
//   - next calendar day: current+1
//   - gap > 1 day: current resets to 1
//   - backdated day (before LastDate): unchanged — no retroactive recompute
//
// Longest never decreases. Pure function; the caller persists the result.
func UpdateStreak(prev domain.Streak, day time.Time) domain.Streak {
	day = domain.Day(day)

	if prev.LastDate.IsZero() {
		return domain.Streak{CurrentDays: 1, LongestDays: 1, LastDate: day}
	}

	diff := domain.DaysBetween(prev.LastDate, day)
	switch {
	case diff == 0:
		return prev
	case diff < 0:
		// Backdated entry — the streak already counted a later day.
		return prev
	case diff == 1:
		prev.CurrentDays++
	default:
		prev.CurrentDays = 1
	}

	if prev.CurrentDays > prev.LongestDays {
		prev.LongestDays = prev.CurrentDays
	}
	prev.LastDate = day
	return prev
}

// RebuildStreak replays the full session log and returns the streak record it
// implies. Used after deletions, when the incremental record may be stale.
// Sessions may arrive in any order.
func RebuildStreak(sessions []domain.StudySession) domain.Streak {
	days := make(map[time.Time]bool, len(sessions))
	for _, s := range sessions {
		days[domain.Day(s.Date)] = true
	}
	if len(days) == 0 {
		return domain.Streak{}
	}

	ordered := make([]time.Time, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	var streak domain.Streak
	for _, d := range ordered {
		streak = UpdateStreak(streak, d)
	}
	return streak
}
