package engagement

import (
	"time"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// AggregateStats folds the full session log into the snapshot the achievement
// evaluator and the stats endpoints consume. Streak fields come from the
// persisted record, not the log — the record carries the incremental rules'
// history, including the backdating no-op a replay would not reproduce.
func AggregateStats(sessions []domain.StudySession, streak domain.Streak, now time.Time) domain.UserStats {
	stats := domain.UserStats{
		CurrentStreak:  streak.CurrentDays,
		LongestStreak:  streak.LongestDays,
		SessionsByArea: make(map[domain.Area]int),
	}

	weekAgo := domain.Day(now).AddDate(0, 0, -7)
	totalXP := 0
	for _, s := range sessions {
		stats.TotalMinutes += s.DurationMinutes
		totalXP += s.XPEarned
		stats.SessionsByArea[s.Area]++
		if !domain.Day(s.Date).Before(weekAgo) {
			stats.SessionsThisWeek++
		}
	}

	level := LevelForXP(totalXP)
	stats.TotalXP = level.TotalXP
	stats.Level = level.Level
	stats.XPToNext = level.XPToNext
	return stats
}
