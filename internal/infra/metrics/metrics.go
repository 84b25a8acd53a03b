// Package metrics provides Prometheus collectors for StudyFlow: counters and
// gauges for logged sessions, XP, streaks, achievements, finance activity,
// and AI insight calls. Exposed on /metrics when enabled in config.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Engagement ─────────────────────────────────────────────────────────────

// SessionsLogged tracks logged study sessions by area.
var SessionsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "studyflow",
	Name:      "sessions_logged_total",
	Help:      "Total study sessions logged.",
}, []string{"area"})

// XPEarned tracks total XP earned across all sessions.
var XPEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "studyflow",
	Name:      "xp_earned_total",
	Help:      "Total XP earned.",
})

// StreakDays tracks the current streak length after the last update.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "studyflow",
	Name:      "streak_current_days",
	Help:      "Current streak length in days after the last logging action.",
})

// AchievementsUnlocked tracks achievement unlock events.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "studyflow",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// ─── Habits / Pomodoro ──────────────────────────────────────────────────────

// HabitCheckins tracks habit check-in events.
var HabitCheckins = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "studyflow",
	Name:      "habit_checkins_total",
	Help:      "Total habit check-ins.",
})

// PomodoroCycles tracks completed pomodoro cycles.
var PomodoroCycles = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "studyflow",
	Name:      "pomodoro_cycles_total",
	Help:      "Total completed pomodoro cycles.",
})

// ─── Finance ────────────────────────────────────────────────────────────────

// LedgerEntries tracks ledger rows written by transaction type.
var LedgerEntries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "studyflow",
	Name:      "ledger_entries_total",
	Help:      "Total ledger entries written.",
}, []string{"type"})

// ─── AI Insights ────────────────────────────────────────────────────────────

// InsightRequests tracks AI insight calls by outcome (ok, fallback).
var InsightRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "studyflow",
	Name:      "insight_requests_total",
	Help:      "Total AI insight requests by outcome.",
}, []string{"outcome"})
