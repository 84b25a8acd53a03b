// Package api provides the StudyFlow HTTP API server.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studyflow-app/studyflow/internal/app/engagement"
	"github.com/studyflow-app/studyflow/internal/app/finance"
	"github.com/studyflow-app/studyflow/internal/app/habits"
	"github.com/studyflow-app/studyflow/internal/app/insight"
	"github.com/studyflow-app/studyflow/internal/app/pomodoro"
	"github.com/studyflow-app/studyflow/internal/health"
)

// Version is the API version reported by /api/version.
const Version = "0.1.0"

// Server is the StudyFlow HTTP API server.
type Server struct {
	engagement     *engagement.Service
	notifications  *engagement.NotificationService
	finance        *finance.Service
	habits         *habits.Service
	pomodoro       *pomodoro.Service
	insight        *insight.Service
	checker        *health.Checker
	metricsEnabled bool
}

// NewServer creates an API server over the application services.
func NewServer(
	eng *engagement.Service,
	notif *engagement.NotificationService,
	fin *finance.Service,
	hab *habits.Service,
	pom *pomodoro.Service,
	ins *insight.Service,
) *Server {
	return &Server{
		engagement:    eng,
		notifications: notif,
		finance:       fin,
		habits:        hab,
		pomodoro:      pom,
		insight:       ins,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealthChecker wires the periodic health checker into /health.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Post("/sessions", s.handleLogSession)
		r.Get("/sessions", s.handleListSessions)
		r.Delete("/sessions/{id}", s.handleDeleteSession)

		r.Get("/stats", s.handleStats)
		r.Get("/streak", s.handleStreak)
		r.Get("/achievements", s.handleAchievements)

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)

		r.Post("/habits", s.handleCreateHabit)
		r.Get("/habits", s.handleListHabits)
		r.Post("/habits/{id}/checkin", s.handleHabitCheckIn)
		r.Delete("/habits/{id}", s.handleDeleteHabit)

		r.Post("/goals", s.handleCreateGoal)
		r.Get("/goals", s.handleListGoals)
		r.Post("/goals/{id}/progress", s.handleGoalProgress)

		r.Post("/accounts", s.handleCreateAccount)
		r.Get("/accounts", s.handleListAccounts)
		r.Post("/transactions", s.handleTransaction)
		r.Get("/transactions", s.handleListTransactions)

		r.Post("/pomodoro", s.handlePomodoroComplete)
		r.Get("/pomodoro", s.handlePomodoroHistory)

		r.Get("/insights/motivation", s.handleMotivation)
		r.Get("/insights/analysis", s.handleAnalysis)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := http.StatusOK
	overall := "ok"
	if !s.checker.IsHealthy() {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": s.checker.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
