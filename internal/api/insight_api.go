package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleMotivation(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := s.engagement.Stats(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": s.insight.Motivation(r.Context(), stats),
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := s.engagement.Stats(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	habits, err := s.habits.Habits(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	goals, err := s.habits.Goals(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.insight.Analyze(r.Context(), habits, goals, stats))
}
