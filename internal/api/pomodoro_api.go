package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/studyflow-app/studyflow/internal/domain"
)

type pomodoroRequest struct {
	Task         string `json:"task"`
	Subject      string `json:"subject"` // optional, credits focus time as a study session
	FocusMinutes int    `json:"focus_minutes"`
	BreakMinutes int    `json:"break_minutes"`
	Cycles       int    `json:"cycles"`
}

func (s *Server) handlePomodoroComplete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req pomodoroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, result, err := s.pomodoro.Complete(userID, req.Task, req.Subject,
		req.FocusMinutes, req.BreakMinutes, req.Cycles)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDuration),
			errors.Is(err, domain.ErrEmptySubject),
			errors.Is(err, domain.ErrEmptyUserID):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	resp := map[string]interface{}{"pomodoro": session}
	if result != nil {
		resp["session_result"] = result
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePomodoroHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	history, err := s.pomodoro.History(chi.URLParam(r, "userID"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pomodoros": history,
	})
}
