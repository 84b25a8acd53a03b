package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/studyflow-app/studyflow/internal/domain"
)

type createHabitRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	habit, err := s.habits.CreateHabit(userID, req.Title, req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.Habits(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"habits": habits,
	})
}

func (s *Server) handleHabitCheckIn(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	id := chi.URLParam(r, "id")

	habit, err := s.habits.CheckIn(userID, id, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	id := chi.URLParam(r, "id")

	if err := s.habits.DeleteHabit(userID, id); err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type createGoalRequest struct {
	Title       string `json:"title"`
	TargetValue int    `json:"target_value"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := s.habits.CreateGoal(userID, req.Title, req.TargetValue)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.habits.Goals(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"goals": goals,
	})
}

type goalProgressRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	id := chi.URLParam(r, "id")

	var req goalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := s.habits.Progress(userID, id, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrGoalCompleted):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, goal)
}
