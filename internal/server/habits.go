package server

import (
	"net/http"

	"github.com/planio-app/planio/internal/middleware"
	"github.com/planio-app/planio/internal/service"
)

type habitRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type habitResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	CompletedDates []string `json:"completed_dates"`
	Streak         int      `json:"streak"`
	DoneToday      bool     `json:"done_today"`
	DoneYesterday  bool     `json:"done_yesterday"`
	CreatedAt      int64    `json:"created_at"`
}

func toHabitResponse(st service.HabitStatus) habitResponse {
	dates := st.Habit.CompletedDates
	if dates == nil {
		dates = []string{}
	}
	return habitResponse{
		ID:             st.Habit.ID,
		Name:           st.Habit.Name,
		Category:       st.Habit.Category,
		CompletedDates: dates,
		Streak:         st.Streak,
		DoneToday:      st.DoneToday,
		DoneYesterday:  st.DoneYesterday,
		CreatedAt:      st.Habit.CreatedAt,
	}
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	statuses, err := s.habits.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]habitResponse, len(statuses))
	for i, st := range statuses {
		resp[i] = toHabitResponse(st)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	habit, err := s.habits.Create(r.Context(), userID, req.Name, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHabitResponse(service.HabitStatus{Habit: habit}))
}

func (s *Server) handleToggleHabit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	status, err := s.habits.ToggleToday(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitResponse(status))
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if _, err := s.habits.Rename(r.Context(), userID, r.PathValue("id"), req.Name, req.Category); err != nil {
		writeError(w, err)
		return
	}

	status, err := s.habits.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitResponse(status))
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.habits.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
