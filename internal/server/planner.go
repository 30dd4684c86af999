package server

import (
	"net/http"

	"github.com/planio-app/planio/internal/middleware"
	"github.com/planio-app/planio/internal/models"
)

type taskRequest struct {
	Title   string `json:"title"`
	Notes   string `json:"notes"`
	Done    bool   `json:"done"`
	DueDate int64  `json:"due_date"`
}

type taskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes,omitempty"`
	Done      bool   `json:"done"`
	DueDate   int64  `json:"due_date,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{ID: t.ID, Title: t.Title, Notes: t.Notes, Done: t.Done, DueDate: t.DueDate, CreatedAt: t.CreatedAt}
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	tasks, err := s.planner.ListTasks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toTaskResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	task, err := s.planner.CreateTask(r.Context(), userID, req.Title, req.Notes, req.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	task, err := s.planner.UpdateTask(r.Context(), userID, r.PathValue("id"), req.Title, req.Notes, req.Done, req.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.planner.DeleteTask(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type noteResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func toNoteResponse(n *models.Note) noteResponse {
	return noteResponse{ID: n.ID, Title: n.Title, Body: n.Body, CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt}
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	notes, err := s.planner.ListNotes(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]noteResponse, len(notes))
	for i, n := range notes {
		resp[i] = toNoteResponse(n)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	note, err := s.planner.CreateNote(r.Context(), userID, req.Title, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	note, err := s.planner.UpdateNote(r.Context(), userID, r.PathValue("id"), req.Title, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.planner.DeleteNote(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type semesterRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type semesterResponse struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	UpdatedAt int64  `json:"updated_at"`
}

func (s *Server) handleGetSemester(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	cfg, err := s.planner.GetSemester(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, semesterResponse{Name: cfg.Name, StartDate: cfg.StartDate, EndDate: cfg.EndDate, UpdatedAt: cfg.UpdatedAt})
}

func (s *Server) handleSetSemester(w http.ResponseWriter, r *http.Request) {
	var req semesterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	cfg, err := s.planner.SetSemester(r.Context(), userID, req.Name, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, semesterResponse{Name: cfg.Name, StartDate: cfg.StartDate, EndDate: cfg.EndDate, UpdatedAt: cfg.UpdatedAt})
}

type timetableRequest struct {
	Course    string `json:"course"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

type timetableResponse struct {
	ID        string `json:"id"`
	Course    string `json:"course"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toTimetableResponse(e *models.TimetableEntry) timetableResponse {
	return timetableResponse{
		ID:        e.ID,
		Course:    e.Course,
		Weekday:   e.Weekday,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Location:  e.Location,
		CreatedAt: e.CreatedAt,
	}
}

func (s *Server) handleListTimetable(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entries, err := s.planner.ListTimetable(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]timetableResponse, len(entries))
	for i, e := range entries {
		resp[i] = toTimetableResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddTimetableEntry(w http.ResponseWriter, r *http.Request) {
	var req timetableRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	entry, err := s.planner.AddTimetableEntry(r.Context(), userID, req.Course, req.Weekday, req.StartTime, req.EndTime, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTimetableResponse(entry))
}

func (s *Server) handleDeleteTimetableEntry(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.planner.DeleteTimetableEntry(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type assignmentRequest struct {
	Course  string `json:"course"`
	Title   string `json:"title"`
	DueDate int64  `json:"due_date"`
}

type assignmentDoneRequest struct {
	Done bool `json:"done"`
}

type assignmentResponse struct {
	ID        string `json:"id"`
	Course    string `json:"course"`
	Title     string `json:"title"`
	DueDate   int64  `json:"due_date"`
	Done      bool   `json:"done"`
	CreatedAt int64  `json:"created_at"`
}

func toAssignmentResponse(a *models.Assignment) assignmentResponse {
	return assignmentResponse{ID: a.ID, Course: a.Course, Title: a.Title, DueDate: a.DueDate, Done: a.Done, CreatedAt: a.CreatedAt}
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	assignments, err := s.planner.ListAssignments(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]assignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = toAssignmentResponse(a)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	a, err := s.planner.AddAssignment(r.Context(), userID, req.Course, req.Title, req.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentResponse(a))
}

func (s *Server) handleSetAssignmentDone(w http.ResponseWriter, r *http.Request) {
	var req assignmentDoneRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	a, err := s.planner.SetAssignmentDone(r.Context(), userID, r.PathValue("id"), req.Done)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentResponse(a))
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.planner.DeleteAssignment(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type examRequest struct {
	Course   string `json:"course"`
	Title    string `json:"title"`
	Date     int64  `json:"date"`
	Location string `json:"location"`
}

type examResponse struct {
	ID        string `json:"id"`
	Course    string `json:"course"`
	Title     string `json:"title"`
	Date      int64  `json:"date"`
	Location  string `json:"location,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toExamResponse(e *models.Exam) examResponse {
	return examResponse{ID: e.ID, Course: e.Course, Title: e.Title, Date: e.Date, Location: e.Location, CreatedAt: e.CreatedAt}
}

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	exams, err := s.planner.ListExams(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]examResponse, len(exams))
	for i, e := range exams {
		resp[i] = toExamResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddExam(w http.ResponseWriter, r *http.Request) {
	var req examRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	exam, err := s.planner.AddExam(r.Context(), userID, req.Course, req.Title, req.Date, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExamResponse(exam))
}

func (s *Server) handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.planner.DeleteExam(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type semesterEventRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type semesterEventResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	CreatedAt int64  `json:"created_at"`
}

func toSemesterEventResponse(ev *models.SemesterEvent) semesterEventResponse {
	return semesterEventResponse{ID: ev.ID, Title: ev.Title, Date: ev.Date, CreatedAt: ev.CreatedAt}
}

func (s *Server) handleListSemesterEvents(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	events, err := s.planner.ListSemesterEvents(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]semesterEventResponse, len(events))
	for i, ev := range events {
		resp[i] = toSemesterEventResponse(ev)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddSemesterEvent(w http.ResponseWriter, r *http.Request) {
	var req semesterEventRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	ev, err := s.planner.AddSemesterEvent(r.Context(), userID, req.Title, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSemesterEventResponse(ev))
}

func (s *Server) handleUpdateSemesterEvent(w http.ResponseWriter, r *http.Request) {
	var req semesterEventRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	ev, err := s.planner.UpdateSemesterEvent(r.Context(), userID, r.PathValue("id"), req.Title, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSemesterEventResponse(ev))
}

func (s *Server) handleDeleteSemesterEvent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.planner.DeleteSemesterEvent(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type eventRequest struct {
	Title    string `json:"title"`
	Date     int64  `json:"date"`
	Location string `json:"location"`
}

type eventResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      int64  `json:"date"`
	Location  string `json:"location,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toEventResponse(ev *models.Event) eventResponse {
	return eventResponse{ID: ev.ID, Title: ev.Title, Date: ev.Date, Location: ev.Location, CreatedAt: ev.CreatedAt}
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	events, err := s.planner.ListEvents(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]eventResponse, len(events))
	for i, ev := range events {
		resp[i] = toEventResponse(ev)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	ev, err := s.planner.AddEvent(r.Context(), userID, req.Title, req.Date, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(ev))
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID := middleware.GetUserID(r.Context())
	ev, err := s.planner.UpdateEvent(r.Context(), userID, r.PathValue("id"), req.Title, req.Date, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(ev))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := s.planner.DeleteEvent(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
