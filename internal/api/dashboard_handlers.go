package api

import (
	"net/http"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := s.DashboardAPI.DashboardPage(r.Context(), authFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	page, err := s.DashboardAPI.ProgressPage(r.Context(), authFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleQuizzesPage(w http.ResponseWriter, r *http.Request) {
	topics, err := s.DashboardAPI.QuizzesPage(r.Context(), authFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"topics": topics})
}

func (s *Server) handleMyCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.DashboardAPI.MyCourses(r.Context(), authFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"courses": courses})
}
