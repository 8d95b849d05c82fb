package api

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/lexprep/lexprep/internal/exam"
	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/quiz"
	"github.com/lexprep/lexprep/internal/sessionstore"
	"github.com/lexprep/lexprep/internal/submitqueue"
)

type Server struct {
	Sessions sessionstore.Store

	AuthAPI       examapi.AuthAPI
	ExamAPI       examapi.ExamAPI
	QuizAPI       examapi.TopicQuizAPI
	FlashcardsAPI examapi.FlashcardsAPI
	VideosAPI     examapi.VideosAPI
	NotesAPI      examapi.NotesAPI
	DashboardAPI  examapi.DashboardAPI

	Exams   *exam.Manager
	Quizzes *quiz.Manager
	Queue   submitqueue.Enqueuer

	Templates      *template.Template
	SessionTTL     time.Duration
	CookieSecure   bool
	AllowedOrigins []string
}

type pageData map[string]any

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["session"]; !ok {
		data["session"] = sessionFromContext(r.Context())
	}

	log := logger.FromContext(r.Context())
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
