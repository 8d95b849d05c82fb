package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public surface
	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Post("/auth/login", s.handleLogin)

	// Authenticated surface
	r.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Post("/auth/logout", s.handleLogout)

		r.Route("/api", func(r chi.Router) {
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/dashboard/progress", s.handleProgress)
			r.Get("/quizzes", s.handleQuizzesPage)
			r.Get("/my-courses", s.handleMyCourses)
			r.Get("/game-profile", s.handleGameProfile)

			r.Route("/exams", func(r chi.Router) {
				r.Post("/start", s.handleExamStart)
				r.Get("/session", s.handleExamSession)
				r.Post("/session/answer", s.handleExamAnswer)
				r.Post("/session/navigate", s.handleExamNavigate)
				r.Post("/session/speed-reader", s.handleExamSpeedReader)
				r.Post("/session/finish", s.handleExamFinish)
				r.Get("/{attemptID}/results", s.handleExamResults)
			})

			r.Route("/quiz", func(r chi.Router) {
				r.Post("/topics/{topicID}/start", s.handleQuizStart)
				r.Post("/attempts/{attemptID}/resume", s.handleQuizResume)
				r.Get("/session", s.handleQuizSession)
				r.Post("/session/answer", s.handleQuizAnswer)
				r.Post("/session/fifty-fifty", s.handleQuizFiftyFifty)
			})

			r.Route("/flashcards", func(r chi.Router) {
				r.Get("/", s.handleFlashcardDecks)
				r.Get("/{deckID}/study", s.handleFlashcardStudy)
				r.Post("/{deckID}/progress", s.handleFlashcardProgress)
			})

			r.Route("/videos", func(r chi.Router) {
				r.Get("/", s.handleVideos)
				r.Get("/{videoID}", s.handleVideo)
				r.Post("/{videoID}/progress", s.handleVideoProgress)
			})

			r.Route("/summary-notes", func(r chi.Router) {
				r.Get("/", s.handleSummaryNotes)
				r.Get("/{noteID}/chapters", s.handleNoteChapters)
				r.Get("/chapters/{chapterID}", s.handleNoteChapter)
				r.Post("/chapters/{chapterID}/progress", s.handleReadingProgress)
			})
		})
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}
