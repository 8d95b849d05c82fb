package api

import (
	"net/http"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/quiz"
)

// handleQuizStart begins a gamified quiz for the topic.
func (s *Server) handleQuizStart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).WithPrefix("quiz")
	sess := sessionFromContext(r.Context())

	topicID, err := parseIDParam(r, "topicID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	engine, err := s.Quizzes.Start(r.Context(), sess.ID, authFromContext(r.Context()), topicID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	state := engine.Snapshot()
	log.Info("quiz started: topic_id=%d attempt_id=%d", topicID, state.Attempt.ID)
	respondJSON(w, r, http.StatusCreated, state)
}

// handleQuizResume reloads an in-progress attempt, e.g. after a page reload.
func (s *Server) handleQuizResume(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	attemptID, err := parseIDParam(r, "attemptID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	engine, err := s.Quizzes.Resume(r.Context(), sess.ID, authFromContext(r.Context()), attemptID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, engine.Snapshot())
}

func (s *Server) quizEngine(r *http.Request) (*quiz.Engine, error) {
	sess := sessionFromContext(r.Context())
	engine := s.Quizzes.Get(sess.ID)
	if engine == nil {
		return nil, errors.NewNotFoundError("quiz session", sess.ID)
	}
	return engine, nil
}

func (s *Server) handleQuizSession(w http.ResponseWriter, r *http.Request) {
	engine, err := s.quizEngine(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, engine.Snapshot())
}

// handleQuizAnswer forwards the answer and relays the authoritative result:
// correctness, lives, points, streak, and the next question if the quiz
// continues.
func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	engine, err := s.quizEngine(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		QuestionID int64  `json:"question_id"`
		Answer     string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.Answer == "" {
		handleError(w, r, errors.NewValidationError("answer", "is required"))
		return
	}

	result, err := engine.SubmitAnswer(r.Context(), req.QuestionID, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"result": result,
		"state":  engine.Snapshot(),
	})
}

// handleQuizFiftyFifty eliminates two wrong options for the current question.
// Single use per quiz; repeat calls return the cached elimination.
func (s *Server) handleQuizFiftyFifty(w http.ResponseWriter, r *http.Request) {
	engine, err := s.quizEngine(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := engine.UseFiftyFifty(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, result)
}

// handleGameProfile returns the user's aggregate points, streak, and badges.
func (s *Server) handleGameProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.QuizAPI.GameProfile(r.Context(), authFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}
