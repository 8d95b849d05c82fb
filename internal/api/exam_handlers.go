package api

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/exam"
	"github.com/lexprep/lexprep/internal/logger"
)

// handleExamStart creates a mock exam attempt and boots its server-side
// session, replacing any previous one for this web session.
func (s *Server) handleExamStart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).WithPrefix("exam")
	sess := sessionFromContext(r.Context())

	engine, err := s.Exams.Start(r.Context(), sess.ID, authFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	state := engine.Snapshot()
	log.Info("exam started: attempt_id=%d questions=%d", state.Attempt.ID, len(state.Questions))
	respondJSON(w, r, http.StatusCreated, state)
}

// examEngine resolves the session's active engine or fails with 404.
func (s *Server) examEngine(r *http.Request) (*exam.Engine, error) {
	sess := sessionFromContext(r.Context())
	engine := s.Exams.Get(sess.ID)
	if engine == nil {
		return nil, errors.NewNotFoundError("exam session", sess.ID)
	}
	return engine, nil
}

func (s *Server) handleExamSession(w http.ResponseWriter, r *http.Request) {
	engine, err := s.examEngine(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, engine.Snapshot())
}

func (s *Server) handleExamAnswer(w http.ResponseWriter, r *http.Request) {
	engine, err := s.examEngine(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	rec, err := engine.SelectAnswer(req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"answer":     rec.Answer,
		"is_correct": rec.IsCorrect,
		"state":      engine.Snapshot(),
	})
}

func (s *Server) handleExamNavigate(w http.ResponseWriter, r *http.Request) {
	engine, err := s.examEngine(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	switch req.Direction {
	case "next":
		err = engine.Next()
	case "previous":
		err = engine.Previous()
	default:
		err = errors.NewValidationError("direction", "must be \"next\" or \"previous\"")
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, engine.Snapshot())
}

func (s *Server) handleExamSpeedReader(w http.ResponseWriter, r *http.Request) {
	engine, err := s.examEngine(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := engine.SetSpeedReader(req.Enabled); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, engine.Snapshot())
}

// handleExamFinish completes the attempt. With unanswered questions and no
// confirm flag it returns 409 and the count so the client can ask the user.
func (s *Server) handleExamFinish(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).WithPrefix("exam")
	engine, err := s.examEngine(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	attempt, err := engine.Finish(r.Context(), req.Confirm)
	if err != nil {
		var unanswered *exam.UnansweredError
		if stderrors.As(err, &unanswered) {
			respondJSON(w, r, http.StatusConflict, map[string]any{
				"error": map[string]any{
					"code":             "UNANSWERED_QUESTIONS",
					"message":          unanswered.Error(),
					"unanswered_count": unanswered.Count,
				},
			})
			return
		}
		handleError(w, r, err)
		return
	}

	log.Info("exam finished: attempt_id=%d", attempt.ID)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"attempt":      attempt,
		"results_path": fmt.Sprintf("/api/exams/%d/results", attempt.ID),
	})
}

// handleExamResults fetches the authoritative post-exam review.
func (s *Server) handleExamResults(w http.ResponseWriter, r *http.Request) {
	attemptID, err := parseIDParam(r, "attemptID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	review, err := s.ExamAPI.ExamReview(r.Context(), authFromContext(r.Context()), attemptID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, review)
}
