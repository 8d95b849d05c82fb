package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
	"github.com/lexprep/lexprep/internal/sessionstore"
)

// handleLogin exchanges credentials for an upstream bearer token and
// establishes a local web session bound to it.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).WithPrefix("auth")

	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if creds.Email == "" || creds.Password == "" {
		handleError(w, r, errors.NewValidationError("credentials", "email and password are required"))
		return
	}

	result, err := s.AuthAPI.Login(r.Context(), creds)
	if err != nil {
		handleError(w, r, err)
		return
	}

	now := time.Now()
	sess := sessionstore.Session{
		ID:          uuid.NewString(),
		UserID:      result.User.ID,
		Email:       result.User.Email,
		BearerToken: result.Token,
		CreatedAt:   now,
		ExpiresAt:   sessionstore.TokenExpiry(result.Token, now, s.SessionTTL),
	}
	if err := s.Sessions.Create(r.Context(), sess); err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	s.setSessionCookie(w, sess.ID, sess.ExpiresAt)
	log.Info("user logged in: user_id=%d", result.User.ID)

	respondJSON(w, r, http.StatusOK, map[string]any{
		"user":       result.User,
		"expires_at": sess.ExpiresAt,
	})
}

// handleLogout tears down the web session. The upstream logout is best
// effort; the local session is gone either way.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).WithPrefix("auth")
	sess := sessionFromContext(r.Context())

	if err := s.AuthAPI.Logout(r.Context(), authFromContext(r.Context())); err != nil {
		log.Warn("upstream logout failed: %v", err)
	}

	if err := s.Sessions.Delete(r.Context(), sess.ID); err != nil {
		log.Error("failed to delete session: %v", err)
	}
	s.Exams.Remove(sess.ID)
	s.Quizzes.Remove(sess.ID)
	s.clearSessionCookie(w)

	log.Info("user logged out: user_id=%d", sess.UserID)
	w.WriteHeader(http.StatusNoContent)
}
