package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/sessionstore"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const (
	sessionContextKey contextKey = "session"
	sessionCookieName            = "lexprep_session"
)

func sessionFromContext(ctx context.Context) *sessionstore.Session {
	if v := ctx.Value(sessionContextKey); v != nil {
		if s, ok := v.(*sessionstore.Session); ok {
			return s
		}
	}
	return nil
}

// authFromContext builds the upstream credentials for the request's session.
func authFromContext(ctx context.Context) examapi.Auth {
	if sess := sessionFromContext(ctx); sess != nil {
		return examapi.Auth{Bearer: sess.BearerToken}
	}
	return examapi.Auth{}
}

// sessionMiddleware loads the web session and rejects requests without a
// live one. Expired sessions are deleted on sight.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			log.Debug("no session cookie")
			handleError(w, r, errors.NewUnauthorizedError())
			return
		}

		sess, err := s.Sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			log.Error("failed to load session: %v", err)
			handleError(w, r, errors.NewInternalError(err))
			return
		}
		if sess == nil {
			log.Debug("session not found, clearing cookie")
			s.clearSessionCookie(w)
			handleError(w, r, errors.NewUnauthorizedError())
			return
		}
		if sess.Expired(time.Now()) {
			log.Debug("session expired, deleting")
			if err := s.Sessions.Delete(r.Context(), sess.ID); err != nil {
				log.Warn("failed to delete expired session: %v", err)
			}
			s.clearSessionCookie(w)
			handleError(w, r, errors.NewUnauthorizedError())
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// generateRequestID creates a random request ID.
func generateRequestID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// loggingMiddleware logs HTTP requests with timing, status codes, and request IDs.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		if r.RemoteAddr != "" {
			log = log.WithField("remote_addr", r.RemoteAddr)
		}

		ctx := logger.NewContext(r.Context(), log)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log = log.WithFields(map[string]any{
			"status":      wrapped.status,
			"size":        wrapped.size,
			"duration_ms": duration.Milliseconds(),
		})

		if wrapped.status >= 500 {
			log.Error("request completed with server error")
		} else if wrapped.status >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware recovers from panics and logs them.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := logger.FromContext(r.Context())
				log.Error("panic recovered: %v", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
