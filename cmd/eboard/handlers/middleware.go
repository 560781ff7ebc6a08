package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kimhsiao/eboard/internal/access"
	"github.com/kimhsiao/eboard/internal/db"
	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/logging"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/services"
	"github.com/kimhsiao/eboard/internal/session"
)

// AccessLog logs one structured line per request.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		logging.Info("request", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
			"remote":      r.RemoteAddr,
			"request_id":  middleware.GetReqID(r.Context()),
		})
	})
}

// Middleware resolves the caller and the target user of a request.
type Middleware struct {
	svc      *services.Service
	users    db.UserFinder
	sessions *session.Manager
	policy   access.Policy
}

// NewMiddleware creates a Middleware.
func NewMiddleware(svc *services.Service, sessions *session.Manager) *Middleware {
	return &Middleware{svc: svc, users: svc.Repository(), sessions: sessions}
}

// Session loads the session user into the request context. A cookie that
// fails validation, or names a user that no longer exists, is cleared and
// the request continues anonymously.
func (m *Middleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.sessions.Read(r)
		if err != nil {
			if err == session.ErrFingerprint {
				logging.Warn("session fingerprint changed", map[string]interface{}{"remote": r.RemoteAddr})
				m.sessions.Clear(w)
			}
			next.ServeHTTP(w, r)
			return
		}

		u, err := m.users.GetUserByID(r.Context(), userID)
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			m.sessions.Clear(w)
			next.ServeHTTP(w, r)
		case err != nil:
			writeError(w, r, err)
		default:
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), u)))
		}
	})
}

// RequireSession rejects anonymous requests with 401.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type targetKey struct{}

// Target resolves {username} and applies the access policy: GET and HEAD
// are reads, everything else is a write.
func (m *Middleware) Target(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target, err := m.svc.GetUser(r.Context(), chi.URLParam(r, "username"))
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			writeError(w, r, err)
			return
		}

		op := access.Write
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			op = access.Read
		}
		actor, _ := session.FromContext(r.Context())

		switch decision := m.policy.Decide(actor, target, op); decision {
		case access.Allow:
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), targetKey{}, target)))
		case access.DenyUnauthorized:
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		default:
			logging.Debug("access denied", map[string]interface{}{
				"path":     r.URL.Path,
				"decision": decision.String(),
			})
			notFound(w, r)
		}
	})
}

// targetUser returns the user named in the path. Only valid behind Target.
func targetUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(targetKey{}).(*models.User)
	return u
}

// actorUser returns the session user. Only valid behind RequireSession.
func actorUser(r *http.Request) *models.User {
	u, _ := session.FromContext(r.Context())
	return u
}
