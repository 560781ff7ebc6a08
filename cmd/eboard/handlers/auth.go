package handlers

import (
	"net/http"

	"github.com/kimhsiao/eboard/internal/logging"
	"github.com/kimhsiao/eboard/internal/services"
	"github.com/kimhsiao/eboard/internal/session"
)

// AuthHandler handles login, logout and health checks.
type AuthHandler struct {
	svc      *services.Service
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *services.Service, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions}
}

// Health handles GET /healthz
func (h *AuthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.svc.Authenticate(r.Context(), f.get("username"), f.get("password"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.sessions.Issue(w, r, u.ID); err != nil {
		writeError(w, r, err)
		return
	}

	logging.Info("user logged in", map[string]interface{}{"user_id": u.ID})
	noContent(w)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	noContent(w)
}
