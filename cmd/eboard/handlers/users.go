package handlers

import (
	"net/http"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/services"
	"github.com/kimhsiao/eboard/internal/session"
)

// UserHandler handles account operations.
type UserHandler struct {
	svc      *services.Service
	sessions *session.Manager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *services.Service, sessions *session.Manager) *UserHandler {
	return &UserHandler{svc: svc, sessions: sessions}
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.svc.CreateUser(r.Context(), models.NewUser{
		Username: f.get("username"),
		Password: f.get("password"),
		Confirm:  f.get("password2"),
		TZ:       f.get("timezone"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, userURI(u.Username))
}

// Get handles GET /users/{username}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	index, err := h.svc.UserIndex(r.Context(), target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(target).userIndex(index))
}

// Update handles PUT /users/{username}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}

	upd := models.UserUpdate{
		Public: f.optBool("public"),
		TZ:     f.optString("timezone"),
	}
	if f.get("password") != "" {
		upd.Password = f.optString("password")
		upd.Confirm = f.optString("password2")
	}
	if _, err := h.svc.UpdateUser(r.Context(), targetUser(r), upd); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// Delete handles DELETE /users/{username}. The account is gone, so the
// answer is 410 and the session ends.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteUser(r.Context(), targetUser(r), f.get("password")); err != nil {
		writeError(w, r, err)
		return
	}
	h.sessions.Clear(w)
	w.WriteHeader(http.StatusGone)
}
