package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/services"
)

// MilestoneHandler handles the milestones of a project.
type MilestoneHandler struct {
	svc *services.Service
}

// NewMilestoneHandler creates a new MilestoneHandler.
func NewMilestoneHandler(svc *services.Service) *MilestoneHandler {
	return &MilestoneHandler{svc: svc}
}

// List handles GET .../milestones
func (h *MilestoneHandler) List(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	ms, err := h.svc.ListMilestones(r.Context(), target, chi.URLParam(r, "pid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"milestones": viewOf(target).milestones(ms)})
}

// Create handles POST .../milestones. The milestone is appended.
func (h *MilestoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	pid := chi.URLParam(r, "pid")
	m, err := h.svc.CreateMilestone(r.Context(), target, pid, models.NewMilestone{
		Title: f.get("title"),
		Desc:  f.get("desc"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, milestoneURI(target.Username, pid, m.ID))
}

// Get handles GET .../milestones/{mid}
func (h *MilestoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	m, err := h.svc.GetMilestone(r.Context(), target, chi.URLParam(r, "pid"), chi.URLParam(r, "mid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(target).milestone(m))
}

// Update handles PUT .../milestones/{mid}
func (h *MilestoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	upd := models.MilestoneUpdate{
		Title: f.optString("title"),
		Desc:  f.optString("desc"),
	}
	if upd.Position, err = f.optInt("position"); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.svc.UpdateMilestone(r.Context(), target, chi.URLParam(r, "pid"), chi.URLParam(r, "mid"), upd); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// Delete handles DELETE .../milestones/{mid}
func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMilestone(r.Context(), targetUser(r), chi.URLParam(r, "pid"), chi.URLParam(r, "mid")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// Position handles POST .../milestones/{mid}/position with either
// before=<mid> or after=<mid>, form or JSON encoded.
func (h *MilestoneHandler) Position(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var (
		where models.Placement
		ref   string
	)
	switch {
	case f.has("before"):
		where, ref = models.Before, f.get("before")
	case f.has("after"):
		where, ref = models.After, f.get("after")
	default:
		writeError(w, r, apperrors.Invalid("before", "before or after is required"))
		return
	}

	m, err := h.svc.ReorderMilestone(r.Context(), target, chi.URLParam(r, "pid"), chi.URLParam(r, "mid"), where, ref)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(target).milestone(m))
}
