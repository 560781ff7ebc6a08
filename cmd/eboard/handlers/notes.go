package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/services"
)

// NoteHandler handles notes under a user or under a project.
type NoteHandler struct {
	svc *services.Service
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(svc *services.Service) *NoteHandler {
	return &NoteHandler{svc: svc}
}

func (h *NoteHandler) routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{nid}", h.Get)
	r.Put("/{nid}", h.Update)
	r.Delete("/{nid}", h.Delete)
}

func noteScope(r *http.Request) services.NoteScope {
	return services.NoteScope{ProjectID: chi.URLParam(r, "pid")}
}

// List handles GET .../notes
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	notes, err := h.svc.ListNotes(r.Context(), target, noteScope(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notes": viewOf(target).notes(notes)})
}

// Create handles POST .../notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.svc.CreateNote(r.Context(), target, noteScope(r), models.NewNote{
		Title: f.get("title"),
		Body:  f.get("body"),
		Tags:  f.tags(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, noteURI(target.Username, n))
}

// Get handles GET .../notes/{nid}
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	n, err := h.svc.GetNote(r.Context(), target, noteScope(r), chi.URLParam(r, "nid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(target).note(n))
}

// Update handles PUT .../notes/{nid}
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	upd := models.NoteUpdate{
		Title: f.optString("title"),
		Body:  f.optString("body"),
		Tags:  f.optTags(),
	}
	if _, err := h.svc.UpdateNote(r.Context(), target, noteScope(r), chi.URLParam(r, "nid"), upd); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// Delete handles DELETE .../notes/{nid}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteNote(r.Context(), targetUser(r), noteScope(r), chi.URLParam(r, "nid")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}
