package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kimhsiao/eboard/internal/services"
)

// TagHandler handles the shared tag registry. Tag detail, renames and
// removals only see the caller's own tasks and notes.
type TagHandler struct {
	svc *services.Service
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(svc *services.Service) *TagHandler {
	return &TagHandler{svc: svc}
}

// List handles GET /tags
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]tagPayload, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagPayload{URI: tagURI(t.Name), Name: t.Name})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tags": out})
}

// Get handles GET /tags/{name}
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := actorUser(r)
	detail, err := h.svc.GetTag(r.Context(), actor, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	v := viewOf(actor)
	writeJSON(w, http.StatusOK, tagDetailPayload{
		tagPayload: tagPayload{URI: tagURI(detail.Tag.Name), Name: detail.Tag.Name},
		Tasks:      v.tasks(detail.Tasks),
		Notes:      v.notes(detail.Notes),
	})
}

// Rename handles PUT /tags/{name} with form field name.
func (h *TagHandler) Rename(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.RenameTag(r.Context(), actorUser(r), chi.URLParam(r, "name"), f.get("name")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// Delete handles DELETE /tags/{name}
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveTag(r.Context(), actorUser(r), chi.URLParam(r, "name")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}
