package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/services"
	"github.com/kimhsiao/eboard/internal/timez"
)

// ProjectHandler handles projects.
type ProjectHandler struct {
	svc *services.Service
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *services.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List handles GET /users/{username}/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	projects, err := h.svc.ListProjects(r.Context(), target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": viewOf(target).projects(projects)})
}

// Create handles POST /users/{username}/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	in := models.NewProject{
		Name:          f.get("name"),
		Desc:          f.get("desc"),
		Active:        f.boolOr("active", false),
		Complete:      f.boolOr("complete", false),
		DeadlineEvent: f.boolOr("deadline_event", true),
	}
	if in.Deadline, err = f.deadline("deadline"); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.CreateProject(r.Context(), target, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, projectURI(target.Username, p.ID))
}

// Get handles GET /users/{username}/projects/{pid}. with_tasks=Y inlines
// each milestone's tasks.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	withTasks := parseBool(r.URL.Query().Get("with_tasks"))
	p, err := h.svc.GetProject(r.Context(), target, chi.URLParam(r, "pid"), withTasks)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(target).project(p))
}

// Update handles PUT /users/{username}/projects/{pid}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	upd := models.ProjectUpdate{
		Name:     f.optString("name"),
		Desc:     f.optString("desc"),
		Active:   f.optBool("active"),
		Complete: f.optBool("complete"),
	}
	if upd.Deadline, err = f.optTime("deadline", timez.ParseShort); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.svc.UpdateProject(r.Context(), target, chi.URLParam(r, "pid"), upd); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// Delete handles DELETE /users/{username}/projects/{pid}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), targetUser(r), chi.URLParam(r, "pid")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}
