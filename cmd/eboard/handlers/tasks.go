package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/services"
	"github.com/kimhsiao/eboard/internal/timez"
)

// TaskHandler handles tasks under a user or under a milestone.
type TaskHandler struct {
	svc *services.Service
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *services.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func (h *TaskHandler) routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{tid}", h.Get)
	r.Put("/{tid}", h.Update)
	r.Delete("/{tid}", h.Delete)
}

func taskScope(r *http.Request) services.TaskScope {
	return services.TaskScope{
		ProjectID:   chi.URLParam(r, "pid"),
		MilestoneID: chi.URLParam(r, "mid"),
	}
}

// List handles GET .../tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	tasks, err := h.svc.ListTasks(r.Context(), target, taskScope(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": viewOf(target).tasks(tasks)})
}

// Create handles POST .../tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	in := models.NewTask{
		Title:         f.get("title"),
		Body:          f.get("body"),
		Active:        f.boolOr("active", false),
		Complete:      f.boolOr("complete", false),
		Tags:          f.tags(),
		DeadlineEvent: f.boolOr("deadline_event", true),
		MilestoneID:   f.get("milestone_id"),
	}
	if in.Deadline, err = f.deadline("deadline"); err != nil {
		writeError(w, r, err)
		return
	}
	if in.Importance, err = f.intOr("importance", 0); err != nil {
		writeError(w, r, err)
		return
	}
	if in.Urgency, err = f.intOr("urgency", 0); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.svc.CreateTask(r.Context(), target, taskScope(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, taskURI(target.Username, t))
}

// Get handles GET .../tasks/{tid}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	t, err := h.svc.GetTask(r.Context(), target, taskScope(r), chi.URLParam(r, "tid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(target).task(t, true))
}

// Update handles PUT .../tasks/{tid}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	upd := models.TaskUpdate{
		Title:       f.optString("title"),
		Body:        f.optString("body"),
		Active:      f.optBool("active"),
		Complete:    f.optBool("complete"),
		Tags:        f.optTags(),
		MilestoneID: f.optString("milestone_id"),
	}
	if upd.Deadline, err = f.optTime("deadline", timez.ParseShort); err != nil {
		writeError(w, r, err)
		return
	}
	if upd.Importance, err = f.optInt("importance"); err != nil {
		writeError(w, r, err)
		return
	}
	if upd.Urgency, err = f.optInt("urgency"); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.svc.UpdateTask(r.Context(), target, taskScope(r), chi.URLParam(r, "tid"), upd); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// Delete handles DELETE .../tasks/{tid}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTask(r.Context(), targetUser(r), taskScope(r), chi.URLParam(r, "tid")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}
