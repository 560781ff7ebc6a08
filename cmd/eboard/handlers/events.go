package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/services"
	"github.com/kimhsiao/eboard/internal/timez"
)

// EventHandler handles calendar events.
type EventHandler struct {
	svc *services.Service
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *services.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{eid}", h.Get)
	r.Put("/{eid}", h.Update)
	r.Delete("/{eid}", h.Delete)
}

// eventQuery reads start=YYYY-MM-DD, end=YYYY-MM-DD and repeated kind
// parameters. The end day is inclusive.
func eventQuery(r *http.Request, target *models.User) (services.EventQuery, error) {
	var q services.EventQuery
	query := r.URL.Query()
	loc := target.Location()

	if s := strings.TrimSpace(query.Get("start")); s != "" {
		from, err := timez.ParseDate(s, loc)
		if err != nil {
			return q, apperrors.Invalid("start", err.Error())
		}
		q.From = from
	}
	if s := strings.TrimSpace(query.Get("end")); s != "" {
		to, err := timez.ParseDate(s, loc)
		if err != nil {
			return q, apperrors.Invalid("end", err.Error())
		}
		q.Until = timez.NextDay(to, loc)
	}
	for _, k := range query["kind"] {
		switch kind := models.EventKind(strings.ToLower(strings.TrimSpace(k))); kind {
		case models.EventStandalone, models.EventTask, models.EventProject:
			q.Kinds = append(q.Kinds, kind)
		default:
			return q, apperrors.Invalid("kind", "unknown event kind")
		}
	}
	return q, nil
}

// eventFields reads the writable event attributes present in f.
func eventFields(f form) (models.EventFields, error) {
	fields := models.EventFields{
		Title:           f.optString("title"),
		AllDay:          f.optBool("allDay"),
		ClassName:       f.optString("className"),
		Color:           f.optString("color"),
		TextColor:       f.optString("textColor"),
		BackgroundColor: f.optString("backgroundColor"),
		BorderColor:     f.optString("borderColor"),
		Desc:            f.optString("desc"),
		URL:             f.optString("url"),
	}
	var err error
	if fields.Start, err = f.optTime("start", timez.ParseShortOrDate); err != nil {
		return fields, err
	}
	if fields.End, err = f.optTime("end", timez.ParseShortOrDate); err != nil {
		return fields, err
	}
	return fields, nil
}

// List handles GET /users/{username}/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	q, err := eventQuery(r, target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	events, err := h.svc.ListEvents(r.Context(), target, q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": viewOf(target).events(events)})
}

// Create handles POST /users/{username}/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := eventFields(f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.svc.CreateEvent(r.Context(), target, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, eventURI(target.Username, e.ID))
}

// Get handles GET /users/{username}/events/{eid}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	e, err := h.svc.GetEvent(r.Context(), target, chi.URLParam(r, "eid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(target).event(e))
}

// Update handles PUT /users/{username}/events/{eid}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := eventFields(f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.svc.UpdateEvent(r.Context(), target, chi.URLParam(r, "eid"), fields); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// Delete handles DELETE /users/{username}/events/{eid}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEvent(r.Context(), targetUser(r), chi.URLParam(r, "eid")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}
