// Package handlers provides the REST resource layer of the e-board API.
// Handlers translate requests into service calls and shape the results;
// access checks happen in middleware before a handler runs.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kimhsiao/eboard/internal/services"
	"github.com/kimhsiao/eboard/internal/session"
)

// NewRouter wires every resource under one chi router.
func NewRouter(svc *services.Service, sessions *session.Manager) http.Handler {
	mw := NewMiddleware(svc, sessions)
	auth := NewAuthHandler(svc, sessions)
	users := NewUserHandler(svc, sessions)
	tasks := NewTaskHandler(svc)
	notes := NewNoteHandler(svc)
	projects := NewProjectHandler(svc)
	milestones := NewMilestoneHandler(svc)
	events := NewEventHandler(svc)
	bookmarks := NewBookmarkHandler(svc)
	tags := NewTagHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog)
	r.Use(middleware.Recoverer)
	r.Use(mw.Session)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/healthz", auth.Health)
	r.Post("/login", auth.Login)
	r.Post("/logout", auth.Logout)

	r.Post("/users", users.Create)
	r.Route("/users/{username}", func(r chi.Router) {
		r.Use(mw.Target)

		r.Get("/", users.Get)
		r.Put("/", users.Update)
		r.Delete("/", users.Delete)

		r.Route("/tasks", tasks.routes)
		r.Route("/notes", notes.routes)
		r.Route("/events", events.routes)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projects.List)
			r.Post("/", projects.Create)
			r.Route("/{pid}", func(r chi.Router) {
				r.Get("/", projects.Get)
				r.Put("/", projects.Update)
				r.Delete("/", projects.Delete)

				r.Route("/notes", notes.routes)
				r.Route("/milestones", func(r chi.Router) {
					r.Get("/", milestones.List)
					r.Post("/", milestones.Create)
					r.Route("/{mid}", func(r chi.Router) {
						r.Get("/", milestones.Get)
						r.Put("/", milestones.Update)
						r.Delete("/", milestones.Delete)
						r.Post("/position", milestones.Position)
						r.Route("/tasks", tasks.routes)
					})
				})
			})
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", bookmarks.List)
			r.Post("/", bookmarks.Create)
			r.Route("/{bid}", func(r chi.Router) {
				r.Get("/", bookmarks.Get)
				r.Put("/", bookmarks.Update)
				r.Delete("/", bookmarks.Delete)
				r.Route("/items", bookmarks.itemRoutes)
			})
		})
	})

	r.Route("/tags", func(r chi.Router) {
		r.Use(mw.RequireSession)
		r.Get("/", tags.List)
		r.Get("/{name}", tags.Get)
		r.Put("/{name}", tags.Rename)
		r.Delete("/{name}", tags.Delete)
	})

	return r
}
