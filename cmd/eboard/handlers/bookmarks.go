package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kimhsiao/eboard/internal/db"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/services"
)

// BookmarkHandler handles bookmarks and their items.
type BookmarkHandler struct {
	svc *services.Service
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(svc *services.Service) *BookmarkHandler {
	return &BookmarkHandler{svc: svc}
}

func (h *BookmarkHandler) itemRoutes(r chi.Router) {
	r.Get("/", h.ListItems)
	r.Post("/", h.CreateItem)
	r.Get("/{iid}", h.GetItem)
	r.Put("/{iid}", h.UpdateItem)
	r.Delete("/{iid}", h.DeleteItem)
}

// pageOf reads page and per_page. Without per_page every item is returned.
func pageOf(r *http.Request) (db.Page, error) {
	f := form{values: r.URL.Query()}
	number, err := f.intOr("page", 1)
	if err != nil {
		return db.Page{}, err
	}
	perPage, err := f.intOr("per_page", 0)
	if err != nil {
		return db.Page{}, err
	}
	return db.Page{Number: number, PerPage: perPage}, nil
}

// List handles GET /users/{username}/bookmarks
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	bookmarks, err := h.svc.ListBookmarks(r.Context(), target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookmarks": viewOf(target).bookmarks(bookmarks)})
}

// Create handles POST /users/{username}/bookmarks
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.svc.CreateBookmark(r.Context(), target, f.get("title"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, bookmarkURI(target.Username, b.ID))
}

// Get handles GET /users/{username}/bookmarks/{bid}, with a page of items.
func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	page, err := pageOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.svc.GetBookmark(r.Context(), target, chi.URLParam(r, "bid"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if b.Items == nil {
		b.Items = []*models.Item{}
	}
	writeJSON(w, http.StatusOK, viewOf(target).bookmark(b))
}

// Update handles PUT /users/{username}/bookmarks/{bid}
func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.RenameBookmark(r.Context(), target, chi.URLParam(r, "bid"), f.optString("title")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// Delete handles DELETE /users/{username}/bookmarks/{bid}
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBookmark(r.Context(), targetUser(r), chi.URLParam(r, "bid")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// ListItems handles GET .../bookmarks/{bid}/items
func (h *BookmarkHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	page, err := pageOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.svc.ListItems(r.Context(), target, chi.URLParam(r, "bid"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := map[string]interface{}{"items": viewOf(target).items(items)}
	if page.PerPage > 0 {
		response["page"] = page.Number
		response["per_page"] = page.PerPage
	}
	writeJSON(w, http.StatusOK, response)
}

// CreateItem handles POST .../bookmarks/{bid}/items
func (h *BookmarkHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	bid := chi.URLParam(r, "bid")
	it, err := h.svc.CreateItem(r.Context(), target, bid, f.get("value"), f.get("desc"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, itemURI(target.Username, bid, it.ID))
}

// GetItem handles GET .../bookmarks/{bid}/items/{iid}
func (h *BookmarkHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	it, err := h.svc.GetItem(r.Context(), target, chi.URLParam(r, "bid"), chi.URLParam(r, "iid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(target).item(it))
}

// UpdateItem handles PUT .../bookmarks/{bid}/items/{iid}
func (h *BookmarkHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	target := targetUser(r)
	f, err := readForm(w, r, target.Location())
	if err != nil {
		writeError(w, r, err)
		return
	}

	upd := models.ItemUpdate{
		Value: f.optString("value"),
		Desc:  f.optString("desc"),
	}
	if _, err := h.svc.UpdateItem(r.Context(), target, chi.URLParam(r, "bid"), chi.URLParam(r, "iid"), upd); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}

// DeleteItem handles DELETE .../bookmarks/{bid}/items/{iid}
func (h *BookmarkHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), targetUser(r), chi.URLParam(r, "bid"), chi.URLParam(r, "iid")); err != nil {
		writeError(w, r, err)
		return
	}
	noContent(w)
}
