package db

import (
	"context"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// =====================================================
// Bookmark and Item Operations
// =====================================================

const bookmarkColumns = `id, user_id, title, created`

func scanBookmark(row rowScanner) (*models.Bookmark, error) {
	var b models.Bookmark
	var created unixTime
	if err := row.Scan(&b.ID, &b.UserID, &b.Title, &created); err != nil {
		return nil, err
	}
	b.Created = created.Time()
	return &b, nil
}

// CreateBookmark inserts a bookmark for b.UserID.
func (r *Repository) CreateBookmark(ctx context.Context, b *models.Bookmark) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	if b.Created.IsZero() {
		b.Created = now()
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO bookmarks (id, user_id, title, created) VALUES (?, ?, ?, ?)`,
		b.ID, b.UserID, b.Title, unix(b.Created))
	return dbError(err)
}

// GetUserBookmark returns the user's bookmark with the given id.
func (r *Repository) GetUserBookmark(ctx context.Context, userID, id string) (*models.Bookmark, error) {
	b, err := scanBookmark(r.q.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return nil, notFound(err, "bookmark")
	}
	return b, nil
}

// ListUserBookmarks returns the user's bookmarks, oldest first.
func (r *Repository) ListUserBookmarks(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ? ORDER BY created, id`, userID)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	bookmarks := make([]*models.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, dbError(err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, dbError(rows.Err())
}

// UpdateBookmark writes the bookmark title.
func (r *Repository) UpdateBookmark(ctx context.Context, b *models.Bookmark) error {
	result, err := r.q.ExecContext(ctx, `UPDATE bookmarks SET title = ? WHERE id = ?`, b.Title, b.ID)
	return mustAffect(result, err, "bookmark")
}

// DeleteBookmark removes a bookmark; its items cascade.
func (r *Repository) DeleteBookmark(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	return mustAffect(result, err, "bookmark")
}

const itemColumns = `id, bookmark_id, value, description, created`

func scanItem(row rowScanner) (*models.Item, error) {
	var it models.Item
	var created unixTime
	if err := row.Scan(&it.ID, &it.BookmarkID, &it.Value, &it.Desc, &created); err != nil {
		return nil, err
	}
	it.Created = created.Time()
	return &it, nil
}

// CreateItem appends an item to it.BookmarkID.
func (r *Repository) CreateItem(ctx context.Context, it *models.Item) error {
	if it.ID == "" {
		it.ID = uuid.New()
	}
	if it.Created.IsZero() {
		it.Created = now()
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO items (id, bookmark_id, value, description, created) VALUES (?, ?, ?, ?, ?)`,
		it.ID, it.BookmarkID, it.Value, it.Desc, unix(it.Created))
	return dbError(err)
}

// GetBookmarkItem returns an item of the given bookmark.
func (r *Repository) GetBookmarkItem(ctx context.Context, bookmarkID, id string) (*models.Item, error) {
	it, err := scanItem(r.q.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND bookmark_id = ?`, id, bookmarkID))
	if err != nil {
		return nil, notFound(err, "item")
	}
	return it, nil
}

// ListBookmarkItems returns a page of the bookmark's items, oldest first.
func (r *Repository) ListBookmarkItems(ctx context.Context, bookmarkID string, page Page) ([]*models.Item, error) {
	limit, limitArgs := page.SQL()
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE bookmark_id = ? ORDER BY created, rowid`+limit,
		append([]interface{}{bookmarkID}, limitArgs...)...)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	items := make([]*models.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, dbError(err)
		}
		items = append(items, it)
	}
	return items, dbError(rows.Err())
}

// UpdateItem writes the item's value and description.
func (r *Repository) UpdateItem(ctx context.Context, it *models.Item) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE items SET value = ?, description = ? WHERE id = ?`, it.Value, it.Desc, it.ID)
	return mustAffect(result, err, "item")
}

// DeleteItem removes one item.
func (r *Repository) DeleteItem(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	return mustAffect(result, err, "item")
}
