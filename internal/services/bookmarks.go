package services

import (
	"context"

	"github.com/kimhsiao/eboard/internal/db"
	"github.com/kimhsiao/eboard/internal/models"
)

// CreateBookmark creates an empty bookmark list.
func (s *Service) CreateBookmark(ctx context.Context, owner *models.User, title string) (*models.Bookmark, error) {
	title, err := required("title", title)
	if err != nil {
		return nil, err
	}
	b := &models.Bookmark{UserID: owner.ID, Title: title}
	if err := s.inTx(ctx, func(tx *db.Repository) error {
		return tx.CreateBookmark(ctx, b)
	}); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookmark returns one bookmark with a page of its items.
func (s *Service) GetBookmark(ctx context.Context, owner *models.User, id string, page db.Page) (*models.Bookmark, error) {
	var b *models.Bookmark
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if b, err = tx.GetUserBookmark(ctx, owner.ID, id); err != nil {
			return err
		}
		b.Items, err = tx.ListBookmarkItems(ctx, b.ID, page)
		return err
	})
	return b, err
}

// ListBookmarks returns the owner's bookmarks without items.
func (s *Service) ListBookmarks(ctx context.Context, owner *models.User) ([]*models.Bookmark, error) {
	return s.repo.ListUserBookmarks(ctx, owner.ID)
}

// RenameBookmark changes a bookmark's title.
func (s *Service) RenameBookmark(ctx context.Context, owner *models.User, id string, title *string) (*models.Bookmark, error) {
	var b *models.Bookmark
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if b, err = tx.GetUserBookmark(ctx, owner.ID, id); err != nil {
			return err
		}
		if title == nil {
			return nil
		}
		if b.Title, err = required("title", *title); err != nil {
			return err
		}
		return tx.UpdateBookmark(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBookmark removes a bookmark with its items.
func (s *Service) DeleteBookmark(ctx context.Context, owner *models.User, id string) error {
	return s.inTx(ctx, func(tx *db.Repository) error {
		b, err := tx.GetUserBookmark(ctx, owner.ID, id)
		if err != nil {
			return err
		}
		return tx.DeleteBookmark(ctx, b.ID)
	})
}

// CreateItem appends an item to a bookmark. The value is required.
func (s *Service) CreateItem(ctx context.Context, owner *models.User, bookmarkID, value, desc string) (*models.Item, error) {
	value, err := required("value", value)
	if err != nil {
		return nil, err
	}
	it := &models.Item{Value: value, Desc: desc}
	err = s.inTx(ctx, func(tx *db.Repository) error {
		b, err := tx.GetUserBookmark(ctx, owner.ID, bookmarkID)
		if err != nil {
			return err
		}
		it.BookmarkID = b.ID
		return tx.CreateItem(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Service) loadItem(ctx context.Context, tx *db.Repository, owner *models.User, bookmarkID, id string) (*models.Item, error) {
	if _, err := tx.GetUserBookmark(ctx, owner.ID, bookmarkID); err != nil {
		return nil, err
	}
	return tx.GetBookmarkItem(ctx, bookmarkID, id)
}

// GetItem returns one item of a bookmark.
func (s *Service) GetItem(ctx context.Context, owner *models.User, bookmarkID, id string) (*models.Item, error) {
	var it *models.Item
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		it, err = s.loadItem(ctx, tx, owner, bookmarkID, id)
		return err
	})
	return it, err
}

// ListItems returns a page of a bookmark's items, oldest first.
func (s *Service) ListItems(ctx context.Context, owner *models.User, bookmarkID string, page db.Page) ([]*models.Item, error) {
	var items []*models.Item
	err := s.inTx(ctx, func(tx *db.Repository) error {
		if _, err := tx.GetUserBookmark(ctx, owner.ID, bookmarkID); err != nil {
			return err
		}
		var err error
		items, err = tx.ListBookmarkItems(ctx, bookmarkID, page)
		return err
	})
	return items, err
}

// UpdateItem applies upd to an item. Items stay in their bookmark.
func (s *Service) UpdateItem(ctx context.Context, owner *models.User, bookmarkID, id string, upd models.ItemUpdate) (*models.Item, error) {
	var it *models.Item
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if it, err = s.loadItem(ctx, tx, owner, bookmarkID, id); err != nil {
			return err
		}
		if upd.Value != nil {
			if it.Value, err = required("value", *upd.Value); err != nil {
				return err
			}
		}
		if upd.Desc != nil {
			it.Desc = *upd.Desc
		}
		return tx.UpdateItem(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// DeleteItem removes one item of a bookmark.
func (s *Service) DeleteItem(ctx context.Context, owner *models.User, bookmarkID, id string) error {
	return s.inTx(ctx, func(tx *db.Repository) error {
		it, err := s.loadItem(ctx, tx, owner, bookmarkID, id)
		if err != nil {
			return err
		}
		return tx.DeleteItem(ctx, it.ID)
	})
}
