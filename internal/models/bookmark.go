package models

import "time"

// Bookmark is a titled list of items.
type Bookmark struct {
	ID      string    `db:"id" json:"id"`
	UserID  string    `db:"user_id" json:"-"`
	Title   string    `db:"title" json:"title"`
	Created time.Time `db:"created" json:"created"`

	Items []*Item `json:"items,omitempty"`
}

// TableName returns the table name for Bookmark.
func (Bookmark) TableName() string {
	return "bookmarks"
}

// Item is one entry of a bookmark. Items never move between bookmarks.
type Item struct {
	ID         string    `db:"id" json:"id"`
	BookmarkID string    `db:"bookmark_id" json:"-"`
	Value      string    `db:"value" json:"value"`
	Desc       string    `db:"desc" json:"desc"`
	Created    time.Time `db:"created" json:"created"`
}

// TableName returns the table name for Item.
func (Item) TableName() string {
	return "items"
}

// ItemUpdate lists the writable item fields; nil means unchanged.
type ItemUpdate struct {
	Value *string
	Desc  *string
}
