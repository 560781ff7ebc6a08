package models

import "time"

// Note is either standalone under a user or scoped to a project.
// Exactly one of UserID and ProjectID is set.
type Note struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	ProjectID string    `db:"project_id" json:"-"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	Tags      []string  `json:"tags"`
}

// TableName returns the table name for Note.
func (Note) TableName() string {
	return "notes"
}

// NewNote carries the validated fields of a note creation.
type NewNote struct {
	Title string
	Body  string
	Tags  []string
}

// NoteUpdate lists the writable note fields; nil means unchanged.
type NoteUpdate struct {
	Title *string
	Body  *string
	Tags  *[]string
}

// Apply copies the set fields onto n.
func (u NoteUpdate) Apply(n *Note) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Body != nil {
		n.Body = *u.Body
	}
}
