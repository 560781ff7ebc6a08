package models

import (
	"fmt"
	"strings"
	"time"
)

// EventKind discriminates what an event is bound to.
type EventKind string

const (
	EventStandalone EventKind = "standalone"
	EventTask       EventKind = "task"
	EventProject    EventKind = "project"
)

// DeadlineLead is how long before the deadline a deadline event starts.
const DeadlineLead = 30 * time.Minute

// EventBinding names the single owner of a deadline event.
// OwnerID is empty for standalone events.
type EventBinding struct {
	Kind    EventKind `json:"kind"`
	OwnerID string    `json:"owner_id,omitempty"`
}

// Event is a calendar entry owned by a user.
type Event struct {
	ID              string       `db:"id" json:"id"`
	UserID          string       `db:"user_id" json:"-"`
	Binding         EventBinding `json:"binding"`
	Title           string       `db:"title" json:"title"`
	Start           time.Time    `db:"start" json:"start"`
	End             time.Time    `db:"end" json:"end"`
	AllDay          bool         `db:"all_day" json:"allDay"`
	Editable        bool         `db:"editable" json:"editable"`
	ClassName       string       `db:"class_name" json:"className"`
	Color           string       `db:"color" json:"color"`
	TextColor       string       `db:"text_color" json:"textColor"`
	BackgroundColor string       `db:"background_color" json:"backgroundColor"`
	BorderColor     string       `db:"border_color" json:"borderColor"`
	Desc            string       `db:"desc" json:"desc"`
	URL             string       `db:"url" json:"url"`
}

// TableName returns the table name for Event.
func (Event) TableName() string {
	return "events"
}

// Bound reports whether the event is a deadline event.
func (e *Event) Bound() bool {
	return e.Binding.Kind != EventStandalone
}

// DeadlineEvent builds the derived event for a task or project deadline.
func DeadlineEvent(kind EventKind, ownerID, title string, deadline time.Time) *Event {
	e := &Event{
		Binding: EventBinding{Kind: kind, OwnerID: ownerID},
	}
	e.SyncDeadline(title, deadline)
	return e
}

// SyncDeadline re-derives every owner-dependent field of a deadline event.
func (e *Event) SyncDeadline(title string, deadline time.Time) {
	noun := "Task"
	e.ClassName = "deadline-task"
	e.Color = "#d9534f"
	if e.Binding.Kind == EventProject {
		noun = "Project"
		e.ClassName = "deadline-project"
		e.Color = "#f0ad4e"
	}
	deadline = deadline.UTC()
	e.Title = fmt.Sprintf("%s '%s'", noun, title)
	e.Desc = fmt.Sprintf("Deadline of %s '%s' at %s UTC", strings.ToLower(noun), title, deadline.Format("2006-01-02 15:04"))
	e.End = deadline
	e.Start = deadline.Add(-DeadlineLead)
	e.AllDay = false
	e.Editable = false
}

// EventFields carries the writable attributes of a standalone event.
type EventFields struct {
	Title           *string
	Start           *time.Time
	End             *time.Time
	AllDay          *bool
	ClassName       *string
	Color           *string
	TextColor       *string
	BackgroundColor *string
	BorderColor     *string
	Desc            *string
	URL             *string
}

// Apply copies the set fields onto e.
func (f EventFields) Apply(e *Event) {
	if f.Title != nil {
		e.Title = *f.Title
	}
	if f.Start != nil {
		e.Start = *f.Start
	}
	if f.End != nil {
		e.End = *f.End
	}
	if f.AllDay != nil {
		e.AllDay = *f.AllDay
	}
	if f.ClassName != nil {
		e.ClassName = *f.ClassName
	}
	if f.Color != nil {
		e.Color = *f.Color
	}
	if f.TextColor != nil {
		e.TextColor = *f.TextColor
	}
	if f.BackgroundColor != nil {
		e.BackgroundColor = *f.BackgroundColor
	}
	if f.BorderColor != nil {
		e.BorderColor = *f.BorderColor
	}
	if f.Desc != nil {
		e.Desc = *f.Desc
	}
	if f.URL != nil {
		e.URL = *f.URL
	}
}
