// Package models tests for entity helpers and update records.
package models

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeTagNames(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"trim", []string{" Tag1 ", "Tag2"}, []string{"Tag1", "Tag2"}},
		{"drop blanks", []string{"", "  ", "a"}, []string{"a"}},
		{"case duplicates keep first", []string{"Go", "go", "GO", "rust"}, []string{"Go", "rust"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTagNames(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTagNames(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Tag1,Tag2,Tag3", []string{"Tag1", "Tag2", "Tag3"}},
		{"python, golang , rust", []string{"python", "golang", "rust"}},
		{"python,,golang", []string{"python", "golang"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := SplitTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeadlineEvent_task(t *testing.T) {
	deadline := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	e := DeadlineEvent(EventTask, "task-1", "Second Task", deadline)

	if e.Title != "Task 'Second Task'" {
		t.Errorf("Title = %q", e.Title)
	}
	if !e.End.Equal(deadline) {
		t.Errorf("End = %v, want %v", e.End, deadline)
	}
	if !e.Start.Equal(deadline.Add(-30 * time.Minute)) {
		t.Errorf("Start = %v", e.Start)
	}
	if e.Editable {
		t.Error("deadline events must not be editable")
	}
	if !e.Bound() || e.Binding.OwnerID != "task-1" {
		t.Errorf("Binding = %+v", e.Binding)
	}
	if e.Desc != "Deadline of task 'Second Task' at 2016-01-01 00:00 UTC" {
		t.Errorf("Desc = %q", e.Desc)
	}
}

func TestDeadlineEvent_projectResync(t *testing.T) {
	e := DeadlineEvent(EventProject, "p-1", "P", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
	moved := time.Date(2015, 2, 1, 12, 0, 0, 0, time.UTC)
	e.SyncDeadline("Renamed", moved)

	if e.Title != "Project 'Renamed'" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.ClassName != "deadline-project" {
		t.Errorf("ClassName = %q", e.ClassName)
	}
	if !e.End.Equal(moved) || !e.Start.Equal(moved.Add(-DeadlineLead)) {
		t.Errorf("window = %v..%v", e.Start, e.End)
	}
}

func TestTaskUpdate_Apply(t *testing.T) {
	task := &Task{Title: "a", Deadline: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)}
	body := "new body"
	if resync := (TaskUpdate{Body: &body}).Apply(task); resync {
		t.Error("body change should not resync the deadline event")
	}
	if task.Body != body {
		t.Errorf("Body = %q", task.Body)
	}

	same := "a"
	if resync := (TaskUpdate{Title: &same}).Apply(task); resync {
		t.Error("unchanged title should not resync")
	}

	later := task.Deadline.Add(time.Hour)
	if resync := (TaskUpdate{Deadline: &later}).Apply(task); !resync {
		t.Error("deadline change should resync")
	}
}

func TestProjectUpdate_Apply(t *testing.T) {
	p := &Project{Name: "P"}
	name := "Q"
	active := true
	if resync := (ProjectUpdate{Name: &name, Active: &active}).Apply(p); !resync {
		t.Error("rename should resync")
	}
	if p.Name != "Q" || !p.Active {
		t.Errorf("project = %+v", p)
	}
}

func TestEventFields_Apply(t *testing.T) {
	e := &Event{Title: "old", Color: "red"}
	title := "new"
	allDay := true
	EventFields{Title: &title, AllDay: &allDay}.Apply(e)
	if e.Title != "new" || !e.AllDay || e.Color != "red" {
		t.Errorf("event = %+v", e)
	}
}

func TestUser_Location(t *testing.T) {
	u := &User{TZ: "Europe/Warsaw"}
	if u.Location().String() != "Europe/Warsaw" {
		t.Errorf("Location() = %s", u.Location())
	}
	if (&User{}).Location() != time.UTC {
		t.Error("empty zone should be UTC")
	}
}
