// Package services tests for the domain operations.
package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kimhsiao/eboard/internal/crypto"
	"github.com/kimhsiao/eboard/internal/db"
	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/models"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	database, err := db.Setup(":memory:")
	if err != nil {
		t.Fatalf("db.Setup() failed: %v", err)
	}
	repo := db.NewRepository(database.DB)
	t.Cleanup(func() {
		repo.Close()
		database.Close()
	})
	return New(repo, crypto.NewHasher(bcrypt.MinCost))
}

func mustUser(t *testing.T, s *Service, name string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.NewUser{Username: name, Password: "test", Confirm: "test"})
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", name, err)
	}
	return u
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

var deadline = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)

// =====================================================
// Users
// =====================================================

func TestCreateUser_validation(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    models.NewUser
		field string
	}{
		{"no username", models.NewUser{Password: "a", Confirm: "a"}, "username"},
		{"no password", models.NewUser{Username: "x"}, "password"},
		{"mismatch", models.NewUser{Username: "x", Password: "a", Confirm: "b"}, "password2"},
		{"bad zone", models.NewUser{Username: "x", Password: "a", Confirm: "a", TZ: "Nowhere/City"}, "timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateUser(ctx, tt.in)
			appErr, ok := err.(*apperrors.AppError)
			if !ok || appErr.Code != apperrors.ErrInvalid {
				t.Fatalf("CreateUser() error = %v, want INVALID_INPUT", err)
			}
			if appErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", appErr.Field, tt.field)
			}
		})
	}
}

func TestCreateUser_defaultsAndConflict(t *testing.T) {
	s := setupTestService(t)
	u := mustUser(t, s, "Test")
	if u.TZ != "UTC" || u.Public {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash == "test" {
		t.Error("password stored in clear")
	}

	_, err := s.CreateUser(context.Background(), models.NewUser{Username: "Test", Password: "x", Confirm: "x"})
	if !apperrors.Is(err, apperrors.ErrDuplicate) {
		t.Errorf("duplicate CreateUser() error = %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	mustUser(t, s, "Test")

	if _, err := s.Authenticate(ctx, "Test", "test"); err != nil {
		t.Errorf("Authenticate() failed: %v", err)
	}
	for _, tc := range [][2]string{{"Test", "wrong"}, {"Nobody", "test"}} {
		if _, err := s.Authenticate(ctx, tc[0], tc[1]); !apperrors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("Authenticate(%s, %s) error = %v", tc[0], tc[1], err)
		}
	}
}

func TestUpdateUser(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")

	public := true
	updated, err := s.UpdateUser(ctx, u, models.UserUpdate{Public: &public, TZ: strPtr("Europe/Warsaw")})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Public || updated.TZ != "Europe/Warsaw" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := s.UpdateUser(ctx, updated, models.UserUpdate{Password: strPtr("new"), Confirm: strPtr("nope")}); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("mismatched password change error = %v", err)
	}
	if _, err := s.UpdateUser(ctx, updated, models.UserUpdate{Password: strPtr("new"), Confirm: strPtr("new")}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Authenticate(ctx, "Test", "new"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestDeleteUser_requiresPassword(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")

	if err := s.DeleteUser(ctx, u, "wrong"); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("DeleteUser(wrong) error = %v", err)
	}
	if err := s.DeleteUser(ctx, u, "test"); err != nil {
		t.Fatalf("DeleteUser() failed: %v", err)
	}
	if _, err := s.GetUser(ctx, "Test"); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("user survived: %v", err)
	}
}

func TestUserIndex_empty(t *testing.T) {
	s := setupTestService(t)
	u := mustUser(t, s, "Test")

	index, err := s.UserIndex(context.Background(), u)
	if err != nil {
		t.Fatal(err)
	}
	if index.Tasks == nil || index.Projects == nil || index.Notes == nil {
		t.Errorf("index slices must be non-nil: %+v", index)
	}
}

// =====================================================
// Tasks and deadline events
// =====================================================

func TestCreateTask_deadlineEventAndTags(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")

	task, err := s.CreateTask(ctx, u, TaskScope{}, models.NewTask{
		Title:         "Second Task",
		Deadline:      deadline,
		Tags:          models.SplitTags("Tag1,Tag2,Tag3"),
		DeadlineEvent: true,
	})
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	if len(task.Tags) != 3 {
		t.Errorf("Tags = %v", task.Tags)
	}

	events, err := s.ListEvents(ctx, u, EventQuery{})
	if err != nil || len(events) != 1 {
		t.Fatalf("ListEvents() = %v, %v", events, err)
	}
	e := events[0]
	if e.Title != "Task 'Second Task'" || !e.End.Equal(deadline) || !e.Start.Equal(deadline.Add(-30*time.Minute)) || e.Editable {
		t.Errorf("deadline event = %+v", e)
	}
	if e.Binding.Kind != models.EventTask || e.Binding.OwnerID != task.ID {
		t.Errorf("binding = %+v", e.Binding)
	}

	later := deadline.Add(48 * time.Hour)
	if _, err := s.UpdateTask(ctx, u, TaskScope{}, task.ID, models.TaskUpdate{Title: strPtr("Renamed"), Deadline: &later}); err != nil {
		t.Fatal(err)
	}
	e, err = s.GetEvent(ctx, u, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if e.Title != "Task 'Renamed'" || !e.End.Equal(later) {
		t.Errorf("event not resynced: %+v", e)
	}

	if err := s.DeleteTask(ctx, u, TaskScope{}, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetEvent(ctx, u, e.ID); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("deadline event survived its task: %v", err)
	}
}

func TestCreateTask_withoutDeadlineEvent(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")

	task, err := s.CreateTask(ctx, u, TaskScope{}, models.NewTask{Title: "quiet", Deadline: deadline})
	if err != nil {
		t.Fatal(err)
	}
	if task.DeadlineEventID != "" {
		t.Error("task got a deadline event")
	}
	if _, err := s.UpdateTask(ctx, u, TaskScope{}, task.ID, models.TaskUpdate{Title: strPtr("still quiet")}); err != nil {
		t.Fatal(err)
	}
	if events, _ := s.ListEvents(ctx, u, EventQuery{}); len(events) != 0 {
		t.Errorf("events = %v", events)
	}
}

func TestCreateTask_validation(t *testing.T) {
	s := setupTestService(t)
	u := mustUser(t, s, "Test")

	for name, in := range map[string]models.NewTask{
		"no title":    {Deadline: deadline},
		"no deadline": {Title: "t"},
		"bad parent":  {Title: "t", Deadline: deadline, MilestoneID: "missing"},
	} {
		if _, err := s.CreateTask(context.Background(), u, TaskScope{}, in); !apperrors.Is(err, apperrors.ErrInvalid) {
			t.Errorf("%s: error = %v, want INVALID_INPUT", name, err)
		}
	}
}

func TestTaskTags_reuseExistingSpelling(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")

	if _, err := s.CreateTask(ctx, u, TaskScope{}, models.NewTask{Title: "a", Deadline: deadline, Tags: []string{"golang"}}); err != nil {
		t.Fatal(err)
	}
	task, err := s.CreateTask(ctx, u, TaskScope{}, models.NewTask{Title: "b", Deadline: deadline, Tags: []string{"GoLang", "rust"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(task.Tags) != 2 || task.Tags[0] != "golang" {
		t.Errorf("Tags = %v, want [golang rust]", task.Tags)
	}

	tags := []string{"zig"}
	updated, err := s.UpdateTask(ctx, u, TaskScope{}, task.ID, models.TaskUpdate{Tags: &tags})
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "zig" {
		t.Errorf("Tags after update = %v", updated.Tags)
	}

	all, _ := s.ListTags(ctx)
	if len(all) != 3 {
		t.Errorf("ListTags() = %d tags; replacing links must not delete tags", len(all))
	}
}

func TestMilestoneTasks_andMove(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")
	p, err := s.CreateProject(ctx, u, models.NewProject{Name: "P", Deadline: deadline})
	if err != nil {
		t.Fatal(err)
	}
	m, err := s.CreateMilestone(ctx, u, p.ID, models.NewMilestone{Title: "M"})
	if err != nil {
		t.Fatal(err)
	}
	scope := TaskScope{ProjectID: p.ID, MilestoneID: m.ID}

	task, err := s.CreateTask(ctx, u, scope, models.NewTask{Title: "nested", Deadline: deadline})
	if err != nil {
		t.Fatal(err)
	}
	if task.MilestoneID != m.ID || task.ProjectID != p.ID {
		t.Errorf("task = %+v", task)
	}
	// Reachable through the user as well.
	if _, err := s.GetTask(ctx, u, TaskScope{}, task.ID); err != nil {
		t.Errorf("GetTask() via user failed: %v", err)
	}
	// But not through another milestone scope.
	if _, err := s.GetTask(ctx, u, TaskScope{ProjectID: p.ID, MilestoneID: "other"}, task.ID); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("wrong scope error = %v", err)
	}

	moved, err := s.UpdateTask(ctx, u, scope, task.ID, models.TaskUpdate{MilestoneID: strPtr("")})
	if err != nil {
		t.Fatal(err)
	}
	if !moved.Standalone() {
		t.Errorf("task still nested: %+v", moved)
	}
	standalone, _ := s.ListTasks(ctx, u, TaskScope{})
	nested, _ := s.ListTasks(ctx, u, scope)
	if len(standalone) != 1 || len(nested) != 0 {
		t.Errorf("standalone = %d, nested = %d", len(standalone), len(nested))
	}
}

// =====================================================
// Projects and milestones
// =====================================================

func TestReorderMilestone(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")
	p, _ := s.CreateProject(ctx, u, models.NewProject{Name: "P", Deadline: deadline})
	m1, _ := s.CreateMilestone(ctx, u, p.ID, models.NewMilestone{Title: "First Milestone"})
	m2, _ := s.CreateMilestone(ctx, u, p.ID, models.NewMilestone{Title: "Second Milestone"})
	if m1.Position != 0 || m2.Position != 1 {
		t.Fatalf("positions = %d, %d", m1.Position, m2.Position)
	}

	moved, err := s.ReorderMilestone(ctx, u, p.ID, m2.ID, models.Before, m1.ID)
	if err != nil {
		t.Fatalf("ReorderMilestone() failed: %v", err)
	}
	if moved.Position != 0 {
		t.Errorf("moved position = %d", moved.Position)
	}
	list, _ := s.ListMilestones(ctx, u, p.ID)
	if list[0].Title != "Second Milestone" || list[1].Title != "First Milestone" {
		t.Errorf("order = %s, %s", list[0].Title, list[1].Title)
	}

	// Already in order: nothing changes.
	if _, err := s.ReorderMilestone(ctx, u, p.ID, m2.ID, models.Before, m1.ID); err != nil {
		t.Fatal(err)
	}
	// Self reference is a no-op.
	same, err := s.ReorderMilestone(ctx, u, p.ID, m1.ID, models.After, m1.ID)
	if err != nil || same.Position != 1 {
		t.Errorf("self reorder = %+v, %v", same, err)
	}
	if _, err := s.ReorderMilestone(ctx, u, p.ID, m1.ID, models.After, "missing"); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("missing reference error = %v", err)
	}

	other, _ := s.CreateProject(ctx, u, models.NewProject{Name: "Q", Deadline: deadline})
	foreign, _ := s.CreateMilestone(ctx, u, other.ID, models.NewMilestone{Title: "Elsewhere"})
	if _, err := s.ReorderMilestone(ctx, u, p.ID, m1.ID, models.Before, foreign.ID); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("cross-project error = %v", err)
	}
}

func TestUpdateMilestone_positionSwap(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")
	p, _ := s.CreateProject(ctx, u, models.NewProject{Name: "P", Deadline: deadline})
	m1, _ := s.CreateMilestone(ctx, u, p.ID, models.NewMilestone{Title: "A"})
	s.CreateMilestone(ctx, u, p.ID, models.NewMilestone{Title: "B"})

	if _, err := s.UpdateMilestone(ctx, u, p.ID, m1.ID, models.MilestoneUpdate{Position: intPtr(-1)}); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("negative position error = %v", err)
	}
	updated, err := s.UpdateMilestone(ctx, u, p.ID, m1.ID, models.MilestoneUpdate{Position: intPtr(1), Desc: strPtr("d")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Position != 1 || updated.Desc != "d" {
		t.Errorf("updated = %+v", updated)
	}
	list, _ := s.ListMilestones(ctx, u, p.ID)
	if list[0].Title != "B" || list[1].Title != "A" {
		t.Errorf("order = %s, %s", list[0].Title, list[1].Title)
	}
}

func TestProjectDeadlineEvent_andCascade(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")

	p, err := s.CreateProject(ctx, u, models.NewProject{Name: "P", Deadline: deadline, DeadlineEvent: true})
	if err != nil {
		t.Fatal(err)
	}
	m, _ := s.CreateMilestone(ctx, u, p.ID, models.NewMilestone{Title: "M"})
	task, err := s.CreateTask(ctx, u, TaskScope{ProjectID: p.ID, MilestoneID: m.ID}, models.NewTask{Title: "t", Deadline: deadline, DeadlineEvent: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateNote(ctx, u, NoteScope{ProjectID: p.ID}, models.NewNote{Title: "n"}); err != nil {
		t.Fatal(err)
	}

	updated, err := s.UpdateProject(ctx, u, p.ID, models.ProjectUpdate{Name: strPtr("Renamed")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Modified.Before(p.Modified) {
		t.Error("Modified went backwards")
	}
	projectEvents, _ := s.ListEvents(ctx, u, EventQuery{Kinds: []models.EventKind{models.EventProject}})
	if len(projectEvents) != 1 || projectEvents[0].Title != "Project 'Renamed'" || projectEvents[0].ClassName != "deadline-project" {
		t.Errorf("project events = %+v", projectEvents)
	}

	withTasks, err := s.GetProject(ctx, u, p.ID, true)
	if err != nil || len(withTasks.Milestones) != 1 || len(withTasks.Milestones[0].Tasks) != 1 {
		t.Fatalf("GetProject(with tasks) = %+v, %v", withTasks, err)
	}

	if err := s.DeleteProject(ctx, u, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetTask(ctx, u, TaskScope{}, task.ID); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("task survived: %v", err)
	}
	if _, err := s.GetMilestone(ctx, u, p.ID, m.ID); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("milestone survived: %v", err)
	}
	if events, _ := s.ListEvents(ctx, u, EventQuery{}); len(events) != 0 {
		t.Errorf("events survived: %+v", events)
	}
	if n, _ := s.Repository().CountTasks(ctx); n != 0 {
		t.Errorf("CountTasks() = %d", n)
	}
}

// =====================================================
// Notes, events, bookmarks, tags
// =====================================================

func TestNotes_scopes(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")
	p, _ := s.CreateProject(ctx, u, models.NewProject{Name: "P", Deadline: deadline})

	pn, err := s.CreateNote(ctx, u, NoteScope{ProjectID: p.ID}, models.NewNote{Title: "project note", Tags: []string{"x"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetNote(ctx, u, NoteScope{}, pn.ID); err != nil {
		t.Errorf("project note not reachable via user: %v", err)
	}
	standalone, _ := s.ListNotes(ctx, u, NoteScope{})
	if len(standalone) != 0 {
		t.Errorf("project note listed as standalone")
	}

	tags := []string{}
	updated, err := s.UpdateNote(ctx, u, NoteScope{ProjectID: p.ID}, pn.ID, models.NoteUpdate{Body: strPtr("b"), Tags: &tags})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Body != "b" || len(updated.Tags) != 0 {
		t.Errorf("updated = %+v", updated)
	}
	if err := s.DeleteNote(ctx, u, NoteScope{ProjectID: p.ID}, pn.ID); err != nil {
		t.Fatal(err)
	}
}

func TestEvents_standalone(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")

	start := time.Date(2016, 5, 1, 9, 0, 0, 0, time.UTC)
	e, err := s.CreateEvent(ctx, u, models.EventFields{Title: strPtr("standup"), Start: &start})
	if err != nil {
		t.Fatal(err)
	}
	if !e.End.Equal(start) || !e.Editable {
		t.Errorf("event = %+v", e)
	}

	before := start.Add(-time.Hour)
	if _, err := s.UpdateEvent(ctx, u, e.ID, models.EventFields{End: &before}); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("inverted update error = %v", err)
	}

	day := time.Date(2016, 5, 1, 0, 0, 0, 0, time.UTC)
	inDay, _ := s.ListEvents(ctx, u, EventQuery{From: day, Until: day.AddDate(0, 0, 1)})
	nextDay, _ := s.ListEvents(ctx, u, EventQuery{From: day.AddDate(0, 0, 1)})
	if len(inDay) != 1 || len(nextDay) != 0 {
		t.Errorf("inDay = %d, nextDay = %d", len(inDay), len(nextDay))
	}

	if err := s.DeleteEvent(ctx, u, e.ID); err != nil {
		t.Fatal(err)
	}
}

func TestEvents_deadlineEventsAreReadOnly(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")
	if _, err := s.CreateTask(ctx, u, TaskScope{}, models.NewTask{Title: "t", Deadline: deadline, DeadlineEvent: true}); err != nil {
		t.Fatal(err)
	}
	events, _ := s.ListEvents(ctx, u, EventQuery{})

	if _, err := s.UpdateEvent(ctx, u, events[0].ID, models.EventFields{Title: strPtr("x")}); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("UpdateEvent(deadline) error = %v", err)
	}
	if err := s.DeleteEvent(ctx, u, events[0].ID); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("DeleteEvent(deadline) error = %v", err)
	}
}

func TestBookmarksAndItems(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	u := mustUser(t, s, "Test")

	b, err := s.CreateBookmark(ctx, u, "reading")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateItem(ctx, u, b.ID, "", "no value"); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("empty value error = %v", err)
	}
	it, err := s.CreateItem(ctx, u, b.ID, "https://go.dev", "Go")
	if err != nil {
		t.Fatal(err)
	}
	updated, err := s.UpdateItem(ctx, u, b.ID, it.ID, models.ItemUpdate{Desc: strPtr("The Go site")})
	if err != nil || updated.Desc != "The Go site" || updated.Value != "https://go.dev" {
		t.Errorf("UpdateItem() = %+v, %v", updated, err)
	}

	got, err := s.GetBookmark(ctx, u, b.ID, db.Page{})
	if err != nil || len(got.Items) != 1 {
		t.Errorf("GetBookmark() = %+v, %v", got, err)
	}

	if err := s.DeleteBookmark(ctx, u, b.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetItem(ctx, u, b.ID, it.ID); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("item survived: %v", err)
	}
}

func TestRenameAndRemoveTag(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "A")
	b := mustUser(t, s, "B")

	mine, _ := s.CreateTask(ctx, a, TaskScope{}, models.NewTask{Title: "a", Deadline: deadline, Tags: []string{"old"}})
	s.CreateNote(ctx, a, NoteScope{}, models.NewNote{Title: "n", Tags: []string{"old"}})
	theirs, _ := s.CreateTask(ctx, b, TaskScope{}, models.NewTask{Title: "b", Deadline: deadline, Tags: []string{"old"}})

	detail, err := s.GetTag(ctx, a, "OLD")
	if err != nil || len(detail.Tasks) != 1 || len(detail.Notes) != 1 {
		t.Fatalf("GetTag() = %+v, %v", detail, err)
	}

	if _, err := s.RenameTag(ctx, a, "old", "new"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(ctx, a, TaskScope{}, mine.ID)
	if len(got.Tags) != 1 || got.Tags[0] != "new" {
		t.Errorf("renamed tags = %v", got.Tags)
	}
	other, _ := s.GetTask(ctx, b, TaskScope{}, theirs.ID)
	if len(other.Tags) != 1 || other.Tags[0] != "old" {
		t.Errorf("other user's tags changed: %v", other.Tags)
	}

	if err := s.RemoveTag(ctx, b, "old"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetTag(ctx, b, "old"); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("orphaned tag survived: %v", err)
	}
}
