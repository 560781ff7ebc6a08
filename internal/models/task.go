package models

import "time"

// Task is either standalone under a user or attached to a milestone.
// Exactly one of UserID and MilestoneID is set.
type Task struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	MilestoneID string    `db:"milestone_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Created     time.Time `db:"created" json:"created"`
	Deadline    time.Time `db:"deadline" json:"deadline"`
	Body        string    `db:"body" json:"body"`
	Importance  int       `db:"importance" json:"importance"`
	Urgency     int       `db:"urgency" json:"urgency"`
	Active      bool      `db:"active" json:"active"`
	Complete    bool      `db:"complete" json:"complete"`

	// DeadlineEventID is empty when the task was created without one.
	DeadlineEventID string `db:"deadline_event_id" json:"-"`

	// ProjectID is resolved through the milestone; it is not stored.
	ProjectID string   `json:"-"`
	Tags      []string `json:"tags"`
}

// TableName returns the table name for Task.
func (Task) TableName() string {
	return "tasks"
}

// Standalone reports whether the task hangs directly off a user.
func (t *Task) Standalone() bool {
	return t.MilestoneID == ""
}

// NewTask carries the validated fields of a task creation.
type NewTask struct {
	Title      string
	Deadline   time.Time
	Body       string
	Importance int
	Urgency    int
	Active     bool
	Complete   bool
	Tags       []string
	// DeadlineEvent controls whether a deadline event is synthesized.
	DeadlineEvent bool
	MilestoneID   string
}

// TaskUpdate lists the writable task fields; nil means unchanged.
// A non-nil MilestoneID pointing at "" detaches the task to its user.
type TaskUpdate struct {
	Title       *string
	Deadline    *time.Time
	Body        *string
	Importance  *int
	Urgency     *int
	Active      *bool
	Complete    *bool
	Tags        *[]string
	MilestoneID *string
}

// Apply copies the set fields onto t and reports whether the deadline
// event needs to be re-derived.
func (u TaskUpdate) Apply(t *Task) (resync bool) {
	if u.Title != nil && *u.Title != t.Title {
		t.Title = *u.Title
		resync = true
	}
	if u.Deadline != nil && !u.Deadline.Equal(t.Deadline) {
		t.Deadline = *u.Deadline
		resync = true
	}
	if u.Body != nil {
		t.Body = *u.Body
	}
	if u.Importance != nil {
		t.Importance = *u.Importance
	}
	if u.Urgency != nil {
		t.Urgency = *u.Urgency
	}
	if u.Active != nil {
		t.Active = *u.Active
	}
	if u.Complete != nil {
		t.Complete = *u.Complete
	}
	return resync
}
