package models

import "time"

// Project owns ordered milestones and project notes.
type Project struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"-"`
	Name            string    `db:"name" json:"name"`
	Desc            string    `db:"desc" json:"desc"`
	Deadline        time.Time `db:"deadline" json:"deadline"`
	Created         time.Time `db:"created" json:"created"`
	Modified        time.Time `db:"modified" json:"modified"`
	Active          bool      `db:"active" json:"active"`
	Complete        bool      `db:"complete" json:"complete"`
	DeadlineEventID string    `db:"deadline_event_id" json:"-"`

	Milestones []*Milestone `json:"milestones,omitempty"`
}

// TableName returns the table name for Project.
func (Project) TableName() string {
	return "projects"
}

// Touch updates the Modified timestamp.
func (p *Project) Touch() {
	p.Modified = time.Now().UTC().Truncate(time.Second)
}

// Milestone is an ordered step of a project. Positions are unique per project.
type Milestone struct {
	ID        string `db:"id" json:"id"`
	ProjectID string `db:"project_id" json:"-"`
	Title     string `db:"title" json:"title"`
	Desc      string `db:"desc" json:"desc"`
	Position  int    `db:"position" json:"position"`

	Tasks []*Task `json:"tasks,omitempty"`
}

// TableName returns the table name for Milestone.
func (Milestone) TableName() string {
	return "milestones"
}

// NewProject carries the validated fields of a project creation.
type NewProject struct {
	Name          string
	Desc          string
	Deadline      time.Time
	Active        bool
	Complete      bool
	DeadlineEvent bool
}

// ProjectUpdate lists the writable project fields; nil means unchanged.
type ProjectUpdate struct {
	Name     *string
	Desc     *string
	Deadline *time.Time
	Active   *bool
	Complete *bool
}

// Apply copies the set fields onto p and reports whether the deadline
// event needs to be re-derived.
func (u ProjectUpdate) Apply(p *Project) (resync bool) {
	if u.Name != nil && *u.Name != p.Name {
		p.Name = *u.Name
		resync = true
	}
	if u.Deadline != nil && !u.Deadline.Equal(p.Deadline) {
		p.Deadline = *u.Deadline
		resync = true
	}
	if u.Desc != nil {
		p.Desc = *u.Desc
	}
	if u.Active != nil {
		p.Active = *u.Active
	}
	if u.Complete != nil {
		p.Complete = *u.Complete
	}
	return resync
}

// NewMilestone carries the validated fields of a milestone creation.
type NewMilestone struct {
	Title string
	Desc  string
}

// MilestoneUpdate lists the writable milestone fields; nil means unchanged.
type MilestoneUpdate struct {
	Title    *string
	Desc     *string
	Position *int
}

// Placement says on which side of a reference milestone to move.
type Placement int

const (
	Before Placement = iota
	After
)
