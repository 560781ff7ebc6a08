package services

import (
	"context"
	"time"

	"github.com/kimhsiao/eboard/internal/db"
	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/logging"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// TaskScope names the container a task is addressed through. The zero
// value addresses tasks reachable from the user: standalone tasks first,
// then tasks of the user's projects.
type TaskScope struct {
	ProjectID   string
	MilestoneID string
}

// Nested reports whether the scope addresses one milestone.
func (sc TaskScope) Nested() bool {
	return sc.MilestoneID != ""
}

// milestone resolves the scope's milestone through the owner's project.
func (sc TaskScope) milestone(ctx context.Context, tx *db.Repository, owner *models.User) (*models.Milestone, error) {
	if _, err := tx.GetUserProject(ctx, owner.ID, sc.ProjectID); err != nil {
		return nil, err
	}
	return tx.GetProjectMilestone(ctx, sc.ProjectID, sc.MilestoneID)
}

// ownedMilestone resolves a milestone id given as task input. An id that
// names no milestone of the owner is bad input, not a missing resource.
func ownedMilestone(ctx context.Context, tx *db.Repository, owner *models.User, id string) (*models.Milestone, error) {
	m, err := tx.GetUserMilestone(ctx, owner.ID, id)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Invalid("milestone_id", "unknown milestone")
	}
	return m, err
}

func (s *Service) loadTask(ctx context.Context, tx *db.Repository, owner *models.User, scope TaskScope, id string) (*models.Task, error) {
	if !scope.Nested() {
		return tx.GetUserTask(ctx, owner.ID, id)
	}
	m, err := scope.milestone(ctx, tx, owner)
	if err != nil {
		return nil, err
	}
	return tx.GetMilestoneTask(ctx, m.ID, id)
}

// CreateTask creates a task in scope, or under in.MilestoneID when the
// scope is the user, and synthesizes its deadline event unless told not to.
func (s *Service) CreateTask(ctx context.Context, owner *models.User, scope TaskScope, in models.NewTask) (*models.Task, error) {
	title, err := required("title", in.Title)
	if err != nil {
		return nil, err
	}
	if in.Deadline.IsZero() {
		return nil, apperrors.Invalid("deadline", "is required")
	}

	t := &models.Task{
		ID:         uuid.New(),
		Title:      title,
		Deadline:   in.Deadline,
		Body:       in.Body,
		Importance: in.Importance,
		Urgency:    in.Urgency,
		Active:     in.Active,
		Complete:   in.Complete,
	}

	err = s.inTx(ctx, func(tx *db.Repository) error {
		switch {
		case scope.Nested():
			m, err := scope.milestone(ctx, tx, owner)
			if err != nil {
				return err
			}
			t.MilestoneID = m.ID
		case in.MilestoneID != "":
			m, err := ownedMilestone(ctx, tx, owner, in.MilestoneID)
			if err != nil {
				return err
			}
			t.MilestoneID = m.ID
		default:
			t.UserID = owner.ID
		}

		if in.DeadlineEvent {
			e := models.DeadlineEvent(models.EventTask, t.ID, t.Title, t.Deadline)
			e.UserID = owner.ID
			if err := tx.CreateEvent(ctx, e); err != nil {
				return err
			}
			t.DeadlineEventID = e.ID
		}

		if err := tx.CreateTask(ctx, t); err != nil {
			return err
		}
		if err := setTaskTags(ctx, tx, t.ID, in.Tags); err != nil {
			return err
		}
		created, err := tx.GetUserTask(ctx, owner.ID, t.ID)
		if err != nil {
			return err
		}
		t = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debug("task created", map[string]interface{}{"task_id": t.ID, "user_id": owner.ID})
	return t, nil
}

// GetTask returns one task in scope.
func (s *Service) GetTask(ctx context.Context, owner *models.User, scope TaskScope, id string) (*models.Task, error) {
	var t *models.Task
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		t, err = s.loadTask(ctx, tx, owner, scope, id)
		return err
	})
	return t, err
}

// ListTasks returns the standalone tasks of the owner, or the tasks of the
// scoped milestone.
func (s *Service) ListTasks(ctx context.Context, owner *models.User, scope TaskScope) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.inTx(ctx, func(tx *db.Repository) error {
		if !scope.Nested() {
			var err error
			tasks, err = tx.ListUserTasks(ctx, owner.ID)
			return err
		}
		m, err := scope.milestone(ctx, tx, owner)
		if err != nil {
			return err
		}
		tasks, err = tx.ListMilestoneTasks(ctx, m.ID)
		return err
	})
	return tasks, err
}

// UpdateTask applies upd and keeps the deadline event in step with the
// task's title and deadline.
func (s *Service) UpdateTask(ctx context.Context, owner *models.User, scope TaskScope, id string, upd models.TaskUpdate) (*models.Task, error) {
	if upd.Title != nil {
		title, err := required("title", *upd.Title)
		if err != nil {
			return nil, err
		}
		upd.Title = &title
	}
	if upd.Deadline != nil && upd.Deadline.IsZero() {
		return nil, apperrors.Invalid("deadline", "is required")
	}

	var t *models.Task
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if t, err = s.loadTask(ctx, tx, owner, scope, id); err != nil {
			return err
		}
		resync := upd.Apply(t)

		if upd.MilestoneID != nil {
			if *upd.MilestoneID == "" {
				t.MilestoneID = ""
				t.UserID = owner.ID
			} else {
				m, err := ownedMilestone(ctx, tx, owner, *upd.MilestoneID)
				if err != nil {
					return err
				}
				t.MilestoneID = m.ID
				t.UserID = ""
			}
		}

		if err := tx.UpdateTask(ctx, t); err != nil {
			return err
		}
		if upd.Tags != nil {
			if err := setTaskTags(ctx, tx, t.ID, *upd.Tags); err != nil {
				return err
			}
		}
		if resync {
			if err := syncDeadlineEvent(ctx, tx, models.EventTask, t.ID, t.Title, t.Deadline); err != nil {
				return err
			}
		}

		t, err = tx.GetUserTask(ctx, owner.ID, t.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTask removes a task with its deadline event.
func (s *Service) DeleteTask(ctx context.Context, owner *models.User, scope TaskScope, id string) error {
	return s.inTx(ctx, func(tx *db.Repository) error {
		t, err := s.loadTask(ctx, tx, owner, scope, id)
		if err != nil {
			return err
		}
		return tx.DeleteTask(ctx, t.ID)
	})
}

// syncDeadlineEvent re-derives the owner's deadline event, if it has one.
func syncDeadlineEvent(ctx context.Context, tx *db.Repository, kind models.EventKind, ownerID, title string, deadline time.Time) error {
	e, err := tx.GetBoundEvent(ctx, kind, ownerID)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	e.SyncDeadline(title, deadline)
	return tx.UpdateEvent(ctx, e)
}
