package services

import (
	"context"

	"github.com/kimhsiao/eboard/internal/db"
	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/logging"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// CreateProject creates a project and, unless suppressed, its deadline
// event.
func (s *Service) CreateProject(ctx context.Context, owner *models.User, in models.NewProject) (*models.Project, error) {
	name, err := required("name", in.Name)
	if err != nil {
		return nil, err
	}
	if in.Deadline.IsZero() {
		return nil, apperrors.Invalid("deadline", "is required")
	}

	p := &models.Project{
		ID:       uuid.New(),
		UserID:   owner.ID,
		Name:     name,
		Desc:     in.Desc,
		Deadline: in.Deadline,
		Active:   in.Active,
		Complete: in.Complete,
	}
	err = s.inTx(ctx, func(tx *db.Repository) error {
		if in.DeadlineEvent {
			e := models.DeadlineEvent(models.EventProject, p.ID, p.Name, p.Deadline)
			e.UserID = owner.ID
			if err := tx.CreateEvent(ctx, e); err != nil {
				return err
			}
			p.DeadlineEventID = e.ID
		}
		return tx.CreateProject(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logging.Debug("project created", map[string]interface{}{"project_id": p.ID, "user_id": owner.ID})
	return p, nil
}

// GetProject returns a project with its milestones, and with each
// milestone's tasks when withTasks is set.
func (s *Service) GetProject(ctx context.Context, owner *models.User, id string, withTasks bool) (*models.Project, error) {
	var p *models.Project
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if p, err = tx.GetUserProject(ctx, owner.ID, id); err != nil {
			return err
		}
		if p.Milestones, err = tx.ListProjectMilestones(ctx, p.ID); err != nil {
			return err
		}
		if !withTasks {
			return nil
		}

		tasks, err := tx.ListProjectTasks(ctx, p.ID)
		if err != nil {
			return err
		}
		byMilestone := make(map[string][]*models.Task, len(p.Milestones))
		for _, t := range tasks {
			byMilestone[t.MilestoneID] = append(byMilestone[t.MilestoneID], t)
		}
		for _, m := range p.Milestones {
			m.Tasks = byMilestone[m.ID]
			if m.Tasks == nil {
				m.Tasks = []*models.Task{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProjects returns the owner's projects.
func (s *Service) ListProjects(ctx context.Context, owner *models.User) ([]*models.Project, error) {
	return s.repo.ListUserProjects(ctx, owner.ID)
}

// UpdateProject applies upd, stamps the modification time and keeps the
// deadline event in step.
func (s *Service) UpdateProject(ctx context.Context, owner *models.User, id string, upd models.ProjectUpdate) (*models.Project, error) {
	if upd.Name != nil {
		name, err := required("name", *upd.Name)
		if err != nil {
			return nil, err
		}
		upd.Name = &name
	}
	if upd.Deadline != nil && upd.Deadline.IsZero() {
		return nil, apperrors.Invalid("deadline", "is required")
	}

	var p *models.Project
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if p, err = tx.GetUserProject(ctx, owner.ID, id); err != nil {
			return err
		}
		resync := upd.Apply(p)
		p.Touch()
		if err := tx.UpdateProject(ctx, p); err != nil {
			return err
		}
		if resync {
			return syncDeadlineEvent(ctx, tx, models.EventProject, p.ID, p.Name, p.Deadline)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProject removes a project with everything below it.
func (s *Service) DeleteProject(ctx context.Context, owner *models.User, id string) error {
	err := s.inTx(ctx, func(tx *db.Repository) error {
		p, err := tx.GetUserProject(ctx, owner.ID, id)
		if err != nil {
			return err
		}
		return tx.DeleteProject(ctx, p.ID)
	})
	if err != nil {
		return err
	}
	logging.Debug("project deleted", map[string]interface{}{"project_id": id, "user_id": owner.ID})
	return nil
}
