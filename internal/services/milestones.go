package services

import (
	"context"

	"github.com/kimhsiao/eboard/internal/db"
	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/models"
)

func (s *Service) loadMilestone(ctx context.Context, tx *db.Repository, owner *models.User, projectID, id string) (*models.Milestone, error) {
	if _, err := tx.GetUserProject(ctx, owner.ID, projectID); err != nil {
		return nil, err
	}
	return tx.GetProjectMilestone(ctx, projectID, id)
}

// CreateMilestone appends a milestone to the project.
func (s *Service) CreateMilestone(ctx context.Context, owner *models.User, projectID string, in models.NewMilestone) (*models.Milestone, error) {
	title, err := required("title", in.Title)
	if err != nil {
		return nil, err
	}

	m := &models.Milestone{ProjectID: projectID, Title: title, Desc: in.Desc}
	err = s.inTx(ctx, func(tx *db.Repository) error {
		if _, err := tx.GetUserProject(ctx, owner.ID, projectID); err != nil {
			return err
		}
		return tx.AppendMilestone(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetMilestone returns one milestone of the project.
func (s *Service) GetMilestone(ctx context.Context, owner *models.User, projectID, id string) (*models.Milestone, error) {
	var m *models.Milestone
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		m, err = s.loadMilestone(ctx, tx, owner, projectID, id)
		return err
	})
	return m, err
}

// ListMilestones returns the project's milestones by position.
func (s *Service) ListMilestones(ctx context.Context, owner *models.User, projectID string) ([]*models.Milestone, error) {
	var milestones []*models.Milestone
	err := s.inTx(ctx, func(tx *db.Repository) error {
		if _, err := tx.GetUserProject(ctx, owner.ID, projectID); err != nil {
			return err
		}
		var err error
		milestones, err = tx.ListProjectMilestones(ctx, projectID)
		return err
	})
	return milestones, err
}

// UpdateMilestone applies upd. A new position already held by another
// milestone of the project swaps the two.
func (s *Service) UpdateMilestone(ctx context.Context, owner *models.User, projectID, id string, upd models.MilestoneUpdate) (*models.Milestone, error) {
	if upd.Title != nil {
		title, err := required("title", *upd.Title)
		if err != nil {
			return nil, err
		}
		upd.Title = &title
	}
	if upd.Position != nil && *upd.Position < 0 {
		return nil, apperrors.Invalid("position", "must not be negative")
	}

	var m *models.Milestone
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if m, err = s.loadMilestone(ctx, tx, owner, projectID, id); err != nil {
			return err
		}
		if upd.Title != nil {
			m.Title = *upd.Title
		}
		if upd.Desc != nil {
			m.Desc = *upd.Desc
		}
		if err := tx.UpdateMilestone(ctx, m); err != nil {
			return err
		}
		if upd.Position != nil {
			return tx.MoveMilestone(ctx, m, *upd.Position)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ReorderMilestone places milestone id before or after the reference
// milestone by swapping the two positions when their order is wrong.
// Placing a milestone relative to itself changes nothing.
func (s *Service) ReorderMilestone(ctx context.Context, owner *models.User, projectID, id string, where models.Placement, refID string) (*models.Milestone, error) {
	field := "before"
	if where == models.After {
		field = "after"
	}
	if refID == "" {
		return nil, apperrors.Invalid(field, "is required")
	}

	var m *models.Milestone
	err := s.inTx(ctx, func(tx *db.Repository) error {
		if _, err := tx.GetUserProject(ctx, owner.ID, projectID); err != nil {
			return err
		}
		pair, err := tx.GetMilestones(ctx, id, refID)
		if err != nil {
			return err
		}
		var ref *models.Milestone
		for _, candidate := range pair {
			switch candidate.ID {
			case id:
				m = candidate
			case refID:
				ref = candidate
			}
		}
		if m == nil || m.ProjectID != projectID {
			m = nil
			return apperrors.NotFound("milestone")
		}
		if id == refID {
			return nil
		}
		if ref == nil {
			return apperrors.Invalid(field, "reference milestone not found")
		}
		if ref.ProjectID != m.ProjectID {
			return apperrors.Invalid(field, "milestones belong to different projects")
		}

		misplaced := m.Position > ref.Position
		if where == models.After {
			misplaced = m.Position < ref.Position
		}
		if !misplaced {
			return nil
		}
		return tx.SwapMilestones(ctx, m, ref)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMilestone removes a milestone with its tasks.
func (s *Service) DeleteMilestone(ctx context.Context, owner *models.User, projectID, id string) error {
	return s.inTx(ctx, func(tx *db.Repository) error {
		m, err := s.loadMilestone(ctx, tx, owner, projectID, id)
		if err != nil {
			return err
		}
		return tx.DeleteMilestone(ctx, m.ID)
	})
}
