package services

import (
	"context"

	"github.com/kimhsiao/eboard/internal/db"
	"github.com/kimhsiao/eboard/internal/models"
)

// NoteScope names the project a note is addressed through. The zero value
// addresses notes reachable from the user.
type NoteScope struct {
	ProjectID string
}

func (s *Service) loadNote(ctx context.Context, tx *db.Repository, owner *models.User, scope NoteScope, id string) (*models.Note, error) {
	if scope.ProjectID == "" {
		return tx.GetUserNote(ctx, owner.ID, id)
	}
	if _, err := tx.GetUserProject(ctx, owner.ID, scope.ProjectID); err != nil {
		return nil, err
	}
	return tx.GetProjectNote(ctx, scope.ProjectID, id)
}

// CreateNote creates a standalone note or a note of the scoped project.
func (s *Service) CreateNote(ctx context.Context, owner *models.User, scope NoteScope, in models.NewNote) (*models.Note, error) {
	title, err := required("title", in.Title)
	if err != nil {
		return nil, err
	}

	n := &models.Note{Title: title, Body: in.Body}
	err = s.inTx(ctx, func(tx *db.Repository) error {
		if scope.ProjectID != "" {
			p, err := tx.GetUserProject(ctx, owner.ID, scope.ProjectID)
			if err != nil {
				return err
			}
			n.ProjectID = p.ID
		} else {
			n.UserID = owner.ID
		}

		if err := tx.CreateNote(ctx, n); err != nil {
			return err
		}
		if err := setNoteTags(ctx, tx, n.ID, in.Tags); err != nil {
			return err
		}
		created, err := tx.GetUserNote(ctx, owner.ID, n.ID)
		if err != nil {
			return err
		}
		n = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// GetNote returns one note in scope.
func (s *Service) GetNote(ctx context.Context, owner *models.User, scope NoteScope, id string) (*models.Note, error) {
	var n *models.Note
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		n, err = s.loadNote(ctx, tx, owner, scope, id)
		return err
	})
	return n, err
}

// ListNotes returns the standalone notes of the owner, or the notes of the
// scoped project.
func (s *Service) ListNotes(ctx context.Context, owner *models.User, scope NoteScope) ([]*models.Note, error) {
	var notes []*models.Note
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if scope.ProjectID == "" {
			notes, err = tx.ListUserNotes(ctx, owner.ID)
			return err
		}
		if _, err = tx.GetUserProject(ctx, owner.ID, scope.ProjectID); err != nil {
			return err
		}
		notes, err = tx.ListProjectNotes(ctx, scope.ProjectID)
		return err
	})
	return notes, err
}

// UpdateNote applies upd to a note in scope.
func (s *Service) UpdateNote(ctx context.Context, owner *models.User, scope NoteScope, id string, upd models.NoteUpdate) (*models.Note, error) {
	if upd.Title != nil {
		title, err := required("title", *upd.Title)
		if err != nil {
			return nil, err
		}
		upd.Title = &title
	}

	var n *models.Note
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if n, err = s.loadNote(ctx, tx, owner, scope, id); err != nil {
			return err
		}
		upd.Apply(n)
		if err := tx.UpdateNote(ctx, n); err != nil {
			return err
		}
		if upd.Tags != nil {
			if err := setNoteTags(ctx, tx, n.ID, *upd.Tags); err != nil {
				return err
			}
		}
		n, err = tx.GetUserNote(ctx, owner.ID, n.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// DeleteNote removes a note in scope.
func (s *Service) DeleteNote(ctx context.Context, owner *models.User, scope NoteScope, id string) error {
	return s.inTx(ctx, func(tx *db.Repository) error {
		n, err := s.loadNote(ctx, tx, owner, scope, id)
		if err != nil {
			return err
		}
		return tx.DeleteNote(ctx, n.ID)
	})
}
