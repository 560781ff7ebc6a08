package services

import (
	"context"

	"github.com/kimhsiao/eboard/internal/db"
	"github.com/kimhsiao/eboard/internal/logging"
	"github.com/kimhsiao/eboard/internal/models"
)

// TagDetail is a tag together with the caller's tagged tasks and notes.
type TagDetail struct {
	Tag   *models.Tag
	Tasks []*models.Task
	Notes []*models.Note
}

// setTaskTags replaces the task's tags with names, creating missing tags.
func setTaskTags(ctx context.Context, tx *db.Repository, taskID string, names []string) error {
	if err := tx.ClearTaskTags(ctx, taskID); err != nil {
		return err
	}
	for _, name := range models.NormalizeTagNames(names) {
		tag, _, err := tx.FindOrCreateTag(ctx, name, true)
		if err != nil {
			return err
		}
		if err := tx.AttachTaskTag(ctx, taskID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

// setNoteTags replaces the note's tags with names, creating missing tags.
func setNoteTags(ctx context.Context, tx *db.Repository, noteID string, names []string) error {
	if err := tx.ClearNoteTags(ctx, noteID); err != nil {
		return err
	}
	for _, name := range models.NormalizeTagNames(names) {
		tag, _, err := tx.FindOrCreateTag(ctx, name, true)
		if err != nil {
			return err
		}
		if err := tx.AttachNoteTag(ctx, noteID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

// ListTags returns every tag.
func (s *Service) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.repo.ListTags(ctx)
}

// GetTag returns a tag and the actor's items carrying it.
func (s *Service) GetTag(ctx context.Context, actor *models.User, name string) (*TagDetail, error) {
	detail := &TagDetail{}
	err := s.inTx(ctx, func(tx *db.Repository) error {
		tag, err := tx.FindTag(ctx, name)
		if err != nil {
			return err
		}
		detail.Tag = tag

		taskIDs, err := tx.TaskIDsWithTag(ctx, actor.ID, tag.ID)
		if err != nil {
			return err
		}
		if detail.Tasks, err = tx.GetTasksByIDs(ctx, taskIDs); err != nil {
			return err
		}
		noteIDs, err := tx.NoteIDsWithTag(ctx, actor.ID, tag.ID)
		if err != nil {
			return err
		}
		detail.Notes, err = tx.GetNotesByIDs(ctx, noteIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// RenameTag moves the actor's items from the tag called name to the tag
// called newName, creating it if needed. The old tag is removed once
// nothing links to it. Other users' links are left alone.
func (s *Service) RenameTag(ctx context.Context, actor *models.User, name, newName string) (*models.Tag, error) {
	newName, err := required("name", newName)
	if err != nil {
		return nil, err
	}

	var renamed *models.Tag
	err = s.inTx(ctx, func(tx *db.Repository) error {
		old, err := tx.FindTag(ctx, name)
		if err != nil {
			return err
		}
		target, _, err := tx.FindOrCreateTag(ctx, newName, true)
		if err != nil {
			return err
		}
		renamed = target
		if target.ID == old.ID {
			return nil
		}

		taskIDs, err := tx.TaskIDsWithTag(ctx, actor.ID, old.ID)
		if err != nil {
			return err
		}
		for _, id := range taskIDs {
			if err := tx.AttachTaskTag(ctx, id, target.ID); err != nil {
				return err
			}
		}
		noteIDs, err := tx.NoteIDsWithTag(ctx, actor.ID, old.ID)
		if err != nil {
			return err
		}
		for _, id := range noteIDs {
			if err := tx.AttachNoteTag(ctx, id, target.ID); err != nil {
				return err
			}
		}

		if err := tx.UnlinkTagForUser(ctx, actor.ID, old.ID); err != nil {
			return err
		}
		_, err = tx.DeleteTagIfUnused(ctx, old.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

// RemoveTag unlinks the tag from the actor's items and drops it once
// nothing links to it.
func (s *Service) RemoveTag(ctx context.Context, actor *models.User, name string) error {
	return s.inTx(ctx, func(tx *db.Repository) error {
		tag, err := tx.FindTag(ctx, name)
		if err != nil {
			return err
		}
		if err := tx.UnlinkTagForUser(ctx, actor.ID, tag.ID); err != nil {
			return err
		}
		removed, err := tx.DeleteTagIfUnused(ctx, tag.ID)
		if err != nil {
			return err
		}
		if removed {
			logging.Debug("tag removed", map[string]interface{}{"tag": tag.Name})
		}
		return nil
	})
}
