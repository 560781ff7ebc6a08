package db

import (
	"context"
	"strings"

	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// =====================================================
// Tag Operations
// =====================================================

// ownedTaskIDs selects every task reachable from user ?1, directly or
// through a project milestone.
const ownedTaskIDs = `
	SELECT id FROM tasks WHERE user_id = ?1
	UNION
	SELECT t.id FROM tasks t
	JOIN milestones m ON m.id = t.milestone_id
	JOIN projects p ON p.id = m.project_id
	WHERE p.user_id = ?1`

// ownedNoteIDs selects every note reachable from user ?1.
const ownedNoteIDs = `
	SELECT id FROM notes WHERE user_id = ?1
	UNION
	SELECT n.id FROM notes n
	JOIN projects p ON p.id = n.project_id
	WHERE p.user_id = ?1`

// tagLink describes one tag association table.
type tagLink struct {
	table  string
	column string
}

var (
	taskTags = tagLink{table: "taskstags", column: "task_id"}
	noteTags = tagLink{table: "notestags", column: "note_id"}
)

// FindTag returns the tag whose name matches ignoring case.
func (r *Repository) FindTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.q.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE lower(name) = lower(?)`,
		strings.TrimSpace(name)).Scan(&tag.ID, &tag.Name)
	if err != nil {
		return nil, notFound(err, "tag")
	}
	return &tag, nil
}

// FindOrCreateTag returns the tag matching name ignoring case, inserting it
// with the given spelling when create is set. created reports an insert.
// With create unset and no match it returns (nil, false, nil).
func (r *Repository) FindOrCreateTag(ctx context.Context, name string, create bool) (tag *models.Tag, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperrors.Invalid("tags", "tag name must not be empty")
	}

	tag, err = r.FindTag(ctx, name)
	if err == nil {
		return tag, false, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}
	if !create {
		return nil, false, nil
	}

	id := uuid.New()
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO tags (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`, id, name)
	if err != nil {
		return nil, false, dbError(err)
	}
	if n, _ := result.RowsAffected(); n == 1 {
		return &models.Tag{ID: id, Name: name}, true, nil
	}

	// Lost the race to a concurrent insert; read the winner.
	tag, err = r.FindTag(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return tag, false, nil
}

// ListTags returns all tags ordered by name.
func (r *Repository) ListTags(ctx context.Context) ([]*models.Tag, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY lower(name)`)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	tags := make([]*models.Tag, 0)
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, dbError(err)
		}
		tags = append(tags, &tag)
	}
	return tags, dbError(rows.Err())
}

func (r *Repository) attachTag(ctx context.Context, link tagLink, ownerID, tagID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO `+link.table+` (`+link.column+`, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		ownerID, tagID)
	return dbError(err)
}

func (r *Repository) detachTagByName(ctx context.Context, link tagLink, ownerID, name string) error {
	_, err := r.q.ExecContext(ctx, `
	DELETE FROM `+link.table+`
	WHERE `+link.column+` = ? AND tag_id IN (SELECT id FROM tags WHERE lower(name) = lower(?))
	`, ownerID, strings.TrimSpace(name))
	return dbError(err)
}

func (r *Repository) clearTags(ctx context.Context, link tagLink, ownerID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM `+link.table+` WHERE `+link.column+` = ?`, ownerID)
	return dbError(err)
}

// tagNames loads tag names for many owners at once.
func (r *Repository) tagNames(ctx context.Context, link tagLink, ownerIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}
	args := make([]interface{}, len(ownerIDs))
	for i, id := range ownerIDs {
		args[i] = id
	}
	rows, err := r.q.QueryContext(ctx, `
	SELECT l.`+link.column+`, t.name FROM `+link.table+` l
	JOIN tags t ON t.id = l.tag_id
	WHERE l.`+link.column+` IN (`+placeholders(len(args))+`)
	ORDER BY lower(t.name)
	`, args...)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID, name string
		if err := rows.Scan(&ownerID, &name); err != nil {
			return nil, dbError(err)
		}
		result[ownerID] = append(result[ownerID], name)
	}
	return result, dbError(rows.Err())
}

// AttachTaskTag links an existing tag to a task.
func (r *Repository) AttachTaskTag(ctx context.Context, taskID, tagID string) error {
	return r.attachTag(ctx, taskTags, taskID, tagID)
}

// DetachTaskTag unlinks a tag from a task by case-insensitive name.
// The tag itself is kept.
func (r *Repository) DetachTaskTag(ctx context.Context, taskID, name string) error {
	return r.detachTagByName(ctx, taskTags, taskID, name)
}

// ClearTaskTags unlinks every tag of a task.
func (r *Repository) ClearTaskTags(ctx context.Context, taskID string) error {
	return r.clearTags(ctx, taskTags, taskID)
}

// AttachNoteTag links an existing tag to a note.
func (r *Repository) AttachNoteTag(ctx context.Context, noteID, tagID string) error {
	return r.attachTag(ctx, noteTags, noteID, tagID)
}

// DetachNoteTag unlinks a tag from a note by case-insensitive name.
func (r *Repository) DetachNoteTag(ctx context.Context, noteID, name string) error {
	return r.detachTagByName(ctx, noteTags, noteID, name)
}

// ClearNoteTags unlinks every tag of a note.
func (r *Repository) ClearNoteTags(ctx context.Context, noteID string) error {
	return r.clearTags(ctx, noteTags, noteID)
}

// TaskIDsWithTag returns the ids of the user's tasks carrying the tag.
func (r *Repository) TaskIDsWithTag(ctx context.Context, userID, tagID string) ([]string, error) {
	return r.idsWithTag(ctx, taskTags, ownedTaskIDs, userID, tagID)
}

// NoteIDsWithTag returns the ids of the user's notes carrying the tag.
func (r *Repository) NoteIDsWithTag(ctx context.Context, userID, tagID string) ([]string, error) {
	return r.idsWithTag(ctx, noteTags, ownedNoteIDs, userID, tagID)
}

func (r *Repository) idsWithTag(ctx context.Context, link tagLink, owned, userID, tagID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `
	SELECT `+link.column+` FROM `+link.table+`
	WHERE tag_id = ?2 AND `+link.column+` IN (`+owned+`)
	`, userID, tagID)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dbError(err)
		}
		ids = append(ids, id)
	}
	return ids, dbError(rows.Err())
}

// UnlinkTagForUser removes the tag from every task and note of the user.
func (r *Repository) UnlinkTagForUser(ctx context.Context, userID, tagID string) error {
	for _, l := range []struct {
		link  tagLink
		owned string
	}{{taskTags, ownedTaskIDs}, {noteTags, ownedNoteIDs}} {
		_, err := r.q.ExecContext(ctx, `
		DELETE FROM `+l.link.table+`
		WHERE tag_id = ?2 AND `+l.link.column+` IN (`+l.owned+`)
		`, userID, tagID)
		if err != nil {
			return dbError(err)
		}
	}
	return nil
}

// DeleteTagIfUnused removes a tag no task or note links to any more.
// It reports whether the tag was removed.
func (r *Repository) DeleteTagIfUnused(ctx context.Context, tagID string) (bool, error) {
	result, err := r.q.ExecContext(ctx, `
	DELETE FROM tags WHERE id = ?1
		AND NOT EXISTS (SELECT 1 FROM taskstags WHERE tag_id = ?1)
		AND NOT EXISTS (SELECT 1 FROM notestags WHERE tag_id = ?1)
	`, tagID)
	if err != nil {
		return false, dbError(err)
	}
	n, err := result.RowsAffected()
	return n == 1, dbError(err)
}
