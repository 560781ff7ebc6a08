package db

import (
	"context"
	"database/sql"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// =====================================================
// Note Operations
// =====================================================

const noteColumns = `n.id, n.user_id, n.project_id, n.title, n.body, n.timestamp`

func scanNote(row rowScanner) (*models.Note, error) {
	var n models.Note
	var userID, projectID sql.NullString
	var ts unixTime
	if err := row.Scan(&n.ID, &userID, &projectID, &n.Title, &n.Body, &ts); err != nil {
		return nil, err
	}
	n.UserID = userID.String
	n.ProjectID = projectID.String
	n.Timestamp = ts.Time()
	return &n, nil
}

func (r *Repository) queryNotes(ctx context.Context, query string, args ...interface{}) ([]*models.Note, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err)
	}
	notes := make([]*models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			rows.Close()
			return nil, dbError(err)
		}
		notes = append(notes, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}

	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	names, err := r.tagNames(ctx, noteTags, ids)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		n.Tags = names[n.ID]
		if n.Tags == nil {
			n.Tags = []string{}
		}
	}
	return notes, nil
}

func firstNote(notes []*models.Note, err error) (*models.Note, error) {
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, notFound(sql.ErrNoRows, "note")
	}
	return notes[0], nil
}

// CreateNote inserts a note. Exactly one of UserID and ProjectID must be set.
func (r *Repository) CreateNote(ctx context.Context, n *models.Note) error {
	if n.ID == "" {
		n.ID = uuid.New()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = now()
	}

	_, err := r.q.ExecContext(ctx, `
	INSERT INTO notes (id, user_id, project_id, title, body, timestamp)
	VALUES (?, ?, ?, ?, ?, ?)
	`, n.ID, nullable(n.UserID), nullable(n.ProjectID), n.Title, n.Body, unix(n.Timestamp))
	return dbError(err)
}

// GetUserNote resolves a note reachable from the user, standalone first and
// then through the user's projects.
func (r *Repository) GetUserNote(ctx context.Context, userID, id string) (*models.Note, error) {
	return firstNote(r.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes n
	WHERE n.id = ?1 AND n.user_id = ?2
	UNION ALL
	SELECT `+noteColumns+` FROM notes n
	JOIN projects p ON p.id = n.project_id
	WHERE n.id = ?1 AND p.user_id = ?2`, id, userID))
}

// GetProjectNote returns a note of the given project.
func (r *Repository) GetProjectNote(ctx context.Context, projectID, id string) (*models.Note, error) {
	return firstNote(r.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes n
	WHERE n.id = ? AND n.project_id = ?`, id, projectID))
}

// GetNotesByIDs returns the notes with the given ids, newest first.
func (r *Repository) GetNotesByIDs(ctx context.Context, ids []string) ([]*models.Note, error) {
	if len(ids) == 0 {
		return make([]*models.Note, 0), nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return r.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes n
	WHERE n.id IN (`+placeholders(len(ids))+`) ORDER BY n.timestamp DESC, n.id`, args...)
}

// ListUserNotes returns the user's standalone notes, newest first.
func (r *Repository) ListUserNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	return r.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes n
	WHERE n.user_id = ? ORDER BY n.timestamp DESC, n.id`, userID)
}

// ListProjectNotes returns the notes of one project, newest first.
func (r *Repository) ListProjectNotes(ctx context.Context, projectID string) ([]*models.Note, error) {
	return r.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes n
	WHERE n.project_id = ? ORDER BY n.timestamp DESC, n.id`, projectID)
}

// UpdateNote writes the mutable note columns.
func (r *Repository) UpdateNote(ctx context.Context, n *models.Note) error {
	result, err := r.q.ExecContext(ctx, `
	UPDATE notes SET title = ?, body = ? WHERE id = ?
	`, n.Title, n.Body, n.ID)
	return mustAffect(result, err, "note")
}

// DeleteNote removes a note; its tag links cascade.
func (r *Repository) DeleteNote(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	return mustAffect(result, err, "note")
}
