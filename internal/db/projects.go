package db

import (
	"context"
	"database/sql"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// =====================================================
// Project Operations
// =====================================================

const projectColumns = `id, user_id, name, description, deadline, created, modified,
	active, complete, deadline_event_id`

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var eventID sql.NullString
	var deadline, created, modified unixTime
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Desc, &deadline, &created, &modified,
		&p.Active, &p.Complete, &eventID)
	if err != nil {
		return nil, err
	}
	p.DeadlineEventID = eventID.String
	p.Deadline = deadline.Time()
	p.Created = created.Time()
	p.Modified = modified.Time()
	return &p, nil
}

// CreateProject inserts a project for p.UserID.
func (r *Repository) CreateProject(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	if p.Created.IsZero() {
		p.Created = now()
	}
	p.Modified = p.Created

	_, err := r.q.ExecContext(ctx, `
	INSERT INTO projects (id, user_id, name, description, deadline, created, modified,
		active, complete, deadline_event_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.UserID, p.Name, p.Desc, unix(p.Deadline), unix(p.Created), unix(p.Modified),
		p.Active, p.Complete, nullable(p.DeadlineEventID))
	return dbError(err)
}

// GetUserProject returns the user's project with the given id.
func (r *Repository) GetUserProject(ctx context.Context, userID, id string) (*models.Project, error) {
	p, err := scanProject(r.q.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return nil, notFound(err, "project")
	}
	return p, nil
}

// ListUserProjects returns the user's projects, by deadline.
func (r *Repository) ListUserProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = ? ORDER BY deadline, id`, userID)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, dbError(err)
		}
		projects = append(projects, p)
	}
	return projects, dbError(rows.Err())
}

// UpdateProject writes the mutable project columns.
func (r *Repository) UpdateProject(ctx context.Context, p *models.Project) error {
	result, err := r.q.ExecContext(ctx, `
	UPDATE projects SET name = ?, description = ?, deadline = ?, modified = ?,
		active = ?, complete = ?, deadline_event_id = ?
	WHERE id = ?
	`, p.Name, p.Desc, unix(p.Deadline), unix(p.Modified), p.Active, p.Complete,
		nullable(p.DeadlineEventID), p.ID)
	return mustAffect(result, err, "project")
}

// DeleteProject removes a project with its milestones, tasks and notes,
// and the deadline events of the project and of every nested task.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	err := r.deleteBoundEvents(ctx, models.EventTask, `
		SELECT t.id FROM tasks t JOIN milestones m ON m.id = t.milestone_id
		WHERE m.project_id = ?`, id)
	if err != nil {
		return err
	}
	if err := r.deleteBoundEvents(ctx, models.EventProject, `?`, id); err != nil {
		return err
	}
	result, err := r.q.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return mustAffect(result, err, "project")
}
