package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// =====================================================
// Milestone Operations
// =====================================================

const milestoneColumns = `id, project_id, title, description, position`

func scanMilestone(row rowScanner) (*models.Milestone, error) {
	var m models.Milestone
	if err := row.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Desc, &m.Position); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) queryMilestones(ctx context.Context, query string, args ...interface{}) ([]*models.Milestone, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	milestones := make([]*models.Milestone, 0)
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, dbError(err)
		}
		milestones = append(milestones, m)
	}
	return milestones, dbError(rows.Err())
}

// AppendMilestone inserts m after the last milestone of its project. The
// position is computed by the insert itself, so concurrent appends cannot
// pick the same slot.
func (r *Repository) AppendMilestone(ctx context.Context, m *models.Milestone) error {
	if m.ID == "" {
		m.ID = uuid.New()
	}
	err := r.q.QueryRowContext(ctx, `
	INSERT INTO milestones (id, project_id, title, description, position)
	SELECT ?1, ?2, ?3, ?4, COALESCE(MAX(position) + 1, 0)
	FROM milestones WHERE project_id = ?2
	RETURNING position
	`, m.ID, m.ProjectID, m.Title, m.Desc).Scan(&m.Position)
	return dbError(err)
}

// GetProjectMilestone returns a milestone of the given project.
func (r *Repository) GetProjectMilestone(ctx context.Context, projectID, id string) (*models.Milestone, error) {
	m, err := scanMilestone(r.q.QueryRowContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE id = ? AND project_id = ?`, id, projectID))
	if err != nil {
		return nil, notFound(err, "milestone")
	}
	return m, nil
}

// GetUserMilestone returns a milestone of any of the user's projects.
func (r *Repository) GetUserMilestone(ctx context.Context, userID, id string) (*models.Milestone, error) {
	m, err := scanMilestone(r.q.QueryRowContext(ctx, `
	SELECT m.id, m.project_id, m.title, m.description, m.position
	FROM milestones m JOIN projects p ON p.id = m.project_id
	WHERE m.id = ? AND p.user_id = ?`, id, userID))
	if err != nil {
		return nil, notFound(err, "milestone")
	}
	return m, nil
}

// GetMilestones loads the milestones with the given ids in one query.
// Missing ids are simply absent from the result.
func (r *Repository) GetMilestones(ctx context.Context, ids ...string) ([]*models.Milestone, error) {
	if len(ids) == 0 {
		return make([]*models.Milestone, 0), nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return r.queryMilestones(ctx, `SELECT `+milestoneColumns+` FROM milestones
	WHERE id IN (`+placeholders(len(ids))+`)`, args...)
}

// ListProjectMilestones returns the project's milestones by position.
func (r *Repository) ListProjectMilestones(ctx context.Context, projectID string) ([]*models.Milestone, error) {
	return r.queryMilestones(ctx, `SELECT `+milestoneColumns+` FROM milestones
	WHERE project_id = ? ORDER BY position`, projectID)
}

// UpdateMilestone writes title and description. Positions change only
// through MoveMilestone and SwapMilestones.
func (r *Repository) UpdateMilestone(ctx context.Context, m *models.Milestone) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE milestones SET title = ?, description = ? WHERE id = ?`, m.Title, m.Desc, m.ID)
	return mustAffect(result, err, "milestone")
}

// MoveMilestone sets m's position. When another milestone of the project
// holds that position the two are swapped.
func (r *Repository) MoveMilestone(ctx context.Context, m *models.Milestone, position int) error {
	if position == m.Position {
		return nil
	}
	holder, err := scanMilestone(r.q.QueryRowContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE project_id = ? AND position = ?`,
		m.ProjectID, position))
	switch {
	case err == nil:
		return r.SwapMilestones(ctx, m, holder)
	case !errors.Is(err, sql.ErrNoRows):
		return dbError(err)
	}

	result, err := r.q.ExecContext(ctx,
		`UPDATE milestones SET position = ? WHERE id = ?`, position, m.ID)
	if err := mustAffect(result, err, "milestone"); err != nil {
		return err
	}
	m.Position = position
	return nil
}

// SwapMilestones exchanges the positions of two milestones of the same
// project. The first one is parked past the current maximum so that
// UNIQUE(project_id, position) holds after every statement.
func (r *Repository) SwapMilestones(ctx context.Context, a, b *models.Milestone) error {
	pa, pb := a.Position, b.Position

	_, err := r.q.ExecContext(ctx, `
	UPDATE milestones
	SET position = (SELECT MAX(position) + 1 FROM milestones WHERE project_id = ?)
	WHERE id = ?`, a.ProjectID, a.ID)
	if err != nil {
		return dbError(err)
	}
	if _, err := r.q.ExecContext(ctx, `UPDATE milestones SET position = ? WHERE id = ?`, pa, b.ID); err != nil {
		return dbError(err)
	}
	if _, err := r.q.ExecContext(ctx, `UPDATE milestones SET position = ? WHERE id = ?`, pb, a.ID); err != nil {
		return dbError(err)
	}

	a.Position, b.Position = pb, pa
	return nil
}

// DeleteMilestone removes a milestone with its tasks and their deadline
// events.
func (r *Repository) DeleteMilestone(ctx context.Context, id string) error {
	err := r.deleteBoundEvents(ctx, models.EventTask,
		`SELECT id FROM tasks WHERE milestone_id = ?`, id)
	if err != nil {
		return err
	}
	result, err := r.q.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	return mustAffect(result, err, "milestone")
}
