package db

import (
	"context"
	"database/sql"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// =====================================================
// Task Operations
// =====================================================

const taskColumns = `t.id, t.user_id, t.milestone_id, t.title, t.created, t.deadline,
	t.body, t.importance, t.urgency, t.active, t.complete, t.deadline_event_id,
	COALESCE(m.project_id, '')`

// taskFrom joins the milestone so the project of a nested task is known.
const taskFrom = ` FROM tasks t LEFT JOIN milestones m ON m.id = t.milestone_id`

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	var userID, milestoneID, eventID sql.NullString
	var created, deadline unixTime
	err := row.Scan(&t.ID, &userID, &milestoneID, &t.Title, &created, &deadline,
		&t.Body, &t.Importance, &t.Urgency, &t.Active, &t.Complete, &eventID,
		&t.ProjectID)
	if err != nil {
		return nil, err
	}
	t.UserID = userID.String
	t.MilestoneID = milestoneID.String
	t.DeadlineEventID = eventID.String
	t.Created = created.Time()
	t.Deadline = deadline.Time()
	return &t, nil
}

func (r *Repository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*models.Task, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err)
	}
	tasks := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			rows.Close()
			return nil, dbError(err)
		}
		tasks = append(tasks, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return tasks, r.loadTaskTags(ctx, tasks)
}

func (r *Repository) loadTaskTags(ctx context.Context, tasks []*models.Task) error {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	names, err := r.tagNames(ctx, taskTags, ids)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		t.Tags = names[t.ID]
		if t.Tags == nil {
			t.Tags = []string{}
		}
	}
	return nil
}

// CreateTask inserts a task. Exactly one of UserID and MilestoneID must be
// set; tags are attached separately.
func (r *Repository) CreateTask(ctx context.Context, t *models.Task) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	if t.Created.IsZero() {
		t.Created = now()
	}

	_, err := r.q.ExecContext(ctx, `
	INSERT INTO tasks (id, user_id, milestone_id, title, created, deadline, body,
		importance, urgency, active, complete, deadline_event_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, nullable(t.UserID), nullable(t.MilestoneID), t.Title, unix(t.Created),
		unix(t.Deadline), t.Body, t.Importance, t.Urgency, t.Active, t.Complete,
		nullable(t.DeadlineEventID))
	return dbError(err)
}

// GetUserTask resolves a task reachable from the user, standalone first and
// then through the user's projects.
func (r *Repository) GetUserTask(ctx context.Context, userID, id string) (*models.Task, error) {
	tasks, err := r.queryTasks(ctx, `SELECT `+taskColumns+taskFrom+`
	WHERE t.id = ?1 AND t.user_id = ?2
	UNION ALL
	SELECT `+taskColumns+taskFrom+`
	JOIN projects p ON p.id = m.project_id
	WHERE t.id = ?1 AND p.user_id = ?2`, id, userID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, notFound(sql.ErrNoRows, "task")
	}
	return tasks[0], nil
}

// GetMilestoneTask returns a task of the given milestone.
func (r *Repository) GetMilestoneTask(ctx context.Context, milestoneID, id string) (*models.Task, error) {
	tasks, err := r.queryTasks(ctx, `SELECT `+taskColumns+taskFrom+`
	WHERE t.id = ? AND t.milestone_id = ?`, id, milestoneID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, notFound(sql.ErrNoRows, "task")
	}
	return tasks[0], nil
}

// GetTasksByIDs returns the tasks with the given ids, by deadline.
func (r *Repository) GetTasksByIDs(ctx context.Context, ids []string) ([]*models.Task, error) {
	if len(ids) == 0 {
		return make([]*models.Task, 0), nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return r.queryTasks(ctx, `SELECT `+taskColumns+taskFrom+`
	WHERE t.id IN (`+placeholders(len(ids))+`) ORDER BY t.deadline, t.id`, args...)
}

// ListUserTasks returns the user's standalone tasks, by deadline.
func (r *Repository) ListUserTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+taskFrom+`
	WHERE t.user_id = ? ORDER BY t.deadline, t.id`, userID)
}

// ListMilestoneTasks returns the tasks of one milestone, by deadline.
func (r *Repository) ListMilestoneTasks(ctx context.Context, milestoneID string) ([]*models.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+taskFrom+`
	WHERE t.milestone_id = ? ORDER BY t.deadline, t.id`, milestoneID)
}

// ListProjectTasks returns every task of the project's milestones.
func (r *Repository) ListProjectTasks(ctx context.Context, projectID string) ([]*models.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+taskFrom+`
	WHERE m.project_id = ? ORDER BY t.deadline, t.id`, projectID)
}

// UpdateTask writes every mutable column of t, including its parent.
func (r *Repository) UpdateTask(ctx context.Context, t *models.Task) error {
	result, err := r.q.ExecContext(ctx, `
	UPDATE tasks SET user_id = ?, milestone_id = ?, title = ?, deadline = ?, body = ?,
		importance = ?, urgency = ?, active = ?, complete = ?, deadline_event_id = ?
	WHERE id = ?
	`, nullable(t.UserID), nullable(t.MilestoneID), t.Title, unix(t.Deadline), t.Body,
		t.Importance, t.Urgency, t.Active, t.Complete, nullable(t.DeadlineEventID), t.ID)
	return mustAffect(result, err, "task")
}

// DeleteTask removes a task together with its deadline event.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	if err := r.deleteBoundEvents(ctx, models.EventTask, `?`, id); err != nil {
		return err
	}
	result, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return mustAffect(result, err, "task")
}

// CountTasks returns the number of stored tasks.
func (r *Repository) CountTasks(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, dbError(err)
}
