package db

import (
	"context"
	"database/sql"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// =====================================================
// Event Operations
// =====================================================

const eventColumns = `e.id, e.user_id, e.kind, e.owner_id, e.title, e.start_at, e.end_at,
	e.all_day, e.editable, e.class_name, e.color, e.text_color,
	e.background_color, e.border_color, e.description, e.url`

func scanEvent(row rowScanner) (*models.Event, error) {
	var e models.Event
	var kind string
	var owner sql.NullString
	var start, end unixTime
	err := row.Scan(&e.ID, &e.UserID, &kind, &owner, &e.Title, &start, &end,
		&e.AllDay, &e.Editable, &e.ClassName, &e.Color, &e.TextColor,
		&e.BackgroundColor, &e.BorderColor, &e.Desc, &e.URL)
	if err != nil {
		return nil, err
	}
	e.Binding = models.EventBinding{Kind: models.EventKind(kind), OwnerID: owner.String}
	e.Start = start.Time()
	e.End = end.Time()
	return &e, nil
}

func (r *Repository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, dbError(err)
		}
		events = append(events, e)
	}
	return events, dbError(rows.Err())
}

// CreateEvent inserts an event for e.UserID.
func (r *Repository) CreateEvent(ctx context.Context, e *models.Event) error {
	if e.ID == "" {
		e.ID = uuid.New()
	}
	if e.Binding.Kind == "" {
		e.Binding.Kind = models.EventStandalone
	}

	_, err := r.q.ExecContext(ctx, `
	INSERT INTO events (id, user_id, kind, owner_id, title, start_at, end_at,
		all_day, editable, class_name, color, text_color,
		background_color, border_color, description, url)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, string(e.Binding.Kind), nullable(e.Binding.OwnerID), e.Title,
		unix(e.Start), unix(e.End), e.AllDay, e.Editable, e.ClassName, e.Color,
		e.TextColor, e.BackgroundColor, e.BorderColor, e.Desc, e.URL)
	return dbError(err)
}

// GetUserEvent returns the user's event with the given id.
func (r *Repository) GetUserEvent(ctx context.Context, userID, id string) (*models.Event, error) {
	e, err := scanEvent(r.q.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = ? AND e.user_id = ?`, id, userID))
	if err != nil {
		return nil, notFound(err, "event")
	}
	return e, nil
}

// GetBoundEvent returns the deadline event bound to a task or project.
func (r *Repository) GetBoundEvent(ctx context.Context, kind models.EventKind, ownerID string) (*models.Event, error) {
	e, err := scanEvent(r.q.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.kind = ? AND e.owner_id = ?`, string(kind), ownerID))
	if err != nil {
		return nil, notFound(err, "event")
	}
	return e, nil
}

// ListEvents returns the user's events matching the filters, by start.
func (r *Repository) ListEvents(ctx context.Context, userID string, filters *FilterBuilder) ([]*models.Event, error) {
	if filters != nil && filters.MatchesNothing() {
		return make([]*models.Event, 0), nil
	}

	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.user_id = ?`
	args := []interface{}{userID}
	if filters != nil {
		if where, filterArgs := filters.Build(); where != "" {
			query += " AND " + where
			args = append(args, filterArgs...)
		}
	}
	query += ` ORDER BY e.start_at, e.id`

	return r.queryEvents(ctx, query, args...)
}

// UpdateEvent writes every mutable column of e. The binding is fixed at
// creation.
func (r *Repository) UpdateEvent(ctx context.Context, e *models.Event) error {
	result, err := r.q.ExecContext(ctx, `
	UPDATE events SET title = ?, start_at = ?, end_at = ?, all_day = ?, editable = ?,
		class_name = ?, color = ?, text_color = ?, background_color = ?,
		border_color = ?, description = ?, url = ?
	WHERE id = ?
	`, e.Title, unix(e.Start), unix(e.End), e.AllDay, e.Editable, e.ClassName,
		e.Color, e.TextColor, e.BackgroundColor, e.BorderColor, e.Desc, e.URL, e.ID)
	return mustAffect(result, err, "event")
}

// DeleteEvent removes one event.
func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return mustAffect(result, err, "event")
}

// deleteBoundEvents removes the deadline events of the given kind whose
// owner is selected by ownerQuery.
func (r *Repository) deleteBoundEvents(ctx context.Context, kind models.EventKind, ownerQuery string, args ...interface{}) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM events WHERE kind = ? AND owner_id IN (`+ownerQuery+`)`,
		append([]interface{}{string(kind)}, args...)...)
	return dbError(err)
}
