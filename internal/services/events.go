package services

import (
	"context"
	"time"

	"github.com/kimhsiao/eboard/internal/db"
	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/models"
)

// EventQuery selects events by local calendar days. From is the first
// day's midnight and Until the midnight after the last day; zero values
// leave the side open.
type EventQuery struct {
	From  time.Time
	Until time.Time
	Kinds []models.EventKind
}

func checkRange(e *models.Event) error {
	if e.Start.IsZero() {
		return apperrors.Invalid("start", "is required")
	}
	if e.End.IsZero() {
		e.End = e.Start
	}
	if e.End.Before(e.Start) {
		return apperrors.Invalid("end", "must not be before start")
	}
	return nil
}

// CreateEvent creates a standalone event. End defaults to start.
func (s *Service) CreateEvent(ctx context.Context, owner *models.User, in models.EventFields) (*models.Event, error) {
	e := &models.Event{UserID: owner.ID, Editable: true, Binding: models.EventBinding{Kind: models.EventStandalone}}
	in.Apply(e)

	title, err := required("title", e.Title)
	if err != nil {
		return nil, err
	}
	e.Title = title
	if err := checkRange(e); err != nil {
		return nil, err
	}

	if err := s.inTx(ctx, func(tx *db.Repository) error {
		return tx.CreateEvent(ctx, e)
	}); err != nil {
		return nil, err
	}
	return e, nil
}

// GetEvent returns one of the owner's events.
func (s *Service) GetEvent(ctx context.Context, owner *models.User, id string) (*models.Event, error) {
	return s.repo.GetUserEvent(ctx, owner.ID, id)
}

// ListEvents returns the owner's events inside the query window.
func (s *Service) ListEvents(ctx context.Context, owner *models.User, q EventQuery) ([]*models.Event, error) {
	filters := db.NewFilterBuilder().Window(q.From, q.Until).Kinds(q.Kinds...)
	return s.repo.ListEvents(ctx, owner.ID, filters)
}

// UpdateEvent applies fields to a standalone event. Deadline events follow
// their task or project and cannot be edited directly.
func (s *Service) UpdateEvent(ctx context.Context, owner *models.User, id string, fields models.EventFields) (*models.Event, error) {
	var e *models.Event
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if e, err = tx.GetUserEvent(ctx, owner.ID, id); err != nil {
			return err
		}
		if e.Bound() {
			return apperrors.Invalid("event", "deadline events follow their "+string(e.Binding.Kind))
		}
		fields.Apply(e)
		title, err := required("title", e.Title)
		if err != nil {
			return err
		}
		e.Title = title
		if err := checkRange(e); err != nil {
			return err
		}
		return tx.UpdateEvent(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEvent removes a standalone event.
func (s *Service) DeleteEvent(ctx context.Context, owner *models.User, id string) error {
	return s.inTx(ctx, func(tx *db.Repository) error {
		e, err := tx.GetUserEvent(ctx, owner.ID, id)
		if err != nil {
			return err
		}
		if e.Bound() {
			return apperrors.Invalid("event", "deadline events follow their "+string(e.Binding.Kind))
		}
		return tx.DeleteEvent(ctx, e.ID)
	})
}
