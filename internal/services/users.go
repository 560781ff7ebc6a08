package services

import (
	"context"

	"github.com/kimhsiao/eboard/internal/crypto"
	"github.com/kimhsiao/eboard/internal/db"
	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/logging"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/timez"
)

// UserIndex is the shallow overview of an account.
type UserIndex struct {
	User     *models.User
	Tasks    []*models.Task
	Projects []*models.Project
	Notes    []*models.Note
}

// CreateUser registers an account. The password must be confirmed and the
// zone, when given, must be a known IANA name.
func (s *Service) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	username, err := required("username", in.Username)
	if err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, apperrors.Invalid("password", "is required")
	}
	if in.Password != in.Confirm {
		return nil, apperrors.Invalid("password2", "passwords do not match")
	}
	tz := in.TZ
	if tz == "" {
		tz = timez.DefaultZone
	}
	if _, err := timez.LoadZone(tz); err != nil {
		return nil, apperrors.Invalid("timezone", err.Error())
	}

	// Hash before the transaction opens; the KDF is the slow part.
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to hash password", err)
	}

	u := &models.User{Username: username, PasswordHash: hash, TZ: tz}
	if err := s.inTx(ctx, func(tx *db.Repository) error {
		return tx.CreateUser(ctx, u)
	}); err != nil {
		return nil, err
	}

	logging.Info("user created", map[string]interface{}{"user_id": u.ID, "username": u.Username})
	return u, nil
}

// Authenticate returns the user whose credentials match. Unknown users and
// wrong passwords are indistinguishable.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrUnauthorized, "invalid credentials")
		}
		return nil, err
	}
	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "invalid credentials")
	}
	return u, nil
}

// GetUser resolves a username.
func (s *Service) GetUser(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

// UserIndex returns the user with its standalone tasks, projects and
// standalone notes.
func (s *Service) UserIndex(ctx context.Context, u *models.User) (*UserIndex, error) {
	index := &UserIndex{User: u}
	err := s.inTx(ctx, func(tx *db.Repository) error {
		var err error
		if index.Tasks, err = tx.ListUserTasks(ctx, u.ID); err != nil {
			return err
		}
		if index.Projects, err = tx.ListUserProjects(ctx, u.ID); err != nil {
			return err
		}
		index.Notes, err = tx.ListUserNotes(ctx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// UpdateUser changes the public flag, the zone or the password.
func (s *Service) UpdateUser(ctx context.Context, u *models.User, upd models.UserUpdate) (*models.User, error) {
	changed := *u
	if upd.Public != nil {
		changed.Public = *upd.Public
	}
	if upd.TZ != nil {
		tz := *upd.TZ
		if tz == "" {
			tz = timez.DefaultZone
		}
		if _, err := timez.LoadZone(tz); err != nil {
			return nil, apperrors.Invalid("timezone", err.Error())
		}
		changed.TZ = tz
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, apperrors.Invalid("password", "is required")
		}
		if upd.Confirm == nil || *upd.Confirm != *upd.Password {
			return nil, apperrors.Invalid("password2", "passwords do not match")
		}
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to hash password", err)
		}
		changed.PasswordHash = hash
	}

	if err := s.inTx(ctx, func(tx *db.Repository) error {
		return tx.UpdateUser(ctx, &changed)
	}); err != nil {
		return nil, err
	}
	return &changed, nil
}

// DeleteUser removes the account and everything it owns once the password
// is confirmed.
func (s *Service) DeleteUser(ctx context.Context, u *models.User, password string) error {
	if password == "" {
		return apperrors.Invalid("password", "is required")
	}
	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		if err == crypto.ErrMismatch {
			return apperrors.Invalid("password", "incorrect password")
		}
		return apperrors.Wrap(apperrors.ErrInternal, "failed to verify password", err)
	}

	if err := s.inTx(ctx, func(tx *db.Repository) error {
		return tx.DeleteUser(ctx, u.ID)
	}); err != nil {
		return err
	}

	logging.Info("user deleted", map[string]interface{}{"user_id": u.ID})
	return nil
}
