package db

import (
	"context"
	"strings"

	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/uuid"
)

// =====================================================
// User Operations
// =====================================================

const userColumns = `id, username, password_hash, public, tz, created`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var created unixTime
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Public, &u.TZ, &created); err != nil {
		return nil, err
	}
	u.Created = created.Time()
	return &u, nil
}

// CreateUser inserts a user. A taken username is reported as DUPLICATE.
func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.New()
	u.Created = now()

	_, err := r.q.ExecContext(ctx, `
	INSERT INTO users (id, username, password_hash, public, tz, created)
	VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Username, u.PasswordHash, u.Public, u.TZ, unix(u.Created))
	if err != nil {
		err = dbError(err)
		if apperrors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.Conflict("username already taken")
		}
		return err
	}
	return nil
}

// GetUserByUsername looks a user up by exact username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	stmt, err := r.prepared(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`)
	if err != nil {
		return nil, dbError(err)
	}
	u, err := scanUser(stmt.QueryRowContext(ctx, username))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// GetUserByID looks a user up by id.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	stmt, err := r.prepared(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`)
	if err != nil {
		return nil, dbError(err)
	}
	u, err := scanUser(stmt.QueryRowContext(ctx, strings.ToLower(id)))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// UpdateUser writes the mutable account fields.
func (r *Repository) UpdateUser(ctx context.Context, u *models.User) error {
	result, err := r.q.ExecContext(ctx, `
	UPDATE users SET password_hash = ?, public = ?, tz = ? WHERE id = ?
	`, u.PasswordHash, u.Public, u.TZ, u.ID)
	return mustAffect(result, err, "user")
}

// DeleteUser removes a user; every owned entity cascades.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return mustAffect(result, err, "user")
}
