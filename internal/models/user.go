// Package models provides the e-board domain entities and the per-entity
// request records that carry validated input into the services layer.
package models

import (
	"time"

	"github.com/kimhsiao/eboard/internal/timez"
)

// User is the ownership root of every other entity.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Public       bool      `db:"public" json:"public"`
	TZ           string    `db:"tz" json:"tz"`
	Created      time.Time `db:"created" json:"created"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// Location returns the user's declared zone (UTC when unset).
func (u *User) Location() *time.Location {
	return timez.MustZone(u.TZ)
}

// NewUser carries the validated fields of a registration.
type NewUser struct {
	Username string
	Password string
	Confirm  string
	TZ       string
}

// UserUpdate lists the writable account fields; nil means unchanged.
// A new Password must be repeated in Confirm.
type UserUpdate struct {
	Password *string
	Confirm  *string
	Public   *bool
	TZ       *string
}
