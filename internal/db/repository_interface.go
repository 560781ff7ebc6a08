package db

import (
	"context"

	"github.com/kimhsiao/eboard/internal/models"
)

// Store runs a unit of work against the repository. Every request-level
// operation of the services layer goes through it.
type Store interface {
	InTx(ctx context.Context, fn func(tx *Repository) error) error
}

// UserFinder resolves accounts for the session and access layers.
type UserFinder interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Ensure *Repository implements the interfaces at compile time.
var (
	_ Store      = (*Repository)(nil)
	_ UserFinder = (*Repository)(nil)
)
