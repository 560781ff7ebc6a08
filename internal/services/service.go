// Package services implements the e-board domain operations. Every
// operation runs in one repository transaction and either commits as a
// whole or leaves no trace.
package services

import (
	"context"
	"strings"

	"github.com/kimhsiao/eboard/internal/crypto"
	"github.com/kimhsiao/eboard/internal/db"
	apperrors "github.com/kimhsiao/eboard/internal/errors"
)

// Service coordinates the repository and password hashing.
type Service struct {
	repo   *db.Repository
	store  db.Store
	hasher *crypto.Hasher
}

// New creates a Service over repo.
func New(repo *db.Repository, hasher *crypto.Hasher) *Service {
	return &Service{repo: repo, store: repo, hasher: hasher}
}

// Repository exposes the underlying repository for read-only lookups
// outside a unit of work, such as session resolution.
func (s *Service) Repository() *db.Repository {
	return s.repo
}

func (s *Service) inTx(ctx context.Context, fn func(tx *db.Repository) error) error {
	return s.store.InTx(ctx, fn)
}

// required trims v and reports an empty result as invalid input.
func required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperrors.Invalid(field, "is required")
	}
	return v, nil
}
