// Package access decides whether an authenticated caller may operate on
// the resources of a target user.
package access

import "github.com/kimhsiao/eboard/internal/models"

// Op classifies the requested operation.
type Op int

const (
	// Read covers GET requests.
	Read Op = iota
	// Write covers every mutating request.
	Write
)

// Decision is the outcome of a policy check.
type Decision int

const (
	Allow Decision = iota
	// DenyUnauthorized means no session was presented.
	DenyUnauthorized
	// DenyNotFound masks both missing and private targets.
	DenyNotFound
)

// String returns a readable name for logs.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthorized:
		return "deny-401"
	case DenyNotFound:
		return "deny-404"
	}
	return "unknown"
}

// Policy applies the ownership rules: owners may do anything, other
// authenticated users may read public profiles, everyone else sees
// nothing.
type Policy struct{}

// Decide returns the decision for actor operating on target. A nil target
// stands for a username that does not resolve.
func (Policy) Decide(actor, target *models.User, op Op) Decision {
	if target == nil {
		return DenyNotFound
	}
	if actor == nil {
		return DenyUnauthorized
	}
	if actor.ID == target.ID {
		return Allow
	}
	if op == Read && target.Public {
		return Allow
	}
	return DenyNotFound
}
