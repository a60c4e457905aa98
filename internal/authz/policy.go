// Package authz decides whether a caller's role satisfies an operation's
// declared role requirement. Two strategies exist on purpose: HTTP routes
// use exact membership, the realtime gateway uses the numeric hierarchy.
// They give different answers for the same inputs (e.g. SuperAdmin against
// required={Admin}) and must not be unified silently.
package authz

import "github.com/ilkol21/company-crm/internal/domain"

// Policy maps a required-role set and an actual role to an allow/deny
// decision. A caller without a recognizable role is denied regardless of
// the required set; an empty required set otherwise always allows.
type Policy interface {
	Allows(required []domain.Role, actual domain.Role) bool
}

// ExactMatch allows iff the caller's role is literally a member of the
// required set. No hierarchy: an Admin is not granted access to a
// SuperAdmin-only operation unless Admin is explicitly listed.
type ExactMatch struct{}

func (ExactMatch) Allows(required []domain.Role, actual domain.Role) bool {
	if !actual.Valid() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if actual == r {
			return true
		}
	}
	return false
}

// Hierarchy allows iff the caller's rank is at least the rank of one of the
// required roles, so higher roles inherit lower-role permissions.
type Hierarchy struct{}

func (Hierarchy) Allows(required []domain.Role, actual domain.Role) bool {
	if !actual.Valid() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if actual.Rank() >= r.Rank() {
			return true
		}
	}
	return false
}
