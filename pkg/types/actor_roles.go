package types

import (
	"strings"

	"github.com/google/uuid"
)

// ActorRef identifies who is initiating an operation. Role always comes from
// the server-verified auth context; authorization never trusts a role carried
// in request payloads.
type ActorRef struct {
	ID   uuid.UUID
	Role UserRole
}

// Authenticated reports whether the actor carries a resolved identity.
func (a ActorRef) Authenticated() bool {
	return a.ID != uuid.Nil
}

// RoleName normalizes the actor role for comparisons.
func (a ActorRef) RoleName() UserRole {
	return UserRole(strings.ToLower(strings.TrimSpace(string(a.Role))))
}

// IsWorker reports whether the actor acts on the worker side.
func (a ActorRef) IsWorker() bool {
	return a.RoleName() == RoleWorker
}

// IsEmployer reports whether the actor acts on the employer side.
func (a ActorRef) IsEmployer() bool {
	return a.RoleName() == RoleEmployer
}
