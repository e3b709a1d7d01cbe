package types

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// PolicyAction enumerates the supported authorization actions enforced by the
// guard. Host applications can remap these actions to their own ACL systems.
type PolicyAction string

const (
	PolicyActionJobsRead      PolicyAction = "jobs:read"
	PolicyActionJobsPost      PolicyAction = "jobs:post"
	PolicyActionJobsAccept    PolicyAction = "jobs:accept"
	PolicyActionJobsManage    PolicyAction = "jobs:manage"
	PolicyActionProfilesRead  PolicyAction = "profiles:read"
	PolicyActionProfilesWrite PolicyAction = "profiles:write"
	PolicyActionRatingsRead   PolicyAction = "ratings:read"
	PolicyActionRatingsWrite  PolicyAction = "ratings:write"
	PolicyActionActivityRead  PolicyAction = "activity:read"
)

// PolicyCheck captures the authorization context for a single command/query.
type PolicyCheck struct {
	Actor    ActorRef
	Scope    ScopeFilter
	Action   PolicyAction
	TargetID uuid.UUID
}

// ScopeResolver resolves requested scopes into canonical city markets based
// on the actor and host application rules (e.g. a single-city deployment
// pinning every query to its market).
type ScopeResolver interface {
	ResolveScope(ctx context.Context, actor ActorRef, requested ScopeFilter) (ScopeFilter, error)
}

// ScopeResolverFunc adapts bare functions to ScopeResolver.
type ScopeResolverFunc func(ctx context.Context, actor ActorRef, requested ScopeFilter) (ScopeFilter, error)

// ResolveScope implements ScopeResolver.
func (f ScopeResolverFunc) ResolveScope(ctx context.Context, actor ActorRef, requested ScopeFilter) (ScopeFilter, error) {
	return f(ctx, actor, requested)
}

// AuthorizationPolicy governs whether an actor can perform the requested
// action.
type AuthorizationPolicy interface {
	Authorize(ctx context.Context, check PolicyCheck) error
}

// AuthorizationPolicyFunc adapts bare functions to AuthorizationPolicy.
type AuthorizationPolicyFunc func(ctx context.Context, check PolicyCheck) error

// Authorize implements AuthorizationPolicy.
func (f AuthorizationPolicyFunc) Authorize(ctx context.Context, check PolicyCheck) error {
	return f(ctx, check)
}

// PassthroughScopeResolver returns the requested scope as-is. Used when host
// applications do not provide a custom resolver.
type PassthroughScopeResolver struct{}

// ResolveScope implements ScopeResolver.
func (PassthroughScopeResolver) ResolveScope(_ context.Context, _ ActorRef, requested ScopeFilter) (ScopeFilter, error) {
	return requested, nil
}

// AllowAllAuthorizationPolicy allows every action for any authenticated
// actor. Mostly useful in tests.
type AllowAllAuthorizationPolicy struct{}

// Authorize implements AuthorizationPolicy.
func (AllowAllAuthorizationPolicy) Authorize(context.Context, PolicyCheck) error {
	return nil
}

const (
	textCodeUnauthenticated = "ACTOR_UNAUTHENTICATED"
	textCodeRoleDenied      = "ACTOR_ROLE_DENIED"
)

// RoleAuthorizationPolicy maps each policy action to the marketplace role
// table: employers post and manage jobs, workers accept them, everything
// read-side plus self-service writes only needs a session.
type RoleAuthorizationPolicy struct{}

// Authorize implements AuthorizationPolicy.
func (RoleAuthorizationPolicy) Authorize(_ context.Context, check PolicyCheck) error {
	if !check.Actor.Authenticated() {
		return errors.New("go-gigs: no authenticated actor", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeUnauthenticated)
	}
	switch check.Action {
	case PolicyActionJobsPost, PolicyActionJobsManage:
		if !check.Actor.IsEmployer() {
			return roleDenied(check, RoleEmployer)
		}
	case PolicyActionJobsAccept:
		if !check.Actor.IsWorker() {
			return roleDenied(check, RoleWorker)
		}
	}
	return nil
}

func roleDenied(check PolicyCheck, required UserRole) error {
	return errors.New("go-gigs: "+string(check.Action)+" requires the "+string(required)+" role", errors.CategoryAuthz).
		WithCode(errors.CodeForbidden).
		WithTextCode(textCodeRoleDenied)
}
