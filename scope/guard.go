package scope

import (
	"context"

	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/google/uuid"
)

// Guard is the single choke point for city scoping and role authorization.
// Commands and queries call Enforce before touching a repository; tests swap
// in stubs through the same interface.
type Guard interface {
	Enforce(ctx context.Context, actor types.ActorRef, requested types.ScopeFilter, action types.PolicyAction, target uuid.UUID) (types.ScopeFilter, error)
}

type guard struct {
	resolver types.ScopeResolver
	policy   types.AuthorizationPolicy
}

// NewGuard combines a scope resolver with a role policy. Either side may be
// nil, in which case that half of the enforcement is skipped.
func NewGuard(resolver types.ScopeResolver, policy types.AuthorizationPolicy) Guard {
	return guard{
		resolver: resolver,
		policy:   policy,
	}
}

// Ensure normalizes a possibly-nil guard to a working one. Constructors call
// it so direct instantiation in tests does not need guard wiring.
func Ensure(g Guard) Guard {
	if g == nil {
		return guard{}
	}
	return g
}

// NopGuard returns a guard that passes every scope through and denies nothing.
func NopGuard() Guard {
	return guard{}
}

// Default returns a guard wired with the passthrough resolver and the
// marketplace role table, the combination most hosts want.
func Default() Guard {
	return NewGuard(types.PassthroughScopeResolver{}, types.RoleAuthorizationPolicy{})
}

// Enforce resolves the requested scope for the actor, then authorizes the
// action against the resolved scope. The returned filter is what repositories
// should query with.
func (g guard) Enforce(ctx context.Context, actor types.ActorRef, requested types.ScopeFilter, action types.PolicyAction, target uuid.UUID) (types.ScopeFilter, error) {
	scope := requested
	if g.resolver != nil {
		resolved, err := g.resolver.ResolveScope(ctx, actor, requested)
		if err != nil {
			return types.ScopeFilter{}, err
		}
		scope = resolved
	}
	if g.policy != nil && action != "" {
		check := types.PolicyCheck{
			Actor:    actor,
			Scope:    scope,
			Action:   action,
			TargetID: target,
		}
		if err := g.policy.Authorize(ctx, check); err != nil {
			return types.ScopeFilter{}, err
		}
	}
	return scope, nil
}
