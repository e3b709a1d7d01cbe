package activity

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-masker"
	"github.com/google/uuid"
)

// AccessPolicy pins activity reads to the requesting actor and sanitizes
// payloads on the way out.
type AccessPolicy interface {
	Apply(actor types.ActorRef, filter types.ActivityFilter) (types.ActivityFilter, error)
	ApplyStats(actor types.ActorRef, filter types.ActivityStatsFilter) (types.ActivityStatsFilter, error)
	Sanitize(actor types.ActorRef, records []types.ActivityRecord) []types.ActivityRecord
}

// AccessPolicyOption customizes the default access policy.
type AccessPolicyOption func(*DefaultAccessPolicy)

// DefaultAccessPolicy restricts feeds and stats to the actor's own trail.
type DefaultAccessPolicy struct {
	masker *masker.Masker
}

var _ AccessPolicy = (*DefaultAccessPolicy)(nil)

// NewDefaultAccessPolicy returns the default policy implementation.
func NewDefaultAccessPolicy(opts ...AccessPolicyOption) *DefaultAccessPolicy {
	policy := &DefaultAccessPolicy{
		masker: DefaultMasker(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(policy)
		}
	}
	if policy.masker == nil {
		policy.masker = DefaultMasker()
	}
	return policy
}

// WithPolicyMasker overrides the masker used for sanitization.
func WithPolicyMasker(mask *masker.Masker) AccessPolicyOption {
	return func(policy *DefaultAccessPolicy) {
		if policy == nil {
			return
		}
		policy.masker = mask
	}
}

// Apply pins the feed to the actor. An empty subject defaults to the actor's
// own trail; asking for somebody else's is denied.
func (p *DefaultAccessPolicy) Apply(actor types.ActorRef, filter types.ActivityFilter) (types.ActivityFilter, error) {
	if !actor.Authenticated() {
		return types.ActivityFilter{}, unauthenticatedError()
	}
	if filter.UserID == uuid.Nil && filter.ActorID == uuid.Nil {
		filter.UserID = actor.ID
		return filter, nil
	}
	if filter.UserID != uuid.Nil && filter.UserID != actor.ID {
		return types.ActivityFilter{}, scopeDeniedError()
	}
	if filter.ActorID != uuid.Nil && filter.ActorID != actor.ID {
		return types.ActivityFilter{}, scopeDeniedError()
	}
	return filter, nil
}

// ApplyStats pins aggregate queries to the actor's own trail.
func (p *DefaultAccessPolicy) ApplyStats(actor types.ActorRef, filter types.ActivityStatsFilter) (types.ActivityStatsFilter, error) {
	if !actor.Authenticated() {
		return types.ActivityStatsFilter{}, unauthenticatedError()
	}
	if filter.UserID == uuid.Nil {
		filter.UserID = actor.ID
		return filter, nil
	}
	if filter.UserID != actor.ID {
		return types.ActivityStatsFilter{}, scopeDeniedError()
	}
	return filter, nil
}

// Sanitize masks sensitive payload values before records reach callers.
func (p *DefaultAccessPolicy) Sanitize(_ types.ActorRef, records []types.ActivityRecord) []types.ActivityRecord {
	return SanitizeRecords(p.masker, records)
}

func unauthenticatedError() error {
	return goerrors.New("activity requires an authenticated actor", goerrors.CategoryAuth).
		WithCode(goerrors.CodeUnauthorized).
		WithTextCode("ACTOR_UNAUTHENTICATED")
}

func scopeDeniedError() error {
	return goerrors.New("activity feed is limited to your own trail", goerrors.CategoryAuthz).
		WithCode(goerrors.CodeForbidden).
		WithTextCode("ACTIVITY_SCOPE_DENIED")
}
