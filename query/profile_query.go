package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gigs/activity"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	"github.com/goliatone/go-masker"
	"github.com/google/uuid"
)

// ProfileQueryInput scopes profile lookups.
type ProfileQueryInput struct {
	Actor     types.ActorRef
	ProfileID uuid.UUID
	Scope     types.ScopeFilter
}

// Type implements gocommand.Message.
func (ProfileQueryInput) Type() string {
	return "query.profiles.detail"
}

// Validate implements gocommand.Message.
func (input ProfileQueryInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return types.ErrActorRequired
	case input.ProfileID == uuid.Nil:
		return types.ErrProfileIDRequired
	default:
		return nil
	}
}

// ProfileQuery fetches marketplace profiles. Contact details are masked
// unless the viewer is looking at their own profile.
type ProfileQuery struct {
	repo   types.ProfileRepository
	guard  scope.Guard
	masker *masker.Masker
}

// NewProfileQuery constructs the profile query helper.
func NewProfileQuery(repo types.ProfileRepository, guard scope.Guard) *ProfileQuery {
	return &ProfileQuery{
		repo:   repo,
		guard:  safeScopeGuard(guard),
		masker: activity.DefaultMasker(),
	}
}

var _ gocommand.Querier[ProfileQueryInput, *types.Profile] = (*ProfileQuery)(nil)

// Query returns the profile for the supplied identifier.
func (q *ProfileQuery) Query(ctx context.Context, input ProfileQueryInput) (*types.Profile, error) {
	if q.repo == nil {
		return nil, types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := q.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionProfilesRead, input.ProfileID); err != nil {
		return nil, err
	}
	profile, err := q.repo.GetProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile != nil && profile.ID != input.Actor.ID {
		profile.Phone = q.maskPhone(profile.Phone)
	}
	return profile, nil
}

func (q *ProfileQuery) maskPhone(phone string) string {
	if phone == "" {
		return phone
	}
	mask := q.masker
	if mask == nil {
		mask = activity.DefaultMasker()
	}
	if mask == nil {
		return ""
	}
	masked, err := mask.Mask(map[string]any{"phone": phone})
	if err != nil {
		return ""
	}
	payload, ok := masked.(map[string]any)
	if !ok {
		return ""
	}
	out, ok := payload["phone"].(string)
	if !ok {
		return ""
	}
	return out
}
