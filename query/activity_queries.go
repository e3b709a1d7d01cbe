package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gigs/activity"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	"github.com/google/uuid"
)

// ActivityFeedQuery serves the actor's own audit trail with sanitized
// payloads.
type ActivityFeedQuery struct {
	repo   types.ActivityRepository
	policy activity.AccessPolicy
	guard  scope.Guard
}

// NewActivityFeedQuery constructs the feed query helper. A nil policy falls
// back to the self-only default.
func NewActivityFeedQuery(repo types.ActivityRepository, policy activity.AccessPolicy, guard scope.Guard) *ActivityFeedQuery {
	if policy == nil {
		policy = activity.NewDefaultAccessPolicy()
	}
	return &ActivityFeedQuery{
		repo:   repo,
		policy: policy,
		guard:  safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[types.ActivityFilter, types.ActivityPage] = (*ActivityFeedQuery)(nil)

// Query returns the actor's activity page.
func (q *ActivityFeedQuery) Query(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	if q.repo == nil {
		return types.ActivityPage{}, types.ErrMissingActivityRepository
	}
	if err := filter.Validate(); err != nil {
		return types.ActivityPage{}, err
	}
	if _, err := q.guard.Enforce(ctx, filter.Actor, types.ScopeFilter{}, types.PolicyActionActivityRead, uuid.Nil); err != nil {
		return types.ActivityPage{}, err
	}
	applied, err := q.policy.Apply(filter.Actor, filter)
	if err != nil {
		return types.ActivityPage{}, err
	}
	page, err := q.repo.ListActivity(ctx, applied)
	if err != nil {
		return types.ActivityPage{}, err
	}
	page.Records = q.policy.Sanitize(filter.Actor, page.Records)
	return page, nil
}

// ActivityStatsQuery aggregates the actor's own trail by verb.
type ActivityStatsQuery struct {
	repo   types.ActivityRepository
	policy activity.AccessPolicy
	guard  scope.Guard
}

// NewActivityStatsQuery constructs the stats query helper.
func NewActivityStatsQuery(repo types.ActivityRepository, policy activity.AccessPolicy, guard scope.Guard) *ActivityStatsQuery {
	if policy == nil {
		policy = activity.NewDefaultAccessPolicy()
	}
	return &ActivityStatsQuery{
		repo:   repo,
		policy: policy,
		guard:  safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[types.ActivityStatsFilter, types.ActivityStats] = (*ActivityStatsQuery)(nil)

// Query returns aggregate verb counts.
func (q *ActivityStatsQuery) Query(ctx context.Context, filter types.ActivityStatsFilter) (types.ActivityStats, error) {
	if q.repo == nil {
		return types.ActivityStats{}, types.ErrMissingActivityRepository
	}
	if err := filter.Validate(); err != nil {
		return types.ActivityStats{}, err
	}
	if _, err := q.guard.Enforce(ctx, filter.Actor, types.ScopeFilter{}, types.PolicyActionActivityRead, uuid.Nil); err != nil {
		return types.ActivityStats{}, err
	}
	applied, err := q.policy.ApplyStats(filter.Actor, filter)
	if err != nil {
		return types.ActivityStats{}, err
	}
	return q.repo.ActivityStats(ctx, applied)
}
