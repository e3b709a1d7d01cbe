package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
)

// RatingsQuery lists the feedback a profile has received. Ratings are public
// reputation data, so any authenticated profile can read them.
type RatingsQuery struct {
	repo  types.RatingRepository
	guard scope.Guard
}

// NewRatingsQuery constructs the ratings query helper.
func NewRatingsQuery(repo types.RatingRepository, guard scope.Guard) *RatingsQuery {
	return &RatingsQuery{
		repo:  repo,
		guard: safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[types.RatingsFilter, types.RatingPage] = (*RatingsQuery)(nil)

// Query returns the profile's received ratings, newest first.
func (q *RatingsQuery) Query(ctx context.Context, filter types.RatingsFilter) (types.RatingPage, error) {
	if q.repo == nil {
		return types.RatingPage{}, types.ErrMissingRatingRepository
	}
	if err := filter.Validate(); err != nil {
		return types.RatingPage{}, err
	}
	if _, err := q.guard.Enforce(ctx, filter.Actor, types.ScopeFilter{}, types.PolicyActionRatingsRead, filter.RatedID); err != nil {
		return types.RatingPage{}, err
	}
	filter.Pagination = normalizePagination(filter.Pagination)
	return q.repo.ListRatingsForUser(ctx, filter)
}
