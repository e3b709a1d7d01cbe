package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	"github.com/google/uuid"
)

// OpenJobsQuery serves the public board: open postings filtered by category,
// keyword and resolved city scope, newest first.
type OpenJobsQuery struct {
	repo  types.JobRepository
	guard scope.Guard
}

// NewOpenJobsQuery constructs the board query helper.
func NewOpenJobsQuery(repo types.JobRepository, guard scope.Guard) *OpenJobsQuery {
	return &OpenJobsQuery{
		repo:  repo,
		guard: safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[types.OpenJobsFilter, types.JobPage] = (*OpenJobsQuery)(nil)

// Query returns the filtered board page.
func (q *OpenJobsQuery) Query(ctx context.Context, filter types.OpenJobsFilter) (types.JobPage, error) {
	if q.repo == nil {
		return types.JobPage{}, types.ErrMissingJobRepository
	}
	if err := filter.Validate(); err != nil {
		return types.JobPage{}, err
	}
	resolved, err := q.guard.Enforce(ctx, filter.Actor, filter.Scope, types.PolicyActionJobsRead, uuid.Nil)
	if err != nil {
		return types.JobPage{}, err
	}
	filter.Scope = resolved
	filter.Pagination = normalizePagination(filter.Pagination)
	return q.repo.ListOpenJobs(ctx, filter)
}
