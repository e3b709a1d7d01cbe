package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
)

// UserJobsQuery lists the jobs a profile participates in. Feeds are private:
// a profile can only list its own postings or assignments.
type UserJobsQuery struct {
	repo  types.JobRepository
	guard scope.Guard
}

// NewUserJobsQuery constructs the my-jobs query helper.
func NewUserJobsQuery(repo types.JobRepository, guard scope.Guard) *UserJobsQuery {
	return &UserJobsQuery{
		repo:  repo,
		guard: safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[types.UserJobsFilter, types.JobPage] = (*UserJobsQuery)(nil)

// Query returns the profile's jobs, newest first.
func (q *UserJobsQuery) Query(ctx context.Context, filter types.UserJobsFilter) (types.JobPage, error) {
	if q.repo == nil {
		return types.JobPage{}, types.ErrMissingJobRepository
	}
	if err := filter.Validate(); err != nil {
		return types.JobPage{}, err
	}
	if _, err := q.guard.Enforce(ctx, filter.Actor, types.ScopeFilter{}, types.PolicyActionJobsRead, filter.ProfileID); err != nil {
		return types.JobPage{}, err
	}
	if filter.ProfileID != filter.Actor.ID {
		return types.JobPage{}, goerrors.New("job feeds are limited to your own profile", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden).
			WithTextCode("JOB_FEED_SCOPE_DENIED")
	}
	filter.Pagination = normalizePagination(filter.Pagination)
	return q.repo.ListJobsForUser(ctx, filter)
}

// UserJobsGroups buckets a feed the way dashboards render it: everything
// still moving on top, the terminal states below.
type UserJobsGroups struct {
	Active    []types.Job
	Completed []types.Job
	Cancelled []types.Job
}

// GroupUserJobs splits a job list by lifecycle bucket, preserving order.
func GroupUserJobs(jobs []types.Job) UserJobsGroups {
	groups := UserJobsGroups{}
	for _, job := range jobs {
		switch job.Status {
		case types.JobStatusCompleted:
			groups.Completed = append(groups.Completed, job)
		case types.JobStatusCancelled:
			groups.Cancelled = append(groups.Cancelled, job)
		default:
			groups.Active = append(groups.Active, job)
		}
	}
	return groups
}
