package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	"github.com/google/uuid"
)

// JobDetailInput identifies the job to load.
type JobDetailInput struct {
	Actor types.ActorRef
	JobID uuid.UUID
	Scope types.ScopeFilter
}

// Type implements gocommand.Message.
func (JobDetailInput) Type() string {
	return "query.jobs.detail"
}

// Validate implements gocommand.Message.
func (input JobDetailInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return types.ErrActorRequired
	case input.JobID == uuid.Nil:
		return types.ErrJobIDRequired
	default:
		return nil
	}
}

// JobDetailQuery loads a single job with both party summaries joined. Open
// postings are visible to every authenticated profile; once claimed, only the
// employer and the assigned worker can read them.
type JobDetailQuery struct {
	repo  types.JobRepository
	guard scope.Guard
}

// NewJobDetailQuery constructs the detail query helper.
func NewJobDetailQuery(repo types.JobRepository, guard scope.Guard) *JobDetailQuery {
	return &JobDetailQuery{
		repo:  repo,
		guard: safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[JobDetailInput, *types.Job] = (*JobDetailQuery)(nil)

// Query returns the job when the actor is allowed to see it.
func (q *JobDetailQuery) Query(ctx context.Context, input JobDetailInput) (*types.Job, error) {
	if q.repo == nil {
		return nil, types.ErrMissingJobRepository
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := q.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionJobsRead, input.JobID); err != nil {
		return nil, err
	}
	job, err := q.repo.GetJob(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != types.JobStatusOpen && !isParty(job, input.Actor.ID) {
		return nil, goerrors.New("job details are limited to its participants", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden).
			WithTextCode("JOB_DETAIL_SCOPE_DENIED")
	}
	return job, nil
}

func isParty(job *types.Job, actorID uuid.UUID) bool {
	if job.EmployerID == actorID {
		return true
	}
	return job.WorkerID != nil && *job.WorkerID == actorID
}
