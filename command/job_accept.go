package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	"github.com/google/uuid"
)

// JobAcceptInput claims an open posting for the acting worker.
type JobAcceptInput struct {
	Actor  types.ActorRef
	JobID  uuid.UUID
	Scope  types.ScopeFilter
	Result *JobAcceptResult
}

// Type implements gocommand.Message.
func (JobAcceptInput) Type() string {
	return "command.job.accept"
}

// Validate implements gocommand.Message.
func (input JobAcceptInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case input.JobID == uuid.Nil:
		return ErrJobIDRequired
	default:
		return nil
	}
}

// JobAcceptResult carries the claimed job.
type JobAcceptResult struct {
	Job *types.Job
}

// JobAcceptCommand implements go-command.Commander for claims. The store does
// the arbitration: when two workers race, exactly one conditional write lands
// and the loser gets ErrJobUnavailable.
type JobAcceptCommand struct {
	jobs     types.JobRepository
	policy   types.JobTransitionPolicy
	clock    types.Clock
	logger   types.Logger
	hooks    types.Hooks
	activity types.ActivitySink
	guard    scope.Guard
}

// JobAcceptConfig configures the claim handler.
type JobAcceptConfig struct {
	Jobs       types.JobRepository
	Policy     types.JobTransitionPolicy
	Clock      types.Clock
	Logger     types.Logger
	Hooks      types.Hooks
	Activity   types.ActivitySink
	ScopeGuard scope.Guard
}

// NewJobAcceptCommand wires the claim handler.
func NewJobAcceptCommand(cfg JobAcceptConfig) *JobAcceptCommand {
	policy := cfg.Policy
	if policy == nil {
		policy = types.DefaultTransitionPolicy()
	}
	return &JobAcceptCommand{
		jobs:     cfg.Jobs,
		policy:   policy,
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		hooks:    safeHooks(cfg.Hooks),
		activity: safeActivitySink(cfg.Activity),
		guard:    safeScopeGuard(cfg.ScopeGuard),
	}
}

var _ gocommand.Commander[JobAcceptInput] = (*JobAcceptCommand)(nil)

// Execute claims the job for the acting worker.
func (c *JobAcceptCommand) Execute(ctx context.Context, input JobAcceptInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionJobsAccept, input.JobID); err != nil {
		return err
	}
	current, err := c.jobs.GetJob(ctx, input.JobID)
	if err != nil {
		return mapJobLookupError(err)
	}
	if current.EmployerID == input.Actor.ID {
		return ErrOwnJobAccept
	}
	check := types.TransitionCheck{
		Current:      current.Status,
		Target:       types.JobStatusAccepted,
		ActorRole:    input.Actor.Role,
		ActorOwnsJob: current.EmployerID == input.Actor.ID,
	}
	if err := c.policy.Validate(check); err != nil {
		c.logger.Debug("accept rejected by policy", "job_id", current.ID, "status", current.Status)
		return err
	}

	accepted, err := c.jobs.AcceptJob(ctx, input.JobID, input.Actor.ID)
	if err != nil {
		return mapJobWriteError(err)
	}

	eventTime := now(c.clock)
	record := types.ActivityRecord{
		UserID:     accepted.EmployerID,
		ActorID:    input.Actor.ID,
		Verb:       "job.accepted",
		ObjectType: "job",
		ObjectID:   accepted.ID.String(),
		Channel:    "jobs",
		City:       accepted.City,
		Data: map[string]any{
			"title": accepted.Title,
		},
		OccurredAt: eventTime,
	}
	logActivity(ctx, c.activity, record)
	emitActivityHook(ctx, c.hooks, record)

	emitJobHook(ctx, c.hooks, types.JobEvent{
		JobID:      accepted.ID,
		ActorID:    input.Actor.ID,
		FromStatus: types.JobStatusOpen,
		ToStatus:   accepted.Status,
		OccurredAt: eventTime,
		Job:        accepted,
	})

	if input.Result != nil {
		input.Result.Job = accepted
	}
	return nil
}
