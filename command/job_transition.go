package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	"github.com/google/uuid"
)

// JobTransitionInput moves a posting through the employer-driven lifecycle:
// cancel while open, start once accepted, complete once in progress.
type JobTransitionInput struct {
	Actor  types.ActorRef
	JobID  uuid.UUID
	Target types.JobStatus
	Scope  types.ScopeFilter
	Result *JobTransitionResult
}

// Type implements gocommand.Message.
func (JobTransitionInput) Type() string {
	return "command.job.transition"
}

// Validate implements gocommand.Message.
func (input JobTransitionInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case input.JobID == uuid.Nil:
		return ErrJobIDRequired
	case !input.Target.Valid():
		return types.ErrTransitionNotAllowed
	default:
		return nil
	}
}

// JobTransitionResult carries the updated job.
type JobTransitionResult struct {
	Job *types.Job
}

// JobTransitionCommand implements go-command.Commander for lifecycle moves.
type JobTransitionCommand struct {
	jobs     types.JobRepository
	profiles types.ProfileRepository
	policy   types.JobTransitionPolicy
	clock    types.Clock
	logger   types.Logger
	hooks    types.Hooks
	activity types.ActivitySink
	guard    scope.Guard
}

// JobTransitionConfig configures the lifecycle handler.
type JobTransitionConfig struct {
	Jobs       types.JobRepository
	Profiles   types.ProfileRepository
	Policy     types.JobTransitionPolicy
	Clock      types.Clock
	Logger     types.Logger
	Hooks      types.Hooks
	Activity   types.ActivitySink
	ScopeGuard scope.Guard
}

// NewJobTransitionCommand wires the lifecycle handler.
func NewJobTransitionCommand(cfg JobTransitionConfig) *JobTransitionCommand {
	policy := cfg.Policy
	if policy == nil {
		policy = types.DefaultTransitionPolicy()
	}
	return &JobTransitionCommand{
		jobs:     cfg.Jobs,
		profiles: cfg.Profiles,
		policy:   policy,
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		hooks:    safeHooks(cfg.Hooks),
		activity: safeActivitySink(cfg.Activity),
		guard:    safeScopeGuard(cfg.ScopeGuard),
	}
}

var _ gocommand.Commander[JobTransitionInput] = (*JobTransitionCommand)(nil)

// Execute validates the move against the transition table and applies it as a
// single conditional write keyed on the owner and the observed status.
func (c *JobTransitionCommand) Execute(ctx context.Context, input JobTransitionInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionJobsManage, input.JobID); err != nil {
		return err
	}
	current, err := c.jobs.GetJob(ctx, input.JobID)
	if err != nil {
		return mapJobLookupError(err)
	}
	check := types.TransitionCheck{
		Current:      current.Status,
		Target:       input.Target,
		ActorRole:    input.Actor.Role,
		ActorOwnsJob: current.EmployerID == input.Actor.ID,
	}
	if current.WorkerID != nil && *current.WorkerID == input.Actor.ID {
		check.ActorIsAssigned = true
	}
	if err := c.policy.Validate(check); err != nil {
		c.logger.Debug("transition rejected by policy",
			"job_id", current.ID, "from", current.Status, "to", input.Target)
		return err
	}

	updated, err := c.jobs.UpdateJobStatus(ctx, input.JobID, input.Actor.ID, current.Status, input.Target)
	if err != nil {
		return mapJobWriteError(err)
	}

	if updated.Status == types.JobStatusCompleted {
		if err := c.bumpCompletionCounters(ctx, updated); err != nil {
			c.logger.Error("failed to bump completion counters", err, "job_id", updated.ID)
		}
	}

	eventTime := now(c.clock)
	record := types.ActivityRecord{
		UserID:     updated.EmployerID,
		ActorID:    input.Actor.ID,
		Verb:       "job.status_changed",
		ObjectType: "job",
		ObjectID:   updated.ID.String(),
		Channel:    "jobs",
		City:       updated.City,
		Data: map[string]any{
			"from_status": string(current.Status),
			"to_status":   string(updated.Status),
		},
		OccurredAt: eventTime,
	}
	logActivity(ctx, c.activity, record)
	emitActivityHook(ctx, c.hooks, record)

	emitJobHook(ctx, c.hooks, types.JobEvent{
		JobID:      updated.ID,
		ActorID:    input.Actor.ID,
		FromStatus: current.Status,
		ToStatus:   updated.Status,
		OccurredAt: eventTime,
		Job:        updated,
	})

	if input.Result != nil {
		input.Result.Job = updated
	}
	return nil
}

// bumpCompletionCounters credits both parties of a completed job. Counter
// drift is logged rather than failing the transition: the status change
// already landed.
func (c *JobTransitionCommand) bumpCompletionCounters(ctx context.Context, job *types.Job) error {
	if c.profiles == nil {
		return nil
	}
	ids := []uuid.UUID{job.EmployerID}
	if job.WorkerID != nil && *job.WorkerID != uuid.Nil {
		ids = append(ids, *job.WorkerID)
	}
	return c.profiles.IncrementTotalJobs(ctx, ids...)
}
