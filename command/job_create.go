package command

import (
	"context"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	"github.com/google/uuid"
)

// JobCreateInput describes a new posting. The employer is the acting profile;
// status and assignment are never caller-controlled.
type JobCreateInput struct {
	Actor           types.ActorRef
	Title           string
	Description     string
	Category        types.JobCategory
	HourlyRate      float64
	DurationHours   int
	LocationAddress string
	City            string
	StartTime       time.Time
	Scope           types.ScopeFilter
	Result          *JobCreateResult
}

// Type implements gocommand.Message.
func (JobCreateInput) Type() string {
	return "command.job.create"
}

// Validate implements gocommand.Message.
func (input JobCreateInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case strings.TrimSpace(input.Title) == "":
		return ErrJobTitleRequired
	case strings.TrimSpace(input.Description) == "":
		return ErrJobDescriptionRequired
	case !input.Category.Valid():
		return types.ErrUnknownCategory
	case input.HourlyRate <= 0:
		return ErrJobRateInvalid
	case input.DurationHours <= 0:
		return ErrJobDurationInvalid
	case strings.TrimSpace(input.LocationAddress) == "":
		return ErrJobLocationRequired
	case strings.TrimSpace(input.City) == "":
		return ErrJobCityRequired
	case input.StartTime.IsZero():
		return ErrJobStartTimeRequired
	default:
		return nil
	}
}

// JobCreateResult carries the stored posting.
type JobCreateResult struct {
	Job *types.Job
}

// JobCreateCommand implements go-command.Commander for new postings.
type JobCreateCommand struct {
	jobs     types.JobRepository
	gate     featuregate.FeatureGate
	clock    types.Clock
	logger   types.Logger
	hooks    types.Hooks
	activity types.ActivitySink
	guard    scope.Guard
}

// JobCreateConfig configures the posting handler.
type JobCreateConfig struct {
	Jobs        types.JobRepository
	FeatureGate featuregate.FeatureGate
	Clock       types.Clock
	Logger      types.Logger
	Hooks       types.Hooks
	Activity    types.ActivitySink
	ScopeGuard  scope.Guard
}

// NewJobCreateCommand wires the posting handler.
func NewJobCreateCommand(cfg JobCreateConfig) *JobCreateCommand {
	return &JobCreateCommand{
		jobs:     cfg.Jobs,
		gate:     cfg.FeatureGate,
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		hooks:    safeHooks(cfg.Hooks),
		activity: safeActivitySink(cfg.Activity),
		guard:    safeScopeGuard(cfg.ScopeGuard),
	}
}

var _ gocommand.Commander[JobCreateInput] = (*JobCreateCommand)(nil)

// Execute validates and stores the posting, then emits activity and hooks.
func (c *JobCreateCommand) Execute(ctx context.Context, input JobCreateInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	resolved, err := c.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionJobsPost, uuid.Nil)
	if err != nil {
		return err
	}
	enabled, err := featureEnabled(ctx, c.gate, featureJobsCreate, input.Actor)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrJobPostingDisabled
	}

	created, err := c.jobs.CreateJob(ctx, types.Job{
		EmployerID:      input.Actor.ID,
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		Category:        input.Category,
		HourlyRate:      input.HourlyRate,
		DurationHours:   input.DurationHours,
		LocationAddress: strings.TrimSpace(input.LocationAddress),
		City:            strings.TrimSpace(input.City),
		StartTime:       input.StartTime,
	})
	if err != nil {
		return err
	}
	c.logger.Debug("job posted", "job_id", created.ID, "employer_id", input.Actor.ID)

	eventTime := now(c.clock)
	record := types.ActivityRecord{
		UserID:     input.Actor.ID,
		ActorID:    input.Actor.ID,
		Verb:       "job.posted",
		ObjectType: "job",
		ObjectID:   created.ID.String(),
		Channel:    "jobs",
		City:       resolvedCity(resolved, created.City),
		Data: map[string]any{
			"title":    created.Title,
			"category": string(created.Category),
		},
		OccurredAt: eventTime,
	}
	logActivity(ctx, c.activity, record)
	emitActivityHook(ctx, c.hooks, record)

	emitJobHook(ctx, c.hooks, types.JobEvent{
		JobID:      created.ID,
		ActorID:    input.Actor.ID,
		ToStatus:   created.Status,
		OccurredAt: eventTime,
		Job:        created,
	})

	if input.Result != nil {
		input.Result.Job = created
	}
	return nil
}

func resolvedCity(resolved types.ScopeFilter, fallback string) string {
	if city := strings.TrimSpace(resolved.City); city != "" {
		return city
	}
	return fallback
}
