package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	"github.com/google/uuid"
)

// RatingCreateInput records feedback for a completed job. The rated party is
// derived from the job: each side rates its counterpart, never itself.
type RatingCreateInput struct {
	Actor  types.ActorRef
	JobID  uuid.UUID
	Score  int
	Review string
	Scope  types.ScopeFilter
	Result *RatingCreateResult
}

// Type implements gocommand.Message.
func (RatingCreateInput) Type() string {
	return "command.rating.create"
}

// Validate implements gocommand.Message.
func (input RatingCreateInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case input.JobID == uuid.Nil:
		return ErrJobIDRequired
	case input.Score < 1 || input.Score > 5:
		return types.ErrScoreOutOfRange
	default:
		return nil
	}
}

// RatingCreateResult carries the stored rating.
type RatingCreateResult struct {
	Rating *types.Rating
}

// RatingCreateCommand implements go-command.Commander for feedback capture.
// After the insert it recomputes the counterpart's aggregate in SQL and
// writes it back onto the profile.
type RatingCreateCommand struct {
	jobs     types.JobRepository
	profiles types.ProfileRepository
	ratings  types.RatingRepository
	gate     featuregate.FeatureGate
	clock    types.Clock
	logger   types.Logger
	hooks    types.Hooks
	activity types.ActivitySink
	guard    scope.Guard
}

// RatingCreateConfig configures the feedback handler.
type RatingCreateConfig struct {
	Jobs        types.JobRepository
	Profiles    types.ProfileRepository
	Ratings     types.RatingRepository
	FeatureGate featuregate.FeatureGate
	Clock       types.Clock
	Logger      types.Logger
	Hooks       types.Hooks
	Activity    types.ActivitySink
	ScopeGuard  scope.Guard
}

// NewRatingCreateCommand wires the feedback handler.
func NewRatingCreateCommand(cfg RatingCreateConfig) *RatingCreateCommand {
	return &RatingCreateCommand{
		jobs:     cfg.Jobs,
		profiles: cfg.Profiles,
		ratings:  cfg.Ratings,
		gate:     cfg.FeatureGate,
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		hooks:    safeHooks(cfg.Hooks),
		activity: safeActivitySink(cfg.Activity),
		guard:    safeScopeGuard(cfg.ScopeGuard),
	}
}

var _ gocommand.Commander[RatingCreateInput] = (*RatingCreateCommand)(nil)

// Execute stores the rating and refreshes the rated profile's aggregate.
func (c *RatingCreateCommand) Execute(ctx context.Context, input RatingCreateInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionRatingsWrite, input.JobID); err != nil {
		return err
	}
	enabled, err := featureEnabled(ctx, c.gate, featureRatingsCreate, input.Actor)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrRatingDisabled
	}

	job, err := c.jobs.GetJob(ctx, input.JobID)
	if err != nil {
		return mapJobLookupError(err)
	}
	if job.Status != types.JobStatusCompleted {
		return ErrJobNotCompleted
	}
	ratedID, err := counterpart(job, input.Actor.ID)
	if err != nil {
		return err
	}

	already, err := c.ratings.HasRated(ctx, input.JobID, input.Actor.ID)
	if err != nil {
		return err
	}
	if already {
		return ErrAlreadyRated
	}

	created, err := c.ratings.CreateRating(ctx, types.Rating{
		JobID:   input.JobID,
		RaterID: input.Actor.ID,
		RatedID: ratedID,
		Score:   input.Score,
		Review:  strings.TrimSpace(input.Review),
	})
	if err != nil {
		return err
	}

	if err := c.refreshAggregate(ctx, ratedID); err != nil {
		c.logger.Error("failed to refresh rating aggregate", err, "profile_id", ratedID)
	}

	eventTime := now(c.clock)
	record := types.ActivityRecord{
		UserID:     ratedID,
		ActorID:    input.Actor.ID,
		Verb:       "rating.created",
		ObjectType: "rating",
		ObjectID:   created.ID.String(),
		Channel:    "ratings",
		City:       job.City,
		Data: map[string]any{
			"job_id": job.ID.String(),
			"score":  created.Score,
		},
		OccurredAt: eventTime,
	}
	logActivity(ctx, c.activity, record)
	emitActivityHook(ctx, c.hooks, record)

	emitRatingHook(ctx, c.hooks, types.RatingEvent{
		RatingID:   created.ID,
		JobID:      created.JobID,
		RaterID:    created.RaterID,
		RatedID:    created.RatedID,
		Score:      created.Score,
		OccurredAt: eventTime,
	})

	if input.Result != nil {
		input.Result.Rating = created
	}
	return nil
}

func (c *RatingCreateCommand) refreshAggregate(ctx context.Context, ratedID uuid.UUID) error {
	if c.profiles == nil {
		return nil
	}
	avg, count, err := c.ratings.AverageScore(ctx, ratedID)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	return c.profiles.SetRating(ctx, ratedID, avg)
}

// counterpart resolves who the actor is rating: the worker when the employer
// rates, the employer when the worker rates.
func counterpart(job *types.Job, raterID uuid.UUID) (uuid.UUID, error) {
	switch {
	case job.EmployerID == raterID:
		if job.WorkerID == nil || *job.WorkerID == uuid.Nil {
			return uuid.Nil, ErrNotJobParticipant
		}
		return *job.WorkerID, nil
	case job.WorkerID != nil && *job.WorkerID == raterID:
		return job.EmployerID, nil
	default:
		return uuid.Nil, ErrNotJobParticipant
	}
}
