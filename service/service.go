package service

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-gigs/activity"
	"github.com/goliatone/go-gigs/command"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/query"
	"github.com/goliatone/go-gigs/scope"
)

// Service is the entry point for go-gigs. It wires repositories, hooks, and
// command/query facades supplied by the host application.
type Service struct {
	cfg          Config
	commands     Commands
	queries      Queries
	activityRepo types.ActivityRepository
	scopeGuard   scope.Guard
}

// Commands exposes the service command handlers.
type Commands struct {
	JobCreate     *command.JobCreateCommand
	JobAccept     *command.JobAcceptCommand
	JobTransition *command.JobTransitionCommand
	ProfileCreate *command.ProfileCreateCommand
	ProfileUpdate *command.ProfileUpdateCommand
	RatingCreate  *command.RatingCreateCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	OpenJobs      *query.OpenJobsQuery
	UserJobs      *query.UserJobsQuery
	JobDetail     *query.JobDetailQuery
	ProfileDetail *query.ProfileQuery
	Ratings       *query.RatingsQuery
	ActivityFeed  *query.ActivityFeedQuery
	ActivityStats *query.ActivityStatsQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun.DB, cached repositories, hooks, etc.).
type Config struct {
	JobRepository       types.JobRepository
	ProfileRepository   types.ProfileRepository
	RatingRepository    types.RatingRepository
	ActivitySink        types.ActivitySink
	ActivityRepository  types.ActivityRepository
	ActivityPolicy      activity.AccessPolicy
	Hooks               types.Hooks
	Clock               types.Clock
	IDGenerator         types.IDGenerator
	Logger              types.Logger
	TransitionPolicy    types.JobTransitionPolicy
	FeatureGate         featuregate.FeatureGate
	ScopeResolver       types.ScopeResolver
	AuthorizationPolicy types.AuthorizationPolicy
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	actRepo := norm.ActivityRepository
	if actRepo == nil {
		if sinkRepo, ok := norm.ActivitySink.(types.ActivityRepository); ok {
			actRepo = sinkRepo
		}
	}

	scopeGuard := scope.Ensure(scope.NewGuard(norm.ScopeResolver, norm.AuthorizationPolicy))

	s := &Service{
		cfg:          norm,
		activityRepo: actRepo,
		scopeGuard:   scopeGuard,
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.TransitionPolicy == nil {
		cfg.TransitionPolicy = types.DefaultTransitionPolicy()
	}
	if cfg.AuthorizationPolicy == nil {
		cfg.AuthorizationPolicy = types.RoleAuthorizationPolicy{}
	}
	if cfg.ActivityPolicy == nil {
		cfg.ActivityPolicy = activity.NewDefaultAccessPolicy()
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil &&
		s.cfg.JobRepository != nil &&
		s.cfg.ProfileRepository != nil &&
		s.cfg.RatingRepository != nil &&
		s.cfg.ActivitySink != nil &&
		s.activityRepo != nil
}

// HealthCheck surfaces missing configuration so upstream transports
// (REST/gRPC/jobs) can refuse to serve an incomplete wiring.
func (s *Service) HealthCheck(ctx context.Context) error {
	if !s.Ready() {
		return types.ErrServiceNotReady
	}
	if s.cfg.JobRepository == nil {
		return types.ErrMissingJobRepository
	}
	if s.cfg.ProfileRepository == nil {
		return types.ErrMissingProfileRepository
	}
	if s.cfg.RatingRepository == nil {
		return types.ErrMissingRatingRepository
	}
	if s.cfg.ActivitySink == nil {
		return types.ErrMissingActivitySink
	}
	if s.activityRepo == nil {
		return types.ErrMissingActivityRepository
	}
	return nil
}

// ScopeGuard exposes the guard instance used internally so transports can reuse
// the same resolver/policy combination for HTTP adapters.
func (s *Service) ScopeGuard() scope.Guard {
	if s == nil {
		return scope.NopGuard()
	}
	return scope.Ensure(s.scopeGuard)
}

// ActivitySink returns the configured sink so transports can emit activity
// records for auxiliary workflows (e.g. CRUD controllers).
func (s *Service) ActivitySink() types.ActivitySink {
	if s == nil {
		return nil
	}
	return s.cfg.ActivitySink
}

func (s *Service) buildCommands() Commands {
	return Commands{
		JobCreate: command.NewJobCreateCommand(command.JobCreateConfig{
			Jobs:        s.cfg.JobRepository,
			FeatureGate: s.cfg.FeatureGate,
			Clock:       s.cfg.Clock,
			Logger:      s.cfg.Logger,
			Hooks:       s.cfg.Hooks,
			Activity:    s.cfg.ActivitySink,
			ScopeGuard:  s.scopeGuard,
		}),
		JobAccept: command.NewJobAcceptCommand(command.JobAcceptConfig{
			Jobs:       s.cfg.JobRepository,
			Policy:     s.cfg.TransitionPolicy,
			Clock:      s.cfg.Clock,
			Logger:     s.cfg.Logger,
			Hooks:      s.cfg.Hooks,
			Activity:   s.cfg.ActivitySink,
			ScopeGuard: s.scopeGuard,
		}),
		JobTransition: command.NewJobTransitionCommand(command.JobTransitionConfig{
			Jobs:       s.cfg.JobRepository,
			Profiles:   s.cfg.ProfileRepository,
			Policy:     s.cfg.TransitionPolicy,
			Clock:      s.cfg.Clock,
			Logger:     s.cfg.Logger,
			Hooks:      s.cfg.Hooks,
			Activity:   s.cfg.ActivitySink,
			ScopeGuard: s.scopeGuard,
		}),
		ProfileCreate: command.NewProfileCreateCommand(command.ProfileCreateConfig{
			Profiles: s.cfg.ProfileRepository,
			Clock:    s.cfg.Clock,
			Logger:   s.cfg.Logger,
			Hooks:    s.cfg.Hooks,
			Activity: s.cfg.ActivitySink,
		}),
		ProfileUpdate: command.NewProfileUpdateCommand(command.ProfileUpdateConfig{
			Profiles:   s.cfg.ProfileRepository,
			Clock:      s.cfg.Clock,
			Logger:     s.cfg.Logger,
			Hooks:      s.cfg.Hooks,
			Activity:   s.cfg.ActivitySink,
			ScopeGuard: s.scopeGuard,
		}),
		RatingCreate: command.NewRatingCreateCommand(command.RatingCreateConfig{
			Jobs:        s.cfg.JobRepository,
			Profiles:    s.cfg.ProfileRepository,
			Ratings:     s.cfg.RatingRepository,
			FeatureGate: s.cfg.FeatureGate,
			Clock:       s.cfg.Clock,
			Logger:      s.cfg.Logger,
			Hooks:       s.cfg.Hooks,
			Activity:    s.cfg.ActivitySink,
			ScopeGuard:  s.scopeGuard,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	return Queries{
		OpenJobs:      query.NewOpenJobsQuery(s.cfg.JobRepository, s.scopeGuard),
		UserJobs:      query.NewUserJobsQuery(s.cfg.JobRepository, s.scopeGuard),
		JobDetail:     query.NewJobDetailQuery(s.cfg.JobRepository, s.scopeGuard),
		ProfileDetail: query.NewProfileQuery(s.cfg.ProfileRepository, s.scopeGuard),
		Ratings:       query.NewRatingsQuery(s.cfg.RatingRepository, s.scopeGuard),
		ActivityFeed:  query.NewActivityFeedQuery(s.activityRepo, s.cfg.ActivityPolicy, s.scopeGuard),
		ActivityStats: query.NewActivityStatsQuery(s.activityRepo, s.cfg.ActivityPolicy, s.scopeGuard),
	}
}
