package command

import (
	"context"
	"time"

	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	repository "github.com/goliatone/go-repository-bun"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeHooks(hooks types.Hooks) types.Hooks {
	return hooks
}

func safeActivitySink(sink types.ActivitySink) types.ActivitySink {
	return sink
}

func safeScopeGuard(g scope.Guard) scope.Guard {
	return scope.Ensure(g)
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

// mapJobLookupError folds store-level not-found into the command sentinel.
func mapJobLookupError(err error) error {
	if repository.IsRecordNotFound(err) {
		return ErrJobNotFound
	}
	return err
}

func mapProfileLookupError(err error) error {
	if repository.IsRecordNotFound(err) {
		return ErrProfileNotFound
	}
	return err
}

// mapJobWriteError folds a lost conditional write into ErrJobUnavailable so
// callers can tell a race from an outage.
func mapJobWriteError(err error) error {
	if err == nil {
		return nil
	}
	if repository.IsSQLExpectedCountViolation(err) {
		return ErrJobUnavailable
	}
	if repository.IsRecordNotFound(err) {
		return ErrJobNotFound
	}
	return err
}

func logActivity(ctx context.Context, sink types.ActivitySink, record types.ActivityRecord) {
	if sink == nil {
		return
	}
	_ = sink.Log(ctx, record)
}

func emitActivityHook(ctx context.Context, hooks types.Hooks, record types.ActivityRecord) {
	if hooks.AfterActivity == nil {
		return
	}
	hooks.AfterActivity(ctx, record)
}

func emitJobHook(ctx context.Context, hooks types.Hooks, event types.JobEvent) {
	if hooks.AfterJobChange == nil {
		return
	}
	hooks.AfterJobChange(ctx, event)
}

func emitProfileHook(ctx context.Context, hooks types.Hooks, event types.ProfileEvent) {
	if hooks.AfterProfileChange == nil {
		return
	}
	hooks.AfterProfileChange(ctx, event)
}

func emitRatingHook(ctx context.Context, hooks types.Hooks, event types.RatingEvent) {
	if hooks.AfterRating == nil {
		return
	}
	hooks.AfterRating(ctx, event)
}
