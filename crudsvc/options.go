package crudsvc

import (
	"context"
	"fmt"

	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gigs/crudguard"
	"github.com/goliatone/go-gigs/pkg/types"
)

// GuardAdapter is the slice of crudguard.Adapter the CRUD services need;
// narrow on purpose so test fakes stay a one-method stub.
type GuardAdapter interface {
	Enforce(in crudguard.GuardInput) (crudguard.GuardResult, error)
}

// ActivityEmitter receives the audit events a CRUD write produces.
type ActivityEmitter interface {
	Emit(ctx context.Context, record types.ActivityRecord) error
}

// SinkEmitter bridges a types.ActivitySink into the emitter seam, so the same
// sink that records command activity also sees CRUD-originated events.
type SinkEmitter struct {
	Sink types.ActivitySink
}

// Emit forwards the record to the wrapped sink; a nil sink drops it.
func (e SinkEmitter) Emit(ctx context.Context, record types.ActivityRecord) error {
	if e.Sink == nil {
		return nil
	}
	return e.Sink.Log(ctx, record)
}

type serviceOptions struct {
	emitter ActivityEmitter
	logger  types.Logger
}

// ServiceOption tweaks optional CRUD service wiring.
type ServiceOption func(*serviceOptions)

// WithActivityEmitter routes CRUD side-effects into the given emitter.
func WithActivityEmitter(emitter ActivityEmitter) ServiceOption {
	return func(cfg *serviceOptions) {
		if emitter != nil {
			cfg.emitter = emitter
		}
	}
}

// WithLogger sets the diagnostics logger; the default discards everything.
func WithLogger(logger types.Logger) ServiceOption {
	return func(cfg *serviceOptions) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func applyOptions(opts []ServiceOption) serviceOptions {
	cfg := serviceOptions{
		logger: types.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func notSupported(op crud.CrudOperation) error {
	return goerrors.New(
		fmt.Sprintf("go-gigs: crud operation %s disabled for this resource", op),
		goerrors.CategoryValidation,
	).WithCode(goerrors.CodeBadRequest)
}

// WithCommandService is crud.WithService under a name that signals the
// controller delegates to the command/query layer rather than raw storage.
func WithCommandService[T any](svc crud.Service[T]) crud.Option[T] {
	return crud.WithService(svc)
}
