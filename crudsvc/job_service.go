package crudsvc

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gigs/command"
	"github.com/goliatone/go-gigs/crudguard"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/query"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// JobServiceConfig wires dependencies for the job board controller.
type JobServiceConfig struct {
	Guard  GuardAdapter
	Board  gocommand.Querier[types.OpenJobsFilter, types.JobPage]
	Detail gocommand.Querier[query.JobDetailInput, *types.Job]
	Create gocommand.Commander[command.JobCreateInput]
}

// JobService adapts the job board command/query layer to a go-crud controller.
// Listings and detail reads go through the guarded queries; postings delegate
// to the create command. Lifecycle moves (accept, start, complete, cancel) are
// deliberately not CRUD verbs and stay on the command API.
type JobService struct {
	guard   GuardAdapter
	board   gocommand.Querier[types.OpenJobsFilter, types.JobPage]
	detail  gocommand.Querier[query.JobDetailInput, *types.Job]
	create  gocommand.Commander[command.JobCreateInput]
	emitter ActivityEmitter
	logger  types.Logger
}

// NewJobService constructs the adapter.
func NewJobService(cfg JobServiceConfig, opts ...ServiceOption) *JobService {
	options := applyOptions(opts)
	return &JobService{
		guard:   cfg.Guard,
		board:   cfg.Board,
		detail:  cfg.Detail,
		create:  cfg.Create,
		emitter: options.emitter,
		logger:  options.logger,
	}
}

func (s *JobService) Create(ctx crud.Context, record *types.Job) (*types.Job, error) {
	if s.create == nil {
		return nil, notSupported(crud.OpCreate)
	}
	if record == nil {
		return nil, goerrors.New("go-gigs: job payload required", goerrors.CategoryValidation).WithCode(goerrors.CodeBadRequest)
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{
		Context:   ctx,
		Operation: crud.OpCreate,
	})
	if err != nil {
		return nil, err
	}

	result := &command.JobCreateResult{}
	input := command.JobCreateInput{
		Actor:           res.Actor,
		Title:           record.Title,
		Description:     record.Description,
		Category:        record.Category,
		HourlyRate:      record.HourlyRate,
		DurationHours:   record.DurationHours,
		LocationAddress: record.LocationAddress,
		City:            record.City,
		StartTime:       record.StartTime,
		Scope:           res.Scope,
		Result:          result,
	}
	if err := s.create.Execute(ctx.UserContext(), input); err != nil {
		return nil, err
	}
	s.emit(ctx.UserContext(), types.ActivityRecord{
		UserID:     res.Actor.ID,
		ActorID:    res.Actor.ID,
		Verb:       "job.posted",
		ObjectType: "job",
		ObjectID:   result.Job.ID.String(),
		Channel:    "crud",
		City:       result.Job.City,
	})
	return result.Job, nil
}

func (s *JobService) CreateBatch(crud.Context, []*types.Job) ([]*types.Job, error) {
	return nil, notSupported(crud.OpCreateBatch)
}

func (s *JobService) Update(crud.Context, *types.Job) (*types.Job, error) {
	return nil, notSupported(crud.OpUpdate)
}

func (s *JobService) UpdateBatch(crud.Context, []*types.Job) ([]*types.Job, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

func (s *JobService) Delete(crud.Context, *types.Job) error {
	return notSupported(crud.OpDelete)
}

func (s *JobService) DeleteBatch(crud.Context, []*types.Job) error {
	return notSupported(crud.OpDeleteBatch)
}

func (s *JobService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*types.Job, int, error) {
	if s.board == nil {
		return nil, 0, goerrors.New("job board query missing", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{
		Context:   ctx,
		Operation: crud.OpList,
	})
	if err != nil {
		return nil, 0, err
	}
	filter := types.OpenJobsFilter{
		Actor:    res.Actor,
		Scope:    res.Scope,
		Category: queryCategory(ctx, "category"),
		Keyword:  ctx.Query("q"),
		Pagination: types.Pagination{
			Limit:  queryInt(ctx, "limit", 50),
			Offset: queryInt(ctx, "offset", 0),
		},
	}
	page, err := s.board.Query(ctx.UserContext(), filter)
	if err != nil {
		return nil, 0, err
	}
	records := make([]*types.Job, 0, len(page.Jobs))
	for i := range page.Jobs {
		job := page.Jobs[i]
		records = append(records, &job)
	}
	return records, page.Total, nil
}

func (s *JobService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*types.Job, error) {
	if s.detail == nil {
		return nil, goerrors.New("job detail query missing", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	jobID, err := uuid.Parse(id)
	if err != nil {
		return nil, goerrors.New("invalid job id", goerrors.CategoryValidation).WithCode(goerrors.CodeBadRequest)
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{
		Context:   ctx,
		Operation: crud.OpRead,
		TargetID:  jobID,
	})
	if err != nil {
		return nil, err
	}
	return s.detail.Query(ctx.UserContext(), query.JobDetailInput{
		Actor: res.Actor,
		JobID: jobID,
		Scope: res.Scope,
	})
}

func (s *JobService) emit(ctx context.Context, record types.ActivityRecord) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.Emit(ctx, record); err != nil && s.logger != nil {
		s.logger.Error("activity emitter failed", err)
	}
}
