package job

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/profile"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed job repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDs        types.IDGenerator
}

type jobStore interface {
	repository.Repository[*Record]
}

// Repository implements types.JobRepository using Bun. The lifecycle writes
// (AcceptJob, UpdateJobStatus) run as single conditional UPDATE statements so
// the database arbitrates races between competing actors.
type Repository struct {
	jobStore
	db    *bun.DB
	clock types.Clock
	ids   types.IDGenerator
}

// NewRepository constructs the job repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("job: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	ids := cfg.IDs
	if ids == nil {
		ids = types.UUIDGenerator{}
	}

	return &Repository{
		jobStore: repo,
		db:       cfg.DB,
		clock:    clock,
		ids:      ids,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.JobRepository            = (*Repository)(nil)
)

// CreateJob inserts a new posting. The stored row always starts open and
// unassigned regardless of what the caller supplied.
func (r *Repository) CreateJob(ctx context.Context, job types.Job) (*types.Job, error) {
	if job.EmployerID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	if !job.Category.Valid() {
		return nil, types.ErrUnknownCategory
	}
	now := r.clock.Now()
	rec := fromDomain(job)
	if rec.ID == uuid.Nil {
		rec.ID = r.ids.UUID()
	}
	rec.Status = string(types.JobStatusOpen)
	rec.WorkerID = nil
	rec.CreatedAt = now
	rec.UpdatedAt = now

	created, err := r.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// GetJob loads a job with both counterpart profiles joined.
func (r *Repository) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	if id == uuid.Nil {
		return nil, types.ErrJobIDRequired
	}
	rec, err := r.Get(ctx, withParties(), repository.SelectBy("id", "=", id.String()))
	if err != nil {
		return nil, err
	}
	return toDomain(rec), nil
}

// ListOpenJobs returns the public board: open postings, newest first.
func (r *Repository) ListOpenJobs(ctx context.Context, filter types.OpenJobsFilter) (types.JobPage, error) {
	criteria := []repository.SelectCriteria{
		withParties(),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("?TableAlias.status = ?", string(types.JobStatusOpen))
			if filter.Category != "" {
				q = q.Where("?TableAlias.category = ?", string(filter.Category))
			}
			if city := strings.TrimSpace(filter.Scope.City); city != "" {
				q = q.Where("?TableAlias.city = ?", city)
			}
			if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
				pattern := "%" + keyword + "%"
				q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("?TableAlias.title LIKE ?", pattern).
						WhereOr("?TableAlias.description LIKE ?", pattern).
						WhereOr("?TableAlias.city LIKE ?", pattern)
				})
			}
			return q.OrderExpr("?TableAlias.created_at DESC")
		},
		paginate(filter.Pagination),
	}

	recs, total, err := r.List(ctx, criteria...)
	if err != nil {
		return types.JobPage{}, err
	}
	return buildPage(recs, total, filter.Pagination), nil
}

// ListJobsForUser returns the jobs a profile participates in: postings for
// employers, assignments for workers.
func (r *Repository) ListJobsForUser(ctx context.Context, filter types.UserJobsFilter) (types.JobPage, error) {
	if filter.ProfileID == uuid.Nil {
		return types.JobPage{}, types.ErrProfileIDRequired
	}
	criteria := []repository.SelectCriteria{
		withParties(),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			switch filter.Role {
			case types.RoleWorker:
				q = q.Where("?TableAlias.worker_id = ?", filter.ProfileID.String())
			default:
				q = q.Where("?TableAlias.employer_id = ?", filter.ProfileID.String())
			}
			if len(filter.Statuses) > 0 {
				values := make([]string, 0, len(filter.Statuses))
				for _, status := range filter.Statuses {
					values = append(values, string(status))
				}
				q = q.Where("?TableAlias.status IN (?)", bun.In(values))
			}
			return q.OrderExpr("?TableAlias.created_at DESC")
		},
		paginate(filter.Pagination),
	}

	recs, total, err := r.List(ctx, criteria...)
	if err != nil {
		return types.JobPage{}, err
	}
	return buildPage(recs, total, filter.Pagination), nil
}

// AcceptJob claims an open posting for a worker. The predicates make the
// write first-come-first-served: exactly one concurrent accept can match the
// open, unassigned row.
func (r *Repository) AcceptJob(ctx context.Context, jobID, workerID uuid.UUID) (*types.Job, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("job: db required for updates")
	}
	if jobID == uuid.Nil {
		return nil, types.ErrJobIDRequired
	}
	if workerID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	worker := workerID
	rec := &Record{
		WorkerID:  &worker,
		Status:    string(types.JobStatusAccepted),
		UpdatedAt: r.clock.Now(),
	}
	res, err := r.db.NewUpdate().Model(rec).
		Column("worker_id", "status", "updated_at").
		Where("id = ?", jobID.String()).
		Where("status = ?", string(types.JobStatusOpen)).
		Where("worker_id IS NULL").
		Exec(ctx)
	if err != nil {
		return nil, repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	if err := repository.SQLExpectedCount(res, 1); err != nil {
		return nil, err
	}
	return r.GetJob(ctx, jobID)
}

// UpdateJobStatus moves an owned job from current to target in one guarded
// write. A zero-row result means the job moved (or was claimed by somebody
// else) between read and write.
func (r *Repository) UpdateJobStatus(ctx context.Context, jobID, employerID uuid.UUID, current, target types.JobStatus) (*types.Job, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("job: db required for updates")
	}
	if jobID == uuid.Nil {
		return nil, types.ErrJobIDRequired
	}
	if employerID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	rec := &Record{
		Status:    string(target),
		UpdatedAt: r.clock.Now(),
	}
	res, err := r.db.NewUpdate().Model(rec).
		Column("status", "updated_at").
		Where("id = ?", jobID.String()).
		Where("employer_id = ?", employerID.String()).
		Where("status = ?", string(current)).
		Exec(ctx)
	if err != nil {
		return nil, repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	if err := repository.SQLExpectedCount(res, 1); err != nil {
		return nil, err
	}
	return r.GetJob(ctx, jobID)
}

func withParties() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Employer").Relation("Worker")
	}
}

func paginate(p types.Pagination) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if p.Limit > 0 {
			q = q.Limit(p.Limit)
		}
		if p.Offset > 0 {
			q = q.Offset(p.Offset)
		}
		return q
	}
}

func buildPage(recs []*Record, total int, p types.Pagination) types.JobPage {
	jobs := make([]types.Job, 0, len(recs))
	for _, rec := range recs {
		if job := toDomain(rec); job != nil {
			jobs = append(jobs, *job)
		}
	}
	next := p.Offset + len(jobs)
	return types.JobPage{
		Jobs:       jobs,
		Total:      total,
		NextOffset: next,
		HasMore:    next < total,
	}
}

func fromDomain(job types.Job) *Record {
	rec := &Record{
		ID:              job.ID,
		EmployerID:      job.EmployerID,
		Title:           job.Title,
		Description:     job.Description,
		Category:        string(job.Category),
		HourlyRate:      job.HourlyRate,
		DurationHours:   job.DurationHours,
		LocationAddress: job.LocationAddress,
		City:            job.City,
		StartTime:       job.StartTime,
		Status:          string(job.Status),
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}
	if job.WorkerID != nil && *job.WorkerID != uuid.Nil {
		worker := *job.WorkerID
		rec.WorkerID = &worker
	}
	return rec
}

func toDomain(rec *Record) *types.Job {
	if rec == nil {
		return nil
	}
	job := &types.Job{
		ID:              rec.ID,
		EmployerID:      rec.EmployerID,
		Title:           rec.Title,
		Description:     rec.Description,
		Category:        types.JobCategory(rec.Category),
		HourlyRate:      rec.HourlyRate,
		DurationHours:   rec.DurationHours,
		LocationAddress: rec.LocationAddress,
		City:            rec.City,
		StartTime:       rec.StartTime,
		Status:          types.JobStatus(rec.Status),
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	if rec.WorkerID != nil {
		worker := *rec.WorkerID
		job.WorkerID = &worker
	}
	job.Employer = summarize(rec.Employer)
	job.Worker = summarize(rec.Worker)
	return job
}

func summarize(rec *profile.Record) *types.ProfileSummary {
	if rec == nil {
		return nil
	}
	return &types.ProfileSummary{
		ID:         rec.ID,
		FullName:   rec.FullName,
		Rating:     rec.Rating,
		IsVerified: rec.IsVerified,
	}
}
