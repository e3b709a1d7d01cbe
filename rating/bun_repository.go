package rating

import (
	"context"
	"errors"

	"github.com/goliatone/go-gigs/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed rating repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDs        types.IDGenerator
}

type ratingStore interface {
	repository.Repository[*Record]
}

// Repository implements types.RatingRepository using Bun.
type Repository struct {
	ratingStore
	db    *bun.DB
	clock types.Clock
	ids   types.IDGenerator
}

// NewRepository constructs the rating repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("rating: db or repository required")
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
		ratingStore: repo,
		db:          cfg.DB,
		clock:       clock,
		ids:         ids,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.RatingRepository         = (*Repository)(nil)
)

// CreateRating records feedback for a completed job. The unique constraint on
// (job_id, rater_id) backs the one-rating-per-party rule.
func (r *Repository) CreateRating(ctx context.Context, rating types.Rating) (*types.Rating, error) {
	if rating.JobID == uuid.Nil {
		return nil, types.ErrJobIDRequired
	}
	if rating.RaterID == uuid.Nil || rating.RatedID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	if rating.Score < 1 || rating.Score > 5 {
		return nil, types.ErrScoreOutOfRange
	}
	rec := fromDomain(rating)
	if rec.ID == uuid.Nil {
		rec.ID = r.ids.UUID()
	}
	rec.CreatedAt = r.clock.Now()

	created, err := r.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// ListRatingsForUser returns the feedback received by a profile, newest first.
func (r *Repository) ListRatingsForUser(ctx context.Context, filter types.RatingsFilter) (types.RatingPage, error) {
	if filter.RatedID == uuid.Nil {
		return types.RatingPage{}, types.ErrProfileIDRequired
	}
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("rated_id = ?", filter.RatedID.String()).
				Order("created_at DESC")
			if filter.Pagination.Limit > 0 {
				q = q.Limit(filter.Pagination.Limit)
			}
			if filter.Pagination.Offset > 0 {
				q = q.Offset(filter.Pagination.Offset)
			}
			return q
		},
	}

	recs, total, err := r.List(ctx, criteria...)
	if err != nil {
		return types.RatingPage{}, err
	}
	ratings := make([]types.Rating, 0, len(recs))
	for _, rec := range recs {
		if rating := toDomain(rec); rating != nil {
			ratings = append(ratings, *rating)
		}
	}
	next := filter.Pagination.Offset + len(ratings)
	return types.RatingPage{
		Ratings:    ratings,
		Total:      total,
		NextOffset: next,
		HasMore:    next < total,
	}, nil
}

// AverageScore aggregates a profile's received ratings in SQL, returning the
// mean and the sample size.
func (r *Repository) AverageScore(ctx context.Context, ratedID uuid.UUID) (float64, int, error) {
	if r == nil || r.db == nil {
		return 0, 0, errors.New("rating: db required for aggregates")
	}
	if ratedID == uuid.Nil {
		return 0, 0, types.ErrProfileIDRequired
	}
	var result struct {
		Average float64 `bun:"avg_score"`
		Count   int     `bun:"score_count"`
	}
	err := r.db.NewSelect().Model((*Record)(nil)).
		ColumnExpr("COALESCE(AVG(score), 0) AS avg_score").
		ColumnExpr("COUNT(*) AS score_count").
		Where("rated_id = ?", ratedID.String()).
		Scan(ctx, &result)
	if err != nil {
		return 0, 0, repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	return result.Average, result.Count, nil
}

// HasRated reports whether the rater already left feedback for the job.
func (r *Repository) HasRated(ctx context.Context, jobID, raterID uuid.UUID) (bool, error) {
	if r == nil || r.db == nil {
		return false, errors.New("rating: db required for lookups")
	}
	if jobID == uuid.Nil {
		return false, types.ErrJobIDRequired
	}
	if raterID == uuid.Nil {
		return false, types.ErrProfileIDRequired
	}
	exists, err := r.db.NewSelect().Model((*Record)(nil)).
		Where("job_id = ?", jobID.String()).
		Where("rater_id = ?", raterID.String()).
		Exists(ctx)
	if err != nil {
		return false, repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	return exists, nil
}

func fromDomain(rating types.Rating) *Record {
	return &Record{
		ID:        rating.ID,
		JobID:     rating.JobID,
		RaterID:   rating.RaterID,
		RatedID:   rating.RatedID,
		Score:     rating.Score,
		Review:    rating.Review,
		CreatedAt: rating.CreatedAt,
	}
}

func toDomain(rec *Record) *types.Rating {
	if rec == nil {
		return nil
	}
	return &types.Rating{
		ID:        rec.ID,
		JobID:     rec.JobID,
		RaterID:   rec.RaterID,
		RatedID:   rec.RatedID,
		Score:     rec.Score,
		Review:    rec.Review,
		CreatedAt: rec.CreatedAt,
	}
}
