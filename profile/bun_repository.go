package profile

import (
	"context"
	"errors"

	"github.com/goliatone/go-gigs/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed profile repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDs        types.IDGenerator
}

type profileStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ProfileRepository using Bun. Every read and
// write goes through the record store so the cache decorator both serves
// reads and invalidates them on mutation.
type Repository struct {
	profileStore
	db    *bun.DB
	clock types.Clock
	ids   types.IDGenerator
}

// NewRepository constructs the profile repository. WithCache wraps the record
// store in the caching decorator unless the caller already supplied one.
func NewRepository(cfg RepositoryConfig, options ...RepositoryOption) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("profile: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = newRecordRepository(cfg.DB)
	}

	opts := applyRepositoryOptions(options)
	if opts.CacheEnabled {
		if _, ok := repo.(*repositorycache.CachedRepository[*Record]); !ok {
			cacheCfg := cache.DefaultConfig()
			if opts.CacheConfig != nil {
				cacheCfg = *opts.CacheConfig
			}
			cacheService, err := cache.NewCacheService(cacheCfg)
			if err != nil {
				return nil, err
			}
			repo = repositorycache.New(repo, cacheService, cache.NewDefaultKeySerializer())
		}
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
		profileStore: repo,
		db:           cfg.DB,
		clock:        clock,
		ids:          ids,
	}, nil
}

func newRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.NewRepository(db, repository.ModelHandlers[*Record]{
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

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ProfileRepository        = (*Repository)(nil)
)

// GetProfile returns the profile with the supplied identifier.
func (r *Repository) GetProfile(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
	if id == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	rec, err := r.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		return nil, err
	}
	return toDomain(rec), nil
}

// GetProfileByUserID returns the profile attached to an auth user.
func (r *Repository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	if userID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	rec, err := r.Get(ctx, repository.SelectBy("user_id", "=", userID.String()))
	if err != nil {
		return nil, err
	}
	return toDomain(rec), nil
}

// CreateProfile inserts a new marketplace profile. Rating and job counters
// always start at zero regardless of what the caller supplied.
func (r *Repository) CreateProfile(ctx context.Context, profile types.Profile) (*types.Profile, error) {
	if profile.UserID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	if !profile.Role.Valid() {
		return nil, types.ErrUnknownRole
	}
	now := r.clock.Now()
	rec := fromDomain(profile)
	if rec.ID == uuid.Nil {
		rec.ID = r.ids.UUID()
	}
	rec.Rating = 0
	rec.TotalJobs = 0
	rec.CreatedAt = now
	rec.UpdatedAt = now

	created, err := r.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// UpdateProfile applies the self-service patch to a profile. Nil fields keep
// their stored value; the role column is never touched.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, patch types.ProfilePatch) (*types.Profile, error) {
	if id == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	rec, err := r.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		return nil, err
	}
	if patch.FullName != nil {
		rec.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		rec.Phone = *patch.Phone
	}
	if patch.City != nil {
		rec.City = *patch.City
	}
	if patch.Bio != nil {
		rec.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		rec.AvatarURL = *patch.AvatarURL
	}
	rec.UpdatedAt = r.clock.Now()

	updated, err := r.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

// SetRating overwrites the aggregate rating column. The write runs through
// the record store so a caching decorator drops any cached copy of the
// profile.
func (r *Repository) SetRating(ctx context.Context, id uuid.UUID, rating float64) error {
	if id == uuid.Nil {
		return types.ErrProfileIDRequired
	}
	rec := &Record{
		ID:        id,
		Rating:    rating,
		UpdatedAt: r.clock.Now(),
	}
	_, err := r.Update(ctx, rec, repository.UpdateRawProcessor(func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Column("rating", "updated_at")
	}))
	return err
}

// IncrementTotalJobs bumps the completed-job counter for each profile. The
// increment happens in SQL so concurrent completions never lose updates, but
// the statement still runs through the record store so cached reads drop out.
func (r *Repository) IncrementTotalJobs(ctx context.Context, ids ...uuid.UUID) error {
	now := r.clock.Now()
	for _, id := range ids {
		if id == uuid.Nil {
			return types.ErrProfileIDRequired
		}
		rec := &Record{ID: id, UpdatedAt: now}
		_, err := r.Update(ctx, rec, repository.UpdateRawProcessor(func(q *bun.UpdateQuery) *bun.UpdateQuery {
			return q.Set("total_jobs = total_jobs + 1").Set("updated_at = ?", now)
		}))
		if err != nil {
			return err
		}
	}
	return nil
}

func fromDomain(profile types.Profile) *Record {
	return &Record{
		ID:         profile.ID,
		UserID:     profile.UserID,
		FullName:   profile.FullName,
		Role:       string(profile.Role),
		Rating:     profile.Rating,
		TotalJobs:  profile.TotalJobs,
		IsVerified: profile.IsVerified,
		City:       profile.City,
		Phone:      profile.Phone,
		Bio:        profile.Bio,
		AvatarURL:  profile.AvatarURL,
		CreatedAt:  profile.CreatedAt,
		UpdatedAt:  profile.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Profile {
	if rec == nil {
		return nil
	}
	return &types.Profile{
		ID:         rec.ID,
		UserID:     rec.UserID,
		FullName:   rec.FullName,
		Role:       types.UserRole(rec.Role),
		Rating:     rec.Rating,
		TotalJobs:  rec.TotalJobs,
		IsVerified: rec.IsVerified,
		City:       rec.City,
		Phone:      rec.Phone,
		Bio:        rec.Bio,
		AvatarURL:  rec.AvatarURL,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
