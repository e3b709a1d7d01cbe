package profile

import (
	"context"
	"testing"

	"github.com/goliatone/go-gigs/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_CacheWrapsStore(t *testing.T) {
	db := newTestDB(t)
	applyDDL(t, db)

	base := newRecordRepository(db)
	repo, err := NewRepository(RepositoryConfig{DB: db, Repository: base}, WithCache(true))
	require.NoError(t, err)

	_, ok := repo.profileStore.(*repositorycache.CachedRepository[*Record])
	require.True(t, ok)
}

func TestProfileRepository_CacheDoesNotDoubleWrap(t *testing.T) {
	db := newTestDB(t)
	applyDDL(t, db)

	base := newRecordRepository(db)
	cacheService, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)
	cached := repositorycache.New(base, cacheService, cache.NewDefaultKeySerializer())

	repo, err := NewRepository(RepositoryConfig{DB: db, Repository: cached}, WithCache(true))
	require.NoError(t, err)

	stored, ok := repo.profileStore.(*repositorycache.CachedRepository[*Record])
	require.True(t, ok)
	require.Same(t, cached, stored)
}

func TestProfileRepository_CachedReadsSurviveMutation(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)

	base := newRecordRepository(db)
	spy := &spyRecordRepository{Repository: base}
	repo, err := NewRepository(RepositoryConfig{DB: db, Repository: spy}, WithCache(true))
	require.NoError(t, err)

	created, err := repo.CreateProfile(ctx, types.Profile{
		UserID:   uuid.New(),
		FullName: "Cached Reader",
		Role:     types.RoleWorker,
	})
	require.NoError(t, err)

	spy.getCalls = 0
	_, err = repo.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	_, err = repo.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, spy.getCalls)

	// A write through the store invalidates the cached read.
	name := "Renamed Reader"
	_, err = repo.UpdateProfile(ctx, created.ID, types.ProfilePatch{FullName: &name})
	require.NoError(t, err)

	got, err := repo.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed Reader", got.FullName)
}

func TestProfileRepository_AggregateWritesInvalidateCache(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db}, WithCache(true))
	require.NoError(t, err)

	created, err := repo.CreateProfile(ctx, types.Profile{
		UserID:   uuid.New(),
		FullName: "Rated Worker",
		Role:     types.RoleWorker,
	})
	require.NoError(t, err)

	// Prime the cache before each aggregate write.
	got, err := repo.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Zero(t, got.Rating)

	require.NoError(t, repo.SetRating(ctx, created.ID, 5.0))
	got, err = repo.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 5.0, got.Rating)

	require.NoError(t, repo.IncrementTotalJobs(ctx, created.ID))
	got, err = repo.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.TotalJobs)
}

type spyRecordRepository struct {
	repository.Repository[*Record]
	getCalls int
}

func (s *spyRecordRepository) Get(ctx context.Context, criteria ...repository.SelectCriteria) (*Record, error) {
	s.getCalls++
	return s.Repository.Get(ctx, criteria...)
}
