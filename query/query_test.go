package query

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestOpenJobsQuery_AppliesScopeAndPagination(t *testing.T) {
	repo := &fakeJobRepo{}
	resolver := types.ScopeResolverFunc(func(_ context.Context, _ types.ActorRef, requested types.ScopeFilter) (types.ScopeFilter, error) {
		if requested.IsZero() {
			return types.ScopeFilter{City: "riga"}, nil
		}
		return requested, nil
	})
	q := NewOpenJobsQuery(repo, scope.NewGuard(resolver, types.RoleAuthorizationPolicy{}))

	_, err := q.Query(context.Background(), types.OpenJobsFilter{
		Actor: types.ActorRef{ID: uuid.New(), Role: types.RoleWorker},
	})
	require.NoError(t, err)
	require.Equal(t, "riga", repo.lastOpenFilter.Scope.City)
	require.Equal(t, defaultPageSize, repo.lastOpenFilter.Pagination.Limit)

	_, err = q.Query(context.Background(), types.OpenJobsFilter{
		Actor:      types.ActorRef{ID: uuid.New(), Role: types.RoleWorker},
		Pagination: types.Pagination{Limit: 10_000},
	})
	require.NoError(t, err)
	require.Equal(t, maxPageSize, repo.lastOpenFilter.Pagination.Limit)
}

func TestOpenJobsQuery_Validation(t *testing.T) {
	q := NewOpenJobsQuery(&fakeJobRepo{}, nil)

	_, err := q.Query(context.Background(), types.OpenJobsFilter{})
	require.ErrorIs(t, err, types.ErrActorRequired)

	_, err = q.Query(context.Background(), types.OpenJobsFilter{
		Actor:    types.ActorRef{ID: uuid.New(), Role: types.RoleWorker},
		Category: "gardening",
	})
	require.ErrorIs(t, err, types.ErrUnknownCategory)
}

func TestUserJobsQuery_OwnFeedOnly(t *testing.T) {
	repo := &fakeJobRepo{}
	q := NewUserJobsQuery(repo, nil)
	actor := types.ActorRef{ID: uuid.New(), Role: types.RoleWorker}

	_, err := q.Query(context.Background(), types.UserJobsFilter{
		Actor:     actor,
		ProfileID: uuid.New(),
		Role:      types.RoleWorker,
	})
	require.Error(t, err)
	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	require.Equal(t, goerrors.CategoryAuthz, rich.Category)

	_, err = q.Query(context.Background(), types.UserJobsFilter{
		Actor:     actor,
		ProfileID: actor.ID,
		Role:      types.RoleWorker,
	})
	require.NoError(t, err)
	require.Equal(t, actor.ID, repo.lastUserFilter.ProfileID)
}

func TestGroupUserJobs(t *testing.T) {
	jobs := []types.Job{
		{Status: types.JobStatusOpen},
		{Status: types.JobStatusAccepted},
		{Status: types.JobStatusInProgress},
		{Status: types.JobStatusCompleted},
		{Status: types.JobStatusCancelled},
	}
	groups := GroupUserJobs(jobs)
	require.Len(t, groups.Active, 3)
	require.Len(t, groups.Completed, 1)
	require.Len(t, groups.Cancelled, 1)
}

func TestJobDetailQuery_Visibility(t *testing.T) {
	employerID := uuid.New()
	workerID := uuid.New()
	open := &types.Job{ID: uuid.New(), EmployerID: employerID, Status: types.JobStatusOpen}
	claimed := &types.Job{ID: uuid.New(), EmployerID: employerID, WorkerID: &workerID, Status: types.JobStatusInProgress}
	repo := &fakeJobRepo{jobs: map[uuid.UUID]*types.Job{open.ID: open, claimed.ID: claimed}}
	q := NewJobDetailQuery(repo, nil)

	stranger := types.ActorRef{ID: uuid.New(), Role: types.RoleWorker}

	got, err := q.Query(context.Background(), JobDetailInput{Actor: stranger, JobID: open.ID})
	require.NoError(t, err)
	require.Equal(t, open.ID, got.ID)

	_, err = q.Query(context.Background(), JobDetailInput{Actor: stranger, JobID: claimed.ID})
	require.Error(t, err)
	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	require.Equal(t, goerrors.CategoryAuthz, rich.Category)

	_, err = q.Query(context.Background(), JobDetailInput{
		Actor: types.ActorRef{ID: employerID, Role: types.RoleEmployer},
		JobID: claimed.ID,
	})
	require.NoError(t, err)

	_, err = q.Query(context.Background(), JobDetailInput{
		Actor: types.ActorRef{ID: workerID, Role: types.RoleWorker},
		JobID: claimed.ID,
	})
	require.NoError(t, err)
}

func TestProfileQuery_MasksPhoneForOthers(t *testing.T) {
	profileID := uuid.New()
	repo := &fakeProfileRepo{profile: &types.Profile{
		ID:       profileID,
		FullName: "Anna Berzina",
		Phone:    "+37120000001",
	}}
	q := NewProfileQuery(repo, nil)

	own, err := q.Query(context.Background(), ProfileQueryInput{
		Actor:     types.ActorRef{ID: profileID, Role: types.RoleWorker},
		ProfileID: profileID,
	})
	require.NoError(t, err)
	require.Equal(t, "+37120000001", own.Phone)

	other, err := q.Query(context.Background(), ProfileQueryInput{
		Actor:     types.ActorRef{ID: uuid.New(), Role: types.RoleEmployer},
		ProfileID: profileID,
	})
	require.NoError(t, err)
	require.NotEqual(t, "+37120000001", other.Phone)
}

func TestRatingsQuery_Validation(t *testing.T) {
	repo := &fakeRatingRepo{}
	q := NewRatingsQuery(repo, nil)

	_, err := q.Query(context.Background(), types.RatingsFilter{})
	require.ErrorIs(t, err, types.ErrActorRequired)

	_, err = q.Query(context.Background(), types.RatingsFilter{
		Actor: types.ActorRef{ID: uuid.New(), Role: types.RoleWorker},
	})
	require.ErrorIs(t, err, types.ErrProfileIDRequired)

	_, err = q.Query(context.Background(), types.RatingsFilter{
		Actor:   types.ActorRef{ID: uuid.New(), Role: types.RoleWorker},
		RatedID: uuid.New(),
	})
	require.NoError(t, err)
	require.Equal(t, defaultPageSize, repo.lastFilter.Pagination.Limit)
}

func TestActivityFeedQuery_PinsAndSanitizes(t *testing.T) {
	actor := types.ActorRef{ID: uuid.New(), Role: types.RoleWorker}
	repo := &fakeActivityRepo{page: types.ActivityPage{
		Records: []types.ActivityRecord{
			{Verb: "job.accepted", Data: map[string]any{"phone": "+37120000001"}},
		},
		Total: 1,
	}}
	q := NewActivityFeedQuery(repo, nil, nil)

	page, err := q.Query(context.Background(), types.ActivityFilter{Actor: actor})
	require.NoError(t, err)
	require.Equal(t, actor.ID, repo.lastFilter.UserID)
	require.Len(t, page.Records, 1)
	require.NotEqual(t, "+37120000001", page.Records[0].Data["phone"])

	// Foreign feeds are denied before the repository is hit.
	repo.calls = 0
	_, err = q.Query(context.Background(), types.ActivityFilter{Actor: actor, UserID: uuid.New()})
	require.Error(t, err)
	require.Zero(t, repo.calls)
}

func TestActivityStatsQuery_PinsToActor(t *testing.T) {
	actor := types.ActorRef{ID: uuid.New(), Role: types.RoleEmployer}
	repo := &fakeActivityRepo{stats: types.ActivityStats{Total: 2, ByVerb: map[string]int{"job.posted": 2}}}
	q := NewActivityStatsQuery(repo, nil, nil)

	stats, err := q.Query(context.Background(), types.ActivityStatsFilter{Actor: actor})
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, actor.ID, repo.lastStatsFilter.UserID)
}

// --- fakes ---

type fakeJobRepo struct {
	jobs           map[uuid.UUID]*types.Job
	lastOpenFilter types.OpenJobsFilter
	lastUserFilter types.UserJobsFilter
}

func (f *fakeJobRepo) CreateJob(_ context.Context, job types.Job) (*types.Job, error) {
	return &job, nil
}

func (f *fakeJobRepo) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, repository.NewRecordNotFound()
	}
	out := *job
	return &out, nil
}

func (f *fakeJobRepo) ListOpenJobs(_ context.Context, filter types.OpenJobsFilter) (types.JobPage, error) {
	f.lastOpenFilter = filter
	return types.JobPage{}, nil
}

func (f *fakeJobRepo) ListJobsForUser(_ context.Context, filter types.UserJobsFilter) (types.JobPage, error) {
	f.lastUserFilter = filter
	return types.JobPage{}, nil
}

func (f *fakeJobRepo) AcceptJob(_ context.Context, jobID, _ uuid.UUID) (*types.Job, error) {
	return f.GetJob(context.Background(), jobID)
}

func (f *fakeJobRepo) UpdateJobStatus(_ context.Context, jobID, _ uuid.UUID, _, _ types.JobStatus) (*types.Job, error) {
	return f.GetJob(context.Background(), jobID)
}

type fakeProfileRepo struct {
	profile *types.Profile
}

func (f *fakeProfileRepo) GetProfile(_ context.Context, _ uuid.UUID) (*types.Profile, error) {
	if f.profile == nil {
		return nil, repository.NewRecordNotFound()
	}
	out := *f.profile
	return &out, nil
}

func (f *fakeProfileRepo) GetProfileByUserID(_ context.Context, _ uuid.UUID) (*types.Profile, error) {
	return f.GetProfile(context.Background(), uuid.Nil)
}

func (f *fakeProfileRepo) CreateProfile(_ context.Context, profile types.Profile) (*types.Profile, error) {
	return &profile, nil
}

func (f *fakeProfileRepo) UpdateProfile(_ context.Context, _ uuid.UUID, _ types.ProfilePatch) (*types.Profile, error) {
	return f.GetProfile(context.Background(), uuid.Nil)
}

func (f *fakeProfileRepo) SetRating(_ context.Context, _ uuid.UUID, _ float64) error {
	return nil
}

func (f *fakeProfileRepo) IncrementTotalJobs(_ context.Context, _ ...uuid.UUID) error {
	return nil
}

type fakeRatingRepo struct {
	lastFilter types.RatingsFilter
}

func (f *fakeRatingRepo) CreateRating(_ context.Context, rating types.Rating) (*types.Rating, error) {
	return &rating, nil
}

func (f *fakeRatingRepo) ListRatingsForUser(_ context.Context, filter types.RatingsFilter) (types.RatingPage, error) {
	f.lastFilter = filter
	return types.RatingPage{}, nil
}

func (f *fakeRatingRepo) AverageScore(_ context.Context, _ uuid.UUID) (float64, int, error) {
	return 0, 0, nil
}

func (f *fakeRatingRepo) HasRated(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

type fakeActivityRepo struct {
	page            types.ActivityPage
	stats           types.ActivityStats
	lastFilter      types.ActivityFilter
	lastStatsFilter types.ActivityStatsFilter
	calls           int
}

func (f *fakeActivityRepo) ListActivity(_ context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	f.calls++
	f.lastFilter = filter
	return f.page, nil
}

func (f *fakeActivityRepo) ActivityStats(_ context.Context, filter types.ActivityStatsFilter) (types.ActivityStats, error) {
	f.lastStatsFilter = filter
	return f.stats, nil
}
