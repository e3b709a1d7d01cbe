package crudsvc

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-crud"
	"github.com/goliatone/go-gigs/command"
	"github.com/goliatone/go-gigs/crudguard"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/query"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJobServiceIndexBuildsFilterFromQuery(t *testing.T) {
	board := &stubBoardQuery{page: types.JobPage{
		Jobs:  []types.Job{{ID: uuid.New(), Title: "Weekend barista"}},
		Total: 1,
	}}
	guard := &stubGuardAdapter{
		result: crudguard.GuardResult{
			Actor: types.ActorRef{ID: uuid.New(), Role: types.RoleWorker},
			Scope: types.ScopeFilter{City: "riga"},
		},
	}
	svc := NewJobService(JobServiceConfig{Guard: guard, Board: board})

	ctx := newTestCrudContext(context.Background())
	ctx.queries["category"] = "Restaurant"
	ctx.queries["q"] = "barista"
	ctx.queries["limit"] = "10"

	records, total, err := svc.Index(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, records, 1)
	require.Equal(t, types.JobCategoryRestaurant, board.lastFilter.Category)
	require.Equal(t, "barista", board.lastFilter.Keyword)
	require.Equal(t, 10, board.lastFilter.Pagination.Limit)
	require.Equal(t, "riga", board.lastFilter.Scope.City)
}

func TestJobServiceShowRejectsBadID(t *testing.T) {
	svc := NewJobService(JobServiceConfig{
		Guard:  &stubGuardAdapter{},
		Detail: &stubDetailQuery{},
	})
	_, err := svc.Show(newTestCrudContext(context.Background()), "not-a-uuid", nil)
	require.Error(t, err)
}

func TestJobServiceShowDelegatesToDetailQuery(t *testing.T) {
	jobID := uuid.New()
	detail := &stubDetailQuery{job: &types.Job{ID: jobID}}
	actor := types.ActorRef{ID: uuid.New(), Role: types.RoleWorker}
	svc := NewJobService(JobServiceConfig{
		Guard:  &stubGuardAdapter{result: crudguard.GuardResult{Actor: actor}},
		Detail: detail,
	})

	got, err := svc.Show(newTestCrudContext(context.Background()), jobID.String(), nil)
	require.NoError(t, err)
	require.Equal(t, jobID, got.ID)
	require.Equal(t, actor.ID, detail.lastInput.Actor.ID)
	require.Equal(t, jobID, detail.lastInput.JobID)
}

func TestJobServiceCreateDelegatesToCommand(t *testing.T) {
	createCmd := &stubJobCreateCmd{}
	sink := &recordingSink{}
	actor := types.ActorRef{ID: uuid.New(), Role: types.RoleEmployer}
	svc := NewJobService(JobServiceConfig{
		Guard:  &stubGuardAdapter{result: crudguard.GuardResult{Actor: actor}},
		Create: createCmd,
	}, WithActivityEmitter(SinkEmitter{Sink: sink}))

	record := &types.Job{
		Title:           "Weekend barista",
		Description:     "Two morning shifts",
		Category:        types.JobCategoryRestaurant,
		HourlyRate:      12.5,
		DurationHours:   8,
		LocationAddress: "Terbatas iela 1",
		City:            "riga",
		StartTime:       time.Date(2025, 6, 7, 8, 0, 0, 0, time.UTC),
	}
	created, err := svc.Create(newTestCrudContext(context.Background()), record)
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, 1, createCmd.calls)
	require.Equal(t, actor.ID, createCmd.lastInput.Actor.ID)
	require.Equal(t, "Weekend barista", createCmd.lastInput.Title)
	require.Len(t, sink.records, 1)
	require.Equal(t, "crud", sink.records[0].Channel)
}

func TestJobServiceWriteVerbsDisabled(t *testing.T) {
	svc := NewJobService(JobServiceConfig{Guard: &stubGuardAdapter{}})
	ctx := newTestCrudContext(context.Background())

	_, err := svc.Update(ctx, &types.Job{})
	require.Error(t, err)
	require.Error(t, svc.Delete(ctx, &types.Job{}))
	_, err = svc.CreateBatch(ctx, nil)
	require.Error(t, err)
}

func TestProfileServiceUpdateMapsPatch(t *testing.T) {
	updateCmd := &stubProfileUpdateCmd{}
	profileID := uuid.New()
	actor := types.ActorRef{ID: profileID, Role: types.RoleWorker}
	svc := NewProfileService(ProfileServiceConfig{
		Guard:  &stubGuardAdapter{result: crudguard.GuardResult{Actor: actor}},
		Update: updateCmd,
	})

	_, err := svc.Update(newTestCrudContext(context.Background()), &types.Profile{
		ID:    profileID,
		Phone: "+37120000001",
		City:  "liepaja",
	})
	require.NoError(t, err)
	require.Equal(t, 1, updateCmd.calls)
	require.Equal(t, profileID, updateCmd.lastInput.ProfileID)
	require.NotNil(t, updateCmd.lastInput.Patch.Phone)
	require.Equal(t, "+37120000001", *updateCmd.lastInput.Patch.Phone)
	require.NotNil(t, updateCmd.lastInput.Patch.City)
	require.Nil(t, updateCmd.lastInput.Patch.FullName)
}

func TestActivityServiceIndexBuildsFilter(t *testing.T) {
	feed := &stubFeedQuery{page: types.ActivityPage{
		Records: []types.ActivityRecord{{Verb: "job.accepted"}},
		Total:   1,
	}}
	actor := types.ActorRef{ID: uuid.New(), Role: types.RoleWorker}
	svc := NewActivityService(ActivityServiceConfig{
		Guard:     &stubGuardAdapter{result: crudguard.GuardResult{Actor: actor}},
		FeedQuery: feed,
	})

	ctx := newTestCrudContext(context.Background())
	ctx.queries["verb"] = "job.accepted,job.posted"
	ctx.queries["channel"] = "jobs"

	entries, total, err := svc.Index(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, entries, 1)
	require.Equal(t, "job.accepted", entries[0].Verb)
	require.Equal(t, actor.ID, feed.lastFilter.Actor.ID)
	require.Equal(t, []string{"job.accepted", "job.posted"}, feed.lastFilter.Verbs)
	require.Equal(t, "jobs", feed.lastFilter.Channel)
}

// --- fakes ---

type stubGuardAdapter struct {
	result crudguard.GuardResult
	err    error
	calls  int
}

func (s *stubGuardAdapter) Enforce(in crudguard.GuardInput) (crudguard.GuardResult, error) {
	s.calls++
	if s.err != nil {
		return crudguard.GuardResult{}, s.err
	}
	result := s.result
	result.Operation = in.Operation
	return result, nil
}

type stubBoardQuery struct {
	page       types.JobPage
	lastFilter types.OpenJobsFilter
}

func (s *stubBoardQuery) Query(_ context.Context, filter types.OpenJobsFilter) (types.JobPage, error) {
	s.lastFilter = filter
	return s.page, nil
}

type stubDetailQuery struct {
	job       *types.Job
	lastInput query.JobDetailInput
}

func (s *stubDetailQuery) Query(_ context.Context, input query.JobDetailInput) (*types.Job, error) {
	s.lastInput = input
	return s.job, nil
}

type stubJobCreateCmd struct {
	calls     int
	lastInput command.JobCreateInput
}

func (s *stubJobCreateCmd) Execute(_ context.Context, input command.JobCreateInput) error {
	s.calls++
	s.lastInput = input
	if input.Result != nil {
		input.Result.Job = &types.Job{
			ID:    uuid.New(),
			Title: input.Title,
			City:  input.City,
		}
	}
	return nil
}

type stubProfileUpdateCmd struct {
	calls     int
	lastInput command.ProfileUpdateInput
}

func (s *stubProfileUpdateCmd) Execute(_ context.Context, input command.ProfileUpdateInput) error {
	s.calls++
	s.lastInput = input
	if input.Result != nil {
		input.Result.Profile = &types.Profile{ID: input.ProfileID}
	}
	return nil
}

type stubFeedQuery struct {
	page       types.ActivityPage
	lastFilter types.ActivityFilter
}

func (s *stubFeedQuery) Query(_ context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	s.lastFilter = filter
	return s.page, nil
}

type recordingSink struct {
	records []types.ActivityRecord
}

func (s *recordingSink) Log(_ context.Context, record types.ActivityRecord) error {
	s.records = append(s.records, record)
	return nil
}

type testCrudContext struct {
	ctx     context.Context
	status  int
	queries map[string]string
}

func newTestCrudContext(ctx context.Context) *testCrudContext {
	return &testCrudContext{
		ctx:     ctx,
		queries: map[string]string{},
	}
}

func (s *testCrudContext) UserContext() context.Context {
	return s.ctx
}

func (s *testCrudContext) Params(key string, defaultValue ...string) string {
	return ""
}

func (s *testCrudContext) BodyParser(out any) error {
	return nil
}

func (s *testCrudContext) Query(key string, defaultValue ...string) string {
	if v, ok := s.queries[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (s *testCrudContext) QueryValues(key string) []string {
	if v, ok := s.queries[key]; ok {
		return []string{v}
	}
	return nil
}

func (s *testCrudContext) QueryInt(key string, defaultValue ...int) int {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

func (s *testCrudContext) Queries() map[string]string {
	return s.queries
}

func (s *testCrudContext) Body() []byte {
	return nil
}

func (s *testCrudContext) Status(status int) crud.Response {
	s.status = status
	return s
}

func (s *testCrudContext) JSON(data any, ctype ...string) error {
	return nil
}

func (s *testCrudContext) SendStatus(status int) error {
	s.status = status
	return nil
}
