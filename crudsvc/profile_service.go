package crudsvc

import (
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

// ProfileServiceConfig wires dependencies for the profile controller.
type ProfileServiceConfig struct {
	Guard  GuardAdapter
	Detail gocommand.Querier[query.ProfileQueryInput, *types.Profile]
	Update gocommand.Commander[command.ProfileUpdateInput]
}

// ProfileService exposes profile reads and self-service edits over go-crud.
// Signup stays on the command API because it runs before a session exists;
// listings are not offered at all, profiles are only reachable by id.
type ProfileService struct {
	guard  GuardAdapter
	detail gocommand.Querier[query.ProfileQueryInput, *types.Profile]
	update gocommand.Commander[command.ProfileUpdateInput]
	logger types.Logger
}

// NewProfileService constructs the adapter.
func NewProfileService(cfg ProfileServiceConfig, opts ...ServiceOption) *ProfileService {
	options := applyOptions(opts)
	return &ProfileService{
		guard:  cfg.Guard,
		detail: cfg.Detail,
		update: cfg.Update,
		logger: options.logger,
	}
}

func (s *ProfileService) Create(crud.Context, *types.Profile) (*types.Profile, error) {
	return nil, notSupported(crud.OpCreate)
}

func (s *ProfileService) CreateBatch(crud.Context, []*types.Profile) ([]*types.Profile, error) {
	return nil, notSupported(crud.OpCreateBatch)
}

func (s *ProfileService) Update(ctx crud.Context, record *types.Profile) (*types.Profile, error) {
	if s.update == nil {
		return nil, notSupported(crud.OpUpdate)
	}
	if record == nil || record.ID == uuid.Nil {
		return nil, goerrors.New("go-gigs: profile payload with id required", goerrors.CategoryValidation).WithCode(goerrors.CodeBadRequest)
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{
		Context:   ctx,
		Operation: crud.OpUpdate,
		TargetID:  record.ID,
	})
	if err != nil {
		return nil, err
	}

	result := &command.ProfileUpdateResult{}
	input := command.ProfileUpdateInput{
		Actor:     res.Actor,
		ProfileID: record.ID,
		Patch:     patchFromRecord(record),
		Scope:     res.Scope,
		Result:    result,
	}
	if err := s.update.Execute(ctx.UserContext(), input); err != nil {
		return nil, err
	}
	return result.Profile, nil
}

func (s *ProfileService) UpdateBatch(crud.Context, []*types.Profile) ([]*types.Profile, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

func (s *ProfileService) Delete(crud.Context, *types.Profile) error {
	return notSupported(crud.OpDelete)
}

func (s *ProfileService) DeleteBatch(crud.Context, []*types.Profile) error {
	return notSupported(crud.OpDeleteBatch)
}

func (s *ProfileService) Index(crud.Context, []repository.SelectCriteria) ([]*types.Profile, int, error) {
	return nil, 0, notSupported(crud.OpList)
}

func (s *ProfileService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*types.Profile, error) {
	if s.detail == nil {
		return nil, goerrors.New("profile query missing", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	profileID, err := uuid.Parse(id)
	if err != nil {
		return nil, goerrors.New("invalid profile id", goerrors.CategoryValidation).WithCode(goerrors.CodeBadRequest)
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{
		Context:   ctx,
		Operation: crud.OpRead,
		TargetID:  profileID,
	})
	if err != nil {
		return nil, err
	}
	return s.detail.Query(ctx.UserContext(), query.ProfileQueryInput{
		Actor:     res.Actor,
		ProfileID: profileID,
		Scope:     res.Scope,
	})
}

// patchFromRecord maps the editable subset of the payload onto a patch. Empty
// strings are treated as "leave unchanged" because CRUD payloads cannot tell
// absent fields apart from cleared ones.
func patchFromRecord(record *types.Profile) types.ProfilePatch {
	patch := types.ProfilePatch{}
	if record.FullName != "" {
		patch.FullName = &record.FullName
	}
	if record.Phone != "" {
		patch.Phone = &record.Phone
	}
	if record.City != "" {
		patch.City = &record.City
	}
	if record.Bio != "" {
		patch.Bio = &record.Bio
	}
	if record.AvatarURL != "" {
		patch.AvatarURL = &record.AvatarURL
	}
	return patch
}
