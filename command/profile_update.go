package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/goliatone/go-gigs/scope"
	"github.com/google/uuid"
)

// ProfileUpdateInput applies a self-service edit. Only the owner can change
// their profile; the role field is not part of the patch at all.
type ProfileUpdateInput struct {
	Actor     types.ActorRef
	ProfileID uuid.UUID
	Patch     types.ProfilePatch
	Scope     types.ScopeFilter
	Result    *ProfileUpdateResult
}

// Type implements gocommand.Message.
func (ProfileUpdateInput) Type() string {
	return "command.profile.update"
}

// Validate implements gocommand.Message.
func (input ProfileUpdateInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case input.ProfileID == uuid.Nil:
		return ErrProfileIDRequired
	case patchIsEmpty(input.Patch):
		return ErrEmptyPatch
	default:
		return nil
	}
}

// ProfileUpdateResult carries the updated profile.
type ProfileUpdateResult struct {
	Profile *types.Profile
}

// ProfileUpdateCommand implements go-command.Commander for profile edits.
type ProfileUpdateCommand struct {
	profiles types.ProfileRepository
	clock    types.Clock
	logger   types.Logger
	hooks    types.Hooks
	activity types.ActivitySink
	guard    scope.Guard
}

// ProfileUpdateConfig configures the edit handler.
type ProfileUpdateConfig struct {
	Profiles   types.ProfileRepository
	Clock      types.Clock
	Logger     types.Logger
	Hooks      types.Hooks
	Activity   types.ActivitySink
	ScopeGuard scope.Guard
}

// NewProfileUpdateCommand wires the edit handler.
func NewProfileUpdateCommand(cfg ProfileUpdateConfig) *ProfileUpdateCommand {
	return &ProfileUpdateCommand{
		profiles: cfg.Profiles,
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		hooks:    safeHooks(cfg.Hooks),
		activity: safeActivitySink(cfg.Activity),
		guard:    safeScopeGuard(cfg.ScopeGuard),
	}
}

var _ gocommand.Commander[ProfileUpdateInput] = (*ProfileUpdateCommand)(nil)

// Execute applies the patch after checking ownership.
func (c *ProfileUpdateCommand) Execute(ctx context.Context, input ProfileUpdateInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := c.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionProfilesWrite, input.ProfileID); err != nil {
		return err
	}
	if input.ProfileID != input.Actor.ID {
		return ErrNotProfileOwner
	}

	updated, err := c.profiles.UpdateProfile(ctx, input.ProfileID, input.Patch)
	if err != nil {
		return mapProfileLookupError(err)
	}
	c.logger.Debug("profile updated", "profile_id", updated.ID)

	eventTime := now(c.clock)
	record := types.ActivityRecord{
		UserID:     updated.ID,
		ActorID:    input.Actor.ID,
		Verb:       "profile.updated",
		ObjectType: "profile",
		ObjectID:   updated.ID.String(),
		Channel:    "profiles",
		City:       updated.City,
		OccurredAt: eventTime,
	}
	logActivity(ctx, c.activity, record)
	emitActivityHook(ctx, c.hooks, record)

	emitProfileHook(ctx, c.hooks, types.ProfileEvent{
		ProfileID:  updated.ID,
		ActorID:    input.Actor.ID,
		OccurredAt: eventTime,
		Profile:    *updated,
	})

	if input.Result != nil {
		input.Result.Profile = updated
	}
	return nil
}

func patchIsEmpty(patch types.ProfilePatch) bool {
	return patch.FullName == nil &&
		patch.Phone == nil &&
		patch.City == nil &&
		patch.Bio == nil &&
		patch.AvatarURL == nil
}
