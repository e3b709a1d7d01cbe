package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/google/uuid"
)

// ProfileCreateInput registers a marketplace profile for an auth user. The
// role is chosen here once and is immutable afterwards.
type ProfileCreateInput struct {
	UserID   uuid.UUID
	FullName string
	Role     types.UserRole
	City     string
	Phone    string
	Bio      string
	Result   *ProfileCreateResult
}

// Type implements gocommand.Message.
func (ProfileCreateInput) Type() string {
	return "command.profile.create"
}

// Validate implements gocommand.Message.
func (input ProfileCreateInput) Validate() error {
	switch {
	case input.UserID == uuid.Nil:
		return ErrProfileIDRequired
	case strings.TrimSpace(input.FullName) == "":
		return ErrFullNameRequired
	case !input.Role.Valid():
		return types.ErrUnknownRole
	default:
		return nil
	}
}

// ProfileCreateResult carries the stored profile.
type ProfileCreateResult struct {
	Profile *types.Profile
}

// ProfileCreateCommand implements go-command.Commander for signups.
type ProfileCreateCommand struct {
	profiles types.ProfileRepository
	clock    types.Clock
	logger   types.Logger
	hooks    types.Hooks
	activity types.ActivitySink
}

// ProfileCreateConfig configures the signup handler.
type ProfileCreateConfig struct {
	Profiles types.ProfileRepository
	Clock    types.Clock
	Logger   types.Logger
	Hooks    types.Hooks
	Activity types.ActivitySink
}

// NewProfileCreateCommand wires the signup handler.
func NewProfileCreateCommand(cfg ProfileCreateConfig) *ProfileCreateCommand {
	return &ProfileCreateCommand{
		profiles: cfg.Profiles,
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		hooks:    safeHooks(cfg.Hooks),
		activity: safeActivitySink(cfg.Activity),
	}
}

var _ gocommand.Commander[ProfileCreateInput] = (*ProfileCreateCommand)(nil)

// Execute stores the new profile and emits activity and hooks.
func (c *ProfileCreateCommand) Execute(ctx context.Context, input ProfileCreateInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	created, err := c.profiles.CreateProfile(ctx, types.Profile{
		UserID:   input.UserID,
		FullName: strings.TrimSpace(input.FullName),
		Role:     input.Role,
		City:     strings.TrimSpace(input.City),
		Phone:    strings.TrimSpace(input.Phone),
		Bio:      strings.TrimSpace(input.Bio),
	})
	if err != nil {
		return err
	}
	c.logger.Debug("profile created", "profile_id", created.ID, "role", created.Role)

	eventTime := now(c.clock)
	record := types.ActivityRecord{
		UserID:     created.ID,
		ActorID:    created.ID,
		Verb:       "profile.created",
		ObjectType: "profile",
		ObjectID:   created.ID.String(),
		Channel:    "profiles",
		City:       created.City,
		Data: map[string]any{
			"role": string(created.Role),
		},
		OccurredAt: eventTime,
	}
	logActivity(ctx, c.activity, record)
	emitActivityHook(ctx, c.hooks, record)

	emitProfileHook(ctx, c.hooks, types.ProfileEvent{
		ProfileID:  created.ID,
		ActorID:    created.ID,
		OccurredAt: eventTime,
		Profile:    *created,
	})

	if input.Result != nil {
		input.Result.Profile = created
	}
	return nil
}
