package command

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-gigs/pkg/types"
	"github.com/google/uuid"
)

const (
	featureJobsCreate    = "jobs.create"
	featureRatingsCreate = "ratings.create"
)

func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string, actor types.ActorRef) (bool, error) {
	if gate == nil {
		return true, nil
	}
	scopeSet := featureScopeSet(actor)
	if scopeSet == nil {
		return gate.Enabled(ctx, key)
	}
	return gate.Enabled(ctx, key, featuregate.WithScopeSet(*scopeSet))
}

func featureScopeSet(actor types.ActorRef) *featuregate.ScopeSet {
	if actor.ID == uuid.Nil {
		return nil
	}
	return &featuregate.ScopeSet{
		System: true,
		UserID: actor.ID.String(),
	}
}
