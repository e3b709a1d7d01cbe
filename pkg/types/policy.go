package types

import (
	"errors"
)

// ErrTransitionNotAllowed reports that the target status is not reachable
// from the current status for any actor.
var ErrTransitionNotAllowed = errors.New("go-gigs: job transition not allowed")

// ErrTransitionWrongActor reports that the transition exists in the table but
// the acting party is not entitled to perform it.
var ErrTransitionWrongActor = errors.New("go-gigs: actor not allowed to perform transition")

// TransitionCheck carries everything the policy needs to rule on a single
// requested move. The policy itself holds no state; all state lives on the
// job row.
type TransitionCheck struct {
	Current JobStatus
	Target  JobStatus
	// ActorRole is the server-verified role of the caller.
	ActorRole UserRole
	// ActorOwnsJob is true when the caller is the job's employer.
	ActorOwnsJob bool
	// ActorIsAssigned is true when the caller is the job's assigned worker.
	ActorIsAssigned bool
}

// JobTransitionPolicy validates job lifecycle transitions.
type JobTransitionPolicy interface {
	Validate(check TransitionCheck) error
	AllowedTargets(current JobStatus, role UserRole) []JobStatus
}

// TransitionRule is one row of the lifecycle table: who may move a job from
// one status to another.
type TransitionRule struct {
	From JobStatus
	To   JobStatus
	// Role the actor must hold.
	Role UserRole
	// OwnerOnly restricts the rule to the job's employer.
	OwnerOnly bool
	// ForbidOwner rejects the job's own employer (a worker claiming a job
	// must not be its poster).
	ForbidOwner bool
}

// TableTransitionPolicy enforces a fixed transition table. Encoding the
// lifecycle as data keeps illegal states unrepresentable and gives one place
// to extend the graph (say, a disputed status) without touching call sites.
type TableTransitionPolicy struct {
	rules []TransitionRule
}

// NewTableTransitionPolicy creates a policy from explicit rules.
func NewTableTransitionPolicy(rules []TransitionRule) *TableTransitionPolicy {
	out := make([]TransitionRule, 0, len(rules))
	for _, rule := range rules {
		if rule.From == "" || rule.To == "" {
			continue
		}
		out = append(out, rule)
	}
	return &TableTransitionPolicy{rules: out}
}

// DefaultTransitionPolicy returns the marketplace lifecycle:
// open→accepted (worker claims), open→cancelled (employer withdraws),
// accepted→in_progress and in_progress→completed (employer drives the job).
// There is no cancel path after acceptance.
func DefaultTransitionPolicy() *TableTransitionPolicy {
	return NewTableTransitionPolicy([]TransitionRule{
		{From: JobStatusOpen, To: JobStatusAccepted, Role: RoleWorker, ForbidOwner: true},
		{From: JobStatusOpen, To: JobStatusCancelled, Role: RoleEmployer, OwnerOnly: true},
		{From: JobStatusAccepted, To: JobStatusInProgress, Role: RoleEmployer, OwnerOnly: true},
		{From: JobStatusInProgress, To: JobStatusCompleted, Role: RoleEmployer, OwnerOnly: true},
	})
}

// Validate rules on the requested transition. Unknown (from, to) pairs are
// ErrTransitionNotAllowed regardless of actor; known pairs performed by the
// wrong party are ErrTransitionWrongActor.
func (p *TableTransitionPolicy) Validate(check TransitionCheck) error {
	if check.Current == "" || check.Target == "" {
		return ErrTransitionNotAllowed
	}
	var rule *TransitionRule
	for i := range p.rules {
		if p.rules[i].From == check.Current && p.rules[i].To == check.Target {
			rule = &p.rules[i]
			break
		}
	}
	if rule == nil {
		return ErrTransitionNotAllowed
	}
	if rule.Role != "" && rule.Role != check.ActorRole {
		return ErrTransitionWrongActor
	}
	if rule.OwnerOnly && !check.ActorOwnsJob {
		return ErrTransitionWrongActor
	}
	if rule.ForbidOwner && check.ActorOwnsJob {
		return ErrTransitionWrongActor
	}
	return nil
}

// AllowedTargets returns the statuses the supplied role could move a job to
// from the current status, assuming ownership checks pass.
func (p *TableTransitionPolicy) AllowedTargets(current JobStatus, role UserRole) []JobStatus {
	var out []JobStatus
	for _, rule := range p.rules {
		if rule.From != current {
			continue
		}
		if rule.Role != "" && rule.Role != role {
			continue
		}
		out = append(out, rule.To)
	}
	return out
}
