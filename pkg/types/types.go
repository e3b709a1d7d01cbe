package types

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle state of a posted job.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusAccepted   JobStatus = "accepted"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// JobStatuses lists every lifecycle state in canonical order.
var JobStatuses = []JobStatus{
	JobStatusOpen,
	JobStatusAccepted,
	JobStatusInProgress,
	JobStatusCompleted,
	JobStatusCancelled,
}

// Valid reports whether the status belongs to the closed set.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusAccepted, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// ActiveJobStatuses groups the states shown under "active" tabs: everything
// that is neither completed nor cancelled.
var ActiveJobStatuses = []JobStatus{JobStatusOpen, JobStatusAccepted, JobStatusInProgress}

// JobCategory classifies the kind of work a job involves.
type JobCategory string

const (
	JobCategoryRetail       JobCategory = "retail"
	JobCategoryRestaurant   JobCategory = "restaurant"
	JobCategoryWarehouse    JobCategory = "warehouse"
	JobCategoryEvents       JobCategory = "events"
	JobCategoryHousehold    JobCategory = "household"
	JobCategoryConstruction JobCategory = "construction"
	JobCategoryDelivery     JobCategory = "delivery"
	JobCategoryOther        JobCategory = "other"
)

// JobCategories lists the closed category set in display order.
var JobCategories = []JobCategory{
	JobCategoryRetail,
	JobCategoryRestaurant,
	JobCategoryWarehouse,
	JobCategoryEvents,
	JobCategoryHousehold,
	JobCategoryConstruction,
	JobCategoryDelivery,
	JobCategoryOther,
}

// Valid reports whether the category belongs to the closed set.
func (c JobCategory) Valid() bool {
	for _, known := range JobCategories {
		if c == known {
			return true
		}
	}
	return false
}

// UserRole identifies which side of the marketplace a profile acts on. The
// role is fixed at signup and never changes afterwards.
type UserRole string

const (
	RoleWorker   UserRole = "worker"
	RoleEmployer UserRole = "employer"
)

// Valid reports whether the role is one of the two supported values.
func (r UserRole) Valid() bool {
	return r == RoleWorker || r == RoleEmployer
}

// ScopeFilter narrows listings to a city market. An empty filter means
// "everywhere"; hosts running a single-city deployment can resolve every
// request to their city via a ScopeResolver.
type ScopeFilter struct {
	City string
}

// IsZero reports whether the filter carries no scoping at all.
func (s ScopeFilter) IsZero() bool {
	return strings.TrimSpace(s.City) == ""
}

// Pagination bounds list queries.
type Pagination struct {
	Limit  int
	Offset int
}

// ProfileSummary carries the public fields joined onto job listings: enough
// to render a card without fetching the full counterpart profile.
type ProfileSummary struct {
	ID         uuid.UUID
	FullName   string
	Rating     float64
	IsVerified bool
}

// Job is the domain representation of a work order.
type Job struct {
	ID              uuid.UUID
	EmployerID      uuid.UUID
	WorkerID        *uuid.UUID
	Title           string
	Description     string
	Category        JobCategory
	HourlyRate      float64
	DurationHours   int
	LocationAddress string
	City            string
	StartTime       time.Time
	Status          JobStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined counterpart data, populated by list/detail reads.
	Employer *ProfileSummary
	Worker   *ProfileSummary
}

// TotalPay derives the full payout for the job. It is computed on read and
// never persisted.
func (j Job) TotalPay() float64 {
	return j.HourlyRate * float64(j.DurationHours)
}

// Assigned reports whether a worker has claimed the job.
func (j Job) Assigned() bool {
	return j.WorkerID != nil && *j.WorkerID != uuid.Nil
}

// Profile is the marketplace identity record tied to an auth user.
type Profile struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	FullName   string
	Role       UserRole
	Rating     float64
	TotalJobs  int
	IsVerified bool
	City       string
	Phone      string
	Bio        string
	AvatarURL  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProfilePatch represents the self-service editable subset of a profile.
// Role is deliberately absent: it is immutable after signup.
type ProfilePatch struct {
	FullName  *string
	Phone     *string
	City      *string
	Bio       *string
	AvatarURL *string
}

// Rating is feedback left by one party of a completed job about the other.
type Rating struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	RaterID   uuid.UUID
	RatedID   uuid.UUID
	Score     int
	Review    string
	CreatedAt time.Time
}

// JobEvent is emitted after job mutations (create, accept, status changes).
type JobEvent struct {
	JobID      uuid.UUID
	ActorID    uuid.UUID
	FromStatus JobStatus
	ToStatus   JobStatus
	OccurredAt time.Time
	Job        *Job
}

// ProfileEvent signals that a profile mutation occurred.
type ProfileEvent struct {
	ProfileID  uuid.UUID
	ActorID    uuid.UUID
	OccurredAt time.Time
	Profile    Profile
}

// RatingEvent is emitted after a rating is recorded.
type RatingEvent struct {
	RatingID   uuid.UUID
	JobID      uuid.UUID
	RaterID    uuid.UUID
	RatedID    uuid.UUID
	Score      int
	OccurredAt time.Time
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterJobChange     func(context.Context, JobEvent)
	AfterProfileChange func(context.Context, ProfileEvent)
	AfterRating        func(context.Context, RatingEvent)
	AfterActivity      func(context.Context, ActivityRecord)
}

// ActivityRecord describes audit sink inputs shared across sink and query
// layers. UserID is the profile the event is about, ActorID whoever caused it.
type ActivityRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ActorID    uuid.UUID
	Verb       string
	ObjectType string
	ObjectID   string
	Channel    string
	City       string
	Data       map[string]any
	OccurredAt time.Time
}

// ActivitySink is the minimal DI contract for emitting activity. Keep it
// stable and limited to Log so hosts can swap sinks without breaking changes.
type ActivitySink interface {
	Log(context.Context, ActivityRecord) error
}

// ActivityFilter narrows activity feed queries.
type ActivityFilter struct {
	Actor      ActorRef
	UserID     uuid.UUID
	ActorID    uuid.UUID
	Verbs      []string
	ObjectType string
	ObjectID   string
	Channel    string
	City       string
	Since      *time.Time
	Until      *time.Time
	Keyword    string
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (ActivityFilter) Type() string {
	return "query.activity.feed"
}

// Validate implements gocommand.Message.
func (filter ActivityFilter) Validate() error {
	if filter.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return nil
}

// ActivityPage represents a paginated feed response.
type ActivityPage struct {
	Records    []ActivityRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// ActivityStatsFilter scopes aggregate activity queries.
type ActivityStatsFilter struct {
	Actor  ActorRef
	UserID uuid.UUID
	Since  *time.Time
	Until  *time.Time
	Verbs  []string
}

// Type implements gocommand.Message for query inputs.
func (ActivityStatsFilter) Type() string {
	return "query.activity.stats"
}

// Validate implements gocommand.Message.
func (filter ActivityStatsFilter) Validate() error {
	if filter.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return nil
}

// ActivityStats powers dashboard widgets summarizing verbs.
type ActivityStats struct {
	Total  int
	ByVerb map[string]int
}

// ActivityRepository exposes read-side access to the audit trail.
type ActivityRepository interface {
	ListActivity(ctx context.Context, filter ActivityFilter) (ActivityPage, error)
	ActivityStats(ctx context.Context, filter ActivityStatsFilter) (ActivityStats, error)
}

// OpenJobsFilter collects the filters accepted by the public job board.
type OpenJobsFilter struct {
	Actor      ActorRef
	Scope      ScopeFilter
	Category   JobCategory
	Keyword    string
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (OpenJobsFilter) Type() string {
	return "query.jobs.open"
}

// Validate implements gocommand.Message.
func (filter OpenJobsFilter) Validate() error {
	if filter.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return ErrUnknownCategory
	}
	return nil
}

// UserJobsFilter lists the jobs a profile participates in: assignments for
// workers, postings for employers.
type UserJobsFilter struct {
	Actor      ActorRef
	ProfileID  uuid.UUID
	Role       UserRole
	Statuses   []JobStatus
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (UserJobsFilter) Type() string {
	return "query.jobs.mine"
}

// Validate implements gocommand.Message.
func (filter UserJobsFilter) Validate() error {
	switch {
	case filter.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case filter.ProfileID == uuid.Nil:
		return ErrProfileIDRequired
	case !filter.Role.Valid():
		return ErrUnknownRole
	default:
		return nil
	}
}

// JobPage represents a paginated job listing.
type JobPage struct {
	Jobs       []Job
	Total      int
	NextOffset int
	HasMore    bool
}

// RatingsFilter narrows rating listings to one rated profile.
type RatingsFilter struct {
	Actor      ActorRef
	RatedID    uuid.UUID
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (RatingsFilter) Type() string {
	return "query.ratings.list"
}

// Validate implements gocommand.Message.
func (filter RatingsFilter) Validate() error {
	switch {
	case filter.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case filter.RatedID == uuid.Nil:
		return ErrProfileIDRequired
	default:
		return nil
	}
}

// RatingPage represents a paginated set of ratings.
type RatingPage struct {
	Ratings    []Rating
	Total      int
	NextOffset int
	HasMore    bool
}

// JobRepository persists jobs and enforces the conditional writes the
// lifecycle depends on. AcceptJob and UpdateJobStatus must be atomic at the
// store: the extra predicates are evaluated by the database, not in Go.
type JobRepository interface {
	CreateJob(ctx context.Context, job Job) (*Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*Job, error)
	ListOpenJobs(ctx context.Context, filter OpenJobsFilter) (JobPage, error)
	ListJobsForUser(ctx context.Context, filter UserJobsFilter) (JobPage, error)
	AcceptJob(ctx context.Context, jobID, workerID uuid.UUID) (*Job, error)
	UpdateJobStatus(ctx context.Context, jobID, employerID uuid.UUID, current, target JobStatus) (*Job, error)
}

// ProfileRepository persists and retrieves marketplace profiles.
type ProfileRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	CreateProfile(ctx context.Context, profile Profile) (*Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*Profile, error)
	SetRating(ctx context.Context, id uuid.UUID, rating float64) error
	IncrementTotalJobs(ctx context.Context, ids ...uuid.UUID) error
}

// RatingRepository persists job feedback.
type RatingRepository interface {
	CreateRating(ctx context.Context, rating Rating) (*Rating, error)
	ListRatingsForUser(ctx context.Context, filter RatingsFilter) (RatingPage, error)
	AverageScore(ctx context.Context, ratedID uuid.UUID) (float64, int, error)
	HasRated(ctx context.Context, jobID, raterID uuid.UUID) (bool, error)
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = errors.New("go-gigs: actor reference required")
	// ErrJobIDRequired indicates a job identifier was omitted.
	ErrJobIDRequired = errors.New("go-gigs: job id required")
	// ErrProfileIDRequired indicates a profile identifier was omitted.
	ErrProfileIDRequired = errors.New("go-gigs: profile id required")
	// ErrUnknownCategory indicates a category outside the closed set.
	ErrUnknownCategory = errors.New("go-gigs: unknown job category")
	// ErrUnknownRole indicates a role outside worker/employer.
	ErrUnknownRole = errors.New("go-gigs: unknown user role")
	// ErrScoreOutOfRange indicates a rating score outside 1..5.
	ErrScoreOutOfRange = errors.New("go-gigs: rating score must be between 1 and 5")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("go-gigs: service not ready")
	// ErrMissingJobRepository occurs when no job repository was supplied.
	ErrMissingJobRepository = errors.New("go-gigs: missing job repository")
	// ErrMissingProfileRepository occurs when no profile repository was supplied.
	ErrMissingProfileRepository = errors.New("go-gigs: missing profile repository")
	// ErrMissingRatingRepository occurs when no rating repository was supplied.
	ErrMissingRatingRepository = errors.New("go-gigs: missing rating repository")
	// ErrMissingActivitySink occurs when no activity sink was supplied.
	ErrMissingActivitySink = errors.New("go-gigs: missing activity sink")
	// ErrMissingActivityRepository occurs when no activity repository was supplied.
	ErrMissingActivityRepository = errors.New("go-gigs: missing activity repository")
)
