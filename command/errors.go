package command

import (
	"errors"

	"github.com/goliatone/go-gigs/pkg/types"
)

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = types.ErrActorRequired
	// ErrJobIDRequired indicates a job command lacks the job id.
	ErrJobIDRequired = types.ErrJobIDRequired
	// ErrProfileIDRequired indicates a profile id was omitted.
	ErrProfileIDRequired = types.ErrProfileIDRequired
	// ErrJobTitleRequired indicates a posting without a title.
	ErrJobTitleRequired = errors.New("go-gigs: job title required")
	// ErrJobDescriptionRequired indicates a posting without a description.
	ErrJobDescriptionRequired = errors.New("go-gigs: job description required")
	// ErrJobRateInvalid indicates a non-positive hourly rate.
	ErrJobRateInvalid = errors.New("go-gigs: hourly rate must be positive")
	// ErrJobDurationInvalid indicates a non-positive duration.
	ErrJobDurationInvalid = errors.New("go-gigs: duration hours must be positive")
	// ErrJobLocationRequired indicates a posting without a street address.
	ErrJobLocationRequired = errors.New("go-gigs: job location required")
	// ErrJobCityRequired indicates a posting without a city.
	ErrJobCityRequired = errors.New("go-gigs: job city required")
	// ErrJobStartTimeRequired indicates a posting without a start time.
	ErrJobStartTimeRequired = errors.New("go-gigs: job start time required")
	// ErrJobNotFound indicates the requested job was not found.
	ErrJobNotFound = errors.New("go-gigs: job not found")
	// ErrProfileNotFound indicates the requested profile was not found.
	ErrProfileNotFound = errors.New("go-gigs: profile not found")
	// ErrJobUnavailable indicates the job moved before the write landed:
	// another worker claimed it or the employer changed its status.
	ErrJobUnavailable = errors.New("go-gigs: job no longer available")
	// ErrOwnJobAccept indicates an employer trying to claim their own posting.
	ErrOwnJobAccept = errors.New("go-gigs: cannot accept your own job")
	// ErrJobPostingDisabled indicates posting is disabled via feature gate.
	ErrJobPostingDisabled = errors.New("go-gigs: job posting disabled")
	// ErrRatingDisabled indicates rating capture is disabled via feature gate.
	ErrRatingDisabled = errors.New("go-gigs: ratings disabled")
	// ErrJobNotCompleted indicates a rating attempt before the job completed.
	ErrJobNotCompleted = errors.New("go-gigs: job must be completed before rating")
	// ErrNotJobParticipant indicates the rater was not a party to the job.
	ErrNotJobParticipant = errors.New("go-gigs: only job participants can rate")
	// ErrAlreadyRated indicates the rater already left feedback for the job.
	ErrAlreadyRated = errors.New("go-gigs: job already rated by this user")
	// ErrNotProfileOwner indicates a profile edit by somebody else.
	ErrNotProfileOwner = errors.New("go-gigs: profiles can only be edited by their owner")
	// ErrEmptyPatch indicates a profile update with nothing to change.
	ErrEmptyPatch = errors.New("go-gigs: profile patch is empty")
	// ErrFullNameRequired indicates a signup without a display name.
	ErrFullNameRequired = errors.New("go-gigs: full name required")
)
