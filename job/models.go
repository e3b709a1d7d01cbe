package job

import (
	"time"

	"github.com/goliatone/go-gigs/profile"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the jobs row. Employer and Worker are joined profile rows
// loaded by list and detail reads.
type Record struct {
	bun.BaseModel `bun:"table:jobs"`

	ID              uuid.UUID  `bun:"id,pk,type:uuid"`
	EmployerID      uuid.UUID  `bun:"employer_id,type:uuid"`
	WorkerID        *uuid.UUID `bun:"worker_id,type:uuid,nullzero"`
	Title           string     `bun:"title"`
	Description     string     `bun:"description"`
	Category        string     `bun:"category"`
	HourlyRate      float64    `bun:"hourly_rate"`
	DurationHours   int        `bun:"duration_hours"`
	LocationAddress string     `bun:"location_address"`
	City            string     `bun:"city"`
	StartTime       time.Time  `bun:"start_time"`
	Status          string     `bun:"status"`
	CreatedAt       time.Time  `bun:"created_at"`
	UpdatedAt       time.Time  `bun:"updated_at"`

	Employer *profile.Record `bun:"rel:belongs-to,join:employer_id=id"`
	Worker   *profile.Record `bun:"rel:belongs-to,join:worker_id=id"`
}
