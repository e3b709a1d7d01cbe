package rating

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the ratings row. The (job_id, rater_id) pair is unique so a
// party can rate each job at most once.
type Record struct {
	bun.BaseModel `bun:"table:ratings"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	JobID     uuid.UUID `bun:"job_id,type:uuid"`
	RaterID   uuid.UUID `bun:"rater_id,type:uuid"`
	RatedID   uuid.UUID `bun:"rated_id,type:uuid"`
	Score     int       `bun:"score"`
	Review    string    `bun:"review"`
	CreatedAt time.Time `bun:"created_at"`
}
