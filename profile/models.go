package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the profiles row.
type Record struct {
	bun.BaseModel `bun:"table:profiles"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	UserID     uuid.UUID `bun:"user_id,type:uuid"`
	FullName   string    `bun:"full_name"`
	Role       string    `bun:"role"`
	Rating     float64   `bun:"rating"`
	TotalJobs  int       `bun:"total_jobs"`
	IsVerified bool      `bun:"is_verified"`
	City       string    `bun:"city"`
	Phone      string    `bun:"phone"`
	Bio        string    `bun:"bio"`
	AvatarURL  string    `bun:"avatar_url"`
	CreatedAt  time.Time `bun:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at"`
}
