// AngelaMos | 2026
// entity.go

package campaign

import (
	"time"
)

const (
	StatusDraft     = "DRAFT"
	StatusActive    = "ACTIVE"
	StatusPaused    = "PAUSED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

type Campaign struct {
	ID            int64      `db:"id"`
	CreatedBy     int64      `db:"created_by"`
	Name          string     `db:"name"`
	Description   string     `db:"description"`
	RewardPool    float64    `db:"reward_pool"`
	FundingRaised float64    `db:"funding_raised"`
	Currency      string     `db:"currency"`
	Status        string     `db:"status"`
	IsFeatured    bool       `db:"is_featured"`
	ViewsCount    int64      `db:"views_count"`
	StartsAt      *time.Time `db:"starts_at"`
	EndsAt        *time.Time `db:"ends_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// AcceptsDonations: only a running campaign takes money.
func (c *Campaign) AcceptsDonations() bool {
	return c.Status == StatusActive
}
