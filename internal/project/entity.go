// AngelaMos | 2026
// entity.go

package project

import (
	"time"
)

const (
	StatusDraft         = "DRAFT"
	StatusPendingReview = "PENDING_REVIEW"
	StatusPublished     = "PUBLISHED"
	StatusFundable      = "FUNDABLE"
	StatusFunded        = "FUNDED"
	StatusCompleted     = "COMPLETED"
	StatusArchived      = "ARCHIVED"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusPendingReview, StatusPublished,
		StatusFundable, StatusFunded, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

type Project struct {
	ID               int64      `db:"id"`
	OwnerID          int64      `db:"owner_id"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	ShortDescription *string    `db:"short_description"`
	RepoURL          *string    `db:"repo_url"`
	FundingGoal      float64    `db:"funding_goal"`
	FundingRaised    float64    `db:"funding_raised"`
	Currency         string     `db:"currency"`
	Category         *string    `db:"category"`
	Status           string     `db:"status"`
	IsFeatured       bool       `db:"is_featured"`
	IsPublic         bool       `db:"is_public"`
	ViewsCount       int64      `db:"views_count"`
	PublishedAt      *time.Time `db:"published_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// AcceptsDonations is true in the two states the funding policy allows.
func (p *Project) AcceptsDonations() bool {
	return p.Status == StatusFundable || p.Status == StatusPublished
}
