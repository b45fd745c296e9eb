// AngelaMos | 2026
// dto.go

package campaign

import (
	"time"
)

type CreateCampaignRequest struct {
	Name        string     `json:"name"        validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"required,min=10"`
	RewardPool  float64    `json:"reward_pool" validate:"required,gt=0"`
	Currency    string     `json:"currency"    validate:"required,oneof=XLM USDC USD KES"`
	Status      string     `json:"status"      validate:"omitempty,oneof=DRAFT ACTIVE"`
	IsFeatured  bool       `json:"is_featured"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type UpdateCampaignRequest struct {
	Name        *string    `json:"name"        validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description" validate:"omitempty,min=10"`
	RewardPool  *float64   `json:"reward_pool" validate:"omitempty,gt=0"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=DRAFT ACTIVE PAUSED COMPLETED CANCELLED"`
	IsFeatured  *bool      `json:"is_featured"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type CampaignResponse struct {
	ID            int64      `json:"id"`
	CreatedBy     int64      `json:"created_by"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	RewardPool    float64    `json:"reward_pool"`
	FundingRaised float64    `json:"funding_raised"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	IsFeatured    bool       `json:"is_featured"`
	ViewsCount    int64      `json:"views_count"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ListCampaignsParams struct {
	Page     int
	PageSize int
	Status   string
}

func (p *ListCampaignsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListCampaignsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func toCampaignResponse(c *Campaign) *CampaignResponse {
	return &CampaignResponse{
		ID:            c.ID,
		CreatedBy:     c.CreatedBy,
		Name:          c.Name,
		Description:   c.Description,
		RewardPool:    c.RewardPool,
		FundingRaised: c.FundingRaised,
		Currency:      c.Currency,
		Status:        c.Status,
		IsFeatured:    c.IsFeatured,
		ViewsCount:    c.ViewsCount,
		StartsAt:      c.StartsAt,
		EndsAt:        c.EndsAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toCampaignResponseList(campaigns []Campaign) []CampaignResponse {
	out := make([]CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, *toCampaignResponse(&campaigns[i]))
	}
	return out
}
