// AngelaMos | 2026
// dto.go

package project

import (
	"time"
)

type CreateProjectRequest struct {
	Title            string  `json:"title"             validate:"required,min=3,max=200"`
	Description      string  `json:"description"       validate:"required,min=10"`
	ShortDescription *string `json:"short_description" validate:"omitempty,max=500"`
	RepoURL          *string `json:"repo_url"          validate:"omitempty,url,max=500"`
	FundingGoal      float64 `json:"funding_goal"      validate:"required,gt=0"`
	Currency         string  `json:"currency"          validate:"required,oneof=XLM USDC USD KES"`
	Category         *string `json:"category"          validate:"omitempty,max=100"`
	IsPublic         *bool   `json:"is_public"`
}

type UpdateProjectRequest struct {
	Title            *string  `json:"title"             validate:"omitempty,min=3,max=200"`
	Description      *string  `json:"description"       validate:"omitempty,min=10"`
	ShortDescription *string  `json:"short_description" validate:"omitempty,max=500"`
	RepoURL          *string  `json:"repo_url"          validate:"omitempty,url,max=500"`
	FundingGoal      *float64 `json:"funding_goal"      validate:"omitempty,gt=0"`
	Category         *string  `json:"category"          validate:"omitempty,max=100"`
	Status           *string  `json:"status"            validate:"omitempty,oneof=DRAFT PENDING_REVIEW PUBLISHED FUNDABLE FUNDED COMPLETED ARCHIVED"`
	IsPublic         *bool    `json:"is_public"`
}

type ProjectResponse struct {
	ID               int64      `json:"id"`
	OwnerID          int64      `json:"owner_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ShortDescription *string    `json:"short_description,omitempty"`
	RepoURL          *string    `json:"repo_url,omitempty"`
	FundingGoal      float64    `json:"funding_goal"`
	FundingRaised    float64    `json:"funding_raised"`
	Currency         string     `json:"currency"`
	Category         *string    `json:"category,omitempty"`
	Status           string     `json:"status"`
	IsFeatured       bool       `json:"is_featured"`
	IsPublic         bool       `json:"is_public"`
	ViewsCount       int64      `json:"views_count"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ListProjectsParams struct {
	Page     int
	PageSize int
	Status   string
	Category string
	OwnerID  int64
	Search   string
}

func (p *ListProjectsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListProjectsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func toProjectResponse(p *Project) *ProjectResponse {
	return &ProjectResponse{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		Title:            p.Title,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		RepoURL:          p.RepoURL,
		FundingGoal:      p.FundingGoal,
		FundingRaised:    p.FundingRaised,
		Currency:         p.Currency,
		Category:         p.Category,
		Status:           p.Status,
		IsFeatured:       p.IsFeatured,
		IsPublic:         p.IsPublic,
		ViewsCount:       p.ViewsCount,
		PublishedAt:      p.PublishedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toProjectResponseList(projects []Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, *toProjectResponse(&projects[i]))
	}
	return out
}
