// AngelaMos | 2026
// service.go

package project

import (
	"context"
	"fmt"
	"time"

	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/donation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create opens a new project for a verified student. Projects go straight
// to FUNDABLE so donations can flow from day one.
func (s *Service) Create(
	ctx context.Context,
	ownerID int64,
	req CreateProjectRequest,
) (*ProjectResponse, error) {
	now := time.Now()

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	project := &Project{
		OwnerID:          ownerID,
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		RepoURL:          req.RepoURL,
		FundingGoal:      req.FundingGoal,
		Currency:         req.Currency,
		Category:         req.Category,
		Status:           StatusFundable,
		IsPublic:         isPublic,
		PublishedAt:      &now,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*ProjectResponse, error) {
	project, err := s.repo.GetByIDAndBumpViews(ctx, id)
	if err != nil {
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *Service) Update(
	ctx context.Context,
	requesterID int64,
	isAdmin bool,
	id int64,
	req UpdateProjectRequest,
) (*ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if project.OwnerID != requesterID && !isAdmin {
		return nil, fmt.Errorf("update project: %w", core.ErrForbidden)
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.ShortDescription != nil {
		project.ShortDescription = req.ShortDescription
	}
	if req.RepoURL != nil {
		project.RepoURL = req.RepoURL
	}
	if req.FundingGoal != nil {
		project.FundingGoal = *req.FundingGoal
	}
	if req.Category != nil {
		project.Category = req.Category
	}
	if req.IsPublic != nil {
		project.IsPublic = *req.IsPublic
	}
	if req.Status != nil {
		project.Status = *req.Status
		if project.Status == StatusPublished && project.PublishedAt == nil {
			now := time.Now()
			project.PublishedAt = &now
		}
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *Service) Delete(
	ctx context.Context,
	requesterID int64,
	isAdmin bool,
	id int64,
) error {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if project.OwnerID != requesterID && !isAdmin {
		return fmt.Errorf("delete project: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListProjectsParams,
) ([]ProjectResponse, int, error) {
	params.Normalize()

	projects, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return toProjectResponseList(projects), total, nil
}

// DonationTarget lets the donation workflow check this project without
// bumping its view counter.
func (s *Service) DonationTarget(
	ctx context.Context,
	id int64,
) (*donation.TargetInfo, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &donation.TargetInfo{
		Kind:     donation.TargetProject,
		OwnerID:  project.OwnerID,
		Fundable: project.AcceptsDonations(),
	}, nil
}

var _ donation.TargetSource = (*Service)(nil)
