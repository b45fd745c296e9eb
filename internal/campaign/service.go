// AngelaMos | 2026
// service.go

package campaign

import (
	"context"

	"github.com/fundlift/backend/internal/donation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	creatorID int64,
	req CreateCampaignRequest,
) (*CampaignResponse, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	campaign := &Campaign{
		CreatedBy:   creatorID,
		Name:        req.Name,
		Description: req.Description,
		RewardPool:  req.RewardPool,
		Currency:    req.Currency,
		Status:      status,
		IsFeatured:  req.IsFeatured,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	return toCampaignResponse(campaign), nil
}

func (s *Service) Get(
	ctx context.Context,
	id int64,
) (*CampaignResponse, error) {
	campaign, err := s.repo.GetByIDAndBumpViews(ctx, id)
	if err != nil {
		return nil, err
	}

	return toCampaignResponse(campaign), nil
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateCampaignRequest,
) (*CampaignResponse, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.RewardPool != nil {
		campaign.RewardPool = *req.RewardPool
	}
	if req.Status != nil {
		campaign.Status = *req.Status
	}
	if req.IsFeatured != nil {
		campaign.IsFeatured = *req.IsFeatured
	}
	if req.StartsAt != nil {
		campaign.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		campaign.EndsAt = req.EndsAt
	}

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	return toCampaignResponse(campaign), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListCampaignsParams,
) ([]CampaignResponse, int, error) {
	params.Normalize()

	campaigns, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return toCampaignResponseList(campaigns), total, nil
}

// DonationTarget routes donations to the campaign's creator. Only ACTIVE
// campaigns accept money.
func (s *Service) DonationTarget(
	ctx context.Context,
	id int64,
) (*donation.TargetInfo, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &donation.TargetInfo{
		Kind:     donation.TargetCampaign,
		OwnerID:  campaign.CreatedBy,
		Fundable: campaign.AcceptsDonations(),
	}, nil
}

var _ donation.TargetSource = (*Service)(nil)
