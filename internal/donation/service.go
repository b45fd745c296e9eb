// AngelaMos | 2026
// service.go

package donation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/fundlift/backend/internal/activity"
	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/events"
)

var (
	ErrNoTarget        = errors.New("a funding target is required")
	ErrMultipleTargets = errors.New("exactly one funding target must be provided")
)

// TargetSource resolves a funding target of one kind. The project, post,
// and campaign services each provide one.
type TargetSource interface {
	DonationTarget(ctx context.Context, id int64) (*TargetInfo, error)
}

type Service struct {
	db        *sqlx.DB
	repo      Repository
	projects  TargetSource
	posts     TargetSource
	campaigns TargetSource
	activity  *activity.Service
	events    events.Publisher
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	projects, posts, campaigns TargetSource,
	activitySvc *activity.Service,
	publisher events.Publisher,
) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		projects:  projects,
		posts:     posts,
		campaigns: campaigns,
		activity:  activitySvc,
		events:    publisher,
	}
}

// Initiate creates a PENDING donation against exactly one funding target.
// donorID is zero for unauthenticated callers.
func (s *Service) Initiate(
	ctx context.Context,
	donorID int64,
	req InitiateDonationRequest,
) (*DonationResponse, error) {
	targets := 0
	if req.ProjectID != nil {
		targets++
	}
	if req.PostID != nil {
		targets++
	}
	if req.CampaignID != nil {
		targets++
	}

	if targets == 0 {
		return nil, fmt.Errorf("initiate donation: %w", ErrNoTarget)
	}
	if targets > 1 {
		return nil, fmt.Errorf("initiate donation: %w", ErrMultipleTargets)
	}

	target, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	if !target.Fundable {
		return nil, fmt.Errorf(
			"initiate donation: %s is not fundable: %w",
			target.Kind,
			core.ErrNotFundable,
		)
	}

	donation := &Donation{
		RecipientID:   &target.OwnerID,
		ProjectID:     req.ProjectID,
		PostID:        req.PostID,
		CampaignID:    req.CampaignID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		Message:       req.Message,
		IsAnonymous:   req.IsAnonymous,
		Status:        StatusPending,
	}

	if donorID != 0 && !req.IsAnonymous {
		donation.DonorID = &donorID
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, donation.DonorID, activity.TypeDonationInitiated,
		map[string]any{
			"donation_id": donation.ID,
			"target":      target.Kind,
			"amount":      donation.Amount,
			"currency":    donation.Currency,
		})

	return toDonationResponse(donation), nil
}

func (s *Service) resolveTarget(
	ctx context.Context,
	req InitiateDonationRequest,
) (*TargetInfo, error) {
	switch {
	case req.ProjectID != nil:
		return s.projects.DonationTarget(ctx, *req.ProjectID)
	case req.PostID != nil:
		return s.posts.DonationTarget(ctx, *req.PostID)
	default:
		return s.campaigns.DonationTarget(ctx, *req.CampaignID)
	}
}

// Verify settles a pending donation. The guarded transition and the
// funding-raised increment commit together, so a winning confirm counts
// the money exactly once and a losing one changes nothing.
func (s *Service) Verify(
	ctx context.Context,
	req VerifyDonationRequest,
) (*DonationResponse, error) {
	var confirmed *Donation

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		donation, err := txRepo.ConfirmPending(
			ctx, req.DonationID, req.TxHash, req.ProviderTransactionID,
		)
		if err != nil {
			return err
		}

		switch {
		case donation.ProjectID != nil:
			if err := txRepo.AddProjectFunding(
				ctx, *donation.ProjectID, donation.Amount,
			); err != nil {
				return err
			}
		case donation.CampaignID != nil:
			if err := txRepo.AddCampaignFunding(
				ctx, *donation.CampaignID, donation.Amount,
			); err != nil {
				return err
			}
		}

		confirmed = donation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, confirmed.DonorID, activity.TypeDonationConfirmed,
		map[string]any{
			"donation_id": confirmed.ID,
			"tx_hash":     req.TxHash,
			"amount":      confirmed.Amount,
		})

	if err := s.events.Publish(ctx, events.KeyDonationConfirmed, map[string]any{
		"donation_id": confirmed.ID,
		"amount":      confirmed.Amount,
		"currency":    confirmed.Currency,
	}); err != nil {
		slog.Warn("donation confirmed event publish failed",
			"donation_id", confirmed.ID,
			"error", err,
		)
	}

	return toDonationResponse(confirmed), nil
}

// Cancel voids a pending donation. Only the donor or an admin may cancel;
// anonymous donations have no donor and are admin-only.
func (s *Service) Cancel(
	ctx context.Context,
	requesterID int64,
	isAdmin bool,
	id int64,
) (*DonationResponse, error) {
	donation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		if donation.DonorID == nil || *donation.DonorID != requesterID {
			return nil, fmt.Errorf("cancel donation: %w", core.ErrForbidden)
		}
	}

	cancelled, err := s.repo.CancelPending(ctx, id)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, cancelled.DonorID, activity.TypeDonationCancelled,
		map[string]any{"donation_id": cancelled.ID})

	if err := s.events.Publish(ctx, events.KeyDonationCancelled, map[string]any{
		"donation_id": cancelled.ID,
	}); err != nil {
		slog.Warn("donation cancelled event publish failed",
			"donation_id", cancelled.ID,
			"error", err,
		)
	}

	return toDonationResponse(cancelled), nil
}

// Get returns a donation the requester is allowed to see. Invisible rows
// read as absent rather than forbidden.
func (s *Service) Get(
	ctx context.Context,
	requesterID int64,
	isAdmin bool,
	id int64,
) (*DonationResponse, error) {
	donation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !donation.VisibleTo(requesterID, isAdmin) {
		return nil, fmt.Errorf("get donation: %w", core.ErrNotFound)
	}

	return toDonationResponse(donation), nil
}

// List pages through donations and then drops the rows the requester may
// not see. Filtering after pagination means a page can come back short;
// the behavior is kept as-is.
func (s *Service) List(
	ctx context.Context,
	requesterID int64,
	isAdmin bool,
	params ListDonationsParams,
) ([]DonationResponse, int, error) {
	params.Normalize()

	donations, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	visible := make([]Donation, 0, len(donations))
	for i := range donations {
		if donations[i].VisibleTo(requesterID, isAdmin) {
			visible = append(visible, donations[i])
		}
	}

	return toDonationResponseList(visible), total, nil
}

func (s *Service) GetStats(ctx context.Context) (*StatsResponse, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalCount:      stats.TotalCount,
		ConfirmedCount:  stats.ConfirmedCount,
		ConfirmedAmount: stats.ConfirmedAmount,
	}, nil
}
