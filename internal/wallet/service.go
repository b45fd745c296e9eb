// AngelaMos | 2026
// service.go

package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundlift/backend/internal/activity"
	"github.com/fundlift/backend/internal/core"
)

var ErrInvalidPublicKey = errors.New("invalid stellar public key")

type Service struct {
	repo     Repository
	activity *activity.Service
}

func NewService(repo Repository, activitySvc *activity.Service) *Service {
	return &Service{repo: repo, activity: activitySvc}
}

// Connect attaches a Stellar key to the user's wallet. A key already held
// by a different user is a conflict.
func (s *Service) Connect(
	ctx context.Context,
	userID int64,
	req ConnectWalletRequest,
) (*WalletResponse, error) {
	if !ValidStellarPublicKey(req.PublicKey) {
		return nil, fmt.Errorf("connect wallet: %w", ErrInvalidPublicKey)
	}

	existing, err := s.repo.GetByPublicKey(ctx, req.PublicKey)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.UserID != userID {
		return nil, fmt.Errorf(
			"connect wallet: key held by another account: %w",
			core.ErrConflict,
		)
	}

	wallet := &Wallet{
		UserID:    userID,
		PublicKey: req.PublicKey,
	}

	if err := s.repo.Upsert(ctx, wallet); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &userID, activity.TypeWalletConnected,
		map[string]any{"wallet_id": wallet.ID})

	return toWalletResponse(wallet), nil
}

// GetBalance returns the locally tracked balances. Owner only; these
// numbers are bookkeeping, not a chain query.
func (s *Service) GetBalance(
	ctx context.Context,
	requesterID int64,
	isAdmin bool,
	walletID int64,
) (*BalanceResponse, error) {
	wallet, err := s.repo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	if wallet.UserID != requesterID && !isAdmin {
		return nil, fmt.Errorf("get balance: %w", core.ErrForbidden)
	}

	return &BalanceResponse{
		WalletID:    wallet.ID,
		PublicKey:   wallet.PublicKey,
		XLMBalance:  wallet.XLMBalance,
		USDCBalance: wallet.USDCBalance,
	}, nil
}
