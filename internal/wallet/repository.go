// AngelaMos | 2026
// repository.go

package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fundlift/backend/internal/core"
)

const walletColumns = `
	id, user_id, public_key, is_connected, xlm_balance, usdc_balance,
	created_at, updated_at`

type Repository interface {
	Upsert(ctx context.Context, wallet *Wallet) error
	GetByID(ctx context.Context, id int64) (*Wallet, error)
	GetByPublicKey(ctx context.Context, publicKey string) (*Wallet, error)
	GetByUserID(ctx context.Context, userID int64) (*Wallet, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Upsert connects a key for a user, replacing any key the user had before.
func (r *repository) Upsert(ctx context.Context, wallet *Wallet) error {
	query := `
		INSERT INTO wallets (user_id, public_key, is_connected)
		VALUES ($1, $2, true)
		ON CONFLICT (user_id) DO UPDATE
		SET public_key = EXCLUDED.public_key,
			is_connected = true,
			updated_at = NOW()
		RETURNING id, xlm_balance, usdc_balance, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		wallet.UserID,
		wallet.PublicKey,
	).Scan(
		&wallet.ID,
		&wallet.XLMBalance,
		&wallet.USDCBalance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert wallet: %w", err)
	}

	wallet.IsConnected = true
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Wallet, error) {
	query := `SELECT` + walletColumns + `
		FROM wallets
		WHERE id = $1`

	var wallet Wallet
	err := r.db.GetContext(ctx, &wallet, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get wallet: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return &wallet, nil
}

func (r *repository) GetByPublicKey(
	ctx context.Context,
	publicKey string,
) (*Wallet, error) {
	query := `SELECT` + walletColumns + `
		FROM wallets
		WHERE public_key = $1`

	var wallet Wallet
	err := r.db.GetContext(ctx, &wallet, query, publicKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get wallet: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return &wallet, nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID int64,
) (*Wallet, error) {
	query := `SELECT` + walletColumns + `
		FROM wallets
		WHERE user_id = $1`

	var wallet Wallet
	err := r.db.GetContext(ctx, &wallet, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get wallet: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return &wallet, nil
}
