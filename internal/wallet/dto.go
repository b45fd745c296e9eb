// AngelaMos | 2026
// dto.go

package wallet

import (
	"time"
)

type ConnectWalletRequest struct {
	PublicKey string `json:"public_key" validate:"required,len=56"`
}

type WalletResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	PublicKey   string    `json:"public_key"`
	IsConnected bool      `json:"is_connected"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BalanceResponse struct {
	WalletID    int64   `json:"wallet_id"`
	PublicKey   string  `json:"public_key"`
	XLMBalance  float64 `json:"xlm_balance"`
	USDCBalance float64 `json:"usdc_balance"`
}

func toWalletResponse(w *Wallet) *WalletResponse {
	return &WalletResponse{
		ID:          w.ID,
		UserID:      w.UserID,
		PublicKey:   w.PublicKey,
		IsConnected: w.IsConnected,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
