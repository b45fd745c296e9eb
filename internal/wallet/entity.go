// AngelaMos | 2026
// entity.go

package wallet

import (
	"strings"
	"time"
)

type Wallet struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	PublicKey   string    `db:"public_key"`
	IsConnected bool      `db:"is_connected"`
	XLMBalance  float64   `db:"xlm_balance"`
	USDCBalance float64   `db:"usdc_balance"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const stellarKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// ValidStellarPublicKey accepts a Stellar ed25519 account id: 56 base32
// characters starting with G.
func ValidStellarPublicKey(key string) bool {
	if len(key) != 56 || key[0] != 'G' {
		return false
	}

	for _, c := range key {
		if !strings.ContainsRune(stellarKeyAlphabet, c) {
			return false
		}
	}

	return true
}
