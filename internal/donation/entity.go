// AngelaMos | 2026
// entity.go

package donation

import (
	"time"
)

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
)

const (
	MethodStellarXLM   = "STELLAR_XLM"
	MethodStellarUSDC  = "STELLAR_USDC"
	MethodStripeCard   = "STRIPE_CARD"
	MethodMpesa        = "MPESA"
	MethodBankTransfer = "BANK_TRANSFER"
)

type Donation struct {
	ID                    int64      `db:"id"`
	DonorID               *int64     `db:"donor_id"`
	RecipientID           *int64     `db:"recipient_id"`
	ProjectID             *int64     `db:"project_id"`
	PostID                *int64     `db:"post_id"`
	CampaignID            *int64     `db:"campaign_id"`
	Amount                float64    `db:"amount"`
	Currency              string     `db:"currency"`
	PaymentMethod         string     `db:"payment_method"`
	Message               *string    `db:"message"`
	IsAnonymous           bool       `db:"is_anonymous"`
	TxHash                *string    `db:"tx_hash"`
	Status                string     `db:"status"`
	ConfirmedAt           *time.Time `db:"confirmed_at"`
	ProviderTransactionID *string    `db:"provider_transaction_id"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

func (d *Donation) IsTerminal() bool {
	return d.Status != StatusPending
}

// VisibleTo implements the read policy: admins see everything, confirmed
// donations are public, and pending or failed ones are private to the
// donor and the recipient.
func (d *Donation) VisibleTo(userID int64, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	if d.Status == StatusConfirmed {
		return true
	}
	if userID == 0 {
		return false
	}
	if d.DonorID != nil && *d.DonorID == userID {
		return true
	}
	if d.RecipientID != nil && *d.RecipientID == userID {
		return true
	}
	return false
}

// TargetInfo is what a funding target must reveal to accept a donation.
// The project, post, and campaign services each implement a source
// returning one.
type TargetInfo struct {
	Kind     string
	OwnerID  int64
	Fundable bool
}

const (
	TargetProject  = "project"
	TargetPost     = "post"
	TargetCampaign = "campaign"
)
