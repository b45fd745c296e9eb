// AngelaMos | 2026
// dto.go

package donation

import (
	"time"
)

type InitiateDonationRequest struct {
	ProjectID     *int64  `json:"project_id"     validate:"omitempty,gt=0"`
	PostID        *int64  `json:"post_id"        validate:"omitempty,gt=0"`
	CampaignID    *int64  `json:"campaign_id"    validate:"omitempty,gt=0"`
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	Currency      string  `json:"currency"       validate:"required,oneof=XLM USDC USD KES"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=STELLAR_XLM STELLAR_USDC STRIPE_CARD MPESA BANK_TRANSFER"`
	Message       *string `json:"message"        validate:"omitempty,max=500"`
	IsAnonymous   bool    `json:"is_anonymous"`
}

type VerifyDonationRequest struct {
	DonationID            int64   `json:"donation_id" validate:"required,gt=0"`
	TxHash                string  `json:"tx_hash"     validate:"required,min=1,max=128"`
	ProviderTransactionID *string `json:"provider_transaction_id" validate:"omitempty,max=128"`
}

type DonationResponse struct {
	ID            int64      `json:"id"`
	DonorID       *int64     `json:"donor_id,omitempty"`
	RecipientID   *int64     `json:"recipient_id,omitempty"`
	ProjectID     *int64     `json:"project_id,omitempty"`
	PostID        *int64     `json:"post_id,omitempty"`
	CampaignID    *int64     `json:"campaign_id,omitempty"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	PaymentMethod string     `json:"payment_method"`
	Message       *string    `json:"message,omitempty"`
	IsAnonymous   bool       `json:"is_anonymous"`
	TxHash        *string    `json:"tx_hash,omitempty"`
	Status        string     `json:"status"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type StatsResponse struct {
	TotalCount      int     `json:"total_count"`
	ConfirmedCount  int     `json:"confirmed_count"`
	ConfirmedAmount float64 `json:"confirmed_amount"`
}

type ListDonationsParams struct {
	Page       int
	PageSize   int
	Status     string
	ProjectID  int64
	PostID     int64
	CampaignID int64
}

func (p *ListDonationsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListDonationsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func toDonationResponse(d *Donation) *DonationResponse {
	resp := &DonationResponse{
		ID:            d.ID,
		RecipientID:   d.RecipientID,
		ProjectID:     d.ProjectID,
		PostID:        d.PostID,
		CampaignID:    d.CampaignID,
		Amount:        d.Amount,
		Currency:      d.Currency,
		PaymentMethod: d.PaymentMethod,
		Message:       d.Message,
		IsAnonymous:   d.IsAnonymous,
		TxHash:        d.TxHash,
		Status:        d.Status,
		ConfirmedAt:   d.ConfirmedAt,
		CreatedAt:     d.CreatedAt,
	}

	if !d.IsAnonymous {
		resp.DonorID = d.DonorID
	}

	return resp
}

func toDonationResponseList(donations []Donation) []DonationResponse {
	out := make([]DonationResponse, 0, len(donations))
	for i := range donations {
		out = append(out, *toDonationResponse(&donations[i]))
	}
	return out
}
