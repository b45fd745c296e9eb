// AngelaMos | 2026
// repository.go

package donation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/user"
)

const donationColumns = `
	id, donor_id, recipient_id, project_id, post_id, campaign_id,
	amount, currency, payment_method, message, is_anonymous, tx_hash,
	status, confirmed_at, provider_transaction_id, created_at, updated_at`

type Stats struct {
	TotalCount      int     `db:"total_count"`
	ConfirmedCount  int     `db:"confirmed_count"`
	ConfirmedAmount float64 `db:"confirmed_amount"`
}

type Repository interface {
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id int64) (*Donation, error)
	ConfirmPending(
		ctx context.Context,
		id int64,
		txHash string,
		providerTransactionID *string,
	) (*Donation, error)
	CancelPending(ctx context.Context, id int64) (*Donation, error)
	AddProjectFunding(ctx context.Context, projectID int64, amount float64) error
	AddCampaignFunding(ctx context.Context, campaignID int64, amount float64) error
	List(ctx context.Context, params ListDonationsParams) ([]Donation, int, error)
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, donation *Donation) error {
	query := `
		INSERT INTO donations (
			donor_id, recipient_id, project_id, post_id, campaign_id,
			amount, currency, payment_method, message, is_anonymous, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		donation.DonorID,
		donation.RecipientID,
		donation.ProjectID,
		donation.PostID,
		donation.CampaignID,
		donation.Amount,
		donation.Currency,
		donation.PaymentMethod,
		donation.Message,
		donation.IsAnonymous,
		donation.Status,
	).Scan(&donation.ID, &donation.CreatedAt, &donation.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*Donation, error) {
	query := `SELECT` + donationColumns + `
		FROM donations
		WHERE id = $1`

	var donation Donation
	err := r.db.GetContext(ctx, &donation, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get donation: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}

	return &donation, nil
}

// ConfirmPending performs the guarded PENDING → CONFIRMED transition. The
// status predicate in the WHERE clause is what makes confirmation
// at-most-once: a concurrent confirm loses the race, matches zero rows,
// and surfaces as a conflict.
func (r *repository) ConfirmPending(
	ctx context.Context,
	id int64,
	txHash string,
	providerTransactionID *string,
) (*Donation, error) {
	query := `
		UPDATE donations
		SET status = 'CONFIRMED',
			tx_hash = $2,
			provider_transaction_id = $3,
			confirmed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING` + donationColumns

	var donation Donation
	err := r.db.QueryRowxContext(ctx, query, id, txHash, providerTransactionID).
		StructScan(&donation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.classifyGuardMiss(ctx, id, "confirm donation")
	}
	if err != nil {
		if user.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("confirm donation: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("confirm donation: %w", err)
	}

	return &donation, nil
}

func (r *repository) CancelPending(
	ctx context.Context,
	id int64,
) (*Donation, error) {
	query := `
		UPDATE donations
		SET status = 'CANCELLED', updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING` + donationColumns

	var donation Donation
	err := r.db.QueryRowxContext(ctx, query, id).StructScan(&donation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.classifyGuardMiss(ctx, id, "cancel donation")
	}
	if err != nil {
		return nil, fmt.Errorf("cancel donation: %w", err)
	}

	return &donation, nil
}

// classifyGuardMiss distinguishes a donation that never existed from one
// already in a terminal state.
func (r *repository) classifyGuardMiss(
	ctx context.Context,
	id int64,
	op string,
) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM donations WHERE id = $1)`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return fmt.Errorf("%s: already resolved: %w", op, core.ErrConflict)
}

func (r *repository) AddProjectFunding(
	ctx context.Context,
	projectID int64,
	amount float64,
) error {
	query := `
		UPDATE projects
		SET funding_raised = funding_raised + $2, updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, projectID, amount); err != nil {
		return fmt.Errorf("add project funding: %w", err)
	}

	return nil
}

func (r *repository) AddCampaignFunding(
	ctx context.Context,
	campaignID int64,
	amount float64,
) error {
	query := `
		UPDATE campaigns
		SET funding_raised = funding_raised + $2, updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, campaignID, amount); err != nil {
		return fmt.Errorf("add campaign funding: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListDonationsParams,
) ([]Donation, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	argN := 1

	if params.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, params.Status)
		argN++
	}
	if params.ProjectID != 0 {
		where += fmt.Sprintf(" AND project_id = $%d", argN)
		args = append(args, params.ProjectID)
		argN++
	}
	if params.PostID != 0 {
		where += fmt.Sprintf(" AND post_id = $%d", argN)
		args = append(args, params.PostID)
		argN++
	}
	if params.CampaignID != 0 {
		where += fmt.Sprintf(" AND campaign_id = $%d", argN)
		args = append(args, params.CampaignID)
		argN++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM donations" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count donations: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT%s
		FROM donations%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		donationColumns, where, argN, argN+1,
	)
	args = append(args, params.PageSize, params.Offset())

	var donations []Donation
	if err := r.db.SelectContext(ctx, &donations, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list donations: %w", err)
	}

	return donations, total, nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total_count,
			COUNT(*) FILTER (WHERE status = 'CONFIRMED') AS confirmed_count,
			COALESCE(SUM(amount) FILTER (WHERE status = 'CONFIRMED'), 0)
				AS confirmed_amount
		FROM donations`

	var stats Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("donation stats: %w", err)
	}

	return &stats, nil
}
