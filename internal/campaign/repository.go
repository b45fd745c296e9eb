// AngelaMos | 2026
// repository.go

package campaign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fundlift/backend/internal/core"
)

const campaignColumns = `
	id, created_by, name, description, reward_pool, funding_raised,
	currency, status, is_featured, views_count, starts_at, ends_at,
	created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id int64) (*Campaign, error)
	GetByIDAndBumpViews(ctx context.Context, id int64) (*Campaign, error)
	Update(ctx context.Context, campaign *Campaign) error
	Delete(ctx context.Context, id int64) error
	List(
		ctx context.Context,
		params ListCampaignsParams,
	) ([]Campaign, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, campaign *Campaign) error {
	query := `
		INSERT INTO campaigns (
			created_by, name, description, reward_pool, currency,
			status, is_featured, starts_at, ends_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING id, funding_raised, views_count, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		campaign.CreatedBy,
		campaign.Name,
		campaign.Description,
		campaign.RewardPool,
		campaign.Currency,
		campaign.Status,
		campaign.IsFeatured,
		campaign.StartsAt,
		campaign.EndsAt,
	).Scan(
		&campaign.ID,
		&campaign.FundingRaised,
		&campaign.ViewsCount,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*Campaign, error) {
	query := `SELECT` + campaignColumns + `
		FROM campaigns
		WHERE id = $1`

	var campaign Campaign
	err := r.db.GetContext(ctx, &campaign, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get campaign: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}

	return &campaign, nil
}

func (r *repository) GetByIDAndBumpViews(
	ctx context.Context,
	id int64,
) (*Campaign, error) {
	query := `
		UPDATE campaigns
		SET views_count = views_count + 1
		WHERE id = $1
		RETURNING` + campaignColumns

	var campaign Campaign
	err := r.db.QueryRowxContext(ctx, query, id).StructScan(&campaign)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get campaign: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}

	return &campaign, nil
}

func (r *repository) Update(ctx context.Context, campaign *Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $2,
			description = $3,
			reward_pool = $4,
			status = $5,
			is_featured = $6,
			starts_at = $7,
			ends_at = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		campaign.ID,
		campaign.Name,
		campaign.Description,
		campaign.RewardPool,
		campaign.Status,
		campaign.IsFeatured,
		campaign.StartsAt,
		campaign.EndsAt,
	).Scan(&campaign.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update campaign: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete campaign: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListCampaignsParams,
) ([]Campaign, int, error) {
	where := ""
	args := []any{}
	argN := 1

	if params.Status != "" {
		where = fmt.Sprintf(" WHERE status = $%d", argN)
		args = append(args, params.Status)
		argN++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM campaigns" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT%s
		FROM campaigns%s
		ORDER BY is_featured DESC, created_at DESC
		LIMIT $%d OFFSET $%d`,
		campaignColumns, where, argN, argN+1,
	)
	args = append(args, params.PageSize, params.Offset())

	var campaigns []Campaign
	if err := r.db.SelectContext(ctx, &campaigns, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}

	return campaigns, total, nil
}
