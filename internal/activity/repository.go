// AngelaMos | 2026
// repository.go

package activity

import (
	"context"
	"fmt"

	"github.com/fundlift/backend/internal/core"
)

type ListParams struct {
	Page         int
	PageSize     int
	UserID       int64
	ActivityType string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Repository interface {
	Create(ctx context.Context, log *Log) error
	List(ctx context.Context, params ListParams) ([]Log, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, log *Log) error {
	query := `
		INSERT INTO activity_logs (user_id, activity_type, metadata)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		log.UserID,
		log.ActivityType,
		log.Metadata,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Log, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	argN := 1

	if params.UserID != 0 {
		where += fmt.Sprintf(" AND user_id = $%d", argN)
		args = append(args, params.UserID)
		argN++
	}
	if params.ActivityType != "" {
		where += fmt.Sprintf(" AND activity_type = $%d", argN)
		args = append(args, params.ActivityType)
		argN++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM activity_logs" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT id, user_id, activity_type, metadata, created_at
		FROM activity_logs%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		where, argN, argN+1,
	)
	args = append(args, params.PageSize, params.Offset())

	var logs []Log
	if err := r.db.SelectContext(ctx, &logs, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}

	return logs, total, nil
}
