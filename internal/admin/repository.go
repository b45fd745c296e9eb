// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/fundlift/backend/internal/core"
)

type PlatformStats struct {
	TotalUsers           int     `db:"total_users"            json:"total_users"`
	TotalStudents        int     `db:"total_students"         json:"total_students"`
	TotalProjects        int     `db:"total_projects"         json:"total_projects"`
	TotalDonations       int     `db:"total_donations"        json:"total_donations"`
	TotalAmount          float64 `db:"total_amount"           json:"total_amount"`
	PendingVerifications int     `db:"pending_verifications"  json:"pending_verifications"`
}

type StatsRepository interface {
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}

type statsRepository struct {
	db core.DBTX
}

func NewStatsRepository(db core.DBTX) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) PlatformStats(
	ctx context.Context,
) (*PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM students) AS total_students,
			(SELECT COUNT(*) FROM projects) AS total_projects,
			(SELECT COUNT(*) FROM donations) AS total_donations,
			(SELECT COALESCE(SUM(amount), 0)
				FROM donations WHERE status = 'CONFIRMED') AS total_amount,
			(SELECT COUNT(*) FROM students
				WHERE verification_status = 'pending')
				AS pending_verifications`

	var stats PlatformStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}

	return &stats, nil
}
