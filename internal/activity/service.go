// AngelaMos | 2026
// service.go

package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends one activity row. Callers treat this as best-effort
// bookkeeping; failures are logged here so call sites don't have to.
func (s *Service) Record(
	ctx context.Context,
	userID *int64,
	activityType string,
	metadata map[string]any,
) {
	raw, err := json.Marshal(metadata)
	if err != nil {
		slog.Warn("activity metadata marshal failed",
			"activity_type", activityType,
			"error", err,
		)
		raw = []byte("{}")
	}

	log := &Log{
		UserID:       userID,
		ActivityType: activityType,
		Metadata:     raw,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		slog.Warn("activity log write failed",
			"activity_type", activityType,
			"error", err,
		)
	}
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]Log, int, error) {
	params.Normalize()

	logs, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}

	return logs, total, nil
}
