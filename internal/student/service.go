// AngelaMos | 2026
// service.go

package student

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fundlift/backend/internal/activity"
	"github.com/fundlift/backend/internal/auth"
	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/events"
	"github.com/fundlift/backend/internal/middleware"
	"github.com/fundlift/backend/internal/user"
)

type Service struct {
	db       *sqlx.DB
	repo     Repository
	activity *activity.Service
	events   events.Publisher
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	activitySvc *activity.Service,
	publisher events.Publisher,
) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		activity: activitySvc,
		events:   publisher,
	}
}

// RegisterStudent creates the account and the pending student profile in
// one transaction so a duplicate school email cannot leave an orphaned
// user row behind.
func (s *Service) RegisterStudent(
	ctx context.Context,
	params auth.StudentRegistrationParams,
) (*auth.UserInfo, error) {
	newUser := &user.User{
		Username:     params.Username,
		Email:        strings.ToLower(params.Email),
		PasswordHash: params.PasswordHash,
		FullName:     params.FullName,
		Phone:        params.Phone,
		Role:         user.RoleBaseUser,
		Status:       user.StatusActive,
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := user.NewRepository(tx).Create(ctx, newUser); err != nil {
			return err
		}

		profile := &Student{
			UserID:                  newUser.ID,
			SchoolName:              params.SchoolName,
			SchoolEmail:             strings.ToLower(params.SchoolEmail),
			AdmissionNumber:         params.AdmissionNumber,
			IDNumber:                params.IDNumber,
			EstimatedGraduationYear: params.EstimatedGraduationYear,
			VerificationStatus:      VerificationPending,
		}

		return NewRepository(tx).Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &newUser.ID, activity.TypeStudentRegistered,
		map[string]any{
			"username":    newUser.Username,
			"school_name": params.SchoolName,
		})

	return &auth.UserInfo{
		ID:           newUser.ID,
		Username:     newUser.Username,
		Email:        newUser.Email,
		FullName:     newUser.FullName,
		Phone:        newUser.Phone,
		PasswordHash: newUser.PasswordHash,
		Role:         newUser.Role,
		Status:       newUser.Status,
		CreatedAt:    newUser.CreatedAt,
	}, nil
}

var _ auth.StudentRegistrar = (*Service)(nil)

// IsVerifiedStudent reports the live verification state. No profile means
// not a student, not an error.
func (s *Service) IsVerifiedStudent(
	ctx context.Context,
	userID int64,
) (bool, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check student: %w", err)
	}

	return profile.IsVerified(), nil
}

var _ middleware.StudentChecker = (*Service)(nil)

func (s *Service) GetStatus(
	ctx context.Context,
	userID int64,
) (*StatusResponse, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toStatusResponse(profile), nil
}

// Review resolves a pending verification. Approval flips the profile to
// verified and promotes the user's role to STUDENT inside the same
// transaction. A profile already reviewed cannot be reviewed again.
func (s *Service) Review(
	ctx context.Context,
	reviewerID int64,
	req VerifyStudentRequest,
) (*StatusResponse, error) {
	profile, err := s.repo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if !profile.IsPending() {
		return nil, fmt.Errorf(
			"review student: already %s: %w",
			profile.VerificationStatus,
			core.ErrConflict,
		)
	}

	newStatus := VerificationRejected
	if req.Approve {
		newStatus = VerificationVerified
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txStudents := NewRepository(tx)
		if err := txStudents.SetVerification(
			ctx, req.UserID, reviewerID, newStatus, req.Message,
		); err != nil {
			return err
		}

		if !req.Approve {
			return nil
		}

		txUsers := user.NewRepository(tx)
		reviewed, err := txUsers.GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}

		if reviewed.Role != user.RoleStudent {
			return txUsers.UpdateRole(ctx, req.UserID, user.RoleStudent)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	activityType := activity.TypeStudentRejected
	if req.Approve {
		activityType = activity.TypeStudentVerified
	}
	s.activity.Record(ctx, &req.UserID, activityType, map[string]any{
		"reviewer_id": reviewerID,
		"status":      newStatus,
	})

	if req.Approve {
		if err := s.events.Publish(ctx, events.KeyStudentVerified, map[string]any{
			"user_id":     req.UserID,
			"reviewer_id": reviewerID,
		}); err != nil {
			slog.Warn("student verified event publish failed",
				"user_id", req.UserID,
				"error", err,
			)
		}
	}

	return s.GetStatus(ctx, req.UserID)
}

func (s *Service) ListPending(
	ctx context.Context,
	page, pageSize int,
) ([]PendingStudent, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return s.repo.ListPending(ctx, page, pageSize)
}

func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountPending(ctx)
}
