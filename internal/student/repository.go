// AngelaMos | 2026
// repository.go

package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/user"
)

const studentColumns = `
	id, user_id, school_name, school_email, admission_number, id_number,
	estimated_graduation_year, verification_status, verification_message,
	verified_by, verified_at, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, student *Student) error
	GetByUserID(ctx context.Context, userID int64) (*Student, error)
	SetVerification(
		ctx context.Context,
		userID, reviewerID int64,
		status string,
		message *string,
	) error
	ListPending(
		ctx context.Context,
		page, pageSize int,
	) ([]PendingStudent, int, error)
	CountPending(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, student *Student) error {
	query := `
		INSERT INTO students (
			user_id, school_name, school_email, admission_number,
			id_number, estimated_graduation_year, verification_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		student.UserID,
		student.SchoolName,
		student.SchoolEmail,
		student.AdmissionNumber,
		student.IDNumber,
		student.EstimatedGraduationYear,
		student.VerificationStatus,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if user.IsDuplicateKeyError(err) {
			return fmt.Errorf("create student: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID int64,
) (*Student, error) {
	query := `SELECT` + studentColumns + `
		FROM students
		WHERE user_id = $1`

	var student Student
	err := r.db.GetContext(ctx, &student, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get student: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}

	return &student, nil
}

func (r *repository) SetVerification(
	ctx context.Context,
	userID, reviewerID int64,
	status string,
	message *string,
) error {
	query := `
		UPDATE students
		SET verification_status = $2,
			verification_message = $3,
			verified_by = $4,
			verified_at = NOW(),
			updated_at = NOW()
		WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query,
		userID, status, message, reviewerID)
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set verification: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListPending(
	ctx context.Context,
	page, pageSize int,
) ([]PendingStudent, int, error) {
	total, err := r.CountPending(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			s.user_id, u.username, u.email, s.school_name, s.school_email,
			s.admission_number, s.estimated_graduation_year, s.created_at
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.verification_status = 'pending'
		ORDER BY s.created_at ASC
		LIMIT $1 OFFSET $2`

	var pending []PendingStudent
	err = r.db.SelectContext(ctx, &pending, query,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending students: %w", err)
	}

	return pending, total, nil
}

func (r *repository) CountPending(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM students WHERE verification_status = 'pending'`

	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count pending students: %w", err)
	}

	return count, nil
}
