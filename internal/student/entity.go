// AngelaMos | 2026
// entity.go

package student

import (
	"time"
)

// Verification states. "verified" is the approved terminal state; rejected
// profiles stay rejected.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

type Student struct {
	ID                      int64      `db:"id"`
	UserID                  int64      `db:"user_id"`
	SchoolName              string     `db:"school_name"`
	SchoolEmail             string     `db:"school_email"`
	AdmissionNumber         string     `db:"admission_number"`
	IDNumber                *string    `db:"id_number"`
	EstimatedGraduationYear *int       `db:"estimated_graduation_year"`
	VerificationStatus      string     `db:"verification_status"`
	VerificationMessage     *string    `db:"verification_message"`
	VerifiedBy              *int64     `db:"verified_by"`
	VerifiedAt              *time.Time `db:"verified_at"`
	CreatedAt               time.Time  `db:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at"`
}

func (s *Student) IsVerified() bool {
	return s.VerificationStatus == VerificationVerified
}

func (s *Student) IsPending() bool {
	return s.VerificationStatus == VerificationPending
}
