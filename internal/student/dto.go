// AngelaMos | 2026
// dto.go

package student

import (
	"time"
)

type VerifyStudentRequest struct {
	UserID  int64   `json:"user_id" validate:"required,gt=0"`
	Approve bool    `json:"approve"`
	Message *string `json:"message" validate:"omitempty,max=500"`
}

type StatusResponse struct {
	UserID              int64      `json:"user_id"`
	SchoolName          string     `json:"school_name"`
	SchoolEmail         string     `json:"school_email"`
	VerificationStatus  string     `json:"verification_status"`
	VerificationMessage *string    `json:"verification_message,omitempty"`
	VerifiedAt          *time.Time `json:"verified_at,omitempty"`
}

type PendingStudent struct {
	UserID                  int64     `json:"user_id"      db:"user_id"`
	Username                string    `json:"username"     db:"username"`
	Email                   string    `json:"email"        db:"email"`
	SchoolName              string    `json:"school_name"  db:"school_name"`
	SchoolEmail             string    `json:"school_email" db:"school_email"`
	AdmissionNumber         string    `json:"admission_number" db:"admission_number"`
	EstimatedGraduationYear *int      `json:"estimated_graduation_year,omitempty" db:"estimated_graduation_year"`
	CreatedAt               time.Time `json:"created_at"   db:"created_at"`
}

func toStatusResponse(s *Student) *StatusResponse {
	return &StatusResponse{
		UserID:              s.UserID,
		SchoolName:          s.SchoolName,
		SchoolEmail:         s.SchoolEmail,
		VerificationStatus:  s.VerificationStatus,
		VerificationMessage: s.VerificationMessage,
		VerifiedAt:          s.VerifiedAt,
	}
}
