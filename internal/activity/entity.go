// AngelaMos | 2026
// entity.go

package activity

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	TypeUserLogin         = "user_login"
	TypeStudentRegistered = "student_registered"
	TypeStudentVerified   = "student_verified"
	TypeStudentRejected   = "student_rejected"
	TypeDonationInitiated = "donation_initiated"
	TypeDonationConfirmed = "donation_confirmed"
	TypeDonationCancelled = "donation_cancelled"
	TypeWalletConnected   = "wallet_connected"
)

type Log struct {
	ID           int64          `db:"id"`
	UserID       *int64         `db:"user_id"`
	ActivityType string         `db:"activity_type"`
	Metadata     types.JSONText `db:"metadata"`
	CreatedAt    time.Time      `db:"created_at"`
}
