// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID            int64      `db:"id"`
	Username      string     `db:"username"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password_hash"`
	FullName      *string    `db:"full_name"`
	Phone         *string    `db:"phone"`
	Role          string     `db:"role"`
	Status        string     `db:"status"`
	EmailVerified bool       `db:"email_verified"`
	LastLogin     *time.Time `db:"last_login"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleGuest       = "GUEST"
	RoleBaseUser    = "BASE_USER"
	RoleStudent     = "STUDENT"
	RoleAdmin       = "ADMIN"
	RoleInstitution = "INSTITUTION"
	RoleSponsor     = "SPONSOR"
)

const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusPending   = "PENDING"
	StatusSuspended = "SUSPENDED"
)

func ValidRole(role string) bool {
	switch role {
	case RoleGuest, RoleBaseUser, RoleStudent, RoleAdmin,
		RoleInstitution, RoleSponsor:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusPending, StatusSuspended:
		return true
	}
	return false
}
