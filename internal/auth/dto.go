// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type SignupRequest struct {
	Username string  `json:"username"  validate:"required,min=3,max=50"`
	Email    string  `json:"email"     validate:"required,email,max=255"`
	Password string  `json:"password"  validate:"required,min=8,max=128"`
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone"     validate:"omitempty,max=20"`
}

type StudentRegisterRequest struct {
	Username                string  `json:"username"                  validate:"required,min=3,max=50"`
	Email                   string  `json:"email"                     validate:"required,email,max=255"`
	Password                string  `json:"password"                  validate:"required,min=8,max=128"`
	FullName                *string `json:"full_name"                 validate:"omitempty,min=1,max=100"`
	Phone                   *string `json:"phone"                     validate:"omitempty,max=20"`
	SchoolName              string  `json:"school_name"               validate:"required,min=2,max=255"`
	SchoolEmail             string  `json:"school_email"              validate:"required,email,max=255"`
	AdmissionNumber         string  `json:"admission_number"          validate:"required,min=1,max=100"`
	IDNumber                *string `json:"id_number"                 validate:"omitempty,max=50"`
	EstimatedGraduationYear *int    `json:"estimated_graduation_year" validate:"omitempty,gte=2000,lte=2100"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone"     validate:"omitempty,max=20"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type ProfileResponse struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FullName      *string    `json:"full_name,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	EmailVerified bool       `json:"email_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AuthResponse struct {
	User   ProfileResponse `json:"user"`
	Tokens TokenResponse   `json:"tokens"`
}

type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=128"`
}

func toProfileResponse(u *UserInfo) ProfileResponse {
	return ProfileResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          u.Role,
		Status:        u.Status,
		EmailVerified: u.EmailVerified,
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
	}
}
