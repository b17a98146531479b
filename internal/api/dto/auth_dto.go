package dto

import (
	"time"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for new staff accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      *domain.Principal `json:"user"`
}

// ChangePasswordRequest payload for authenticated password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ResetRequest payload for requesting a password reset token.
type ResetRequest struct {
	Email string `json:"email"`
}

// ResetConfirmRequest payload for consuming a reset token.
type ResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
