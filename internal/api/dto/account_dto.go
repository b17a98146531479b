package dto

import (
	"time"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

// AccountCreateRequest payload for admin-provisioned accounts.
type AccountCreateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AccountStatusRequest payload for activating/deactivating an account.
type AccountStatusRequest struct {
	Status string `json:"status"`
}

// AccountResponse is the wire view of an account. Password hashes never leave
// the service.
type AccountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccountResponse maps a domain account to its wire view.
func NewAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      string(a.Role),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
