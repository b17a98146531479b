package domain

import "time"

// Role is the closed set of back-office roles. Authorization tables are written
// as total functions over this set; there is no dynamic role lookup.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole validates a role string coming off the wire.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleStaff:
		return Role(s), true
	default:
		return "", false
	}
}

// AccountStatus represents lifecycle states for a back-office account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Account is the persisted identity record for a cashier or administrator.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
