package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminStatus is the state of a dashboard admin account.
type AdminStatus string

const (
	AdminStatusActive    AdminStatus = "ACTIVE"
	AdminStatusSuspended AdminStatus = "SUSPENDED"
)

// AdminRole controls which dashboard operations an admin may perform.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "SUPER_ADMIN"
	AdminRoleOperator   AdminRole = "OPERATOR"
	AdminRoleSupport    AdminRole = "SUPPORT"
)

// AdminUser is a dashboard operator account.
type AdminUser struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"` // Never expose
	DisplayName  string      `json:"display_name"`
	Role         AdminRole   `json:"role"`
	Status       AdminStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// IsActive returns true if the admin account is active.
func (a *AdminUser) IsActive() bool {
	return a.Status == AdminStatusActive
}
