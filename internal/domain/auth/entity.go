package auth

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCollector  Role = "collector"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCollector, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// Staff is an operational user: collectors record pickups, supervisors
// run assessments, admins manage accounts and staff.
type Staff struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
