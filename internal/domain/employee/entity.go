package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

// Employee is a read model over the account service's user records.
// Accounts are created and maintained elsewhere; this core only resolves
// and references them.
type Employee struct {
	ID       string
	AdminID  string
	Name     string
	Email    string
	Salary   decimal.Decimal
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
