package domain

import (
	"strings"
	"time"
)

// Role is the coarse access role assigned to an employee.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
	RoleStock   Role = "stock"
)

// Permissions is the parsed permission tree stored per employee. Keys at the
// first level are module names ("sales", "products", ...), values are either
// nested maps or booleans. It is parsed once at the repository boundary; raw
// JSON never travels through business logic.
type Permissions map[string]any

// Allows navigates a dotted permission key ("sales.refund") through the tree.
// A missing node denies. The special "full_access" key grants everything.
func (p Permissions) Allows(key string) bool {
	if p == nil {
		return false
	}
	if full, ok := p["full_access"].(bool); ok && full {
		return true
	}
	var current any = map[string]any(p)
	for _, part := range strings.Split(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return false
		}
		current, ok = node[part]
		if !ok {
			return false
		}
	}
	granted, ok := current.(bool)
	return ok && granted
}

// Employee represents a staff member who can authenticate against the system.
// Cashiers, managers and stock clerks are all employees; the Role plus the
// Permissions tree decide what each of them may do.
type Employee struct {
	EmployeeID          string      `json:"employeeID"` // Primary Key (UUID)
	Username            string      `json:"username"`
	PasswordHash        string      `json:"-"`
	FirstName           string      `json:"firstName"`
	LastName            string      `json:"lastName"`
	Email               string      `json:"email"`
	Phone               string      `json:"phone"`
	EmployeeCode        string      `json:"employeeCode"` // Human-readable badge number
	JobTitle            string      `json:"jobTitle"`
	Role                Role        `json:"role"`
	Permissions         Permissions `json:"permissions"`
	IsActive            bool        `json:"isActive"`
	IsLocked            bool        `json:"isLocked"`
	FailedLoginAttempts int         `json:"failedLoginAttempts"`
	LastLoginAt         *time.Time  `json:"lastLoginAt,omitempty"`
	AuditFields
}

// FullName returns "First Last" for receipts and audit records.
func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// DefaultPermissions returns the fallback permission tree for a role when an
// employee row carries no explicit permissions.
func DefaultPermissions(role Role) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{"full_access": true}
	case RoleManager:
		return Permissions{
			"sales":    map[string]any{"process": true, "refund": true, "reports": true},
			"products": map[string]any{"view": true, "manage": true, "adjust_stock": true},
			"shifts":   map[string]any{"open": true, "close": true},
		}
	case RoleCashier:
		return Permissions{
			"sales":    map[string]any{"process": true, "refund": false, "reports": false},
			"products": map[string]any{"view": true, "manage": false, "adjust_stock": false},
			"shifts":   map[string]any{"open": true, "close": true},
		}
	case RoleStock:
		return Permissions{
			"sales":    map[string]any{"process": false},
			"products": map[string]any{"view": true, "manage": true, "adjust_stock": true},
		}
	default:
		return Permissions{}
	}
}
