package models

import (
	"database/sql"
)

// Employee is the row shape of the employees table. Permissions stay raw
// JSONB here; parsing into the typed tree happens in mapping, so raw JSON
// never crosses the repository boundary.
type Employee struct {
	EmployeeID          string       `db:"employee_id"`
	Username            string       `db:"username"`
	PasswordHash        string       `db:"password_hash"`
	FirstName           string       `db:"first_name"`
	LastName            string       `db:"last_name"`
	Email               string       `db:"email"`
	Phone               string       `db:"phone"`
	EmployeeCode        string       `db:"employee_code"`
	JobTitle            string       `db:"job_title"`
	Role                string       `db:"role"`
	PermissionsJSON     []byte       `db:"permissions"` // JSONB column
	IsActive            bool         `db:"is_active"`
	IsLocked            bool         `db:"is_locked"`
	FailedLoginAttempts int          `db:"failed_login_attempts"`
	LastLoginAt         sql.NullTime `db:"last_login_at"`
	DeletedAt           sql.NullTime `db:"deleted_at"`
	AuditFields
}
