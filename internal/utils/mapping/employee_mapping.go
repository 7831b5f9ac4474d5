package mapping

import (
	"encoding/json"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) (models.Employee, error) {
	permsJSON, err := json.Marshal(d.Permissions)
	if err != nil {
		return models.Employee{}, err
	}
	m := models.Employee{
		EmployeeID:          d.EmployeeID,
		Username:            d.Username,
		PasswordHash:        d.PasswordHash,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		Email:               d.Email,
		Phone:               d.Phone,
		EmployeeCode:        d.EmployeeCode,
		JobTitle:            d.JobTitle,
		Role:                string(d.Role),
		PermissionsJSON:     permsJSON,
		IsActive:            d.IsActive,
		IsLocked:            d.IsLocked,
		FailedLoginAttempts: d.FailedLoginAttempts,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
	if d.LastLoginAt != nil {
		m.LastLoginAt.Time = *d.LastLoginAt
		m.LastLoginAt.Valid = true
	}
	return m, nil
}

// ToDomainEmployee converts a model Employee to a domain Employee. The JSONB
// permissions column is parsed here, once; an empty or invalid column falls
// back to the role's default tree.
func ToDomainEmployee(m models.Employee) domain.Employee {
	role := domain.Role(m.Role)

	var perms domain.Permissions
	if len(m.PermissionsJSON) > 0 {
		if err := json.Unmarshal(m.PermissionsJSON, &perms); err != nil {
			perms = nil
		}
	}
	if perms == nil {
		perms = domain.DefaultPermissions(role)
	}

	d := domain.Employee{
		EmployeeID:          m.EmployeeID,
		Username:            m.Username,
		PasswordHash:        m.PasswordHash,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		Phone:               m.Phone,
		EmployeeCode:        m.EmployeeCode,
		JobTitle:            m.JobTitle,
		Role:                role,
		Permissions:         perms,
		IsActive:            m.IsActive,
		IsLocked:            m.IsLocked,
		FailedLoginAttempts: m.FailedLoginAttempts,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
	if m.LastLoginAt.Valid {
		t := m.LastLoginAt.Time
		d.LastLoginAt = &t
	}
	return d
}
