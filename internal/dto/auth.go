package dto

import (
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// LoginRequest carries the credentials posted by a terminal.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Employee  EmployeeResponse `json:"employee"`
}

// ChangePasswordRequest carries an old/new password pair.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// CreateEmployeeRequest defines the data needed to register a new employee.
type CreateEmployeeRequest struct {
	Username     string      `json:"username" binding:"required,min=3"`
	Password     string      `json:"password" binding:"required,min=8"`
	FirstName    string      `json:"firstName" binding:"required"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email" binding:"omitempty,email"`
	Phone        string      `json:"phone"`
	EmployeeCode string      `json:"employeeCode"`
	JobTitle     string      `json:"jobTitle"`
	Role         domain.Role `json:"role" binding:"required,oneof=admin manager cashier stock"`
}

// UpdateEmployeeRequest defines the data allowed for updating an employee.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateEmployeeRequest struct {
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	Email     *string      `json:"email" binding:"omitempty,email"`
	Phone     *string      `json:"phone"`
	JobTitle  *string      `json:"jobTitle"`
	Role      *domain.Role `json:"role" binding:"omitempty,oneof=admin manager cashier stock"`
	IsActive  *bool        `json:"isActive"`
}

// EmployeeResponse defines the data returned for an employee. The password
// hash never leaves the domain layer.
type EmployeeResponse struct {
	EmployeeID   string             `json:"employeeID"`
	Username     string             `json:"username"`
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	Email        string             `json:"email,omitempty"`
	Phone        string             `json:"phone,omitempty"`
	EmployeeCode string             `json:"employeeCode,omitempty"`
	JobTitle     string             `json:"jobTitle,omitempty"`
	Role         domain.Role        `json:"role"`
	Permissions  domain.Permissions `json:"permissions"`
	IsActive     bool               `json:"isActive"`
	LastLoginAt  *time.Time         `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ToEmployeeResponse converts a domain.Employee to EmployeeResponse DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:   e.EmployeeID,
		Username:     e.Username,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		EmployeeCode: e.EmployeeCode,
		JobTitle:     e.JobTitle,
		Role:         e.Role,
		Permissions:  e.Permissions,
		IsActive:     e.IsActive,
		LastLoginAt:  e.LastLoginAt,
		CreatedAt:    e.CreatedAt,
	}
}

// ToEmployeeResponses converts a slice of domain.Employee to []EmployeeResponse.
func ToEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = ToEmployeeResponse(&e)
	}
	return responses
}
