package dto

import (
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// ClockInRequest defines the data for a clock-in event.
type ClockInRequest struct {
	Method domain.AttendanceMethod `json:"method" binding:"omitempty,oneof=manual badge"`
	Notes  string                  `json:"notes"`
}

// AttendanceResponse defines the data returned for one attendance record.
type AttendanceResponse struct {
	AttendanceID  string                  `json:"attendanceID"`
	EmployeeID    string                  `json:"employeeID"`
	ClockInAt     time.Time               `json:"clockInAt"`
	ClockOutAt    *time.Time              `json:"clockOutAt,omitempty"`
	Method        domain.AttendanceMethod `json:"method"`
	WorkedMinutes int                     `json:"workedMinutes"`
	Notes         string                  `json:"notes,omitempty"`
}

// ToAttendanceResponse converts a domain.AttendanceRecord to its DTO.
func ToAttendanceResponse(r *domain.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID:  r.AttendanceID,
		EmployeeID:    r.EmployeeID,
		ClockInAt:     r.ClockInAt,
		ClockOutAt:    r.ClockOutAt,
		Method:        r.Method,
		WorkedMinutes: r.WorkedMinutes,
		Notes:         r.Notes,
	}
}

// ToAttendanceResponses converts a slice of records to DTOs.
func ToAttendanceResponses(records []domain.AttendanceRecord) []AttendanceResponse {
	responses := make([]AttendanceResponse, len(records))
	for i, r := range records {
		responses[i] = ToAttendanceResponse(&r)
	}
	return responses
}
