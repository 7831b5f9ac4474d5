package domain

import "time"

// AttendanceMethod records how a clock event was captured.
type AttendanceMethod string

const (
	AttendanceManual AttendanceMethod = "manual"
	AttendanceBadge  AttendanceMethod = "badge"
)

// AttendanceRecord is one clock-in/clock-out pair for an employee. An open
// record has a nil ClockOutAt; an employee may have at most one open record.
type AttendanceRecord struct {
	AttendanceID  string           `json:"attendanceID"` // Primary Key (UUID)
	EmployeeID    string           `json:"employeeID"`
	ClockInAt     time.Time        `json:"clockInAt"`
	ClockOutAt    *time.Time       `json:"clockOutAt,omitempty"`
	Method        AttendanceMethod `json:"method"`
	WorkedMinutes int              `json:"workedMinutes"` // Set on clock-out
	Notes         string           `json:"notes,omitempty"`
}
