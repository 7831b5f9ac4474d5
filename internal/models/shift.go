package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Shift is the row shape of the cash_register_sessions table.
type Shift struct {
	ShiftID       string          `db:"shift_id"`
	TerminalID    string          `db:"terminal_id"`
	OpenedBy      string          `db:"opened_by"`
	ClosedBy      sql.NullString  `db:"closed_by"`
	Status        string          `db:"status"`
	OpeningFloat  decimal.Decimal `db:"opening_float"`
	ClosingAmount decimal.Decimal `db:"closing_amount"`
	SalesCount    int64           `db:"sales_count"`
	SalesAmount   decimal.Decimal `db:"sales_amount"`
	OpenedAt      time.Time       `db:"opened_at"`
	ClosedAt      sql.NullTime    `db:"closed_at"`
}

// AttendanceRecord is the row shape of the attendance_records table.
type AttendanceRecord struct {
	AttendanceID  string       `db:"attendance_id"`
	EmployeeID    string       `db:"employee_id"`
	ClockInAt     time.Time    `db:"clock_in_at"`
	ClockOutAt    sql.NullTime `db:"clock_out_at"`
	Method        string       `db:"method"`
	WorkedMinutes int          `db:"worked_minutes"`
	Notes         string       `db:"notes"`
}

// AuditLog is the row shape of the audit_logs table. Append-only.
type AuditLog struct {
	AuditID    string         `db:"audit_id"`
	ActorID    sql.NullString `db:"actor_id"`
	Action     string         `db:"action"`
	Module     string         `db:"module"`
	EntityType string         `db:"entity_type"`
	EntityID   string         `db:"entity_id"`
	Status     string         `db:"status"`
	Details    string         `db:"details"`
	OccurredAt time.Time      `db:"occurred_at"`
}
