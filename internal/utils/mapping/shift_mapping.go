package mapping

import (
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/models"
)

// ToModelShift converts a domain Shift to a model Shift
func ToModelShift(d domain.Shift) models.Shift {
	m := models.Shift{
		ShiftID:       d.ShiftID,
		TerminalID:    d.TerminalID,
		OpenedBy:      d.OpenedBy,
		ClosedBy:      nullString(d.ClosedBy),
		Status:        string(d.Status),
		OpeningFloat:  d.OpeningFloat,
		ClosingAmount: d.ClosingAmount,
		SalesCount:    d.SalesCount,
		SalesAmount:   d.SalesAmount,
		OpenedAt:      d.OpenedAt,
	}
	if d.ClosedAt != nil {
		m.ClosedAt.Time = *d.ClosedAt
		m.ClosedAt.Valid = true
	}
	return m
}

// ToDomainShift converts a model Shift to a domain Shift
func ToDomainShift(m models.Shift) domain.Shift {
	d := domain.Shift{
		ShiftID:       m.ShiftID,
		TerminalID:    m.TerminalID,
		OpenedBy:      m.OpenedBy,
		ClosedBy:      stringPtr(m.ClosedBy),
		Status:        domain.ShiftStatus(m.Status),
		OpeningFloat:  m.OpeningFloat,
		ClosingAmount: m.ClosingAmount,
		SalesCount:    m.SalesCount,
		SalesAmount:   m.SalesAmount,
		OpenedAt:      m.OpenedAt,
	}
	if m.ClosedAt.Valid {
		t := m.ClosedAt.Time
		d.ClosedAt = &t
	}
	return d
}

// ToModelAttendance converts a domain AttendanceRecord to its model
func ToModelAttendance(d domain.AttendanceRecord) models.AttendanceRecord {
	m := models.AttendanceRecord{
		AttendanceID:  d.AttendanceID,
		EmployeeID:    d.EmployeeID,
		ClockInAt:     d.ClockInAt,
		Method:        string(d.Method),
		WorkedMinutes: d.WorkedMinutes,
		Notes:         d.Notes,
	}
	if d.ClockOutAt != nil {
		m.ClockOutAt.Time = *d.ClockOutAt
		m.ClockOutAt.Valid = true
	}
	return m
}

// ToDomainAttendance converts a model AttendanceRecord to its domain type
func ToDomainAttendance(m models.AttendanceRecord) domain.AttendanceRecord {
	d := domain.AttendanceRecord{
		AttendanceID:  m.AttendanceID,
		EmployeeID:    m.EmployeeID,
		ClockInAt:     m.ClockInAt,
		Method:        domain.AttendanceMethod(m.Method),
		WorkedMinutes: m.WorkedMinutes,
		Notes:         m.Notes,
	}
	if m.ClockOutAt.Valid {
		t := m.ClockOutAt.Time
		d.ClockOutAt = &t
	}
	return d
}

// ToModelAuditLog converts a domain AuditEvent to its model
func ToModelAuditLog(d domain.AuditEvent) models.AuditLog {
	return models.AuditLog{
		AuditID:    d.AuditID,
		ActorID:    nullString(d.ActorID),
		Action:     d.Action,
		Module:     d.Module,
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Status:     string(d.Status),
		Details:    d.Details,
		OccurredAt: d.OccurredAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to its domain type
func ToDomainAuditLog(m models.AuditLog) domain.AuditEvent {
	return domain.AuditEvent{
		AuditID:    m.AuditID,
		ActorID:    stringPtr(m.ActorID),
		Action:     m.Action,
		Module:     m.Module,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Status:     domain.AuditStatus(m.Status),
		Details:    m.Details,
		OccurredAt: m.OccurredAt,
	}
}
