package domain

import "time"

// AuditStatus is the outcome recorded for an audited action.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditFailure AuditStatus = "failure"
	AuditWarning AuditStatus = "warning"
)

// AuditEvent is an append-only trail record. ActorID is nil for system
// events. Writing the trail is best-effort everywhere: a failed audit insert
// is logged and never propagated.
type AuditEvent struct {
	AuditID    string      `json:"auditID"` // Primary Key (UUID)
	ActorID    *string     `json:"actorID,omitempty"`
	Action     string      `json:"action"` // e.g. "process_sale", "login"
	Module     string      `json:"module"` // e.g. "sales", "auth", "inventory"
	EntityType string      `json:"entityType,omitempty"`
	EntityID   string      `json:"entityID,omitempty"`
	Status     AuditStatus `json:"status"`
	Details    string      `json:"details"`
	OccurredAt time.Time   `json:"occurredAt"`
}
