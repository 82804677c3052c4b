package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records one mutation: who, what entity, old vs new snapshot.
// Writes are best-effort; the primary operation never rolls back on an
// audit failure.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     *uint          `gorm:"index" json:"user_id"`
	ActionType string         `gorm:"size:20;not null;index" json:"action_type"` // CREATE | UPDATE
	EntityType string         `gorm:"size:64;not null;index" json:"entity_type"`
	EntityID   string         `gorm:"size:64;index" json:"entity_id"`
	OldValue   datatypes.JSON `json:"old_value"`
	NewValue   datatypes.JSON `json:"new_value"`
	IP         string         `gorm:"size:45" json:"ip"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
