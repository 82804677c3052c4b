package repository

import (
	"encoding/json"

	"stayloyal/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Record writes one audit entry. oldValue/newValue are marshalled to JSON;
// a nil value stores as SQL NULL.
func (r *AuditLogRepository) Record(userID *uint, actionType, entityType, entityID string, oldValue, newValue interface{}, ip string) error {
	entry := models.AuditLog{
		UserID:     userID,
		ActionType: actionType,
		EntityType: entityType,
		EntityID:   entityID,
		OldValue:   toJSON(oldValue),
		NewValue:   toJSON(newValue),
		IP:         ip,
	}
	return r.db.Create(&entry).Error
}

// ListByEntity returns recent audit entries for one entity, newest first.
func (r *AuditLogRepository) ListByEntity(entityType, entityID string, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
