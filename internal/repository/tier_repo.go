package repository

import (
	"stayloyal/internal/models"

	"gorm.io/gorm"
)

type TierRepository struct {
	db *gorm.DB
}

func NewTierRepository(db *gorm.DB) *TierRepository {
	return &TierRepository{db: db}
}

// List returns the ladder ascending by sort order.
func (r *TierRepository) List() ([]models.LoyaltyTier, error) {
	var tiers []models.LoyaltyTier
	err := r.db.Order("sort_order ASC").Find(&tiers).Error
	return tiers, err
}

// ListTx is List inside an existing transaction, for tier recomputation that
// must see the same snapshot as the triggering write.
func (r *TierRepository) ListTx(tx *gorm.DB) ([]models.LoyaltyTier, error) {
	var tiers []models.LoyaltyTier
	err := tx.Order("sort_order ASC").Find(&tiers).Error
	return tiers, err
}

func (r *TierRepository) GetByID(id string) (*models.LoyaltyTier, error) {
	var t models.LoyaltyTier
	if err := r.db.Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetDefault returns the tier flagged as the enrollment default, or nil when
// none is flagged.
func (r *TierRepository) GetDefault(tx *gorm.DB) (*models.LoyaltyTier, error) {
	var t models.LoyaltyTier
	err := tx.Where("is_default = ?", true).Order("sort_order ASC").First(&t).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update applies a partial update. When is_default flips to true the flag is
// cleared on every other tier in the same transaction, keeping a single
// default tier.
func (r *TierRepository) Update(id string, fields map[string]interface{}) (*models.LoyaltyTier, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if isDefault, ok := fields["is_default"].(bool); ok && isDefault {
			if err := tx.Model(&models.LoyaltyTier{}).Where("id <> ?", id).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.LoyaltyTier{}).Where("id = ?", id).Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}
