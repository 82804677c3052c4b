package repository

import (
	"stayloyal/internal/models"

	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) Create(g *models.Guest) error {
	return r.db.Create(g).Error
}

func (r *GuestRepository) GetByID(id string) (*models.Guest, error) {
	var g models.Guest
	if err := r.db.Preload("LoyaltyTier").Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// GetForUpdate loads the guest row under a row lock inside tx. Every ledger
// mutation goes through this so that operations on the same account
// serialize.
func (r *GuestRepository) GetForUpdate(tx *gorm.DB, id string) (*models.Guest, error) {
	var g models.Guest
	if err := forUpdate(tx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateLoyalty writes the given loyalty columns inside tx.
func (r *GuestRepository) UpdateLoyalty(tx *gorm.DB, id string, fields map[string]interface{}) error {
	return tx.Model(&models.Guest{}).Where("id = ?", id).Updates(fields).Error
}
