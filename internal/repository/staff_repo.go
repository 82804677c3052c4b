package repository

import (
	"stayloyal/internal/models"

	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) GetByEmail(email string) (*models.StaffUser, error) {
	var u models.StaffUser
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *StaffRepository) GetByID(id uint) (*models.StaffUser, error) {
	var u models.StaffUser
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *StaffRepository) Create(u *models.StaffUser) error {
	return r.db.Create(u).Error
}
