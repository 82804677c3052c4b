package models

import (
	"time"

	"stayloyal/internal/domain"

	"gorm.io/gorm"
)

// StaffUser is a hotel employee account used by the staff screens.
type StaffUser struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string         `gorm:"size:128" json:"name"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // MANAGER | RECEPTION
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (StaffUser) TableName() string {
	return "staff_users"
}

func (u *StaffUser) IsManager() bool { return u.Role == domain.RoleManager }
