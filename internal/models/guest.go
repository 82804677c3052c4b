package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guest holds the hotel guest row. Profile fields (name, contact) are owned
// by the front-desk flows; the loyalty_* columns are owned by the loyalty
// engine and only ever change inside its transactions.
type Guest struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	FirstName string         `gorm:"size:64;not null" json:"first_name"`
	LastName  string         `gorm:"size:64;not null" json:"last_name"`
	Email     *string        `gorm:"size:255;index" json:"email"`
	Phone     *string        `gorm:"size:32" json:"phone"`
	Birthday  *time.Time     `json:"birthday"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Loyalty account. Absent card number = not enrolled. The card number is
	// assigned once and never reused; TotalPoints and TotalStays only grow.
	LoyaltyCardNumber *string    `gorm:"uniqueIndex;size:32" json:"loyalty_card_number"`
	LoyaltyPoints     int        `gorm:"not null;default:0" json:"loyalty_points"`
	LoyaltyTotal      int        `gorm:"column:loyalty_total_points;not null;default:0" json:"loyalty_total_points"`
	LoyaltyStays      int        `gorm:"column:loyalty_total_stays;not null;default:0" json:"loyalty_total_stays"`
	LoyaltyTierID     *string    `gorm:"size:36;index" json:"loyalty_tier_id"`
	LoyaltyEnrolledAt *time.Time `json:"loyalty_enrolled_at"`

	LoyaltyTier *LoyaltyTier `gorm:"foreignKey:LoyaltyTierID" json:"loyalty_tier,omitempty"`
}

func (Guest) TableName() string {
	return "guests"
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

func (g *Guest) IsEnrolled() bool {
	return g.LoyaltyCardNumber != nil && *g.LoyaltyCardNumber != ""
}
