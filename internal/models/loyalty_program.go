package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoyaltyProgram is the program configuration singleton (id "default").
// CardNumberNextSeq is the global card sequence; it only moves forward and
// must be advanced under a row lock (see ProgramRepository.AllocateCardNumber).
type LoyaltyProgram struct {
	ID                string          `gorm:"primaryKey;size:32" json:"id"`
	Name              string          `gorm:"size:128;not null" json:"name"`
	IsActive          bool            `gorm:"not null;default:true" json:"is_active"`
	PointsPerCurrency decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"points_per_currency"`
	PointsForCheckIn  int             `gorm:"not null;default:0" json:"points_for_check_in"`
	PointsForBirthday int             `gorm:"not null;default:0" json:"points_for_birthday"`
	TierMode          string          `gorm:"size:20;not null" json:"tier_calculation_mode"` // POINTS | STAYS | COMBINED
	CardNumberPrefix  string          `gorm:"size:16;not null" json:"card_number_prefix"`
	CardNumberNextSeq int             `gorm:"not null;default:1" json:"-"`
	TermsURL          *string         `gorm:"size:512" json:"terms_url"`
	WelcomeMessage    *string         `gorm:"type:text" json:"welcome_message"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (LoyaltyProgram) TableName() string {
	return "loyalty_programs"
}
