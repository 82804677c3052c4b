package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LoyaltyTier is one rung of the reward ladder. SortOrder ascends from the
// entry tier upward. Benefits holds an array of benefit codes (domain.Benefit*);
// CustomBenefits holds free-form {name, description} entries.
type LoyaltyTier struct {
	ID                 string           `gorm:"primaryKey;size:36" json:"id"`
	Name               string           `gorm:"size:64;not null" json:"name"`
	Code               string           `gorm:"uniqueIndex;size:32;not null" json:"code"`
	SortOrder          int              `gorm:"uniqueIndex;not null" json:"sort_order"`
	MinPoints          int              `gorm:"not null;default:0" json:"min_points"`
	MinStays           int              `gorm:"not null;default:0" json:"min_stays"`
	Color              *string          `gorm:"size:16" json:"color"`
	Icon               *string          `gorm:"size:16" json:"icon"`
	DiscountPercent    *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount_percent"`
	BonusPointsPercent *decimal.Decimal `gorm:"type:decimal(5,2)" json:"bonus_points_percent"` // applied to EARN amounts, floor rounding
	Benefits           datatypes.JSON   `json:"benefits"`
	CustomBenefits     datatypes.JSON   `json:"custom_benefits"`
	IsDefault          bool             `gorm:"not null;default:false" json:"is_default"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (LoyaltyTier) TableName() string {
	return "loyalty_tiers"
}

func (t *LoyaltyTier) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// BenefitCodes decodes the benefits column. A nil or malformed column reads
// as no benefits.
func (t *LoyaltyTier) BenefitCodes() []string {
	if len(t.Benefits) == 0 {
		return nil
	}
	var codes []string
	if err := json.Unmarshal(t.Benefits, &codes); err != nil {
		return nil
	}
	return codes
}

func (t *LoyaltyTier) HasBenefit(code string) bool {
	for _, c := range t.BenefitCodes() {
		if c == code {
			return true
		}
	}
	return false
}

// CustomBenefit is a property-defined perk outside the fixed benefit codes.
type CustomBenefit struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
