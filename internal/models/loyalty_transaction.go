package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoyaltyTransaction is one append-only ledger row. Points is the signed
// delta; BalanceAfter is the account balance the row left behind. Rows are
// never edited or deleted: corrections are new ADJUSTMENT rows.
type LoyaltyTransaction struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	GuestID        string    `gorm:"size:36;not null;index;uniqueIndex:uid_loyalty_tx_idem" json:"guest_id"`
	ReservationID  *string   `gorm:"size:36;index" json:"reservation_id"`
	Type           string    `gorm:"size:20;not null;index" json:"type"` // EARN, REDEEM, BONUS, ADJUSTMENT
	Points         int       `gorm:"not null" json:"points"`
	BalanceAfter   int       `gorm:"not null" json:"balance_after"`
	Reason         string    `gorm:"size:255" json:"reason"`
	ReferenceType  *string   `gorm:"size:30" json:"reference_type"`
	ReferenceID    *string   `gorm:"size:64" json:"reference_id"`
	IdempotencyKey *string   `gorm:"size:64;uniqueIndex:uid_loyalty_tx_idem" json:"-"`
	CreatedBy      string    `gorm:"size:64;not null" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

func (LoyaltyTransaction) TableName() string {
	return "loyalty_transactions"
}

func (t *LoyaltyTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
