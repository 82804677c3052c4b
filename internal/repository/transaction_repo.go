package repository

import (
	"stayloyal/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Append writes one ledger row inside tx. Rows are immutable after this.
func (r *TransactionRepository) Append(tx *gorm.DB, t *models.LoyaltyTransaction) error {
	return tx.Create(t).Error
}

// FindByIdempotencyKey returns the ledger row previously written for this
// guest+key, or nil when the key is unused.
func (r *TransactionRepository) FindByIdempotencyKey(tx *gorm.DB, guestID, key string) (*models.LoyaltyTransaction, error) {
	var t models.LoyaltyTransaction
	err := tx.Where("guest_id = ? AND idempotency_key = ?", guestID, key).First(&t).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByGuest returns one page of the guest's ledger, newest first, plus the
// total row count.
func (r *TransactionRepository) ListByGuest(guestID string, limit, offset int) ([]models.LoyaltyTransaction, int64, error) {
	var total int64
	err := r.db.Model(&models.LoyaltyTransaction{}).Where("guest_id = ?", guestID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	var rows []models.LoyaltyTransaction
	err = r.db.Where("guest_id = ?", guestID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

// ReplayBalance sums the signed deltas of every ledger row for the guest.
// By invariant it equals the guest's stored balance; tests and consistency
// checks lean on it.
func (r *TransactionRepository) ReplayBalance(guestID string) (int, error) {
	var sum struct{ Total int }
	err := r.db.Model(&models.LoyaltyTransaction{}).
		Select("COALESCE(SUM(points), 0) as total").
		Where("guest_id = ?", guestID).
		Scan(&sum).Error
	return sum.Total, err
}
