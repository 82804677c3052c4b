package repository

import (
	"encoding/json"
	"fmt"

	"stayloyal/internal/domain"
	"stayloyal/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgramRepository struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

func (r *ProgramRepository) Get() (*models.LoyaltyProgram, error) {
	var p models.LoyaltyProgram
	if err := r.db.Where("id = ?", domain.ProgramID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetTx reads the program row inside an existing transaction.
func (r *ProgramRepository) GetTx(tx *gorm.DB) (*models.LoyaltyProgram, error) {
	var p models.LoyaltyProgram
	if err := tx.Where("id = ?", domain.ProgramID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetForUpdate fetches the program row under a row lock inside tx. Used by
// enrollment to serialize card number allocation.
func (r *ProgramRepository) GetForUpdate(tx *gorm.DB) (*models.LoyaltyProgram, error) {
	var p models.LoyaltyProgram
	if err := forUpdate(tx).Where("id = ?", domain.ProgramID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Ensure creates the program singleton and the default tier ladder if they
// are missing. Safe to call concurrently: the program insert is keyed on the
// singleton id, tier inserts on each tier's unique code, both with
// ON CONFLICT DO NOTHING.
func (r *ProgramRepository) Ensure() (*models.LoyaltyProgram, error) {
	defaults := models.LoyaltyProgram{
		ID:                domain.ProgramID,
		Name:              "Program Lojalnościowy",
		IsActive:          true,
		PointsPerCurrency: decimal.NewFromInt(1),
		PointsForCheckIn:  100,
		PointsForBirthday: 500,
		TierMode:          domain.TierModePoints,
		CardNumberPrefix:  "LOY",
		CardNumberNextSeq: 1,
	}
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		if err := r.seedDefaultTiers(); err != nil {
			return nil, err
		}
	}
	return r.Get()
}

// Update applies a partial update and returns the fresh row. Last write wins;
// concurrent program edits are rare enough not to lock here.
func (r *ProgramRepository) Update(fields map[string]interface{}) (*models.LoyaltyProgram, error) {
	if err := r.db.Model(&models.LoyaltyProgram{}).Where("id = ?", domain.ProgramID).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.Get()
}

// AllocateCardNumber formats the next card number and advances the sequence,
// all under the row lock taken by GetForUpdate. The number is consumed even
// if the enclosing enrollment later fails.
func (r *ProgramRepository) AllocateCardNumber(tx *gorm.DB) (string, error) {
	p, err := r.GetForUpdate(tx)
	if err != nil {
		return "", err
	}
	number := fmt.Sprintf("%s-%06d", p.CardNumberPrefix, p.CardNumberNextSeq)
	err = tx.Model(&models.LoyaltyProgram{}).
		Where("id = ?", domain.ProgramID).
		UpdateColumn("card_number_next_seq", p.CardNumberNextSeq+1).Error
	if err != nil {
		return "", err
	}
	return number, nil
}

func (r *ProgramRepository) seedDefaultTiers() error {
	str := func(s string) *string { return &s }
	dec := func(v int64) *decimal.Decimal { d := decimal.NewFromInt(v); return &d }
	benefits := func(codes ...string) datatypes.JSON {
		b, _ := json.Marshal(codes)
		return datatypes.JSON(b)
	}
	tiers := []models.LoyaltyTier{
		{
			Name: "Bronze", Code: "BRONZE", SortOrder: 0,
			MinPoints: 0, MinStays: 0,
			Color: str("#CD7F32"), Icon: str("🥉"),
			DiscountPercent: dec(0), BonusPointsPercent: dec(0),
			IsDefault: true,
		},
		{
			Name: "Silver", Code: "SILVER", SortOrder: 1,
			MinPoints: 5000, MinStays: 5,
			Color: str("#C0C0C0"), Icon: str("🥈"),
			DiscountPercent: dec(5), BonusPointsPercent: dec(10),
			Benefits: benefits(domain.BenefitEarlyCheckIn),
		},
		{
			Name: "Gold", Code: "GOLD", SortOrder: 2,
			MinPoints: 15000, MinStays: 15,
			Color: str("#FFD700"), Icon: str("🥇"),
			DiscountPercent: dec(10), BonusPointsPercent: dec(25),
			Benefits: benefits(domain.BenefitEarlyCheckIn, domain.BenefitLateCheckOut,
				domain.BenefitRoomUpgrade, domain.BenefitWelcomeDrink),
		},
		{
			Name: "Platinum", Code: "PLATINUM", SortOrder: 3,
			MinPoints: 50000, MinStays: 50,
			Color: str("#E5E4E2"), Icon: str("💎"),
			DiscountPercent: dec(15), BonusPointsPercent: dec(50),
			Benefits: benefits(domain.KnownBenefits...),
		},
	}
	for i := range tiers {
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&tiers[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}
