package repository

import (
	"fmt"
	"testing"

	"stayloyal/internal/database"
	"stayloyal/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestEnsureSeedsProgramAndLadder(t *testing.T) {
	db := setupDB(t)
	repo := NewProgramRepository(db)

	p, err := repo.Ensure()
	require.NoError(t, err)
	require.Equal(t, "default", p.ID)
	require.Equal(t, "Program Lojalnościowy", p.Name)
	require.True(t, p.IsActive)
	require.True(t, p.PointsPerCurrency.Equal(decimal.NewFromInt(1)))
	require.Equal(t, 100, p.PointsForCheckIn)
	require.Equal(t, 500, p.PointsForBirthday)
	require.Equal(t, "POINTS", p.TierMode)
	require.Equal(t, "LOY", p.CardNumberPrefix)
	require.Equal(t, 1, p.CardNumberNextSeq)

	var tiers []models.LoyaltyTier
	require.NoError(t, db.Order("sort_order ASC").Find(&tiers).Error)
	require.Len(t, tiers, 4)
	require.Equal(t, []string{"BRONZE", "SILVER", "GOLD", "PLATINUM"},
		[]string{tiers[0].Code, tiers[1].Code, tiers[2].Code, tiers[3].Code})
	require.True(t, tiers[0].IsDefault)
	require.Equal(t, 5000, tiers[1].MinPoints)
	require.Equal(t, 5, tiers[1].MinStays)
	require.Equal(t, 50000, tiers[3].MinPoints)
}

func TestEnsureIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewProgramRepository(db)

	_, err := repo.Ensure()
	require.NoError(t, err)
	_, err = repo.Ensure()
	require.NoError(t, err)

	var programs, tiers, defaults int64
	db.Model(&models.LoyaltyProgram{}).Count(&programs)
	db.Model(&models.LoyaltyTier{}).Count(&tiers)
	db.Model(&models.LoyaltyTier{}).Where("is_default = ?", true).Count(&defaults)
	require.EqualValues(t, 1, programs)
	require.EqualValues(t, 4, tiers)
	require.EqualValues(t, 1, defaults)
}

func TestAllocateCardNumberAdvancesSequence(t *testing.T) {
	db := setupDB(t)
	repo := NewProgramRepository(db)
	_, err := repo.Ensure()
	require.NoError(t, err)

	var first, second string
	err = db.Transaction(func(tx *gorm.DB) error {
		first, err = repo.AllocateCardNumber(tx)
		return err
	})
	require.NoError(t, err)
	err = db.Transaction(func(tx *gorm.DB) error {
		second, err = repo.AllocateCardNumber(tx)
		return err
	})
	require.NoError(t, err)

	require.Equal(t, "LOY-000001", first)
	require.Equal(t, "LOY-000002", second)

	p, err := repo.Get()
	require.NoError(t, err)
	require.Equal(t, 3, p.CardNumberNextSeq)
}
