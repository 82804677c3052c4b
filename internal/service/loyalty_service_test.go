package service

import (
	"fmt"
	"testing"
	"time"

	"stayloyal/internal/database"
	"stayloyal/internal/domain"
	"stayloyal/internal/models"
	"stayloyal/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*LoyaltyService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	svc := NewLoyaltyService(db,
		repository.NewGuestRepository(db),
		repository.NewProgramRepository(db),
		repository.NewTierRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewAuditLogRepository(db),
	)
	require.NoError(t, svc.Bootstrap())
	return svc, db
}

func createTestGuest(t *testing.T, db *gorm.DB) *models.Guest {
	t.Helper()
	g := &models.Guest{FirstName: "Anna", LastName: "Kowalska"}
	require.NoError(t, db.Create(g).Error)
	return g
}

func reloadGuest(t *testing.T, db *gorm.DB, id string) *models.Guest {
	t.Helper()
	var g models.Guest
	require.NoError(t, db.Preload("LoyaltyTier").Where("id = ?", id).First(&g).Error)
	return &g
}

func latestTx(t *testing.T, db *gorm.DB, guestID string) *models.LoyaltyTransaction {
	t.Helper()
	var row models.LoyaltyTransaction
	require.NoError(t, db.Where("guest_id = ?", guestID).Order("created_at DESC, id DESC").First(&row).Error)
	return &row
}

func TestEnrollAssignsCardAndWelcomeBonus(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)

	card, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)
	require.Equal(t, "LOY-000001", card)

	got := reloadGuest(t, db, g.ID)
	require.True(t, got.IsEnrolled())
	require.Equal(t, 100, got.LoyaltyPoints)
	require.Equal(t, 100, got.LoyaltyTotal)
	require.Equal(t, 0, got.LoyaltyStays)
	require.NotNil(t, got.LoyaltyEnrolledAt)
	require.NotNil(t, got.LoyaltyTier)
	require.Equal(t, "BRONZE", got.LoyaltyTier.Code)

	row := latestTx(t, db, g.ID)
	require.Equal(t, domain.TxTypeBonus, row.Type)
	require.Equal(t, 100, row.Points)
	require.Equal(t, 100, row.BalanceAfter)
	require.Equal(t, domain.CreatedBySystem, row.CreatedBy)

	_, err = svc.Enroll(g.ID, Actor{})
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	_, err = svc.Enroll(uuid.NewString(), Actor{})
	require.ErrorIs(t, err, ErrGuestNotFound)
}

func TestEnrollCardNumbersAreSequential(t *testing.T) {
	svc, db := setupService(t)
	first := createTestGuest(t, db)
	second := createTestGuest(t, db)

	card1, err := svc.Enroll(first.ID, Actor{})
	require.NoError(t, err)
	card2, err := svc.Enroll(second.ID, Actor{})
	require.NoError(t, err)

	require.Equal(t, "LOY-000001", card1)
	require.Equal(t, "LOY-000002", card2)
}

func TestEarnValidatesAndCredits(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)
	_, err := svc.Earn(g.ID, 100, "test", LedgerOptions{}, Actor{})
	require.ErrorIs(t, err, ErrNotEnrolled)

	_, err = svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)

	_, err = svc.Earn(g.ID, 0, "test", LedgerOptions{}, Actor{})
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.Earn(g.ID, -5, "test", LedgerOptions{}, Actor{})
	require.ErrorIs(t, err, ErrInvalidAmount)

	balance, err := svc.Earn(g.ID, 200, "Zakup w restauracji", LedgerOptions{}, Actor{})
	require.NoError(t, err)
	require.Equal(t, 300, balance)

	got := reloadGuest(t, db, g.ID)
	require.Equal(t, 300, got.LoyaltyPoints)
	require.Equal(t, 300, got.LoyaltyTotal)
}

func TestEarnAppliesTierBonusWithFloor(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)
	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)

	// move the guest onto Silver (10% earn bonus)
	var silver models.LoyaltyTier
	require.NoError(t, db.Where("code = ?", "SILVER").First(&silver).Error)
	require.NoError(t, db.Model(&models.Guest{}).Where("id = ?", g.ID).Update("loyalty_tier_id", silver.ID).Error)

	// 10% of 105 = 10.5, floored to 10
	balance, err := svc.Earn(g.ID, 105, "Pobyt testowy", LedgerOptions{}, Actor{})
	require.NoError(t, err)
	require.Equal(t, 100+105+10, balance)

	row := latestTx(t, db, g.ID)
	require.Equal(t, domain.TxTypeEarn, row.Type)
	require.Equal(t, 115, row.Points)
	require.Contains(t, row.Reason, "(w tym bonus tier: +10)")
}

func TestEarnPromotesTier(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)
	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)

	// 100 welcome bonus + 4900 = 5000 lifetime, the Silver threshold
	_, err = svc.Earn(g.ID, 4900, "Pobyt", LedgerOptions{}, Actor{})
	require.NoError(t, err)

	got := reloadGuest(t, db, g.ID)
	require.NotNil(t, got.LoyaltyTier)
	require.Equal(t, "SILVER", got.LoyaltyTier.Code)
}

func TestRedeemInsufficientBalance(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)
	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)
	_, err = svc.Earn(g.ID, 200, "Pobyt", LedgerOptions{}, Actor{})
	require.NoError(t, err)

	_, err = svc.Redeem(g.ID, 500, "Zniżka", LedgerOptions{}, Actor{})
	var insufficient *InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, 300, insufficient.Available)
	require.Equal(t, 500, insufficient.Requested)

	// balance untouched on failure
	got := reloadGuest(t, db, g.ID)
	require.Equal(t, 300, got.LoyaltyPoints)
}

func TestRedeemKeepsLifetimeTotalAndTier(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)
	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)
	_, err = svc.Earn(g.ID, 4900, "Pobyt", LedgerOptions{}, Actor{})
	require.NoError(t, err)

	balance, err := svc.Redeem(g.ID, 4000, "Darmowa noc", LedgerOptions{}, Actor{})
	require.NoError(t, err)
	require.Equal(t, 1000, balance)

	got := reloadGuest(t, db, g.ID)
	require.Equal(t, 1000, got.LoyaltyPoints)
	require.Equal(t, 5000, got.LoyaltyTotal) // redemption never reduces lifetime
	require.Equal(t, "SILVER", got.LoyaltyTier.Code)

	row := latestTx(t, db, g.ID)
	require.Equal(t, domain.TxTypeRedeem, row.Type)
	require.Equal(t, -4000, row.Points)
	require.Equal(t, 1000, row.BalanceAfter)
}

func TestAdjustRejectsNegativeBalance(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)
	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)
	_, err = svc.Redeem(g.ID, 80, "Zniżka", LedgerOptions{}, Actor{})
	require.NoError(t, err)

	// balance is 20 now
	_, err = svc.Adjust(g.ID, -50, "pomyłka", "", Actor{})
	require.ErrorIs(t, err, ErrNegativeBalance)
	got := reloadGuest(t, db, g.ID)
	require.Equal(t, 20, got.LoyaltyPoints)

	_, err = svc.Adjust(g.ID, 0, "nic", "", Actor{})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAdjustSignsAndLifetimeTotal(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)
	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)

	balance, err := svc.Adjust(g.ID, 50, "rekompensata", "manager@hotel.local", Actor{})
	require.NoError(t, err)
	require.Equal(t, 150, balance)

	row := latestTx(t, db, g.ID)
	require.Equal(t, domain.TxTypeAdjustment, row.Type)
	require.Equal(t, "Korekta ręczna: rekompensata", row.Reason)
	require.Equal(t, "manager@hotel.local", row.CreatedBy)

	got := reloadGuest(t, db, g.ID)
	require.Equal(t, 150, got.LoyaltyTotal)

	// negative adjustment lowers the balance only
	balance, err = svc.Adjust(g.ID, -30, "korekta błędu", "", Actor{})
	require.NoError(t, err)
	require.Equal(t, 120, balance)
	got = reloadGuest(t, db, g.ID)
	require.Equal(t, 120, got.LoyaltyPoints)
	require.Equal(t, 150, got.LoyaltyTotal)
}

func TestLedgerReplayMatchesBalance(t *testing.T) {
	svc, db := setupService(t)
	ledger := repository.NewTransactionRepository(db)
	g := createTestGuest(t, db)

	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)
	_, err = svc.Earn(g.ID, 320, "Pobyt", LedgerOptions{}, Actor{})
	require.NoError(t, err)
	_, err = svc.Redeem(g.ID, 150, "Zniżka", LedgerOptions{}, Actor{})
	require.NoError(t, err)
	_, err = svc.Adjust(g.ID, -40, "korekta", "", Actor{})
	require.NoError(t, err)
	_, err = svc.Adjust(g.ID, 75, "rekompensata", "", Actor{})
	require.NoError(t, err)

	got := reloadGuest(t, db, g.ID)
	replayed, err := ledger.ReplayBalance(g.ID)
	require.NoError(t, err)
	require.Equal(t, got.LoyaltyPoints, replayed)
	require.Equal(t, 100+320-150-40+75, got.LoyaltyPoints)
}

func TestCombinedModeRequiresBothThresholds(t *testing.T) {
	svc, db := setupService(t)
	mode := domain.TierModeCombined
	_, err := svc.UpdateProgram(ProgramPatch{TierMode: &mode}, Actor{})
	require.NoError(t, err)

	g := createTestGuest(t, db)
	_, err = svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)

	// 6000 lifetime points, zero stays: Silver needs 5000 AND 5 stays
	_, err = svc.Earn(g.ID, 5900, "Pobyt", LedgerOptions{}, Actor{})
	require.NoError(t, err)
	got := reloadGuest(t, db, g.ID)
	require.Equal(t, "BRONZE", got.LoyaltyTier.Code)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.IncrementStays(g.ID))
	}
	got = reloadGuest(t, db, g.ID)
	require.Equal(t, 5, got.LoyaltyStays)
	require.Equal(t, "SILVER", got.LoyaltyTier.Code)
}

func TestIncrementStaysIsNoopWithoutAccount(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)

	require.NoError(t, svc.IncrementStays(g.ID))
	require.NoError(t, svc.IncrementStays(uuid.NewString()))

	got := reloadGuest(t, db, g.ID)
	require.Equal(t, 0, got.LoyaltyStays)
}

func TestAwardForStayFloorsAndRecords(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)
	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)

	stay := StayDetails{
		CheckIn:    time.Date(2025, 1, 10, 14, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 1, 15, 11, 0, 0, 0, time.UTC),
		RoomNumber: "101",
	}
	reservationID := uuid.NewString()
	awarded, err := svc.AwardForStay(g.ID, reservationID, decimal.RequireFromString("450.75"), stay, Actor{})
	require.NoError(t, err)
	require.Equal(t, 450, awarded)

	row := latestTx(t, db, g.ID)
	require.Equal(t, domain.TxTypeEarn, row.Type)
	require.Equal(t, "Pobyt 2025-01-10 - 2025-01-15 (pokój 101)", row.Reason)
	require.NotNil(t, row.ReferenceType)
	require.Equal(t, domain.RefTypeReservation, *row.ReferenceType)
	require.NotNil(t, row.ReservationID)
	require.Equal(t, reservationID, *row.ReservationID)

	got := reloadGuest(t, db, g.ID)
	require.Equal(t, 550, got.LoyaltyPoints)
}

func TestAwardForStayNoopPaths(t *testing.T) {
	svc, db := setupService(t)
	stay := StayDetails{CheckIn: time.Now(), CheckOut: time.Now(), RoomNumber: "7"}

	// not enrolled
	g := createTestGuest(t, db)
	awarded, err := svc.AwardForStay(g.ID, uuid.NewString(), decimal.NewFromInt(100), stay, Actor{})
	require.NoError(t, err)
	require.Equal(t, 0, awarded)

	// unknown guest
	awarded, err = svc.AwardForStay(uuid.NewString(), uuid.NewString(), decimal.NewFromInt(100), stay, Actor{})
	require.NoError(t, err)
	require.Equal(t, 0, awarded)

	// inactive program
	enrolled := createTestGuest(t, db)
	_, err = svc.Enroll(enrolled.ID, Actor{})
	require.NoError(t, err)
	inactive := false
	_, err = svc.UpdateProgram(ProgramPatch{IsActive: &inactive}, Actor{})
	require.NoError(t, err)
	awarded, err = svc.AwardForStay(enrolled.ID, uuid.NewString(), decimal.NewFromInt(100), stay, Actor{})
	require.NoError(t, err)
	require.Equal(t, 0, awarded)

	// amount too small to yield a point
	active := true
	_, err = svc.UpdateProgram(ProgramPatch{IsActive: &active}, Actor{})
	require.NoError(t, err)
	awarded, err = svc.AwardForStay(enrolled.ID, uuid.NewString(), decimal.RequireFromString("0.99"), stay, Actor{})
	require.NoError(t, err)
	require.Equal(t, 0, awarded)
}

func TestEarnIdempotencyKeyReplays(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)
	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)

	key := "checkout-42"
	opts := LedgerOptions{IdempotencyKey: &key}
	first, err := svc.Earn(g.ID, 250, "Pobyt", opts, Actor{})
	require.NoError(t, err)
	second, err := svc.Earn(g.ID, 250, "Pobyt", opts, Actor{})
	require.NoError(t, err)
	require.Equal(t, first, second)

	var count int64
	db.Model(&models.LoyaltyTransaction{}).Where("guest_id = ? AND type = ?", g.ID, domain.TxTypeEarn).Count(&count)
	require.EqualValues(t, 1, count)

	got := reloadGuest(t, db, g.ID)
	require.Equal(t, 350, got.LoyaltyPoints)
}

func TestBirthdayBonus(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)

	_, err := svc.AwardBirthdayBonus(g.ID, Actor{})
	require.ErrorIs(t, err, ErrNotEnrolled)

	_, err = svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)

	balance, err := svc.AwardBirthdayBonus(g.ID, Actor{})
	require.NoError(t, err)
	require.Equal(t, 600, balance)

	row := latestTx(t, db, g.ID)
	require.Equal(t, domain.TxTypeBonus, row.Type)
	require.Equal(t, "Bonus urodzinowy", row.Reason)

	got := reloadGuest(t, db, g.ID)
	require.Equal(t, 600, got.LoyaltyTotal)

	// inactive program: no grant, balance reported unchanged
	inactive := false
	_, err = svc.UpdateProgram(ProgramPatch{IsActive: &inactive}, Actor{})
	require.NoError(t, err)
	balance, err = svc.AwardBirthdayBonus(g.ID, Actor{})
	require.NoError(t, err)
	require.Equal(t, 600, balance)
}

func TestTransactionsPaging(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)

	_, err := svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.Earn(g.ID, 10+i, "Pobyt", LedgerOptions{}, Actor{})
		require.NoError(t, err)
	}

	rows, total, err := svc.Transactions(g.ID, 2, 0)
	require.NoError(t, err)
	require.EqualValues(t, 4, total)
	require.Len(t, rows, 2)
	require.False(t, rows[0].CreatedAt.Before(rows[1].CreatedAt))

	rows, _, err = svc.Transactions(g.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// guest without a card gets an empty page, not an error
	fresh := createTestGuest(t, db)
	rows, total, err = svc.Transactions(fresh.ID, 50, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
	require.Empty(t, rows)

	_, _, err = svc.Transactions(uuid.NewString(), 50, 0)
	require.ErrorIs(t, err, ErrGuestNotFound)
}

func TestStatusReportsNextTier(t *testing.T) {
	svc, db := setupService(t)
	g := createTestGuest(t, db)

	status, err := svc.Status(g.ID)
	require.NoError(t, err)
	require.False(t, status.IsEnrolled)
	require.Nil(t, status.NextTier)

	_, err = svc.Enroll(g.ID, Actor{})
	require.NoError(t, err)

	status, err = svc.Status(g.ID)
	require.NoError(t, err)
	require.True(t, status.IsEnrolled)
	require.Equal(t, 100, status.Points)
	require.NotNil(t, status.Tier)
	require.Equal(t, "BRONZE", status.Tier.Code)
	require.NotNil(t, status.NextTier)
	require.Equal(t, "SILVER", status.NextTier.Code)
	require.NotNil(t, status.PointsToNextTier)
	require.Equal(t, 4900, *status.PointsToNextTier)

	_, err = svc.Status(uuid.NewString())
	require.ErrorIs(t, err, ErrGuestNotFound)
}

func TestUpdateTierEnforcesSingleDefault(t *testing.T) {
	svc, db := setupService(t)

	var silver models.LoyaltyTier
	require.NoError(t, db.Where("code = ?", "SILVER").First(&silver).Error)

	makeDefault := true
	_, err := svc.UpdateTier(silver.ID, TierPatch{IsDefault: &makeDefault}, Actor{})
	require.NoError(t, err)

	var defaults int64
	db.Model(&models.LoyaltyTier{}).Where("is_default = ?", true).Count(&defaults)
	require.EqualValues(t, 1, defaults)

	var got models.LoyaltyTier
	require.NoError(t, db.Where("code = ?", "SILVER").First(&got).Error)
	require.True(t, got.IsDefault)

	_, err = svc.UpdateTier(uuid.NewString(), TierPatch{IsDefault: &makeDefault}, Actor{})
	require.ErrorIs(t, err, ErrTierNotFound)
}

func TestUpdateProgramValidatesRate(t *testing.T) {
	svc, _ := setupService(t)
	negative := decimal.RequireFromString("-1")
	_, err := svc.UpdateProgram(ProgramPatch{PointsPerCurrency: &negative}, Actor{})
	require.ErrorIs(t, err, ErrInvalidAmount)

	rate := decimal.RequireFromString("2.5")
	p, err := svc.UpdateProgram(ProgramPatch{PointsPerCurrency: &rate}, Actor{})
	require.NoError(t, err)
	require.True(t, p.PointsPerCurrency.Equal(rate))
}
