package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"stayloyal/internal/domain"
	"stayloyal/internal/models"
	"stayloyal/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LoyaltyService is the only entry point to the loyalty ledger. Every
// mutating operation runs as a single DB transaction that co-commits the
// ledger append, the guest's account columns and the tier recomputation.
type LoyaltyService struct {
	db       *gorm.DB
	guests   *repository.GuestRepository
	programs *repository.ProgramRepository
	tiers    *repository.TierRepository
	ledger   *repository.TransactionRepository
	audits   *repository.AuditLogRepository
}

func NewLoyaltyService(
	db *gorm.DB,
	guests *repository.GuestRepository,
	programs *repository.ProgramRepository,
	tiers *repository.TierRepository,
	ledger *repository.TransactionRepository,
	audits *repository.AuditLogRepository,
) *LoyaltyService {
	return &LoyaltyService{
		db:       db,
		guests:   guests,
		programs: programs,
		tiers:    tiers,
		ledger:   ledger,
		audits:   audits,
	}
}

// Actor identifies the staff member (and client IP) behind a mutation, for
// the audit trail. Zero value means SYSTEM.
type Actor struct {
	UserID *uint
	IP     string
}

// LedgerOptions carries the optional metadata of an earn/redeem.
// IdempotencyKey, when set, makes the operation replay-safe: a second call
// with the same key returns the balance the first call produced without
// appending a second row.
type LedgerOptions struct {
	ReservationID  *string
	ReferenceType  *string
	ReferenceID    *string
	CreatedBy      string
	IdempotencyKey *string
}

// StayDetails describes the reservation being settled, supplied by the
// checkout caller.
type StayDetails struct {
	CheckIn    time.Time
	CheckOut   time.Time
	RoomNumber string
}

// Bootstrap creates the program config and the default tier ladder if they
// do not exist yet. Called once at startup; safe to call again.
func (s *LoyaltyService) Bootstrap() error {
	_, err := s.programs.Ensure()
	return err
}

func (s *LoyaltyService) Program() (*models.LoyaltyProgram, error) {
	return s.programs.Ensure()
}

// ProgramPatch is a partial program update; nil fields are left untouched.
type ProgramPatch struct {
	Name              *string
	IsActive          *bool
	PointsPerCurrency *decimal.Decimal
	PointsForCheckIn  *int
	PointsForBirthday *int
	TierMode          *string
	CardNumberPrefix  *string
	TermsURL          *string
	WelcomeMessage    *string
}

func (s *LoyaltyService) UpdateProgram(patch ProgramPatch, actor Actor) (*models.LoyaltyProgram, error) {
	if patch.PointsPerCurrency != nil && patch.PointsPerCurrency.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if patch.PointsForCheckIn != nil && *patch.PointsForCheckIn < 0 {
		return nil, ErrInvalidAmount
	}
	if patch.PointsForBirthday != nil && *patch.PointsForBirthday < 0 {
		return nil, ErrInvalidAmount
	}
	old, err := s.programs.Ensure()
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if patch.PointsPerCurrency != nil {
		fields["points_per_currency"] = *patch.PointsPerCurrency
	}
	if patch.PointsForCheckIn != nil {
		fields["points_for_check_in"] = *patch.PointsForCheckIn
	}
	if patch.PointsForBirthday != nil {
		fields["points_for_birthday"] = *patch.PointsForBirthday
	}
	if patch.TierMode != nil {
		fields["tier_mode"] = *patch.TierMode
	}
	if patch.CardNumberPrefix != nil {
		fields["card_number_prefix"] = *patch.CardNumberPrefix
	}
	if patch.TermsURL != nil {
		fields["terms_url"] = *patch.TermsURL
	}
	if patch.WelcomeMessage != nil {
		fields["welcome_message"] = *patch.WelcomeMessage
	}
	if len(fields) == 0 {
		return old, nil
	}
	updated, err := s.programs.Update(fields)
	if err != nil {
		return nil, err
	}
	s.audit(actor, domain.AuditUpdate, "LoyaltyProgram", domain.ProgramID, old, updated)
	return updated, nil
}

func (s *LoyaltyService) ListTiers() ([]models.LoyaltyTier, error) {
	if _, err := s.programs.Ensure(); err != nil {
		return nil, err
	}
	return s.tiers.List()
}

// TierPatch is a partial tier update; nil fields are left untouched.
type TierPatch struct {
	Name               *string
	MinPoints          *int
	MinStays           *int
	Color              *string
	Icon               *string
	DiscountPercent    *decimal.Decimal
	BonusPointsPercent *decimal.Decimal
	Benefits           []string
	CustomBenefits     []models.CustomBenefit
	IsDefault          *bool
}

func (s *LoyaltyService) UpdateTier(tierID string, patch TierPatch, actor Actor) (*models.LoyaltyTier, error) {
	if patch.MinPoints != nil && *patch.MinPoints < 0 {
		return nil, ErrInvalidAmount
	}
	if patch.MinStays != nil && *patch.MinStays < 0 {
		return nil, ErrInvalidAmount
	}
	if (patch.DiscountPercent != nil && patch.DiscountPercent.IsNegative()) ||
		(patch.BonusPointsPercent != nil && patch.BonusPointsPercent.IsNegative()) {
		return nil, ErrInvalidAmount
	}
	old, err := s.tiers.GetByID(tierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.MinPoints != nil {
		fields["min_points"] = *patch.MinPoints
	}
	if patch.MinStays != nil {
		fields["min_stays"] = *patch.MinStays
	}
	if patch.Color != nil {
		fields["color"] = *patch.Color
	}
	if patch.Icon != nil {
		fields["icon"] = *patch.Icon
	}
	if patch.DiscountPercent != nil {
		fields["discount_percent"] = *patch.DiscountPercent
	}
	if patch.BonusPointsPercent != nil {
		fields["bonus_points_percent"] = *patch.BonusPointsPercent
	}
	if patch.Benefits != nil {
		b, err := json.Marshal(patch.Benefits)
		if err != nil {
			return nil, err
		}
		fields["benefits"] = datatypes.JSON(b)
	}
	if patch.CustomBenefits != nil {
		b, err := json.Marshal(patch.CustomBenefits)
		if err != nil {
			return nil, err
		}
		fields["custom_benefits"] = datatypes.JSON(b)
	}
	if patch.IsDefault != nil {
		fields["is_default"] = *patch.IsDefault
	}
	if len(fields) == 0 {
		return old, nil
	}
	updated, err := s.tiers.Update(tierID, fields)
	if err != nil {
		return nil, err
	}
	s.audit(actor, domain.AuditUpdate, "LoyaltyTier", tierID, old, updated)
	return updated, nil
}

// Enroll signs the guest up: assigns the next card number, points the
// account at the default tier and grants the check-in bonus, all in one
// transaction. Returns the assigned card number.
func (s *LoyaltyService) Enroll(guestID string, actor Actor) (string, error) {
	var cardNumber string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		guest, err := s.guests.GetForUpdate(tx, guestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}
		if guest.IsEnrolled() {
			return ErrAlreadyEnrolled
		}

		// Locks the program row; the sequence is the one global
		// serialization point across enrollments.
		cardNumber, err = s.programs.AllocateCardNumber(tx)
		if err != nil {
			return err
		}
		program, err := s.programs.GetTx(tx)
		if err != nil {
			return err
		}
		defaultTier, err := s.tiers.GetDefault(tx)
		if err != nil {
			return err
		}

		now := time.Now()
		fields := map[string]interface{}{
			"loyalty_card_number":  cardNumber,
			"loyalty_points":       0,
			"loyalty_total_points": 0,
			"loyalty_total_stays":  0,
			"loyalty_enrolled_at":  now,
		}
		if defaultTier != nil {
			fields["loyalty_tier_id"] = defaultTier.ID
		}
		if program.PointsForCheckIn > 0 {
			bonus := program.PointsForCheckIn
			row := models.LoyaltyTransaction{
				GuestID:       guestID,
				Type:          domain.TxTypeBonus,
				Points:        bonus,
				BalanceAfter:  bonus,
				Reason:        "Bonus powitalny za dołączenie do programu",
				ReferenceType: strPtr(domain.RefTypeEnrollment),
				CreatedBy:     domain.CreatedBySystem,
			}
			if err := s.ledger.Append(tx, &row); err != nil {
				return err
			}
			fields["loyalty_points"] = bonus
			fields["loyalty_total_points"] = bonus
		}
		return s.guests.UpdateLoyalty(tx, guestID, fields)
	})
	if err != nil {
		return "", err
	}
	s.audit(actor, domain.AuditCreate, "LoyaltyEnrollment", guestID,
		nil, map[string]interface{}{"card_number": cardNumber, "guest_id": guestID})
	return cardNumber, nil
}

// Earn credits points, applying the guest's tier bonus percent (floored).
// Returns the new balance.
func (s *LoyaltyService) Earn(guestID string, points int, reason string, opts LedgerOptions, actor Actor) (int, error) {
	if points <= 0 {
		return 0, ErrInvalidAmount
	}
	var (
		oldBalance, newBalance int
		replayed               bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		guest, err := s.guests.GetForUpdate(tx, guestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}
		if !guest.IsEnrolled() {
			return ErrNotEnrolled
		}
		if opts.IdempotencyKey != nil {
			prev, err := s.ledger.FindByIdempotencyKey(tx, guestID, *opts.IdempotencyKey)
			if err != nil {
				return err
			}
			if prev != nil {
				newBalance = prev.BalanceAfter
				replayed = true
				return nil
			}
		}

		bonus := 0
		if guest.LoyaltyTierID != nil {
			var tier models.LoyaltyTier
			if err := tx.Where("id = ?", *guest.LoyaltyTierID).First(&tier).Error; err == nil {
				if tier.BonusPointsPercent != nil {
					bonus = int(decimal.NewFromInt(int64(points)).
						Mul(*tier.BonusPointsPercent).
						Div(decimal.NewFromInt(100)).
						Floor().IntPart())
				}
			}
		}
		totalAwarded := points + bonus
		oldBalance = guest.LoyaltyPoints
		newBalance = guest.LoyaltyPoints + totalAwarded
		newTotal := guest.LoyaltyTotal + totalAwarded

		rowReason := reason
		if bonus > 0 {
			rowReason = fmt.Sprintf("%s (w tym bonus tier: +%d)", reason, bonus)
		}
		createdBy := opts.CreatedBy
		if createdBy == "" {
			createdBy = domain.CreatedBySystem
		}
		row := models.LoyaltyTransaction{
			GuestID:        guestID,
			ReservationID:  opts.ReservationID,
			Type:           domain.TxTypeEarn,
			Points:         totalAwarded,
			BalanceAfter:   newBalance,
			Reason:         rowReason,
			ReferenceType:  opts.ReferenceType,
			ReferenceID:    opts.ReferenceID,
			IdempotencyKey: opts.IdempotencyKey,
			CreatedBy:      createdBy,
		}
		if err := s.ledger.Append(tx, &row); err != nil {
			return err
		}
		err = s.guests.UpdateLoyalty(tx, guestID, map[string]interface{}{
			"loyalty_points":       newBalance,
			"loyalty_total_points": newTotal,
		})
		if err != nil {
			return err
		}
		return s.recomputeTierTx(tx, guest, newTotal, guest.LoyaltyStays)
	})
	if err != nil {
		return 0, err
	}
	if !replayed {
		s.audit(actor, domain.AuditUpdate, "LoyaltyPoints", guestID,
			map[string]interface{}{"points": oldBalance},
			map[string]interface{}{"points": newBalance, "added": newBalance - oldBalance})
	}
	return newBalance, nil
}

// Redeem spends points. Lifetime totals and the tier are untouched: spending
// never demotes. Returns the new balance.
func (s *LoyaltyService) Redeem(guestID string, points int, reason string, opts LedgerOptions, actor Actor) (int, error) {
	if points <= 0 {
		return 0, ErrInvalidAmount
	}
	var (
		oldBalance, newBalance int
		replayed               bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		guest, err := s.guests.GetForUpdate(tx, guestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}
		if !guest.IsEnrolled() {
			return ErrNotEnrolled
		}
		if opts.IdempotencyKey != nil {
			prev, err := s.ledger.FindByIdempotencyKey(tx, guestID, *opts.IdempotencyKey)
			if err != nil {
				return err
			}
			if prev != nil {
				newBalance = prev.BalanceAfter
				replayed = true
				return nil
			}
		}
		if points > guest.LoyaltyPoints {
			return &InsufficientBalanceError{Available: guest.LoyaltyPoints, Requested: points}
		}
		oldBalance = guest.LoyaltyPoints
		newBalance = guest.LoyaltyPoints - points

		createdBy := opts.CreatedBy
		if createdBy == "" {
			createdBy = domain.CreatedBySystem
		}
		row := models.LoyaltyTransaction{
			GuestID:        guestID,
			ReservationID:  opts.ReservationID,
			Type:           domain.TxTypeRedeem,
			Points:         -points,
			BalanceAfter:   newBalance,
			Reason:         reason,
			ReferenceType:  opts.ReferenceType,
			ReferenceID:    opts.ReferenceID,
			IdempotencyKey: opts.IdempotencyKey,
			CreatedBy:      createdBy,
		}
		if err := s.ledger.Append(tx, &row); err != nil {
			return err
		}
		return s.guests.UpdateLoyalty(tx, guestID, map[string]interface{}{
			"loyalty_points": newBalance,
		})
	})
	if err != nil {
		return 0, err
	}
	if !replayed {
		s.audit(actor, domain.AuditUpdate, "LoyaltyPoints", guestID,
			map[string]interface{}{"points": oldBalance},
			map[string]interface{}{"points": newBalance, "redeemed": points})
	}
	return newBalance, nil
}

// Adjust applies a signed manager correction. Positive adjustments count
// toward the lifetime total and can promote the tier; negative ones only
// lower the balance and must not drive it below zero.
func (s *LoyaltyService) Adjust(guestID string, points int, reason, createdBy string, actor Actor) (int, error) {
	if points == 0 {
		return 0, ErrInvalidAmount
	}
	var oldBalance, newBalance int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		guest, err := s.guests.GetForUpdate(tx, guestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}
		if !guest.IsEnrolled() {
			return ErrNotEnrolled
		}
		oldBalance = guest.LoyaltyPoints
		newBalance = guest.LoyaltyPoints + points
		if newBalance < 0 {
			return ErrNegativeBalance
		}
		newTotal := guest.LoyaltyTotal
		if points > 0 {
			newTotal += points
		}
		if createdBy == "" {
			createdBy = "MANAGER"
		}
		row := models.LoyaltyTransaction{
			GuestID:       guestID,
			Type:          domain.TxTypeAdjustment,
			Points:        points,
			BalanceAfter:  newBalance,
			Reason:        "Korekta ręczna: " + reason,
			ReferenceType: strPtr(domain.RefTypeManual),
			CreatedBy:     createdBy,
		}
		if err := s.ledger.Append(tx, &row); err != nil {
			return err
		}
		err = s.guests.UpdateLoyalty(tx, guestID, map[string]interface{}{
			"loyalty_points":       newBalance,
			"loyalty_total_points": newTotal,
		})
		if err != nil {
			return err
		}
		if points > 0 {
			return s.recomputeTierTx(tx, guest, newTotal, guest.LoyaltyStays)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.audit(actor, domain.AuditUpdate, "LoyaltyPointsAdjustment", guestID,
		map[string]interface{}{"points": oldBalance},
		map[string]interface{}{"points": newBalance, "adjustment": points, "reason": reason})
	return newBalance, nil
}

// IncrementStays bumps the lifetime stay counter at checkout and recomputes
// the tier. Guests without a card are silently skipped.
func (s *LoyaltyService) IncrementStays(guestID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		guest, err := s.guests.GetForUpdate(tx, guestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if !guest.IsEnrolled() {
			return nil
		}
		newStays := guest.LoyaltyStays + 1
		err = s.guests.UpdateLoyalty(tx, guestID, map[string]interface{}{
			"loyalty_total_stays": newStays,
		})
		if err != nil {
			return err
		}
		return s.recomputeTierTx(tx, guest, guest.LoyaltyTotal, newStays)
	})
}

// AwardForStay converts the settled stay amount into points at the program's
// earn rate (floored) and delegates to Earn. Silently a no-op for
// non-members, an inactive program or a zero point yield. Returns the base
// points awarded, before any tier bonus.
func (s *LoyaltyService) AwardForStay(guestID, reservationID string, amount decimal.Decimal, stay StayDetails, actor Actor) (int, error) {
	guest, err := s.guests.GetByID(guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if !guest.IsEnrolled() {
		return 0, nil
	}
	program, err := s.programs.Ensure()
	if err != nil {
		return 0, err
	}
	if !program.IsActive {
		return 0, nil
	}
	basePoints := int(amount.Mul(program.PointsPerCurrency).Floor().IntPart())
	if basePoints <= 0 {
		return 0, nil
	}
	reason := fmt.Sprintf("Pobyt %s - %s (pokój %s)",
		stay.CheckIn.Format("2006-01-02"), stay.CheckOut.Format("2006-01-02"), stay.RoomNumber)
	_, err = s.Earn(guestID, basePoints, reason, LedgerOptions{
		ReservationID: &reservationID,
		ReferenceType: strPtr(domain.RefTypeReservation),
		ReferenceID:   &reservationID,
		CreatedBy:     domain.CreatedBySystem,
	}, actor)
	if err != nil {
		return 0, err
	}
	return basePoints, nil
}

// AwardBirthdayBonus grants the program's birthday bonus as a BONUS ledger
// row. No-op when the program is inactive or the bonus is zero.
func (s *LoyaltyService) AwardBirthdayBonus(guestID string, actor Actor) (int, error) {
	program, err := s.programs.Ensure()
	if err != nil {
		return 0, err
	}
	var oldBalance, newBalance int
	granted := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		guest, err := s.guests.GetForUpdate(tx, guestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}
		if !guest.IsEnrolled() {
			return ErrNotEnrolled
		}
		newBalance = guest.LoyaltyPoints
		if !program.IsActive || program.PointsForBirthday <= 0 {
			return nil
		}
		oldBalance = guest.LoyaltyPoints
		newBalance = guest.LoyaltyPoints + program.PointsForBirthday
		newTotal := guest.LoyaltyTotal + program.PointsForBirthday
		row := models.LoyaltyTransaction{
			GuestID:       guestID,
			Type:          domain.TxTypeBonus,
			Points:        program.PointsForBirthday,
			BalanceAfter:  newBalance,
			Reason:        "Bonus urodzinowy",
			ReferenceType: strPtr(domain.RefTypeBirthday),
			CreatedBy:     domain.CreatedBySystem,
		}
		if err := s.ledger.Append(tx, &row); err != nil {
			return err
		}
		err = s.guests.UpdateLoyalty(tx, guestID, map[string]interface{}{
			"loyalty_points":       newBalance,
			"loyalty_total_points": newTotal,
		})
		if err != nil {
			return err
		}
		granted = true
		return s.recomputeTierTx(tx, guest, newTotal, guest.LoyaltyStays)
	})
	if err != nil {
		return 0, err
	}
	if granted {
		s.audit(actor, domain.AuditUpdate, "LoyaltyPoints", guestID,
			map[string]interface{}{"points": oldBalance},
			map[string]interface{}{"points": newBalance, "added": program.PointsForBirthday})
	}
	return newBalance, nil
}

// GuestLoyaltyStatus is the staff-screen snapshot of a guest's membership.
type GuestLoyaltyStatus struct {
	IsEnrolled       bool                `json:"is_enrolled"`
	CardNumber       *string             `json:"card_number"`
	Points           int                 `json:"points"`
	TotalPoints      int                 `json:"total_points"`
	TotalStays       int                 `json:"total_stays"`
	Tier             *models.LoyaltyTier `json:"tier"`
	EnrolledAt       *time.Time          `json:"enrolled_at"`
	NextTier         *models.LoyaltyTier `json:"next_tier"`
	PointsToNextTier *int                `json:"points_to_next_tier"`
}

func (s *LoyaltyService) Status(guestID string) (*GuestLoyaltyStatus, error) {
	guest, err := s.guests.GetByID(guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	status := &GuestLoyaltyStatus{
		IsEnrolled:  guest.IsEnrolled(),
		CardNumber:  guest.LoyaltyCardNumber,
		Points:      guest.LoyaltyPoints,
		TotalPoints: guest.LoyaltyTotal,
		TotalStays:  guest.LoyaltyStays,
		Tier:        guest.LoyaltyTier,
		EnrolledAt:  guest.LoyaltyEnrolledAt,
	}
	if !guest.IsEnrolled() {
		return status, nil
	}
	ladder, err := s.tiers.List()
	if err != nil {
		return nil, err
	}
	if next := NextTier(guest.LoyaltyTier, ladder); next != nil {
		status.NextTier = next
		gap := next.MinPoints - guest.LoyaltyTotal
		if gap < 0 {
			gap = 0
		}
		status.PointsToNextTier = &gap
	}
	return status, nil
}

// Transactions returns one page of the guest's ledger, newest first. A guest
// without a card gets an empty page, not an error.
func (s *LoyaltyService) Transactions(guestID string, limit, offset int) ([]models.LoyaltyTransaction, int64, error) {
	guest, err := s.guests.GetByID(guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrGuestNotFound
		}
		return nil, 0, err
	}
	if !guest.IsEnrolled() {
		return []models.LoyaltyTransaction{}, 0, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.ledger.ListByGuest(guestID, limit, offset)
}

// recomputeTierTx re-evaluates the guest's tier against the given totals and
// writes the new tier id only when it changed.
func (s *LoyaltyService) recomputeTierTx(tx *gorm.DB, guest *models.Guest, totalPoints, totalStays int) error {
	program, err := s.programs.GetTx(tx)
	if err != nil {
		return err
	}
	ladder, err := s.tiers.ListTx(tx)
	if err != nil {
		return err
	}
	winner := QualifyTier(totalPoints, totalStays, program.TierMode, ladder)
	if winner == nil {
		return nil
	}
	if guest.LoyaltyTierID != nil && *guest.LoyaltyTierID == winner.ID {
		return nil
	}
	return s.guests.UpdateLoyalty(tx, guest.ID, map[string]interface{}{
		"loyalty_tier_id": winner.ID,
	})
}

func (s *LoyaltyService) audit(actor Actor, actionType, entityType, entityID string, oldValue, newValue interface{}) {
	if s.audits == nil {
		return
	}
	if err := s.audits.Record(actor.UserID, actionType, entityType, entityID, oldValue, newValue, actor.IP); err != nil {
		log.Printf("[audit] %s %s/%s: %v", actionType, entityType, entityID, err)
	}
}

func strPtr(s string) *string { return &s }
