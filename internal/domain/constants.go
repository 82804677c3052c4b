package domain

const (
	RoleManager   = "MANAGER"
	RoleReception = "RECEPTION"
)

const (
	TxTypeEarn       = "EARN"
	TxTypeRedeem     = "REDEEM"
	TxTypeBonus      = "BONUS"
	TxTypeAdjustment = "ADJUSTMENT"
)

const (
	TierModePoints   = "POINTS"
	TierModeStays    = "STAYS"
	TierModeCombined = "COMBINED"
)

const (
	RefTypeReservation = "RESERVATION"
	RefTypeEnrollment  = "ENROLLMENT"
	RefTypeBirthday    = "BIRTHDAY"
	RefTypeManual      = "MANUAL"
)

const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
)

// CreatedBySystem marks ledger rows written by automatic flows (checkout, enrollment).
const CreatedBySystem = "SYSTEM"

// ProgramID is the singleton loyalty program row key.
const ProgramID = "default"

// Tier benefit codes. Tiers carry a subset of these in their benefits column;
// anything outside this set belongs in custom_benefits.
const (
	BenefitEarlyCheckIn    = "EARLY_CHECK_IN"
	BenefitLateCheckOut    = "LATE_CHECK_OUT"
	BenefitRoomUpgrade     = "ROOM_UPGRADE"
	BenefitWelcomeDrink    = "WELCOME_DRINK"
	BenefitFreeBreakfast   = "FREE_BREAKFAST"
	BenefitPrioritySupport = "PRIORITY_SUPPORT"
	BenefitLoungeAccess    = "LOUNGE_ACCESS"
	BenefitFreeParking     = "FREE_PARKING"
)

// KnownBenefits lists every benefit code the tier editor offers.
var KnownBenefits = []string{
	BenefitEarlyCheckIn,
	BenefitLateCheckOut,
	BenefitRoomUpgrade,
	BenefitWelcomeDrink,
	BenefitFreeBreakfast,
	BenefitPrioritySupport,
	BenefitLoungeAccess,
	BenefitFreeParking,
}
