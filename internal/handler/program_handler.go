package handler

import (
	"net/http"

	"stayloyal/internal/middleware"
	"stayloyal/internal/models"
	"stayloyal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProgramHandler serves the program configuration and tier ladder admin.
type ProgramHandler struct {
	svc *service.LoyaltyService
}

func NewProgramHandler(svc *service.LoyaltyService) *ProgramHandler {
	return &ProgramHandler{svc: svc}
}

func (h *ProgramHandler) GetProgram(c *gin.Context) {
	p, err := h.svc.Program()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type UpdateProgramRequest struct {
	Name              *string          `json:"name"`
	IsActive          *bool            `json:"is_active"`
	PointsPerCurrency *decimal.Decimal `json:"points_per_currency"`
	PointsForCheckIn  *int             `json:"points_for_check_in"`
	PointsForBirthday *int             `json:"points_for_birthday"`
	TierMode          *string          `json:"tier_calculation_mode" binding:"omitempty,oneof=POINTS STAYS COMBINED"`
	CardNumberPrefix  *string          `json:"card_number_prefix"`
	TermsURL          *string          `json:"terms_url"`
	WelcomeMessage    *string          `json:"welcome_message"`
}

func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.UpdateProgram(service.ProgramPatch{
		Name:              req.Name,
		IsActive:          req.IsActive,
		PointsPerCurrency: req.PointsPerCurrency,
		PointsForCheckIn:  req.PointsForCheckIn,
		PointsForBirthday: req.PointsForBirthday,
		TierMode:          req.TierMode,
		CardNumberPrefix:  req.CardNumberPrefix,
		TermsURL:          req.TermsURL,
		WelcomeMessage:    req.WelcomeMessage,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProgramHandler) ListTiers(c *gin.Context) {
	tiers, err := h.svc.ListTiers()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tiers": tiers})
}

type UpdateTierRequest struct {
	Name               *string                `json:"name"`
	MinPoints          *int                   `json:"min_points"`
	MinStays           *int                   `json:"min_stays"`
	Color              *string                `json:"color"`
	Icon               *string                `json:"icon"`
	DiscountPercent    *decimal.Decimal       `json:"discount_percent"`
	BonusPointsPercent *decimal.Decimal       `json:"bonus_points_percent"`
	Benefits           []string               `json:"benefits"`
	CustomBenefits     []models.CustomBenefit `json:"custom_benefits"`
	IsDefault          *bool                  `json:"is_default"`
}

func (h *ProgramHandler) UpdateTier(c *gin.Context) {
	var req UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.UpdateTier(c.Param("id"), service.TierPatch{
		Name:               req.Name,
		MinPoints:          req.MinPoints,
		MinStays:           req.MinStays,
		Color:              req.Color,
		Icon:               req.Icon,
		DiscountPercent:    req.DiscountPercent,
		BonusPointsPercent: req.BonusPointsPercent,
		Benefits:           req.Benefits,
		CustomBenefits:     req.CustomBenefits,
		IsDefault:          req.IsDefault,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// actorFrom builds the audit actor from the authenticated request.
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{IP: c.ClientIP()}
	if id := middleware.GetUserID(c); id != 0 {
		actor.UserID = &id
	}
	return actor
}
