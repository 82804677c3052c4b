package handler

import (
	"net/http"
	"strconv"
	"time"

	"stayloyal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LoyaltyHandler serves the per-guest loyalty operations.
type LoyaltyHandler struct {
	svc *service.LoyaltyService
}

func NewLoyaltyHandler(svc *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{svc: svc}
}

func (h *LoyaltyHandler) Status(c *gin.Context) {
	status, err := h.svc.Status(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *LoyaltyHandler) Enroll(c *gin.Context) {
	cardNumber, err := h.svc.Enroll(c.Param("id"), actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"card_number": cardNumber})
}

type LedgerRequest struct {
	Points         int     `json:"points" binding:"required"`
	Reason         string  `json:"reason" binding:"required"`
	ReservationID  *string `json:"reservation_id"`
	ReferenceType  *string `json:"reference_type"`
	ReferenceID    *string `json:"reference_id"`
	IdempotencyKey *string `json:"idempotency_key"`
}

func (h *LoyaltyHandler) Earn(c *gin.Context) {
	var req LedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	balance, err := h.svc.Earn(c.Param("id"), req.Points, req.Reason, h.options(c, &req), actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_balance": balance})
}

func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	var req LedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	balance, err := h.svc.Redeem(c.Param("id"), req.Points, req.Reason, h.options(c, &req), actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_balance": balance})
}

type AdjustRequest struct {
	Points int    `json:"points" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

func (h *LoyaltyHandler) Adjust(c *gin.Context) {
	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	createdBy, _ := c.Get("email")
	who, _ := createdBy.(string)
	balance, err := h.svc.Adjust(c.Param("id"), req.Points, req.Reason, who, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_balance": balance})
}

func (h *LoyaltyHandler) BirthdayBonus(c *gin.Context) {
	balance, err := h.svc.AwardBirthdayBonus(c.Param("id"), actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_balance": balance})
}

func (h *LoyaltyHandler) Transactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	rows, total, err := h.svc.Transactions(c.Param("id"), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": rows, "total": total})
}

// IncrementStays is the checkout hook bumping the stay counter.
func (h *LoyaltyHandler) IncrementStays(c *gin.Context) {
	if err := h.svc.IncrementStays(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type AwardStayRequest struct {
	ReservationID string          `json:"reservation_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CheckIn       time.Time       `json:"check_in" binding:"required"`
	CheckOut      time.Time       `json:"check_out" binding:"required"`
	RoomNumber    string          `json:"room_number"`
}

// AwardStay is the checkout hook converting the settled amount into points.
func (h *LoyaltyHandler) AwardStay(c *gin.Context) {
	var req AwardStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	awarded, err := h.svc.AwardForStay(c.Param("id"), req.ReservationID, req.Amount, service.StayDetails{
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		RoomNumber: req.RoomNumber,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points_awarded": awarded})
}

func (h *LoyaltyHandler) options(c *gin.Context, req *LedgerRequest) service.LedgerOptions {
	createdBy := ""
	if v, ok := c.Get("email"); ok {
		createdBy, _ = v.(string)
	}
	return service.LedgerOptions{
		ReservationID:  req.ReservationID,
		ReferenceType:  req.ReferenceType,
		ReferenceID:    req.ReferenceID,
		CreatedBy:      createdBy,
		IdempotencyKey: req.IdempotencyKey,
	}
}
