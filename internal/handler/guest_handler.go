package handler

import (
	"errors"
	"net/http"
	"time"

	"stayloyal/internal/models"
	"stayloyal/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GuestHandler is the thin guest-directory surface. Profile management
// proper lives in the front-desk system; the loyalty engine only needs
// create and lookup.
type GuestHandler struct {
	guests *repository.GuestRepository
}

func NewGuestHandler(guests *repository.GuestRepository) *GuestHandler {
	return &GuestHandler{guests: guests}
}

type CreateGuestRequest struct {
	FirstName string     `json:"first_name" binding:"required"`
	LastName  string     `json:"last_name" binding:"required"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Phone     *string    `json:"phone"`
	Birthday  *time.Time `json:"birthday"`
}

func (h *GuestHandler) Create(c *gin.Context) {
	var req CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g := models.Guest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Birthday:  req.Birthday,
	}
	if err := h.guests.Create(&g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "guest create failed"})
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *GuestHandler) Get(c *gin.Context) {
	g, err := h.guests.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "guest lookup failed"})
		return
	}
	c.JSON(http.StatusOK, g)
}
