package router

import (
	"time"

	"stayloyal/config"
	"stayloyal/internal/domain"
	"stayloyal/internal/handler"
	"stayloyal/internal/middleware"
	"stayloyal/internal/repository"
	"stayloyal/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	guestRepo := repository.NewGuestRepository(db)
	programRepo := repository.NewProgramRepository(db)
	tierRepo := repository.NewTierRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, staffRepo)
	loyaltySvc := service.NewLoyaltyService(db, guestRepo, programRepo, tierRepo, txRepo, auditRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	programHandler := handler.NewProgramHandler(loyaltySvc)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltySvc)
	guestHandler := handler.NewGuestHandler(guestRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	managerMw := middleware.RequireRole(domain.RoleManager)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		loyalty := api.Group("/loyalty")
		loyalty.Use(authMw)
		{
			loyalty.GET("/program", programHandler.GetProgram)
			loyalty.PATCH("/program", managerMw, programHandler.UpdateProgram)
			loyalty.GET("/tiers", programHandler.ListTiers)
			loyalty.PATCH("/tiers/:id", managerMw, programHandler.UpdateTier)
		}

		guests := api.Group("/guests")
		guests.Use(authMw)
		{
			guests.POST("", guestHandler.Create)
			guests.GET("/:id", guestHandler.Get)
			guests.GET("/:id/loyalty", loyaltyHandler.Status)
			guests.POST("/:id/loyalty/enroll", loyaltyHandler.Enroll)
			guests.POST("/:id/loyalty/earn", loyaltyHandler.Earn)
			guests.POST("/:id/loyalty/redeem", loyaltyHandler.Redeem)
			guests.POST("/:id/loyalty/adjust", managerMw, loyaltyHandler.Adjust)
			guests.POST("/:id/loyalty/birthday-bonus", loyaltyHandler.BirthdayBonus)
			guests.GET("/:id/loyalty/transactions", loyaltyHandler.Transactions)
			guests.POST("/:id/loyalty/stays", loyaltyHandler.IncrementStays)
			guests.POST("/:id/loyalty/award-stay", loyaltyHandler.AwardStay)
		}
	}

	return r
}
