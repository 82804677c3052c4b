package database

import (
	"log"

	"stayloyal/config"
	"stayloyal/internal/domain"
	"stayloyal/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.StaffUser{},
		&models.Guest{},
		&models.LoyaltyProgram{},
		&models.LoyaltyTier{},
		&models.LoyaltyTransaction{},
		&models.AuditLog{},
	)
}

// SeedManager creates the initial manager account if no staff user exists yet.
func SeedManager(db *gorm.DB, cfg *config.SeedConfig) {
	var count int64
	db.Model(&models.StaffUser{}).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.ManagerPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[seed] manager password hash: %v", err)
		return
	}
	u := models.StaffUser{
		Email:        cfg.ManagerEmail,
		Name:         "Manager",
		PasswordHash: string(hash),
		Role:         domain.RoleManager,
	}
	if err := db.Create(&u).Error; err != nil {
		log.Printf("[seed] manager account: %v", err)
		return
	}
	log.Printf("[seed] created manager account %s", u.Email)
}
