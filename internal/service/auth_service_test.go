package service

import (
	"fmt"
	"testing"

	"stayloyal/config"
	"stayloyal/internal/auth"
	"stayloyal/internal/database"
	"stayloyal/internal/domain"
	"stayloyal/internal/models"
	"stayloyal/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (*AuthService, *config.Config) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	staff := repository.NewStaffRepository(db)
	require.NoError(t, staff.Create(&models.StaffUser{
		Email:        "manager@hotel.local",
		Name:         "Manager",
		PasswordHash: string(hash),
		Role:         domain.RoleManager,
	}))

	cfg := config.Load()
	return NewAuthService(cfg, staff), cfg
}

func TestLoginIssuesTokens(t *testing.T) {
	svc, cfg := setupAuth(t)

	u, access, refresh, err := svc.Login("manager@hotel.local", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "manager@hotel.local", u.Email)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := auth.ParseAccessToken(&cfg.JWT, access)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, domain.RoleManager, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := setupAuth(t)

	_, _, _, err := svc.Login("manager@hotel.local", "wrong")
	require.ErrorIs(t, err, ErrInvalidCreds)

	_, _, _, err = svc.Login("nobody@hotel.local", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestRefreshRotatesAccessToken(t *testing.T) {
	svc, cfg := setupAuth(t)

	u, _, refresh, err := svc.Login("manager@hotel.local", "s3cret")
	require.NoError(t, err)

	access, err := svc.Refresh(refresh)
	require.NoError(t, err)
	claims, err := auth.ParseAccessToken(&cfg.JWT, access)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)

	_, err = svc.Refresh("not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
