package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/globalforge/marketplace/internal/config"
	"github.com/globalforge/marketplace/internal/constants"
	"github.com/globalforge/marketplace/internal/models"
	"github.com/globalforge/marketplace/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserAuthTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:user_auth_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-secret-key-for-auth-service-tests"
	cfg.UserJWT.ExpireHours = 24

	svc := NewUserAuthService(cfg, repository.NewUserRepository(db))
	return svc, db
}

func createAuthUser(t *testing.T, db *gorm.DB, email, password, status string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := models.User{Email: email, PasswordHash: string(hash), DisplayName: email, Status: status}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func TestLoginSuccess(t *testing.T) {
	svc, db := setupUserAuthTest(t)
	createAuthUser(t, db, "buyer@example.com", "Buyer123!", constants.UserStatusActive)

	user, token, expiresAt, err := svc.Login("buyer@example.com", "Buyer123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Email != "buyer@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Fatalf("expected token issued")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %s", expiresAt)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc, db := setupUserAuthTest(t)
	createAuthUser(t, db, "buyer@example.com", "Buyer123!", constants.UserStatusActive)

	if _, _, _, err := svc.Login("  Buyer@Example.COM ", "Buyer123!"); err != nil {
		t.Fatalf("login with unnormalized email failed: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, db := setupUserAuthTest(t)
	createAuthUser(t, db, "buyer@example.com", "Buyer123!", constants.UserStatusActive)

	if _, _, _, err := svc.Login("buyer@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := setupUserAuthTest(t)

	if _, _, _, err := svc.Login("ghost@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	svc, db := setupUserAuthTest(t)
	createAuthUser(t, db, "buyer@example.com", "Buyer123!", constants.UserStatusDisabled)

	if _, _, _, err := svc.Login("buyer@example.com", "Buyer123!"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestParseUserJWTRejectsTamperedToken(t *testing.T) {
	svc, db := setupUserAuthTest(t)
	user := createAuthUser(t, db, "buyer@example.com", "Buyer123!", constants.UserStatusActive)

	token, _, err := svc.GenerateUserJWT(user, 1)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseUserJWT(token + "x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}
