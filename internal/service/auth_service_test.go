package service

import (
	"errors"
	"testing"

	"github.com/bombershop-next/internal/config"
	"github.com/bombershop-next/internal/models"
	"github.com/bombershop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) *AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	db.Exec("DELETE FROM admins")

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-for-auth-tests-only"
	cfg.JWT.ExpireHours = 1

	svc := NewAuthService(cfg, repository.NewAdminRepository(db))

	hash, err := svc.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if err := db.Create(&models.Admin{Username: "admin", PasswordHash: hash, IsSuper: true}).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return svc
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := setupAuthServiceTest(t)

	admin, token, expiresAt, err := svc.Login("admin", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin.Username != "admin" {
		t.Fatalf("username want admin got %s", admin.Username)
	}
	if token == "" {
		t.Fatalf("token should not be empty")
	}
	if expiresAt.IsZero() {
		t.Fatalf("expiry should be set")
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last login time should be recorded")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID {
		t.Fatalf("claims admin id want %d got %d", admin.ID, claims.AdminID)
	}
	if claims.Username != "admin" {
		t.Fatalf("claims username want admin got %s", claims.Username)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := setupAuthServiceTest(t)

	if _, _, _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := setupAuthServiceTest(t)

	admin, _, _, err := svc.Login("admin", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "wrong", "new-password-123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "correct-horse", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short new password want ErrInvalidInput got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "correct-horse", "new-password-123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login("admin", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work")
	}
	if _, _, _, err := svc.Login("admin", "new-password-123"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestParseJWTRejectsForeignToken(t *testing.T) {
	svc := setupAuthServiceTest(t)

	otherCfg := &config.Config{}
	otherCfg.JWT.SecretKey = "another-secret-key-entirely-here"
	otherCfg.JWT.ExpireHours = 1
	other := NewAuthService(otherCfg, nil)

	token, _, err := other.GenerateJWT(&models.Admin{ID: 9, Username: "evil"})
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseJWT(token); err == nil {
		t.Fatalf("token signed with other key should be rejected")
	}
}
