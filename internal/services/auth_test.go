package services

import (
	"testing"
	"time"

	"github.com/tse-auto/catalogue-server/internal/models"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func seedAdmin(t *testing.T, db *gorm.DB, email string, actif bool) models.AdminUser {
	hash, err := HashPassword("motdepasse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	user := models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Prenom:       "Test",
		Nom:          "Admin",
		Role:         models.RoleAdmin,
		Actif:        actif,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create admin user: %v", err)
	}
	return user
}

func TestLoginAndValidateSession(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db, "admin@tse-auto.com", true)

	result, err := Login(db, testSecret, "admin@tse-auto.com", "motdepasse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("Expected a signed token")
	}
	if time.Until(result.ExpiresAt) > SessionTTL || time.Until(result.ExpiresAt) < SessionTTL-time.Minute {
		t.Errorf("Unexpected expiry: %v", result.ExpiresAt)
	}

	user, err := ValidateSession(db, testSecret, result.Token)
	if err != nil {
		t.Fatalf("ValidateSession failed: %v", err)
	}
	if user.Email != "admin@tse-auto.com" {
		t.Errorf("Expected the logged-in user, got %s", user.Email)
	}
	if user.LastLoginAt == nil {
		t.Error("Expected last login recorded")
	}
}

func TestLoginRejections(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db, "admin@tse-auto.com", true)
	seedAdmin(t, db, "inactif@tse-auto.com", false)

	// Wrong password and unknown email yield the same message
	_, errPassword := Login(db, testSecret, "admin@tse-auto.com", "mauvais")
	_, errEmail := Login(db, testSecret, "inconnu@tse-auto.com", "motdepasse")
	if errPassword == nil || errEmail == nil {
		t.Fatal("Expected both logins to fail")
	}
	if errPassword.Error() != errEmail.Error() {
		t.Errorf("Credential errors must not reveal which part failed: %q vs %q", errPassword, errEmail)
	}

	if _, err := Login(db, testSecret, "inactif@tse-auto.com", "motdepasse"); err == nil {
		t.Error("Expected login rejected for inactive account")
	}
}

func TestValidateSessionRejections(t *testing.T) {
	db := setupTestDB(t)
	user := seedAdmin(t, db, "admin@tse-auto.com", true)

	result, err := Login(db, testSecret, "admin@tse-auto.com", "motdepasse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Wrong signing secret
	if _, err := ValidateSession(db, "autre-secret", result.Token); err == nil {
		t.Error("Expected rejection for a token signed with another secret")
	}

	// Garbage token
	if _, err := ValidateSession(db, testSecret, "not-a-jwt"); err == nil {
		t.Error("Expected rejection for a malformed token")
	}

	// Valid JWT but no session row behind it
	if err := db.Where("user_id = ?", user.ID).Delete(&models.UserSession{}).Error; err != nil {
		t.Fatalf("Failed to delete sessions: %v", err)
	}
	if _, err := ValidateSession(db, testSecret, result.Token); err == nil {
		t.Error("Expected rejection once the session row is gone")
	}
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db, "admin@tse-auto.com", true)

	result, err := Login(db, testSecret, "admin@tse-auto.com", "motdepasse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := Logout(db, testSecret, result.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := ValidateSession(db, testSecret, result.Token); err == nil {
		t.Error("Expected the session invalid after logout")
	}

	// Logging out twice is not an error
	if err := Logout(db, testSecret, result.Token); err != nil {
		t.Errorf("Second logout failed: %v", err)
	}
}
