package services

import (
	"crypto/sha256"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tse-auto/catalogue-server/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthCookieName is the admin session cookie.
const AuthCookieName = "tse-auth-token"

// SessionTTL is the lifetime of a session and its cookie.
const SessionTTL = 7 * 24 * time.Hour

// LoginResult carries the signed token and its owner back to the handler.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.AdminUser
}

// Login verifies credentials, signs a JWT and records the session row.
func Login(db *gorm.DB, secret, email, password string) (*LoginResult, error) {
	var user models.AdminUser
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("identifiants invalides")
		}
		return nil, err
	}

	if !user.Actif {
		return nil, fmt.Errorf("compte désactivé")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("identifiants invalides")
	}

	expiresAt := time.Now().Add(SessionTTL)
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"exp":    jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	hash, err := hashToken(token)
	if err != nil {
		return nil, err
	}

	session := models.UserSession{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: expiresAt,
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}

	// Opportunistic cleanup of this user's expired sessions
	if err := db.Where("user_id = ? AND expires_at <= ?", user.ID, time.Now()).
		Delete(&models.UserSession{}).Error; err != nil {
		log.Printf("Failed to purge expired sessions for %s: %v", user.Email, err)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		log.Printf("Failed to record last login for %s: %v", user.Email, err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ValidateSession verifies the JWT, cross-checks the server-side session row
// and returns the active user.
func ValidateSession(db *gorm.DB, secret, token string) (*models.AdminUser, error) {
	userID, _, err := parseToken(secret, token)
	if err != nil {
		return nil, err
	}

	session, err := findSession(db, userID, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session inconnue ou expirée")
	}

	var user models.AdminUser
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("utilisateur inconnu")
		}
		return nil, err
	}
	if !user.Actif {
		return nil, fmt.Errorf("compte désactivé")
	}

	return &user, nil
}

// Logout deletes the session row matching the token. A token that no longer
// matches a session is not an error.
func Logout(db *gorm.DB, secret, token string) error {
	userID, _, err := parseToken(secret, token)
	if err != nil {
		return nil
	}

	session, err := findSession(db, userID, token)
	if err != nil || session == nil {
		return err
	}
	return db.Delete(session).Error
}

// parseToken verifies signature and expiry and extracts userId and role.
func parseToken(secret, token string) (userID, role string, err error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", "", fmt.Errorf("jeton invalide")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("jeton invalide")
	}
	userID, _ = claims["userId"].(string)
	role, _ = claims["role"].(string)
	if userID == "" {
		return "", "", fmt.Errorf("jeton invalide")
	}
	return userID, role, nil
}

// findSession scans the user's live sessions for one whose bcrypt hash matches
// the token. bcrypt hashes are salted, so lookup by hash is impossible; the
// user id from the verified JWT narrows the scan instead.
func findSession(db *gorm.DB, userID, token string) (*models.UserSession, error) {
	var sessions []models.UserSession
	if err := db.Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	digest := sha256.Sum256([]byte(token))
	for i := range sessions {
		if bcrypt.CompareHashAndPassword([]byte(sessions[i].TokenHash), digest[:]) == nil {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// hashToken bcrypts the token digest. bcrypt caps its input at 72 bytes and a
// JWT is longer, so the token is reduced to sha256 first.
func hashToken(token string) (string, error) {
	digest := sha256.Sum256([]byte(token))
	hash, err := bcrypt.GenerateFromPassword(digest[:], bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hash), nil
}

// HashPassword bcrypts an admin password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
