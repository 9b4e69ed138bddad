package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin roles
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AdminUser represents a back-office account
type AdminUser struct {
	ID           string     `gorm:"type:char(36);primaryKey" json:"id"`
	Email        string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Prenom       string     `gorm:"size:100" json:"prenom"`
	Nom          string     `gorm:"size:100" json:"nom"`
	Role         string     `gorm:"size:20;not null;default:admin" json:"role"`
	Actif        bool       `gorm:"not null;default:true" json:"actif"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName overrides the table name for AdminUser
func (AdminUser) TableName() string {
	return "admin_users"
}

// BeforeCreate assigns a UUID primary key when missing
func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserSession is a server-side session row backing the auth cookie.
// TokenHash stores bcrypt(sha256(token)); lookups go through the user id
// carried by the verified JWT, never by hash.
type UserSession struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index" json:"user_id"`
	TokenHash string    `gorm:"size:100;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for UserSession
func (UserSession) TableName() string {
	return "user_sessions"
}

// BeforeCreate assigns a UUID primary key when missing
func (s *UserSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
