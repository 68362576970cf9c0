package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// AdminUser represents admin_users table. A user is an administrator only
// when a row exists here and IsSuperAdmin is true.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	IsSuperAdmin bool      `gorm:"default:false" json:"is_super_admin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Forms Table
// ============================================================

// Form statuses
const (
	FormStatusPending  = "pending"
	FormStatusReviewed = "reviewed"
	FormStatusApproved = "approved"
)

// ValidAdminStatus reports whether a status may be set through admin review
func ValidAdminStatus(status string) bool {
	return status == FormStatusPending || status == FormStatusReviewed
}

// Form represents one submitted intake form
type Form struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"index;not null" json:"user_id"`
	FormType  string            `gorm:"size:50;not null" json:"form_type"`
	FormData  datatypes.JSONMap `gorm:"not null" json:"form_data"`
	Token     string            `gorm:"uniqueIndex;size:32;not null" json:"token"`
	Status    string            `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Form) TableName() string {
	return "forms"
}

// FormResponse DTO
type FormResponse struct {
	ID         uint              `json:"id"`
	UserID     uint              `json:"user_id"`
	FormType   string            `json:"form_type"`
	FormData   datatypes.JSONMap `json:"form_data"`
	Token      string            `json:"token"`
	Status     string            `json:"status"`
	OwnerEmail string            `json:"owner_email,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (f *Form) ToResponse() *FormResponse {
	return &FormResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		FormType:  f.FormType,
		FormData:  f.FormData,
		Token:     f.Token,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&AdminUser{},
		&RefreshToken{},
		&Form{},
	)
}
