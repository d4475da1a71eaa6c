package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

type User struct {
	ID              string         `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	Email           string         `json:"email" gorm:"uniqueIndex"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Role            string         `json:"role"`
	LinkedinURL     string         `json:"linkedin_url,omitempty"`
	Password        string         `json:"-"`
	OTP             string         `json:"-"`
	OTPExpiry       *time.Time     `json:"-"`
	EmailVerified   bool           `json:"email_verified"`
	SignupCompleted bool           `json:"signup_completed"`
	FirebaseUID     *string        `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
	Status          UserStatus     `json:"status" gorm:"size:20;default:INACTIVE"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserCompact is the display subset joined into other records.
type UserCompact struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
