package models

import "time"

type User struct {
	BaseModel
	Username        string   `gorm:"uniqueIndex;not null" json:"username"`
	Email           *string  `gorm:"uniqueIndex" json:"email"`
	Phone           *string  `gorm:"uniqueIndex" json:"phone"`
	FullName        string   `gorm:"not null" json:"full_name"`
	PasswordHash    string   `gorm:"not null" json:"-"`
	Role            UserRole `gorm:"type:varchar(20);not null;default:'candidate'" json:"role"`
	IsPhoneVerified bool     `gorm:"default:false" json:"is_phone_verified"`
	IsEmailVerified bool     `gorm:"default:false" json:"is_email_verified"`

	// Relations
	Profile       *Profile       `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) IsCandidate() bool  { return u.Role == UserRoleCandidate }
func (u *User) IsEmployer() bool   { return u.Role == UserRoleEmployer }
func (u *User) IsGovernment() bool { return u.Role == UserRoleGovernment }

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// PhoneVerification is a single-use SMS code issued for phone confirmation.
type PhoneVerification struct {
	BaseModel
	UserID     string    `gorm:"not null;index" json:"user_id"`
	Phone      string    `gorm:"not null" json:"phone"`
	Code       string    `gorm:"type:varchar(6);not null" json:"-"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
}

func (v *PhoneVerification) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
