package dto

import (
	"time"

	"smarthr_backend/internal/models"
)

type RegisterRequest struct {
	Username        string          `json:"username" validate:"required,min=3,max=50"`
	Email           string          `json:"email" validate:"omitempty,email"`
	Phone           string          `json:"phone" validate:"omitempty,e164"`
	Password        string          `json:"password" validate:"required,min=8"`
	PasswordConfirm string          `json:"password_confirm" validate:"required,eqfield=Password"`
	FullName        string          `json:"full_name" validate:"required,min=2,max=120"`
	Role            models.UserRole `json:"role" validate:"required,is-user-role"`
}

// LoginRequest accepts a username, email or phone in the login field.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type SendPhoneCodeRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type VerifyPhoneRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,sms-code"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

type UserDTO struct {
	ID              string          `json:"id"`
	Username        string          `json:"username"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	FullName        string          `json:"full_name"`
	Role            models.UserRole `json:"role"`
	IsPhoneVerified bool            `json:"is_phone_verified"`
	IsEmailVerified bool            `json:"is_email_verified"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewUserDTO(user *models.User) UserDTO {
	d := UserDTO{
		ID:              user.ID,
		Username:        user.Username,
		FullName:        user.FullName,
		Role:            user.Role,
		IsPhoneVerified: user.IsPhoneVerified,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
	}
	if user.Email != nil {
		d.Email = *user.Email
	}
	if user.Phone != nil {
		d.Phone = *user.Phone
	}
	return d
}
