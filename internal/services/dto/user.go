package dto

import "smarthr_backend/internal/models"

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,e164"`
}

type UserListQuery struct {
	Role     models.UserRole `form:"role" validate:"omitempty,oneof=candidate employer gov admin"`
	Search   string          `form:"search"`
	Page     int             `form:"page" validate:"omitempty,min=1"`
	PageSize int             `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type UserListResponse struct {
	Users    []UserDTO `json:"users"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
