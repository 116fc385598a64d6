package services

import (
	"strings"

	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services/dto"
	"smarthr_backend/pkg/apperrors"
)

type UserService interface {
	GetByID(id string) (*models.User, error)
	Update(userID string, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(userID string) error
	List(query *dto.UserListQuery) (*dto.UserListResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) Update(userID string, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if existing, err := s.userRepo.FindByEmail(email); err == nil && existing.ID != user.ID {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		// Changing the address requires re-verification
		if user.Email == nil || *user.Email != email {
			user.IsEmailVerified = false
		}
		user.Email = &email
	}
	if req.Phone != nil {
		if existing, err := s.userRepo.FindByPhone(*req.Phone); err == nil && existing.ID != user.ID {
			return nil, apperrors.ErrPhoneAlreadyExists
		}
		if user.Phone == nil || *user.Phone != *req.Phone {
			user.IsPhoneVerified = false
		}
		user.Phone = req.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) Delete(userID string) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) List(query *dto.UserListQuery) (*dto.UserListResponse, error) {
	filter := repositories.UserFilter{
		Role:     query.Role,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	users, total, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	dtos := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, dto.NewUserDTO(&users[i]))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return &dto.UserListResponse{
		Users:    dtos,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
