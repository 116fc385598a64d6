package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"smarthr_backend/internal/auth"
	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services/dto"
	"smarthr_backend/internal/sms"
	"smarthr_backend/pkg/apperrors"
)

const phoneCodeTTL = 10 * time.Minute

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(refreshToken string) (*dto.AuthResponse, error)
	Logout(refreshToken string) error
	SendPhoneCode(ctx context.Context, userID, phone string) error
	VerifyPhone(ctx context.Context, userID string, req *dto.VerifyPhoneRequest) error
	ChangePassword(userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	tokens      *auth.TokenManager
	smsProvider sms.Provider
	refreshTTL  time.Duration
	tasks       TaskEnqueuer
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	tokens *auth.TokenManager,
	smsProvider sms.Provider,
	refreshTTL time.Duration,
	tasks TaskEnqueuer,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		smsProvider: smsProvider,
		refreshTTL:  refreshTTL,
		tasks:       tasks,
	}
}

func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if req.Email == "" && req.Phone == "" {
		return nil, apperrors.NewBadRequestError("Either email or phone is required")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}
	if req.Email != "" {
		email := strings.ToLower(req.Email)
		user.Email = &email
	}
	if req.Phone != "" {
		phone := req.Phone
		user.Phone = &phone
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.profileRepo.Create(&models.Profile{UserID: user.ID}); err != nil {
		// Roll back the account so registration can be retried cleanly
		_ = s.userRepo.Delete(user.ID)
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.findByLogin(req.Login)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// findByLogin resolves the login field against username, email and phone in turn.
func (s *AuthServiceImpl) findByLogin(login string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(login)
	if err == nil {
		return user, nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	user, err = s.userRepo.FindByEmail(strings.ToLower(login))
	if err == nil {
		return user, nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	return s.userRepo.FindByPhone(login)
}

// RefreshToken rotates the refresh token: the presented token is consumed
// and a new pair is issued.
func (s *AuthServiceImpl) RefreshToken(refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) SendPhoneCode(ctx context.Context, userID, phone string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	// A phone registered to another account cannot be claimed.
	if existing, err := s.userRepo.FindByPhone(phone); err == nil && existing.ID != user.ID {
		return apperrors.ErrPhoneAlreadyExists
	}

	code, err := sms.GenerateCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	verification := &models.PhoneVerification{
		UserID:    user.ID,
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(phoneCodeTTL),
	}
	if err := s.userRepo.CreatePhoneVerification(verification); err != nil {
		return apperrors.InternalError(err)
	}

	// Gateway delivery happens off the request cycle. When the pool has
	// no room the send runs inline so the code still goes out.
	body := fmt.Sprintf("Your SmartHR verification code is %s. It expires in 10 minutes.", code)
	queued := s.tasks.Enqueue("phone-verification-sms", func(taskCtx context.Context) {
		if err := s.smsProvider.Send(taskCtx, phone, body); err != nil {
			logger.CtxWithError(taskCtx, "failed to send verification SMS", err, "user_id", user.ID)
		}
	})
	if !queued {
		if err := s.smsProvider.Send(ctx, phone, body); err != nil {
			logger.CtxWithError(ctx, "failed to send verification SMS", err, "user_id", user.ID)
			return apperrors.InternalError(err)
		}
	}

	return nil
}

func (s *AuthServiceImpl) VerifyPhone(ctx context.Context, userID string, req *dto.VerifyPhoneRequest) error {
	verification, err := s.userRepo.FindActiveVerification(userID, req.Phone)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return apperrors.ErrVerificationCodeInvalid
		}
		return apperrors.InternalError(err)
	}

	if verification.Code != req.Code || verification.IsExpired(time.Now()) {
		return apperrors.ErrVerificationCodeInvalid
	}

	if err := s.userRepo.MarkVerificationUsed(verification.ID); err != nil {
		return apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	phone := req.Phone
	user.Phone = &phone
	user.IsPhoneVerified = true
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

func (s *AuthServiceImpl) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashed
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	// Existing sessions are invalidated on password change
	if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := generateOpaqueToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.userRepo.CreateRefreshToken(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserDTO(user),
	}, nil
}

func generateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
