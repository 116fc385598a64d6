package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"smarthr_backend/internal/algorithms"
	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services/dto"
	"smarthr_backend/internal/storage"
	"smarthr_backend/pkg/apperrors"
)

// UploadLimits constrains incoming file uploads.
type UploadLimits struct {
	MaxSize      int64
	AllowedTypes []string
}

type ProfileService interface {
	GetByUserID(userID string) (*models.Profile, error)
	Update(userID string, req *dto.UpdateProfileRequest) (*models.Profile, error)
	ScoreQuality(userID string) (*dto.ProfileQualityResponse, error)

	UploadCV(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (*dto.CVUploadResponse, error)
	ProcessCV(ctx context.Context, cvID string) error
	DeleteCV(ctx context.Context, userID, cvID string) error
	GetCVDownloadURL(ctx context.Context, userID, cvID string) (string, error)

	UploadAvatar(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (string, error)

	AddCertificate(userID string, req *dto.CertificateRequest) (*models.Certificate, error)
	DeleteCertificate(userID, certID string) error
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	store       storage.Storage
	tasks       TaskEnqueuer
	limits      UploadLimits
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	store storage.Storage,
	tasks TaskEnqueuer,
	limits UploadLimits,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		store:       store,
		tasks:       tasks,
		limits:      limits,
	}
}

func (s *ProfileServiceImpl) GetByUserID(userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) Update(userID string, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = req.DateOfBirth
	}
	if req.Skills != nil {
		profile.Skills = pq.StringArray(req.Skills)
	}
	if req.Languages != nil {
		profile.Languages = pq.StringArray(req.Languages)
	}
	if req.Education != nil {
		profile.Education = datatypes.JSON(req.Education)
	}
	if req.Experience != nil {
		profile.Experience = datatypes.JSON(req.Experience)
	}
	if req.Certifications != nil {
		profile.Certifications = datatypes.JSON(req.Certifications)
	}
	if req.LinkedinURL != nil {
		profile.LinkedinURL = *req.LinkedinURL
	}
	if req.GithubURL != nil {
		profile.GithubURL = *req.GithubURL
	}
	if req.PortfolioURL != nil {
		profile.PortfolioURL = *req.PortfolioURL
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Re-score in the background; the sweep worker picks it up if the
	// queue is full.
	profileID := profile.ID
	s.tasks.Enqueue("profile-quality", func(ctx context.Context) {
		if _, err := s.scoreProfile(profileID); err != nil {
			logger.CtxWithError(ctx, "profile quality rescore failed", err, "profile_id", profileID)
		}
	})

	return profile, nil
}

func (s *ProfileServiceImpl) ScoreQuality(userID string) (*dto.ProfileQualityResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return s.scoreProfile(profile.ID)
}

func (s *ProfileServiceImpl) scoreProfile(profileID string) (*dto.ProfileQualityResponse, error) {
	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	score, analysis := algorithms.AnalyzeProfile(profile)
	now := time.Now()

	if err := s.profileRepo.UpdateQualityScore(profile.ID, score, now); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ProfileQualityResponse{
		Score:    score,
		ScoredAt: now,
		Analysis: analysis,
	}, nil
}

func (s *ProfileServiceImpl) UploadCV(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (*dto.CVUploadResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.checkUpload(contentType, size); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("cvs/%s/%s%s", profile.ID, uuid.NewString(), filepath.Ext(filename))
	if err := s.store.Save(ctx, key, reader, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	cv := &models.CV{
		ProfileID:        profile.ID,
		StorageKey:       key,
		OriginalFilename: filename,
		FileType:         contentType,
		FileSize:         size,
	}
	if err := s.profileRepo.CreateCV(cv); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, apperrors.InternalError(err)
	}

	cvID := cv.ID
	s.tasks.Enqueue("cv-extraction", func(ctx context.Context) {
		if err := s.ProcessCV(ctx, cvID); err != nil {
			logger.CtxWithError(ctx, "cv extraction failed", err, "cv_id", cvID)
		}
	})

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		url = ""
	}

	return &dto.CVUploadResponse{CV: *cv, URL: url}, nil
}

// ProcessCV pulls the stored document, extracts recognizable text and
// skills, and merges newly found skills into the profile.
func (s *ProfileServiceImpl) ProcessCV(ctx context.Context, cvID string) error {
	cv, err := s.profileRepo.FindCVByID(cvID)
	if err != nil {
		return err
	}
	if cv.Processed {
		return nil
	}

	body, err := s.store.Get(ctx, cv.StorageKey)
	if err != nil {
		return err
	}
	defer body.Close()

	// Cap the read; CVs are small documents
	raw, err := io.ReadAll(io.LimitReader(body, 4<<20))
	if err != nil {
		return err
	}

	text := extractPlainText(raw)
	skills := algorithms.ExtractSkills(text)

	if err := s.profileRepo.UpdateCVExtraction(cv.ID, text, skills, time.Now()); err != nil {
		return err
	}

	if len(skills) > 0 {
		if err := s.mergeSkills(cv.ProfileID, skills); err != nil {
			return err
		}

		// The merged skills change profile completeness, so re-score
		profileID := cv.ProfileID
		s.tasks.Enqueue("profile-quality", func(ctx context.Context) {
			if _, err := s.scoreProfile(profileID); err != nil {
				logger.CtxWithError(ctx, "profile quality rescore failed", err, "profile_id", profileID)
			}
		})
	}

	return nil
}

func (s *ProfileServiceImpl) mergeSkills(profileID string, extracted []string) error {
	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(profile.Skills))
	for _, skill := range profile.Skills {
		existing[strings.ToLower(skill)] = true
	}

	changed := false
	for _, skill := range extracted {
		if !existing[strings.ToLower(skill)] {
			profile.Skills = append(profile.Skills, skill)
			changed = true
		}
	}
	if !changed {
		return nil
	}

	return s.profileRepo.Update(profile)
}

func (s *ProfileServiceImpl) DeleteCV(ctx context.Context, userID, cvID string) error {
	cv, err := s.authorizeCV(userID, cvID)
	if err != nil {
		return err
	}

	if err := s.profileRepo.DeleteCV(cv.ID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.store.Delete(ctx, cv.StorageKey); err != nil {
		logger.CtxWithError(ctx, "failed to delete cv object", err, "key", cv.StorageKey)
	}

	return nil
}

func (s *ProfileServiceImpl) GetCVDownloadURL(ctx context.Context, userID, cvID string) (string, error) {
	cv, err := s.authorizeCV(userID, cvID)
	if err != nil {
		return "", err
	}

	url, err := s.store.GetSignedURL(ctx, cv.StorageKey, 15*time.Minute)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

func (s *ProfileServiceImpl) authorizeCV(userID, cvID string) (*models.CV, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	cv, err := s.profileRepo.FindCVByID(cvID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCVNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if cv.ProfileID != profile.ID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return cv, nil
}

func (s *ProfileServiceImpl) UploadAvatar(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (string, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return "", apperrors.ErrNotFound(err)
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.ErrInvalidFileType
	}
	if s.limits.MaxSize > 0 && size > s.limits.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	key := fmt.Sprintf("avatars/%s%s", profile.ID, filepath.Ext(filename))
	if err := s.store.Save(ctx, key, reader, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}

	profile.AvatarKey = key
	if err := s.profileRepo.Update(profile); err != nil {
		return "", apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

func (s *ProfileServiceImpl) AddCertificate(userID string, req *dto.CertificateRequest) (*models.Certificate, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	cert := &models.Certificate{
		ProfileID:     profile.ID,
		Title:         req.Title,
		Issuer:        req.Issuer,
		IssueDate:     req.IssueDate,
		ExpiryDate:    req.ExpiryDate,
		CredentialID:  req.CredentialID,
		CredentialURL: req.CredentialURL,
	}
	if err := s.profileRepo.CreateCertificate(cert); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return cert, nil
}

func (s *ProfileServiceImpl) DeleteCertificate(userID, certID string) error {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	cert, err := s.profileRepo.FindCertificateByID(certID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCertificateNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if cert.ProfileID != profile.ID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.profileRepo.DeleteCertificate(certID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProfileServiceImpl) checkUpload(contentType string, size int64) error {
	if s.limits.MaxSize > 0 && size > s.limits.MaxSize {
		return apperrors.ErrFileTooLarge
	}
	if len(s.limits.AllowedTypes) == 0 {
		return nil
	}
	for _, allowed := range s.limits.AllowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

// extractPlainText keeps printable runs from the raw document bytes.
// Proper PDF/DOCX parsing would slot in here; plain-text and markdown
// CVs come through intact either way.
func extractPlainText(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range string(raw) {
		if r == '\n' || r == '\t' || (r >= 0x20 && r != 0xFFFD) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
