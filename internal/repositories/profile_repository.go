package repositories

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"smarthr_backend/internal/models"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrCVNotFound          = errors.New("cv not found")
	ErrCertificateNotFound = errors.New("certificate not found")
)

type ProfileRepository interface {
	Create(profile *models.Profile) error
	Update(profile *models.Profile) error
	FindByID(id string) (*models.Profile, error)
	FindByUserID(userID string) (*models.Profile, error)
	UpdateQualityScore(profileID string, score float64, scoredAt time.Time) error
	ListCandidateProfiles(limit, offset int) ([]models.Profile, error)
	CountCandidatesWithSkill(skill string) (int64, error)

	// CV operations
	CreateCV(cv *models.CV) error
	FindCVByID(id string) (*models.CV, error)
	ListCVs(profileID string) ([]models.CV, error)
	DeleteCV(id string) error
	UpdateCVExtraction(cvID, text string, skills []string, processedAt time.Time) error
	ListUnprocessedCVs(limit int) ([]models.CV, error)

	// Certificate operations
	CreateCertificate(cert *models.Certificate) error
	FindCertificateByID(id string) (*models.Certificate, error)
	ListCertificates(profileID string) ([]models.Certificate, error)
	DeleteCertificate(id string) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) FindByID(id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("CVs").Preload("Certificates").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("CVs").Preload("Certificates").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateQualityScore(profileID string, score float64, scoredAt time.Time) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"quality_score": score,
			"scored_at":     scoredAt,
		}).Error
}

func (r *ProfileRepositoryImpl) ListCandidateProfiles(limit, offset int) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.role = ?", models.UserRoleCandidate).
		Limit(limit).Offset(offset).
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) CountCandidatesWithSkill(skill string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.role = ?", models.UserRoleCandidate).
		Where("? = ANY(profiles.skills)", skill).
		Count(&count).Error
	return count, err
}

// CV operations

func (r *ProfileRepositoryImpl) CreateCV(cv *models.CV) error {
	return r.db.Create(cv).Error
}

func (r *ProfileRepositoryImpl) FindCVByID(id string) (*models.CV, error) {
	var cv models.CV
	err := r.db.First(&cv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCVNotFound
		}
		return nil, err
	}
	return &cv, nil
}

func (r *ProfileRepositoryImpl) ListCVs(profileID string) ([]models.CV, error) {
	var cvs []models.CV
	err := r.db.Where("profile_id = ?", profileID).Order("created_at DESC").Find(&cvs).Error
	return cvs, err
}

func (r *ProfileRepositoryImpl) DeleteCV(id string) error {
	result := r.db.Delete(&models.CV{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCVNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) UpdateCVExtraction(cvID, text string, skills []string, processedAt time.Time) error {
	return r.db.Model(&models.CV{}).
		Where("id = ?", cvID).
		Updates(map[string]interface{}{
			"extracted_text":   text,
			"extracted_skills": pq.StringArray(skills),
			"processed":        true,
			"processed_at":     processedAt,
		}).Error
}

func (r *ProfileRepositoryImpl) ListUnprocessedCVs(limit int) ([]models.CV, error) {
	var cvs []models.CV
	err := r.db.Where("processed = false").Order("created_at").Limit(limit).Find(&cvs).Error
	return cvs, err
}

// Certificate operations

func (r *ProfileRepositoryImpl) CreateCertificate(cert *models.Certificate) error {
	return r.db.Create(cert).Error
}

func (r *ProfileRepositoryImpl) FindCertificateByID(id string) (*models.Certificate, error) {
	var cert models.Certificate
	err := r.db.First(&cert, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return &cert, nil
}

func (r *ProfileRepositoryImpl) ListCertificates(profileID string) ([]models.Certificate, error) {
	var certs []models.Certificate
	err := r.db.Where("profile_id = ?", profileID).Order("issue_date DESC").Find(&certs).Error
	return certs, err
}

func (r *ProfileRepositoryImpl) DeleteCertificate(id string) error {
	result := r.db.Delete(&models.Certificate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCertificateNotFound
	}
	return nil
}
