package repositories

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"smarthr_backend/internal/models"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job")
)

type ApplicationFilter struct {
	JobID         string
	UserID        string
	Status        models.ApplicationStatus
	MinMatchScore *float64
	Page          int
	PageSize      int
}

type ApplicationRepository interface {
	Create(app *models.Application) error
	Update(app *models.Application) error
	FindByID(id string) (*models.Application, error)
	FindWithFilter(filter ApplicationFilter) ([]models.Application, int64, error)
	ShortlistForJob(jobID string, limit int) ([]models.Application, error)

	UpdateStatus(appID string, oldStatus, newStatus models.ApplicationStatus, changedByID *string, comment string) error
	UpdateMatchScore(appID string, score float64, analysis datatypes.JSON, scoredAt time.Time) error
	ListUnscored(limit int) ([]models.Application, error)

	AddNote(note *models.ApplicationNote) error
	ListNotes(appID string) ([]models.ApplicationNote, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

// Create inserts the application and bumps the job's counter. The unique
// index on (job_id, user_id) backs the duplicate check under concurrency.
func (r *ApplicationRepositoryImpl) Create(app *models.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Application{}).
			Where("job_id = ? AND user_id = ?", app.JobID, app.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateApplication
		}

		if err := tx.Create(app).Error; err != nil {
			return err
		}

		return tx.Model(&models.Job{}).
			Where("id = ?", app.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).Error
	})
}

func (r *ApplicationRepositoryImpl) Update(app *models.Application) error {
	return r.db.Save(app).Error
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var app models.Application
	err := r.db.
		Preload("Job").
		Preload("User").
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindWithFilter(filter ApplicationFilter) ([]models.Application, int64, error) {
	query := r.db.Model(&models.Application{})

	if filter.JobID != "" {
		query = query.Where("job_id = ?", filter.JobID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MinMatchScore != nil {
		query = query.Where("match_score >= ?", *filter.MinMatchScore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var apps []models.Application
	err := query.Preload("Job").Preload("User").
		Order("match_score DESC NULLS LAST, created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ShortlistForJob returns the best scored active applications for a job.
func (r *ApplicationRepositoryImpl) ShortlistForJob(jobID string, limit int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("User").
		Where("job_id = ? AND match_score IS NOT NULL", jobID).
		Where("status NOT IN ?", []models.ApplicationStatus{
			models.ApplicationStatusWithdrawn,
			models.ApplicationStatusRejected,
		}).
		Order("match_score DESC").
		Limit(limit).
		Find(&apps).Error
	return apps, err
}

// UpdateStatus transitions the application and appends a history row.
func (r *ApplicationRepositoryImpl) UpdateStatus(appID string, oldStatus, newStatus models.ApplicationStatus, changedByID *string, comment string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": newStatus}
		if oldStatus == models.ApplicationStatusSubmitted {
			updates["reviewed_at"] = time.Now()
		}

		result := tx.Model(&models.Application{}).
			Where("id = ? AND status = ?", appID, oldStatus).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrApplicationNotFound
		}

		history := &models.ApplicationStatusHistory{
			ApplicationID: appID,
			OldStatus:     oldStatus,
			NewStatus:     newStatus,
			ChangedByID:   changedByID,
			Comment:       comment,
		}
		return tx.Create(history).Error
	})
}

func (r *ApplicationRepositoryImpl) UpdateMatchScore(appID string, score float64, analysis datatypes.JSON, scoredAt time.Time) error {
	return r.db.Model(&models.Application{}).
		Where("id = ?", appID).
		Updates(map[string]interface{}{
			"match_score":    score,
			"match_analysis": analysis,
			"scored_at":      scoredAt,
		}).Error
}

func (r *ApplicationRepositoryImpl) ListUnscored(limit int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Job").
		Where("match_score IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) AddNote(note *models.ApplicationNote) error {
	return r.db.Create(note).Error
}

func (r *ApplicationRepositoryImpl) ListNotes(appID string) ([]models.ApplicationNote, error) {
	var notes []models.ApplicationNote
	err := r.db.Preload("Author").
		Where("application_id = ?", appID).
		Order("created_at").
		Find(&notes).Error
	return notes, err
}
