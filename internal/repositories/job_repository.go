package repositories

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"smarthr_backend/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobFilter struct {
	Search          string
	Location        string
	JobType         models.JobType
	IsRemote        *bool
	SalaryMin       *float64
	Status          models.JobStatus
	EmployerID      string
	Skills          []string
	ExperienceYears *int
	Page            int
	PageSize        int
}

// JobStats aggregates the per-posting numbers shown to employers.
type JobStats struct {
	ViewsCount        int              `json:"views_count"`
	ApplicationsCount int              `json:"applications_count"`
	ByStatus          map[string]int64 `json:"applications_by_status"`
	AvgMatchScore     *float64         `json:"avg_match_score"`
}

type JobRepository interface {
	Create(job *models.Job) error
	Update(job *models.Job) error
	Delete(jobID string) error
	FindByID(id string) (*models.Job, error)
	FindWithFilter(filter JobFilter) ([]models.Job, int64, error)
	ListByEmployer(employerID string, limit, offset int) ([]models.Job, int64, error)
	ListOpenJobs(limit int) ([]models.Job, error)
	CountByStatus(status models.JobStatus) (int64, error)

	RecordView(view *models.JobView) error
	GetStats(jobID string) (*JobStats, error)
	CloseExpired(now time.Time) (int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepositoryImpl) Delete(jobID string) error {
	result := r.db.Delete(&models.Job{}, "id = ?", jobID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Employer").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindWithFilter(filter JobFilter) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EmployerID != "" {
		query = query.Where("employer_id = ?", filter.EmployerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.JobType != "" {
		query = query.Where("job_type = ?", filter.JobType)
	}
	if filter.IsRemote != nil {
		query = query.Where("is_remote = ?", *filter.IsRemote)
	}
	if filter.SalaryMin != nil {
		query = query.Where("salary_max IS NULL OR salary_max >= ?", *filter.SalaryMin)
	}
	if len(filter.Skills) > 0 {
		query = query.Where("required_skills && ?", pq.StringArray(filter.Skills))
	}
	if filter.ExperienceYears != nil {
		query = query.Where("experience_years_min <= ?", *filter.ExperienceYears)
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

	var jobs []models.Job
	err := query.Preload("Employer").
		Order("published_at DESC NULLS LAST, created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *JobRepositoryImpl) ListByEmployer(employerID string, limit, offset int) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{}).Where("employer_id = ?", employerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) ListOpenJobs(limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Employer").
		Where("status = ?", models.JobStatusOpen).
		Order("published_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountByStatus(status models.JobStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// RecordView stores the view row and bumps the job counter in one transaction.
func (r *JobRepositoryImpl) RecordView(view *models.JobView) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(view).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).
			Where("id = ?", view.JobID).
			UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
	})
}

func (r *JobRepositoryImpl) GetStats(jobID string) (*JobStats, error) {
	var job models.Job
	if err := r.db.Select("views_count", "applications_count").First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := r.db.Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Where("job_id = ?", jobID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}

	var avgScore *float64
	err = r.db.Model(&models.Application{}).
		Select("AVG(match_score)").
		Where("job_id = ? AND match_score IS NOT NULL", jobID).
		Scan(&avgScore).Error
	if err != nil {
		return nil, err
	}

	return &JobStats{
		ViewsCount:        job.ViewsCount,
		ApplicationsCount: job.ApplicationsCount,
		ByStatus:          byStatus,
		AvgMatchScore:     avgScore,
	}, nil
}

// CloseExpired closes open jobs whose deadline has passed.
func (r *JobRepositoryImpl) CloseExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Job{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.JobStatusOpen, now).
		Update("status", models.JobStatusClosed)
	return result.RowsAffected, result.Error
}
