package dto

import (
	"time"

	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
)

type CreateJobRequest struct {
	Title            string   `json:"title" validate:"required,min=3,max=200"`
	Description      string   `json:"description" validate:"required,min=10"`
	Requirements     []string `json:"requirements" validate:"omitempty,max=30,dive,min=1"`
	Responsibilities string   `json:"responsibilities" validate:"omitempty,max=5000"`

	Location string         `json:"location" validate:"required,max=120"`
	IsRemote bool           `json:"is_remote"`
	JobType  models.JobType `json:"job_type" validate:"omitempty,is-job-type"`

	SalaryMin      *float64 `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax      *float64 `json:"salary_max" validate:"omitempty,min=0"`
	SalaryCurrency string   `json:"salary_currency" validate:"omitempty,len=3"`

	RequiredSkills     []string `json:"required_skills" validate:"omitempty,max=30,dive,min=1"`
	PreferredSkills    []string `json:"preferred_skills" validate:"omitempty,max=30,dive,min=1"`
	ExperienceYearsMin int      `json:"experience_years_min" validate:"omitempty,min=0,max=50"`
	ExperienceYearsMax *int     `json:"experience_years_max" validate:"omitempty,min=0,max=50"`

	Deadline *time.Time `json:"deadline"`
}

type UpdateJobRequest struct {
	Title            *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description      *string  `json:"description" validate:"omitempty,min=10"`
	Requirements     []string `json:"requirements" validate:"omitempty,max=30,dive,min=1"`
	Responsibilities *string  `json:"responsibilities" validate:"omitempty,max=5000"`

	Location *string         `json:"location" validate:"omitempty,max=120"`
	IsRemote *bool           `json:"is_remote"`
	JobType  *models.JobType `json:"job_type" validate:"omitempty,is-job-type"`

	SalaryMin      *float64 `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax      *float64 `json:"salary_max" validate:"omitempty,min=0"`
	SalaryCurrency *string  `json:"salary_currency" validate:"omitempty,len=3"`

	RequiredSkills     []string `json:"required_skills" validate:"omitempty,max=30,dive,min=1"`
	PreferredSkills    []string `json:"preferred_skills" validate:"omitempty,max=30,dive,min=1"`
	ExperienceYearsMin *int     `json:"experience_years_min" validate:"omitempty,min=0,max=50"`
	ExperienceYearsMax *int     `json:"experience_years_max" validate:"omitempty,min=0,max=50"`

	Deadline *time.Time `json:"deadline"`
}

type JobListQuery struct {
	Search          string         `form:"search"`
	Location        string         `form:"location"`
	JobType         models.JobType `form:"job_type" validate:"omitempty,is-job-type"`
	IsRemote        *bool          `form:"is_remote"`
	SalaryMin       *float64       `form:"salary_min" validate:"omitempty,min=0"`
	Skills          []string       `form:"skills"`
	ExperienceYears *int           `form:"experience_years" validate:"omitempty,min=0,max=50"`
	Page            int            `form:"page" validate:"omitempty,min=1"`
	PageSize        int            `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type JobListResponse struct {
	Jobs     []models.Job `json:"jobs"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

type JobStatsResponse struct {
	JobID string                 `json:"job_id"`
	Stats *repositories.JobStats `json:"stats"`
}

// JobRecommendation pairs an open job with the candidate's match score.
type JobRecommendation struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	MatchScore     float64  `json:"match_score"`
	MatchingSkills []string `json:"matching_skills"`
}
