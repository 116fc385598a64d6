package models

import (
	"time"

	"github.com/lib/pq"
)

// Job is a posting owned by an employer.
type Job struct {
	BaseModel
	EmployerID string `gorm:"type:uuid;not null;index" json:"employer_id"`
	Employer   *User  `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`

	Title            string         `gorm:"not null" json:"title"`
	Description      string         `gorm:"type:text;not null" json:"description"`
	Requirements     pq.StringArray `gorm:"type:text[]" json:"requirements" swaggerignore:"true"`
	Responsibilities string         `gorm:"type:text" json:"responsibilities"`

	Location string  `gorm:"not null;index" json:"location"`
	IsRemote bool    `gorm:"default:false" json:"is_remote"`
	JobType  JobType `gorm:"type:varchar(20);default:'full_time'" json:"job_type"`

	SalaryMin      *float64 `json:"salary_min"`
	SalaryMax      *float64 `json:"salary_max"`
	SalaryCurrency string   `gorm:"type:varchar(3);default:'UZS'" json:"salary_currency"`

	RequiredSkills     pq.StringArray `gorm:"type:text[]" json:"required_skills" swaggerignore:"true"`
	PreferredSkills    pq.StringArray `gorm:"type:text[]" json:"preferred_skills" swaggerignore:"true"`
	ExperienceYearsMin int            `gorm:"default:0" json:"experience_years_min"`
	ExperienceYearsMax *int           `json:"experience_years_max"`

	Status   JobStatus  `gorm:"type:varchar(20);default:'draft';index:idx_jobs_status_created,priority:1" json:"status"`
	Deadline *time.Time `json:"deadline"`

	ViewsCount        int `gorm:"default:0" json:"views_count"`
	ApplicationsCount int `gorm:"default:0" json:"applications_count"`

	PublishedAt *time.Time `json:"published_at"`
}

func (j *Job) IsActive() bool {
	return j.Status == JobStatusOpen
}

// JobView records a single job detail view for analytics.
type JobView struct {
	BaseModel
	JobID     string  `gorm:"type:uuid;not null;index" json:"job_id"`
	UserID    *string `gorm:"type:uuid" json:"user_id"`
	IPAddress string  `json:"ip_address"`
}
