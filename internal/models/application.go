package models

import (
	"time"

	"gorm.io/datatypes"
)

// Application is a candidate's submission for a job. One per job x candidate.
type Application struct {
	BaseModel
	JobID  string `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user,priority:1" json:"job_id"`
	Job    *Job   `gorm:"foreignKey:JobID" json:"job,omitempty"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user,priority:2" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	CVKey       string `json:"cv_key"`

	Status ApplicationStatus `gorm:"type:varchar(30);default:'submitted';index" json:"status"`

	// Populated asynchronously by the match-scoring worker.
	MatchScore    *float64       `gorm:"index" json:"match_score"`
	MatchAnalysis datatypes.JSON `gorm:"type:jsonb" json:"match_analysis"`
	ScoredAt      *time.Time     `json:"scored_at"`

	EmployerNotes   string `gorm:"type:text" json:"employer_notes,omitempty"`
	RejectionReason string `gorm:"type:text" json:"rejection_reason,omitempty"`

	ReviewedAt *time.Time `json:"reviewed_at"`

	Notes         []ApplicationNote          `gorm:"foreignKey:ApplicationID" json:"notes,omitempty"`
	StatusHistory []ApplicationStatusHistory `gorm:"foreignKey:ApplicationID" json:"status_history,omitempty"`
}

func (a *Application) IsActive() bool {
	return !a.Status.IsFinal()
}

// ApplicationNote is an employer-authored note left during review.
type ApplicationNote struct {
	BaseModel
	ApplicationID string `gorm:"type:uuid;not null;index" json:"application_id"`
	AuthorID      string `gorm:"type:uuid;not null" json:"author_id"`
	Author        *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content       string `gorm:"type:text;not null" json:"content"`
}

// ApplicationStatusHistory records every status transition.
type ApplicationStatusHistory struct {
	BaseModel
	ApplicationID string            `gorm:"type:uuid;not null;index" json:"application_id"`
	OldStatus     ApplicationStatus `gorm:"type:varchar(30);not null" json:"old_status"`
	NewStatus     ApplicationStatus `gorm:"type:varchar(30);not null" json:"new_status"`
	ChangedByID   *string           `gorm:"type:uuid" json:"changed_by_id"`
	Comment       string            `gorm:"type:text" json:"comment"`
}
