package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Profile holds the candidate-facing data attached 1:1 to a user.
type Profile struct {
	BaseModel
	UserID      string     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Bio         string     `gorm:"type:text" json:"bio"`
	AvatarKey   string     `json:"avatar_key"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Location    string     `json:"location"`

	Skills         pq.StringArray `gorm:"type:text[]" json:"skills" swaggerignore:"true"`
	Languages      pq.StringArray `gorm:"type:text[]" json:"languages" swaggerignore:"true"`
	Education      datatypes.JSON `gorm:"type:jsonb" json:"education"`      // [{"institution": "...", "degree": "...", "year": ...}]
	Experience     datatypes.JSON `gorm:"type:jsonb" json:"experience"`     // [{"company": "...", "title": "...", "years": ...}]
	Certifications datatypes.JSON `gorm:"type:jsonb" json:"certifications"` // [{"title": "...", "issuer": "..."}]

	QualityScore *float64   `json:"quality_score"`
	ScoredAt     *time.Time `json:"scored_at"`

	LinkedinURL  string `json:"linkedin_url"`
	GithubURL    string `json:"github_url"`
	PortfolioURL string `json:"portfolio_url"`

	CVs          []CV          `gorm:"foreignKey:ProfileID" json:"cvs,omitempty"`
	Certificates []Certificate `gorm:"foreignKey:ProfileID" json:"certificates,omitempty"`
}

// CV is an uploaded resume document plus its extraction results.
type CV struct {
	BaseModel
	ProfileID        string `gorm:"type:uuid;not null;index" json:"profile_id"`
	StorageKey       string `gorm:"not null" json:"storage_key"`
	OriginalFilename string `gorm:"not null" json:"original_filename"`
	FileType         string `json:"file_type"`
	FileSize         int64  `json:"file_size"`

	ExtractedText   string         `gorm:"type:text" json:"extracted_text,omitempty"`
	ExtractedSkills pq.StringArray `gorm:"type:text[]" json:"extracted_skills" swaggerignore:"true"`
	Processed       bool           `gorm:"default:false" json:"processed"`
	ProcessedAt     *time.Time     `json:"processed_at"`
}

type Certificate struct {
	BaseModel
	ProfileID     string     `gorm:"type:uuid;not null;index" json:"profile_id"`
	Title         string     `gorm:"not null" json:"title"`
	Issuer        string     `gorm:"not null" json:"issuer"`
	IssueDate     time.Time  `gorm:"not null" json:"issue_date"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	CredentialID  string     `json:"credential_id"`
	CredentialURL string     `json:"credential_url"`
	FileKey       string     `json:"file_key"`
}
