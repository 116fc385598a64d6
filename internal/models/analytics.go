package models

import (
	"time"

	"gorm.io/datatypes"
)

// RegionStatistics aggregates daily employment figures per region for the
// government dashboard. One row per region and date.
type RegionStatistics struct {
	BaseModel
	Region string    `gorm:"not null;uniqueIndex:idx_region_stats_region_date,priority:1" json:"region"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_region_stats_region_date,priority:2" json:"date"`

	TotalJobsPosted int `gorm:"default:0" json:"total_jobs_posted"`
	ActiveJobs      int `gorm:"default:0" json:"active_jobs"`
	FilledPositions int `gorm:"default:0" json:"filled_positions"`

	TotalCandidates    int `gorm:"default:0" json:"total_candidates"`
	ActiveCandidates   int `gorm:"default:0" json:"active_candidates"`
	EmployedCandidates int `gorm:"default:0" json:"employed_candidates"`

	TotalApplications      int `gorm:"default:0" json:"total_applications"`
	SuccessfulApplications int `gorm:"default:0" json:"successful_applications"`

	UnemploymentRate *float64 `json:"unemployment_rate"`

	AvgTimeToHireDays *float64 `json:"avg_time_to_hire_days"`
	AvgSalary         *float64 `json:"avg_salary"`
}

// IndustryStatistics aggregates daily figures per industry.
type IndustryStatistics struct {
	BaseModel
	Industry string    `gorm:"not null;uniqueIndex:idx_industry_stats_industry_date,priority:1" json:"industry"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_industry_stats_industry_date,priority:2" json:"date"`

	TotalJobs             int      `gorm:"default:0" json:"total_jobs"`
	ActiveJobs            int      `gorm:"default:0" json:"active_jobs"`
	AvgApplicationsPerJob *float64 `json:"avg_applications_per_job"`

	TotalCandidates   int            `gorm:"default:0" json:"total_candidates"`
	AvgCandidateScore *float64       `json:"avg_candidate_score"`
	TopSkills         datatypes.JSON `gorm:"type:jsonb" json:"top_skills"`

	AvgSalaryMin *float64 `json:"avg_salary_min"`
	AvgSalaryMax *float64 `json:"avg_salary_max"`
}

// SkillDemand tracks supply and demand for a single skill per day.
type SkillDemand struct {
	BaseModel
	SkillName string    `gorm:"not null;uniqueIndex:idx_skill_demand_skill_date,priority:1" json:"skill_name"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_skill_demand_skill_date,priority:2" json:"date"`

	JobsRequiring    int `gorm:"default:0;index" json:"jobs_requiring"`
	CandidatesHaving int `gorm:"default:0" json:"candidates_having"`

	// Ratio of candidates to jobs requiring this skill.
	SupplyDemandRatio *float64 `json:"supply_demand_ratio"`

	AvgSalaryPremium *float64 `json:"avg_salary_premium"`
}

// Forecast is a generated market trend prediction.
type Forecast struct {
	BaseModel
	ForecastType ForecastType `gorm:"type:varchar(50);not null" json:"forecast_type"`
	Region       string       `json:"region"`
	Industry     string       `json:"industry"`

	ForecastDate   time.Time `gorm:"type:date;not null" json:"forecast_date"`
	ForecastMonths int       `gorm:"default:3" json:"forecast_months"`

	PredictedValue  float64 `gorm:"not null" json:"predicted_value"`
	ConfidenceScore float64 `gorm:"not null" json:"confidence_score"` // 0-1

	// Month-by-month breakdown.
	ForecastData datatypes.JSON `gorm:"type:jsonb" json:"forecast_data"`

	ModelVersion string `gorm:"type:varchar(50)" json:"model_version"`
}
