package dto

import (
	"smarthr_backend/internal/models"
)

type StatsQuery struct {
	Region   string `form:"region"`
	Industry string `form:"industry"`
	DateFrom string `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

// SkillGapEntry compares demand against candidate supply for one skill.
type SkillGapEntry struct {
	SkillName         string   `json:"skill_name"`
	JobsRequiring     int      `json:"jobs_requiring"`
	CandidatesHaving  int      `json:"candidates_having"`
	Gap               int      `json:"gap"`
	SupplyDemandRatio *float64 `json:"supply_demand_ratio"`
}

type ForecastRequest struct {
	ForecastType models.ForecastType `json:"forecast_type" validate:"required,is-forecast-type"`
	Region       string              `json:"region" validate:"omitempty,max=120"`
	Industry     string              `json:"industry" validate:"omitempty,max=120"`
	Months       int                 `json:"months" validate:"omitempty,min=1,max=24"`
}

// IndustryTrend compares the two most recent snapshots of an industry
// and reports the job growth between them.
type IndustryTrend struct {
	Industry      string   `json:"industry"`
	FromDate      string   `json:"from_date"`
	ToDate        string   `json:"to_date"`
	JobsBefore    int      `json:"jobs_before"`
	JobsNow       int      `json:"jobs_now"`
	GrowthRatePct *float64 `json:"growth_rate_pct"`
	AvgSalaryMin  *float64 `json:"avg_salary_min"`
	AvgSalaryMax  *float64 `json:"avg_salary_max"`
}

type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type TrendsResponse struct {
	Metric string       `json:"metric"`
	Region string       `json:"region,omitempty"`
	Points []TrendPoint `json:"points"`
}
