package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smarthr_backend/internal/models"
)

// DayCount is one point of a per-day time series.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// DashboardSummary is the cross-domain snapshot for the government dashboard.
type DashboardSummary struct {
	UsersByRole          map[string]int64 `json:"users_by_role"`
	JobsByStatus         map[string]int64 `json:"jobs_by_status"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	AvgMatchScore        *float64         `json:"avg_match_score"`
	InterviewsScheduled  int64            `json:"interviews_scheduled"`
}

type AnalyticsRepository interface {
	UpsertRegionStats(stats *models.RegionStatistics) error
	UpsertIndustryStats(stats *models.IndustryStatistics) error
	UpsertSkillDemand(demand *models.SkillDemand) error

	GetRegionStats(region string, from, to time.Time) ([]models.RegionStatistics, error)
	LatestRegionStats() ([]models.RegionStatistics, error)
	GetIndustryStats(industry string, from, to time.Time) ([]models.IndustryStatistics, error)
	LatestIndustryStatsPair() ([]models.IndustryStatistics, error)
	LatestSkillDemand(limit int) ([]models.SkillDemand, error)

	CreateForecast(forecast *models.Forecast) error
	ListForecasts(forecastType models.ForecastType, region, industry string, limit int) ([]models.Forecast, error)

	GetDashboardSummary() (*DashboardSummary, error)
	ApplicationsPerDay(days int) ([]DayCount, error)

	// Aggregation inputs for the statistics workers
	DistinctJobLocations() ([]string, error)
	DistinctRequiredSkills() ([]string, error)
	CountJobsRequiringSkill(skill string) (int64, error)
	CountJobsInRegion(region string, status models.JobStatus) (int64, error)
	CountJobsInIndustry(industry string) (*IndustryJobCounts, error)
	CountAllJobsInRegion(region string) (int64, error)
	CountApplicationsInRegion(region string) (int64, int64, error)
	CountCandidatesInRegion(region string) (int64, error)
	AvgSalaryInRegion(region string) (*float64, error)
}

type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

func (r *AnalyticsRepositoryImpl) UpsertRegionStats(stats *models.RegionStatistics) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "region"}, {Name: "date"}},
		UpdateAll: true,
	}).Create(stats).Error
}

func (r *AnalyticsRepositoryImpl) UpsertIndustryStats(stats *models.IndustryStatistics) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "industry"}, {Name: "date"}},
		UpdateAll: true,
	}).Create(stats).Error
}

func (r *AnalyticsRepositoryImpl) UpsertSkillDemand(demand *models.SkillDemand) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "skill_name"}, {Name: "date"}},
		UpdateAll: true,
	}).Create(demand).Error
}

func (r *AnalyticsRepositoryImpl) GetRegionStats(region string, from, to time.Time) ([]models.RegionStatistics, error) {
	query := r.db.Where("date >= ? AND date <= ?", from, to)
	if region != "" {
		query = query.Where("region = ?", region)
	}

	var stats []models.RegionStatistics
	err := query.Order("date").Find(&stats).Error
	return stats, err
}

// LatestRegionStats returns the most recent snapshot of every region.
func (r *AnalyticsRepositoryImpl) LatestRegionStats() ([]models.RegionStatistics, error) {
	var stats []models.RegionStatistics
	err := r.db.Where("date = (?)",
		r.db.Model(&models.RegionStatistics{}).Select("MAX(date)")).
		Order("region").
		Find(&stats).Error
	return stats, err
}

func (r *AnalyticsRepositoryImpl) GetIndustryStats(industry string, from, to time.Time) ([]models.IndustryStatistics, error) {
	query := r.db.Where("date >= ? AND date <= ?", from, to)
	if industry != "" {
		query = query.Where("industry = ?", industry)
	}

	var stats []models.IndustryStatistics
	err := query.Order("date").Find(&stats).Error
	return stats, err
}

// LatestIndustryStatsPair returns rows from the two most recent snapshot
// dates so trend endpoints can compute growth between them.
func (r *AnalyticsRepositoryImpl) LatestIndustryStatsPair() ([]models.IndustryStatistics, error) {
	var stats []models.IndustryStatistics
	err := r.db.Where("date IN (?)",
		r.db.Model(&models.IndustryStatistics{}).
			Distinct("date").
			Order("date DESC").
			Limit(2)).
		Order("industry, date").
		Find(&stats).Error
	return stats, err
}

// LatestSkillDemand returns the highest-demand skills from the most
// recent snapshot date.
func (r *AnalyticsRepositoryImpl) LatestSkillDemand(limit int) ([]models.SkillDemand, error) {
	var demand []models.SkillDemand
	err := r.db.Where("date = (?)",
		r.db.Model(&models.SkillDemand{}).Select("MAX(date)")).
		Order("jobs_requiring DESC").
		Limit(limit).
		Find(&demand).Error
	return demand, err
}

func (r *AnalyticsRepositoryImpl) CreateForecast(forecast *models.Forecast) error {
	return r.db.Create(forecast).Error
}

func (r *AnalyticsRepositoryImpl) ListForecasts(forecastType models.ForecastType, region, industry string, limit int) ([]models.Forecast, error) {
	query := r.db.Model(&models.Forecast{})
	if forecastType != "" {
		query = query.Where("forecast_type = ?", forecastType)
	}
	if region != "" {
		query = query.Where("region = ?", region)
	}
	if industry != "" {
		query = query.Where("industry = ?", industry)
	}
	if limit < 1 {
		limit = 20
	}

	var forecasts []models.Forecast
	err := query.Order("forecast_date DESC").Limit(limit).Find(&forecasts).Error
	return forecasts, err
}

func (r *AnalyticsRepositoryImpl) GetDashboardSummary() (*DashboardSummary, error) {
	summary := &DashboardSummary{
		UsersByRole:          map[string]int64{},
		JobsByStatus:         map[string]int64{},
		ApplicationsByStatus: map[string]int64{},
	}

	type groupCount struct {
		Key   string
		Count int64
	}

	var rows []groupCount
	if err := r.db.Model(&models.User{}).
		Select("role as key, COUNT(*) as count").
		Group("role").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		summary.UsersByRole[row.Key] = row.Count
	}

	rows = nil
	if err := r.db.Model(&models.Job{}).
		Select("status as key, COUNT(*) as count").
		Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		summary.JobsByStatus[row.Key] = row.Count
	}

	rows = nil
	if err := r.db.Model(&models.Application{}).
		Select("status as key, COUNT(*) as count").
		Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		summary.ApplicationsByStatus[row.Key] = row.Count
	}

	if err := r.db.Model(&models.Application{}).
		Select("AVG(match_score)").
		Where("match_score IS NOT NULL").
		Scan(&summary.AvgMatchScore).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.Interview{}).
		Where("status = ?", models.InterviewStatusScheduled).
		Count(&summary.InterviewsScheduled).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *AnalyticsRepositoryImpl) ApplicationsPerDay(days int) ([]DayCount, error) {
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var counts []DayCount
	err := r.db.Model(&models.Application{}).
		Select("DATE_TRUNC('day', created_at) as day, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day").
		Scan(&counts).Error
	return counts, err
}

// Aggregation inputs for the statistics workers

func (r *AnalyticsRepositoryImpl) DistinctJobLocations() ([]string, error) {
	var locations []string
	err := r.db.Model(&models.Job{}).
		Distinct("location").
		Where("location <> ''").
		Pluck("location", &locations).Error
	return locations, err
}

func (r *AnalyticsRepositoryImpl) DistinctRequiredSkills() ([]string, error) {
	var skills []string
	err := r.db.Raw(`SELECT DISTINCT unnest(required_skills) FROM jobs`).Scan(&skills).Error
	return skills, err
}

func (r *AnalyticsRepositoryImpl) CountJobsRequiringSkill(skill string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).
		Where("? = ANY(required_skills)", skill).
		Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountJobsInRegion(region string, status models.JobStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).
		Where("location = ? AND status = ?", region, status).
		Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountAllJobsInRegion(region string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).Where("location = ?", region).Count(&count).Error
	return count, err
}

// CountApplicationsInRegion returns total and accepted application counts
// for jobs located in the region.
func (r *AnalyticsRepositoryImpl) CountApplicationsInRegion(region string) (int64, int64, error) {
	var total int64
	err := r.db.Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.location = ?", region).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	var successful int64
	err = r.db.Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.location = ? AND applications.status = ?", region, models.ApplicationStatusAccepted).
		Count(&successful).Error
	return total, successful, err
}

func (r *AnalyticsRepositoryImpl) CountCandidatesInRegion(region string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.role = ? AND profiles.location = ?", models.UserRoleCandidate, region).
		Count(&count).Error
	return count, err
}

// IndustryJobCounts aggregates jobs whose description mentions the
// industry keyword. Jobs carry no industry column, so matching is by
// keyword the same way the public listing search works.
type IndustryJobCounts struct {
	TotalJobs       int64
	ActiveJobs      int64
	AvgApplications *float64
	AvgSalaryMin    *float64
	AvgSalaryMax    *float64
}

func (r *AnalyticsRepositoryImpl) CountJobsInIndustry(industry string) (*IndustryJobCounts, error) {
	pattern := "%" + industry + "%"
	counts := &IndustryJobCounts{}

	base := r.db.Model(&models.Job{}).Where("description ILIKE ?", pattern)

	if err := base.Session(&gorm.Session{}).Count(&counts.TotalJobs).Error; err != nil {
		return nil, err
	}
	err := base.Session(&gorm.Session{}).
		Where("status = ?", models.JobStatusOpen).
		Count(&counts.ActiveJobs).Error
	if err != nil {
		return nil, err
	}

	row := struct {
		AvgApplications *float64
		AvgSalaryMin    *float64
		AvgSalaryMax    *float64
	}{}
	err = base.Session(&gorm.Session{}).
		Select("AVG(applications_count) AS avg_applications, AVG(salary_min) AS avg_salary_min, AVG(salary_max) AS avg_salary_max").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	counts.AvgApplications = row.AvgApplications
	counts.AvgSalaryMin = row.AvgSalaryMin
	counts.AvgSalaryMax = row.AvgSalaryMax

	return counts, nil
}

func (r *AnalyticsRepositoryImpl) AvgSalaryInRegion(region string) (*float64, error) {
	var avg *float64
	err := r.db.Model(&models.Job{}).
		Select("AVG((COALESCE(salary_min, salary_max) + COALESCE(salary_max, salary_min)) / 2)").
		Where("location = ? AND (salary_min IS NOT NULL OR salary_max IS NOT NULL)", region).
		Scan(&avg).Error
	return avg, err
}
