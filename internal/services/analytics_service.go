package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"smarthr_backend/internal/algorithms"
	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services/dto"
	"smarthr_backend/pkg/apperrors"
)

const forecastModelVersion = "linear-v1"

type AnalyticsService interface {
	Dashboard() (*repositories.DashboardSummary, error)
	RegionStats(query *dto.StatsQuery) ([]models.RegionStatistics, error)
	RegionMap() ([]models.RegionStatistics, error)
	IndustryStats(query *dto.StatsQuery) ([]models.IndustryStatistics, error)
	IndustryTrends() ([]dto.IndustryTrend, error)
	SkillDemand(limit int) ([]models.SkillDemand, error)
	SkillGap(limit int) ([]dto.SkillGapEntry, error)
	ApplicationTrends(days int) (*dto.TrendsResponse, error)

	QueueForecast(req *dto.ForecastRequest) error
	GenerateForecast(req *dto.ForecastRequest) (*models.Forecast, error)
	ListForecasts(forecastType models.ForecastType, region, industry string) ([]models.Forecast, error)

	CollectRegionStatistics(ctx context.Context, date time.Time) error
	CollectIndustryStatistics(ctx context.Context, date time.Time) error
	CollectSkillDemand(ctx context.Context, date time.Time) error
}

// trackedIndustries are the sectors snapshot jobs are bucketed into.
// Postings carry no industry column, so bucketing matches the keyword
// against the description.
var trackedIndustries = []string{
	"IT", "Finance", "Healthcare", "Education", "Manufacturing",
	"Retail", "Construction", "Transportation", "Hospitality",
}

type AnalyticsServiceImpl struct {
	analyticsRepo repositories.AnalyticsRepository
	profileRepo   repositories.ProfileRepository
	tasks         TaskEnqueuer
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	profileRepo repositories.ProfileRepository,
	tasks TaskEnqueuer,
) AnalyticsService {
	return &AnalyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		profileRepo:   profileRepo,
		tasks:         tasks,
	}
}

func (s *AnalyticsServiceImpl) Dashboard() (*repositories.DashboardSummary, error) {
	summary, err := s.analyticsRepo.GetDashboardSummary()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return summary, nil
}

func (s *AnalyticsServiceImpl) RegionStats(query *dto.StatsQuery) ([]models.RegionStatistics, error) {
	from, to, err := parseStatsRange(query)
	if err != nil {
		return nil, err
	}

	stats, err := s.analyticsRepo.GetRegionStats(query.Region, from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *AnalyticsServiceImpl) IndustryStats(query *dto.StatsQuery) ([]models.IndustryStatistics, error) {
	from, to, err := parseStatsRange(query)
	if err != nil {
		return nil, err
	}

	stats, err := s.analyticsRepo.GetIndustryStats(query.Industry, from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

// RegionMap returns the latest snapshot of every region, one row per
// region, for the dashboard map.
func (s *AnalyticsServiceImpl) RegionMap() ([]models.RegionStatistics, error) {
	stats, err := s.analyticsRepo.LatestRegionStats()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

// IndustryTrends compares the two most recent industry snapshots and
// reports job growth per industry, fastest growing first.
func (s *AnalyticsServiceImpl) IndustryTrends() ([]dto.IndustryTrend, error) {
	stats, err := s.analyticsRepo.LatestIndustryStatsPair()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Rows arrive ordered by industry then date, so the second row of a
	// pair is always the newer snapshot.
	byIndustry := make(map[string][]models.IndustryStatistics)
	order := make([]string, 0)
	for _, row := range stats {
		if _, seen := byIndustry[row.Industry]; !seen {
			order = append(order, row.Industry)
		}
		byIndustry[row.Industry] = append(byIndustry[row.Industry], row)
	}

	trends := make([]dto.IndustryTrend, 0, len(order))
	for _, industry := range order {
		rows := byIndustry[industry]
		latest := rows[len(rows)-1]

		trend := dto.IndustryTrend{
			Industry:     industry,
			ToDate:       latest.Date.Format("2006-01-02"),
			JobsNow:      latest.TotalJobs,
			AvgSalaryMin: latest.AvgSalaryMin,
			AvgSalaryMax: latest.AvgSalaryMax,
		}
		if len(rows) > 1 {
			previous := rows[0]
			trend.FromDate = previous.Date.Format("2006-01-02")
			trend.JobsBefore = previous.TotalJobs
			if previous.TotalJobs > 0 {
				rate := float64(latest.TotalJobs-previous.TotalJobs) / float64(previous.TotalJobs) * 100
				trend.GrowthRatePct = &rate
			}
		}
		trends = append(trends, trend)
	}

	sort.Slice(trends, func(i, j int) bool {
		gi, gj := trends[i].GrowthRatePct, trends[j].GrowthRatePct
		switch {
		case gi == nil:
			return false
		case gj == nil:
			return true
		default:
			return *gi > *gj
		}
	})
	return trends, nil
}

// SkillDemand returns the most demanded skills from the latest snapshot.
func (s *AnalyticsServiceImpl) SkillDemand(limit int) ([]models.SkillDemand, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	demand, err := s.analyticsRepo.LatestSkillDemand(limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return demand, nil
}

// SkillGap compares current demand (required skills on jobs) against
// supply (candidates listing the skill).
func (s *AnalyticsServiceImpl) SkillGap(limit int) ([]dto.SkillGapEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	skills, err := s.analyticsRepo.DistinctRequiredSkills()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	entries := make([]dto.SkillGapEntry, 0, len(skills))
	for _, skill := range skills {
		jobs, err := s.analyticsRepo.CountJobsRequiringSkill(skill)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		candidates, err := s.profileRepo.CountCandidatesWithSkill(skill)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		entry := dto.SkillGapEntry{
			SkillName:        skill,
			JobsRequiring:    int(jobs),
			CandidatesHaving: int(candidates),
			Gap:              int(jobs - candidates),
		}
		if jobs > 0 {
			ratio := float64(candidates) / float64(jobs)
			entry.SupplyDemandRatio = &ratio
		}
		entries = append(entries, entry)
	}

	// Largest shortage first
	sort.Slice(entries, func(i, j int) bool { return entries[i].Gap > entries[j].Gap })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *AnalyticsServiceImpl) ApplicationTrends(days int) (*dto.TrendsResponse, error) {
	counts, err := s.analyticsRepo.ApplicationsPerDay(days)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	points := make([]dto.TrendPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, dto.TrendPoint{
			Date:  c.Day.Format("2006-01-02"),
			Value: float64(c.Count),
		})
	}

	return &dto.TrendsResponse{Metric: "applications_per_day", Points: points}, nil
}

// QueueForecast schedules forecast generation on the worker pool. When
// the pool has no room the forecast is generated inline instead of
// dropping the request.
func (s *AnalyticsServiceImpl) QueueForecast(req *dto.ForecastRequest) error {
	r := *req
	queued := s.tasks.Enqueue("forecast-generation", func(ctx context.Context) {
		if _, err := s.GenerateForecast(&r); err != nil {
			logger.CtxWithError(ctx, "forecast generation failed", err,
				"forecast_type", string(r.ForecastType), "region", r.Region)
		}
	})
	if !queued {
		if _, err := s.GenerateForecast(req); err != nil {
			return err
		}
	}
	return nil
}

// GenerateForecast fits a trend over the stored statistics for the metric
// and persists the projection.
func (s *AnalyticsServiceImpl) GenerateForecast(req *dto.ForecastRequest) (*models.Forecast, error) {
	months := req.Months
	if months < 1 {
		months = 3
	}

	series, err := s.historicalSeries(req.ForecastType, req.Region, req.Industry)
	if err != nil {
		return nil, err
	}

	result := algorithms.LinearForecast(series, months)

	forecastData, err := json.Marshal(result.MonthlyData)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	forecast := &models.Forecast{
		ForecastType:    req.ForecastType,
		Region:          req.Region,
		Industry:        req.Industry,
		ForecastDate:    time.Now().Truncate(24 * time.Hour),
		ForecastMonths:  months,
		PredictedValue:  result.PredictedValue,
		ConfidenceScore: result.Confidence,
		ForecastData:    forecastData,
		ModelVersion:    forecastModelVersion,
	}

	if err := s.analyticsRepo.CreateForecast(forecast); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return forecast, nil
}

// historicalSeries builds the input series for a forecast type from the
// daily statistics tables of the past year.
func (s *AnalyticsServiceImpl) historicalSeries(forecastType models.ForecastType, region, industry string) ([]float64, error) {
	to := time.Now()
	from := to.AddDate(-1, 0, 0)

	if industry != "" && region == "" {
		stats, err := s.analyticsRepo.GetIndustryStats(industry, from, to)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		series := make([]float64, 0, len(stats))
		for _, stat := range stats {
			switch forecastType {
			case models.ForecastTypeSalaryTrend:
				if stat.AvgSalaryMin != nil {
					series = append(series, *stat.AvgSalaryMin)
				}
			default:
				series = append(series, float64(stat.TotalJobs))
			}
		}
		return series, nil
	}

	stats, err := s.analyticsRepo.GetRegionStats(region, from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	series := make([]float64, 0, len(stats))
	for _, stat := range stats {
		switch forecastType {
		case models.ForecastTypeUnemployment:
			if stat.UnemploymentRate != nil {
				series = append(series, *stat.UnemploymentRate)
			}
		case models.ForecastTypeJobGrowth:
			series = append(series, float64(stat.TotalJobsPosted))
		case models.ForecastTypeSalaryTrend:
			if stat.AvgSalary != nil {
				series = append(series, *stat.AvgSalary)
			}
		case models.ForecastTypeSkillDemand:
			series = append(series, float64(stat.TotalApplications))
		}
	}
	return series, nil
}

func (s *AnalyticsServiceImpl) ListForecasts(forecastType models.ForecastType, region, industry string) ([]models.Forecast, error) {
	forecasts, err := s.analyticsRepo.ListForecasts(forecastType, region, industry, 20)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return forecasts, nil
}

// CollectRegionStatistics snapshots per-region numbers for the date.
// Runs daily; the upsert keys on (region, date) make reruns safe.
func (s *AnalyticsServiceImpl) CollectRegionStatistics(ctx context.Context, date time.Time) error {
	regions, err := s.analyticsRepo.DistinctJobLocations()
	if err != nil {
		return err
	}

	day := date.Truncate(24 * time.Hour)

	for _, region := range regions {
		totalJobs, err := s.analyticsRepo.CountAllJobsInRegion(region)
		if err != nil {
			return err
		}
		activeJobs, err := s.analyticsRepo.CountJobsInRegion(region, models.JobStatusOpen)
		if err != nil {
			return err
		}
		filledJobs, err := s.analyticsRepo.CountJobsInRegion(region, models.JobStatusFilled)
		if err != nil {
			return err
		}
		totalApps, successfulApps, err := s.analyticsRepo.CountApplicationsInRegion(region)
		if err != nil {
			return err
		}
		candidates, err := s.analyticsRepo.CountCandidatesInRegion(region)
		if err != nil {
			return err
		}
		avgSalary, err := s.analyticsRepo.AvgSalaryInRegion(region)
		if err != nil {
			return err
		}

		stats := &models.RegionStatistics{
			Region:                 region,
			Date:                   day,
			TotalJobsPosted:        int(totalJobs),
			ActiveJobs:             int(activeJobs),
			FilledPositions:        int(filledJobs),
			TotalCandidates:        int(candidates),
			EmployedCandidates:     int(successfulApps),
			TotalApplications:      int(totalApps),
			SuccessfulApplications: int(successfulApps),
			AvgSalary:              avgSalary,
		}
		if candidates > 0 {
			rate := float64(candidates-successfulApps) / float64(candidates) * 100
			stats.UnemploymentRate = &rate
		}

		if err := s.analyticsRepo.UpsertRegionStats(stats); err != nil {
			return err
		}

		logger.CtxDebug(ctx, "region statistics collected", "region", region, "date", day.Format("2006-01-02"))
	}

	return nil
}

// CollectIndustryStatistics snapshots per-sector job figures for the date.
func (s *AnalyticsServiceImpl) CollectIndustryStatistics(ctx context.Context, date time.Time) error {
	day := date.Truncate(24 * time.Hour)

	for _, industry := range trackedIndustries {
		counts, err := s.analyticsRepo.CountJobsInIndustry(industry)
		if err != nil {
			return err
		}

		stats := &models.IndustryStatistics{
			Industry:              industry,
			Date:                  day,
			TotalJobs:             int(counts.TotalJobs),
			ActiveJobs:            int(counts.ActiveJobs),
			AvgApplicationsPerJob: counts.AvgApplications,
			AvgSalaryMin:          counts.AvgSalaryMin,
			AvgSalaryMax:          counts.AvgSalaryMax,
		}

		if err := s.analyticsRepo.UpsertIndustryStats(stats); err != nil {
			return err
		}
	}

	logger.CtxDebug(ctx, "industry statistics collected", "industries", len(trackedIndustries), "date", day.Format("2006-01-02"))
	return nil
}

// CollectSkillDemand snapshots supply/demand per skill for the date.
func (s *AnalyticsServiceImpl) CollectSkillDemand(ctx context.Context, date time.Time) error {
	skills, err := s.analyticsRepo.DistinctRequiredSkills()
	if err != nil {
		return err
	}

	day := date.Truncate(24 * time.Hour)

	for _, skill := range skills {
		jobs, err := s.analyticsRepo.CountJobsRequiringSkill(skill)
		if err != nil {
			return err
		}
		candidates, err := s.profileRepo.CountCandidatesWithSkill(skill)
		if err != nil {
			return err
		}

		demand := &models.SkillDemand{
			SkillName:        skill,
			Date:             day,
			JobsRequiring:    int(jobs),
			CandidatesHaving: int(candidates),
		}
		if jobs > 0 {
			ratio := float64(candidates) / float64(jobs)
			demand.SupplyDemandRatio = &ratio
		}

		if err := s.analyticsRepo.UpsertSkillDemand(demand); err != nil {
			return err
		}
	}

	logger.CtxDebug(ctx, "skill demand collected", "skills", len(skills), "date", day.Format("2006-01-02"))
	return nil
}

func parseStatsRange(query *dto.StatsQuery) (time.Time, time.Time, error) {
	to := time.Now()
	from := to.AddDate(0, -1, 0)

	if query.DateFrom != "" {
		parsed, err := time.Parse("2006-01-02", query.DateFrom)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewBadRequestError("invalid date_from, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if query.DateTo != "" {
		parsed, err := time.Parse("2006-01-02", query.DateTo)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewBadRequestError("invalid date_to, expected YYYY-MM-DD")
		}
		to = parsed
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("date_from must not be after date_to")
	}

	return from, to, nil
}
