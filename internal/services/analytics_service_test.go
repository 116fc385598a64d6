package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services/dto"
)

// stubAnalyticsRepo overrides the snapshot reads and forecast writes.
type stubAnalyticsRepo struct {
	repositories.AnalyticsRepository

	industryStats []models.IndustryStatistics
	regionStats   []models.RegionStatistics

	createdForecasts []*models.Forecast
}

func (s *stubAnalyticsRepo) LatestIndustryStatsPair() ([]models.IndustryStatistics, error) {
	return s.industryStats, nil
}

func (s *stubAnalyticsRepo) GetRegionStats(region string, from, to time.Time) ([]models.RegionStatistics, error) {
	return s.regionStats, nil
}

func (s *stubAnalyticsRepo) CreateForecast(forecast *models.Forecast) error {
	s.createdForecasts = append(s.createdForecasts, forecast)
	return nil
}

func industrySnapshot(industry string, date time.Time, totalJobs int) models.IndustryStatistics {
	return models.IndustryStatistics{
		Industry:  industry,
		Date:      date,
		TotalJobs: totalJobs,
	}
}

func TestIndustryTrends_GrowthBetweenSnapshots(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	repo := &stubAnalyticsRepo{industryStats: []models.IndustryStatistics{
		industrySnapshot("Finance", yesterday, 100),
		industrySnapshot("Finance", today, 90),
		industrySnapshot("IT", yesterday, 50),
		industrySnapshot("IT", today, 75),
	}}
	svc := NewAnalyticsService(repo, nil, NoopEnqueuer())

	trends, err := svc.IndustryTrends()
	require.NoError(t, err)
	require.Len(t, trends, 2)

	// Fastest growing first
	assert.Equal(t, "IT", trends[0].Industry)
	require.NotNil(t, trends[0].GrowthRatePct)
	assert.InDelta(t, 50.0, *trends[0].GrowthRatePct, 0.001)
	assert.Equal(t, 50, trends[0].JobsBefore)
	assert.Equal(t, 75, trends[0].JobsNow)

	assert.Equal(t, "Finance", trends[1].Industry)
	require.NotNil(t, trends[1].GrowthRatePct)
	assert.InDelta(t, -10.0, *trends[1].GrowthRatePct, 0.001)
}

func TestIndustryTrends_SingleSnapshotHasNoRate(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	repo := &stubAnalyticsRepo{industryStats: []models.IndustryStatistics{
		industrySnapshot("Healthcare", today, 30),
	}}
	svc := NewAnalyticsService(repo, nil, NoopEnqueuer())

	trends, err := svc.IndustryTrends()
	require.NoError(t, err)
	require.Len(t, trends, 1)

	assert.Equal(t, "Healthcare", trends[0].Industry)
	assert.Nil(t, trends[0].GrowthRatePct)
	assert.Equal(t, 30, trends[0].JobsNow)
	assert.Empty(t, trends[0].FromDate)
}

func TestIndustryTrends_EmptyTables(t *testing.T) {
	svc := NewAnalyticsService(&stubAnalyticsRepo{}, nil, NoopEnqueuer())

	trends, err := svc.IndustryTrends()
	require.NoError(t, err)
	assert.Empty(t, trends)
}

func unemploymentRequest(region string) *dto.ForecastRequest {
	return &dto.ForecastRequest{
		ForecastType: models.ForecastTypeUnemployment,
		Region:       region,
		Months:       3,
	}
}

func TestQueueForecast_GeneratesOnThePool(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	queue := &recordingEnqueuer{}
	svc := NewAnalyticsService(repo, nil, queue)

	require.NoError(t, svc.QueueForecast(unemploymentRequest("Almaty")))

	// Nothing is persisted until the pool runs the task
	assert.Equal(t, []string{"forecast-generation"}, queue.names)
	assert.Empty(t, repo.createdForecasts)

	queue.runAll()

	require.Len(t, repo.createdForecasts, 1)
	assert.Equal(t, models.ForecastTypeUnemployment, repo.createdForecasts[0].ForecastType)
	assert.Equal(t, "Almaty", repo.createdForecasts[0].Region)
}

func TestQueueForecast_GeneratesInlineWhenPoolFull(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	svc := NewAnalyticsService(repo, nil, &recordingEnqueuer{full: true})

	require.NoError(t, svc.QueueForecast(unemploymentRequest("Astana")))

	require.Len(t, repo.createdForecasts, 1)
	assert.Equal(t, "Astana", repo.createdForecasts[0].Region)
}
