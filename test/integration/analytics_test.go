package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services"
	"smarthr_backend/test/helpers"
)

// registerGovUser provisions a government analyst account. The role is
// flipped in the database and the token reissued, since roles are baked
// into the access token.
func registerGovUser(t *testing.T, ts *helpers.TestServer) string {
	t.Helper()

	username := helpers.UniqueName("analyst")
	_, userID := helpers.RegisterUser(t, ts, username, models.UserRoleCandidate)
	helpers.PromoteToRole(t, ts, userID, models.UserRoleGovernment)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"login":    username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &auth))
	return auth.AccessToken
}

func TestAnalytics_RequiresGovOrAdmin(t *testing.T) {
	ts := GetTestServer(t)
	candidateToken, _ := helpers.RegisterCandidate(t, ts)
	employerToken, _ := helpers.RegisterEmployer(t, ts)

	for _, token := range []string{candidateToken, employerToken} {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/analytics/dashboard", token, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	}

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/analytics/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAnalytics_Dashboard(t *testing.T) {
	ts := GetTestServer(t)
	govToken := registerGovUser(t, ts)

	employerToken, _ := helpers.RegisterEmployer(t, ts)
	candidateToken, _ := helpers.RegisterCandidate(t, ts)
	jobID := helpers.CreateOpenJob(t, ts, employerToken, "Analytics Fixture Job")
	applyToJob(t, ts, candidateToken, jobID)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/analytics/dashboard", govToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var dashboard struct {
		UsersByRole          map[string]int64 `json:"users_by_role"`
		JobsByStatus         map[string]int64 `json:"jobs_by_status"`
		ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &dashboard))
	assert.GreaterOrEqual(t, dashboard.UsersByRole["candidate"], int64(1))
	assert.GreaterOrEqual(t, dashboard.UsersByRole["employer"], int64(1))
	assert.GreaterOrEqual(t, dashboard.JobsByStatus["open"], int64(1))
	assert.GreaterOrEqual(t, dashboard.ApplicationsByStatus["submitted"], int64(1))
}

func TestAnalytics_ForecastLifecycle(t *testing.T) {
	ts := GetTestServer(t)
	govToken := registerGovUser(t, ts)

	// Each run forecasts a unique region so the poll below cannot match
	// a forecast from an earlier test.
	region := helpers.UniqueName("Almaty")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/analytics/forecasts", govToken, map[string]interface{}{
		"forecast_type": "unemployment",
		"region":        region,
		"months":        3,
	})
	require.Equal(t, http.StatusAccepted, res.StatusCode, body)
	assert.Contains(t, body, "Forecast generation started")

	// Generation runs on the worker pool; poll the list until it lands
	assert.Eventually(t, func() bool {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/analytics/forecasts?type=unemployment&region="+region, govToken, nil)
		if res.StatusCode != http.StatusOK {
			return false
		}
		var listing struct {
			Results []struct {
				ForecastType string `json:"forecast_type"`
				Region       string `json:"region"`
			} `json:"results"`
		}
		if err := json.Unmarshal([]byte(body), &listing); err != nil {
			return false
		}
		return len(listing.Results) == 1 &&
			listing.Results[0].ForecastType == "unemployment" &&
			listing.Results[0].Region == region
	}, 5*time.Second, 50*time.Millisecond, "queued forecast never appeared in the listing")
}

func TestAnalytics_ForecastListFiltersByIndustry(t *testing.T) {
	ts := GetTestServer(t)
	govToken := registerGovUser(t, ts)

	region := helpers.UniqueName("Astana")
	repo := repositories.NewAnalyticsRepository(ts.DB)
	for _, industry := range []string{"IT", "Construction"} {
		require.NoError(t, repo.CreateForecast(&models.Forecast{
			ForecastType:    models.ForecastTypeJobGrowth,
			Region:          region,
			Industry:        industry,
			ForecastDate:    time.Now(),
			ForecastMonths:  3,
			PredictedValue:  100,
			ConfidenceScore: 0.7,
		}))
	}

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/analytics/forecasts?region="+region+"&industry=IT", govToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var listing struct {
		Results []struct {
			Industry string `json:"industry"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	require.Len(t, listing.Results, 1)
	assert.Equal(t, "IT", listing.Results[0].Industry)
}

func TestAnalytics_SkillGap(t *testing.T) {
	ts := GetTestServer(t)
	govToken := registerGovUser(t, ts)

	employerToken, _ := helpers.RegisterEmployer(t, ts)
	helpers.CreateOpenJob(t, ts, employerToken, "Skill Gap Fixture Job")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/analytics/skill-gap?limit=5", govToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	// The fixture job requires Go, which must show up in the gap report
	assert.Contains(t, body, "Go")
}

func TestAnalytics_SnapshotEndpoints(t *testing.T) {
	ts := GetTestServer(t)
	govToken := registerGovUser(t, ts)

	employerToken, _ := helpers.RegisterEmployer(t, ts)
	helpers.CreateOpenJob(t, ts, employerToken, "Snapshot Fixture Job")

	// The daily collectors do not run under the test server, so fill
	// the snapshot tables by hand.
	svc := services.NewAnalyticsService(
		repositories.NewAnalyticsRepository(ts.DB),
		repositories.NewProfileRepository(ts.DB),
		services.NoopEnqueuer(),
	)
	ctx := context.Background()
	require.NoError(t, svc.CollectRegionStatistics(ctx, time.Now()))
	require.NoError(t, svc.CollectIndustryStatistics(ctx, time.Now()))
	require.NoError(t, svc.CollectSkillDemand(ctx, time.Now()))

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/analytics/regions/map", govToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Almaty")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/analytics/skill-demand?limit=5", govToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Go")

	// Only one snapshot date exists, so trends carry no growth rate yet
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/analytics/industries/trends", govToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "results")
}
