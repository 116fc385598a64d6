package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthr_backend/internal/models"
	"smarthr_backend/internal/services/dto"
)

type AnalyticsHandler struct {
	*BaseHandler
}

func NewAnalyticsHandler(base *BaseHandler) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: base}
}

// Dashboard returns the cross-domain summary for government users.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	summary, err := h.Services(c).AnalyticsService.Dashboard()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) RegionStats(c *gin.Context) {
	var query dto.StatsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	stats, err := h.Services(c).AnalyticsService.RegionStats(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": stats})
}

// RegionMap returns the latest snapshot per region for the map view.
func (h *AnalyticsHandler) RegionMap(c *gin.Context) {
	stats, err := h.Services(c).AnalyticsService.RegionMap()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": stats})
}

func (h *AnalyticsHandler) IndustryStats(c *gin.Context) {
	var query dto.StatsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	stats, err := h.Services(c).AnalyticsService.IndustryStats(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": stats})
}

// IndustryTrends reports job growth between the two latest snapshots.
func (h *AnalyticsHandler) IndustryTrends(c *gin.Context) {
	trends, err := h.Services(c).AnalyticsService.IndustryTrends()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": trends})
}

// SkillDemand returns the most demanded skills from the latest snapshot.
func (h *AnalyticsHandler) SkillDemand(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 20)

	demand, err := h.Services(c).AnalyticsService.SkillDemand(limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": demand})
}

func (h *AnalyticsHandler) SkillGap(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 20)

	entries, err := h.Services(c).AnalyticsService.SkillGap(limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": entries})
}

func (h *AnalyticsHandler) Trends(c *gin.Context) {
	days := ParseQueryInt(c, "days", 30)
	if days < 1 || days > 365 {
		days = 30
	}

	resp, err := h.Services(c).AnalyticsService.ApplicationTrends(days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateForecast queues the generation on the worker pool and answers
// before the forecast exists. Clients poll the list endpoint for the
// result.
func (h *AnalyticsHandler) GenerateForecast(c *gin.Context) {
	var req dto.ForecastRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.Services(c).AnalyticsService.QueueForecast(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Forecast generation started"})
}

func (h *AnalyticsHandler) ListForecasts(c *gin.Context) {
	forecastType := models.ForecastType(c.Query("type"))
	region := c.Query("region")
	industry := c.Query("industry")

	forecasts, err := h.Services(c).AnalyticsService.ListForecasts(forecastType, region, industry)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": forecasts})
}
