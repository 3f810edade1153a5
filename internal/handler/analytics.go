package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/repository"
	"tradejournal/internal/service"
)

type AnalyticsHandler struct {
	Repo      repository.Repository
	Analytics *service.AnalyticsService
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/analytics")
	g.GET("/summary", h.summary)
	g.GET("/weekdays", h.weekdays)
	g.GET("/hours", h.hours)
	g.GET("/symbols", h.symbols)
	g.GET("/equity-curve", h.equityCurve)
	g.GET("/equity-history", h.equityHistory)
}

func analyticsFilter(c *gin.Context) service.Filter {
	return service.Filter{
		AccountID: strQueryPtr(c, "account_id"),
		Since:     timeQueryPtr(c, "since"),
		Until:     timeQueryPtr(c, "until"),
	}
}

// @Summary Aggregate performance summary
// @Tags analytics
// @Param account_id query string false "account filter"
// @Param since query string false "RFC3339 lower bound on entry date"
// @Param until query string false "RFC3339 upper bound on entry date"
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) summary(c *gin.Context) {
	if h.Analytics == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	result, err := h.Analytics.Summary(c.Request.Context(), analyticsFilter(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

// @Summary P&L grouped by weekday
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/weekdays [get]
func (h *AnalyticsHandler) weekdays(c *gin.Context) {
	if h.Analytics == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	result, err := h.Analytics.ByWeekday(c.Request.Context(), analyticsFilter(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

// @Summary P&L grouped by entry hour
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/hours [get]
func (h *AnalyticsHandler) hours(c *gin.Context) {
	if h.Analytics == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	result, err := h.Analytics.ByHour(c.Request.Context(), analyticsFilter(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

// @Summary Trade counts grouped by symbol
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/symbols [get]
func (h *AnalyticsHandler) symbols(c *gin.Context) {
	if h.Analytics == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	result, err := h.Analytics.BySymbol(c.Request.Context(), analyticsFilter(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

// @Summary Running balance after each closed trade
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/equity-curve [get]
func (h *AnalyticsHandler) equityCurve(c *gin.Context) {
	if h.Analytics == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	result, err := h.Analytics.EquityCurve(c.Request.Context(), analyticsFilter(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

// @Summary Stored hourly equity snapshots
// @Tags analytics
// @Param account_id query string false "account filter"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/equity-history [get]
func (h *AnalyticsHandler) equityHistory(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListEquitySnapshots(c.Request.Context(), repository.ListEquitySnapshotsParams{
		Limit:     intQuery(c, "limit", 200),
		Offset:    intQuery(c, "offset", 0),
		AccountID: strQueryPtr(c, "account_id"),
		Since:     timeQueryPtr(c, "since"),
		Until:     timeQueryPtr(c, "until"),
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
