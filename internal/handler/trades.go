package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	"tradejournal/internal/service"
)

var tradeOrderColumns = map[string]string{
	"entry_date": "entry_date",
	"exit_date":  "exit_date",
	"symbol":     "symbol",
	"pnl":        "pnl",
	"created_at": "created_at",
}

type TradesHandler struct {
	Repo    repository.Repository
	Journal *service.JournalService
}

func (h *TradesHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/trades")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// @Summary List trades
// @Tags trades
// @Param account_id query string false "account filter"
// @Param symbol query string false "symbol filter"
// @Param status query string false "OPEN, CLOSED or PENDING"
// @Param direction query string false "LONG or SHORT"
// @Param since query string false "RFC3339 lower bound on entry date"
// @Param until query string false "RFC3339 upper bound on entry date"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades [get]
func (h *TradesHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListTradesParams{
		Limit:     limit,
		Offset:    offset,
		AccountID: strQueryPtr(c, "account_id"),
		Symbol:    strQueryPtr(c, "symbol"),
		Status:    strQueryPtr(c, "status"),
		Direction: strQueryPtr(c, "direction"),
		Since:     timeQueryPtr(c, "since"),
		Until:     timeQueryPtr(c, "until"),
		OrderBy:   parseOrder(c.Query("order_by"), tradeOrderColumns),
		Asc:       boolPtr(c.Query("order") == "asc"),
	}
	items, err := h.Repo.ListTrades(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountTrades(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Create a trade
// @Tags trades
// @Accept json
// @Param body body models.Trade true "trade"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades [post]
func (h *TradesHandler) create(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var item models.Trade
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if err := h.Journal.CreateTrade(c.Request.Context(), &item); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Get a trade
// @Tags trades
// @Param id path string true "trade id"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades/{id} [get]
func (h *TradesHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	item, err := h.Repo.GetTradeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "trade not found", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Update a trade
// @Tags trades
// @Accept json
// @Param id path string true "trade id"
// @Param body body models.Trade true "trade"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades/{id} [put]
func (h *TradesHandler) update(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var item models.Trade
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item.ID = c.Param("id")
	if err := h.Journal.UpdateTrade(c.Request.Context(), &item); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete a trade
// @Tags trades
// @Param id path string true "trade id"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades/{id} [delete]
func (h *TradesHandler) remove(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	if err := h.Journal.DeleteTrade(c.Request.Context(), c.Param("id")); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": c.Param("id")}, nil)
}

func writeJournalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTradeNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrWithdrawalNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrLastAccount),
		errors.Is(err, service.ErrAmountNotPositive),
		errors.Is(err, service.ErrMissingSymbol),
		errors.Is(err, service.ErrMissingAccount),
		errors.Is(err, service.ErrEmptySnapshot):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		Error(c, http.StatusBadGateway, err.Error(), nil)
	}
}
