package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	"tradejournal/internal/service"
)

type WithdrawalsHandler struct {
	Repo    repository.Repository
	Journal *service.JournalService
}

func (h *WithdrawalsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/withdrawals")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// @Summary List withdrawals
// @Tags withdrawals
// @Param account_id query string false "account filter"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Success 200 {object} map[string]any
// @Router /api/v1/withdrawals [get]
func (h *WithdrawalsHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListWithdrawalsParams{
		Limit:     limit,
		Offset:    offset,
		AccountID: strQueryPtr(c, "account_id"),
		Status:    strQueryPtr(c, "status"),
		Since:     timeQueryPtr(c, "since"),
		Until:     timeQueryPtr(c, "until"),
	}
	items, err := h.Repo.ListWithdrawals(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountWithdrawals(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Create a withdrawal
// @Tags withdrawals
// @Accept json
// @Param body body models.Withdrawal true "withdrawal"
// @Success 200 {object} map[string]any
// @Router /api/v1/withdrawals [post]
func (h *WithdrawalsHandler) create(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var item models.Withdrawal
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if err := h.Journal.CreateWithdrawal(c.Request.Context(), &item); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Update a withdrawal
// @Tags withdrawals
// @Accept json
// @Param id path string true "withdrawal id"
// @Param body body models.Withdrawal true "withdrawal"
// @Success 200 {object} map[string]any
// @Router /api/v1/withdrawals/{id} [put]
func (h *WithdrawalsHandler) update(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var item models.Withdrawal
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item.ID = c.Param("id")
	if err := h.Journal.UpdateWithdrawal(c.Request.Context(), &item); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete a withdrawal
// @Tags withdrawals
// @Param id path string true "withdrawal id"
// @Success 200 {object} map[string]any
// @Router /api/v1/withdrawals/{id} [delete]
func (h *WithdrawalsHandler) remove(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	if err := h.Journal.DeleteWithdrawal(c.Request.Context(), c.Param("id")); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": c.Param("id")}, nil)
}
