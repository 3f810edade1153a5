package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	"tradejournal/internal/service"
)

type AccountsHandler struct {
	Repo    repository.Repository
	Journal *service.JournalService
}

func (h *AccountsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/accounts")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// @Summary List accounts
// @Tags accounts
// @Success 200 {object} map[string]any
// @Router /api/v1/accounts [get]
func (h *AccountsHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListAccounts(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Create an account
// @Tags accounts
// @Accept json
// @Param body body models.Account true "account"
// @Success 200 {object} map[string]any
// @Router /api/v1/accounts [post]
func (h *AccountsHandler) create(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var item models.Account
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if err := h.Journal.CreateAccount(c.Request.Context(), &item); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Get an account
// @Tags accounts
// @Param id path string true "account id"
// @Success 200 {object} map[string]any
// @Router /api/v1/accounts/{id} [get]
func (h *AccountsHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	item, err := h.Repo.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "account not found", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Update an account
// @Tags accounts
// @Accept json
// @Param id path string true "account id"
// @Param body body models.Account true "account"
// @Success 200 {object} map[string]any
// @Router /api/v1/accounts/{id} [put]
func (h *AccountsHandler) update(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var item models.Account
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item.ID = c.Param("id")
	if err := h.Journal.UpdateAccount(c.Request.Context(), &item); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete an account
// @Tags accounts
// @Param id path string true "account id"
// @Success 200 {object} map[string]any
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountsHandler) remove(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	if err := h.Journal.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": c.Param("id")}, nil)
}
