package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/risk"
)

type RiskHandler struct {
	Calc risk.Calculator
}

func (h *RiskHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/risk/position-size", h.positionSize)
}

// @Summary Position size for a proposed trade
// @Tags risk
// @Accept json
// @Param body body risk.SizeRequest true "proposed trade"
// @Success 200 {object} map[string]any
// @Router /api/v1/risk/position-size [post]
func (h *RiskHandler) positionSize(c *gin.Context) {
	var req risk.SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	result, err := h.Calc.Size(req)
	if err != nil {
		switch {
		case errors.Is(err, risk.ErrBalanceNotPositive),
			errors.Is(err, risk.ErrRiskOutOfRange),
			errors.Is(err, risk.ErrStopAtEntry):
			Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			Error(c, http.StatusInternalServerError, err.Error(), nil)
		}
		return
	}
	Ok(c, result, nil)
}
