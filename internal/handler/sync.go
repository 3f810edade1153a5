package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statesync "tradejournal/internal/sync"
)

type SyncHandler struct {
	Sync *statesync.Coordinator
}

func (h *SyncHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/sync")
	g.GET("/status", h.status)
	g.POST("/flush", h.flush)
}

// @Summary Remote mirror status
// @Tags sync
// @Success 200 {object} map[string]any
// @Router /api/v1/sync/status [get]
func (h *SyncHandler) status(c *gin.Context) {
	if h.Sync == nil {
		Ok(c, statesync.StatusInfo{Status: statesync.StatusIdle}, nil)
		return
	}
	Ok(c, h.Sync.Status(), nil)
}

// @Summary Push the current state to the remote mirror now
// @Tags sync
// @Success 200 {object} map[string]any
// @Router /api/v1/sync/flush [post]
func (h *SyncHandler) flush(c *gin.Context) {
	if h.Sync == nil {
		Error(c, http.StatusServiceUnavailable, "sync not configured", nil)
		return
	}
	if err := h.Sync.Flush(c.Request.Context()); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, h.Sync.Status(), nil)
}
