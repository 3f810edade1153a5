package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/config"
	"tradejournal/internal/importer"
	"tradejournal/internal/models"
	"tradejournal/internal/service"
)

type ImportHandler struct {
	Config   config.ImportConfig
	Journal  *service.JournalService
	Snapshot *service.SnapshotService
}

func (h *ImportHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1")
	g.POST("/import/csv", h.importCSV)
	g.POST("/import/snapshot", h.importSnapshot)
	g.GET("/export", h.export)
}

// @Summary Import a broker statement CSV
// @Tags import
// @Accept mpfd
// @Param account_id query string true "target account"
// @Param file formData file false "statement file; raw body is accepted too"
// @Success 200 {object} map[string]any
// @Router /api/v1/import/csv [post]
func (h *ImportHandler) importCSV(c *gin.Context) {
	if h.Journal == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	accountID := strings.TrimSpace(c.Query("account_id"))
	if accountID == "" {
		Error(c, http.StatusBadRequest, "account_id is required", nil)
		return
	}

	reader, closeFn, err := h.statementReader(c)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	defer closeFn()

	result, err := importer.Parse(reader, importer.Options{
		AccountID: accountID,
		MaxRows:   h.Config.MaxRows,
	})
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Journal.ImportTrades(c.Request.Context(), result.Trades); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, gin.H{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	}, nil)
}

// statementReader prefers a multipart "file" part and falls back to the raw
// request body, both capped at the configured size.
func (h *ImportHandler) statementReader(c *gin.Context) (io.Reader, func(), error) {
	maxBytes := h.Config.MaxBodySize
	if maxBytes <= 0 {
		maxBytes = 8 << 20
	}
	if file, err := c.FormFile("file"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return nil, func() {}, err
		}
		return io.LimitReader(f, maxBytes), func() { _ = f.Close() }, nil
	}
	return io.LimitReader(c.Request.Body, maxBytes), func() {}, nil
}

// @Summary Replace the whole journal from an exported document
// @Tags import
// @Accept json
// @Param confirm query bool true "must be true"
// @Param body body models.Snapshot true "exported journal"
// @Success 200 {object} map[string]any
// @Router /api/v1/import/snapshot [post]
func (h *ImportHandler) importSnapshot(c *gin.Context) {
	if h.Snapshot == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	if c.Query("confirm") != "true" {
		Error(c, http.StatusBadRequest, "import replaces all data; pass confirm=true", nil)
		return
	}
	var snap models.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if err := h.Snapshot.Import(c.Request.Context(), snap); err != nil {
		writeJournalError(c, err)
		return
	}
	Ok(c, gin.H{
		"accounts":    len(snap.Accounts),
		"trades":      len(snap.Trades),
		"withdrawals": len(snap.Withdrawals),
	}, nil)
}

// @Summary Export the whole journal as one document
// @Tags import
// @Success 200 {object} models.Snapshot
// @Router /api/v1/export [get]
func (h *ImportHandler) export(c *gin.Context) {
	if h.Snapshot == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	snap, err := h.Snapshot.Export(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="tradejournal-export.json"`)
	c.JSON(http.StatusOK, snap)
}
