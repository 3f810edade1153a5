package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Trade Journal Service

Backend for the trading journal: trade and account records, derived
performance analytics, broker statement import and an optional remote
state mirror.

## Health

- GET /healthz
- GET /readyz

## Records

- GET/POST /api/v1/trades, GET/PUT/DELETE /api/v1/trades/:id
- GET/POST /api/v1/accounts, GET/PUT/DELETE /api/v1/accounts/:id
- GET/POST /api/v1/withdrawals, PUT/DELETE /api/v1/withdrawals/:id

## Analytics

All analytics accept account_id, since and until query filters.

- GET /api/v1/analytics/summary
- GET /api/v1/analytics/weekdays
- GET /api/v1/analytics/hours
- GET /api/v1/analytics/symbols
- GET /api/v1/analytics/equity-curve
- GET /api/v1/analytics/equity-history

## Import / export

- POST /api/v1/import/csv?account_id=... (broker statement)
- GET /api/v1/export
- POST /api/v1/import/snapshot?confirm=true (replaces all data)

## Tools

- POST /api/v1/risk/position-size
- GET /api/v1/sync/status
- POST /api/v1/sync/flush
- GET /api/v1/sync/stream (websocket)
- GET /swagger/index.html
`)
	})
}
