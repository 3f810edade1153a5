package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	statesync "tradejournal/internal/sync"
)

// StreamHandler pushes sync status transitions over a websocket so the UI
// can show the saving indicator without polling.
type StreamHandler struct {
	Sync   *statesync.Coordinator
	Logger *zap.Logger
}

func (h *StreamHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/sync/stream", h.stream)
}

func (h *StreamHandler) stream(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		// The API is same-origin behind the CORS middleware already.
		InsecureSkipVerify: true,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	ctx := c.Request.Context()

	if h.Sync == nil {
		_ = wsjson.Write(ctx, conn, statesync.StatusInfo{Status: statesync.StatusIdle})
		<-ctx.Done()
		return
	}

	updates, cancel := h.Sync.Subscribe()
	defer cancel()

	if err := wsjson.Write(ctx, conn, h.Sync.Status()); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case info, ok := <-updates:
			if !ok {
				return
			}
			if err := wsjson.Write(ctx, conn, info); err != nil {
				return
			}
		}
	}
}
