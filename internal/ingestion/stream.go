package ingestion

import (
	"io"
	"log/slog"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/gin-gonic/gin"
)

// StreamEvent is the SSE event name of snapshot pushes.
const StreamEvent = "snapshot"

// StreamHandler pushes the current snapshot, then the latest snapshot after
// each change, as server-sent events until the client goes away.
func (s *Service) StreamHandler(c *gin.Context) {
	updates := make(chan v1.Snapshot, 1)
	sub := s.sup.Subscribe(func(snap v1.Snapshot) {
		// keep only the newest snapshot if the client lags
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- snap:
		default:
		}
	})
	defer sub.Unsubscribe()

	slog.Info("Stream client connected", "subscription_id", sub.ID, "remote", c.ClientIP())

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snap := <-updates:
			c.SSEvent(StreamEvent, snap)
			return true
		}
	})

	slog.Info("Stream client disconnected", "subscription_id", sub.ID)
}
