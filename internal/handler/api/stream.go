package api

import (
	"context"
	"time"

	"GoldTracker/internal/domain/models"
	xlogger "GoldTracker/pkg/logger"
	"GoldTracker/pkg/timer"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const writeWait = 10 * time.Second

// Stream upgrades to a WebSocket and pushes one frame per stream interval
// until the client leaves or the session is evicted.
func (h *DashboardHandler) Stream(c echo.Context) error {
	d, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), c.Response().Header())
	if err != nil {
		// the upgrader already wrote the handshake error
		h.logger.Debug("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	l := h.logger.With(xlogger.String("session", d.ID()))
	l.Debug("stream opened")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// reads only detect the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	frames := make(chan models.StreamFrame, 1)
	frames <- d.Frame()
	tick := timer.Every(ctx, h.cfg.Source, h.cfg.StreamInterval, func(time.Time) {
		if d.Closed() {
			cancel()
			return
		}
		d.Touch()
		select {
		case frames <- d.Frame():
		default:
		}
	})
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			l.Debug("stream closed")
			return nil
		case f := <-frames:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(f); err != nil {
				l.Debug("stream write failed", xlogger.Error(err))
				return nil
			}
		}
	}
}
