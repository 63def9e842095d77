package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/SscSPs/crypto_pulse/internal/apperrors"
	portssvc "github.com/SscSPs/crypto_pulse/internal/core/ports/services"
	"github.com/SscSPs/crypto_pulse/internal/dto"
	"github.com/SscSPs/crypto_pulse/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	defaultStreamPing = 30 * time.Second
	streamWriteWait   = 10 * time.Second
	streamReadLimit   = 512
)

// streamHandler pushes a chart snapshot over a websocket every time the live
// surface receives a series, and follows the surface across rebuilds.
type streamHandler struct {
	chart    portssvc.ChartSvcFacade
	upgrader websocket.Upgrader
	ping     time.Duration
}

func newStreamHandler(chart portssvc.ChartSvcFacade, allowedOrigins []string, ping time.Duration) *streamHandler {
	if ping <= 0 {
		ping = defaultStreamPing
	}
	h := &streamHandler{
		chart: chart,
		ping:  ping,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		}
	}
	return h
}

func (h *streamHandler) serve(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go h.readPump(conn, cancel)

	logger.Info("Chart stream opened")
	err = h.pump(ctx, conn)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Chart stream closed", slog.String("error", err.Error()))
		return
	}
	logger.Info("Chart stream closed")
}

// pump writes snapshots until the client goes away or the service stops.
func (h *streamHandler) pump(ctx context.Context, conn *websocket.Conn) error {
	ticker := time.NewTicker(h.ping)
	defer ticker.Stop()

	for {
		updates, err := h.chart.Subscribe(ctx)
		switch {
		case errors.Is(err, apperrors.ErrSurfaceDisposed):
			// detached; retried on the next tick
			updates = nil
		case err != nil:
			h.writeClose(conn, err)
			return err
		}
		if err := h.writeSnapshot(ctx, conn); err != nil {
			return err
		}

	follow:
		for {
			select {
			case <-ctx.Done():
				h.writeClose(conn, nil)
				return ctx.Err()
			case _, ok := <-updates:
				if !ok {
					break follow
				}
				if err := h.writeSnapshot(ctx, conn); err != nil {
					return err
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
					return err
				}
				if updates == nil {
					break follow
				}
			}
		}
	}
}

func (h *streamHandler) writeSnapshot(ctx context.Context, conn *websocket.Conn) error {
	snap, err := h.chart.Snapshot(ctx)
	if err != nil {
		h.writeClose(conn, err)
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(dto.ToChartResponse(snap))
}

func (h *streamHandler) writeClose(conn *websocket.Conn, cause error) {
	code, text := websocket.CloseNormalClosure, ""
	if cause != nil && !errors.Is(cause, context.Canceled) {
		code, text = websocket.CloseGoingAway, "service unavailable"
	}
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(streamWriteWait))
}

// readPump drains client frames so control messages are processed, and cancels
// the stream once the client disconnects or stops answering pings.
func (h *streamHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	pongWait := 2 * h.ping
	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

