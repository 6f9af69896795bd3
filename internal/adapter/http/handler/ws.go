package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/metrics"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
	ws "github.com/Daniyar8k/park-ledger-system/pkg/wsHub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Operators serves the websocket endpoint operator UIs subscribe to.
// Connected clients receive reload notifications after every drift-triggered
// state reload, so they re-fetch instead of showing stale data.
type Operators struct {
	hub *ws.ConnectionHub
	l   logger.Logger
}

func NewOperators(hub *ws.ConnectionHub, l logger.Logger) *Operators {
	return &Operators{
		hub: hub,
		l:   l,
	}
}

// Handle godoc
// @Summary      Operator event stream
// @Description  Upgrades to a WebSocket carrying state reload notifications
// @Tags         Operators
// @Router       /ws/operators [get]
func (h *Operators) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_operator_connect")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Error(ctx, "failed to upgrade connection", err)
		return
	}

	id, err := uuid.New()
	if err != nil {
		h.l.Error(ctx, "failed to generate connection id", err)
		conn.Close()
		return
	}

	wsConn := ws.NewConn(r.Context(), id, conn)
	if err := h.hub.Add(wsConn); err != nil {
		h.l.Error(ctx, "failed to register connection", err)
		wsConn.Close()
		return
	}
	metrics.WebSocketConnectionsGauge.Set(float64(h.hub.Count()))

	defer func() {
		if err := h.hub.Delete(id); err != nil {
			h.l.Warn(ctx, "failed to remove connection", "err", err.Error())
		}
		metrics.WebSocketConnectionsGauge.Set(float64(h.hub.Count()))
	}()

	h.l.Info(ctx, "operator connected", "connection_id", id.String())

	// Inbound messages are ignored; the read loop only keeps the
	// connection alive and detects closure.
	if err := wsConn.Listen(func(msg any) error { return nil }); err != nil {
		h.l.Debug(ctx, "operator disconnected", "connection_id", id.String(), "reason", err.Error())
	}
}
