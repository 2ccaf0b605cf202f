package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mcoot/battleship-go/internal/events"
	"github.com/mcoot/battleship-go/internal/services/match"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// EventsHandler streams match events over a WebSocket
type EventsHandler struct {
	matchController *match.Controller
	hubManager      *events.HubManager
	logger          *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(matchController *match.Controller, hubManager *events.HubManager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		matchController: matchController,
		hubManager:      hubManager,
		logger:          logger.With(slog.String("component", "events_stream")),
	}
}

// Stream handles GET /api/v1/matches/{id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := matchID(r)
	if _, err := h.matchController.GetMatch(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	// Subscribe before the handshake completes so no event published after
	// the client connects is missed
	sub := events.NewSubscriber(uuid.NewString())
	hub := h.hubManager.Subscribe(id, sub)
	defer hub.Unsubscribe(sub)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			slog.String("match_id", string(id)),
			slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go h.readPump(conn, closed)
	h.writePump(conn, sub, closed)
}

// readPump discards client messages and notices when the client goes away
func (h *EventsHandler) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(512)
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

func (h *EventsHandler) writePump(conn *websocket.Conn, sub *events.Subscriber, closed <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-sub.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closed:
			return
		}
	}
}
