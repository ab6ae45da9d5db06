package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/roadmaphq/roadmap/internal/ctxkeys"
	"github.com/roadmaphq/roadmap/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type StreamHandler struct {
	goalService *service.GoalService
	upgrader    websocket.Upgrader
}

func NewStreamHandler(goalService *service.GoalService) *StreamHandler {
	return &StreamHandler{
		goalService: goalService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Stream upgrades to a websocket and pushes the full goal collection
// as a JSON array: once immediately, then after every change. The
// subscription is released when the client goes away.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	snapshots, release, err := h.goalService.Subscribe(user.ID)
	if err != nil {
		slog.Error("failed to subscribe to goals", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to open stream")
		return
	}
	defer release()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		slog.Debug("websocket upgrade failed", "error", err, "user_id", user.ID)
		return
	}
	defer conn.Close()

	// Reader goroutine: we never expect client messages, but reading is
	// required to notice close frames.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case goals, ok := <-snapshots:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = conn.WriteJSON(toGoalResponses(goals))
			if err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = conn.WriteMessage(websocket.PingMessage, nil)
			if err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
