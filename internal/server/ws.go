package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/malags/hyperplane-chess/pkg/types"
)

// SocketHandler upgrades GET /socket?id=<sessionId> and bridges the
// websocket to the session actor.
func SocketHandler(h *Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "missing id", http.StatusBadRequest)
			return
		}

		reply := make(chan *Session, 1)
		h.Inbox() <- EnsureSession{ID: id, Settings: DefaultSettings(), Reply: reply}
		session := <-reply
		if session == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan types.Envelope, 16)
		clientID := uuid.NewString()

		session.Inbox() <- Join{ClientID: clientID, Outbox: out}
		defer func() { session.Inbox() <- Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for env := range out {
				raw, _ := json.Marshal(env)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, raw)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, raw, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var env types.Envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				log.Warn("dropping malformed client frame", zap.Error(err))
				continue
			}
			session.Inbox() <- FromClient{ClientID: clientID, Frame: env}
		}
	}
}
