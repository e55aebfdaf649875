// Package server is the development game server: a concrete peer speaking
// the wire protocol so the client can be played and tested end to end. Its
// move rules are deliberately naive; the client treats any server as
// opaque.
package server

import (
	"context"

	"go.uber.org/zap"
)

type HubMsg interface{ isHubMsg() }

type CreateSession struct {
	ID       string
	Settings Settings
	Reply    chan *Session
}

type GetSession struct {
	ID    string
	Reply chan *Session
}

type EnsureSession struct {
	ID       string
	Settings Settings // only used if creation happens
	Reply    chan *Session
}

type RemoveSession struct {
	ID string
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Hub owns all live sessions, keyed by the id in the connect URL.
type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*Session
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*Session),
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if s := h.sessions[msg.ID]; s != nil {
					msg.Reply <- s
					break
				}
				s := NewSession(h.ctx, msg.Settings, h.log.With(zap.String("session", msg.ID)))
				h.sessions[msg.ID] = s
				msg.Reply <- s

			case GetSession:
				msg.Reply <- h.sessions[msg.ID] // may be nil

			case EnsureSession:
				if s := h.sessions[msg.ID]; s != nil {
					msg.Reply <- s
					break
				}
				s := NewSession(h.ctx, msg.Settings, h.log.With(zap.String("session", msg.ID)))
				h.sessions[msg.ID] = s
				msg.Reply <- s

			case RemoveSession:
				delete(h.sessions, msg.ID)

			case ShutdownHub:
				for _, s := range h.sessions {
					s.Inbox() <- Shutdown{}
				}
				clear(h.sessions)
				h.cancel()
			}
		}
	}
}
