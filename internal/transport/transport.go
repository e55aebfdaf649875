// Package transport owns the one websocket connection to the game server:
// connect, keep-alive, raw send/receive, teardown. It never interprets
// payloads; inbound frames go to the handler as raw bytes.
package transport

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/malags/hyperplane-chess/internal/protocol"
	"github.com/malags/hyperplane-chess/pkg/types"
)

// DefaultPingPeriod is well under common idle-connection timeouts without
// flooding the server.
const DefaultPingPeriod = 50 * time.Second

const writeTimeout = 3 * time.Second

// Options tweaks dial behavior; the zero value uses defaults.
type Options struct {
	// PingPeriod overrides the keep-alive interval (tests use a short one).
	PingPeriod time.Duration
}

// Conn is one live connection. The creating view owns it exclusively and
// hands descendants only the Send capability.
type Conn struct {
	ws      *websocket.Conn
	handler func(raw []byte)
	log     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    bool
	closedMu  sync.Mutex
}

// Dial opens the connection, immediately requests the full game status as
// bootstrap, and starts the keep-alive ticker. Every inbound frame is
// handed to handler; the read loop ends on the first read error (no
// auto-reconnect, the surrounding view re-dials on navigation).
func Dial(ctx context.Context, url string, handler func(raw []byte), log *zap.Logger, opts Options) (*Conn, error) {
	ws, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	connCtx, cancel := context.WithCancel(context.Background())
	c := &Conn{
		ws:      ws,
		handler: handler,
		log:     log,
		ctx:     connCtx,
		cancel:  cancel,
	}
	log.Info("connected", zap.String("url", url))

	c.Send(protocol.GetGameStatus())

	period := opts.PingPeriod
	if period <= 0 {
		period = DefaultPingPeriod
	}
	go c.keepAlive(period)
	go c.readLoop()

	return c, nil
}

// Send serializes and transmits one frame. Fire-and-forget: on a closed
// connection or a write failure the frame is dropped with a logged warning,
// never an error to the caller. UI-driven retries are the recovery path.
func (c *Conn) Send(env types.Envelope) {
	if c.isClosed() {
		c.log.Warn("send on closed connection dropped", zap.String("command", env.Command))
		return
	}

	raw, err := json.Marshal(env)
	if err != nil {
		c.log.Warn("marshal outbound frame failed", zap.String("command", env.Command), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(c.ctx, writeTimeout)
	defer cancel()

	c.writeMu.Lock()
	err = c.ws.Write(ctx, websocket.MessageText, raw)
	c.writeMu.Unlock()
	if err != nil {
		c.log.Warn("send failed, frame dropped", zap.String("command", env.Command), zap.Error(err))
	}
}

// Close tears down the keep-alive and the socket as one paired operation; a
// ticker outliving its socket would keep pinging a dead handle. Idempotent,
// and any later Send is a logged no-op.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		c.closedMu.Lock()
		c.closed = true
		c.closedMu.Unlock()

		c.cancel()
		_ = c.ws.Close(websocket.StatusNormalClosure, "leaving")
		c.log.Info("disconnected")
	})
}

func (c *Conn) isClosed() bool {
	c.closedMu.Lock()
	defer c.closedMu.Unlock()
	return c.closed
}

func (c *Conn) keepAlive(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.Send(protocol.Ping())
		}
	}
}

func (c *Conn) readLoop() {
	for {
		_, raw, err := c.ws.Read(c.ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				c.log.Info("connection closed", zap.Error(err))
			default:
				c.log.Warn("read failed, connection lost", zap.Error(err))
			}
			c.Close()
			return
		}
		c.handler(raw)
	}
}
