// Package client ties transport, dispatcher and the three state containers
// together behind a single event loop. One goroutine owns all state; socket
// frames and user intents arrive as messages on the same inbox, so every
// handler runs to completion before the next and readers always observe
// state at rest.
package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/malags/hyperplane-chess/internal/chat"
	"github.com/malags/hyperplane-chess/internal/dispatch"
	"github.com/malags/hyperplane-chess/internal/game"
	"github.com/malags/hyperplane-chess/internal/lobby"
	"github.com/malags/hyperplane-chess/internal/protocol"
	"github.com/malags/hyperplane-chess/pkg/types"
)

// Sender is the narrow send-only capability handed down from the view that
// owns the connection.
type Sender interface {
	Send(types.Envelope)
}

type Msg interface{ isClientMsg() }

// frame carries one raw inbound websocket frame.
type frame struct{ raw []byte }

// TileClick resolves against the selection machine: first click selects and
// requests available moves, second click submits a move.
type TileClick struct{ Pos types.Point3D }

// BackgroundClick cancels any pending selection.
type BackgroundClick struct{}

// SetName changes the local display name. Readiness is only meaningful for
// a fixed identity, so an explicit ready:false goes out first.
type SetName struct{ Name string }

// JoinGroup moves the local player to a team, same readiness rule as
// SetName.
type JoinGroup struct{ GroupID int }

// ToggleReady flips the local readiness bit and announces it.
type ToggleReady struct{}

// SendChat sends one chat line. The local log is not touched; the server
// echoes the message back to everyone including the sender.
type SendChat struct{ Content string }

// Refresh re-requests the full game status.
type Refresh struct{}

// GetView asks the loop for a consistent read-only snapshot.
type GetView struct{ Reply chan View }

type shutdown struct{}

// bind attaches the send capability once the connection exists; inbound
// frames can already be queued before it.
type bind struct{ sender Sender }

func (frame) isClientMsg()           {}
func (bind) isClientMsg()            {}
func (TileClick) isClientMsg()       {}
func (BackgroundClick) isClientMsg() {}
func (SetName) isClientMsg()         {}
func (JoinGroup) isClientMsg()       {}
func (ToggleReady) isClientMsg()     {}
func (SendChat) isClientMsg()        {}
func (Refresh) isClientMsg()         {}
func (GetView) isClientMsg()         {}
func (shutdown) isClientMsg()        {}

// View is a copy of everything a renderer needs.
type View struct {
	NrBoards       int
	BoardSize      int
	Pieces         []types.Piece
	Selected       *types.Point3D
	AvailableMoves []types.Point3D
	Local          types.Player
	Roster         []types.Player
	Ready          []bool
	Chat           []types.ChatMessage
}

type Config struct {
	ChatBreakSize int
	// OnGameStart fires on the lobby -> match transition. Runs on the
	// client loop goroutine, so keep it short.
	OnGameStart func()
}

type Client struct {
	inbox      chan Msg
	sender     Sender
	session    *game.Session
	lobby      *lobby.State
	chat       *chat.Log
	dispatcher *dispatch.Dispatcher
	log        *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New starts the event loop and binds the connection in one step.
func New(parent context.Context, sender Sender, log *zap.Logger, cfg Config) *Client {
	c := NewDetached(parent, log, cfg)
	c.Start(sender)
	return c
}

// NewDetached starts the event loop without a connection. HandleFrame may
// be used immediately, which lets the transport be dialed with this client
// as its handler before Start hands the send side back.
func NewDetached(parent context.Context, log *zap.Logger, cfg Config) *Client {
	ctx, cancel := context.WithCancel(parent)
	c := &Client{
		inbox:   make(chan Msg, 64),
		session: game.NewSession(),
		lobby:   lobby.NewState(),
		chat:    chat.NewLog(cfg.ChatBreakSize),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	c.dispatcher = dispatch.New(c.session, c.lobby, c.chat, log)
	c.dispatcher.OnGameStart = cfg.OnGameStart

	go c.loop()
	return c
}

// Start attaches the send capability and introduces the client to the
// server: request an identity, then the roster and the readiness vector.
// (The transport already requested the game status when it dialed.)
func (c *Client) Start(sender Sender) {
	c.Do(bind{sender: sender})
}

// HandleFrame is the transport's inbound delivery point.
func (c *Client) HandleFrame(raw []byte) {
	c.Do(frame{raw: raw})
}

// Do posts one message to the loop. After Close it is a no-op.
func (c *Client) Do(m Msg) {
	select {
	case c.inbox <- m:
	case <-c.ctx.Done():
	}
}

// Close stops the loop. The owning view closes the transport itself.
func (c *Client) Close() {
	c.Do(shutdown{})
}

// Snapshot blocks for one consistent view of all state.
func (c *Client) Snapshot() View {
	reply := make(chan View, 1)
	c.Do(GetView{Reply: reply})
	select {
	case v := <-reply:
		return v
	case <-c.ctx.Done():
		return View{}
	}
}

func (c *Client) loop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case m := <-c.inbox:
			switch msg := m.(type) {
			case bind:
				c.sender = msg.sender
				c.send(protocol.NewPlayer())
				c.send(protocol.GetAllPlayers())
				c.send(protocol.GetAllReadyStatus())

			case frame:
				c.dispatcher.Dispatch(msg.raw)

			case TileClick:
				c.handleClick(c.session.ClickTile(msg.Pos))

			case BackgroundClick:
				c.handleClick(c.session.ClickBackground())

			case SetName:
				p := c.lobby.Local()
				p.Name = msg.Name
				c.announceIdentity(p)

			case JoinGroup:
				p := c.lobby.Local()
				p.GroupID = msg.GroupID
				c.announceIdentity(p)

			case ToggleReady:
				local := c.lobby.Local()
				ready := !c.lobby.IsReady(local.PlayerID)
				c.send(protocol.SetReady(local, ready))

			case SendChat:
				msg2 := chat.NewMessage(c.lobby.Local().Name, msg.Content)
				c.send(protocol.Chat(msg2))

			case Refresh:
				c.send(protocol.GetGameStatus())

			case GetView:
				msg.Reply <- c.view()

			case shutdown:
				c.cancel()
				return
			}
		}
	}
}

// send forwards one outbound frame; without a bound connection it is
// dropped, same fire-and-forget contract as the transport itself.
func (c *Client) send(env types.Envelope) {
	if c.sender == nil {
		c.log.Warn("no connection bound, frame dropped", zap.String("command", env.Command))
		return
	}
	c.sender.Send(env)
}

func (c *Client) handleClick(click game.Click) {
	switch click.Kind {
	case game.ClickSelect:
		c.send(protocol.GetAvailableMoves(click.From, c.lobby.Local()))
	case game.ClickMove:
		// Selection is already cleared; the next gameStatus carries the
		// real outcome whether or not the server accepts this.
		c.send(protocol.SubmitMove(click.From, click.To, c.lobby.Local()))
	case game.ClickClear, game.ClickNone:
	}
}

// announceIdentity pushes a changed player record. A readiness ack is only
// meaningful for a fixed identity/team, so ready:false goes out first; the
// roster itself converges through the server's setPlayer echo, never by
// mutating it locally.
func (c *Client) announceIdentity(p types.Player) {
	c.send(protocol.SetReady(p, false))
	c.send(protocol.SetPlayer(p))
}

func (c *Client) view() View {
	nrBoards, boardSize := c.session.Dimensions()
	v := View{
		NrBoards:       nrBoards,
		BoardSize:      boardSize,
		Pieces:         c.session.Pieces(),
		AvailableMoves: c.session.AvailableMoves(),
		Local:          c.lobby.Local(),
		Roster:         c.lobby.Roster(),
		Ready:          c.lobby.Ready(),
		Chat:           c.chat.Messages(),
	}
	if sel, ok := c.session.Selected(); ok {
		v.Selected = &sel
	}
	return v
}
