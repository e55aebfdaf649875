package server

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/malags/hyperplane-chess/pkg/types"
)

// Settings fixes one match's shape at creation time.
type Settings struct {
	NrBoards  int
	BoardSize int
	NrPlayers int
	NrGroups  int
}

func DefaultSettings() Settings {
	return Settings{NrBoards: 2, BoardSize: 5, NrPlayers: 2, NrGroups: 2}
}

type Msg interface{ isSessionMsg() }

type Join struct {
	ClientID string
	Outbox   chan types.Envelope
}

type Leave struct{ ClientID string }

type FromClient struct {
	ClientID string
	Frame    types.Envelope
}

type Shutdown struct{}

// GetView reflects internal state without data races; used by tests.
type GetView struct {
	Reply chan SessionView
}

func (Join) isSessionMsg()       {}
func (Leave) isSessionMsg()      {}
func (FromClient) isSessionMsg() {}
func (Shutdown) isSessionMsg()   {}
func (GetView) isSessionMsg()    {}

type SessionView struct {
	NumClients int
	Roster     []types.Player
	Ready      []bool
	Started    bool
	Pieces     []types.Piece
}

// Session is one match (lobby plus board), an actor owning all its state.
type Session struct {
	inbox    chan Msg
	settings Settings
	clients  map[string]chan types.Envelope
	roster   []types.Player // indexed by playerId
	ready    []bool         // indexed by playerId
	pieces   []types.Piece
	started  bool
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewSession(parent context.Context, settings Settings, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		inbox:    make(chan Msg, 64),
		settings: settings,
		clients:  make(map[string]chan types.Envelope),
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go s.loop()
	return s
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.clients[msg.ClientID] = msg.Outbox

			case Leave:
				delete(s.clients, msg.ClientID)

			case FromClient:
				s.handleFrame(msg.ClientID, msg.Frame)

			case GetView:
				msg.Reply <- SessionView{
					NumClients: len(s.clients),
					Roster:     append([]types.Player(nil), s.roster...),
					Ready:      append([]bool(nil), s.ready...),
					Started:    s.started,
					Pieces:     append([]types.Piece(nil), s.pieces...),
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) handleFrame(clientID string, env types.Envelope) {
	switch env.Command {
	case types.CmdGetGameStatus:
		s.sendTo(clientID, ok(types.CmdGameStatus, s.status()))

	case types.CmdGetAvailableMoves:
		var req types.AvailableMovesRequest
		if !s.decode(env, &req) {
			return
		}
		s.sendTo(clientID, ok(types.CmdAvailableMoves, legalDestinations(req.From, s.settings)))

	case types.CmdSubmitMove:
		var req types.MoveRequest
		if !s.decode(env, &req) {
			return
		}
		if !s.applyMove(req) {
			// Negative ack; clients drop it by design.
			s.sendTo(clientID, types.Envelope{Command: types.CmdSubmitMove, Status: "error"})
			return
		}
		s.sendTo(clientID, ok(types.CmdSubmitMove, nil))
		s.broadcast(ok(types.CmdGameStatus, s.status()))

	case types.CmdMessage:
		var msg types.ChatMessage
		if !s.decode(env, &msg) {
			return
		}
		s.broadcast(ok(types.CmdMessage, msg))

	case types.CmdReady:
		var req types.ReadyRequest
		if !s.decode(env, &req) {
			return
		}
		id := req.Player.PlayerID
		if id < 0 || id >= len(s.ready) {
			return
		}
		s.ready[id] = req.Ready
		s.broadcast(ok(types.CmdGetAllReadyStatus, s.ready))
		s.maybeStart()

	case types.CmdNewPlayer:
		p := types.Player{PlayerID: len(s.roster)}
		s.roster = append(s.roster, p)
		s.ready = append(s.ready, false)
		s.sendTo(clientID, ok(types.CmdNewPlayer, p))
		s.broadcast(ok(types.CmdSetPlayer, p))

	case types.CmdSetPlayer:
		var p types.Player
		if !s.decode(env, &p) {
			return
		}
		if p.PlayerID < 0 || p.PlayerID >= len(s.roster) {
			return
		}
		s.roster[p.PlayerID] = p
		s.broadcast(ok(types.CmdSetPlayer, p))

	case types.CmdGetAllPlayers:
		// There is no bulk roster frame; the roster arrives as one
		// setPlayer per entry and clients upsert.
		for _, p := range s.roster {
			s.sendTo(clientID, ok(types.CmdSetPlayer, p))
		}

	case types.CmdGetAllReadyStatus:
		s.sendTo(clientID, ok(types.CmdGetAllReadyStatus, s.ready))

	case types.CmdPing:
		// Keep-alive, nothing to do.

	default:
		s.log.Debug("unknown command ignored", zap.String("command", env.Command))
	}
}

func (s *Session) status() types.GameStatus {
	return types.GameStatus{
		Pieces:    append([]types.Piece(nil), s.pieces...),
		NrPlanes:  s.settings.NrBoards,
		BoardSize: s.settings.BoardSize,
	}
}

func (s *Session) applyMove(req types.MoveRequest) bool {
	hasOrigin := false
	for _, piece := range s.pieces {
		if piece.Position == req.From && piece.Player.PlayerID == req.Player.PlayerID {
			hasOrigin = true
		}
		if piece.Position == req.To && piece.Player.PlayerID == req.Player.PlayerID {
			// Own piece on the target square.
			return false
		}
	}
	if !hasOrigin {
		return false
	}

	legal := false
	for _, dest := range legalDestinations(req.From, s.settings) {
		if dest == req.To {
			legal = true
			break
		}
	}
	if !legal {
		return false
	}

	// Capture whatever sits on the target square, then move the origin.
	kept := s.pieces[:0]
	for _, piece := range s.pieces {
		switch piece.Position {
		case req.To:
			// captured
		case req.From:
			piece.Position = req.To
			kept = append(kept, piece)
		default:
			kept = append(kept, piece)
		}
	}
	s.pieces = kept
	return true
}

func (s *Session) maybeStart() {
	if s.started || len(s.roster) < s.settings.NrPlayers {
		return
	}
	for _, r := range s.ready {
		if !r {
			return
		}
	}
	s.started = true
	s.placePieces()
	s.broadcast(ok(types.CmdGameStart, nil))
	s.broadcast(ok(types.CmdGameStatus, s.status()))
	s.log.Info("game started", zap.Int("players", len(s.roster)))
}

// placePieces seeds one piece per player; group 0 starts on the top row,
// the other groups on the bottom.
func (s *Session) placePieces() {
	s.pieces = nil
	for _, p := range s.roster {
		y := 0
		if p.GroupID > 0 {
			y = s.settings.BoardSize - 1
		}
		s.pieces = append(s.pieces, types.Piece{
			Position: types.Point3D{
				X: p.PlayerID % s.settings.BoardSize,
				Y: y,
				Z: p.PlayerID % s.settings.NrBoards,
			},
			Player: p,
		})
	}
}

func (s *Session) decode(env types.Envelope, into any) bool {
	if err := env.DecodeData(into); err != nil {
		s.log.Warn("bad payload", zap.String("command", env.Command), zap.Error(err))
		return false
	}
	return true
}

func (s *Session) sendTo(clientID string, env types.Envelope) {
	ch, found := s.clients[clientID]
	if !found {
		return
	}
	select {
	case ch <- env:
	default:
		// Slow or gone; drop the client.
		close(ch)
		delete(s.clients, clientID)
	}
}

func (s *Session) broadcast(env types.Envelope) {
	for id, ch := range s.clients {
		select {
		case ch <- env:
		default:
			close(ch)
			delete(s.clients, id)
		}
	}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.cancel()
}

func ok(command string, data any) types.Envelope {
	env := types.Envelope{Command: command, Status: types.StatusOK}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return env
		}
		env.Data = raw
	}
	return env
}
