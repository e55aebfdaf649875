// Package dispatch routes inbound frames to the game, chat and lobby state
// containers. It is the only place inbound traffic mutates state.
package dispatch

import (
	"go.uber.org/zap"

	"github.com/malags/hyperplane-chess/internal/chat"
	"github.com/malags/hyperplane-chess/internal/game"
	"github.com/malags/hyperplane-chess/internal/lobby"
	"github.com/malags/hyperplane-chess/internal/protocol"
	"github.com/malags/hyperplane-chess/pkg/types"
)

type Dispatcher struct {
	session *game.Session
	lobby   *lobby.State
	chat    *chat.Log
	log     *zap.Logger

	// OnGameStart fires on the terminal lobby transition; the owning view
	// navigates from the lobby into the match on it.
	OnGameStart func()
}

func New(session *game.Session, lob *lobby.State, chatLog *chat.Log, log *zap.Logger) *Dispatcher {
	return &Dispatcher{session: session, lobby: lob, chat: chatLog, log: log}
}

// Dispatch handles one raw inbound frame. Malformed frames and frames
// without an ok status are dropped here; the protocol has no request
// correlation, so a failure cannot be attributed to any outstanding call.
func (d *Dispatcher) Dispatch(raw []byte) {
	env, err := protocol.DecodeEnvelope(raw)
	if err != nil {
		d.log.Warn("dropping malformed frame", zap.Error(err))
		return
	}
	if !env.OK() {
		d.log.Debug("dropping frame without ok status",
			zap.String("command", env.Command), zap.String("status", env.Status))
		return
	}

	// Three independent classifiers over disjoint command sets. Unknown
	// commands fall through all of them: servers may speak commands this
	// client does not know yet.
	d.dispatchGame(env)
	d.dispatchChat(env)
	d.dispatchConfig(env)
}

func (d *Dispatcher) dispatchGame(env types.Envelope) {
	switch env.Command {
	case types.CmdAvailableMoves:
		var moves []types.Point3D
		if err := env.DecodeData(&moves); err != nil {
			d.log.Warn("bad availableMoves payload", zap.Error(err))
			return
		}
		if !d.session.SetAvailableMoves(moves) {
			d.log.Debug("availableMoves with no selection active, dropped")
		}

	case types.CmdGameStatus:
		var status types.GameStatus
		if err := env.DecodeData(&status); err != nil {
			d.log.Warn("bad gameStatus payload", zap.Error(err))
			return
		}
		d.session.ApplyStatus(status)

	case types.CmdSubmitMove:
		// Informational ack only. The board is never mutated from it;
		// the gameStatus that follows carries the real effect.
		d.log.Debug("submitMove acknowledged")
	}
}

func (d *Dispatcher) dispatchChat(env types.Envelope) {
	switch env.Command {
	case types.CmdMessage:
		var msg types.ChatMessage
		if err := env.DecodeData(&msg); err != nil {
			d.log.Warn("bad chat payload", zap.Error(err))
			return
		}
		d.chat.Append(msg)
	}
}

func (d *Dispatcher) dispatchConfig(env types.Envelope) {
	switch env.Command {
	case types.CmdNewPlayer:
		var p types.Player
		if err := env.DecodeData(&p); err != nil {
			d.log.Warn("bad newPlayer payload", zap.Error(err))
			return
		}
		d.lobby.SetLocal(p)

	case types.CmdSetPlayer:
		var p types.Player
		if err := env.DecodeData(&p); err != nil {
			d.log.Warn("bad setPlayer payload", zap.Error(err))
			return
		}
		d.lobby.UpsertPlayer(p)

	case types.CmdGetAllReadyStatus:
		var ready []bool
		if err := env.DecodeData(&ready); err != nil {
			d.log.Warn("bad ready status payload", zap.Error(err))
			return
		}
		d.lobby.SetReady(ready)

	case types.CmdGameStart:
		d.log.Info("game start")
		if d.OnGameStart != nil {
			d.OnGameStart()
		}
	}
}
