package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/malags/hyperplane-chess/pkg/types"
)

// Builders for every outbound frame. The protocol is fire-and-forget: there
// is no correlation id, so none of these carry one.

func GetGameStatus() types.Envelope {
	return types.Envelope{Command: types.CmdGetGameStatus}
}

func Ping() types.Envelope {
	return types.Envelope{Command: types.CmdPing}
}

func NewPlayer() types.Envelope {
	return types.Envelope{Command: types.CmdNewPlayer}
}

func GetAllPlayers() types.Envelope {
	return types.Envelope{Command: types.CmdGetAllPlayers}
}

func GetAllReadyStatus() types.Envelope {
	return types.Envelope{Command: types.CmdGetAllReadyStatus}
}

func GetAvailableMoves(from types.Point3D, player types.Player) types.Envelope {
	return envelope(types.CmdGetAvailableMoves, types.AvailableMovesRequest{From: from, Player: player})
}

func SubmitMove(from, to types.Point3D, player types.Player) types.Envelope {
	return envelope(types.CmdSubmitMove, types.MoveRequest{From: from, To: to, Player: player})
}

func Chat(msg types.ChatMessage) types.Envelope {
	return envelope(types.CmdMessage, msg)
}

func SetReady(player types.Player, ready bool) types.Envelope {
	return envelope(types.CmdReady, types.ReadyRequest{Player: player, Ready: ready})
}

func SetPlayer(player types.Player) types.Envelope {
	return envelope(types.CmdSetPlayer, player)
}

func envelope(command string, data any) types.Envelope {
	raw, err := json.Marshal(data)
	if err != nil {
		// All payload types above are plain structs; this cannot fail.
		panic(fmt.Sprintf("protocol: marshal %s payload: %v", command, err))
	}
	return types.Envelope{Command: command, Data: raw}
}

// DecodeEnvelope parses one inbound frame.
func DecodeEnvelope(raw []byte) (types.Envelope, error) {
	var e types.Envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return types.Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}
