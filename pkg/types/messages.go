package types

import "encoding/json"

// Every frame in both directions is one Envelope. Outbound frames omit
// Status; inbound frames carry Status and are dropped unless it is StatusOK.
type Envelope struct {
	Command string          `json:"command"`
	Status  string          `json:"status,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

const StatusOK = "ok"

// Client -> Server
const (
	CmdGetGameStatus     = "getGameStatus"
	CmdGetAvailableMoves = "getAvailableMoves"
	CmdSubmitMove        = "submitMove"
	CmdMessage           = "message"
	CmdReady             = "ready"
	CmdNewPlayer         = "newPlayer"
	CmdSetPlayer         = "setPlayer"
	CmdGetAllPlayers     = "getAllPlayers"
	CmdGetAllReadyStatus = "getAllReadyStatus"
	CmdPing              = "ping"
)

// Server -> Client. The overlap with the list above is intentional: the
// server answers most requests under the same command name.
const (
	CmdAvailableMoves = "availableMoves"
	CmdGameStatus     = "gameStatus"
	CmdGameStart      = "gameStart"
)

func (e Envelope) OK() bool { return e.Status == StatusOK }

// DecodeData unmarshals the payload into the given value.
func (e Envelope) DecodeData(into any) error {
	return json.Unmarshal(e.Data, into)
}
