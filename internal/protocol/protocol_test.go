package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malags/hyperplane-chess/pkg/types"
)

func TestOutboundFramesOmitStatus(t *testing.T) {
	frames := []types.Envelope{
		GetGameStatus(),
		Ping(),
		NewPlayer(),
		GetAllPlayers(),
		GetAllReadyStatus(),
		SubmitMove(types.Point3D{X: 1, Y: 1}, types.Point3D{X: 1, Y: 2}, types.Player{PlayerID: 3}),
	}
	for _, f := range frames {
		raw, err := json.Marshal(f)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		_, hasStatus := decoded["status"]
		require.False(t, hasStatus, "outbound %s must omit status", f.Command)
	}
}

func TestSubmitMovePayload(t *testing.T) {
	player := types.Player{PlayerID: 7, Name: "ada", GroupID: 1}
	e := SubmitMove(types.Point3D{X: 1, Y: 1, Z: 0}, types.Point3D{X: 1, Y: 2, Z: 0}, player)
	require.Equal(t, types.CmdSubmitMove, e.Command)

	var req types.MoveRequest
	require.NoError(t, e.DecodeData(&req))
	require.Equal(t, types.Point3D{X: 1, Y: 1, Z: 0}, req.From)
	require.Equal(t, types.Point3D{X: 1, Y: 2, Z: 0}, req.To)
	require.Equal(t, player, req.Player)
}

func TestDecodeEnvelope(t *testing.T) {
	e, err := DecodeEnvelope([]byte(`{"command":"gameStatus","status":"ok","data":{"pieces":[],"nrPlanes":2,"boardSize":5}}`))
	require.NoError(t, err)
	require.True(t, e.OK())
	require.Equal(t, types.CmdGameStatus, e.Command)

	var status types.GameStatus
	require.NoError(t, e.DecodeData(&status))
	require.Equal(t, 2, status.NrPlanes)
	require.Equal(t, 5, status.BoardSize)
	require.Empty(t, status.Pieces)
}

func TestDecodeEnvelopeMalformed(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{"command":`))
	require.Error(t, err)
}

func TestNegativeAckNotOK(t *testing.T) {
	e, err := DecodeEnvelope([]byte(`{"command":"submitMove","status":"error"}`))
	require.NoError(t, err)
	require.False(t, e.OK())
}
