// Package httpapi is the thin HTTP boundary around the websocket protocol:
// creating a match is a plain POST, everything after that happens on the
// socket.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrBadBoardCount  = errors.New("nrBoards must be between 1 and 8")
	ErrBadBoardSize   = errors.New("boardSize must be between 5 and 12")
	ErrBadGroupCount  = errors.New("nrGroups must be at least 2")
	ErrBadPlayerCount = errors.New("nrPlayers must cover every group")
)

// NewGameRequest mirrors the game-creation form.
type NewGameRequest struct {
	NrBoards       int    `json:"nrBoards"`
	BoardSize      int    `json:"boardSize"`
	NrPlayers      int    `json:"nrPlayers"`
	NrGroups       int    `json:"nrGroups"`
	PiecesPosition string `json:"piecesPosition"`
	MovementFile   string `json:"movementFile"`
}

func (r NewGameRequest) Validate() error {
	if r.NrBoards < 1 || r.NrBoards > 8 {
		return ErrBadBoardCount
	}
	if r.BoardSize < 5 || r.BoardSize > 12 {
		return ErrBadBoardSize
	}
	if r.NrGroups < 2 {
		return ErrBadGroupCount
	}
	if r.NrPlayers < r.NrGroups {
		return ErrBadPlayerCount
	}
	return nil
}

type newGameResponse struct {
	ID string `json:"id"`
}

// CreateGame asks the server for a new match and returns the session id to
// join over the socket. A non-2xx reply surfaces the response body as the
// error text, which is all the UI shows.
func CreateGame(ctx context.Context, httpClient *http.Client, baseURL string, req NewGameRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode newGame request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/newGame", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("newGame: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("newGame: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("newGame failed: %s", string(raw))
	}

	var decoded newGameResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("newGame: decode response: %w", err)
	}
	return decoded.ID, nil
}
