package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/malags/hyperplane-chess/internal/client"
	"github.com/malags/hyperplane-chess/internal/httpapi"
	"github.com/malags/hyperplane-chess/internal/transport"
	"github.com/malags/hyperplane-chess/pkg/types"
)

// Full round trip over a real websocket: create a match over HTTP, join it
// with two protocol clients, pick names and teams, ready up, and move a
// piece.

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(ctx, zap.NewNop())
	srv := httptest.NewServer(SetupRoutes(hub, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func connectClient(t *testing.T, srv *httptest.Server, gameID string, cfg client.Config) *client.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := client.NewDetached(context.Background(), zap.NewNop(), cfg)
	t.Cleanup(c.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/socket?id=" + gameID
	conn, err := transport.Dial(ctx, url, c.HandleFrame, zap.NewNop(), transport.Options{})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(conn.Close)

	c.Start(conn)
	return c
}

// waitFor polls the client view until cond holds.
func waitFor(t *testing.T, c *client.Client, what string, cond func(client.View) bool) client.View {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		view := c.Snapshot()
		if cond(view) {
			return view
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %s; last view: %+v", what, view)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestEndToEndLobbyAndMatch(t *testing.T) {
	srv := startTestServer(t)

	gameID, err := httpapi.CreateGame(context.Background(), nil, srv.URL, httpapi.NewGameRequest{
		NrBoards:  2,
		BoardSize: 5,
		NrPlayers: 2,
		NrGroups:  2,
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	started1 := make(chan struct{}, 1)
	c1 := connectClient(t, srv, gameID, client.Config{OnGameStart: func() { started1 <- struct{}{} }})

	// Bootstrap: identity assigned, board dimensions known.
	view := waitFor(t, c1, "identity and board", func(v client.View) bool {
		return v.NrBoards == 2 && v.BoardSize == 5 && len(v.Roster) == 1
	})
	p1ID := view.Local.PlayerID

	// Lobby: set a name; the change comes back through the server echo.
	c1.Do(client.SetName{Name: "ada"})
	waitFor(t, c1, "name echo", func(v client.View) bool { return v.Local.Name == "ada" })

	c2 := connectClient(t, srv, gameID, client.Config{})
	waitFor(t, c2, "second identity", func(v client.View) bool { return len(v.Roster) == 2 })

	// Team selection forces ready:false first, then converges via echo.
	c2.Do(client.JoinGroup{GroupID: 1})
	waitFor(t, c2, "group echo", func(v client.View) bool { return v.Local.GroupID == 1 })
	waitFor(t, c1, "roster convergence", func(v client.View) bool {
		for _, p := range v.Roster {
			if p.PlayerID != p1ID && p.GroupID == 1 {
				return true
			}
		}
		return false
	})

	// Chat fan-out.
	c1.Do(client.SendChat{Content: "glhf"})
	waitFor(t, c2, "chat", func(v client.View) bool {
		return len(v.Chat) == 1 && v.Chat[0].Content == "glhf" && v.Chat[0].Sender == "ada"
	})

	// Ready up both sides; the match starts and pieces appear.
	c1.Do(client.ToggleReady{})
	c2.Do(client.ToggleReady{})

	select {
	case <-started1:
	case <-time.After(3 * time.Second):
		t.Fatal("gameStart never reached client 1")
	}
	view = waitFor(t, c1, "seeded board", func(v client.View) bool { return len(v.Pieces) == 2 })

	// Find our piece and play the two-click flow against the live server.
	var from types.Point3D
	found := false
	for _, piece := range view.Pieces {
		if piece.Player.PlayerID == p1ID {
			from = piece.Position
			found = true
		}
	}
	if !found {
		t.Fatalf("no piece for player %d: %+v", p1ID, view.Pieces)
	}

	c1.Do(client.TileClick{Pos: from})
	view = waitFor(t, c1, "available moves", func(v client.View) bool { return len(v.AvailableMoves) > 0 })

	to := view.AvailableMoves[0]
	c1.Do(client.TileClick{Pos: to})

	waitFor(t, c1, "move applied", func(v client.View) bool {
		for _, piece := range v.Pieces {
			if piece.Player.PlayerID == p1ID {
				return piece.Position == to
			}
		}
		return false
	})
	// The mover's selection was cleared optimistically on submission.
	if view := c1.Snapshot(); view.Selected != nil {
		t.Fatal("selection must not survive move submission")
	}

	// The other client converges on the same board.
	waitFor(t, c2, "board convergence", func(v client.View) bool {
		for _, piece := range v.Pieces {
			if piece.Player.PlayerID == p1ID && piece.Position == to {
				return true
			}
		}
		return false
	})
}

func TestNewGameRejectsBadSettings(t *testing.T) {
	srv := startTestServer(t)

	_, err := httpapi.CreateGame(context.Background(), nil, srv.URL, httpapi.NewGameRequest{
		NrBoards:  0,
		BoardSize: 5,
		NrPlayers: 2,
		NrGroups:  2,
	})
	if err == nil {
		t.Fatal("nrBoards=0 must be rejected")
	}
}
