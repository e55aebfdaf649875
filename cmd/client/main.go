// A headless terminal client: dials a game session, joins the lobby and
// drives the protocol from stdin. One command per line:
//
//	name <displayName>   set the chat/display name
//	join <groupId>       join a team
//	ready                toggle readiness
//	say <text>           send a chat line
//	click <x> <y> <z>    click a tile (first click selects, second moves)
//	bg                   click the background (cancel selection)
//	status               re-request the full board
//	view                 print lobby, chat and board
//	quit
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/malags/hyperplane-chess/internal/client"
	"github.com/malags/hyperplane-chess/internal/config"
	"github.com/malags/hyperplane-chess/internal/geometry"
	"github.com/malags/hyperplane-chess/internal/transport"
	"github.com/malags/hyperplane-chess/pkg/types"
)

func main() {
	_ = godotenv.Load() // optional local overrides

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("client", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	c := client.NewDetached(ctx, log, client.Config{
		ChatBreakSize: cfg.ChatBreakSize,
		OnGameStart:   func() { fmt.Println("*** all players ready, game on ***") },
	})
	defer c.Close()

	conn, err := transport.Dial(ctx, cfg.SocketURL(), c.HandleFrame, log,
		transport.Options{PingPeriod: cfg.PingPeriod})
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.SocketURL(), err)
	}
	defer conn.Close()
	c.Start(conn)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		conn.Close()
		return nil
	})
	g.Go(func() error {
		defer conn.Close()
		repl(ctx, c, cfg)
		return nil
	})
	return g.Wait()
}

func repl(ctx context.Context, c *client.Client, cfg config.Config) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("connected to %s\n", cfg.SocketURL())
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "name":
			if len(fields) < 2 {
				fmt.Println("usage: name <displayName>")
				continue
			}
			c.Do(client.SetName{Name: strings.Join(fields[1:], " ")})
		case "join":
			group, err := strconv.Atoi(fields[len(fields)-1])
			if err != nil {
				fmt.Println("usage: join <groupId>")
				continue
			}
			c.Do(client.JoinGroup{GroupID: group})
		case "ready":
			c.Do(client.ToggleReady{})
		case "say":
			c.Do(client.SendChat{Content: strings.Join(fields[1:], " ")})
		case "click":
			p, err := parsePoint(fields[1:])
			if err != nil {
				fmt.Println("usage: click <x> <y> <z>")
				continue
			}
			c.Do(client.TileClick{Pos: p})
		case "bg":
			c.Do(client.BackgroundClick{})
		case "status":
			c.Do(client.Refresh{})
		case "view":
			printView(c.Snapshot(), cfg)
		case "quit":
			return
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
}

func parsePoint(fields []string) (types.Point3D, error) {
	if len(fields) != 3 {
		return types.Point3D{}, fmt.Errorf("want 3 coordinates")
	}
	var coords [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return types.Point3D{}, err
		}
		coords[i] = v
	}
	return types.Point3D{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func printView(v client.View, cfg config.Config) {
	fmt.Printf("you: #%d %q group %d\n", v.Local.PlayerID, v.Local.Name, v.Local.GroupID)
	for _, p := range v.Roster {
		ready := ""
		if p.PlayerID < len(v.Ready) && v.Ready[p.PlayerID] {
			ready = " [ready]"
		}
		fmt.Printf("  #%d %q group %d%s\n", p.PlayerID, p.Name, p.GroupID, ready)
	}

	fmt.Printf("board: %d planes of %dx%d\n", v.NrBoards, v.BoardSize, v.BoardSize)
	for _, piece := range v.Pieces {
		x, y := geometry.PointToScreen(piece.Position, v.NrBoards, v.BoardSize, cfg.TileSize, cfg.Viewport)
		fmt.Printf("  piece of #%d at (%d,%d,%d) -> screen (%.0f,%.0f)\n",
			piece.Player.PlayerID, piece.Position.X, piece.Position.Y, piece.Position.Z, x, y)
	}
	if v.Selected != nil {
		fmt.Printf("selected (%d,%d,%d), %d destinations\n",
			v.Selected.X, v.Selected.Y, v.Selected.Z, len(v.AvailableMoves))
	}

	for _, msg := range v.Chat {
		fmt.Printf("  %s: %s\n", msg.Sender, msg.Content)
	}
}
