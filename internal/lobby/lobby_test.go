package lobby

import (
	"testing"

	"github.com/malags/hyperplane-chess/pkg/types"
)

func TestUpsertLastWriteWins(t *testing.T) {
	s := NewState()
	s.UpsertPlayer(types.Player{PlayerID: 7, Name: "ada", GroupID: 0})
	s.UpsertPlayer(types.Player{PlayerID: 7, Name: "lovelace", GroupID: 1})

	roster := s.Roster()
	if len(roster) != 1 {
		t.Fatalf("want exactly one entry for playerId 7, got %d", len(roster))
	}
	if roster[0].Name != "lovelace" || roster[0].GroupID != 1 {
		t.Fatalf("want latest record, got %+v", roster[0])
	}
}

func TestUpsertTracksLocalIdentity(t *testing.T) {
	s := NewState()
	s.SetLocal(types.Player{PlayerID: 3, Name: "", GroupID: 0})

	// Server echo of our own setPlayer must update the local identity too.
	s.UpsertPlayer(types.Player{PlayerID: 3, Name: "ada", GroupID: 1})
	if got := s.Local(); got.Name != "ada" || got.GroupID != 1 {
		t.Fatalf("local identity did not follow roster echo: %+v", got)
	}

	// Other players never touch the local identity.
	s.UpsertPlayer(types.Player{PlayerID: 4, Name: "bob", GroupID: 0})
	if got := s.Local(); got.PlayerID != 3 {
		t.Fatalf("local identity clobbered by another player: %+v", got)
	}
}

func TestRosterOrderedByPlayerID(t *testing.T) {
	s := NewState()
	s.UpsertPlayer(types.Player{PlayerID: 5})
	s.UpsertPlayer(types.Player{PlayerID: 1})
	s.UpsertPlayer(types.Player{PlayerID: 3})

	roster := s.Roster()
	for i, want := range []int{1, 3, 5} {
		if roster[i].PlayerID != want {
			t.Fatalf("roster order wrong: %+v", roster)
		}
	}
}

func TestPlayersInGroup(t *testing.T) {
	s := NewState()
	s.UpsertPlayer(types.Player{PlayerID: 1, GroupID: 0})
	s.UpsertPlayer(types.Player{PlayerID: 2, GroupID: 1})
	s.UpsertPlayer(types.Player{PlayerID: 3, GroupID: 1})

	if got := s.PlayersInGroup(1); len(got) != 2 {
		t.Fatalf("want 2 players in group 1, got %+v", got)
	}
	if got := s.PlayersInGroup(2); got != nil {
		t.Fatalf("want no players in group 2, got %+v", got)
	}
}

func TestReadyVectorWholesale(t *testing.T) {
	s := NewState()
	s.SetReady([]bool{true, false, true})

	if !s.IsReady(0) || s.IsReady(1) || !s.IsReady(2) {
		t.Fatalf("ready vector misapplied: %v", s.Ready())
	}

	s.SetReady([]bool{false})
	if s.IsReady(0) || s.IsReady(2) {
		t.Fatalf("replacement must discard the old vector: %v", s.Ready())
	}
}

func TestIsReadyOutOfRange(t *testing.T) {
	s := NewState()
	if s.IsReady(0) || s.IsReady(-1) || s.IsReady(99) {
		t.Fatal("unknown players must read as not ready")
	}
}
