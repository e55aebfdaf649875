// Package lobby holds the pre-game state: who we are, who else is in the
// session, which team everyone is on, and who flagged ready.
package lobby

import (
	"sort"

	"github.com/malags/hyperplane-chess/pkg/types"
)

// State is the local copy of the lobby. It is a plain container: only the
// owning client loop writes to it, readers get copies.
type State struct {
	local  types.Player
	roster []types.Player
	ready  []bool
}

func NewState() *State {
	return &State{}
}

// SetLocal replaces the local identity, typically from a newPlayer reply.
func (s *State) SetLocal(p types.Player) {
	s.local = p
	s.upsert(p)
}

func (s *State) Local() types.Player { return s.local }

// UpsertPlayer applies a roster broadcast: at most one record per playerId,
// last write wins. When the record is our own the local identity follows.
func (s *State) UpsertPlayer(p types.Player) {
	s.upsert(p)
	if p.PlayerID == s.local.PlayerID {
		s.local = p
	}
}

func (s *State) upsert(p types.Player) {
	for i := range s.roster {
		if s.roster[i].PlayerID == p.PlayerID {
			s.roster[i] = p
			return
		}
	}
	s.roster = append(s.roster, p)
}

// Roster returns all known players ordered by playerId.
func (s *State) Roster() []types.Player {
	out := make([]types.Player, len(s.roster))
	copy(out, s.roster)
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

// PlayersInGroup returns the roster entries assigned to groupID.
func (s *State) PlayersInGroup(groupID int) []types.Player {
	var out []types.Player
	for _, p := range s.Roster() {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out
}

// SetReady replaces the readiness vector wholesale. Readiness is indexed by
// playerId and only meaningful pre-game, so it is never patched in place.
func (s *State) SetReady(ready []bool) {
	s.ready = append([]bool(nil), ready...)
}

func (s *State) Ready() []bool {
	return append([]bool(nil), s.ready...)
}

// IsReady reports whether playerID flagged ready. Out-of-range ids read as
// not ready, which is the safe answer while the vector is still in flight.
func (s *State) IsReady(playerID int) bool {
	if playerID < 0 || playerID >= len(s.ready) {
		return false
	}
	return s.ready[playerID]
}
