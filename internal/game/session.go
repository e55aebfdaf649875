// Package game holds the client's copy of the match state and the two-state
// tile selection machine.
package game

import "github.com/malags/hyperplane-chess/pkg/types"

// ClickKind is the outcome of a click resolved against the selection
// machine. The caller turns Select/Move into outbound commands.
type ClickKind string

const (
	// ClickSelect: idle -> selected; request available moves for From.
	ClickSelect ClickKind = "select"
	// ClickMove: selected -> idle; submit a move From -> To.
	ClickMove ClickKind = "move"
	// ClickClear: selected -> idle with nothing to send.
	ClickClear ClickKind = "clear"
	// ClickNone: background click while idle.
	ClickNone ClickKind = "none"
)

type Click struct {
	Kind ClickKind
	From types.Point3D
	To   types.Point3D
}

// Session is the authoritative-as-known local game state. The server is the
// single source of truth: pieces are only ever replaced wholesale, never
// patched, and the client never predicts the board after a move.
type Session struct {
	nrBoards  int
	boardSize int
	pieces    []types.Piece

	selected  *types.Point3D
	available []types.Point3D
}

func NewSession() *Session {
	return &Session{}
}

// ApplyStatus replaces the whole board state and drops any selection. The
// selected piece may have moved or been captured, so selection never
// survives a refresh.
func (s *Session) ApplyStatus(status types.GameStatus) {
	s.nrBoards = status.NrPlanes
	s.boardSize = status.BoardSize
	s.pieces = append([]types.Piece(nil), status.Pieces...)
	s.clearSelection()
}

// SetAvailableMoves records the legal destinations for the current
// selection. With no selection active the reply is stale and dropped,
// keeping the invariant that available moves exist only under a selection.
func (s *Session) SetAvailableMoves(moves []types.Point3D) bool {
	if s.selected == nil {
		return false
	}
	s.available = append([]types.Point3D(nil), moves...)
	return true
}

// ClickTile resolves a click on tile p. Idle: p becomes the selection and
// the caller should request its available moves. Selected: the caller
// should submit selected -> p; the selection is cleared immediately without
// waiting for the server (the next gameStatus is authoritative either way).
func (s *Session) ClickTile(p types.Point3D) Click {
	if s.selected != nil {
		from := *s.selected
		s.clearSelection()
		return Click{Kind: ClickMove, From: from, To: p}
	}
	sel := p
	s.selected = &sel
	return Click{Kind: ClickSelect, From: p}
}

// ClickBackground cancels a pending selection without sending anything.
func (s *Session) ClickBackground() Click {
	if s.selected == nil {
		return Click{Kind: ClickNone}
	}
	s.clearSelection()
	return Click{Kind: ClickClear}
}

func (s *Session) clearSelection() {
	s.selected = nil
	s.available = nil
}

func (s *Session) Dimensions() (nrBoards, boardSize int) {
	return s.nrBoards, s.boardSize
}

func (s *Session) Pieces() []types.Piece {
	return append([]types.Piece(nil), s.pieces...)
}

// Selected returns the selection origin, or false while idle.
func (s *Session) Selected() (types.Point3D, bool) {
	if s.selected == nil {
		return types.Point3D{}, false
	}
	return *s.selected, true
}

func (s *Session) AvailableMoves() []types.Point3D {
	return append([]types.Point3D(nil), s.available...)
}

// PieceAt returns the piece on p, if any.
func (s *Session) PieceAt(p types.Point3D) (types.Piece, bool) {
	for _, piece := range s.pieces {
		if piece.Position == p {
			return piece, true
		}
	}
	return types.Piece{}, false
}
