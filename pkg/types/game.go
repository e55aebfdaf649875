package types

// Point3D is a logical board position; Z selects the board, X and Y are
// in-board coordinates. Value equality only, no identity.
type Point3D struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Player as known to the server. PlayerID is server-assigned and stable for
// the session; GroupID partitions players into teams.
type Player struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	GroupID  int    `json:"groupId"`
}

type Piece struct {
	Position Point3D `json:"position"`
	Player   Player  `json:"player"`
}

// GameStatus is the full board broadcast. The wire calls the board count
// nrPlanes; locally we say nrBoards.
type GameStatus struct {
	Pieces    []Piece `json:"pieces"`
	NrPlanes  int     `json:"nrPlanes"`
	BoardSize int     `json:"boardSize"`
}

type ChatMessage struct {
	ID      string `json:"id"`
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type AvailableMovesRequest struct {
	From   Point3D `json:"from"`
	Player Player  `json:"player"`
}

type MoveRequest struct {
	From   Point3D `json:"from"`
	To     Point3D `json:"to"`
	Player Player  `json:"player"`
}

type ReadyRequest struct {
	Player Player `json:"player"`
	Ready  bool   `json:"ready"`
}
