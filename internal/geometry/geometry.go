// Package geometry maps logical board positions to screen pixels and back.
// Boards are laid out on a circle around the viewport center. Everything
// here is a pure function of its inputs; hit-testing and highlighting rely
// on re-deriving the exact same pixels at any time.
package geometry

import (
	"math"

	"github.com/malags/hyperplane-chess/pkg/types"
)

// Fraction of the half-viewport used as the layout circle radius.
const radiusFactor = 1.3 / 2

// RotateVector rotates (x, y) by deg degrees, clockwise positive. Results
// are rounded to 4 decimals so equal angles always give equal pixels.
func RotateVector(x, y, deg float64) (float64, float64) {
	rad := -deg * (math.Pi / 180)
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return round4(x*cos - y*sin), round4(x*sin + y*cos)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// BoardOrigin returns the top-left drawing corner of board boardIndex. A
// single board sits centered in the viewport; with more boards, board i's
// center is the top-of-circle point rotated by 360*i/nrBoards degrees.
func BoardOrigin(boardIndex, nrBoards, boardSize int, tileSize, viewport float64) (float64, float64) {
	center := viewport / 2
	radius := 0.0
	if nrBoards > 1 {
		radius = radiusFactor * center
	}
	vx, vy := RotateVector(0, -radius, float64(boardIndex)*360/float64(nrBoards))
	half := tileSize * float64(boardSize) / 2
	return center + vx - half, center + vy - half
}

// PointToScreen returns the top-left pixel of the tile at p.
func PointToScreen(p types.Point3D, nrBoards, boardSize int, tileSize, viewport float64) (float64, float64) {
	ox, oy := BoardOrigin(p.Z, nrBoards, boardSize, tileSize, viewport)
	return ox + tileSize*float64(p.X), oy + tileSize*float64(p.Y)
}

// ScreenToPoint is the inverse hit-test: which tile contains pixel (x, y).
// Returns false for the background. Boards are scanned last-drawn-first so
// that where boards overlap the one drawn on top wins.
func ScreenToPoint(x, y float64, nrBoards, boardSize int, tileSize, viewport float64) (types.Point3D, bool) {
	for z := nrBoards - 1; z >= 0; z-- {
		ox, oy := BoardOrigin(z, nrBoards, boardSize, tileSize, viewport)
		tx := int(math.Floor((x - ox) / tileSize))
		ty := int(math.Floor((y - oy) / tileSize))
		if tx >= 0 && tx < boardSize && ty >= 0 && ty < boardSize {
			return types.Point3D{X: tx, Y: ty, Z: z}, true
		}
	}
	return types.Point3D{}, false
}
