package server

import "github.com/malags/hyperplane-chess/pkg/types"

// legalDestinations is the dev server's stand-in for a real movement
// engine: the 8 in-board neighbours of from plus the same square on the
// adjacent boards. Deterministic order so tests can compare directly.
func legalDestinations(from types.Point3D, s Settings) []types.Point3D {
	var out []types.Point3D
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := from.X+dx, from.Y+dy
			if x < 0 || x >= s.BoardSize || y < 0 || y >= s.BoardSize {
				continue
			}
			out = append(out, types.Point3D{X: x, Y: y, Z: from.Z})
		}
	}
	for _, dz := range []int{-1, 1} {
		z := from.Z + dz
		if z >= 0 && z < s.NrBoards {
			out = append(out, types.Point3D{X: from.X, Y: from.Y, Z: z})
		}
	}
	return out
}
