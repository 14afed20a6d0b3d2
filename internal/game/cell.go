package game

import "hexclave/pkg/hex"

// MaxUnits is the stack cap for a single cell.
const MaxUnits = 8

// Cell is one hex of the board.
type Cell struct {
	ID    int      `json:"id"`
	Q     int      `json:"q"`
	R     int      `json:"r"`
	Owner PlayerID `json:"owner"`
	Units int      `json:"units"`
	Land  bool     `json:"land"`
}

// Coord returns the cell's axial position.
func (c Cell) Coord() hex.Coord {
	return hex.Coord{Q: c.Q, R: c.R}
}

// IsAdjacent reports whether two cells are hex neighbors.
func (c Cell) IsAdjacent(o Cell) bool {
	return hex.Adjacent(c.Coord(), o.Coord())
}

// ClampUnits restricts a unit count to [0, MaxUnits].
func ClampUnits(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxUnits {
		return MaxUnits
	}
	return n
}
