package maps

import (
	"hexclave/internal/game"
	"hexclave/pkg/hex"
)

// Stats summarizes how a board was divided.
type Stats struct {
	LandHexes      int   `json:"landHexes"`
	TerritorySizes []int `json:"territorySizes"` // indexed by player
	Units          []int `json:"units"`          // indexed by player
	Fragments      []int `json:"fragments"`      // connected pieces per player
	Imbalance      int   `json:"imbalance"`      // largest minus smallest territory
}

// Analyze computes split statistics for a board with n players.
func Analyze(cells []game.Cell, n int) Stats {
	st := Stats{
		TerritorySizes: make([]int, n),
		Units:          make([]int, n),
		Fragments:      make([]int, n),
	}

	owned := make([][]hex.Coord, n)
	for _, c := range cells {
		if !c.Land {
			continue
		}
		st.LandHexes++
		p := int(c.Owner)
		if p < 0 || p >= n {
			continue
		}
		st.TerritorySizes[p]++
		st.Units[p] += c.Units
		owned[p] = append(owned[p], c.Coord())
	}

	lo, hi := -1, 0
	for p := 0; p < n; p++ {
		st.Fragments[p] = len(hex.ConnectedComponents(owned[p], nil))
		size := st.TerritorySizes[p]
		if lo < 0 || size < lo {
			lo = size
		}
		if size > hi {
			hi = size
		}
	}
	if lo >= 0 {
		st.Imbalance = hi - lo
	}
	return st
}
