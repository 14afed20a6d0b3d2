package game

import (
	"sort"

	"hexclave/pkg/hex"
)

// OwnedHexes returns the coordinates of every land cell p owns, in cell order.
func (g *GameState) OwnedHexes(p PlayerID) []hex.Coord {
	coords := make([]hex.Coord, 0)
	for _, c := range g.Cells {
		if c.Land && c.Owner == p {
			coords = append(coords, c.Coord())
		}
	}
	return coords
}

// Regions returns p's connected groups of land, largest first.
func (g *GameState) Regions(p PlayerID) [][]hex.Coord {
	comps := hex.ConnectedComponents(g.OwnedHexes(p), nil)
	sort.SliceStable(comps, func(i, j int) bool {
		return len(comps[i]) > len(comps[j])
	})
	return comps
}

// ExclaveCount returns how many of p's land groups are cut off from their
// largest group. A single group, whatever its shape, scores nothing.
func (g *GameState) ExclaveCount(p PlayerID) int {
	regions := g.Regions(p)
	if len(regions) <= 1 {
		return 0
	}
	return len(regions) - 1
}
