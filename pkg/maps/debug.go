package maps

import (
	"fmt"
	"sort"
	"strings"

	"hexclave/internal/game"
	"hexclave/pkg/hex"
)

// ownerGlyphs labels players on rendered boards.
var ownerGlyphs = []byte{'A', 'B', 'C'}

// Render returns a text picture of the board. Each land cell shows its
// owner letter and unit count; rows are staggered to follow the hex layout.
func Render(cells []game.Cell) string {
	labels := make(map[hex.Coord]string, len(cells))
	coords := make([]hex.Coord, 0, len(cells))
	for _, c := range cells {
		if !c.Land {
			continue
		}
		glyph := byte('?')
		if int(c.Owner) >= 0 && int(c.Owner) < len(ownerGlyphs) {
			glyph = ownerGlyphs[c.Owner]
		}
		labels[c.Coord()] = fmt.Sprintf("%c%d", glyph, c.Units)
		coords = append(coords, c.Coord())
	}
	return draw(coords, func(c hex.Coord) string { return labels[c] })
}

// RenderLandmass returns a text picture of bare land hexes.
func RenderLandmass(land []hex.Coord) string {
	return draw(land, func(hex.Coord) string { return "##" })
}

// draw lays out two-character labels on a staggered grid. A hex at (q, r)
// sits at column 2q+r in half-hex units.
func draw(coords []hex.Coord, label func(hex.Coord) string) string {
	if len(coords) == 0 {
		return ""
	}

	minR, maxR := coords[0].R, coords[0].R
	minCol := 2*coords[0].Q + coords[0].R
	for _, c := range coords {
		minR = min(minR, c.R)
		maxR = max(maxR, c.R)
		minCol = min(minCol, 2*c.Q+c.R)
	}

	rows := make(map[int][]hex.Coord)
	for _, c := range coords {
		rows[c.R] = append(rows[c.R], c)
	}
	for _, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].Q < row[j].Q })
	}

	var sb strings.Builder
	for r := minR; r <= maxR; r++ {
		line := make([]byte, 0, 64)
		for _, c := range rows[r] {
			col := (2*c.Q + c.R - minCol) * 2
			for len(line) < col {
				line = append(line, ' ')
			}
			if len(line) > col {
				continue
			}
			line = append(line, label(c)...)
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Debug returns a summary block followed by the rendered board.
func Debug(cells []game.Cell, players int) string {
	st := Analyze(cells, players)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Land hexes: %d\n", st.LandHexes))
	for p := 0; p < players; p++ {
		sb.WriteString(fmt.Sprintf("  %s (%c): %d hexes, %d units, %d piece(s)\n",
			game.PlayerID(p), ownerGlyphs[p], st.TerritorySizes[p], st.Units[p], st.Fragments[p]))
	}
	sb.WriteString(fmt.Sprintf("Imbalance: %d\n\n", st.Imbalance))
	sb.WriteString(Render(cells))
	return sb.String()
}
