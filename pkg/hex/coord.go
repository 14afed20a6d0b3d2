// Package hex provides axial hex-grid coordinate math.
// Pointy-top orientation; the third cube coordinate is s = -q - r.
package hex

import "math"

// Coord is an axial hex coordinate.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Directions holds the six axial neighbor offsets.
var Directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// Add returns c+o.
func (c Coord) Add(o Coord) Coord {
	return Coord{Q: c.Q + o.Q, R: c.R + o.R}
}

// Sub returns c-o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{Q: c.Q - o.Q, R: c.R - o.R}
}

// Neighbors returns the six coordinates adjacent to c, in Directions order.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Coord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

// Adjacent reports whether a and b are neighbors.
func Adjacent(a, b Coord) bool {
	return Distance(a, b) == 1
}

// Layout projects coordinates to and from pixel space.
type Layout struct {
	Size float64 // hex radius, corner to center
}

// ToPixel returns the center of c in pixel space.
func (l Layout) ToPixel(c Coord) (x, y float64) {
	x = l.Size * math.Sqrt(3) * (float64(c.Q) + float64(c.R)/2.0)
	y = l.Size * 1.5 * float64(c.R)
	return
}

// FromPixel returns the hex containing the pixel point (x, y).
func (l Layout) FromPixel(x, y float64) Coord {
	q := (math.Sqrt(3)/3*x - y/3) / l.Size
	r := (2.0 / 3 * y) / l.Size
	return Round(q, r)
}

// Round rounds fractional axial coordinates to the nearest hex.
// Whichever cube axis drifted furthest is rebuilt from the other two so that
// q+r+s stays zero.
func Round(q, r float64) Coord {
	s := -q - r
	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)

	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	}
	return Coord{Q: int(rq), R: int(rr)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
