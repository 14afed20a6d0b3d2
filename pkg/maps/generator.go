package maps

import (
	"math/rand"
	"sort"

	"hexclave/internal/game"
	"hexclave/pkg/hex"
)

// Blob, tendril, and smoothing tuning.
const (
	minBlobs         = 2
	maxBlobs         = 4
	minBlobRadius    = 3
	maxBlobRadius    = 6
	blobNoise        = 0.4
	blobThreshold    = 0.3
	minTendrils      = 2
	maxTendrils      = 5
	minTendrilLength = 2
	maxTendrilLength = 5
	tendrilLandOdds  = 0.7
	maxSmoothing     = 2
	survivalRatio    = 0.2
	birthRatio       = 0.6
)

// Generator handles procedural landmass generation.
type Generator struct {
	options GeneratorOptions
	rng     *rand.Rand
	bounds  []hex.Coord // every in-bounds hex, row-major
	land    map[hex.Coord]bool
}

// NewGenerator creates a new landmass generator. The same options and an
// rng seeded the same way always yield the same landmass.
func NewGenerator(opts GeneratorOptions, rng *rand.Rand) *Generator {
	g := &Generator{
		options: opts,
		rng:     rng,
		land:    make(map[hex.Coord]bool),
	}
	g.options.Width = max(opts.Width, 1)
	g.options.Height = max(opts.Height, 1)

	g.bounds = make([]hex.Coord, 0, g.options.Width*g.options.Height)
	for r := 0; r < g.options.Height; r++ {
		for q := 0; q < g.options.Width; q++ {
			g.bounds = append(g.bounds, hex.Coord{Q: q, R: r})
		}
	}
	return g
}

// GenerateLandmass is shorthand for NewGenerator(opts, rng).Generate().
func GenerateLandmass(opts GeneratorOptions, rng *rand.Rand) []hex.Coord {
	return NewGenerator(opts, rng).Generate()
}

// Generate builds the landmass and returns its hexes sorted by row then
// column. The result is always a single connected region.
func (g *Generator) Generate() []hex.Coord {
	g.placeBlobs()
	g.growTendrils()

	passes := min(maxSmoothing, g.options.SmoothingPasses)
	for i := 0; i < passes; i++ {
		g.smooth()
	}

	return g.largestRegion()
}

// inBounds reports whether c lies inside the configured rectangle.
func (g *Generator) inBounds(c hex.Coord) bool {
	return c.Q >= 0 && c.Q < g.options.Width && c.R >= 0 && c.R < g.options.Height
}

// landList returns current land hexes in bounds order.
func (g *Generator) landList() []hex.Coord {
	out := make([]hex.Coord, 0, len(g.land))
	for _, c := range g.bounds {
		if g.land[c] {
			out = append(out, c)
		}
	}
	return out
}

// placeBlobs drops round clumps of land until the land ratio is met,
// placing at least minBlobs and at most maxBlobs.
func (g *Generator) placeBlobs() {
	target := int(g.options.LandRatio * float64(len(g.bounds)))

	for blobs := 0; blobs < maxBlobs; blobs++ {
		if blobs >= minBlobs && len(g.land) >= target {
			break
		}

		center := hex.Coord{
			Q: g.rng.Intn(g.options.Width),
			R: g.rng.Intn(g.options.Height),
		}
		radius := minBlobRadius + g.rng.Intn(maxBlobRadius-minBlobRadius+1)

		for _, c := range g.bounds {
			d := hex.Distance(center, c)
			if d > radius {
				continue
			}
			// Land thins out toward the rim.
			edgeFactor := 1 - float64(d)/float64(radius)
			noise := g.rng.Float64()
			if edgeFactor+noise*blobNoise > blobThreshold {
				g.land[c] = true
			}
		}
	}
}

// growTendrils sends short random walks out from existing land.
func (g *Generator) growTendrils() {
	count := minTendrils + g.rng.Intn(maxTendrils-minTendrils+1)

	for i := 0; i < count; i++ {
		starts := g.landList()
		if len(starts) == 0 {
			return
		}
		pos := starts[g.rng.Intn(len(starts))]
		length := minTendrilLength + g.rng.Intn(maxTendrilLength-minTendrilLength+1)

		for step := 0; step < length; step++ {
			pos = pos.Add(hex.Directions[g.rng.Intn(len(hex.Directions))])
			if !g.inBounds(pos) {
				break
			}
			if g.rng.Float64() < tendrilLandOdds {
				g.land[pos] = true
			}
		}
	}
}

// smooth runs one cellular-automaton pass: land with too few land neighbors
// erodes, water mostly surrounded by land fills in.
func (g *Generator) smooth() {
	next := make(map[hex.Coord]bool, len(g.land))

	for _, c := range g.bounds {
		count := 0
		for _, n := range c.Neighbors() {
			if g.land[n] {
				count++
			}
		}
		ratio := float64(count) / float64(len(hex.Directions))

		if g.land[c] {
			if ratio >= survivalRatio {
				next[c] = true
			}
		} else if ratio > birthRatio {
			next[c] = true
		}
	}

	g.land = next
}

// largestRegion keeps only the biggest connected clump of land.
func (g *Generator) largestRegion() []hex.Coord {
	comps := hex.ConnectedComponents(g.landList(), nil)
	idx := hex.Largest(comps)
	if idx < 0 {
		return []hex.Coord{}
	}

	region := comps[idx]
	sort.Slice(region, func(i, j int) bool {
		if region[i].R != region[j].R {
			return region[i].R < region[j].R
		}
		return region[i].Q < region[j].Q
	})

	g.land = make(map[hex.Coord]bool, len(region))
	for _, c := range region {
		g.land[c] = true
	}
	return region
}

// GenerateCells turns land hexes into board cells with sequential ids, all
// owned by the first player with one unit each.
func GenerateCells(land []hex.Coord) []game.Cell {
	cells := make([]game.Cell, len(land))
	for i, c := range land {
		cells[i] = game.Cell{
			ID:    i,
			Q:     c.Q,
			R:     c.R,
			Owner: game.Player1,
			Units: 1,
			Land:  true,
		}
	}
	return cells
}
