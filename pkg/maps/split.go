package maps

import (
	"fmt"
	"math/rand"

	"hexclave/internal/game"
	"hexclave/pkg/hex"
)

// Splitting tuning.
const (
	seedAttempts      = 50
	balanceIterations = 10
	unitsPerHex       = 4
)

// splitter carries the working state of one territory split.
type splitter struct {
	rng     *rand.Rand
	players int
	hexes   []hex.Coord       // land hexes in cell order
	owner   map[hex.Coord]int // territory index per hex
	sizes   []int
}

// SplitTerritory divides the land among opts.PlayerCount players and deals
// out starting units. It returns new cells; the input is not modified.
//
// Seeds are picked far apart, every hex joins its nearest seed, oversized
// territories hand border hexes to undersized neighbors, and stray fragments
// are folded into whichever territory lies nearest. Each territory then gets
// four units per hex scattered at random, at most MaxUnits and at least one
// per hex.
func SplitTerritory(cells []game.Cell, opts SplitOptions, rng *rand.Rand) ([]game.Cell, error) {
	if opts.PlayerCount < 2 || opts.PlayerCount > game.MaxPlayers {
		return nil, game.ErrInvalidPlayers
	}

	s := &splitter{
		rng:     rng,
		players: opts.PlayerCount,
		owner:   make(map[hex.Coord]int),
		sizes:   make([]int, opts.PlayerCount),
	}
	for _, c := range cells {
		if c.Land {
			s.hexes = append(s.hexes, c.Coord())
		}
	}

	need := opts.MinTerritorySize * opts.PlayerCount
	if len(s.hexes) < need {
		return nil, fmt.Errorf("%w: have %d land hexes, need %d", ErrInsufficientLand, len(s.hexes), need)
	}

	seeds := s.pickSeeds()
	s.assignNearest(seeds)
	s.balance()
	s.enforceContiguity()

	return s.deal(cells), nil
}

// pickSeeds returns one starting hex per player, as far apart as the land
// allows. Every attempt searches all land hexes; shuffling their order
// between attempts varies which of several equally distant sets wins.
func (s *splitter) pickSeeds() []hex.Coord {
	var best []hex.Coord
	bestScore := -1

	order := make([]hex.Coord, len(s.hexes))
	for attempt := 0; attempt < seedAttempts; attempt++ {
		for i, idx := range s.rng.Perm(len(s.hexes)) {
			order[i] = s.hexes[idx]
		}
		set := s.farthestSet(order)
		if score := seedScore(set); score > bestScore {
			bestScore = score
			best = set
		}
	}
	return best
}

// farthestSet searches c exhaustively: the farthest pair for two players,
// the triple with the largest minimum pairwise distance for three, ties
// broken by the larger distance sum.
func (s *splitter) farthestSet(c []hex.Coord) []hex.Coord {
	n := len(c)
	var best []hex.Coord

	if s.players == 2 {
		bestDist := -1
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if d := hex.Distance(c[i], c[j]); d > bestDist {
					bestDist = d
					best = []hex.Coord{c[i], c[j]}
				}
			}
		}
		return best
	}

	bestMin, bestSum := -1, -1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dij := hex.Distance(c[i], c[j])
			if dij < bestMin {
				continue
			}
			for k := j + 1; k < n; k++ {
				dik := hex.Distance(c[i], c[k])
				djk := hex.Distance(c[j], c[k])
				lo := min(dij, dik, djk)
				sum := dij + dik + djk
				if lo > bestMin || (lo == bestMin && sum > bestSum) {
					bestMin, bestSum = lo, sum
					best = []hex.Coord{c[i], c[j], c[k]}
				}
			}
		}
	}
	return best
}

// seedScore favors well separated, evenly spread seeds.
func seedScore(seeds []hex.Coord) int {
	if len(seeds) < 2 {
		return -1
	}
	lo, sum := -1, 0
	for i := 0; i < len(seeds); i++ {
		for j := i + 1; j < len(seeds); j++ {
			d := hex.Distance(seeds[i], seeds[j])
			sum += d
			if lo < 0 || d < lo {
				lo = d
			}
		}
	}
	return 2*lo + sum
}

// assignNearest gives each hex to its closest seed, breaking ties at random.
func (s *splitter) assignNearest(seeds []hex.Coord) {
	ties := make([]int, 0, len(seeds))
	for _, h := range s.hexes {
		bestDist := -1
		ties = ties[:0]
		for i, seed := range seeds {
			d := hex.Distance(h, seed)
			switch {
			case bestDist < 0 || d < bestDist:
				bestDist = d
				ties = append(ties[:0], i)
			case d == bestDist:
				ties = append(ties, i)
			}
		}

		t := ties[0]
		if len(ties) > 1 {
			t = ties[s.rng.Intn(len(ties))]
		}
		s.owner[h] = t
		s.sizes[t]++
	}
}

// balance moves border hexes from oversized territories to undersized
// neighbors until sizes settle or the iteration budget runs out.
func (s *splitter) balance() {
	target := len(s.hexes) / s.players

	for iter := 0; iter < balanceIterations; iter++ {
		donated := false

		for t := 0; t < s.players; t++ {
			for _, h := range s.hexes {
				if s.sizes[t] <= target {
					break
				}
				if s.owner[h] != t {
					continue
				}

				eligible := s.undersizedNeighbors(h, t, target)
				if len(eligible) == 0 {
					continue
				}
				to := eligible[s.rng.Intn(len(eligible))]
				s.owner[h] = to
				s.sizes[t]--
				s.sizes[to]++
				donated = true
			}
		}

		if !donated {
			return
		}
	}
}

// undersizedNeighbors lists territories other than t that touch h and are
// still below target.
func (s *splitter) undersizedNeighbors(h hex.Coord, t, target int) []int {
	var out []int
	for _, n := range h.Neighbors() {
		o, ok := s.owner[n]
		if !ok || o == t || s.sizes[o] >= target {
			continue
		}
		dup := false
		for _, e := range out {
			if e == o {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, o)
		}
	}
	return out
}

// enforceContiguity trims every territory to its largest connected piece.
// Folding strays into a neighbor can leave that neighbor fragmented, so the
// sweep is repeated while anything changed.
func (s *splitter) enforceContiguity() {
	for pass := 0; pass <= s.players; pass++ {
		changed := false
		for t := 0; t < s.players; t++ {
			if s.reassignStrays(t) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// reassignStrays hands every hex outside t's largest component to the
// territory owning the nearest hex. Hexes closest to foreign land go first
// so that deeper strays follow their already reassigned neighbors.
func (s *splitter) reassignStrays(t int) bool {
	comps := hex.ConnectedComponents(s.hexes, func(c hex.Coord) bool {
		return s.owner[c] == t
	})
	if len(comps) <= 1 {
		return false
	}

	keep := hex.Largest(comps)
	var pending []hex.Coord
	for i, comp := range comps {
		if i != keep {
			pending = append(pending, comp...)
		}
	}

	for len(pending) > 0 {
		owners := make([]int, len(pending))
		dists := make([]int, len(pending))
		closest := -1
		for i, h := range pending {
			owners[i], dists[i] = s.nearestForeign(h, t)
			if owners[i] >= 0 && (closest < 0 || dists[i] < closest) {
				closest = dists[i]
			}
		}
		if closest < 0 {
			// No other territory holds any land.
			return true
		}

		rest := pending[:0]
		for i, h := range pending {
			if owners[i] >= 0 && dists[i] == closest {
				s.owner[h] = owners[i]
				s.sizes[t]--
				s.sizes[owners[i]]++
				continue
			}
			rest = append(rest, h)
		}
		pending = rest
	}
	return true
}

// nearestForeign finds the closest hex not owned by t and returns its owner
// and distance, or -1 if there is none.
func (s *splitter) nearestForeign(h hex.Coord, t int) (int, int) {
	owner, best := -1, -1
	for _, c := range s.hexes {
		o := s.owner[c]
		if o == t {
			continue
		}
		if d := hex.Distance(h, c); best < 0 || d < best {
			owner, best = o, d
		}
	}
	return owner, best
}

// deal copies cells with final ownership and scattered starting units.
func (s *splitter) deal(cells []game.Cell) []game.Cell {
	out := make([]game.Cell, len(cells))
	copy(out, cells)

	for t := 0; t < s.players; t++ {
		idx := make([]int, 0, s.sizes[t])
		for i, c := range out {
			if !c.Land || s.owner[c.Coord()] != t {
				continue
			}
			out[i].Owner = game.PlayerID(t)
			out[i].Units = 0
			idx = append(idx, i)
		}
		if len(idx) == 0 {
			continue
		}

		remaining := len(idx) * unitsPerHex
		for remaining > 0 {
			i := idx[s.rng.Intn(len(idx))]
			if out[i].Units < game.MaxUnits {
				out[i].Units++
				remaining--
			}
		}
		for _, i := range idx {
			if out[i].Units == 0 {
				out[i].Units = 1
			}
		}
	}
	return out
}
