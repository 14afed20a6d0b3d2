package hex

// ConnectedComponents partitions hexes into maximal groups connected under
// 6-neighbor adjacency. Only hexes for which member returns true take part;
// a nil member accepts every hex. Components come back in the order their
// first hex appears in the input, and each component lists hexes in BFS order.
func ConnectedComponents(hexes []Coord, member func(Coord) bool) [][]Coord {
	cellSet := make(map[Coord]bool, len(hexes))
	for _, h := range hexes {
		if member == nil || member(h) {
			cellSet[h] = true
		}
	}

	visited := make(map[Coord]bool, len(cellSet))
	var components [][]Coord

	for _, start := range hexes {
		if !cellSet[start] || visited[start] {
			continue
		}

		component := make([]Coord, 0)
		queue := []Coord{start}
		visited[start] = true

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)

			for _, n := range cur.Neighbors() {
				if cellSet[n] && !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}

		components = append(components, component)
	}

	return components
}

// Largest returns the index of the biggest component, or -1 if there are
// none. Ties go to the earliest component.
func Largest(components [][]Coord) int {
	best := -1
	bestSize := 0
	for i, comp := range components {
		if len(comp) > bestSize {
			bestSize = len(comp)
			best = i
		}
	}
	return best
}
