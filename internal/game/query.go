package game

// ValidReinforcementTargets returns the ids of cells the current player may
// reinforce.
func (g *GameState) ValidReinforcementTargets() []int {
	ids := make([]int, 0)
	for _, c := range g.Cells {
		if g.CanReinforce(c.ID) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// ValidAttackTargets returns the ids of cells that may be attacked from fromID.
func (g *GameState) ValidAttackTargets(fromID int) []int {
	ids := make([]int, 0)
	from, ok := g.Cell(fromID)
	if !ok {
		return ids
	}
	for _, c := range g.Cells {
		if c.IsAdjacent(from) && g.CanAttack(fromID, c.ID) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// ValidMoveTargets returns the ids of cells that can receive at least one
// unit from fromID.
func (g *GameState) ValidMoveTargets(fromID int) []int {
	ids := make([]int, 0)
	for _, c := range g.Cells {
		if g.CanMove(fromID, c.ID) && g.MoveAmount(fromID, c.ID, MaxUnits) > 0 {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// HasValidMoves reports whether the current player has any legal
// reinforcement, attack, or move.
func (g *GameState) HasValidMoves() bool {
	if g.HasPendingCombat() {
		return false
	}
	switch g.Phase {
	case PhaseReinforce:
		return len(g.ValidReinforcementTargets()) > 0
	case PhaseAttack:
		for _, c := range g.Cells {
			if c.Owner != g.Current || !c.Land {
				continue
			}
			if len(g.ValidAttackTargets(c.ID)) > 0 || len(g.ValidMoveTargets(c.ID)) > 0 {
				return true
			}
		}
	}
	return false
}

// PlayerTerritoryCount returns the number of land cells p owns.
func (g *GameState) PlayerTerritoryCount(p PlayerID) int {
	count := 0
	for _, c := range g.Cells {
		if c.Land && c.Owner == p {
			count++
		}
	}
	return count
}

// TotalUnits returns the sum of units on p's land cells.
func (g *GameState) TotalUnits(p PlayerID) int {
	total := 0
	for _, c := range g.Cells {
		if c.Land && c.Owner == p {
			total += c.Units
		}
	}
	return total
}

// PlayerSummary is a per-player digest for display.
type PlayerSummary struct {
	Player      PlayerID `json:"player"`
	Territories int      `json:"territories"`
	Units       int      `json:"units"`
	Score       int      `json:"score"`
	RegionSizes []int    `json:"regionSizes"` // largest first; [0] is the mainland
	IsCurrent   bool     `json:"isCurrent"`
}

// Summarize returns a summary for each player in turn order.
func (g *GameState) Summarize() []PlayerSummary {
	out := make([]PlayerSummary, 0, len(g.Players))
	for _, p := range g.Players {
		regions := g.Regions(p)
		sizes := make([]int, len(regions))
		for i, r := range regions {
			sizes[i] = len(r)
		}
		out = append(out, PlayerSummary{
			Player:      p,
			Territories: g.PlayerTerritoryCount(p),
			Units:       g.TotalUnits(p),
			Score:       g.Scores[p],
			RegionSizes: sizes,
			IsCurrent:   p == g.Current,
		})
	}
	return out
}
