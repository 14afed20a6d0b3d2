package game

// CanReinforce checks whether the current player may add a unit to a cell.
func (g *GameState) CanReinforce(cellID int) bool {
	if g.HasPendingCombat() || g.Phase != PhaseReinforce || g.ReinfLeft <= 0 {
		return false
	}
	c, ok := g.Cell(cellID)
	if !ok {
		return false
	}
	return c.Land && c.Owner == g.Current && c.Units < MaxUnits
}

// Reinforce adds one unit to a cell. Spending the last reinforcement moves
// the turn into the attack phase.
func Reinforce(g *GameState, cellID int) *GameState {
	if !g.CanReinforce(cellID) {
		return g
	}

	next := g.Clone()
	c := &next.Cells[next.cellIndex(cellID)]
	c.Units = ClampUnits(c.Units + 1)
	next.ReinfLeft--
	if next.ReinfLeft == 0 {
		next.Phase = PhaseAttack
	}
	return next
}

// CanMove checks whether the current player may shift units between two of
// their own cells.
func (g *GameState) CanMove(fromID, toID int) bool {
	if g.HasPendingCombat() || g.Phase != PhaseAttack || g.ActionsLeft <= 0 {
		return false
	}
	if fromID == toID {
		return false
	}
	from, ok := g.Cell(fromID)
	if !ok {
		return false
	}
	to, ok := g.Cell(toID)
	if !ok {
		return false
	}
	if !from.Land || !to.Land {
		return false
	}
	if from.Owner != g.Current || to.Owner != g.Current {
		return false
	}
	return from.Units > 1
}

// MoveAmount returns how many of the requested units would actually move:
// at least one stays behind and the destination never exceeds MaxUnits.
func (g *GameState) MoveAmount(fromID, toID, count int) int {
	from, ok := g.Cell(fromID)
	if !ok {
		return 0
	}
	to, ok := g.Cell(toID)
	if !ok {
		return 0
	}
	return min(count, from.Units-1, MaxUnits-to.Units)
}

// Move shifts units between two owned cells for one action point. Nothing
// happens if no unit can move.
func Move(g *GameState, fromID, toID, count int) *GameState {
	if !g.CanMove(fromID, toID) {
		return g
	}
	amount := g.MoveAmount(fromID, toID, count)
	if amount <= 0 {
		return g
	}

	next := g.Clone()
	next.Cells[next.cellIndex(fromID)].Units -= amount
	next.Cells[next.cellIndex(toID)].Units += amount
	next.ActionsLeft--
	return next
}

// CanEndTurn reports whether the current player may pass. A player with no
// legal action left may always pass.
func (g *GameState) CanEndTurn() bool {
	if g.HasPendingCombat() {
		return false
	}
	if g.ReinfLeft == 0 || g.ActionsLeft == 0 {
		return true
	}
	return !g.HasValidMoves()
}

// EndTurn hands play to the next player in turn order, starting a new round
// when the order wraps.
func EndTurn(g *GameState) *GameState {
	if !g.CanEndTurn() {
		return g
	}

	next := g.Clone()
	idx := next.turnIndex(next.Current)
	nextIdx := (idx + 1) % len(next.Players)
	if nextIdx == 0 {
		next.Round++
	}
	next.Current = next.Players[nextIdx]
	next.ReinfLeft = next.reinforcementsFor(next.Current)
	next.ActionsLeft = ActionsPerTurn
	next.Phase = PhaseReinforce
	next.Selected = nil
	next.recomputeScores()
	return next
}

// Select marks a cell as the UI selection. It has no effect on the rules.
func Select(g *GameState, cellID int) *GameState {
	if _, ok := g.Cell(cellID); !ok {
		return g
	}
	next := g.Clone()
	next.Selected = &cellID
	return next
}

// ClearSelection drops the UI selection.
func ClearSelection(g *GameState) *GameState {
	if g.Selected == nil {
		return g
	}
	next := g.Clone()
	next.Selected = nil
	return next
}

// turnIndex returns p's position in the turn order.
func (g *GameState) turnIndex(p PlayerID) int {
	for i, id := range g.Players {
		if id == p {
			return i
		}
	}
	return 0
}
