package game

// CanAttack checks whether the current player may attack toID from fromID.
func (g *GameState) CanAttack(fromID, toID int) bool {
	if g.HasPendingCombat() || g.Phase != PhaseAttack || g.ActionsLeft <= 0 {
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
	if from.Owner != g.Current || from.Units < 1 {
		return false
	}
	if to.Owner == g.Current {
		return false
	}
	return from.IsAdjacent(to)
}

// Attack resolves an attack and returns the resulting state together with
// the dice thrown. The roll is nil when the target was empty and captured
// without combat, and when the attack is illegal (the input state is returned).
//
// An empty target is taken for free: no dice and no action point. Otherwise
// the attacker throws one die per unit on from, the defender one per unit on
// to, and the higher total wins with ties to the defender. A losing attacker
// forfeits from to the defender, who also gains a unit on to.
func Attack(g *GameState, fromID, toID int, roller Roller) (*GameState, *DiceRoll) {
	if !g.CanAttack(fromID, toID) {
		return g, nil
	}

	next := g.Clone()
	fi := next.cellIndex(fromID)
	ti := next.cellIndex(toID)
	from := &next.Cells[fi]
	to := &next.Cells[ti]

	if to.Units == 0 {
		advance(from, to)
		next.recomputeScores()
		return next, nil
	}

	roll := rollDice(roller, *from, *to)
	if roll.AttackerWins {
		advance(from, to)
	} else {
		from.Owner = to.Owner
		to.Units = ClampUnits(to.Units + 1)
	}

	next.ActionsLeft--
	next.recomputeScores()
	return next, roll
}

// advance moves the attacking stack into a captured cell, leaving one unit
// behind when there is more than one.
func advance(from, to *Cell) {
	moved := from.Units
	if from.Units >= 2 {
		moved = from.Units - 1
	}
	from.Units -= moved
	to.Owner = from.Owner
	to.Units = ClampUnits(moved)
}

// BeginAttack is the first half of the two-step combat commit. When dice are
// rolled, the returned state is the unchanged board carrying the roll in
// LastDiceRoll and the post-combat board in PendingCombatResult; no further
// action is legal until ApplyPendingCombat. Free captures apply immediately.
func BeginAttack(g *GameState, fromID, toID int, roller Roller) (*GameState, *DiceRoll) {
	result, roll := Attack(g, fromID, toID, roller)
	if roll == nil {
		return result, nil
	}

	held := g.Clone()
	held.LastDiceRoll = roll
	held.PendingCombatResult = result
	return held, roll
}

// ApplyPendingCombat commits a held combat result and clears the dice display.
// It returns the input state when nothing is pending.
func ApplyPendingCombat(g *GameState) *GameState {
	if !g.HasPendingCombat() {
		return g
	}
	next := g.PendingCombatResult.Clone()
	next.LastDiceRoll = nil
	next.PendingCombatResult = nil
	next.Selected = nil
	return next
}
