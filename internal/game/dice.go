package game

import "math/rand"

// Roller produces six-sided die results.
type Roller interface {
	RollD6() int
}

// RandRoller rolls dice from a seeded random source, so a game replayed from
// the same seed sees the same rolls.
type RandRoller struct {
	rng *rand.Rand
}

// NewRandRoller wraps rng as a Roller.
func NewRandRoller(rng *rand.Rand) *RandRoller {
	return &RandRoller{rng: rng}
}

// RollD6 returns a value in [1, 6].
func (r *RandRoller) RollD6() int {
	return r.rng.Intn(6) + 1
}

// SequenceRoller replays a fixed list of results, cycling when exhausted.
// Useful for scripted scenarios.
type SequenceRoller struct {
	Values []int
	next   int
}

// RollD6 returns the next scripted value.
func (s *SequenceRoller) RollD6() int {
	if len(s.Values) == 0 {
		return 1
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// DiceRoll records the dice thrown in one attack.
type DiceRoll struct {
	Attacker      []int    `json:"attacker"`
	Defender      []int    `json:"defender"`
	AttackerTotal int      `json:"attackerTotal"`
	DefenderTotal int      `json:"defenderTotal"`
	AttackerWins  bool     `json:"attackerWins"`
	AttackerID    PlayerID `json:"attackerId"`
	DefenderID    PlayerID `json:"defenderId"`
}

// Clone returns a deep copy of the roll.
func (d *DiceRoll) Clone() *DiceRoll {
	c := *d
	c.Attacker = append([]int(nil), d.Attacker...)
	c.Defender = append([]int(nil), d.Defender...)
	return &c
}

// rollDice throws one die per unit on each side. Ties go to the defender.
func rollDice(roller Roller, attacker, defender Cell) *DiceRoll {
	roll := &DiceRoll{
		Attacker:   make([]int, attacker.Units),
		Defender:   make([]int, defender.Units),
		AttackerID: attacker.Owner,
		DefenderID: defender.Owner,
	}
	for i := range roll.Attacker {
		roll.Attacker[i] = roller.RollD6()
		roll.AttackerTotal += roll.Attacker[i]
	}
	for i := range roll.Defender {
		roll.Defender[i] = roller.RollD6()
		roll.DefenderTotal += roll.Defender[i]
	}
	roll.AttackerWins = roll.AttackerTotal > roll.DefenderTotal
	return roll
}
