package components

import (
	"github.com/automoto/arena-mp/combat"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/yohamta/donburi"
)

// Buttons is the set of logical actions held down during one tick.
type Buttons [cfg.ActionCount]bool

// InputData stores the current and previous tick's held state for a fighter.
// Edges are computed on demand by comparing the two.
type InputData struct {
	Current  Buttons
	Previous Buttons
}

// Advance shifts the current snapshot into Previous and stores next.
func (d *InputData) Advance(next Buttons) {
	d.Previous = d.Current
	d.Current = next
}

// Edge reports how the action changed since the previous tick.
func (d *InputData) Edge(a cfg.ActionID) combat.Edge {
	if a < 0 || a >= cfg.ActionCount {
		return combat.EdgeNone
	}
	cur, prev := d.Current[a], d.Previous[a]
	switch {
	case cur && !prev:
		return combat.EdgePressed
	case !cur && prev:
		return combat.EdgeReleased
	case cur:
		return combat.EdgeHeld
	}
	return combat.EdgeNone
}

var Input = donburi.NewComponentType[InputData]()
