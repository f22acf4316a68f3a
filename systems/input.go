package systems

import (
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var dirActions = [...]struct {
	dir    combat.Dir
	action cfg.ActionID
}{
	{combat.DirUp, cfg.ActionUp},
	{combat.DirDown, cfg.ActionDown},
	{combat.DirLeft, cfg.ActionLeft},
	{combat.DirRight, cfg.ActionRight},
}

// updateInput turns each fighter's input snapshot into facing changes,
// movement controls and attack buffer entries.
func (s *Sim) updateInput(e *ecs.ECS) {
	components.Fighter.Each(e.World, func(entry *donburi.Entry) {
		f := components.Fighter.Get(entry)
		in := components.Input.Get(entry)
		next, ok := s.inputs[f.ID]
		if !ok {
			next = in.Current
		}
		in.Advance(next)

		for _, da := range dirActions {
			edge := in.Edge(da.action)
			switch edge {
			case combat.EdgePressed:
				f.Dirs.Set(da.dir, true)
			case combat.EdgeReleased:
				f.Dirs.Set(da.dir, false)
			default:
				continue
			}
			s.applyControl(entry, f, f.Character.Moveset.Controls.For(da.dir, edge))
		}

		f.Buffer.Record(combat.InputReset, in.Edge(cfg.ActionReset), s.Now)
		f.Buffer.Record(combat.InputButtonA, in.Edge(cfg.ActionAttackA), s.Now)
		f.Buffer.Record(combat.InputButtonB, in.Edge(cfg.ActionAttackB), s.Now)
	})
}

// applyControl runs a movement control on the fighter's core body, gated on
// available jumps.
func (s *Sim) applyControl(entry *donburi.Entry, f *components.FighterData, act *combat.MovementAction) {
	if act == nil {
		return
	}
	if !act.SpendJumps(&f.Jumps.Available, f.Jumps.Dominance) {
		return
	}
	body := components.Body.Get(entry)
	m := body.Motion()
	act.Apply(&m)
	body.SetMotion(m)
}
