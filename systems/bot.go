package systems

import (
	"math"

	"github.com/automoto/arena-mp/bots"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// AddBot hands a fighter's input over to brain. Bots only act while
// BotsActive is set.
func (s *Sim) AddBot(id combat.FighterID, brain *bots.Brain) {
	s.bots[id] = brain
}

// IsBot reports whether id is driven by a script.
func (s *Sim) IsBot(id combat.FighterID) bool {
	_, ok := s.bots[id]
	return ok
}

type fighterInfo struct {
	id  combat.FighterID
	obs bots.Observation
}

// updateBots writes one input snapshot per scripted fighter, aimed at the
// nearest other fighter.
func (s *Sim) updateBots(e *ecs.ECS) {
	if len(s.bots) == 0 {
		return
	}
	if !s.BotsActive {
		for id := range s.bots {
			s.inputs[id] = components.Buttons{}
		}
		return
	}

	var fighters []fighterInfo
	components.Fighter.Each(e.World, func(entry *donburi.Entry) {
		f := components.Fighter.Get(entry)
		body := components.Body.Get(entry)
		pos, vel := body.Position(), body.Velocity()
		fighters = append(fighters, fighterInfo{
			id: f.ID,
			obs: bots.Observation{
				X: pos.X, Y: pos.Y,
				VX: vel.X, VY: vel.Y,
				Health: components.Health.Get(entry).Current,
				Jumps:  f.Jumps.Available,
			},
		})
	})

	for id, brain := range s.bots {
		self := findFighter(fighters, id)
		if self == nil {
			delete(s.bots, id)
			continue
		}
		target := nearestTarget(fighters, self)
		out, err := brain.DecideAt(self.obs, target, s.waypoint(self.obs, target))
		if err != nil {
			s.Log.Warn("bot script failed",
				zap.Uint64("fighter", uint64(id)),
				zap.String("script", brain.Script()),
				zap.Error(err))
			out = components.Buttons{}
		}
		s.inputs[id] = out
	}
}

// waypoint is the next navigation step towards target, if the arena has a
// grid and a path exists.
func (s *Sim) waypoint(self bots.Observation, target *bots.Observation) *gamemath.Vec {
	if s.nav == nil || target == nil {
		return nil
	}
	wp, ok := s.nav.Waypoint(gamemath.V(self.X, self.Y), gamemath.V(target.X, target.Y))
	if !ok {
		return nil
	}
	return &wp
}

func findFighter(fighters []fighterInfo, id combat.FighterID) *fighterInfo {
	for i := range fighters {
		if fighters[i].id == id {
			return &fighters[i]
		}
	}
	return nil
}

func nearestTarget(fighters []fighterInfo, self *fighterInfo) *bots.Observation {
	var nearest *bots.Observation
	best := math.MaxFloat64
	for i := range fighters {
		p := &fighters[i]
		if p.id == self.id || p.obs.Health <= 0 {
			continue
		}
		d := math.Hypot(p.obs.X-self.obs.X, p.obs.Y-self.obs.Y)
		if d < best {
			best = d
			nearest = &p.obs
		}
	}
	return nearest
}
