package systems

import (
	"github.com/automoto/arena-mp/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// updateHealthBars eases each bar toward its fighter's health.
func (s *Sim) updateHealthBars(e *ecs.ECS) {
	ease := float32(s.HealthBarEase.Seconds())
	components.HealthBar.Each(e.World, func(entry *donburi.Entry) {
		bar := components.HealthBar.Get(entry)
		if !e.World.Valid(bar.Fighter) {
			return
		}
		fighter := e.World.Entry(bar.Fighter)
		bar.Retarget(components.Health.Get(fighter).Fraction(), ease)
		bar.Update(float32(s.dt))
	})
}
