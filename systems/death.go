package systems

import (
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// updateDominance pins grounded fighters at full jumps.
func (s *Sim) updateDominance(e *ecs.ECS) {
	components.Fighter.Each(e.World, func(entry *donburi.Entry) {
		components.Fighter.Get(entry).Jumps.Enforce()
	})
}

// updateLifetimes marks projectiles whose lifetime ran out.
func (s *Sim) updateLifetimes(e *ecs.ECS) {
	var expired []*donburi.Entry
	components.Projectile.Each(e.World, func(entry *donburi.Entry) {
		p := components.Projectile.Get(entry)
		if p.Expires > 0 && s.Now >= p.Expires && !entry.HasComponent(tags.Despawn) {
			expired = append(expired, entry)
		}
	})
	for _, entry := range expired {
		entry.AddComponent(tags.Despawn)
	}
}

// updateDespawn removes knocked out fighters and marked entities along with
// everything in their sync groups.
func (s *Sim) updateDespawn(e *ecs.ECS) {
	var doomed []*donburi.Entry
	components.Fighter.Each(e.World, func(entry *donburi.Entry) {
		if components.Health.Get(entry).Dead() {
			doomed = append(doomed, entry)
		}
	})
	tags.Despawn.Each(e.World, func(entry *donburi.Entry) {
		doomed = append(doomed, entry)
	})
	for _, entry := range doomed {
		if entry.Valid() {
			s.despawn(entry)
		}
	}
}

func (s *Sim) despawn(entry *donburi.Entry) {
	w := entry.World
	self := entry.Entity()

	if entry.HasComponent(components.SyncGroup) {
		for _, dep := range components.SyncGroup.Get(entry).Dependents {
			if dep.Entity != self && w.Valid(dep.Entity) {
				w.Remove(dep.Entity)
			}
		}
	}
	if entry.HasComponent(components.Body) {
		body := components.Body.Get(entry)
		s.World.RemoveBody(body.Body)
		for _, c := range body.Colliders {
			if w.Valid(c) {
				w.Remove(c)
			}
		}
	}
	if entry.HasComponent(components.Fighter) {
		f := components.Fighter.Get(entry)
		s.Cooldowns.Forget(f.ID)
		delete(s.fighters, f.ID)
		delete(s.inputs, f.ID)
		delete(s.bots, f.ID)
		s.Log.Info("fighter despawned", zap.Uint64("fighter", uint64(f.ID)))
	}
	w.Remove(self)
}
