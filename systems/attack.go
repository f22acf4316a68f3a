package systems

import (
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// updateAttacks resolves every fighter's attack buffer and executes the
// combos that complete.
func (s *Sim) updateAttacks(e *ecs.ECS) {
	var ready []*donburi.Entry
	var keys []combat.ComboKey
	components.Fighter.Each(e.World, func(entry *donburi.Entry) {
		f := components.Fighter.Get(entry)
		if key, ok := f.Buffer.Resolve(s.Now, s.BufferTimeout); ok {
			ready = append(ready, entry)
			keys = append(keys, key)
		}
	})
	// spawning changes the world, so execution happens outside the query
	for i, entry := range ready {
		s.Execute(entry, keys[i])
	}
}

// Execute runs the attack bound to key for the fighter. Projectile spawns
// happen now; movement attacks are queued as one deferred batch sharing this
// execution's instance map.
func (s *Sim) Execute(entry *donburi.Entry, key combat.ComboKey) {
	f := components.Fighter.Get(entry)
	log := s.Log.With(zap.Uint64("fighter", uint64(f.ID)), zap.Stringer("combo", key))
	ms := f.Character.Moveset

	slot, ok := ms.Slots.Get(key)
	if !ok {
		log.Debug("combo not bound")
		return
	}
	if !s.Cooldowns.BeginIfReady(f.ID, key, slot.Cooldown, s.Now) {
		log.Debug("attack on cooldown")
		return
	}

	facing := f.Facing()
	instances := make(combat.InstanceMap)
	var deferred []combat.MoveAttack
	for _, id := range slot.Actions {
		actions, ok := ms.Graph[id]
		if !ok {
			log.Warn("unknown attack action", zap.String("action", id))
			continue
		}
		for _, action := range actions {
			switch a := action.(type) {
			case combat.SpawnProjectile:
				s.spawnProjectiles(entry, a, facing, instances, log)
			case combat.MoveAttack:
				deferred = append(deferred, a)
			}
		}
	}

	if len(deferred) > 0 {
		b := s.Batches.Enqueue(f.ID, deferred, instances)
		log.Debug("movement deferred", zap.Uint64("batch", b.ID), zap.Int("actions", len(deferred)))
	}
}

func (s *Sim) spawnProjectiles(entry *donburi.Entry, a combat.SpawnProjectile, facing combat.Facing, instances combat.InstanceMap, log *zap.Logger) {
	f := components.Fighter.Get(entry)
	id := a.Targets.For(facing)
	if id == "" {
		log.Debug("no projectile for facing", zap.String("action", a.ID), zap.Stringer("facing", facing))
		return
	}
	templates, ok := f.Character.Moveset.Projectiles[id]
	if !ok {
		log.Warn("unknown projectile", zap.String("action", a.ID), zap.String("projectile", id))
		return
	}
	key := combat.InstanceKey{Facing: facing, Tag: a.InstanceTag}
	for _, t := range templates {
		p, err := factory.CreateProjectile(s.ECS, entry, t, facing, s.Now)
		if err != nil {
			log.Warn("projectile not spawned", zap.String("projectile", id), zap.Error(err))
			continue
		}
		instances.Push(key, p.Entity())
	}
}

// updateDeferred applies each pending batch once against its instance map.
// Batches whose fighter is gone are dropped; nothing is retried.
func (s *Sim) updateDeferred(e *ecs.ECS) {
	for _, b := range s.Batches.Drain() {
		entry, ok := s.Fighter(b.Fighter)
		if !ok {
			s.Log.Debug("batch dropped, fighter gone", zap.Uint64("batch", b.ID), zap.Uint64("fighter", uint64(b.Fighter)))
			continue
		}
		s.applyBatch(e, entry, b)
	}
}

func (s *Sim) applyBatch(e *ecs.ECS, entry *donburi.Entry, b *combat.DeferredBatch) {
	f := components.Fighter.Get(entry)
	facing := f.Facing()
	movements := f.Character.Moveset.Movements

	for _, a := range b.Actions {
		id := a.Targets.For(facing)
		if id == "" {
			continue
		}
		templates, ok := movements[id]
		if !ok {
			s.Log.Warn("unknown movement action", zap.Uint64("batch", b.ID), zap.String("movement", id))
			continue
		}
		for i := range templates {
			t := &templates[i]
			tag := t.InstanceAffected
			if tag == "" {
				tag = a.InstanceTag
			}
			for _, h := range b.Instances[combat.InstanceKey{Facing: facing, Tag: tag}] {
				if !e.World.Valid(h) {
					continue
				}
				target := e.World.Entry(h)
				if !target.HasComponent(components.Body) {
					continue
				}
				body := components.Body.Get(target)
				m := body.Motion()
				t.Apply(&m)
				body.SetMotion(m)
			}
		}
	}
}
