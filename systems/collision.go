package systems

import (
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/physics"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// contactSide is one collider of a contact resolved to its owners.
type contactSide struct {
	kind       combat.ColliderKind
	fighter    *donburi.Entry
	projectile *donburi.Entry
}

// updateCollisions reacts to the contacts the physics step reported.
func (s *Sim) updateCollisions(e *ecs.ECS) {
	for _, ev := range s.World.Events() {
		if ev.Removed {
			continue
		}
		a, okA := s.side(e, ev.A)
		b, okB := s.side(e, ev.B)
		if !okA || !okB {
			continue
		}
		s.resolveContact(ev.Kind, a, b)
	}
}

// side walks from a physics collider to its collider entity and up one level
// to the owning fighter or projectile.
func (s *Sim) side(e *ecs.ECS, c *physics.Collider) (contactSide, bool) {
	ent, ok := c.UserData.(donburi.Entity)
	if !ok {
		return contactSide{}, false
	}
	if !e.World.Valid(ent) {
		s.Log.Warn("contact with despawned collider", zap.Any("collider", ent))
		return contactSide{}, false
	}
	entry := e.World.Entry(ent)
	side := contactSide{kind: components.Collider.Get(entry).Kind}

	if !entry.HasComponent(components.Parent) {
		return side, true
	}
	parent := components.Parent.Get(entry).Entity
	if !e.World.Valid(parent) {
		s.Log.Warn("contact with despawned owner", zap.Any("collider", ent))
		return contactSide{}, false
	}
	owner := e.World.Entry(parent)
	switch {
	case owner.HasComponent(components.Fighter):
		side.fighter = owner
	case owner.HasComponent(components.Projectile):
		side.projectile = owner
	}
	return side, true
}

func (s *Sim) resolveContact(kind physics.ContactKind, a, b contactSide) {
	if a.projectile != nil || b.projectile != nil {
		if kind != physics.ContactStarted {
			return
		}
		if a.projectile != nil {
			s.projectileHit(a.projectile, b)
		}
		if b.projectile != nil {
			s.projectileHit(b.projectile, a)
		}
		return
	}

	jumpReset := a.kind == combat.ColliderJumpReset || b.kind == combat.ColliderJumpReset
	death := a.kind == combat.ColliderDeath || b.kind == combat.ColliderDeath

	switch {
	case a.fighter != nil && b.fighter != nil:
		if a.fighter.Entity() == b.fighter.Entity() {
			return
		}
		if !s.hasJumpReset(a.fighter) && !s.hasJumpReset(b.fighter) {
			return
		}
		ja := &components.Fighter.Get(a.fighter).Jumps
		jb := &components.Fighter.Get(b.fighter).Jumps
		if kind == physics.ContactStarted {
			ja.Refill()
			jb.Refill()
		} else {
			ja.Decay()
			jb.Decay()
		}

	case a.fighter != nil || b.fighter != nil:
		fighter := a.fighter
		if fighter == nil {
			fighter = b.fighter
		}
		f := components.Fighter.Get(fighter)
		if jumpReset {
			if kind == physics.ContactStarted {
				f.Jumps.Land()
			} else {
				f.Jumps.Leave()
			}
		}
		if death {
			components.Health.Get(fighter).Kill()
			s.Log.Info("fighter hit a death zone", zap.Uint64("fighter", uint64(f.ID)))
		}
	}
}

// hasJumpReset reports whether any collider on the fighter's body is a
// jump-reset collider.
func (s *Sim) hasJumpReset(fighter *donburi.Entry) bool {
	if !fighter.HasComponent(components.Body) {
		return false
	}
	for _, c := range components.Body.Get(fighter).Colliders {
		if !s.ECS.World.Valid(c) {
			continue
		}
		entry := s.ECS.World.Entry(c)
		if entry.HasComponent(components.Collider) && components.Collider.Get(entry).Kind == combat.ColliderJumpReset {
			return true
		}
	}
	return false
}

// projectileHit damages the struck fighter when the struck collider is solid
// and belongs to someone other than the projectile's owner.
func (s *Sim) projectileHit(projectile *donburi.Entry, struck contactSide) {
	if projectile.HasComponent(tags.Despawn) {
		return
	}
	if struck.fighter == nil || struck.kind != combat.ColliderSolid {
		return
	}
	p := components.Projectile.Get(projectile)
	target := components.Fighter.Get(struck.fighter)
	if target.ID == p.Owner {
		return
	}

	health := components.Health.Get(struck.fighter)
	health.Damage(p.Damage)
	s.Log.Debug("projectile hit",
		zap.String("projectile", p.Template),
		zap.Uint64("owner", uint64(p.Owner)),
		zap.Uint64("fighter", uint64(target.ID)),
		zap.Float64("health", health.Current))

	if p.Hit() {
		projectile.AddComponent(tags.Despawn)
	}
}
