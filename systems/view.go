package systems

import (
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
)

// ProjectileView pairs a projectile's drawable state with its entity.
type ProjectileView struct {
	Entity donburi.Entity
	Data   netcomponents.NetProjectileData
}

// Fighters captures every live fighter as drawn this tick, in id order.
func (s *Sim) Fighters() []netcomponents.NetFighterData {
	ids := s.FighterIDs()
	out := make([]netcomponents.NetFighterData, 0, len(ids))
	for _, id := range ids {
		entry, _ := s.Fighter(id)
		out = append(out, s.fighterView(entry))
	}
	return out
}

func (s *Sim) fighterView(entry *donburi.Entry) netcomponents.NetFighterData {
	f := components.Fighter.Get(entry)
	body := components.Body.Get(entry)
	health := components.Health.Get(entry)
	pos, vel := body.Position(), body.Velocity()

	v := netcomponents.NetFighterData{
		FighterID:   uint64(f.ID),
		Name:        f.Name,
		Character:   f.Character.Name,
		X:           pos.X,
		Y:           pos.Y,
		Rot:         body.Angle(),
		VelX:        vel.X,
		VelY:        vel.Y,
		Facing:      uint8(f.Facing()),
		Jumps:       f.Jumps.Available,
		Health:      health.Current,
		MaxHealth:   health.Max,
		HealthShown: health.Fraction(),
	}

	w := entry.World
	for _, dep := range components.SyncGroup.Get(entry).Dependents {
		if !w.Valid(dep.Entity) {
			continue
		}
		d := w.Entry(dep.Entity)
		t := components.Transform.Get(d)
		switch {
		case d.HasComponent(components.Visual):
			v.Parts = append(v.Parts, netcomponents.NetPartData{
				Asset:  components.Visual.Get(d).Asset,
				X:      t.Pos.X,
				Y:      t.Pos.Y,
				Rot:    t.Rot,
				ScaleX: t.Scale.X,
				ScaleY: t.Scale.Y,
				Z:      t.Z,
			})
		case d.HasComponent(tags.HealthBar):
			v.HealthShown = components.HealthBar.Get(d).Shown
			v.BarX, v.BarY = t.Pos.X, t.Pos.Y
		case d.HasComponent(tags.NameTag):
			v.TagX, v.TagY = t.Pos.X, t.Pos.Y
		}
	}
	return v
}

// Projectiles captures every live projectile.
func (s *Sim) Projectiles() []ProjectileView {
	var out []ProjectileView
	w := s.ECS.World
	components.Projectile.Each(w, func(entry *donburi.Entry) {
		p := components.Projectile.Get(entry)
		body := components.Body.Get(entry)
		pos := body.Position()
		data := netcomponents.NetProjectileData{
			Owner:    uint64(p.Owner),
			Template: p.Template,
			X:        pos.X,
			Y:        pos.Y,
			Rot:      body.Angle(),
			ScaleX:   1,
			ScaleY:   1,
		}
		for _, dep := range components.SyncGroup.Get(entry).Dependents {
			if !w.Valid(dep.Entity) {
				continue
			}
			d := w.Entry(dep.Entity)
			if d.HasComponent(components.Visual) {
				t := components.Transform.Get(d)
				data.Asset = components.Visual.Get(d).Asset
				data.X, data.Y, data.Rot = t.Pos.X, t.Pos.Y, t.Rot
				data.ScaleX, data.ScaleY = t.Scale.X, t.Scale.Y
				break
			}
		}
		out = append(out, ProjectileView{Entity: entry.Entity(), Data: data})
	})
	return out
}

// ColliderView is a collider's world-space bounding box.
type ColliderView struct {
	Kind       combat.ColliderKind
	Sensor     bool
	Static     bool
	L, B, R, T float64
}

// Colliders lists every live collider, arena ones included.
func (s *Sim) Colliders() []ColliderView {
	var out []ColliderView
	components.Collider.Each(s.ECS.World, func(entry *donburi.Entry) {
		c := components.Collider.Get(entry)
		if c.Collider == nil || c.Collider.Removed() {
			return
		}
		l, b, r, t := c.Collider.Bounds()
		out = append(out, ColliderView{
			Kind:   c.Kind,
			Sensor: c.Collider.Sensor,
			Static: c.Collider.Body == nil,
			L:      l, B: b, R: r, T: t,
		})
	})
	return out
}
