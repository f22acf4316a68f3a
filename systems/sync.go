package systems

import (
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// updateSync copies every primary body's transform onto its dependents.
func (s *Sim) updateSync(e *ecs.ECS) {
	components.SyncGroup.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Body) {
			return
		}
		body := components.Body.Get(entry)
		if body.Body == nil || body.Removed() {
			return
		}
		pos := body.Position()
		rot := body.Angle()

		for _, dep := range components.SyncGroup.Get(entry).Dependents {
			if !e.World.Valid(dep.Entity) {
				s.Log.Warn("sync dependent gone", zap.Any("primary", entry.Entity()), zap.Any("dependent", dep.Entity))
				continue
			}
			s.syncDependent(e.World.Entry(dep.Entity), pos, rot, dep.InheritRotation)
		}
	})
}

func (s *Sim) syncDependent(d *donburi.Entry, pos gamemath.Vec, rot float64, inherit bool) {
	t := components.Transform.Get(d)
	t.Pos = pos
	if inherit {
		t.Rot = rot
	}
	// offsets are world space, added after the copy
	if d.HasComponent(components.SyncOffset) {
		t.Pos = t.Pos.Add(components.SyncOffset.Get(d).Offset)
	}
	if d.HasComponent(components.Look) {
		look := components.Look.Get(d)
		if d.World.Valid(look.Fighter) {
			fighter := d.World.Entry(look.Fighter)
			if fighter.HasComponent(components.Fighter) {
				facing := components.Fighter.Get(fighter).Facing()
				t.Pos = t.Pos.Add(look.Angles.Offset(facing, look.Radius))
			}
		}
	}
	if d.HasComponent(components.Visual) {
		v := components.Visual.Get(d)
		if v.Vector {
			t.Pos = t.Pos.Sub(s.anchor(v).Mul(t.Scale).Rotate(t.Rot))
		}
	}
}

// anchorKey identifies an asset handle. Characters may reuse asset ids with
// different sizes.
type anchorKey struct {
	asset string
	size  gamemath.Vec
}

// anchor is half a vector asset's intrinsic size with y flipped, cached per
// asset. Scale and rotation are applied by the caller.
func (s *Sim) anchor(v *components.VisualData) gamemath.Vec {
	key := anchorKey{asset: v.Asset, size: v.Size}
	if a, ok := s.anchors[key]; ok {
		return a
	}
	a := v.Size.Scale(0.5)
	a.Y = -a.Y
	s.anchors[key] = a
	return a
}
