package factory

import (
	"errors"
	"fmt"

	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/chardef"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/physics"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	// ErrMissingPhysicsObject means a part or projectile names a physics
	// object its character does not define.
	ErrMissingPhysicsObject = errors.New("missing physics object")
	ErrNoSpace              = errors.New("no physics space")
)

// CreateFighter spawns a fighter at pos: the core body with its collider
// entities, limbs, health bar and name tag, all in the fighter's sync group.
// A character whose core physics object is missing cannot be played.
func CreateFighter(ecs *ecs.ECS, id combat.FighterID, name string, ch *chardef.Character, pos gamemath.Vec) (*donburi.Entry, error) {
	world, ok := World(ecs)
	if !ok {
		return nil, ErrNoSpace
	}
	core, ok := ch.Object(ch.Core.PhysObjID)
	if !ok {
		return nil, fmt.Errorf("%w: character %s core %q", ErrMissingPhysicsObject, ch.Name, ch.Core.PhysObjID)
	}
	for _, part := range ch.Limbs {
		if part.PhysObjID == "" {
			continue
		}
		if _, ok := ch.Object(part.PhysObjID); !ok {
			return nil, fmt.Errorf("%w: character %s limb %q", ErrMissingPhysicsObject, ch.Name, part.PhysObjID)
		}
	}

	fighter := archetypes.Fighter.Spawn(ecs)
	body := world.AddBody(bodyDef(core), pos, 0)
	body.UserData = fighter.Entity()
	colliders := attachColliders(ecs, fighter, body.Colliders(), core.Colliders)

	// limbs backed by another physics object lend their colliders to the core
	for _, part := range ch.Limbs {
		if part.PhysObjID == "" || part.PhysObjID == ch.Core.PhysObjID {
			continue
		}
		obj, _ := ch.Object(part.PhysObjID)
		for _, spec := range obj.Colliders {
			shape := spec.Shape
			shape.Offset = shape.Offset.Add(part.Offset)
			c := body.AddCollider(shape)
			colliders = append(colliders, attachColliders(ecs, fighter, []*physics.Collider{c}, []chardef.ColliderSpec{spec})...)
		}
	}

	components.Fighter.SetValue(fighter, components.FighterData{
		ID:        id,
		Name:      name,
		Character: ch,
		Jumps:     combat.NewJumps(ch.MaxJumps, ch.LockJumps),
	})
	components.Health.SetValue(fighter, components.HealthData{Current: ch.MaxHealth, Max: ch.MaxHealth})
	components.Body.SetValue(fighter, components.BodyData{Body: body, Colliders: colliders})
	components.Transform.SetValue(fighter, components.TransformData{
		Pos:   pos,
		Rot:   ch.Core.Rotation,
		Scale: ch.Core.Scale,
		Z:     ch.Core.Z,
	})
	components.SyncOffset.SetValue(fighter, components.SyncOffsetData{Offset: ch.Core.Offset})
	components.Visual.SetValue(fighter, visual(ch, ch.Core.Asset))

	var group components.SyncGroupData
	group.Add(fighter.Entity(), ch.Core.InheritRotation)

	for _, part := range ch.Limbs {
		limb := archetypes.Limb.Spawn(ecs)
		components.Transform.SetValue(limb, components.TransformData{
			Pos:   pos.Add(part.Offset),
			Rot:   part.Rotation,
			Scale: part.Scale,
			Z:     part.Z,
		})
		components.SyncOffset.SetValue(limb, components.SyncOffsetData{Offset: part.Offset})
		components.Visual.SetValue(limb, visual(ch, part.Asset))
		if part.LookRadius != 0 {
			donburi.Add(limb, components.Look, &components.LookData{
				Fighter: fighter.Entity(),
				Radius:  part.LookRadius,
				Angles:  part.LookAngles,
			})
		}
		group.Add(limb.Entity(), part.InheritRotation)
	}

	bar := archetypes.HealthBar.Spawn(ecs)
	components.HealthBar.SetValue(bar, components.NewHealthBar(fighter.Entity(), ch.HealthBar.Width, ch.HealthBar.Height))
	components.Transform.SetValue(bar, components.TransformData{Scale: gamemath.V(1, 1), Z: 10})
	components.SyncOffset.SetValue(bar, components.SyncOffsetData{Offset: gamemath.V(0, ch.HealthBar.Distance)})
	group.Add(bar.Entity(), false)

	tag := archetypes.NameTag.Spawn(ecs)
	components.NameTag.SetValue(tag, components.NameTagData{Text: name, Size: ch.NameTag.Size})
	components.Transform.SetValue(tag, components.TransformData{Scale: gamemath.V(1, 1), Z: 10})
	components.SyncOffset.SetValue(tag, components.SyncOffsetData{Offset: gamemath.V(0, ch.NameTag.Distance)})
	group.Add(tag.Entity(), false)

	components.SyncGroup.SetValue(fighter, group)
	return fighter, nil
}

func bodyDef(obj *chardef.Object) physics.BodyDef {
	def := obj.Body
	def.Shapes = make([]physics.ShapeDef, len(obj.Colliders))
	for i, c := range obj.Colliders {
		def.Shapes[i] = c.Shape
	}
	return def
}

// attachColliders creates one collider entity per physics collider, parented
// to owner. colliders and specs are parallel.
func attachColliders(ecs *ecs.ECS, owner *donburi.Entry, colliders []*physics.Collider, specs []chardef.ColliderSpec) []donburi.Entity {
	out := make([]donburi.Entity, 0, len(colliders))
	for i, c := range colliders {
		entry := archetypes.FighterCollider.Spawn(ecs)
		kind := combat.ColliderSolid
		if i < len(specs) {
			kind = specs[i].Kind
		}
		components.Collider.SetValue(entry, components.ColliderData{Kind: kind, Collider: c})
		components.Parent.SetValue(entry, components.ParentData{Entity: owner.Entity()})
		c.UserData = entry.Entity()
		out = append(out, entry.Entity())
	}
	return out
}

func visual(ch *chardef.Character, asset string) components.VisualData {
	a, ok := ch.Asset(asset)
	if !ok {
		return components.VisualData{Asset: asset}
	}
	return components.VisualData{
		Asset:  a.ID,
		Vector: a.Vector,
		Size:   a.Size,
		Radius: a.Radius,
		Color:  a.Color,
	}
}
