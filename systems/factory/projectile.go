package factory

import (
	"fmt"
	"time"

	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateProjectile spawns one projectile template for the fighter facing f.
// The projectile's visual is a separate entity in its sync group.
func CreateProjectile(ecs *ecs.ECS, fighter *donburi.Entry, t combat.ProjectileTemplate, f combat.Facing, now time.Duration) (*donburi.Entry, error) {
	world, ok := World(ecs)
	if !ok {
		return nil, ErrNoSpace
	}
	owner := components.Fighter.Get(fighter)
	ch := owner.Character
	obj, ok := ch.Object(t.PhysObjID)
	if !ok {
		return nil, fmt.Errorf("%w: projectile %s uses %q", ErrMissingPhysicsObject, t.ID, t.PhysObjID)
	}

	def := bodyDef(obj)
	if !t.ObeyGravity {
		def.GravityScale = 0
	}
	for i := range def.Shapes {
		if !t.DontPhaseThrough {
			def.Shapes[i].Sensor = true
		}
	}

	origin := components.Body.Get(fighter).Position()
	pos := t.SpawnPoint(origin, f)

	projectile := archetypes.Projectile.Spawn(ecs)
	body := world.AddBody(def, pos, t.Rotation)
	body.UserData = projectile.Entity()
	colliders := attachColliders(ecs, projectile, body.Colliders(), obj.Colliders)

	var expires time.Duration
	if t.Lifetime > 0 {
		expires = now + t.Lifetime
	}
	components.Projectile.SetValue(projectile, components.ProjectileData{
		Template: t.ID,
		Owner:    owner.ID,
		Damage:   t.Damage,
		Pierce:   t.Pierce,
		Expires:  expires,
	})
	components.Body.SetValue(projectile, components.BodyData{Body: body, Colliders: colliders})
	components.Transform.SetValue(projectile, components.TransformData{Pos: pos, Rot: t.Rotation, Scale: t.Scale, Z: t.SpawnZ})

	vis := archetypes.ProjectileVisual.Spawn(ecs)
	components.Transform.SetValue(vis, components.TransformData{
		Pos:   pos.Add(t.SyncOffset),
		Rot:   t.Rotation,
		Scale: t.Scale,
		Z:     t.SpawnZ,
	})
	components.SyncOffset.SetValue(vis, components.SyncOffsetData{Offset: t.SyncOffset})
	components.Visual.SetValue(vis, visual(ch, t.Asset))
	var group components.SyncGroupData
	group.Add(vis.Entity(), true)
	components.SyncGroup.SetValue(projectile, group)

	return projectile, nil
}

