package archetypes

import (
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Fighter = newArchetype(
		tags.Fighter,
		components.Fighter,
		components.Input,
		components.Health,
		components.Body,
		components.Transform,
		components.SyncGroup,
		components.SyncOffset,
		components.Visual,
	)
	FighterCollider = newArchetype(
		tags.Collider,
		components.Collider,
		components.Parent,
	)
	Limb = newArchetype(
		tags.Limb,
		components.Transform,
		components.SyncOffset,
		components.Visual,
	)
	HealthBar = newArchetype(
		tags.HealthBar,
		components.HealthBar,
		components.Transform,
		components.SyncOffset,
	)
	NameTag = newArchetype(
		tags.NameTag,
		components.NameTag,
		components.Transform,
		components.SyncOffset,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
		components.Body,
		components.Transform,
		components.SyncGroup,
	)
	ProjectileVisual = newArchetype(
		components.Transform,
		components.SyncOffset,
		components.Visual,
	)
	Wall = newArchetype(
		tags.Wall,
		tags.Collider,
		components.Collider,
	)
	DeathZone = newArchetype(
		tags.DeathZone,
		tags.Collider,
		components.Collider,
	)
	Match = newArchetype(
		components.Match,
	)
	Space = newArchetype(
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
