package factory

import (
	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/physics"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateSpace(ecs *ecs.ECS, gravity gamemath.Vec, iterations int) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	components.Space.SetValue(space, components.SpaceData{World: physics.NewWorld(gravity, iterations)})
	return space
}

// World returns the physics world of the space singleton.
func World(ecs *ecs.ECS) (*physics.World, bool) {
	entry, ok := components.Space.First(ecs.World)
	if !ok {
		return nil, false
	}
	return components.Space.Get(entry).World, true
}
