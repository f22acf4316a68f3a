package components

import (
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/physics"
	"github.com/yohamta/donburi"
)

// BodyData is a dynamic body and the collider entities attached to it.
type BodyData struct {
	*physics.Body
	Colliders []donburi.Entity
}

// ColliderData marks a collider entity. Its Parent is the entity owning the
// body it is attached to; arena colliders have none.
type ColliderData struct {
	Kind     combat.ColliderKind
	Collider *physics.Collider
}

type ParentData struct {
	Entity donburi.Entity
}

// SpaceData is the singleton holding the physics world.
type SpaceData struct {
	World *physics.World
}

var (
	Space    = donburi.NewComponentType[SpaceData]()
	Body     = donburi.NewComponentType[BodyData]()
	Collider = donburi.NewComponentType[ColliderData]()
	Parent   = donburi.NewComponentType[ParentData]()
)
