package factory

import (
	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/physics"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const wallFriction = 0.8

// CreateArena adds every solid tile and death zone of level, plus a death
// zone below the whole map so nobody falls forever.
func CreateArena(ecs *ecs.ECS, level *leveldata.CollisionData) error {
	for _, r := range level.SolidRects {
		if _, err := CreateWall(ecs, r); err != nil {
			return err
		}
	}
	for _, r := range level.DeathZones {
		if _, err := CreateDeathZone(ecs, r); err != nil {
			return err
		}
	}
	depth := cfg.Match.DeathZoneDepth
	if depth > 0 {
		w := float64(level.MapWidth)
		pit := leveldata.Rect{X: -w, Y: -2 * depth, W: 3 * w, H: depth}
		if _, err := CreateDeathZone(ecs, pit); err != nil {
			return err
		}
	}
	return nil
}

func CreateWall(ecs *ecs.ECS, r leveldata.Rect) (*donburi.Entry, error) {
	return createStatic(ecs, archetypes.Wall, r, combat.ColliderSolid, false)
}

// CreateDeathZone creates an invisible sensor that knocks out any fighter
// touching it.
func CreateDeathZone(ecs *ecs.ECS, r leveldata.Rect) (*donburi.Entry, error) {
	return createStatic(ecs, archetypes.DeathZone, r, combat.ColliderDeath, true)
}

type spawner interface {
	Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry
}

func createStatic(ecs *ecs.ECS, a spawner, r leveldata.Rect, kind combat.ColliderKind, sensor bool) (*donburi.Entry, error) {
	world, ok := World(ecs)
	if !ok {
		return nil, ErrNoSpace
	}
	entry := a.Spawn(ecs)
	c := world.AddStatic(physics.ShapeDef{
		Kind:     physics.ShapeBox,
		Width:    r.W,
		Height:   r.H,
		Friction: wallFriction,
		Sensor:   sensor,
	}, r.Center())
	c.UserData = entry.Entity()
	components.Collider.SetValue(entry, components.ColliderData{Kind: kind, Collider: c})
	return entry, nil
}
