package components

import (
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

// TransformData is the visual transform of an entity in world space.
type TransformData struct {
	Pos   gamemath.Vec
	Rot   float64
	Scale gamemath.Vec
	Z     float64
}

// Dependent is one entity glued to a sync group's primary body.
type Dependent struct {
	Entity          donburi.Entity
	InheritRotation bool
}

// SyncGroupData lives on the entity owning the primary body. Dependents are
// weak handles and may already be gone.
type SyncGroupData struct {
	Dependents []Dependent
}

func (g *SyncGroupData) Add(e donburi.Entity, inheritRotation bool) {
	g.Dependents = append(g.Dependents, Dependent{Entity: e, InheritRotation: inheritRotation})
}

// SyncOffsetData is a fixed world-space offset added after the copy.
type SyncOffsetData struct {
	Offset gamemath.Vec
}

// LookData moves a dependent around its fighter to follow the facing.
type LookData struct {
	Fighter donburi.Entity
	Radius  float64
	Angles  combat.LookAngles
}

var (
	Transform  = donburi.NewComponentType[TransformData]()
	SyncGroup  = donburi.NewComponentType[SyncGroupData]()
	SyncOffset = donburi.NewComponentType[SyncOffsetData]()
	Look       = donburi.NewComponentType[LookData]()
)
