package components

import (
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/yohamta/donburi"
)

// NetInterpData blends a replicated entity from the state it was drawn at
// when the latest snapshot arrived towards that snapshot.
type NetInterpData struct {
	Fighter     netcomponents.NetFighterData
	Projectile  netcomponents.NetProjectileData
	T           float64
	Initialized bool
}

var NetInterp = donburi.NewComponentType[NetInterpData]()
