package components

import (
	"time"

	"github.com/automoto/arena-mp/combat"
	"github.com/yohamta/donburi"
)

type ProjectileData struct {
	Template string
	Owner    combat.FighterID
	Damage   float64
	Pierce   uint32
	// Expires is the simulation time the projectile despawns at.
	Expires time.Duration
}

// Hit applies one registered hit and reports whether pierce is used up.
func (p *ProjectileData) Hit() bool {
	if p.Pierce > 0 {
		p.Pierce--
	}
	return p.Pierce == 0
}

var Projectile = donburi.NewComponentType[ProjectileData]()
