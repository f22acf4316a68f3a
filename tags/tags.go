package tags

import "github.com/yohamta/donburi"

var (
	Fighter    = donburi.NewTag().SetName("Fighter")
	Projectile = donburi.NewTag().SetName("Projectile")
	Collider   = donburi.NewTag().SetName("Collider")
	Limb       = donburi.NewTag().SetName("Limb")
	HealthBar  = donburi.NewTag().SetName("HealthBar")
	NameTag    = donburi.NewTag().SetName("NameTag")
	Wall       = donburi.NewTag().SetName("Wall")
	DeathZone  = donburi.NewTag().SetName("DeathZone")
	// Despawn marks an entity to be removed, with its sync group, at the end
	// of the tick.
	Despawn = donburi.NewTag().SetName("Despawn")
)
