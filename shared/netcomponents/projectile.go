package netcomponents

import "github.com/yohamta/donburi"

type NetProjectileData struct {
	Owner    uint64
	Template string
	Asset    string
	X, Y     float64
	Rot      float64
	ScaleX   float64
	ScaleY   float64
}

var NetProjectile = donburi.NewComponentType[NetProjectileData]()

func LerpNetProjectile(from, to NetProjectileData, t float64) *NetProjectileData {
	out := to
	out.X = lerp(from.X, to.X, t)
	out.Y = lerp(from.Y, to.Y, t)
	out.Rot = lerp(from.Rot, to.Rot, t)
	return &out
}
