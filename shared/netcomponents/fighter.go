package netcomponents

import "github.com/yohamta/donburi"

// NetPartData is one drawn piece of a fighter: its core visual, a limb, or
// the name tag.
type NetPartData struct {
	Asset string
	X, Y  float64
	Rot    float64
	ScaleX float64
	ScaleY float64
	Z      float64
}

type NetFighterData struct {
	FighterID uint64
	Name      string
	Character string
	X, Y      float64
	Rot       float64
	VelX      float64
	VelY      float64
	Facing    uint8
	Jumps     uint32
	Health    float64
	MaxHealth float64
	// HealthShown is the eased bar fill in [0, 1].
	HealthShown float64
	BarX, BarY  float64
	TagX, TagY  float64
	Parts       []NetPartData
}

var NetFighter = donburi.NewComponentType[NetFighterData]()

// LerpNetFighter interpolates the body and every part that exists in both
// states. Discrete fields come from the newer state.
func LerpNetFighter(from, to NetFighterData, t float64) *NetFighterData {
	out := to
	out.X = lerp(from.X, to.X, t)
	out.Y = lerp(from.Y, to.Y, t)
	out.Rot = lerp(from.Rot, to.Rot, t)
	out.HealthShown = lerp(from.HealthShown, to.HealthShown, t)
	out.BarX = lerp(from.BarX, to.BarX, t)
	out.BarY = lerp(from.BarY, to.BarY, t)
	out.TagX = lerp(from.TagX, to.TagX, t)
	out.TagY = lerp(from.TagY, to.TagY, t)
	if len(from.Parts) == len(to.Parts) {
		out.Parts = make([]NetPartData, len(to.Parts))
		for i := range to.Parts {
			p := to.Parts[i]
			p.X = lerp(from.Parts[i].X, to.Parts[i].X, t)
			p.Y = lerp(from.Parts[i].Y, to.Parts[i].Y, t)
			p.Rot = lerp(from.Parts[i].Rot, to.Parts[i].Rot, t)
			out.Parts[i] = p
		}
	}
	return &out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
