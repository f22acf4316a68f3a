package components

import (
	"image/color"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

// VisualData names the asset an entity draws. Vector assets carry their
// intrinsic size and are anchored at their top-left corner.
type VisualData struct {
	Asset  string
	Vector bool
	Size   gamemath.Vec
	Radius float64
	Color  color.RGBA
}

type NameTagData struct {
	Text string
	Size float64
}

var (
	Visual  = donburi.NewComponentType[VisualData]()
	NameTag = donburi.NewComponentType[NameTagData]()
)
