package leveldata

import (
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/solarlune/resolv"
)

const tagSolid = "solid"

// SpawnGrid answers whether a fighter-sized box at a spawn point overlaps
// solid tiles. Bounds use y-up space; resolv only cares about cell indices.
type SpawnGrid struct {
	space *resolv.Space
}

func NewSpawnGrid(data *CollisionData) *SpawnGrid {
	cw, ch := data.TileWidth, data.TileHeight
	if cw <= 0 {
		cw = 16
	}
	if ch <= 0 {
		ch = 16
	}
	space := resolv.NewSpace(data.MapWidth, data.MapHeight, cw, ch)
	for _, r := range data.SolidRects {
		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
		space.Add(obj)
	}
	return &SpawnGrid{space: space}
}

// Blocked reports whether a w by h box centred on p touches a solid tile.
func (g *SpawnGrid) Blocked(p gamemath.Vec, w, h float64) bool {
	test := resolv.NewObject(p.X-w/2+1, p.Y-h/2+1, w-2, h-2)
	g.space.Add(test)
	defer g.space.Remove(test)
	return test.Check(0, 0, tagSolid) != nil
}

// SafeSpawn moves p up in step increments until the box is clear, trying at
// most maxSteps times. It returns the original point when nothing is clear.
func (g *SpawnGrid) SafeSpawn(p gamemath.Vec, w, h, step float64, maxSteps int) (gamemath.Vec, bool) {
	at := p
	for i := 0; i <= maxSteps; i++ {
		if !g.Blocked(at, w, h) {
			return at, true
		}
		at = at.Add(gamemath.V(0, step))
	}
	return p, false
}
