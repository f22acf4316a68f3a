// Package leveldata parses arena TMX files into collision data shared by the
// client and the server. Coordinates are converted to the simulation's y-up
// world space on load.
package leveldata

import "github.com/automoto/arena-mp/shared/gamemath"

// CollisionData holds all collision-relevant data parsed from a TMX arena.
type CollisionData struct {
	Name        string
	SolidRects  []Rect
	DeathZones  []Rect
	SpawnPoints []SpawnPoint
	MapWidth    int
	MapHeight   int
	TileWidth   int
	TileHeight  int
}

// Rect is axis aligned; X, Y is the bottom-left corner in y-up space.
type Rect struct {
	X, Y, W, H float64
}

// Center is the middle of the rectangle.
func (r Rect) Center() gamemath.Vec {
	return gamemath.V(r.X+r.W/2, r.Y+r.H/2)
}

// SpawnPoint is where a fighter's core body is centred at round start.
type SpawnPoint struct {
	X, Y  float64
	Index int
}

func (p SpawnPoint) Vec() gamemath.Vec {
	return gamemath.V(p.X, p.Y)
}
