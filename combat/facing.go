// Package combat holds the per-fighter combat state machines: facing
// resolution, the attack buffer, cooldowns, attack graphs and the deferred
// movement batches that pair spawned projectiles with movement effects.
//
// Nothing in here touches physics or rendering; the systems package drives it.
package combat

import "github.com/automoto/arena-mp/shared/gamemath"

// Dir is one raw direction flag.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// DirSet is the set of direction flags a fighter currently holds. Flags are
// set on press and cleared on release, so opposite flags can coexist.
type DirSet struct {
	up, down, left, right bool
}

func NewDirSet(dirs ...Dir) DirSet {
	var s DirSet
	for _, d := range dirs {
		s.Set(d, true)
	}
	return s
}

func (s *DirSet) Set(d Dir, on bool) {
	switch d {
	case DirUp:
		s.up = on
	case DirDown:
		s.down = on
	case DirLeft:
		s.left = on
	case DirRight:
		s.right = on
	}
}

func (s DirSet) Has(d Dir) bool {
	switch d {
	case DirUp:
		return s.up
	case DirDown:
		return s.down
	case DirLeft:
		return s.left
	case DirRight:
		return s.right
	}
	return false
}

// Facing is one of the nine canonical facings.
type Facing uint8

const (
	FacingNone Facing = iota
	FacingUp
	FacingDown
	FacingLeft
	FacingRight
	FacingUpLeft
	FacingUpRight
	FacingDownLeft
	FacingDownRight
	facingCount
)

// Facings lists every canonical facing.
var Facings = [facingCount]Facing{
	FacingNone, FacingUp, FacingDown, FacingLeft, FacingRight,
	FacingUpLeft, FacingUpRight, FacingDownLeft, FacingDownRight,
}

var facingNames = [facingCount]string{
	"none", "up", "down", "left", "right",
	"up_left", "up_right", "down_left", "down_right",
}

func (f Facing) String() string {
	if f < facingCount {
		return facingNames[f]
	}
	return "none"
}

// Facing collapses the held flags into a canonical facing. Opposite pairs
// cancel out before the lookup, so {up, down, left} resolves to left.
func (s DirSet) Facing() Facing {
	if s.up && s.down {
		s.up, s.down = false, false
	}
	if s.left && s.right {
		s.left, s.right = false, false
	}

	switch {
	case s.up && s.left:
		return FacingUpLeft
	case s.up && s.right:
		return FacingUpRight
	case s.down && s.left:
		return FacingDownLeft
	case s.down && s.right:
		return FacingDownRight
	case s.up:
		return FacingUp
	case s.down:
		return FacingDown
	case s.left:
		return FacingLeft
	case s.right:
		return FacingRight
	}
	return FacingNone
}

// PerFacing holds one symbolic id per canonical facing.
type PerFacing [facingCount]string

func (p PerFacing) For(f Facing) string {
	if f >= facingCount {
		f = FacingNone
	}
	return p[f]
}

// LookAngles is the aim angle, in degrees, used for each facing.
type LookAngles [facingCount]float64

// DefaultLookAngles points right at 0 and goes counter-clockwise in 45 degree
// steps. None aims right.
var DefaultLookAngles = LookAngles{
	FacingNone:      0,
	FacingRight:     0,
	FacingUpRight:   45,
	FacingUp:        90,
	FacingUpLeft:    135,
	FacingLeft:      180,
	FacingDownLeft:  225,
	FacingDown:      270,
	FacingDownRight: 315,
}

// Radians returns the aim angle for f.
func (a LookAngles) Radians(f Facing) float64 {
	if f >= facingCount {
		f = FacingNone
	}
	return gamemath.Radians(a[f])
}

// Offset returns the point radius units away from the origin along f's angle.
func (a LookAngles) Offset(f Facing, radius float64) gamemath.Vec {
	return gamemath.V(radius, 0).Rotate(a.Radians(f))
}
