package bots

import (
	"testing"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ledgeLevel is a 10x6 cell arena with a floor and a raised block on the
// right half.
func ledgeLevel() *leveldata.CollisionData {
	return &leveldata.CollisionData{
		MapWidth:   320,
		MapHeight:  192,
		TileWidth:  32,
		TileHeight: 32,
		SolidRects: []leveldata.Rect{
			{X: 0, Y: 0, W: 320, H: 32},
			{X: 192, Y: 32, W: 128, H: 32},
		},
	}
}

func TestNavGridWalkable(t *testing.T) {
	g := NewNavGrid(ledgeLevel(), 32)
	require.Equal(t, 10, g.Width)
	require.Equal(t, 6, g.Height)

	assert.False(t, g.Nodes[0][0].Walkable, "floor")
	assert.True(t, g.Nodes[1][0].Walkable)
	assert.False(t, g.Nodes[1][7].Walkable, "ledge")
	assert.True(t, g.Nodes[2][7].Walkable)
	assert.True(t, g.hasGroundBelow(7, 2))
	assert.False(t, g.hasGroundBelow(7, 4))
}

func TestFindPathRunsFromStart(t *testing.T) {
	g := NewNavGrid(ledgeLevel(), 32)
	path := g.FindPath(gamemath.V(48, 48), gamemath.V(272, 80))
	require.NotEmpty(t, path)

	assert.Equal(t, 1, path[0].X)
	assert.Equal(t, 1, path[0].Y)
	last := path[len(path)-1]
	assert.Equal(t, 8, last.X)
	assert.Equal(t, 2, last.Y)
	for _, n := range path {
		assert.True(t, n.Walkable)
	}
}

func TestWaypointHeadsTowardGoal(t *testing.T) {
	g := NewNavGrid(ledgeLevel(), 32)

	wp, ok := g.Waypoint(gamemath.V(48, 48), gamemath.V(272, 80))
	require.True(t, ok)
	assert.Greater(t, wp.X, 48.0)

	wp, ok = g.Waypoint(gamemath.V(272, 80), gamemath.V(48, 48))
	require.True(t, ok)
	assert.Less(t, wp.X, 272.0)

	goal := gamemath.V(50, 50)
	wp, ok = g.Waypoint(gamemath.V(48, 48), goal)
	require.True(t, ok)
	assert.Equal(t, goal, wp, "already in the goal cell")
}

func TestWaypointFromInsideSolid(t *testing.T) {
	g := NewNavGrid(ledgeLevel(), 32)
	_, ok := g.Waypoint(gamemath.V(16, 16), gamemath.V(272, 80))
	assert.True(t, ok, "start snaps to the nearest open cell")
}
