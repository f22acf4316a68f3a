package systems

import (
	"testing"

	"github.com/automoto/arena-mp/bots"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brain(t *testing.T, src string) *bots.Brain {
	t.Helper()
	sc, err := bots.Compile("test", []byte(src))
	require.NoError(t, err)
	return sc.NewBrain()
}

func TestBotChasesNearestFighter(t *testing.T) {
	s := newSim(t, 1, 2)
	s.AddBot(1, brain(t, `
if has_target {
	right = target.x > self.x
	left = target.x < self.x
}
`))
	require.True(t, s.IsBot(1))
	assert.False(t, s.IsBot(2))

	s.Step(dt)
	f1, ok := s.Fighter(1)
	require.True(t, ok)
	assert.Equal(t, components.Buttons{}, components.Input.Get(f1).Current, "inactive bots hold nothing")

	s.BotsActive = true
	s.Step(dt)
	in := components.Input.Get(f1)
	assert.True(t, in.Current[cfg.ActionRight])
	assert.False(t, in.Current[cfg.ActionLeft])
	assert.Equal(t, combat.FacingRight, components.Fighter.Get(f1).Facing())
}

func TestBotScriptErrorReleasesInput(t *testing.T) {
	s := newSim(t, 1)
	s.BotsActive = true
	s.AddBot(1, brain(t, `
right = true
x := 1 / (tick - 1)
`))

	s.Step(dt)
	f1, _ := s.Fighter(1)
	assert.True(t, components.Input.Get(f1).Current[cfg.ActionRight])

	s.Step(dt)
	assert.False(t, components.Input.Get(f1).Current[cfg.ActionRight])
}

func TestBotForgottenOnDespawn(t *testing.T) {
	s := newSim(t, 1)
	s.AddBot(1, brain(t, `up = true`))
	s.RemoveFighter(1)
	assert.False(t, s.IsBot(1))
}

func TestBotSeesWaypointOnArena(t *testing.T) {
	s := newSim(t, 1, 2)
	require.NoError(t, s.LoadArena(&leveldata.CollisionData{
		MapWidth:   640,
		MapHeight:  480,
		TileWidth:  32,
		TileHeight: 32,
		SolidRects: []leveldata.Rect{{X: 0, Y: 0, W: 640, H: 32}},
	}))
	s.BotsActive = true
	s.AddBot(1, brain(t, `
right = has_waypoint && waypoint.x > self.x
`))

	s.Step(dt)
	f1, _ := s.Fighter(1)
	assert.True(t, components.Input.Get(f1).Current[cfg.ActionRight])
}
