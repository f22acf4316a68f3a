package combat

import (
	"testing"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/stretchr/testify/assert"
)

func vec(x, y float64) *gamemath.Vec {
	v := gamemath.V(x, y)
	return &v
}

func f64(v float64) *float64 {
	return &v
}

func TestMovementActionSetThenAdd(t *testing.T) {
	a := MovementAction{
		SetVelocity:   vec(100, 0),
		AddVelocity:   vec(0, 50),
		AddAngVel:     f64(1),
		SetLinDamping: f64(0.5),
		AddLinDamping: f64(0.25),
	}
	m := Motion{Velocity: gamemath.V(-3, -3), AngVel: 2, Force: gamemath.V(1, 1)}

	a.Apply(&m)

	assert.Equal(t, gamemath.V(100, 50), m.Velocity)
	assert.Equal(t, 3.0, m.AngVel)
	assert.Equal(t, gamemath.V(1, 1), m.Force)
	assert.Equal(t, 0.75, m.LinDamping)
}

func TestSpendJumps(t *testing.T) {
	jump := MovementAction{RequireJumps: true, RequiredJumps: 1, JumpsRemoved: 1}

	jumps := uint32(2)
	assert.True(t, jump.SpendJumps(&jumps, false))
	assert.Equal(t, uint32(1), jumps)
	assert.True(t, jump.SpendJumps(&jumps, false))
	assert.Equal(t, uint32(0), jumps)
	assert.False(t, jump.SpendJumps(&jumps, false))

	jumps = 1
	assert.True(t, jump.SpendJumps(&jumps, true))
	assert.Equal(t, uint32(1), jumps, "dominance keeps the counter")

	free := MovementAction{}
	jumps = 0
	assert.True(t, free.SpendJumps(&jumps, false))
}

func TestSpendJumpsNeverUnderflows(t *testing.T) {
	a := MovementAction{RequireJumps: true, RequiredJumps: 1, JumpsRemoved: 3}
	jumps := uint32(2)
	assert.True(t, a.SpendJumps(&jumps, false))
	assert.Equal(t, uint32(0), jumps)
}

func TestControlsFor(t *testing.T) {
	up := &MovementAction{ID: "jump"}
	var c Controls
	c.Pressed[DirUp] = up

	assert.Same(t, up, c.For(DirUp, EdgePressed))
	assert.Nil(t, c.For(DirUp, EdgeReleased))
	assert.Nil(t, c.For(DirUp, EdgeHeld))
}
