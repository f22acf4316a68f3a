package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJumpsLandAndLeave(t *testing.T) {
	j := NewJumps(3, false)
	j.Available = 0

	j.Land()
	assert.Equal(t, uint32(3), j.Available)
	assert.True(t, j.Dominance)

	j.Leave()
	assert.Equal(t, uint32(2), j.Available)
	assert.False(t, j.Dominance)
}

func TestJumpsDecayRespectsDominance(t *testing.T) {
	j := NewJumps(2, false)
	j.Dominance = true
	j.Decay()
	assert.Equal(t, uint32(2), j.Available)

	j.Dominance = false
	j.Decay()
	assert.Equal(t, uint32(1), j.Available)
}

func TestJumpsEnforce(t *testing.T) {
	j := NewJumps(2, false)
	j.Available = 0
	j.Enforce()
	assert.Equal(t, uint32(0), j.Available)

	j.Dominance = true
	j.Enforce()
	assert.Equal(t, uint32(2), j.Available)

	locked := NewJumps(1, true)
	locked.Available = 0
	locked.Enforce()
	assert.Equal(t, uint32(1), locked.Available)
}

func TestJumpsZeroMax(t *testing.T) {
	j := NewJumps(0, false)
	j.Leave()
	assert.Equal(t, uint32(0), j.Available)
}
