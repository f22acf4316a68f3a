package messages

import (
	"testing"

	"github.com/automoto/arena-mp/config"
	"github.com/stretchr/testify/assert"
)

func TestFighterInputHeld(t *testing.T) {
	in := NewFighterInput(3)
	in.Actions[config.ActionLeft] = true
	in.Actions[config.ActionAttackB] = true
	in.Actions[config.ActionUp] = false
	in.Actions[config.ActionCount+4] = true
	in.Actions[config.ActionNone] = true

	held := in.Held()
	assert.True(t, held[config.ActionLeft])
	assert.True(t, held[config.ActionAttackB])
	assert.False(t, held[config.ActionUp])
	assert.False(t, held[config.ActionNone])
}
