package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginIfReady(t *testing.T) {
	table := NewCooldownTable()
	const fighter FighterID = 1
	d := 2 * time.Second

	assert.True(t, table.BeginIfReady(fighter, ComboOneTwo, d, 0))
	assert.False(t, table.BeginIfReady(fighter, ComboOneTwo, d, time.Second))

	// other keys and other fighters are independent
	assert.True(t, table.BeginIfReady(fighter, ComboTwoTwo, d, time.Second))
	assert.True(t, table.BeginIfReady(2, ComboOneTwo, d, time.Second))

	assert.True(t, table.BeginIfReady(fighter, ComboOneTwo, d, d))
}

func TestPrune(t *testing.T) {
	table := NewCooldownTable()
	table.BeginIfReady(1, ComboOneOne, time.Second, 0)
	table.BeginIfReady(1, ComboTwoTwo, 3*time.Second, 0)
	assert.Equal(t, 2, table.Len())

	table.Prune(time.Second)
	assert.Equal(t, 1, table.Len())

	rem, ok := table.Remaining(1, ComboTwoTwo, time.Second)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, rem)

	_, ok = table.Remaining(1, ComboOneOne, time.Second)
	assert.False(t, ok)

	table.Prune(3 * time.Second)
	assert.Equal(t, 0, table.Len())
}

func TestRemainingNeverNegative(t *testing.T) {
	e := CooldownEntry{Start: time.Second, Duration: time.Second}
	assert.Equal(t, time.Duration(0), e.Remaining(10*time.Second))
	assert.True(t, e.Expired(2*time.Second))
	assert.False(t, e.Expired(1500*time.Millisecond))
}

func TestForget(t *testing.T) {
	table := NewCooldownTable()
	table.BeginIfReady(7, ComboOneOne, time.Minute, 0)
	table.Forget(7)
	assert.True(t, table.BeginIfReady(7, ComboOneOne, time.Minute, time.Second))
}
