package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 500 * time.Millisecond

func TestBufferResolvesPairsInOrder(t *testing.T) {
	cases := []struct {
		first, second BufferInput
		want          ComboKey
	}{
		{InputButtonA, InputButtonA, ComboOneOne},
		{InputButtonA, InputButtonB, ComboOneTwo},
		{InputButtonB, InputButtonA, ComboTwoOne},
		{InputButtonB, InputButtonB, ComboTwoTwo},
	}

	for _, c := range cases {
		var b AttackBuffer
		b.Record(c.first, EdgePressed, time.Second)
		b.Record(c.second, EdgePressed, time.Second+100*time.Millisecond)

		key, ok := b.Resolve(time.Second+200*time.Millisecond, testTimeout)
		require.True(t, ok)
		assert.Equal(t, c.want, key)
		assert.Equal(t, 0, b.Len())
	}
}

func TestBufferSinglePressIsNoop(t *testing.T) {
	var b AttackBuffer
	b.Record(InputButtonA, EdgePressed, time.Second)

	_, ok := b.Resolve(time.Second, testTimeout)
	assert.False(t, ok)
	assert.Equal(t, 1, b.Len())
}

func TestBufferTimesOut(t *testing.T) {
	var b AttackBuffer
	b.Record(InputButtonA, EdgePressed, time.Second)
	b.Record(InputButtonB, EdgePressed, time.Second)

	_, ok := b.Resolve(time.Second+testTimeout+time.Millisecond, testTimeout)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestBufferOnlyCountsPressEdges(t *testing.T) {
	var b AttackBuffer
	b.Record(InputButtonA, EdgeHeld, time.Second)
	b.Record(InputButtonA, EdgeReleased, time.Second)
	b.Record(InputButtonA, EdgeNone, time.Second)
	assert.Equal(t, 0, b.Len())

	b.Record(InputButtonA, EdgePressed, time.Second)
	assert.Equal(t, 1, b.Len())
}

func TestBufferReset(t *testing.T) {
	var b AttackBuffer
	b.Record(InputButtonA, EdgePressed, time.Second)
	b.Record(InputReset, EdgePressed, time.Second)
	assert.Equal(t, 0, b.Len())

	b.Record(InputButtonB, EdgePressed, 2*time.Second)
	_, ok := b.Resolve(2*time.Second, testTimeout)
	assert.False(t, ok)
}

func TestBufferDropsThirdPress(t *testing.T) {
	var b AttackBuffer
	b.Record(InputButtonB, EdgePressed, time.Second)
	b.Record(InputButtonA, EdgePressed, time.Second)
	b.Record(InputButtonB, EdgePressed, time.Second)
	assert.Equal(t, []AttackKey{ButtonB, ButtonA}, b.Keys())
	assert.Equal(t, "21", b.String())

	key, ok := b.Resolve(time.Second, testTimeout)
	require.True(t, ok)
	assert.Equal(t, ComboTwoOne, key)
}

func TestComboKeyString(t *testing.T) {
	assert.Equal(t, "1-1", ComboOneOne.String())
	assert.Equal(t, "2-1", ComboTwoOne.String())
}
