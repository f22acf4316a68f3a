package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirSetFacing(t *testing.T) {
	tests := []struct {
		name string
		dirs []Dir
		want Facing
	}{
		{"empty", nil, FacingNone},
		{"up and down cancel", []Dir{DirUp, DirDown}, FacingNone},
		{"left and right cancel", []Dir{DirLeft, DirRight}, FacingNone},
		{"all four cancel", []Dir{DirUp, DirDown, DirLeft, DirRight}, FacingNone},
		{"up left", []Dir{DirUp, DirLeft}, FacingUpLeft},
		{"up right", []Dir{DirUp, DirRight}, FacingUpRight},
		{"down left", []Dir{DirDown, DirLeft}, FacingDownLeft},
		{"down right", []Dir{DirDown, DirRight}, FacingDownRight},
		{"vertical cancel keeps left", []Dir{DirUp, DirDown, DirLeft}, FacingLeft},
		{"horizontal cancel keeps down", []Dir{DirLeft, DirRight, DirDown}, FacingDown},
		{"up", []Dir{DirUp}, FacingUp},
		{"right", []Dir{DirRight}, FacingRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDirSet(tt.dirs...).Facing())
		})
	}
}

func TestDirSetResolveDoesNotMutate(t *testing.T) {
	s := NewDirSet(DirUp, DirDown)
	_ = s.Facing()
	assert.True(t, s.Has(DirUp))
	assert.True(t, s.Has(DirDown))

	s.Set(DirDown, false)
	assert.Equal(t, FacingUp, s.Facing())
}

func TestPerFacing(t *testing.T) {
	var p PerFacing
	p[FacingLeft] = "shot_left"
	assert.Equal(t, "shot_left", p.For(FacingLeft))
	assert.Equal(t, "", p.For(FacingRight))
	assert.Equal(t, "", p.For(Facing(200)))
}

func TestLookAnglesOffset(t *testing.T) {
	off := DefaultLookAngles.Offset(FacingUp, 10)
	assert.InDelta(t, 0, off.X, 1e-9)
	assert.InDelta(t, 10, off.Y, 1e-9)

	off = DefaultLookAngles.Offset(FacingLeft, 4)
	assert.InDelta(t, -4, off.X, 1e-9)
	assert.InDelta(t, 0, off.Y, 1e-9)

	off = DefaultLookAngles.Offset(FacingNone, 3)
	assert.InDelta(t, 3, off.X, 1e-9)
}
