package render

import (
	"testing"

	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/stretchr/testify/assert"
)

func TestCameraFlipsAndFits(t *testing.T) {
	level := &leveldata.CollisionData{MapWidth: 640, MapHeight: 320}
	cam := NewCamera(1280, 1280, level, 0)

	assert.Equal(t, 2.0, cam.Scale)
	x, y := cam.ToScreen(0, 0)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 320.0+640.0, y, "world origin is the bottom-left of the letterboxed arena")

	x, y = cam.ToScreen(640, 320)
	assert.Equal(t, 1280.0, x)
	assert.Equal(t, 320.0, y)

	wx, wy := cam.ToWorld(cam.ToScreen(100, 50))
	assert.InDelta(t, 100, wx, 1e-9)
	assert.InDelta(t, 50, wy, 1e-9)
}

func TestCameraMaxScale(t *testing.T) {
	level := &leveldata.CollisionData{MapWidth: 100, MapHeight: 100}
	cam := NewCamera(1000, 1000, level, 1)
	assert.Equal(t, 1.0, cam.Scale)
	assert.Equal(t, 450.0, cam.OffsetX)
}
