package render

import "github.com/automoto/arena-mp/shared/leveldata"

// Camera maps y-up world space onto the y-down screen, fitting the whole
// arena in view.
type Camera struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	WorldH  float64
}

// NewCamera centres level on a screenW x screenH screen. maxScale caps the
// zoom; 0 means no cap.
func NewCamera(screenW, screenH int, level *leveldata.CollisionData, maxScale float64) Camera {
	w, h := float64(level.MapWidth), float64(level.MapHeight)
	if w <= 0 || h <= 0 {
		return Camera{Scale: 1, WorldH: float64(screenH)}
	}
	scale := min(float64(screenW)/w, float64(screenH)/h)
	if maxScale > 0 {
		scale = min(scale, maxScale)
	}
	return Camera{
		Scale:   scale,
		OffsetX: (float64(screenW) - w*scale) / 2,
		OffsetY: (float64(screenH) - h*scale) / 2,
		WorldH:  h,
	}
}

// ToScreen converts a world point to screen pixels.
func (c Camera) ToScreen(x, y float64) (float64, float64) {
	return c.OffsetX + x*c.Scale, c.OffsetY + (c.WorldH-y)*c.Scale
}

// ToWorld is the inverse of ToScreen.
func (c Camera) ToWorld(sx, sy float64) (float64, float64) {
	return (sx - c.OffsetX) / c.Scale, c.WorldH - (sy-c.OffsetY)/c.Scale
}
