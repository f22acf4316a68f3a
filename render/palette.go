package render

import "image/color"

var (
	Background  = color.RGBA{24, 26, 34, 255}
	Solid       = color.RGBA{92, 96, 110, 255}
	DeathZone   = color.RGBA{140, 30, 40, 120}
	BarBack     = color.RGBA{40, 40, 40, 220}
	BarFill     = color.RGBA{80, 200, 90, 255}
	BarLow      = color.RGBA{220, 70, 60, 255}
	TagText     = color.RGBA{235, 235, 235, 255}
	Missing     = color.RGBA{255, 0, 255, 255}
	DebugCore   = color.RGBA{0, 255, 255, 255}
	DebugVel    = color.RGBA{255, 220, 0, 255}
	DebugFacing = color.RGBA{0, 255, 0, 255}
	Overlay     = color.RGBA{0, 0, 0, 150}
	White       = color.RGBA{255, 255, 255, 255}
	Highlight   = color.RGBA{255, 170, 60, 255}
)
