// Package render draws the arena from fighter and projectile views. It only
// reads replicated state, so the same code draws a local match and a
// networked one.
package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/automoto/arena-mp/chardef"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/automoto/arena-mp/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Frame is everything drawn in one frame.
type Frame struct {
	Level       *leveldata.CollisionData
	Fighters    []netcomponents.NetFighterData
	Projectiles []netcomponents.NetProjectileData
	Match       netcomponents.NetMatchData
	HasMatch    bool
	// Colliders is only available when the simulation runs in-process.
	Colliders []systems.ColliderView
	// Status replaces the HUD with a single centred line when set.
	Status string
}

// Renderer draws frames. Asset shapes and bar sizes come from the character
// catalog.
type Renderer struct {
	Catalog   *chardef.Catalog
	Debug     bool
	MaxScale  float64
	pixel     *ebiten.Image
	lastLevel *leveldata.CollisionData
	cam       Camera
	screenW   int
	screenH   int
}

func NewRenderer(catalog *chardef.Catalog) *Renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Renderer{Catalog: catalog, pixel: pixel}
}

// Camera returns the camera used for the last frame.
func (r *Renderer) Camera() Camera {
	return r.cam
}

func (r *Renderer) Draw(screen *ebiten.Image, f Frame) {
	screen.Fill(Background)
	if f.Level == nil {
		drawStatus(screen, f.Status)
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if f.Level != r.lastLevel || w != r.screenW || h != r.screenH {
		r.cam = NewCamera(w, h, f.Level, r.MaxScale)
		r.lastLevel, r.screenW, r.screenH = f.Level, w, h
	}

	r.drawLevel(screen, f.Level)
	chars := r.characters(f.Fighters)
	r.drawParts(screen, f.Fighters, chars)
	r.drawProjectiles(screen, f.Projectiles, chars)
	for _, fv := range f.Fighters {
		r.drawHealthBar(screen, fv, chars[fv.FighterID])
		r.drawNameTag(screen, fv)
	}
	if r.Debug {
		r.drawColliders(screen, f.Colliders)
		r.drawDebug(screen, f.Fighters)
	}
	if f.Status != "" {
		drawStatus(screen, f.Status)
		return
	}
	if f.HasMatch {
		drawHUD(screen, f.Match, f.Fighters)
	}
}

func (r *Renderer) characters(fighters []netcomponents.NetFighterData) map[uint64]*chardef.Character {
	out := make(map[uint64]*chardef.Character, len(fighters))
	if r.Catalog == nil {
		return out
	}
	for _, fv := range fighters {
		if ch, err := r.Catalog.Get(fv.Character); err == nil {
			out[fv.FighterID] = ch
		}
	}
	return out
}

func (r *Renderer) drawLevel(screen *ebiten.Image, level *leveldata.CollisionData) {
	for _, rect := range level.SolidRects {
		r.fillWorldRect(screen, rect, Solid)
	}
	for _, rect := range level.DeathZones {
		r.fillWorldRect(screen, rect, DeathZone)
	}
}

// fillWorldRect fills an axis aligned rect whose X, Y is its bottom-left.
func (r *Renderer) fillWorldRect(screen *ebiten.Image, rect leveldata.Rect, clr color.Color) {
	x, y := r.cam.ToScreen(rect.X, rect.Y+rect.H)
	vector.FillRect(screen, float32(x), float32(y),
		float32(rect.W*r.cam.Scale), float32(rect.H*r.cam.Scale), clr, false)
}

type drawnPart struct {
	part netcomponents.NetPartData
	char *chardef.Character
}

func (r *Renderer) drawParts(screen *ebiten.Image, fighters []netcomponents.NetFighterData, chars map[uint64]*chardef.Character) {
	var parts []drawnPart
	for _, fv := range fighters {
		for _, p := range fv.Parts {
			parts = append(parts, drawnPart{part: p, char: chars[fv.FighterID]})
		}
	}
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].part.Z < parts[j].part.Z })
	for _, dp := range parts {
		p := dp.part
		r.drawAsset(screen, lookupAsset(dp.char, p.Asset), p.X, p.Y, p.Rot, p.ScaleX, p.ScaleY)
	}
}

func (r *Renderer) drawProjectiles(screen *ebiten.Image, projectiles []netcomponents.NetProjectileData, chars map[uint64]*chardef.Character) {
	for _, p := range projectiles {
		r.drawAsset(screen, lookupAsset(chars[p.Owner], p.Asset), p.X, p.Y, p.Rot, p.ScaleX, p.ScaleY)
	}
}

func lookupAsset(ch *chardef.Character, id string) *chardef.AssetSpec {
	if ch == nil || id == "" {
		return nil
	}
	a, ok := ch.Asset(id)
	if !ok {
		return nil
	}
	return &a
}

// drawAsset draws a vector asset as a rotated box anchored at its top-left
// corner; anything else is a disc centred on x, y.
func (r *Renderer) drawAsset(screen *ebiten.Image, spec *chardef.AssetSpec, x, y, rot, sx, sy float64) {
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	px, py := r.cam.ToScreen(x, y)
	if spec == nil {
		vector.FillCircle(screen, float32(px), float32(py), float32(4*r.cam.Scale), Missing, true)
		return
	}
	if spec.Vector {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(spec.Size.X*sx*r.cam.Scale, spec.Size.Y*sy*r.cam.Scale)
		op.GeoM.Rotate(-rot)
		op.GeoM.Translate(px, py)
		op.ColorScale.ScaleWithColor(spec.Color)
		screen.DrawImage(r.pixel, op)
		return
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = max(spec.Size.X, spec.Size.Y) / 2
	}
	radius *= max(math.Abs(sx), math.Abs(sy))
	vector.FillCircle(screen, float32(px), float32(py), float32(radius*r.cam.Scale), spec.Color, true)
}

func (r *Renderer) drawHealthBar(screen *ebiten.Image, fv netcomponents.NetFighterData, ch *chardef.Character) {
	if ch == nil || ch.HealthBar.Width <= 0 || ch.HealthBar.Height <= 0 {
		return
	}
	w := ch.HealthBar.Width * r.cam.Scale
	h := ch.HealthBar.Height * r.cam.Scale
	cx, cy := r.cam.ToScreen(fv.BarX, fv.BarY)
	x, y := cx-w/2, cy-h/2
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), BarBack, false)

	shown := min(max(fv.HealthShown, 0), 1)
	fill := BarFill
	if shown < 0.25 {
		fill = BarLow
	}
	vector.FillRect(screen, float32(x), float32(y), float32(w*shown), float32(h), fill, false)
}

func (r *Renderer) drawNameTag(screen *ebiten.Image, fv netcomponents.NetFighterData) {
	if fv.Name == "" {
		return
	}
	x, y := r.cam.ToScreen(fv.TagX, fv.TagY)
	smallFont().DrawCentered(screen, fv.Name, x, y, TagText)
}

func (r *Renderer) drawColliders(screen *ebiten.Image, colliders []systems.ColliderView) {
	for _, c := range colliders {
		if c.Static && c.Kind == combat.ColliderSolid {
			continue
		}
		clr := colliderColor(c.Kind)
		x, y := r.cam.ToScreen(c.L, c.T)
		vector.StrokeRect(screen, float32(x), float32(y),
			float32((c.R-c.L)*r.cam.Scale), float32((c.T-c.B)*r.cam.Scale), 1, clr, false)
	}
}

func colliderColor(k combat.ColliderKind) color.RGBA {
	switch k {
	case combat.ColliderJumpReset:
		return DebugFacing
	case combat.ColliderDeath:
		return BarLow
	}
	return DebugCore
}

// drawDebug marks each core body with its velocity and facing.
func (r *Renderer) drawDebug(screen *ebiten.Image, fighters []netcomponents.NetFighterData) {
	for _, fv := range fighters {
		x, y := r.cam.ToScreen(fv.X, fv.Y)
		vx, vy := r.cam.ToScreen(fv.X+fv.VelX*0.1, fv.Y+fv.VelY*0.1)
		vector.StrokeLine(screen, float32(x), float32(y), float32(vx), float32(vy), 1, DebugVel, false)

		if facing := combat.Facing(fv.Facing); facing != combat.FacingNone {
			dir := combat.DefaultLookAngles.Offset(facing, 24)
			fx, fy := r.cam.ToScreen(fv.X+dir.X, fv.Y+dir.Y)
			vector.StrokeLine(screen, float32(x), float32(y), float32(fx), float32(fy), 1, DebugFacing, false)
		}

		vector.StrokeLine(screen, float32(x-3), float32(y), float32(x+3), float32(y), 1, DebugCore, false)
		vector.StrokeLine(screen, float32(x), float32(y-3), float32(x), float32(y+3), 1, DebugCore, false)
	}
}
