package fonts

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

type FontName string

const (
	Regular FontName = "regular"
	Bold    FontName = "bold"
	Title   FontName = "title"
	Small   FontName = "small"
)

// Font is a face drawn at a fixed scale. Bitmap faces do not resize, so
// larger sizes are drawn scaled up.
type Font struct {
	Face  text.Face
	Scale float64
}

func (f FontName) Get() Font {
	return getFont(f)
}

var (
	fonts = map[FontName]Font{}
)

// Load registers face under name, drawn at scale.
func Load(name FontName, face font.Face, scale float64) {
	fonts[name] = Font{Face: text.NewGoXFace(face), Scale: scale}
}

// LoadDefaults registers every named font on the built-in bitmap face.
func LoadDefaults() {
	Load(Small, basicfont.Face7x13, 1)
	Load(Regular, basicfont.Face7x13, 1)
	Load(Bold, basicfont.Face7x13, 2)
	Load(Title, basicfont.Face7x13, 3)
}

func getFont(name FontName) Font {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}

// Measure returns the drawn size of s.
func (f Font) Measure(s string) (float64, float64) {
	w, h := text.Measure(s, f.Face, 0)
	return w * f.Scale, h * f.Scale
}

// DrawCentered draws s with its centre at x, y.
func (f Font) DrawCentered(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	w, h := f.Measure(s)
	f.Draw(dst, s, x-w/2, y-h/2, clr)
}

// Draw draws s with its top-left corner at x, y.
func (f Font) Draw(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(f.Scale, f.Scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, f.Face, op)
}
