package render

import (
	"fmt"
	"math"

	"github.com/automoto/arena-mp/fonts"
	"github.com/automoto/arena-mp/scenes"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func smallFont() fonts.Font { return fonts.Small.Get() }

// Banner is the large centred line for the current phase. It is empty
// while fighting.
func Banner(m netcomponents.NetMatchData, fighters []netcomponents.NetFighterData) string {
	switch m.Phase {
	case scenes.PhaseCountdown:
		if len(fighters) < scenes.MinFighters {
			return "Waiting for fighters"
		}
		return fmt.Sprintf("%d", int(math.Ceil(m.Countdown)))
	case scenes.PhaseOver:
		if m.Draw || !m.HasWinner {
			return "Draw"
		}
		for _, f := range fighters {
			if f.FighterID == m.Winner {
				return f.Name + " wins"
			}
		}
		return fmt.Sprintf("Fighter %d wins", m.Winner)
	}
	return ""
}

func drawHUD(screen *ebiten.Image, m netcomponents.NetMatchData, fighters []netcomponents.NetFighterData) {
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	small := smallFont()
	for i, f := range fighters {
		line := fmt.Sprintf("%s  %s  %.0f/%.0f", f.Name, f.Character, f.Health, f.MaxHealth)
		small.Draw(screen, line, 8, 8+float64(i)*16, White)
	}

	banner := Banner(m, fighters)
	if banner == "" {
		return
	}
	title := fonts.Title.Get()
	if m.Phase == scenes.PhaseOver {
		vector.FillRect(screen, 0, 0, float32(w), float32(h), Overlay, false)
	}
	title.DrawCentered(screen, banner, w/2, h/3, Highlight)
}

func drawStatus(screen *ebiten.Image, status string) {
	if status == "" {
		return
	}
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	fonts.Bold.Get().DrawCentered(screen, status, w/2, h/2, White)
}
