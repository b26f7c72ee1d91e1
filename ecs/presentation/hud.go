package presentation

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// HUDSystem draws the score counter.
type HUDSystem struct {
	face  ebtext.Face
	Debug bool
}

func NewHUDSystem(debug bool) *HUDSystem {
	return &HUDSystem{face: ebtext.NewGoXFace(basicfont.Face7x13), Debug: debug}
}

func (h *HUDSystem) Update(*ecs.World) {}

// ScoreLine formats the counter shown in the corner.
func ScoreLine(r component.Round) string {
	return fmt.Sprintf("Points: %d / %d", r.Score, r.WinScore)
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}
	e, ok := ecs.First(w, component.RoundComponent.Kind())
	if !ok {
		return
	}
	round, _ := ecs.Get(w, e, component.RoundComponent.Kind())

	h.drawLine(screen, ScoreLine(*round), 16, 16, colornames.White)
	if h.Debug {
		line := fmt.Sprintf("phase %s  frame %d  tps %.1f", round.Phase, round.Frames, ebiten.ActualTPS())
		h.drawLine(screen, line, 16, 36, colornames.Lightgray)
	}
}

func (h *HUDSystem) drawLine(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(2, 2)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, s, h.face, op)
}
