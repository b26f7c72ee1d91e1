package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
)

const (
	laneWidth  = 7
	headerRows = 2
)

var (
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorDarkGoldenrod)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	stylePowerup = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// LaneView draws the corridor top-down: spawn depth at the top, the camera
// at the bottom, one column per lane.
type LaneView struct{}

func NewLaneView() *LaneView {
	return &LaneView{}
}

func (v *LaneView) Update(*ecs.World) {}

// layout maps world positions to cells for a screen size.
type layout struct {
	left   int
	top    int
	rows   int
	spawnZ float64
	camZ   float64
}

func newLayout(width, height int, scroll component.Scroll) layout {
	rows := max(height-headerRows, 3)
	return layout{
		left:   max((width-laneWidth*lane.Count)/2, 0),
		top:    headerRows,
		rows:   rows,
		spawnZ: scroll.SpawnZ,
		camZ:   scroll.CameraZ,
	}
}

func (l layout) column(x float64) int {
	return l.left + int(lane.Nearest(x))*laneWidth + laneWidth/2
}

// row returns the screen row of depth z; ok is false outside the corridor.
func (l layout) row(z float64) (int, bool) {
	span := l.camZ - l.spawnZ
	if span <= 0 || z < l.spawnZ || z > l.camZ {
		return 0, false
	}
	return l.top + int((z-l.spawnZ)/span*float64(l.rows-1)), true
}

func (v *LaneView) Draw(w *ecs.World, screen tcell.Screen) {
	if w == nil || screen == nil {
		return
	}
	screen.Clear()

	var scroll component.Scroll
	if e, ok := ecs.First(w, component.ScrollComponent.Kind()); ok {
		s, _ := ecs.Get(w, e, component.ScrollComponent.Kind())
		scroll = *s
	}
	width, height := screen.Size()
	l := newLayout(width, height, scroll)

	for y := l.top; y < l.top+l.rows; y++ {
		for i := 0; i <= lane.Count; i++ {
			screen.SetContent(l.left+i*laneWidth, y, '|', nil, styleBorder)
		}
	}

	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle, t *component.Transform) {
		y, ok := l.row(t.Z)
		if !ok {
			return
		}
		glyph, style := '*', stylePowerup
		if o.Category == component.CategoryEnemy {
			glyph, style = '#', styleEnemy
		}
		screen.SetContent(l.column(t.X), y, glyph, nil, style)
	})

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Player, t *component.Transform) {
		y, ok := l.row(t.Z)
		if !ok {
			return
		}
		glyph := '@'
		if !p.Grounded(t.Y) {
			glyph = '^'
		}
		screen.SetContent(l.column(t.X), y, glyph, nil, stylePlayer)
	})

	if e, ok := ecs.First(w, component.RoundComponent.Kind()); ok {
		round, _ := ecs.Get(w, e, component.RoundComponent.Kind())
		drawText(screen, 0, 0, fmt.Sprintf("Points: %d / %d", round.Score, round.WinScore))
		drawText(screen, 0, 1, statusLine(round.Phase))
	}
}

func statusLine(phase component.RoundPhase) string {
	switch phase {
	case component.PhaseReady:
		return "Enter to start, Esc to quit"
	case component.PhaseGameOver:
		return "Game over! R to restart"
	case component.PhaseWon:
		return "You win! R to restart"
	default:
		return "a/d or arrows: lanes  w/space: jump  s: fall"
	}
}

func drawText(screen tcell.Screen, x, y int, s string) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, styleText)
	}
}
