package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/ecs/component"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// OverlayActions are the button callbacks.
type OverlayActions struct {
	Start   func()
	Restart func()
}

// Overlays holds the start, game-over and win popups. At most one is shown,
// chosen by the round phase.
type Overlays struct {
	start    *ebitenui.UI
	gameOver *ebitenui.UI
	win      *ebitenui.UI
	current  *ebitenui.UI

	gameOverScore *widget.Text
	winScore      *widget.Text
	copyButtons   []*widget.Button

	result    string
	clipboard bool
	logger    *zap.Logger
}

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayStart
	overlayGameOver
	overlayWin
)

func overlayFor(phase component.RoundPhase) overlayKind {
	switch phase {
	case component.PhaseReady:
		return overlayStart
	case component.PhaseGameOver:
		return overlayGameOver
	case component.PhaseWon:
		return overlayWin
	default:
		return overlayNone
	}
}

// ResultLine is the text the Copy button puts on the clipboard.
func ResultLine(r component.Round) string {
	switch r.Phase {
	case component.PhaseWon:
		return fmt.Sprintf("lanerunner: won with %d points in %d frames", r.Score, r.Frames)
	case component.PhaseGameOver:
		return fmt.Sprintf("lanerunner: game over at %d of %d points", r.Score, r.WinScore)
	default:
		return fmt.Sprintf("lanerunner: %d points", r.Score)
	}
}

type overlayStyle struct {
	face      ebtext.Face
	panel     *imageui.NineSlice
	button    *imageui.NineSlice
	disabled  *imageui.NineSlice
	textColor *widget.ButtonTextColor
}

func NewOverlays(actions OverlayActions, logger *zap.Logger) *Overlays {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Overlays{logger: logger}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable, copy disabled", zap.Error(err))
	} else {
		o.clipboard = true
	}

	style := overlayStyle{
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
		panel:    imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}),
		button:   imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}),
		disabled: imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}),
		textColor: &widget.ButtonTextColor{
			Idle:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			Disabled: color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
		},
	}

	o.start, _ = o.popup(style, "Lane Runner", "Enter or Start to play", "Start", actions.Start, false)
	o.gameOver, o.gameOverScore = o.popup(style, "Game Over", "", "Restart", actions.Restart, true)
	o.win, o.winScore = o.popup(style, "You Win!", "", "Restart", actions.Restart, true)
	return o
}

// popup builds a centred panel with a title, a detail line, the main action
// button and optionally a Copy button.
func (o *Overlays) popup(style overlayStyle, title, detail, action string, onAction func(), withCopy bool) (*ebitenui.UI, *widget.Text) {
	face := style.face
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	centred := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	titleText := widget.NewText(
		widget.TextOpts.Text(title, &face, white),
		widget.TextOpts.WidgetOpts(centred),
	)
	detailText := widget.NewText(
		widget.TextOpts.Text(detail, &face, white),
		widget.TextOpts.WidgetOpts(centred),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: style.button, Pressed: style.button, Disabled: style.disabled}),
			widget.ButtonOpts.Text(label, &face, style.textColor),
			widget.ButtonOpts.WidgetOpts(centred),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(style.panel),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(titleText)
	panel.AddChild(detailText)
	panel.AddChild(button(action, onAction))

	if withCopy {
		copyBtn := button("Copy", o.copyResult)
		copyBtn.GetWidget().Disabled = !o.clipboard
		o.copyButtons = append(o.copyButtons, copyBtn)
		panel.AddChild(copyBtn)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}, detailText
}

func (o *Overlays) copyResult() {
	if !o.clipboard || o.result == "" {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(o.result))
	o.logger.Debug("result copied", zap.String("result", o.result))
}

// Sync picks the popup for the round and refreshes its labels.
func (o *Overlays) Sync(r component.Round) {
	o.result = ResultLine(r)
	score := fmt.Sprintf("Points: %d", r.Score)
	switch overlayFor(r.Phase) {
	case overlayStart:
		o.current = o.start
	case overlayGameOver:
		o.gameOverScore.Label = score
		o.current = o.gameOver
	case overlayWin:
		o.winScore.Label = score
		o.current = o.win
	default:
		o.current = nil
	}
}

func (o *Overlays) Update() {
	if o.current != nil {
		o.current.Update()
	}
}

func (o *Overlays) Draw(screen *ebiten.Image) {
	if o.current != nil {
		o.current.Draw(screen)
	}
}
