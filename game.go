package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/session"
	"go.uber.org/zap"
)

// Game adapts a session to ebiten: one session step per tick, the scheduler's
// drawers and the round popups on top.
type Game struct {
	session  *session.Session
	overlays *Overlays
	logger   *zap.Logger
}

func NewGame(sess *session.Session, logger *zap.Logger) *Game {
	g := &Game{session: sess, logger: logger}
	g.overlays = NewOverlays(OverlayActions{
		Start: func() { sess.Start() },
		Restart: func() {
			if err := sess.Restart(); err != nil {
				logger.Error("restart failed", zap.Error(err))
			}
		},
	}, logger)
	g.overlays.Sync(sess.Round())
	return g
}

func (g *Game) Update() error {
	if err := g.session.Update(); err != nil {
		return err
	}
	g.overlays.Sync(g.session.Round())
	g.overlays.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	ecs.Draw(g.session.Scheduler(), g.session.World(), screen)
	g.overlays.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
