package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/session"
	"go.uber.org/zap"
)

// Terminal runs a session against a tcell screen. Key events arrive on a
// channel fed by the poller goroutine and are applied between ticks.
type Terminal struct {
	screen  tcell.Screen
	session *session.Session
	logger  *zap.Logger
}

func NewTerminal(screen tcell.Screen, sess *session.Session, logger *zap.Logger) *Terminal {
	return &Terminal{screen: screen, session: sess, logger: logger}
}

// intentFor maps a key event to an intent. quit is set for Esc and Ctrl-C.
func intentFor(ev *tcell.EventKey) (in component.Input, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return in, true
	case tcell.KeyLeft:
		in.LeftPressed = true
	case tcell.KeyRight:
		in.RightPressed = true
	case tcell.KeyUp:
		in.UpPressed = true
	case tcell.KeyDown:
		in.DownPressed = true
	case tcell.KeyEnter:
		in.StartPressed = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			in.LeftPressed = true
		case 'd', 'D':
			in.RightPressed = true
		case 'w', 'W', ' ':
			in.UpPressed = true
		case 's', 'S':
			in.DownPressed = true
		case 'r', 'R':
			in.RestartPressed = true
		}
	}
	return in, false
}

// Run steps the session at the fixed rate until the user quits.
func (t *Terminal) Run() error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(time.Second / common.TPS)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				in, stop := intentFor(ev)
				if stop {
					return nil
				}
				t.session.PushInput(in)
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-ticker.C:
			if err := t.session.Update(); err != nil {
				return err
			}
			ecs.Draw(t.session.Scheduler(), t.session.World(), t.screen)
			t.screen.Show()
		}
	}
}
