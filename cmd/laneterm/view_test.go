package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
	"github.com/milk9111/lanerunner/prefabs"
	"github.com/milk9111/lanerunner/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New(session.Options{
		Spec:         prefabs.DefaultGameSpec(),
		Seed:         "terminal",
		Logger:       zap.NewNop(),
		Presentation: []ecs.System{NewLaneView()},
	})
	require.NoError(t, err)
	return sess
}

// playerCell returns where the view puts the player on an 80x24 screen.
func playerCell(t *testing.T, sess *session.Session) (int, int) {
	t.Helper()
	w := sess.World()
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	require.True(t, ok)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())

	scrollEntity, ok := ecs.First(w, component.ScrollComponent.Kind())
	require.True(t, ok)
	scroll, _ := ecs.Get(w, scrollEntity, component.ScrollComponent.Kind())

	l := newLayout(80, 24, *scroll)
	y, ok := l.row(tr.Z)
	require.True(t, ok)
	return l.column(tr.X), y
}

func TestLaneViewDrawsPlayerInLane(t *testing.T) {
	screen := newSimScreen(t)
	sess := newTestSession(t)

	ecs.Draw(sess.Scheduler(), sess.World(), tcell.Screen(screen))
	x, y := playerCell(t, sess)
	mainc, _, _, _ := screen.GetContent(x, y)
	assert.Equal(t, '@', mainc)

	l := newLayout(80, 24, component.Scroll{SpawnZ: -10, CameraZ: 5.5})
	assert.Equal(t, l.left+int(lane.Middle)*laneWidth+laneWidth/2, x)
}

func TestLaneViewFollowsLaneChange(t *testing.T) {
	screen := newSimScreen(t)
	sess := newTestSession(t)
	require.True(t, sess.Start())
	for range 30 {
		require.NoError(t, sess.Update())
	}
	sess.PushInput(component.Input{LeftPressed: true})
	for range 30 {
		require.NoError(t, sess.Update())
	}

	ecs.Draw(sess.Scheduler(), sess.World(), tcell.Screen(screen))
	x, y := playerCell(t, sess)
	mainc, _, _, _ := screen.GetContent(x, y)
	assert.Contains(t, []rune{'@', '^'}, mainc)

	l := newLayout(80, 24, component.Scroll{})
	assert.Equal(t, l.left+int(lane.Left)*laneWidth+laneWidth/2, x)
}

func TestLaneViewHeader(t *testing.T) {
	screen := newSimScreen(t)
	sess := newTestSession(t)
	ecs.Draw(sess.Scheduler(), sess.World(), tcell.Screen(screen))

	var line []rune
	for x := range len("Points: 0 / 20") {
		r, _, _, _ := screen.GetContent(x, 0)
		line = append(line, r)
	}
	assert.Equal(t, "Points: 0 / 20", string(line))
}

func TestIntentFor(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want component.Input
		quit bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), component.Input{}, true},
		{"ctrl_c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), component.Input{}, true},
		{"arrow_left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), component.Input{LeftPressed: true}, false},
		{"rune_d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), component.Input{RightPressed: true}, false},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), component.Input{UpPressed: true}, false},
		{"rune_s", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), component.Input{DownPressed: true}, false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), component.Input{StartPressed: true}, false},
		{"rune_r", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), component.Input{RestartPressed: true}, false},
		{"unmapped", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), component.Input{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, quit := intentFor(tc.ev)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.quit, quit)
		})
	}
}
