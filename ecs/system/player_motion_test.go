package system

import (
	"testing"

	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerMotionTransitionTable(t *testing.T) {
	cases := []struct {
		name      string
		lane      lane.Lane
		y         float64
		input     component.Input
		policy    component.AirShiftPolicy
		wantLane  lane.Lane
		wantVX    float64
		wantVY    float64
		wantX     float64
		checkX    bool
		wantState string
	}{
		{name: "grounded_left", lane: lane.Middle, y: restY, input: component.Input{LeftPressed: true}, wantLane: lane.Left, wantVX: -60, wantState: "grounded"},
		{name: "grounded_right", lane: lane.Middle, y: restY, input: component.Input{RightPressed: true}, wantLane: lane.Right, wantVX: 60, wantState: "grounded"},
		{name: "grounded_left_at_edge_is_noop", lane: lane.Left, y: restY, input: component.Input{LeftPressed: true}, wantLane: lane.Left, wantState: "grounded"},
		{name: "grounded_right_at_edge_is_noop", lane: lane.Right, y: restY, input: component.Input{RightPressed: true}, wantLane: lane.Right, wantState: "grounded"},
		{name: "grounded_left_at_edge_falls_through_to_jump", lane: lane.Left, y: restY, input: component.Input{LeftPressed: true, UpPressed: true}, wantLane: lane.Left, wantVY: 5, wantState: "grounded"},
		{name: "grounded_jump", lane: lane.Middle, y: restY, input: component.Input{UpPressed: true}, wantLane: lane.Middle, wantVY: 5, wantState: "grounded"},
		{name: "grounded_down_is_noop", lane: lane.Middle, y: restY, input: component.Input{DownPressed: true}, wantLane: lane.Middle, wantState: "grounded"},
		{name: "airborne_up_is_noop", lane: lane.Middle, y: 1, input: component.Input{UpPressed: true}, wantLane: lane.Middle, wantState: "airborne"},
		{name: "airborne_fast_fall", lane: lane.Middle, y: 1, input: component.Input{DownPressed: true}, wantLane: lane.Middle, wantVY: -10, wantState: "airborne"},
		{name: "airborne_left_snaps", lane: lane.Middle, y: 1, input: component.Input{LeftPressed: true}, wantLane: lane.Left, wantX: -1, checkX: true, wantState: "airborne"},
		{name: "airborne_right_snaps", lane: lane.Middle, y: 1, input: component.Input{RightPressed: true}, wantLane: lane.Right, wantX: 1, checkX: true, wantState: "airborne"},
		{name: "airborne_left_clamped", lane: lane.Left, y: 1, input: component.Input{LeftPressed: true}, wantLane: lane.Left, wantX: -1, checkX: true, wantState: "airborne"},
		{name: "airborne_right_clamped", lane: lane.Right, y: 1, input: component.Input{RightPressed: true}, wantLane: lane.Right, wantX: 1, checkX: true, wantState: "airborne"},
		{name: "airborne_left_impulse", lane: lane.Middle, y: 1, input: component.Input{LeftPressed: true}, policy: component.AirShiftImpulse, wantLane: lane.Left, wantVX: -60, wantState: "airborne"},
		{name: "airborne_left_impulse_clamped", lane: lane.Left, y: 1, input: component.Input{LeftPressed: true}, policy: component.AirShiftImpulse, wantLane: lane.Left, wantState: "airborne"},
		{name: "just_above_band_is_airborne", lane: lane.Middle, y: -0.239, input: component.Input{UpPressed: true}, wantLane: lane.Middle, wantState: "airborne"},
		{name: "just_inside_band_is_grounded", lane: lane.Middle, y: -0.259, input: component.Input{UpPressed: true}, wantLane: lane.Middle, wantVY: 5, wantState: "grounded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addRound(t, w, component.PhaseRunning)
			e := addPlayer(t, w, tc.lane, tc.y)
			body := attachLooseBody(t, w, e)
			if tc.policy != "" {
				p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
				p.AirShift = tc.policy
			}
			*inputOf(t, w) = tc.input

			NewPlayerMotionSystem().Update(w)

			assert.Equal(t, tc.wantLane, laneOf(t, w, e))
			v := body.Velocity()
			assert.InDelta(t, tc.wantVX, v.X(), 1e-9)
			assert.InDelta(t, tc.wantVY, v.Y(), 1e-9)
			if tc.checkX {
				assert.InDelta(t, tc.wantX, body.Position().X(), 1e-9)
			}
			sm, _ := ecs.Get(w, e, component.MotionStateMachineComponent.Kind())
			require.NotNil(t, sm.State)
			assert.Equal(t, tc.wantState, sm.State.Name())
		})
	}
}

func TestPlayerMotionIgnoresInputOutsideRunningRound(t *testing.T) {
	for _, phase := range []component.RoundPhase{component.PhaseReady, component.PhaseGameOver, component.PhaseWon} {
		t.Run(string(phase), func(t *testing.T) {
			w := ecs.NewWorld()
			addRound(t, w, phase)
			e := addPlayer(t, w, lane.Middle, restY)
			attachLooseBody(t, w, e)
			inputOf(t, w).LeftPressed = true

			NewPlayerMotionSystem().Update(w)

			assert.Equal(t, lane.Middle, laneOf(t, w, e))
		})
	}
}

func TestHorizontalReleaseZeroesVelocity(t *testing.T) {
	w := ecs.NewWorld()
	addRound(t, w, component.PhaseRunning)
	e := addPlayer(t, w, lane.Middle, restY)
	body := attachLooseBody(t, w, e)
	motion := NewPlayerMotionSystem()

	inputOf(t, w).LeftPressed = true
	motion.Update(w)
	require.InDelta(t, -60, body.Velocity().X(), 1e-9)

	*inputOf(t, w) = component.Input{HorizontalReleased: true}
	motion.Update(w)
	assert.Zero(t, body.Velocity().X())
}

// Drives motion through the real physics step: left then right returns the
// player to the middle lane, exactly on its X.
func TestLaneRoundTripThroughPhysics(t *testing.T) {
	w := ecs.NewWorld()
	addRound(t, w, component.PhaseRunning)
	addGround(t, w)
	e := addPlayer(t, w, lane.Middle, restY)

	frame := ecs.NewScheduler(NewPlayerMotionSystem(), NewPhysicsSystem(), NewLaneSettleSystem())
	for i := 0; i < 10; i++ {
		frame.Update(w)
	}
	body := bodyOf(t, w, e)
	require.NotNil(t, body.Vertical)
	p := testPlayerTuning()
	require.True(t, p.Grounded(body.Position().Y()), "player should rest on the floor, y=%v", body.Position().Y())

	press := func(in component.Input) {
		*inputOf(t, w) = in
		frame.Update(w)
		*inputOf(t, w) = component.Input{}
		for i := 0; i < 5; i++ {
			frame.Update(w)
		}
	}

	press(component.Input{LeftPressed: true})
	assert.Equal(t, lane.Left, laneOf(t, w, e))
	assert.InDelta(t, -1, body.Position().X(), 1e-9)
	assert.Zero(t, body.Velocity().X())

	press(component.Input{RightPressed: true})
	assert.Equal(t, lane.Middle, laneOf(t, w, e))
	assert.InDelta(t, 0, body.Position().X(), 1e-9)

	press(component.Input{LeftPressed: true})
	press(component.Input{LeftPressed: true})
	assert.Equal(t, lane.Left, laneOf(t, w, e), "left at lane 0 stays at lane 0")
	assert.InDelta(t, -1, body.Position().X(), 1e-9)
	assert.True(t, p.Grounded(body.Position().Y()))
}

func TestJumpLeavesAndRegainsGround(t *testing.T) {
	w := ecs.NewWorld()
	addRound(t, w, component.PhaseRunning)
	addGround(t, w)
	e := addPlayer(t, w, lane.Middle, restY)
	frame := ecs.NewScheduler(NewPlayerMotionSystem(), NewPhysicsSystem(), NewLaneSettleSystem())
	frame.Update(w)

	inputOf(t, w).UpPressed = true
	frame.Update(w)
	*inputOf(t, w) = component.Input{}

	body := bodyOf(t, w, e)
	sm, _ := ecs.Get(w, e, component.MotionStateMachineComponent.Kind())
	peak := body.Position().Y()
	for i := 0; i < 20; i++ {
		frame.Update(w)
		if y := body.Position().Y(); y > peak {
			peak = y
		}
	}
	assert.Greater(t, peak, 0.5)
	assert.Equal(t, "airborne", sm.State.Name())

	// a second jump in the air does nothing, fast fall brings it down
	inputOf(t, w).DownPressed = true
	frame.Update(w)
	*inputOf(t, w) = component.Input{}
	assert.Less(t, body.Velocity().Y(), -5.0)

	for i := 0; i < 120; i++ {
		frame.Update(w)
	}
	assert.True(t, testPlayerTuning().Grounded(body.Position().Y()), "y=%v", body.Position().Y())
	assert.Equal(t, "grounded", sm.State.Name())
}
