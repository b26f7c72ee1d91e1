package system

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
	"github.com/stretchr/testify/require"
)

const restY = -0.25

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func testPlayerTuning() *component.Player {
	return &component.Player{
		LaneImpulse:    60,
		JumpImpulse:    5,
		FallImpulse:    10,
		GroundBandLow:  -0.26,
		GroundBandHigh: -0.24,
		AirShift:       component.AirShiftSnap,
	}
}

func addRound(t *testing.T, w *ecs.World, phase component.RoundPhase) *component.Round {
	t.Helper()
	e := ecs.CreateEntity(w)
	round := &component.Round{ID: "test", Phase: phase, WinScore: 20}
	require.NoError(t, ecs.Add(w, e, component.RoundComponent.Kind(), round))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.ScrollComponent.Kind(), &component.Scroll{
		PowerupSpeed: 0.03,
		EnemySpeed:   0.03,
		Multiplier:   1,
		SpawnZ:       -10,
		CameraZ:      4.5,
	}))
	return round
}

func inputOf(t *testing.T, w *ecs.World) *component.Input {
	t.Helper()
	e, ok := ecs.First(w, component.InputComponent.Kind())
	require.True(t, ok)
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	require.True(t, ok)
	return in
}

func addGround(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Y: -1, Scale: 1}))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: 3, Height: 1, Depth: 30, Static: true,
	}))
	return e
}

func addPlayer(t *testing.T, w *ecs.World, l lane.Lane, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), testPlayerTuning()))
	require.NoError(t, ecs.Add(w, e, component.LaneMotionComponent.Kind(), &component.LaneMotion{Lane: l}))
	require.NoError(t, ecs.Add(w, e, component.MotionStateMachineComponent.Kind(), &component.MotionStateMachine{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: lane.ToX(l), Y: y, Scale: 1}))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: 0.5, Height: 0.5, Depth: 0.5, Mass: 1, Gravity: true,
	}))
	return e
}

// attachLooseBody gives the player a vertical body that lives in no space,
// so motion rules can be checked without integrating.
func attachLooseBody(t *testing.T, w *ecs.World, e ecs.Entity) *component.PhysicsBody {
	t.Helper()
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	body.Vertical = cp.NewBody(1, math.Inf(1))
	body.SetPosition(tr.Position())
	return body
}

func addObstacle(t *testing.T, w *ecs.World, category component.ObstacleCategory, x, z float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{Category: category}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Z: z, Scale: 1}))
	body := &component.PhysicsBody{Mass: 1}
	if category == component.CategoryPowerup {
		body.Radius = 0.2
	} else {
		body.Width, body.Height, body.Depth = 0.8, 0.8, 0.8
	}
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body))
	return e
}

func bodyOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.PhysicsBody {
	t.Helper()
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	return body
}

func laneOf(t *testing.T, w *ecs.World, e ecs.Entity) lane.Lane {
	t.Helper()
	m, ok := ecs.Get(w, e, component.LaneMotionComponent.Kind())
	require.True(t, ok)
	return m.Lane
}

func runFrames(w *ecs.World, n int, systems ...ecs.System) {
	s := ecs.NewScheduler(systems...)
	for i := 0; i < n; i++ {
		s.Update(w)
	}
}
