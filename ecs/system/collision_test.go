package system

import (
	"testing"

	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cueNames(w *ecs.World) []string {
	var out []string
	ecs.ForEach(w, component.CueRequestComponent.Kind(), func(_ ecs.Entity, req *component.CueRequest) {
		out = append(out, req.Name)
	})
	return out
}

func TestEnemyCollisionEndsRoundWithScoreUnchanged(t *testing.T) {
	w := ecs.NewWorld()
	round := addRound(t, w, component.PhaseRunning)
	round.Score = 7
	player := addPlayer(t, w, lane.Middle, restY)
	enemy := addObstacle(t, w, component.CategoryEnemy, 0, 0)

	w.Events().PushCollision(ecs.CollisionEvent{Player: player, Other: enemy, Category: component.CategoryEnemy})
	NewCollisionSystem(testRNG(), nil).Update(w)

	assert.Equal(t, component.PhaseGameOver, round.Phase)
	assert.Equal(t, 7, round.Score)
	assert.Equal(t, []string{component.CueGameOver}, cueNames(w))
}

func TestPowerupCollisionScoresAndRelocates(t *testing.T) {
	w := ecs.NewWorld()
	round := addRound(t, w, component.PhaseRunning)
	player := addPlayer(t, w, lane.Middle, restY)
	powerup := addObstacle(t, w, component.CategoryPowerup, 0, 0.1)
	NewPhysicsSystem().Update(w)
	w.Events().Drain()

	w.Events().PushCollision(ecs.CollisionEvent{Player: player, Other: powerup, Category: component.CategoryPowerup})
	NewCollisionSystem(testRNG(), nil).Update(w)

	assert.Equal(t, component.PhaseRunning, round.Phase)
	assert.Equal(t, 1, round.Score)
	assert.Equal(t, []string{component.CueCoin}, cueNames(w))

	tr, _ := ecs.Get(w, powerup, component.TransformComponent.Kind())
	assert.InDelta(t, -10, tr.Z, 1e-9)
	assert.True(t, lane.IsLaneX(tr.X))
	p := bodyOf(t, w, powerup).Position()
	assert.InDelta(t, -10, p.Z(), 1e-9)
	assert.Equal(t, tr.X, p.X())
}

func TestCollisionsAfterRoundEndAreIgnored(t *testing.T) {
	w := ecs.NewWorld()
	round := addRound(t, w, component.PhaseRunning)
	player := addPlayer(t, w, lane.Middle, restY)
	enemy := addObstacle(t, w, component.CategoryEnemy, 0, 0)
	powerup := addObstacle(t, w, component.CategoryPowerup, 0, 0)

	w.Events().PushCollision(ecs.CollisionEvent{Player: player, Other: enemy, Category: component.CategoryEnemy})
	w.Events().PushCollision(ecs.CollisionEvent{Player: player, Other: powerup, Category: component.CategoryPowerup})
	NewCollisionSystem(testRNG(), nil).Update(w)

	assert.Equal(t, component.PhaseGameOver, round.Phase)
	assert.Zero(t, round.Score)

	round.Phase = component.PhaseReady
	w.Events().PushCollision(ecs.CollisionEvent{Player: player, Other: powerup, Category: component.CategoryPowerup})
	NewCollisionSystem(testRNG(), nil).Update(w)
	assert.Zero(t, round.Score)
}

// Full frame: the physics step raises the event, the rules apply it.
func TestPhysicsAndRulesEndToEnd(t *testing.T) {
	w := ecs.NewWorld()
	round := addRound(t, w, component.PhaseRunning)
	addGround(t, w)
	player := addPlayer(t, w, lane.Middle, restY)
	addObstacle(t, w, component.CategoryPowerup, 0, 0)
	addObstacle(t, w, component.CategoryEnemy, 1, 0)

	frame := ecs.NewScheduler(
		NewPlayerMotionSystem(),
		NewPhysicsSystem(),
		NewLaneSettleSystem(),
		NewCollisionSystem(testRNG(), nil),
		NewRoundSystem(testRNG(), nil),
		NewCueSweepSystem(),
	)
	frame.Update(w)
	require.Equal(t, 1, round.Score)
	require.Equal(t, component.PhaseRunning, round.Phase)

	inputOf(t, w).RightPressed = true
	frame.Update(w)
	*inputOf(t, w) = component.Input{}
	frame.Update(w)

	assert.Equal(t, component.PhaseGameOver, round.Phase)
	assert.Equal(t, 1, round.Score)
	assert.False(t, w.IsAlive(player), "player is removed once the round is over")
	assert.Empty(t, cueNames(w), "cue requests do not outlive the frame")
}
