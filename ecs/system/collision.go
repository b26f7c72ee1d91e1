package system

import (
	"math/rand/v2"

	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"go.uber.org/zap"
)

// CollisionSystem applies the outcome of the frame's collision events to the
// round: powerups score and are relocated, enemies end the round.
type CollisionSystem struct {
	rng    *rand.Rand
	logger *zap.Logger
}

func NewCollisionSystem(rng *rand.Rand, logger *zap.Logger) *CollisionSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollisionSystem{rng: rng, logger: logger}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	events := w.Events().DrainCollisions()
	if len(events) == 0 {
		return
	}
	roundEnt, ok := ecs.First(w, component.RoundComponent.Kind())
	if !ok {
		return
	}
	round, ok := ecs.Get(w, roundEnt, component.RoundComponent.Kind())
	if !ok {
		return
	}

	for _, evt := range events {
		if round.Phase != component.PhaseRunning {
			return
		}
		switch evt.Category {
		case component.CategoryEnemy:
			round.Phase = component.PhaseGameOver
			RequestCue(w, component.CueRequest{Name: component.CueGameOver})
			s.logger.Info("round lost", zap.String("round", round.ID), zap.Int("score", round.Score), zap.Int("frames", round.Frames))
		case component.CategoryPowerup:
			round.Score++
			s.relocate(w, evt.Other)
			RequestCue(w, component.CueRequest{Name: component.CueCoin})
			s.logger.Debug("powerup collected", zap.String("round", round.ID), zap.Int("score", round.Score))
		}
	}
}

func (s *CollisionSystem) relocate(w *ecs.World, e ecs.Entity) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	o := Scrollable{Entity: e, Transform: t}
	o.Obstacle, _ = ecs.Get(w, e, component.ObstacleComponent.Kind())
	o.Body, _ = ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

	spawnZ := 0.0
	if scroll, ok := scrollOf(w); ok {
		spawnZ = scroll.SpawnZ
	}
	Relocate(o, spawnZ, s.rng)
}

// RequestCue queues a one-shot cue request entity.
func RequestCue(w *ecs.World, req component.CueRequest) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CueRequestComponent.Kind(), &req); err != nil {
		panic("cue request: add component: " + err.Error())
	}
}
