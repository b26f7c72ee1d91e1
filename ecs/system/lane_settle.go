package system

import (
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
)

// settleEpsilon absorbs the rounding of one physics step.
const settleEpsilon = 1e-3

// LaneSettleSystem runs after the physics step. A player whose lane change
// reached or passed the target lane, or lost its horizontal velocity, is
// placed exactly on the lane.
type LaneSettleSystem struct{}

func NewLaneSettleSystem() *LaneSettleSystem {
	return &LaneSettleSystem{}
}

func (s *LaneSettleSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.LaneMotionComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, motion *component.LaneMotion, body *component.PhysicsBody) {
		if !motion.Shifting || body.Vertical == nil || !motion.Lane.Valid() {
			return
		}
		target := lane.ToX(motion.Lane)
		pos := body.Position()
		vel := body.Velocity()

		remaining := target - pos.X()
		if vel.X() < 0 {
			remaining = -remaining
		}
		if vel.X() != 0 && remaining > settleEpsilon {
			return
		}

		pos[0] = target
		body.SetPosition(pos)
		vel[0] = 0
		body.SetVelocity(vel)
		motion.Shifting = false

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X = target
		}
	})
}
