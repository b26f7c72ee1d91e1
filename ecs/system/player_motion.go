package system

import (
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
)

// PlayerMotionSystem turns the frame's directional intents into velocity or
// position changes on the player's physics body. Integration happens in the
// physics step that follows.
type PlayerMotionSystem struct{}

func NewPlayerMotionSystem() *PlayerMotionSystem {
	return &PlayerMotionSystem{}
}

func (s *PlayerMotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil || !roundRunning(w) {
		return
	}

	var input component.Input
	if e, ok := ecs.First(w, component.InputComponent.Kind()); ok {
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			input = *in
		}
	}

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.LaneMotionComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.MotionStateMachineComponent.Kind(),
		func(e ecs.Entity, player *component.Player, motion *component.LaneMotion, body *component.PhysicsBody, sm *component.MotionStateMachine) {
			if body.Vertical == nil {
				return
			}
			ctx := newMotionContext(&input, player, motion, body, sm)

			if sm.State == nil {
				sm.State = motionStateAirborne
				if ctx.IsGrounded() {
					sm.State = motionStateGrounded
				}
				sm.State.Enter(ctx)
			}

			sm.State.Update(ctx)

			if input.HorizontalReleased {
				_, vy := ctx.GetVelocity()
				ctx.SetVelocity(0, vy)
			}
			sm.State.HandleInput(ctx)
		})
}

func newMotionContext(input *component.Input, player *component.Player, motion *component.LaneMotion, body *component.PhysicsBody, sm *component.MotionStateMachine) *component.MotionContext {
	ctx := &component.MotionContext{
		Input:  input,
		Player: player,
		Motion: motion,
		IsGrounded: func() bool {
			return player.Grounded(body.Position().Y())
		},
		GetX: func() float64 {
			return body.Position().X()
		},
		SetX: func(x float64) {
			p := body.Position()
			p[0] = x
			body.SetPosition(p)
		},
		GetVelocity: func() (float64, float64) {
			v := body.Velocity()
			return v.X(), v.Y()
		},
		SetVelocity: func(x, y float64) {
			v := body.Velocity()
			v[0], v[1] = x, y
			body.SetVelocity(v)
		},
	}
	ctx.ChangeState = func(next component.MotionState) {
		if next == nil || next == sm.State {
			return
		}
		if sm.State != nil {
			sm.State.Exit(ctx)
		}
		sm.State = next
		next.Enter(ctx)
	}
	return ctx
}

// roundRunning reports whether gameplay systems should act this frame. A
// world without a round entity always runs.
func roundRunning(w *ecs.World) bool {
	e, ok := ecs.First(w, component.RoundComponent.Kind())
	if !ok {
		return true
	}
	round, ok := ecs.Get(w, e, component.RoundComponent.Kind())
	return ok && round.Phase == component.PhaseRunning
}
