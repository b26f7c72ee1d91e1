package system

import (
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
)

// Motion state singletons (avoid allocations on transitions).
var (
	motionStateGrounded component.MotionState = &groundedState{}
	motionStateAirborne component.MotionState = &airborneState{}
)

type groundedState struct{}

type airborneState struct{}

func (groundedState) Name() string                       { return "grounded" }
func (groundedState) Enter(ctx *component.MotionContext) {}
func (groundedState) Exit(ctx *component.MotionContext)  {}

// HandleInput applies the grounded rows of the transition table: lane shifts
// and the jump. The first matching intent wins.
func (groundedState) HandleInput(ctx *component.MotionContext) {
	if ctx == nil || ctx.Input == nil || ctx.Motion == nil || ctx.Player == nil {
		return
	}
	in := ctx.Input
	switch {
	case in.LeftPressed && ctx.Motion.Lane > lane.Left:
		shiftLane(ctx, -1)
	case in.RightPressed && ctx.Motion.Lane < lane.Right:
		shiftLane(ctx, 1)
	case in.UpPressed:
		vx, _ := ctx.GetVelocity()
		ctx.SetVelocity(vx, ctx.Player.JumpImpulse)
	}
}

func (groundedState) Update(ctx *component.MotionContext) {
	if ctx == nil || ctx.IsGrounded == nil || ctx.ChangeState == nil {
		return
	}
	if !ctx.IsGrounded() {
		ctx.ChangeState(motionStateAirborne)
	}
}

func (airborneState) Name() string                       { return "airborne" }
func (airborneState) Enter(ctx *component.MotionContext) {}
func (airborneState) Exit(ctx *component.MotionContext)  {}

// HandleInput applies the airborne rows: fast fall, then clamped lane
// shifts resolved by the configured air shift policy.
func (airborneState) HandleInput(ctx *component.MotionContext) {
	if ctx == nil || ctx.Input == nil || ctx.Motion == nil || ctx.Player == nil {
		return
	}
	in := ctx.Input
	switch {
	case in.DownPressed:
		vx, _ := ctx.GetVelocity()
		ctx.SetVelocity(vx, -ctx.Player.FallImpulse)
	case in.LeftPressed:
		airShift(ctx, -1)
	case in.RightPressed:
		airShift(ctx, 1)
	}
}

func (airborneState) Update(ctx *component.MotionContext) {
	if ctx == nil || ctx.IsGrounded == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.IsGrounded() {
		ctx.ChangeState(motionStateGrounded)
	}
}

func shiftLane(ctx *component.MotionContext, dir int) {
	ctx.Motion.Lane += lane.Lane(dir)
	ctx.Motion.Shifting = true
	_, vy := ctx.GetVelocity()
	ctx.SetVelocity(float64(dir)*ctx.Player.LaneImpulse, vy)
}

func airShift(ctx *component.MotionContext, dir int) {
	next := lane.Clamp(ctx.Motion.Lane + lane.Lane(dir))
	changed := next != ctx.Motion.Lane
	ctx.Motion.Lane = next

	if ctx.Player.AirShift == component.AirShiftImpulse {
		if changed {
			ctx.Motion.Shifting = true
			_, vy := ctx.GetVelocity()
			ctx.SetVelocity(float64(dir)*ctx.Player.LaneImpulse, vy)
		}
		return
	}

	ctx.SetX(lane.ToX(next))
	ctx.Motion.Shifting = false
	_, vy := ctx.GetVelocity()
	ctx.SetVelocity(0, vy)
}
