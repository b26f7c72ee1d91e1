package component

// MotionState defines the interface for player motion states. States are
// stateless singletons; everything they touch goes through the context.
type MotionState interface {
	Name() string
	Enter(ctx *MotionContext)
	Exit(ctx *MotionContext)
	HandleInput(ctx *MotionContext)
	Update(ctx *MotionContext)
}

// MotionContext provides controlled access to input and physics for a state.
// It uses callbacks to avoid coupling states to the physics engine.
type MotionContext struct {
	Input       *Input
	Player      *Player
	Motion      *LaneMotion
	IsGrounded  func() bool
	GetX        func() float64
	SetX        func(x float64)
	GetVelocity func() (x, y float64)
	SetVelocity func(x, y float64)
	ChangeState func(state MotionState)
}

// MotionStateMachine stores the active state of the player.
type MotionStateMachine struct {
	State MotionState
}

var MotionStateMachineComponent = NewComponent[MotionStateMachine]()
