package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/lanerunner/common"
)

// PhysicsBody stores Chipmunk runtime data and collider configuration.
//
// The corridor is simulated in two planes: the vertical space (world X-Y)
// carries gravity and the floor, the track space (world X-Z) carries the
// obstacle sensors. Vertical is nil for entities that never leave their
// height (obstacles); their Y is FixedY.
type PhysicsBody struct {
	Vertical      *cp.Body
	VerticalShape *cp.Shape
	Track         *cp.Body
	TrackShape    *cp.Shape

	Width    float64
	Height   float64
	Depth    float64
	Radius   float64
	Mass     float64
	Friction float64
	Static   bool
	// Gravity marks bodies that live in the vertical space.
	Gravity bool
	FixedY  float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// HalfHeight is the vertical half extent used for overlap checks.
func (b *PhysicsBody) HalfHeight() float64 {
	if b.Radius > 0 {
		return b.Radius
	}
	return b.Height / 2
}

// Position returns the body's world position.
func (b *PhysicsBody) Position() mgl64.Vec3 {
	out := mgl64.Vec3{0, b.FixedY, 0}
	if b.Track != nil {
		p := b.Track.Position()
		out[0] = p.X / common.PhysicsScale
		out[2] = p.Y / common.PhysicsScale
	}
	if b.Vertical != nil {
		p := b.Vertical.Position()
		out[0] = p.X / common.PhysicsScale
		out[1] = p.Y / common.PhysicsScale
	}
	return out
}

// SetPosition teleports the body. The next physics step picks it up.
func (b *PhysicsBody) SetPosition(p mgl64.Vec3) {
	scaled := p.Mul(common.PhysicsScale)
	if b.Vertical != nil {
		b.Vertical.SetPosition(cp.Vector{X: scaled.X(), Y: scaled.Y()})
	} else {
		b.FixedY = p.Y()
	}
	if b.Track != nil {
		b.Track.SetPosition(cp.Vector{X: scaled.X(), Y: scaled.Z()})
	}
}

// Velocity returns the body's world velocity in units per second.
func (b *PhysicsBody) Velocity() mgl64.Vec3 {
	var out mgl64.Vec3
	if b.Track != nil {
		v := b.Track.Velocity()
		out[0] = v.X / common.PhysicsScale
		out[2] = v.Y / common.PhysicsScale
	}
	if b.Vertical != nil {
		v := b.Vertical.Velocity()
		out[0] = v.X / common.PhysicsScale
		out[1] = v.Y / common.PhysicsScale
	}
	return out
}

// SetVelocity overwrites the body's world velocity.
func (b *PhysicsBody) SetVelocity(v mgl64.Vec3) {
	scaled := v.Mul(common.PhysicsScale)
	if b.Vertical != nil {
		b.Vertical.SetVelocity(scaled.X(), scaled.Y())
	}
	if b.Track != nil {
		x := scaled.X()
		if b.Vertical != nil {
			// the track body follows the vertical body's X every step
			x = 0
		}
		b.Track.SetVelocity(x, scaled.Z())
	}
}

// Yaw returns the track body's rotation about the vertical axis.
func (b *PhysicsBody) Yaw() float64 {
	if b.Track == nil {
		return 0
	}
	return b.Track.Angle()
}
