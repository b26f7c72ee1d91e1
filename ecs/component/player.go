package component

import "github.com/milk9111/lanerunner/lane"

type AirShiftPolicy string

const (
	// AirShiftSnap teleports the player onto the target lane.
	AirShiftSnap AirShiftPolicy = "snap"
	// AirShiftImpulse uses the same horizontal impulse as a grounded shift.
	AirShiftImpulse AirShiftPolicy = "impulse"
)

// Player holds the motion tuning of the player box. Impulses are velocities
// in world units per second.
type Player struct {
	LaneImpulse    float64
	JumpImpulse    float64
	FallImpulse    float64
	GroundBandLow  float64
	GroundBandHigh float64
	AirShift       AirShiftPolicy
}

var PlayerComponent = NewComponent[Player]()

// Grounded reports whether a vertical position counts as floor contact.
func (p *Player) Grounded(y float64) bool {
	return y >= p.GroundBandLow && y <= p.GroundBandHigh
}

// LaneMotion is the lane the player is in (or moving to).
type LaneMotion struct {
	Lane lane.Lane
	// Shifting is set while a velocity-driven lane change is in flight.
	Shifting bool
}

var LaneMotionComponent = NewComponent[LaneMotion]()
