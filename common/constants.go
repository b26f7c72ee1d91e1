package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	TPS       = 60
	FixedStep = 1.0 / TPS

	// Gravity is in world units per second squared (Y up).
	Gravity = -9.82

	// PhysicsScale converts world units to Chipmunk units. Chipmunk's default
	// collision slop is 0.1, which would swallow most of a 0.5 wide box.
	PhysicsScale = 100.0
)
