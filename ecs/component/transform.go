package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the visual representation's pose in world space. Yaw rotates
// about the vertical axis.
type Transform struct {
	X     float64
	Y     float64
	Z     float64
	Yaw   float64
	Scale float64
}

var TransformComponent = NewComponent[Transform]()

func (t *Transform) Position() mgl64.Vec3 {
	return mgl64.Vec3{t.X, t.Y, t.Z}
}
