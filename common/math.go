package common

import "github.com/go-gl/mathgl/mgl64"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Up is the world up axis. Z grows toward the camera.
var Up = mgl64.Vec3{0, 1, 0}

// RotateXYZ applies rotations about X, then Y, then Z.
func RotateXYZ(v mgl64.Vec3, rx, ry, rz float64) mgl64.Vec3 {
	m := mgl64.Rotate3DZ(rz).Mul3(mgl64.Rotate3DY(ry)).Mul3(mgl64.Rotate3DX(rx))
	return m.Mul3x1(v)
}
