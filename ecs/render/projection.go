// Package render projects the corridor onto a flat target. It holds no
// engine state, so the window renderer and the tests share it.
package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lanerunner/common"
)

// forward is the viewing direction of every camera in the corridor.
var forward = mgl64.Vec3{0, 0, -1}

// unboundedFar stands in for the far plane of a view that has none.
const unboundedFar = 1e4

// View is a pinhole camera looking down -Z with Y up.
type View struct {
	Eye    mgl64.Vec3
	FOV    float64 // vertical, degrees
	Near   float64
	Far    float64
	Width  float64
	Height float64

	FogColor   color.NRGBA
	FogDensity float64
}

// Point is a projected position. Depth is the distance along the view axis.
type Point struct {
	X     float64
	Y     float64
	Depth float64
}

func (v View) fovy() float64 {
	fov := v.FOV
	if fov <= 0 || fov >= 180 {
		fov = 60
	}
	return mgl64.DegToRad(fov)
}

// Matrices returns the modelview and projection matrices of the view.
func (v View) Matrices() (modelview, projection mgl64.Mat4) {
	far := v.Far
	if far <= 0 {
		far = unboundedFar
	}
	aspect := 1.0
	if v.Height > 0 {
		aspect = v.Width / v.Height
	}
	modelview = mgl64.LookAtV(v.Eye, v.Eye.Add(forward), common.Up)
	projection = mgl64.Perspective(v.fovy(), aspect, v.Near, far)
	return modelview, projection
}

// focal is the distance in pixels at which one world unit spans one pixel.
func (v View) focal() float64 {
	_, projection := v.Matrices()
	return projection.At(1, 1) * v.Height / 2
}

// Depth returns how far in front of the eye p lies.
func (v View) Depth(p mgl64.Vec3) float64 {
	return p.Sub(v.Eye).Dot(forward)
}

// Project maps a world point onto the target. ok is false when the point is
// outside the near/far range.
func (v View) Project(p mgl64.Vec3) (Point, bool) {
	depth := v.Depth(p)
	if depth < v.Near || (v.Far > 0 && depth > v.Far) {
		return Point{}, false
	}
	modelview, projection := v.Matrices()
	win := mgl64.Project(p, modelview, projection, 0, 0, int(v.Width), int(v.Height))
	return Point{
		X:     win.X(),
		Y:     v.Height - win.Y(),
		Depth: depth,
	}, true
}

// Scale returns the on-screen size of a world length seen at depth.
func (v View) Scale(length, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return length * v.focal() / depth
}

// Fog returns the squared-exponential fog amount at depth, in [0, 1].
func (v View) Fog(depth float64) float64 {
	if v.FogDensity <= 0 || depth <= 0 {
		return 0
	}
	d := v.FogDensity * depth
	return 1 - math.Exp(-d*d)
}

// Shade darkens c by light and blends it toward the fog colour at depth.
func (v View) Shade(c color.NRGBA, light, depth float64) color.NRGBA {
	light = mgl64.Clamp(light, 0, 1)
	fog := v.Fog(depth)
	mix := func(a, b uint8) uint8 {
		lit := float64(a) * light
		return uint8(math.Round(common.Lerp(lit, float64(b), fog)))
	}
	return color.NRGBA{
		R: mix(c.R, v.FogColor.R),
		G: mix(c.G, v.FogColor.G),
		B: mix(c.B, v.FogColor.B),
		A: c.A,
	}
}
