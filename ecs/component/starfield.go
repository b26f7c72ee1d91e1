package component

import (
	"image/color"


	"github.com/go-gl/mathgl/mgl64"
)

// Starfield is the rotating particle backdrop.
type Starfield struct {
	Points []mgl64.Vec3
	RotX   float64
	RotY   float64
	RotZ   float64
	SpinX  float64
	SpinY  float64
	SpinZ  float64
	Size   float64
	Color  color.NRGBA
}

var StarfieldComponent = NewComponent[Starfield]()
