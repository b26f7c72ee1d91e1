package component

import "image/color"

type Camera struct {
	FOV        float64
	Near       float64
	Far        float64
	FollowX    bool
	FogColor   color.NRGBA
	FogDensity float64
	Background color.NRGBA
}

var CameraComponent = NewComponent[Camera]()
