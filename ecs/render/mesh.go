package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// sun is the normalized light direction.
var sun = mgl64.Vec3{0.3, 1, 0.6}.Normalize()

const ambient = 0.45

// Light returns the brightness of a surface with the given normal.
func Light(normal mgl64.Vec3) float64 {
	if normal.Len() == 0 {
		return ambient
	}
	return ambient + (1-ambient)*math.Max(0, normal.Normalize().Dot(sun))
}

// Face is one side of a box.
type Face struct {
	Corners [4]mgl64.Vec3
	Normal  mgl64.Vec3
	Light   float64
}

// Centre returns the average of the corners.
func (f Face) Centre() mgl64.Vec3 {
	var c mgl64.Vec3
	for _, p := range f.Corners {
		c = c.Add(p)
	}
	return c.Mul(0.25)
}

var boxSides = [6]struct {
	normal  mgl64.Vec3
	corners [4]mgl64.Vec3
}{
	{mgl64.Vec3{0, 0, 1}, [4]mgl64.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{mgl64.Vec3{0, 0, -1}, [4]mgl64.Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
	{mgl64.Vec3{0, 1, 0}, [4]mgl64.Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{mgl64.Vec3{0, -1, 0}, [4]mgl64.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{mgl64.Vec3{1, 0, 0}, [4]mgl64.Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{mgl64.Vec3{-1, 0, 0}, [4]mgl64.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
}

// BoxFaces returns the faces of a box turned by yaw about Y that face eye.
// Sizes are full extents.
func BoxFaces(centre mgl64.Vec3, width, height, depth, yaw float64, eye mgl64.Vec3) []Face {
	half := mgl64.Diag3(mgl64.Vec3{width / 2, height / 2, depth / 2})
	turn := mgl64.Rotate3DY(yaw)
	faces := make([]Face, 0, 3)
	for _, side := range boxSides {
		normal := turn.Mul3x1(side.normal)
		var f Face
		for i, c := range side.corners {
			f.Corners[i] = centre.Add(turn.Mul3(half).Mul3x1(c))
		}
		if normal.Dot(eye.Sub(f.Centre())) <= 0 {
			continue
		}
		f.Normal = normal
		f.Light = Light(normal)
		faces = append(faces, f)
	}
	return faces
}

// Ring returns points on a circle of the given radius standing upright in
// the plane facing +Z, turned by yaw about Y.
func Ring(centre mgl64.Vec3, radius, yaw float64, segments int) []mgl64.Vec3 {
	if segments < 3 {
		segments = 3
	}
	turn := mgl64.Rotate3DY(yaw)
	out := make([]mgl64.Vec3, segments)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(segments)
		out[i] = centre.Add(turn.Mul3x1(mgl64.Vec3{radius * math.Cos(a), radius * math.Sin(a), 0}))
	}
	return out
}
