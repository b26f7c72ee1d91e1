package component

import "image/color"

type MeshShape string

const (
	MeshBox    MeshShape = "box"
	MeshSphere MeshShape = "sphere"
	MeshTorus  MeshShape = "torus"
)

// Mesh describes how the renderer draws an entity. Sizes are full extents in
// world units; Radius is used by sphere and torus meshes.
type Mesh struct {
	Shape  MeshShape
	Width  float64
	Height float64
	Depth  float64
	Radius float64
	Color  color.NRGBA
}

var MeshComponent = NewComponent[Mesh]()
