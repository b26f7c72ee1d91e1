package presentation

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/ecs/render"
)

const ringSegments = 24

// RenderSystem draws the corridor in perspective from the camera entity:
// starfield first, then meshes far to near.
type RenderSystem struct {
	camEntity ecs.Entity
	white     *ebiten.Image
	vertices  []ebiten.Vertex
	indices   []uint16
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

type drawable struct {
	transform *component.Transform
	mesh      *component.Mesh
	depth     float64
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		r.camEntity = camEntity
	}
	camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())

	bounds := screen.Bounds()
	view := render.View{
		Eye:        camTransform.Position(),
		FOV:        cam.FOV,
		Near:       cam.Near,
		Far:        cam.Far,
		Width:      float64(bounds.Dx()),
		Height:     float64(bounds.Dy()),
		FogColor:   cam.FogColor,
		FogDensity: cam.FogDensity,
	}

	bg := cam.Background
	if bg.A == 0 {
		bg = cam.FogColor
	}
	screen.Fill(bg)

	ecs.ForEach(w, component.StarfieldComponent.Kind(), func(_ ecs.Entity, sf *component.Starfield) {
		r.drawStarfield(screen, view, sf)
	})

	var items []drawable
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.MeshComponent.Kind(), func(_ ecs.Entity, t *component.Transform, m *component.Mesh) {
		p := t.Position()
		items = append(items, drawable{transform: t, mesh: m, depth: view.Depth(p)})
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].depth > items[j].depth })

	for _, it := range items {
		r.drawMesh(screen, view, it)
	}
}

func (r *RenderSystem) drawStarfield(screen *ebiten.Image, view render.View, sf *component.Starfield) {
	for _, pt := range sf.Points {
		p := common.RotateXYZ(pt, sf.RotX, sf.RotY, sf.RotZ)
		sp, ok := view.Project(p)
		if !ok {
			continue
		}
		c := view.Shade(sf.Color, 1, sp.Depth)
		if c == view.FogColor {
			continue
		}
		size := float32(max(1, view.Scale(sf.Size, sp.Depth)))
		vector.DrawFilledRect(screen, float32(sp.X)-size/2, float32(sp.Y)-size/2, size, size, c, false)
	}
}

func (r *RenderSystem) drawMesh(screen *ebiten.Image, view render.View, it drawable) {
	t, m := it.transform, it.mesh
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	centre := t.Position()

	switch m.Shape {
	case component.MeshBox:
		faces := render.BoxFaces(centre, m.Width*scale, m.Height*scale, m.Depth*scale, t.Yaw, view.Eye)
		sort.SliceStable(faces, func(i, j int) bool {
			return view.Depth(faces[i].Centre()) > view.Depth(faces[j].Centre())
		})
		for _, f := range faces {
			r.drawPolygon(screen, view, f.Corners[:], view.Shade(m.Color, f.Light, view.Depth(f.Centre())))
		}
	case component.MeshSphere:
		sp, ok := view.Project(centre)
		if !ok {
			return
		}
		radius := float32(view.Scale(m.Radius*scale, sp.Depth))
		vector.DrawFilledCircle(screen, float32(sp.X), float32(sp.Y), radius, view.Shade(m.Color, 0.9, sp.Depth), true)
	case component.MeshTorus:
		ring := render.Ring(centre, m.Radius*scale, t.Yaw, ringSegments)
		tube := float32(view.Scale(m.Radius*scale*0.35, it.depth))
		c := view.Shade(m.Color, 0.9, it.depth)
		for i := range ring {
			a, okA := view.Project(ring[i])
			b, okB := view.Project(ring[(i+1)%len(ring)])
			if !okA || !okB {
				continue
			}
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), tube, c, true)
		}
	}
}

// drawPolygon fills a convex polygon after clipping it to the near plane.
func (r *RenderSystem) drawPolygon(screen *ebiten.Image, view render.View, poly []mgl64.Vec3, c color.NRGBA) {
	clipped := view.ClipNear(poly)
	if len(clipped) < 3 {
		return
	}
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	cr := float32(c.R) / 0xff
	cg := float32(c.G) / 0xff
	cb := float32(c.B) / 0xff
	ca := float32(c.A) / 0xff

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, p := range clipped {
		sp, ok := view.Project(p)
		if !ok {
			// past the far plane; the fog hides it anyway
			return
		}
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX: float32(sp.X), DstY: float32(sp.Y),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	for i := 1; i+1 < len(r.vertices); i++ {
		r.indices = append(r.indices, 0, uint16(i), uint16(i+1))
	}
	screen.DrawTriangles(r.vertices, r.indices, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
