package render

import "github.com/go-gl/mathgl/mgl64"

// ClipNear cuts a convex polygon against the near plane, keeping the part in
// front of the eye. The result is empty when nothing is visible.
func (v View) ClipNear(poly []mgl64.Vec3) []mgl64.Vec3 {
	if len(poly) == 0 {
		return nil
	}
	inside := func(p mgl64.Vec3) bool { return v.Depth(p) >= v.Near }
	out := make([]mgl64.Vec3, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		switch {
		case inside(cur) && inside(prev):
			out = append(out, cur)
		case inside(cur):
			out = append(out, v.nearCrossing(prev, cur), cur)
		case inside(prev):
			out = append(out, v.nearCrossing(prev, cur))
		}
		prev = cur
	}
	return out
}

func (v View) nearCrossing(a, b mgl64.Vec3) mgl64.Vec3 {
	da, db := v.Depth(a)-v.Near, v.Depth(b)-v.Near
	t := da / (da - db)
	return a.Add(b.Sub(a).Mul(t))
}
