package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testView() View {
	return View{
		Eye:        mgl64.Vec3{0, 1.5, 5.5},
		FOV:        60,
		Near:       0.1,
		Far:        1000,
		Width:      1280,
		Height:     720,
		FogColor:   color.NRGBA{R: 0xb8, G: 0x86, B: 0x0b, A: 0xff},
		FogDensity: 0.06,
	}
}

func TestProject(t *testing.T) {
	v := testView()
	cases := []struct {
		name  string
		p     mgl64.Vec3
		ok    bool
		check func(t *testing.T, p Point)
	}{
		{
			name: "on_axis_is_centre",
			p:    mgl64.Vec3{0, 1.5, -4.5},
			ok:   true,
			check: func(t *testing.T, p Point) {
				assert.InDelta(t, 640, p.X, 1e-6)
				assert.InDelta(t, 360, p.Y, 1e-6)
				assert.InDelta(t, 10, p.Depth, 1e-9)
			},
		},
		{
			name: "right_lane_is_right",
			p:    mgl64.Vec3{1, 1.5, 0},
			ok:   true,
			check: func(t *testing.T, p Point) {
				assert.Greater(t, p.X, 640.0)
			},
		},
		{
			name: "floor_is_below_centre",
			p:    mgl64.Vec3{0, -0.5, 0},
			ok:   true,
			check: func(t *testing.T, p Point) {
				assert.Greater(t, p.Y, 360.0)
			},
		},
		{name: "behind_eye", p: mgl64.Vec3{0, 0, 6}},
		{name: "past_far", p: mgl64.Vec3{0, 0, -2000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := v.Project(tc.p)
			require.Equal(t, tc.ok, ok)
			if tc.check != nil {
				tc.check(t, p)
			}
		})
	}
}

func TestScaleShrinksWithDepth(t *testing.T) {
	v := testView()
	near := v.Scale(1, 2)
	far := v.Scale(1, 20)
	assert.InDelta(t, near, far*10, 1e-9)
	assert.Zero(t, v.Scale(1, 0))
}

func TestProjectAgreesWithScale(t *testing.T) {
	v := testView()
	for _, depth := range []float64{1, 4, 12} {
		z := v.Eye.Z() - depth
		centre, ok := v.Project(mgl64.Vec3{0, 1.5, z})
		require.True(t, ok)
		right, ok := v.Project(mgl64.Vec3{1, 1.5, z})
		require.True(t, ok)
		assert.InDelta(t, v.Scale(1, depth), right.X-centre.X, 1e-6, "depth %v", depth)
		assert.InDelta(t, depth, right.Depth, 1e-9)
	}
}

func TestBoxFacesYawKeepsExtents(t *testing.T) {
	faces := BoxFaces(mgl64.Vec3{0, 0, -5}, 1, 2, 1, math.Pi/4, mgl64.Vec3{0, 1.5, 5.5})
	require.NotEmpty(t, faces)
	for _, f := range faces {
		for _, c := range f.Corners {
			assert.InDelta(t, 1, math.Abs(c.Y()), 1e-9)
			assert.InDelta(t, math.Sqrt(0.5), math.Hypot(c.X(), c.Z()+5), 1e-9)
		}
	}
}

func TestFogAndShade(t *testing.T) {
	v := testView()
	assert.Zero(t, v.Fog(0))
	assert.Less(t, v.Fog(5), v.Fog(15))
	assert.InDelta(t, 1, v.Fog(500), 1e-9)

	red := color.NRGBA{R: 0xff, A: 0xff}
	assert.Equal(t, red, v.Shade(red, 1, 0))
	assert.Equal(t, v.FogColor, v.Shade(red, 1, 500))
}

func TestBoxFacesFacingEye(t *testing.T) {
	eye := mgl64.Vec3{0, 1.5, 5.5}

	faces := BoxFaces(mgl64.Vec3{0, 0, -5}, 1, 1, 1, 0, eye)
	assert.Len(t, faces, 2, "front and top")
	for _, f := range faces {
		assert.True(t, f.Normal == mgl64.Vec3{0, 0, 1} || f.Normal == mgl64.Vec3{0, 1, 0})
	}

	faces = BoxFaces(mgl64.Vec3{1, 0, -5}, 1, 1, 1, 0, eye)
	assert.Len(t, faces, 3, "a box off to the right also shows its left side")
}

func TestLightFavoursTop(t *testing.T) {
	assert.Greater(t, Light(mgl64.Vec3{0, 1, 0}), Light(mgl64.Vec3{0, 0, 1}))
	assert.InDelta(t, ambient, Light(mgl64.Vec3{0, -1, 0}), 1e-9)
}

func TestRing(t *testing.T) {
	pts := Ring(mgl64.Vec3{0, 0, -3}, 0.2, 0, 8)
	require.Len(t, pts, 8)
	for _, p := range pts {
		assert.InDelta(t, -3, p.Z(), 1e-9)
		assert.InDelta(t, 0.2, math.Hypot(p.X(), p.Y()), 1e-9)
	}
}
