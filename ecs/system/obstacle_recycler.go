package system

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
)

// Scrollable is one obstacle as seen by the recycler: its visual pose and,
// once the physics step created it, its body.
type Scrollable struct {
	Entity    ecs.Entity
	Transform *component.Transform
	Body      *component.PhysicsBody
	Obstacle  *component.Obstacle
}

func (o Scrollable) position() mgl64.Vec3 {
	if o.Body != nil && o.Body.Track != nil {
		return o.Body.Position()
	}
	return o.Transform.Position()
}

func (o Scrollable) place(p mgl64.Vec3) {
	if o.Body != nil {
		o.Body.SetPosition(p)
	}
	o.sync(p)
}

// sync copies the physics pose onto the visual one. Spinning obstacles keep
// their own yaw.
func (o Scrollable) sync(p mgl64.Vec3) {
	o.Transform.X, o.Transform.Y, o.Transform.Z = p.Elem()
	if o.Obstacle != nil && o.Obstacle.Spin != 0 {
		o.Transform.Yaw += o.Obstacle.Spin
		return
	}
	if o.Body != nil {
		o.Transform.Yaw = o.Body.Yaw()
	}
}

// Advance moves every obstacle speed units toward the camera. An obstacle
// whose Z passed cameraZ is sent back to spawnZ on a fresh random lane.
func Advance(obstacles []Scrollable, speed, spawnZ, cameraZ float64, rng *rand.Rand) {
	for _, o := range obstacles {
		if o.Transform == nil {
			continue
		}
		p := o.position()
		p[2] += speed
		if p.Z() > cameraZ {
			p[0] = lane.RandomX(rng)
			p[2] = spawnZ
		}
		o.place(p)
	}
}

// Relocate sends a single obstacle back to spawnZ on a random lane.
func Relocate(o Scrollable, spawnZ float64, rng *rand.Rand) {
	if o.Transform == nil {
		return
	}
	p := o.position()
	p[0] = lane.RandomX(rng)
	p[2] = spawnZ
	o.place(p)
}

// ResetAll puts every obstacle on a random lane at spawnZ and stops it.
func ResetAll(obstacles []Scrollable, spawnZ float64, rng *rand.Rand) {
	for _, o := range obstacles {
		Relocate(o, spawnZ, rng)
		if o.Body != nil {
			o.Body.SetVelocity(mgl64.Vec3{})
		}
	}
}

// Obstacles collects the obstacles of one category in entity order.
func Obstacles(w *ecs.World, category component.ObstacleCategory) []Scrollable {
	var out []Scrollable
	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, obs *component.Obstacle, t *component.Transform) {
		if obs.Category != category {
			return
		}
		o := Scrollable{Entity: e, Transform: t, Obstacle: obs}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			o.Body = body
		}
		out = append(out, o)
	})
	return out
}

// ObstacleRecyclerSystem advances each obstacle collection once per frame
// while the round is running.
type ObstacleRecyclerSystem struct {
	rng *rand.Rand
}

func NewObstacleRecyclerSystem(rng *rand.Rand) *ObstacleRecyclerSystem {
	return &ObstacleRecyclerSystem{rng: rng}
}

func (s *ObstacleRecyclerSystem) Update(w *ecs.World) {
	if s == nil || w == nil || !roundRunning(w) {
		return
	}
	scroll, ok := scrollOf(w)
	if !ok {
		return
	}
	for _, category := range []component.ObstacleCategory{component.CategoryPowerup, component.CategoryEnemy} {
		Advance(Obstacles(w, category), scroll.SpeedFor(category), scroll.SpawnZ, scroll.CameraZ, s.rng)
	}
}

func scrollOf(w *ecs.World) (*component.Scroll, bool) {
	e, ok := ecs.First(w, component.ScrollComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.ScrollComponent.Kind())
}
