package entity

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
	"github.com/milk9111/lanerunner/prefabs"
)

type buildContext struct {
	PrefabPath string
	RNG        *rand.Rand
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"camera_tag":           addCameraTag,
	"ground_tag":           addGroundTag,
	"player":               addPlayer,
	"motion_state_machine": addMotionStateMachine,
	"obstacle":             addObstacle,
	"transform":            addTransform,
	"mesh":                 addMesh,
	"camera":               addCamera,
	"starfield":            addStarfield,
	"physics_body":         addPhysicsBody,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"ground_tag",
	"transform",
	"player",
	"motion_state_machine",
	"obstacle",
	"mesh",
	"camera",
	"starfield",
	"physics_body",
}

// BuildEntity creates an entity from a prefab file. The rng seeds anything
// the prefab randomizes (starfield points).
func BuildEntity(w *ecs.World, prefabPath string, rng *rand.Rand) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec, rng)
}

func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec, rng *rand.Rand) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, RNG: rng}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	extra := make([]string, 0, len(remaining))
	for name := range remaining {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addGroundTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.GroundBandLow >= spec.GroundBandHigh {
		return fmt.Errorf("ground band [%v, %v] is empty", spec.GroundBandLow, spec.GroundBandHigh)
	}
	policy := component.AirShiftPolicy(spec.AirShift)
	switch policy {
	case "":
		policy = component.AirShiftSnap
	case component.AirShiftSnap, component.AirShiftImpulse:
	default:
		return fmt.Errorf("unknown air_shift %q", spec.AirShift)
	}
	start := lane.Lane(spec.StartLane)
	if !start.Valid() {
		return fmt.Errorf("start_lane %d is not a lane", spec.StartLane)
	}

	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		LaneImpulse:    spec.LaneImpulse,
		JumpImpulse:    spec.JumpImpulse,
		FallImpulse:    spec.FallImpulse,
		GroundBandLow:  spec.GroundBandLow,
		GroundBandHigh: spec.GroundBandHigh,
		AirShift:       policy,
	}); err != nil {
		return err
	}

	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X = lane.ToX(start)
	}
	return ecs.Add(w, e, component.LaneMotionComponent.Kind(), &component.LaneMotion{Lane: start})
}

func addMotionStateMachine(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MotionStateMachineComponent.Kind(), &component.MotionStateMachine{})
}

type obstacleSpec = prefabs.ObstacleComponentSpec

func addObstacle(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[obstacleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode obstacle spec: %w", err)
	}
	category := component.ObstacleCategory(spec.Category)
	if category != component.CategoryPowerup && category != component.CategoryEnemy {
		return fmt.Errorf("unknown obstacle category %q", spec.Category)
	}
	return ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{
		Category: category,
		Spin:     spec.Spin,
	})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.Scale == 0 {
		spec.Scale = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:     spec.X,
		Y:     spec.Y,
		Z:     spec.Z,
		Yaw:   spec.Yaw,
		Scale: spec.Scale,
	})
}

type meshSpec = prefabs.MeshComponentSpec

func addMesh(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[meshSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh spec: %w", err)
	}
	shape := component.MeshShape(spec.Shape)
	switch shape {
	case component.MeshBox, component.MeshSphere, component.MeshTorus:
	default:
		return fmt.Errorf("unknown mesh shape %q", spec.Shape)
	}
	return ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
		Shape:  shape,
		Width:  spec.Width,
		Height: spec.Height,
		Depth:  spec.Depth,
		Radius: spec.Radius,
		Color:  spec.Color.NRGBA,
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.FOV <= 0 || spec.FOV >= 180 {
		spec.FOV = 60
	}
	if spec.Near <= 0 {
		spec.Near = 0.1
	}
	if spec.Far <= spec.Near {
		spec.Far = 1000
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		FOV:        spec.FOV,
		Near:       spec.Near,
		Far:        spec.Far,
		FollowX:    spec.FollowX,
		FogColor:   spec.FogColor.NRGBA,
		FogDensity: spec.FogDensity,
		Background: spec.Background.NRGBA,
	})
}

type starfieldSpec = prefabs.StarfieldComponentSpec

// addStarfield scatters the points with the sum of two uniform draws, which
// packs them toward the centre of the cube.
func addStarfield(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[starfieldSpec](raw)
	if err != nil {
		return fmt.Errorf("decode starfield spec: %w", err)
	}
	if spec.Count < 0 {
		return fmt.Errorf("starfield count must not be negative")
	}
	rng := ctx.RNG
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}
	size := spec.Spread
	coord := func() float64 {
		return (rng.Float64()*size+rng.Float64()*size)/2 - size/2
	}
	points := make([]mgl64.Vec3, spec.Count)
	for i := range points {
		points[i] = mgl64.Vec3{coord(), coord(), coord()}
	}
	return ecs.Add(w, e, component.StarfieldComponent.Kind(), &component.Starfield{
		Points: points,
		SpinX:  spec.SpinX,
		SpinY:  spec.SpinY,
		SpinZ:  spec.SpinZ,
		Size:   math.Max(spec.Size, 1),
		Color:  spec.Color.NRGBA,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics_body needs a radius or a width and height")
	}
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return fmt.Errorf("physics_body requires a transform")
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Depth:    spec.Depth,
		Radius:   spec.Radius,
		Mass:     spec.Mass,
		Friction: spec.Friction,
		Static:   spec.Static,
		Gravity:  spec.Gravity,
	})
}
