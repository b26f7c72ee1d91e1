package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/lane"
	"github.com/milk9111/lanerunner/prefabs"
)

// BuildRound fills w with the entities of a fresh round: the controls entity
// carrying round state, input and scroll settings, the scene prefabs and the
// obstacle collections.
func BuildRound(w *ecs.World, spec prefabs.GameSpec, roundID string, rng *rand.Rand) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build round: world is nil")
	}

	controls := ecs.CreateEntity(w)
	if err := ecs.Add(w, controls, component.RoundComponent.Kind(), &component.Round{
		ID:       roundID,
		Phase:    component.PhaseReady,
		WinScore: spec.WinScore,
	}); err != nil {
		return 0, fmt.Errorf("build round: %w", err)
	}
	if err := ecs.Add(w, controls, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("build round: %w", err)
	}
	if err := ecs.Add(w, controls, component.ScrollComponent.Kind(), ScrollFromSpec(spec)); err != nil {
		return 0, fmt.Errorf("build round: %w", err)
	}

	for _, prefab := range []string{spec.Ground, spec.Camera, spec.Starfield, spec.Player} {
		if prefab == "" {
			continue
		}
		e, err := BuildEntity(w, prefab, rng)
		if err != nil {
			return 0, fmt.Errorf("build round: %w", err)
		}
		if ecs.Has(w, e, component.CameraTagComponent.Kind()) {
			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				t.Z = spec.Scroll.CameraZ
			}
		}
	}

	for _, set := range spec.Obstacles {
		buildSpec, err := prefabs.LoadEntityBuildSpec(set.Prefab)
		if err != nil {
			return 0, fmt.Errorf("build round: %w", err)
		}
		for i := 0; i < set.Count; i++ {
			e, err := BuildEntityFromSpec(w, set.Prefab, buildSpec, rng)
			if err != nil {
				return 0, fmt.Errorf("build round: %w", err)
			}
			if !ecs.Has(w, e, component.ObstacleComponent.Kind()) {
				return 0, fmt.Errorf("build round: %q is not an obstacle prefab", set.Prefab)
			}
			t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			if !ok {
				return 0, fmt.Errorf("build round: %q has no transform", set.Prefab)
			}
			t.X = lane.RandomX(rng)
			t.Z = spec.Scroll.SpawnZ
		}
	}

	return controls, nil
}

// ScrollFromSpec converts the scroll tuning into its component.
func ScrollFromSpec(spec prefabs.GameSpec) *component.Scroll {
	return &component.Scroll{
		PowerupSpeed: spec.Scroll.PowerupSpeed,
		EnemySpeed:   spec.Scroll.EnemySpeed,
		Multiplier:   1,
		SpawnZ:       spec.Scroll.SpawnZ,
		CameraZ:      spec.Scroll.CameraZ,
	}
}
