package system

import (
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
)

// CueSweepSystem destroys cue requests left over at the end of the frame,
// whether or not an audio backend consumed them.
type CueSweepSystem struct{}

func NewCueSweepSystem() *CueSweepSystem {
	return &CueSweepSystem{}
}

func (s *CueSweepSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, e := range w.Query(component.CueRequestComponent.Kind()) {
		w.DestroyEntity(e)
	}
}
