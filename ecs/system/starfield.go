package system

import (
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
)

type StarfieldSystem struct{}

func NewStarfieldSystem() *StarfieldSystem {
	return &StarfieldSystem{}
}

func (s *StarfieldSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.StarfieldComponent.Kind(), func(_ ecs.Entity, sf *component.Starfield) {
		sf.RotX += sf.SpinX
		sf.RotY += sf.SpinY
		sf.RotZ += sf.SpinZ
	})
}
