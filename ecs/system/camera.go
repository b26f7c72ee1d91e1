package system

import (
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
)

// CameraSystem keeps the camera's X on the player. Height and depth stay
// where the prefab put them.
type CameraSystem struct {
	lastX float64
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	camEnt, ok := ecs.First(w, component.CameraTagComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camEnt, component.CameraComponent.Kind())
	if !ok || !cam.FollowX {
		return
	}
	camT, ok := ecs.Get(w, camEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}

	// after the player is removed the camera stays where it last was
	if playerEnt, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if pt, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind()); ok {
			s.lastX = pt.X
		}
	}
	camT.X = s.lastX
}
