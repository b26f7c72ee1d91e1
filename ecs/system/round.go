package system

import (
	"math/rand/v2"

	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"go.uber.org/zap"
)

// RoundSystem owns the round phase: start and restart commands, the frame
// counter, the win threshold and the removal of the player once the round is
// over.
type RoundSystem struct {
	rng    *rand.Rand
	logger *zap.Logger
}

func NewRoundSystem(rng *rand.Rand, logger *zap.Logger) *RoundSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoundSystem{rng: rng, logger: logger}
}

func (s *RoundSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	roundEnt, ok := ecs.First(w, component.RoundComponent.Kind())
	if !ok {
		return
	}
	round, _ := ecs.Get(w, roundEnt, component.RoundComponent.Kind())

	var input component.Input
	if e, ok := ecs.First(w, component.InputComponent.Kind()); ok {
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			input = *in
		}
	}

	switch {
	case round.Phase == component.PhaseReady && input.StartPressed:
		s.Start(w)
	case round.Over() && input.RestartPressed:
		round.RestartRequested = true
	}

	if round.Phase == component.PhaseRunning {
		round.Frames++
		if round.WinScore > 0 && round.Score >= round.WinScore {
			round.Phase = component.PhaseWon
			RequestCue(w, component.CueRequest{Name: component.CueWin})
			s.logger.Info("round won", zap.String("round", round.ID), zap.Int("score", round.Score), zap.Int("frames", round.Frames))
		}
	}

	if round.Over() && !round.PlayerRemoved {
		removePlayers(w)
		round.PlayerRemoved = true
		RequestCue(w, component.CueRequest{Name: component.CueBackground, Stop: true})
	}
}

// Start moves a ready round into the running phase. Every obstacle goes back
// to the spawn depth on a fresh lane first. It reports false when the round
// is not ready.
func (s *RoundSystem) Start(w *ecs.World) bool {
	if s == nil || w == nil {
		return false
	}
	roundEnt, ok := ecs.First(w, component.RoundComponent.Kind())
	if !ok {
		return false
	}
	round, _ := ecs.Get(w, roundEnt, component.RoundComponent.Kind())
	if round.Phase != component.PhaseReady {
		return false
	}
	if scroll, ok := scrollOf(w); ok && s.rng != nil {
		for _, category := range []component.ObstacleCategory{component.CategoryPowerup, component.CategoryEnemy} {
			ResetAll(Obstacles(w, category), scroll.SpawnZ, s.rng)
		}
	}
	round.Phase = component.PhaseRunning
	RequestCue(w, component.CueRequest{Name: component.CueBackground, Loop: true})
	s.logger.Info("round started", zap.String("round", round.ID))
	return true
}

func removePlayers(w *ecs.World) {
	for _, e := range w.Query(component.PlayerTagComponent.Kind()) {
		w.DestroyEntity(e)
	}
}
