package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"go.uber.org/zap"
)

const difficultyDispatchScript = `
__result := speed(__base, __score, __frame)
`

// DifficultySystem evaluates the difficulty script's speed(base, score,
// frame) and writes the resulting scale onto the scroll settings. A script
// that fails to compile or run leaves the base speed in place.
type DifficultySystem struct {
	compiled *tengo.Compiled
	logger   *zap.Logger
	failed   bool
}

func NewDifficultySystem(src []byte, logger *zap.Logger) *DifficultySystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DifficultySystem{logger: logger}
	if len(strings.TrimSpace(string(src))) == 0 {
		return s
	}
	compiled, err := compileDifficulty(src)
	if err != nil {
		logger.Warn("difficulty script disabled", zap.Error(err))
		s.failed = true
		return s
	}
	s.compiled = compiled
	return s
}

// Reload swaps in a new script. On a compile error the previous script keeps
// running and the error is returned.
func (s *DifficultySystem) Reload(src []byte) error {
	if s == nil {
		return nil
	}
	if len(strings.TrimSpace(string(src))) == 0 {
		s.compiled = nil
		s.failed = false
		return nil
	}
	compiled, err := compileDifficulty(src)
	if err != nil {
		return err
	}
	s.compiled = compiled
	s.failed = false
	return nil
}

func compileDifficulty(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + difficultyDispatchScript))
	_ = script.Add("__base", 0.0)
	_ = script.Add("__score", 0)
	_ = script.Add("__frame", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	// globals stay undefined until the first Run; a script without speed
	// already fails here as an unresolved reference in the dispatch line
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("difficulty: compile: %w", err)
	}
	return compiled, nil
}

// Speed runs the script once. It returns base when the script is missing or
// broken.
func (s *DifficultySystem) Speed(base float64, score, frame int) float64 {
	if s == nil || s.compiled == nil || s.failed {
		return base
	}
	if err := s.compiled.Set("__base", base); err != nil {
		s.fail(err)
		return base
	}
	if err := s.compiled.Set("__score", score); err != nil {
		s.fail(err)
		return base
	}
	if err := s.compiled.Set("__frame", frame); err != nil {
		s.fail(err)
		return base
	}
	if err := s.compiled.Run(); err != nil {
		s.fail(err)
		return base
	}
	v := s.compiled.Get("__result")
	if v == nil || v.IsUndefined() {
		s.fail(fmt.Errorf("difficulty: speed returned undefined"))
		return base
	}
	out := v.Float()
	if out <= 0 || math.IsInf(out, 0) || math.IsNaN(out) {
		s.fail(fmt.Errorf("difficulty: speed returned %v", v.Value()))
		return base
	}
	return out
}

// fail logs the first runtime error and disables the script.
func (s *DifficultySystem) fail(err error) {
	if s.failed {
		return
	}
	s.failed = true
	s.logger.Warn("difficulty script failed, using base speed", zap.Error(err))
}

func (s *DifficultySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	scroll, ok := scrollOf(w)
	if !ok {
		return
	}
	roundEnt, ok := ecs.First(w, component.RoundComponent.Kind())
	if !ok {
		return
	}
	round, _ := ecs.Get(w, roundEnt, component.RoundComponent.Kind())
	if round.Phase != component.PhaseRunning {
		return
	}
	base := scroll.PowerupSpeed
	if base <= 0 {
		scroll.Multiplier = 1
		return
	}
	scroll.Multiplier = s.Speed(base, round.Score, round.Frames) / base
}
