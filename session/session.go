// Package session owns one game: the world, the system schedule, the random
// source and the tuning. Frontends drive it one fixed step per frame.
package session

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/ecs/entity"
	"github.com/milk9111/lanerunner/ecs/system"
	"github.com/milk9111/lanerunner/logging"
	"github.com/milk9111/lanerunner/prefabs"
	"go.uber.org/zap"
)

// Options configures a session.
type Options struct {
	Spec prefabs.GameSpec
	// SpecFile is the tuning file name watched for hot reload.
	SpecFile string
	// Seed is hashed into the random source. Empty draws a random seed.
	Seed   string
	Logger *zap.Logger
	// Input runs first every frame and writes intents into the Input
	// component.
	Input ecs.System
	// Presentation runs after the simulation, before cue requests are
	// swept. These systems outlive rounds.
	Presentation []ecs.System
	// Watcher, when set, is polled every frame for tuning changes.
	Watcher *prefabs.Watcher
}

type Session struct {
	opts   Options
	spec   prefabs.GameSpec
	logger *zap.Logger

	seed uint64
	rng  *rand.Rand

	world      *ecs.World
	scheduler  *ecs.Scheduler
	difficulty *system.DifficultySystem
	rounds     *system.RoundSystem
	scriptSrc  []byte
	roundID    string

	pending component.Input
}

// SeedFrom hashes a seed string into the PCG seed.
func SeedFrom(seed string) uint64 {
	return xxhash.Sum64String(seed)
}

// New validates the tuning, loads the difficulty script and builds the first
// round in the ready phase.
func New(opts Options) (*Session, error) {
	if err := opts.Spec.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if opts.SpecFile == "" {
		opts.SpecFile = "game.yaml"
	}

	s := &Session{
		opts:   opts,
		spec:   opts.Spec,
		logger: logging.OrNop(opts.Logger),
	}

	if opts.Seed != "" {
		s.seed = SeedFrom(opts.Seed)
	} else {
		s.seed = rand.Uint64()
	}
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	s.logger = s.logger.With(zap.Uint64("seed", s.seed))

	s.scriptSrc = s.loadScript(s.spec.DifficultyScript)

	if err := s.newRound(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) loadScript(name string) []byte {
	if name == "" {
		return nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		s.logger.Warn("difficulty script unavailable, using base speed", zap.String("script", name), zap.Error(err))
		return nil
	}
	return src
}

func (s *Session) newRound() error {
	world := ecs.NewWorld()
	roundID := uuid.NewString()
	if _, err := entity.BuildRound(world, s.spec, roundID, s.rng); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	difficulty := system.NewDifficultySystem(s.scriptSrc, s.logger)

	scheduler := ecs.NewScheduler()
	if s.opts.Input != nil {
		scheduler.Add(s.opts.Input)
	}
	scheduler.Add(system.NewPlayerMotionSystem())
	scheduler.Add(system.NewObstacleRecyclerSystem(s.rng))
	scheduler.Add(system.NewPhysicsSystem())
	scheduler.Add(system.NewLaneSettleSystem())
	scheduler.Add(system.NewCollisionSystem(s.rng, s.logger))
	rounds := system.NewRoundSystem(s.rng, s.logger)
	scheduler.Add(rounds)
	scheduler.Add(system.NewCameraSystem())
	scheduler.Add(system.NewStarfieldSystem())
	scheduler.Add(difficulty)
	for _, p := range s.opts.Presentation {
		scheduler.Add(p)
	}
	scheduler.Add(system.NewCueSweepSystem())

	s.world = world
	s.scheduler = scheduler
	s.difficulty = difficulty
	s.rounds = rounds
	s.roundID = roundID
	s.pending = component.Input{}
	s.logger.Debug("round built", zap.String("round", roundID))
	return nil
}

// World returns the world of the current round. It changes on Restart.
func (s *Session) World() *ecs.World {
	return s.world
}

// Scheduler returns the system schedule of the current round.
func (s *Session) Scheduler() *ecs.Scheduler {
	return s.scheduler
}

func (s *Session) Spec() prefabs.GameSpec {
	return s.spec
}

func (s *Session) Seed() uint64 {
	return s.seed
}

// Round returns a copy of the current round state.
func (s *Session) Round() component.Round {
	if r := s.round(); r != nil {
		return *r
	}
	return component.Round{}
}

func (s *Session) round() *component.Round {
	e, ok := ecs.First(s.world, component.RoundComponent.Kind())
	if !ok {
		return nil
	}
	r, _ := ecs.Get(s.world, e, component.RoundComponent.Kind())
	return r
}

// PushInput queues intents for the next Update.
func (s *Session) PushInput(in component.Input) {
	s.pending.Merge(in)
}

// Start moves a ready round into play with freshly placed obstacles, the
// same way a start intent does. It reports false when the round is not ready.
func (s *Session) Start() bool {
	return s.rounds.Start(s.world)
}

// Restart discards the world and starts a fresh round straight away: score
// 0, middle lane, new obstacles.
func (s *Session) Restart() error {
	prev := s.roundID
	if err := s.newRound(); err != nil {
		return err
	}
	s.Start()
	s.logger.Info("round restarted", zap.String("previous", prev), zap.String("round", s.roundID))
	return nil
}

// Update runs one fixed step.
func (s *Session) Update() error {
	s.reloadTuning()

	var input *component.Input
	if e, ok := ecs.First(s.world, component.InputComponent.Kind()); ok {
		input, _ = ecs.Get(s.world, e, component.InputComponent.Kind())
	}
	if input != nil {
		input.Merge(s.pending)
	}
	s.pending = component.Input{}

	s.scheduler.Update(s.world)

	if input != nil {
		input.Clear()
	}

	if round := s.round(); round != nil && round.RestartRequested {
		return s.Restart()
	}
	return nil
}

func (s *Session) reloadTuning() {
	w := s.opts.Watcher
	if w == nil {
		return
	}
	for _, change := range w.Poll() {
		s.reloadFile(change)
	}
	if err := w.Err(); err != nil {
		s.logger.Warn("prefab watcher error", zap.Error(err))
	}
}

// reloadFile applies a changed tuning file or difficulty script. Failures
// keep the previous settings. Prefab edits other than the tuning file apply
// from the next round, when the world is rebuilt.
func (s *Session) reloadFile(change prefabs.Change) {
	name, base := change.Path, change.Base()
	switch {
	case change.Kind == prefabs.ChangeTuning && base == filepath.Base(s.opts.SpecFile):
		spec, err := prefabs.LoadGameSpec(s.opts.SpecFile)
		if err != nil {
			s.logger.Warn("tuning reload failed", zap.String("file", name), zap.Error(err))
			return
		}
		if err := s.ApplyTuning(spec); err != nil {
			s.logger.Warn("tuning reload rejected", zap.String("file", name), zap.Error(err))
			return
		}
		s.logger.Info("tuning reloaded", zap.String("file", name))
	case change.Kind == prefabs.ChangeScript && s.spec.DifficultyScript != "" && base == filepath.Base(s.spec.DifficultyScript):
		src, err := prefabs.LoadScript(s.spec.DifficultyScript)
		if err != nil {
			s.logger.Warn("difficulty reload failed", zap.String("file", name), zap.Error(err))
			return
		}
		if err := s.difficulty.Reload(src); err != nil {
			s.logger.Warn("difficulty reload rejected", zap.String("file", name), zap.Error(err))
			return
		}
		s.scriptSrc = src
		s.logger.Info("difficulty reloaded", zap.String("file", name))
	}
}

// ApplyTuning switches to spec. Scroll speeds, spawn and camera depth and the
// win score change immediately; obstacle sets and prefabs apply from the
// next round.
func (s *Session) ApplyTuning(spec prefabs.GameSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	scriptChanged := spec.DifficultyScript != s.spec.DifficultyScript
	s.spec = spec

	if e, ok := ecs.First(s.world, component.ScrollComponent.Kind()); ok {
		scroll, _ := ecs.Get(s.world, e, component.ScrollComponent.Kind())
		fresh := entity.ScrollFromSpec(spec)
		fresh.Multiplier = scroll.Multiplier
		*scroll = *fresh
	}
	if round := s.round(); round != nil {
		round.WinScore = spec.WinScore
	}
	for _, e := range s.world.Query(component.CameraTagComponent.Kind(), component.TransformComponent.Kind()) {
		t, _ := ecs.Get(s.world, e, component.TransformComponent.Kind())
		t.Z = spec.Scroll.CameraZ
	}

	if scriptChanged {
		s.scriptSrc = s.loadScript(spec.DifficultyScript)
		if err := s.difficulty.Reload(s.scriptSrc); err != nil {
			s.logger.Warn("difficulty script rejected", zap.Error(err))
		}
	}
	return nil
}
