package main

import (
	"context"
	"path/filepath"

	"github.com/milk9111/lanerunner/assets"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/presentation"
	"github.com/milk9111/lanerunner/prefabs"
	"github.com/milk9111/lanerunner/session"
	"go.uber.org/zap"
)

// Config carries the command-line switches.
type Config struct {
	Debug     bool
	Seed      string
	SoundsDir string
	Watch     bool
	Volume    float64
}

const specFile = "game.yaml"

func provideSpec() (prefabs.GameSpec, error) {
	return prefabs.LoadGameSpec(specFile)
}

// provideWatcher returns a nil watcher when hot reload is off or the prefab
// directory is missing.
func provideWatcher(cfg Config, logger *zap.Logger) (*prefabs.Watcher, func()) {
	if !cfg.Watch {
		return nil, func() {}
	}
	w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
	if err != nil {
		logger.Warn("hot reload disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		return nil, func() {}
	}
	return w, func() { _ = w.Close() }
}

func provideCueBank(cfg Config, logger *zap.Logger) (assets.CueBank, error) {
	return assets.LoadCues(context.Background(), cfg.SoundsDir, logger).Wait()
}

func provideAudioSystem(cfg Config, bank assets.CueBank, logger *zap.Logger) *presentation.AudioSystem {
	return presentation.NewAudioSystem(bank, cfg.Volume, logger)
}

func provideSession(cfg Config, spec prefabs.GameSpec, watcher *prefabs.Watcher, audio *presentation.AudioSystem, logger *zap.Logger) (*session.Session, error) {
	return session.New(session.Options{
		Spec:     spec,
		SpecFile: specFile,
		Seed:     cfg.Seed,
		Logger:   logger,
		Input:    presentation.NewInputSystem(),
		Presentation: []ecs.System{
			presentation.NewRenderSystem(),
			presentation.NewHUDSystem(cfg.Debug),
			audio,
		},
		Watcher: watcher,
	})
}
