package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/logging"
	"github.com/milk9111/lanerunner/prefabs"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and the debug HUD")
	seed := flag.String("seed", "", "seed for obstacle lanes (random when empty)")
	sounds := flag.String("sounds", "", "directory of <cue>.wav files that replace the synthesized cues")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "hot reload game.yaml and the difficulty script")
	prefabDir := flag.String("prefabs", "prefabs", "directory whose files override the embedded prefabs")
	volume := flag.Float64("volume", 0.8, "cue volume in [0, 1]")
	flag.Parse()

	logger, err := logging.New(logging.Options{Debug: *debug})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	prefabs.Dir = *prefabDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("lanerunner")
	ebiten.SetTPS(common.TPS)

	game, cleanup, err := InitializeGame(Config{
		Debug:     *debug,
		Seed:      *seed,
		SoundsDir: *sounds,
		Watch:     *watch,
		Volume:    *volume,
	}, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}

	err = ebiten.RunGame(game)
	cleanup()
	if err != nil {
		logger.Fatal("game stopped", zap.Error(err))
	}
}
