// Command laneterm plays lanerunner in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/logging"
	"github.com/milk9111/lanerunner/prefabs"
	"github.com/milk9111/lanerunner/session"
	"go.uber.org/zap"
)

func main() {
	seed := flag.String("seed", "", "seed for obstacle lanes (random when empty)")
	debug := flag.Bool("debug", false, "log at debug level")
	logPath := flag.String("log", "", "write logs to this file (the screen has no room for them)")
	prefabDir := flag.String("prefabs", "prefabs", "directory whose files override the embedded prefabs")
	flag.Parse()

	logger := zap.NewNop()
	if *logPath != "" {
		l, err := logging.New(logging.Options{Debug: *debug, OutputPaths: []string{*logPath}})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	if err := run(*seed, *prefabDir, logger); err != nil {
		logger.Error("laneterm stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(seed, prefabDir string, logger *zap.Logger) error {
	prefabs.Dir = prefabDir
	spec, err := prefabs.LoadGameSpec("game.yaml")
	if err != nil {
		return err
	}

	sess, err := session.New(session.Options{
		Spec:         spec,
		Seed:         seed,
		Logger:       logger,
		Presentation: []ecs.System{NewLaneView()},
	})
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("laneterm: screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("laneterm: init screen: %w", err)
	}
	defer screen.Fini()

	return NewTerminal(screen, sess, logger).Run()
}
