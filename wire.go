//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"
)

func InitializeGame(cfg Config, logger *zap.Logger) (*Game, func(), error) {
	wire.Build(
		provideSpec,
		provideWatcher,
		provideCueBank,
		provideAudioSystem,
		provideSession,
		NewGame,
	)
	return nil, nil, nil
}
