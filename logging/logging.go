// Package logging builds the zap logger shared by both frontends.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger flavour.
type Options struct {
	Debug bool
	// OutputPaths defaults to stderr. The terminal frontend points it at a
	// file so log lines do not tear the screen.
	OutputPaths []string
}

// New builds a logger: console encoding at debug level when Debug is set,
// sampled JSON at info level otherwise.
func New(opts Options) (*zap.Logger, error) {
	outputs := opts.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	level := zapcore.InfoLevel
	encoding := "json"
	encoderConfig := zap.NewProductionEncoderConfig()
	var sampling *zap.SamplingConfig
	if opts.Debug {
		level = zapcore.DebugLevel
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       opts.Debug,
		Sampling:          sampling,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !opts.Debug,
		DisableStacktrace: !opts.Debug,
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger, nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
