package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Cue is a named sound ready for playback. A cue with no PCM is muted.
type Cue struct {
	Name string
	PCM  []byte
	Loop bool
}

// CueBank holds every cue by name.
type CueBank map[string]Cue

// CueFuture resolves the cue loads started by LoadCues.
type CueFuture struct {
	group *errgroup.Group
	cues  []Cue
	err   error
}

// LoadCues starts one load per recipe. A WAV file named after the cue in
// soundsDir replaces the synthesized sound. Load failures are logged and mute
// the cue; they never fail the future.
func LoadCues(ctx context.Context, soundsDir string, logger *zap.Logger) *CueFuture {
	if logger == nil {
		logger = zap.NewNop()
	}
	recipes, err := LoadRecipes()
	if err != nil {
		return &CueFuture{err: err}
	}

	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	sort.Strings(names)

	g, ctx := errgroup.WithContext(ctx)
	f := &CueFuture{group: g, cues: make([]Cue, len(names))}
	for i, name := range names {
		recipe := recipes[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f.cues[i] = loadCue(name, recipe, soundsDir, logger)
			return nil
		})
	}
	return f
}

// Wait blocks until every load finished.
func (f *CueFuture) Wait() (CueBank, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := f.group.Wait(); err != nil {
		return nil, fmt.Errorf("assets: load cues: %w", err)
	}
	bank := make(CueBank, len(f.cues))
	for _, c := range f.cues {
		bank[c.Name] = c
	}
	return bank, nil
}

func loadCue(name string, recipe CueRecipe, soundsDir string, logger *zap.Logger) Cue {
	cue := Cue{Name: name, Loop: recipe.Loop}
	log := logger.With(zap.String("cue", name))

	if soundsDir != "" {
		path := filepath.Join(soundsDir, name+".wav")
		pcm, err := loadOverride(path)
		switch {
		case err == nil:
			cue.PCM = pcm
			log.Debug("cue override loaded", zap.String("path", path))
			return cue
		case errors.Is(err, fs.ErrNotExist):
			log.Warn("cue override missing, using synthesized cue", zap.String("path", path))
		default:
			log.Warn("cue override unreadable, cue muted", zap.String("path", path), zap.Error(err))
			return cue
		}
	}

	pcm, err := Synthesize(recipe)
	if err != nil {
		log.Warn("cue synthesis failed, cue muted", zap.Error(err))
		return cue
	}
	cue.PCM = pcm
	return cue
}

func loadOverride(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return decodeWAV(file)
}
