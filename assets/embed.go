package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *.yaml
var assetsFS embed.FS

// SampleRate is the rate of every cue and of the audio context.
const SampleRate = 44100

var (
	audioContext     *audio.Context
	audioContextOnce sync.Once
)

// AudioContext returns the process-wide ebiten audio context, creating it on
// first use. Ebiten allows only one.
func AudioContext() *audio.Context {
	audioContextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// NewCuePlayer creates a player for a cue. Looping cues restart from the
// beginning when they run out.
func NewCuePlayer(cue Cue) (*audio.Player, error) {
	if len(cue.PCM) == 0 {
		return nil, fmt.Errorf("assets: cue %q is muted", cue.Name)
	}
	ctx := AudioContext()
	if cue.Loop {
		loop := audio.NewInfiniteLoop(bytes.NewReader(cue.PCM), int64(len(cue.PCM)))
		return ctx.NewPlayer(loop)
	}
	return ctx.NewPlayerFromBytes(cue.PCM), nil
}

// decodeWAV converts a WAV file into 16-bit little-endian stereo PCM at
// SampleRate.
func decodeWAV(r io.Reader) ([]byte, error) {
	stream, err := wav.DecodeWithSampleRate(SampleRate, r)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	return pcm, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
