package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"gopkg.in/yaml.v3"
)

// Wave names an oscillator shape.
type Wave string

const (
	WaveSine   Wave = "sine"
	WaveSquare Wave = "square"
	WaveSaw    Wave = "saw"
)

// CueRecipe describes a synthesized cue.
type CueRecipe struct {
	Loop   bool    `yaml:"loop"`
	Volume float64 `yaml:"volume"`
	Voices []Voice `yaml:"voices"`
}

type Voice struct {
	Wave      Wave    `yaml:"wave"`
	Volume    float64 `yaml:"volume"`
	AttackMs  float64 `yaml:"attack_ms"`
	ReleaseMs float64 `yaml:"release_ms"`
	Notes     []Note  `yaml:"notes"`
}

// Note is one pitch held for Ms milliseconds. Freq 0 is a rest.
type Note struct {
	Freq float64 `yaml:"freq"`
	Ms   float64 `yaml:"ms"`
}

const rate = beep.SampleRate(SampleRate)

// LoadRecipes decodes the embedded cue recipes.
func LoadRecipes() (map[string]CueRecipe, error) {
	data, err := LoadFile("cues.yaml")
	if err != nil {
		return nil, fmt.Errorf("assets: load cues: %w", err)
	}
	var recipes map[string]CueRecipe
	if err := yaml.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("assets: unmarshal cues: %w", err)
	}
	return recipes, nil
}

func ms(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}

// Samples returns the length of the recipe in samples: its longest voice.
func (r CueRecipe) Samples() int {
	longest := 0
	for _, v := range r.Voices {
		n := 0
		for _, note := range v.Notes {
			n += rate.N(ms(note.Ms))
		}
		longest = max(longest, n)
	}
	return longest
}

// Synthesize renders a recipe to 16-bit little-endian stereo PCM.
func Synthesize(r CueRecipe) ([]byte, error) {
	total := r.Samples()
	if total == 0 {
		return nil, fmt.Errorf("assets: recipe has no notes")
	}

	voices := make([]beep.Streamer, 0, len(r.Voices))
	for i, v := range r.Voices {
		s, err := voiceStreamer(v)
		if err != nil {
			return nil, fmt.Errorf("assets: voice %d: %w", i, err)
		}
		voices = append(voices, s)
	}

	mixed := withVolume(beep.Take(total, beep.Mix(voices...)), r.Volume)
	return renderPCM(mixed, total)
}

func voiceStreamer(v Voice) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(v.Notes))
	for _, note := range v.Notes {
		d := ms(note.Ms)
		n := rate.N(d)
		if n <= 0 {
			continue
		}
		if note.Freq <= 0 {
			notes = append(notes, beep.Silence(n))
			continue
		}
		osc, err := oscillator(v.Wave, note.Freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, newEnvelope(beep.Take(n, osc), n, rate.N(ms(v.AttackMs)), rate.N(ms(v.ReleaseMs))))
	}
	vol := v.Volume
	if vol == 0 {
		vol = 1
	}
	return withVolume(beep.Seq(notes...), vol), nil
}

func oscillator(w Wave, freq float64) (beep.Streamer, error) {
	switch w {
	case WaveSine, "":
		return generators.SineTone(rate, freq)
	case WaveSquare, WaveSaw:
		return &shapedTone{wave: w, step: freq / float64(rate)}, nil
	default:
		return nil, fmt.Errorf("unknown wave %q", w)
	}
}

// shapedTone is an endless square or sawtooth tone.
type shapedTone struct {
	wave  Wave
	phase float64
	step  float64
}

func (t *shapedTone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var val float64
		if t.wave == WaveSquare {
			val = -1
			if t.phase < 0.5 {
				val = 1
			}
		} else {
			val = 2 * (t.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val
		t.phase += t.step
		t.phase -= math.Floor(t.phase)
	}
	return len(samples), true
}

func (t *shapedTone) Err() error { return nil }

// envelope ramps a note in over attack samples and out over release samples.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func newEnvelope(s beep.Streamer, total, attack, release int) beep.Streamer {
	return &envelope{streamer: s, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if remaining := e.total - e.pos; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func renderPCM(s beep.Streamer, total int) ([]byte, error) {
	out := make([]byte, 0, total*4)
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][1])))
		}
		if !ok || n == 0 {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("assets: render: %w", err)
	}
	return out, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
