package presentation

import (
	"github.com/milk9111/lanerunner/assets"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"go.uber.org/zap"
)

// cuePlayer is the part of *audio.Player the system drives.
type cuePlayer interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(v float64)
}

// AudioSystem plays the cues requested during the frame. Players are created
// on first use and silenced when a new round begins.
type AudioSystem struct {
	bank      assets.CueBank
	newPlayer func(assets.Cue) (cuePlayer, error)
	players   map[string]cuePlayer
	muted     map[string]bool
	roundID   string
	volume    float64
	logger    *zap.Logger
}

func NewAudioSystem(bank assets.CueBank, volume float64, logger *zap.Logger) *AudioSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioSystem{
		bank: bank,
		newPlayer: func(c assets.Cue) (cuePlayer, error) {
			return assets.NewCuePlayer(c)
		},
		players: make(map[string]cuePlayer),
		muted:   make(map[string]bool),
		volume:  volume,
		logger:  logger,
	}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}

	if e, ok := ecs.First(w, component.RoundComponent.Kind()); ok {
		round, _ := ecs.Get(w, e, component.RoundComponent.Kind())
		if round.ID != a.roundID {
			a.stopAll()
			a.roundID = round.ID
		}
	}

	ecs.ForEach(w, component.CueRequestComponent.Kind(), func(_ ecs.Entity, req *component.CueRequest) {
		a.apply(*req)
	})
}

func (a *AudioSystem) apply(req component.CueRequest) {
	if req.Stop {
		if p, ok := a.players[req.Name]; ok && p.IsPlaying() {
			p.Pause()
		}
		return
	}

	p := a.player(req.Name)
	if p == nil {
		return
	}
	if req.Loop && p.IsPlaying() {
		return
	}
	p.Pause()
	if err := p.Rewind(); err != nil {
		a.logger.Warn("cue rewind failed", zap.String("cue", req.Name), zap.Error(err))
		return
	}
	p.SetVolume(a.volume)
	p.Play()
}

func (a *AudioSystem) player(name string) cuePlayer {
	if p, ok := a.players[name]; ok {
		return p
	}
	if a.muted[name] {
		return nil
	}
	cue, ok := a.bank[name]
	if !ok || len(cue.PCM) == 0 {
		a.muted[name] = true
		a.logger.Warn("cue muted", zap.String("cue", name))
		return nil
	}
	p, err := a.newPlayer(cue)
	if err != nil {
		a.muted[name] = true
		a.logger.Warn("cue player failed, cue muted", zap.String("cue", name), zap.Error(err))
		return nil
	}
	a.players[name] = p
	return p
}

func (a *AudioSystem) stopAll() {
	for _, p := range a.players {
		if p.IsPlaying() {
			p.Pause()
		}
	}
}
