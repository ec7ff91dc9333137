// Package sound plays short cues when a game ends. Audio is optional:
// when the speaker cannot be opened the cues are silently skipped.
package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-tui/internal/mines"
)

var Log = logrus.New()

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq     float64
	duration time.Duration
}

var (
	winCue = []tone{
		{660, 80 * time.Millisecond},
		{880, 80 * time.Millisecond},
		{1320, 160 * time.Millisecond},
	}
	loseCue = []tone{
		{440, 120 * time.Millisecond},
		{330, 120 * time.Millisecond},
		{220, 240 * time.Millisecond},
	}
)

func cue(state mines.GameState) []tone {
	switch state {
	case mines.Won:
		return winCue
	case mines.Lost:
		return loseCue
	default:
		return nil
	}
}

func stream(tones []tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sampleRate.N(t.duration), sine))
	}
	return beep.Seq(parts...), nil
}

type Player struct {
	ready bool
}

// New opens the speaker when enabled. Failure is logged, not returned.
func New(enabled bool) *Player {
	p := &Player{}
	if !enabled {
		return p
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		Log.WithError(err).Warn("audio initialization failed, playing without sound")
		return p
	}
	p.ready = true
	return p
}

// Cue plays the end-of-game jingle for state; other states are silent.
func (p *Player) Cue(state mines.GameState) {
	tones := cue(state)
	if !p.ready || len(tones) == 0 {
		return
	}
	s, err := stream(tones)
	if err != nil {
		Log.WithError(err).Warn("unable to build cue")
		return
	}
	speaker.Play(s)
}

func (p *Player) Close() {
	if p.ready {
		speaker.Close()
		p.ready = false
	}
}
