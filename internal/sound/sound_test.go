package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-tui/internal/mines"
)

func TestCue(t *testing.T) {
	assert.Equal(t, winCue, cue(mines.Won))
	assert.Equal(t, loseCue, cue(mines.Lost))
	assert.Empty(t, cue(mines.Playing))
	assert.Empty(t, cue(mines.Initialised))
}

func TestStreamLength(t *testing.T) {
	s, err := stream(loseCue)
	require.NoError(t, err)

	want := 0
	for _, tn := range loseCue {
		want += sampleRate.N(tn.duration)
	}

	got := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		got += n
		if !ok {
			break
		}
	}
	assert.Equal(t, want, got)
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p := New(false)
	assert.False(t, p.ready)
	p.Cue(mines.Won)
	p.Close()
}
