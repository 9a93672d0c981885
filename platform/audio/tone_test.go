package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutedToneState(t *testing.T) {
	tone := NewMutedTone()
	assert.False(t, tone.Playing())

	tone.Play(440)
	tone.Play(440)
	assert.True(t, tone.Playing())

	tone.Stop()
	tone.Stop()
	assert.False(t, tone.Playing())
}

func TestMutedToneRetune(t *testing.T) {
	tone := NewMutedTone()
	tone.Play(440)
	tone.Play(880)
	assert.True(t, tone.Playing())
	assert.Equal(t, 880, tone.frequency)
}

func TestSquareWave(t *testing.T) {
	// 4 samples per period
	w := newSquareWave(8, 2, 0.5)

	samples := make([][2]float64, 8)
	n, ok := w.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 8, n)
	assert.NoError(t, w.Err())

	want := []float64{0.5, 0.5, -0.5, -0.5, 0.5, 0.5, -0.5, -0.5}
	for i, s := range samples {
		assert.InDelta(t, want[i], s[0], 1e-9, "sample %d", i)
		assert.Equal(t, s[0], s[1], "mono on both channels")
	}
}
