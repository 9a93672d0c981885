// Package audio plays the buzzer through the system speaker.
package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

const DEFAULT_SAMPLE_RATE = 44100
const TONE_VOLUME = 0.2

// Tone is the buzzer. Play and Stop may be called every frame; only changes
// reach the speaker.
type Tone struct {
	sampleRate beep.SampleRate
	muted      bool
	playing    bool
	frequency  int
}

func NewTone(sampleRate int) (*Tone, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/30)); err != nil {
		return nil, errors.Wrap(err, "initializing speaker")
	}
	return &Tone{sampleRate: sr}, nil
}

// NewMutedTone keeps track of the buzzer state without touching the audio device.
func NewMutedTone() *Tone {
	return &Tone{sampleRate: DEFAULT_SAMPLE_RATE, muted: true}
}

func (t *Tone) Play(frequency int) {
	if t.playing && t.frequency == frequency {
		return
	}
	if t.playing {
		t.Stop()
	}

	t.playing = true
	t.frequency = frequency
	if !t.muted {
		speaker.Play(newSquareWave(t.sampleRate, frequency, TONE_VOLUME))
	}
}

func (t *Tone) Stop() {
	if !t.playing {
		return
	}

	t.playing = false
	if !t.muted {
		speaker.Clear()
	}
}

func (t *Tone) Playing() bool {
	return t.playing
}

// squareWave is an endless beep.Streamer at a fixed pitch.
type squareWave struct {
	step   float64
	phase  float64
	volume float64
}

func newSquareWave(sr beep.SampleRate, frequency int, volume float64) *squareWave {
	return &squareWave{
		step:   float64(frequency) / float64(sr),
		volume: volume,
	}
}

func (w *squareWave) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := w.volume
		if w.phase >= 0.5 {
			v = -v
		}
		samples[i][0], samples[i][1] = v, v

		w.phase += w.step
		if w.phase >= 1 {
			w.phase -= 1
		}
	}
	return len(samples), true
}

func (w *squareWave) Err() error {
	return nil
}
