package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/flag-arena/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a wave of the given length; freq is ignored for noise
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := e.gain(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

// gain is the envelope level at sample pos
func (e *envelope) gain(pos int) float64 {
	vol := 1.0
	if e.attackSamples > 0 && pos < e.attackSamples {
		vol = float64(pos) / float64(e.attackSamples)
	}
	releaseStart := e.totalSamples - e.releaseSamples
	if e.releaseSamples > 0 && pos >= releaseStart {
		vol = min(vol, float64(e.totalSamples-pos)/float64(e.releaseSamples))
	}
	return max(vol, 0)
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; Log2(0) is -Inf so zero becomes silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// synthHit is a short filtered knock for contacts
func synthHit(rate beep.SampleRate) beep.Streamer {
	d := constants.HitSoundDuration
	knock := NewEnvelope(NewOscillator(180, d, WaveSine, rate), d, constants.HitSoundAttack, constants.HitSoundRelease, rate)
	click := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, constants.HitSoundAttack, constants.HitSoundRelease, rate)
	return beep.Mix(newVolume(knock, 0.7), newVolume(click, 0.2))
}

// synthRoundStart is a rising three-note arpeggio (C5 E5 G5)
func synthRoundStart(rate beep.SampleRate) beep.Streamer {
	d := constants.RoundStartNoteDuration
	notes := []float64{523.25, 659.25, 783.99}
	seq := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		osc := NewOscillator(f, d, WaveSquare, rate)
		seq[i] = newVolume(NewEnvelope(osc, d, constants.RoundStartAttack, constants.RoundStartRelease, rate), 0.3)
	}
	return beep.Seq(seq...)
}

// synthLastRemaining is a two-tone alert with a saw edge
func synthLastRemaining(rate beep.SampleRate) beep.Streamer {
	d := constants.LastRemainingDuration / 2
	hi := NewEnvelope(NewOscillator(880, d, WaveSaw, rate), d, constants.LastRemainingAttack, constants.LastRemainingRelease/2, rate)
	lo := NewEnvelope(NewOscillator(660, d, WaveSaw, rate), d, constants.LastRemainingAttack, constants.LastRemainingRelease/2, rate)
	return newVolume(beep.Seq(hi, lo), 0.4)
}
