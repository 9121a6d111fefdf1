package constants

import "time"

// Audio Engine Timing
const (
	// AudioMonitorInterval is the interval for draining the event queue into sinks
	AudioMonitorInterval = 10 * time.Millisecond

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two collision sounds
	MinSoundGap = 50 * time.Millisecond

	// AudioSampleRate is the mixer rate, clips are resampled to it
	AudioSampleRate = 48000

	// ResampleQuality is passed to beep.Resample
	ResampleQuality = 4
)

// Per-sound gain, scaled by the configured master volume
const (
	HitGain           = 0.6
	RoundStartGain    = 1.0
	LastRemainingGain = 1.0
)

// Synthesized Fallback Timing
const (
	HitSoundDuration = 50 * time.Millisecond
	HitSoundAttack   = 2 * time.Millisecond
	HitSoundRelease  = 40 * time.Millisecond

	RoundStartNoteDuration = 150 * time.Millisecond
	RoundStartAttack       = 5 * time.Millisecond
	RoundStartRelease      = 100 * time.Millisecond

	LastRemainingDuration = 450 * time.Millisecond
	LastRemainingAttack   = 10 * time.Millisecond
	LastRemainingRelease  = 200 * time.Millisecond
)

// Audio Clips
const (
	HitClip           = "hit.wav"
	LastRemainingClip = "last_5_remaining.mp3"
)

// RoundStartClips are the voice lines, one picked at random per round
var RoundStartClips = []string{
	"luck.mp3",
	"subscribe.mp3",
	"comment.mp3",
	"which_country.mp3",
}
