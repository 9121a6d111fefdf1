package audio

import (
	"errors"
	"io/fs"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/flag-arena/constants"
	"github.com/lixenwraith/flag-arena/events"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// Sound identifies a cue
type Sound int

const (
	SoundHit           Sound = iota // Contact between bodies or with the ring
	SoundRoundStart                 // Voice line or arpeggio on a new round
	SoundLastRemaining              // Contained count reached the threshold
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundRoundStart:
		return "round_start"
	case SoundLastRemaining:
		return "last_remaining"
	default:
		return "unknown"
	}
}

var soundGain = [soundCount]float64{
	SoundHit:           constants.HitGain,
	SoundRoundStart:    constants.RoundStartGain,
	SoundLastRemaining: constants.LastRemainingGain,
}

// SoundManager plays arena cues through a single beep mixer
// Cues without a loaded clip are synthesized
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	clips       [soundCount][]*beep.Buffer
	last        [soundCount]time.Time
	volume      float64
	rng         *rand.Rand
	now         func() time.Time
	logger      zerolog.Logger
	initialized bool
	ownsSpeaker bool
}

// NewSoundManager creates a silent manager; volume is a linear master gain
func NewSoundManager(logger zerolog.Logger, volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:    time.Now,
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// LoadClips decodes the cue files found in dir
// Missing files keep the synthesized fallback; files that fail to decode are an error
func (sm *SoundManager) LoadClips(dir string) error {
	names := [soundCount][]string{
		SoundHit:           {constants.HitClip},
		SoundRoundStart:    constants.RoundStartClips,
		SoundLastRemaining: {constants.LastRemainingClip},
	}

	var loaded [soundCount][]*beep.Buffer
	for s, files := range names {
		for _, name := range files {
			buf, err := decodeClip(filepath.Join(dir, name), sampleRate)
			if errors.Is(err, fs.ErrNotExist) {
				sm.logger.Debug().Str("clip", name).Msg("clip missing, using synthesized cue")
				continue
			}
			if err != nil {
				return err
			}
			loaded[s] = append(loaded[s], buf)
		}
	}

	sm.mu.Lock()
	sm.clips = loaded
	sm.mu.Unlock()
	return nil
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.ownsSpeaker = true
	return nil
}

// Cleanup stops every cue and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.ownsSpeaker {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
		speaker.Close()
	} else {
		sm.mixer.Clear()
	}
	sm.initialized = false
	sm.ownsSpeaker = false
}

// Play queues a cue, returning false when it is dropped
// Hits closer together than MinSoundGap are dropped
func (sm *SoundManager) Play(s Sound) bool {
	if s < 0 || s >= soundCount {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}

	now := sm.now()
	if s == SoundHit && !sm.last[s].IsZero() && now.Sub(sm.last[s]) < constants.MinSoundGap {
		return false
	}
	sm.last[s] = now

	st := newVolume(sm.source(s), soundGain[s]*sm.volume)
	if sm.ownsSpeaker {
		speaker.Lock()
		sm.mixer.Add(st)
		speaker.Unlock()
	} else {
		sm.mixer.Add(st)
	}
	return true
}

// source picks a loaded clip, at random when several exist, or synthesizes the cue
func (sm *SoundManager) source(s Sound) beep.Streamer {
	if clips := sm.clips[s]; len(clips) > 0 {
		buf := clips[sm.rng.IntN(len(clips))]
		return buf.Streamer(0, buf.Len())
	}

	switch s {
	case SoundRoundStart:
		return synthRoundStart(sampleRate)
	case SoundLastRemaining:
		return synthLastRemaining(sampleRate)
	default:
		return synthHit(sampleRate)
	}
}

// HandleEvent maps arena events to cues
func (sm *SoundManager) HandleEvent(ev events.GameEvent) {
	switch ev.Type {
	case events.EventCollision:
		sm.Play(SoundHit)
	case events.EventRoundStart:
		sm.Play(SoundRoundStart)
	case events.EventLastRemaining:
		sm.Play(SoundLastRemaining)
	}
}

func (sm *SoundManager) EventTypes() []events.EventType {
	return []events.EventType{events.EventCollision, events.EventRoundStart, events.EventLastRemaining}
}
