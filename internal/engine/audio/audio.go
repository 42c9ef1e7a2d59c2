// Package audio plays the synthesized sound cues.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/Faultbox/gotham-story/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Siren shape: alternating tones with short fades at both ends.
var sirenTones = []float64{880, 660}

const (
	sirenSegment = 250 * time.Millisecond
	sirenCycles  = 4
	sirenRamp    = 20 * time.Millisecond
	sirenGain    = 0.4
)

// Manager mixes sound cues onto the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	// Mixer for concurrent cues
	sfxMixer *beep.Mixer

	log *zap.Logger
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sfxMixer:     &beep.Mixer{},
		log:          logger.Named("audio"),
	}
}

// Init opens the output device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)

	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops all playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences every cue played afterwards.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the effect volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Muted reports whether cues are silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// PlaySiren plays the signal cue. It is a no-op while muted.
func (m *Manager) PlaySiren() error {
	m.mu.RLock()
	initialized, muted := m.initialized, m.muted
	vol := m.masterVolume * m.sfxVolLevel
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}
	if muted || vol <= 0 {
		return nil
	}

	siren, err := Siren(m.sampleRate)
	if err != nil {
		return err
	}

	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: siren,
		Base:     2,
		Volume:   volumeToDb(vol) / 6,
	})
	speaker.Unlock()

	m.log.Debug("siren queued", zap.Float64("volume", vol))
	return nil
}

// Siren builds the two-tone signal cue at sr.
func Siren(sr beep.SampleRate) (beep.Streamer, error) {
	segment := sr.N(sirenSegment)
	var parts []beep.Streamer
	for i := 0; i < sirenCycles; i++ {
		for _, freq := range sirenTones {
			tone, err := generators.SineTone(sr, freq)
			if err != nil {
				return nil, fmt.Errorf("siren tone %.0fHz: %w", freq, err)
			}
			parts = append(parts, beep.Take(segment, tone))
		}
	}
	total := segment * len(parts)
	return envelope(beep.Seq(parts...), total, sr.N(sirenRamp), sirenGain), nil
}

// envelope scales s by gain with linear fades over the first and last ramp
// samples of a total-sample stream.
func envelope(s beep.Streamer, total, ramp int, gain float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			g := gain
			if ramp > 0 {
				if pos < ramp {
					g *= float64(pos) / float64(ramp)
				} else if rem := total - pos; rem < ramp {
					g *= float64(rem) / float64(ramp)
				}
			}
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// volumeToDb converts a 0-1 volume to decibels: 1 is 0dB, 0.5 about -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
