// Package sound plays Screamy Ball's synthesized sound effects.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	screamDuration = 700 * time.Millisecond
	hopDuration    = 90 * time.Millisecond
)

// Manager owns the speaker and mixes effects into it. Calls before Init, or
// after Init failed, are no-ops.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	initialized bool
	muted       bool
	seed        int64
}

// NewManager creates a sound manager. It is silent until Init succeeds.
func NewManager(muted bool) *Manager {
	mixer := &beep.Mixer{}
	return &Manager{
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: 0, Silent: muted},
		muted:  muted,
		seed:   time.Now().UnixNano(),
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(m.master)
	m.initialized = true
	return nil
}

// Scream plays the collision scream.
func (m *Manager) Scream() {
	m.play(beep.Take(sampleRate.N(screamDuration), NewScreamGenerator(sampleRate, m.nextSeed())))
}

// Hop plays a short rising blip for a jump.
func (m *Manager) Hop() {
	m.play(beep.Take(sampleRate.N(hopDuration), NewHopGenerator(sampleRate)))
}

func (m *Manager) play(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted {
		return
	}

	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

func (m *Manager) nextSeed() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seed++
	return m.seed
}

// ToggleMute flips the mute state and returns the new value.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.muted = !m.muted
	if m.initialized {
		speaker.Lock()
		m.master.Silent = m.muted
		if m.muted {
			m.mixer.Clear()
		}
		speaker.Unlock()
	} else {
		m.master.Silent = m.muted
	}
	return m.muted
}

// Muted reports whether effects are currently silenced.
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Close stops playback and releases the audio device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	m.initialized = false
}
