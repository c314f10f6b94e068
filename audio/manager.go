package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Manager owns the speaker and the hum stream
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	humCtrl     *beep.Ctrl
	initialized bool
}

func NewManager() *Manager {
	return &Manager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// StartHum begins the expansion-driven drone
func (m *Manager) StartHum(expansion func() float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	// At most one hum; ToggleHum controls audibility after that
	if m.humCtrl != nil {
		return
	}

	ctrl := &beep.Ctrl{Streamer: NewHumGenerator(expansion), Paused: false}
	m.humCtrl = ctrl
	m.mixer.Add(ctrl)
}

// ToggleHum pauses or resumes the drone, returning true if now audible
func (m *Manager) ToggleHum() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.humCtrl == nil {
		return false
	}

	speaker.Lock()
	m.humCtrl.Paused = !m.humCtrl.Paused
	audible := !m.humCtrl.Paused
	speaker.Unlock()
	return audible
}

// Cleanup silences everything and releases the stream
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	if m.humCtrl != nil {
		speaker.Lock()
		m.humCtrl.Paused = true
		speaker.Unlock()
	}
	m.mixer.Clear()
	m.initialized = false
}
