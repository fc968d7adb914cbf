// Package audio plays the engine hum, turn chirps and the crash sound.
// Audio is optional: every method is a no-op until Initialize succeeds.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	turnFrequency  = 660
	crashFrequency = 90
)

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	engine      *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.engine != nil {
		sm.engine.Paused = true
	}
	sm.mixer.Clear()
	sm.initialized = false
}

// PlayEngine starts the looping engine hum.
func (sm *SoundManager) PlayEngine() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.engine != nil && !sm.engine.Paused {
		return
	}

	sm.engine = &beep.Ctrl{Streamer: beep.Loop(-1, NewHumGenerator(sampleRate)), Paused: false}
	sm.mixer.Add(sm.engine)
}

// StopEngine pauses the engine hum.
func (sm *SoundManager) StopEngine() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.engine != nil {
		sm.engine.Paused = true
	}
}

// PlayTurn plays a short chirp.
func (sm *SoundManager) PlayTurn() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sine, err := generators.SineTone(sampleRate, turnFrequency)
	if err != nil {
		return
	}
	sm.mixer.Add(beep.Take(sampleRate.N(40*time.Millisecond), sine))
}

// PlayCrash stops the engine and plays the crash buzz.
func (sm *SoundManager) PlayCrash() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.engine != nil {
		sm.engine.Paused = true
	}
	sm.mixer.Add(CrashSound())
}

// CrashSound is a 400ms decaying buzz.
func CrashSound() beep.Streamer {
	return beep.Take(sampleRate.N(400*time.Millisecond), NewBuzzGenerator(sampleRate, crashFrequency))
}

// HumGenerator generates a low engine hum with a slow wobble
type HumGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewHumGenerator creates a hum generator
func NewHumGenerator(sr beep.SampleRate) *HumGenerator {
	return &HumGenerator{sr: sr}
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// 70Hz base, wobbling by 6Hz twice a second
		freq := 70 + 6*math.Sin(2*math.Pi*2*t)
		sample := 0.08 * (math.Sin(2*math.Pi*freq*t) + 0.5*math.Sin(4*math.Pi*freq*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a harsh buzz that fades out over half a second
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Max(0, 1-t/0.5)
		sample *= envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
