// Package audio plays looping background music and buffered sound effects.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/config"
	"github.com/Faultbox/beyond-sight/internal/logger"
)

// DefaultSampleRate is the speaker rate; sources at other rates are resampled.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	// ErrNotInitialized is returned when playing before Init.
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrUnknownSound is returned by Play for a name never loaded.
	ErrUnknownSound = errors.New("unknown sound")
)

// Manager owns the speaker, the music track and the effect buffers.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	music     beep.StreamSeekCloser
	musicCtrl *beep.Ctrl
	musicVol  *effects.Volume
	musicName string

	sounds map[string]*beep.Buffer
	mixer  *beep.Mixer

	master float64
	bgm    float64
	sfx    float64
	muted  bool
}

// New creates a manager with volumes from config.
func New(cfg config.AudioConfig) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		sounds:     make(map[string]*beep.Buffer),
		mixer:      &beep.Mixer{},
		master:     clamp(float64(cfg.MasterVolume), 0, 1),
		bgm:        clamp(float64(cfg.MusicVolume), 0, 1),
		sfx:        clamp(float64(cfg.SFXVolume), 0, 1),
		muted:      cfg.Muted,
	}
}

// Init opens the speaker. Calling it twice is a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopMusic()
	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// SetMuted silences all output.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.applyMusicVolume()
}

// Muted reports whether output is silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// SetMasterVolume sets the master volume in [0, 1].
func (m *Manager) SetMasterVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.master = clamp(v, 0, 1)
	m.applyMusicVolume()
}

// Volumes returns master, music and effect volumes.
func (m *Manager) Volumes() (master, music, sfx float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.master, m.bgm, m.sfx
}

// applyMusicVolume must be called with m.mu held.
func (m *Manager) applyMusicVolume() {
	if m.musicVol == nil {
		return
	}
	v := m.master * m.bgm
	speaker.Lock()
	m.musicVol.Silent = m.muted || v <= 0
	m.musicVol.Volume = volumeToDb(v)
	speaker.Unlock()
}

// PlayMusic decodes a WAV track and loops it, replacing any current track.
func (m *Manager) PlayMusic(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	m.stopMusic()

	stream, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	m.music = stream
	m.musicName = name
	m.musicCtrl = &beep.Ctrl{Streamer: m.resample(format, &looped{src: stream})}
	m.musicVol = &effects.Volume{Streamer: m.musicCtrl, Base: 2}
	m.applyMusicVolume()

	speaker.Lock()
	m.mixer.Add(m.musicVol)
	speaker.Unlock()

	logger.Named("audio").Info("music started",
		zap.String("track", name),
		zap.Duration("length", format.SampleRate.D(stream.Len())))
	return nil
}

// StopMusic stops the current track.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusic()
}

func (m *Manager) stopMusic() {
	if m.musicCtrl != nil {
		speaker.Lock()
		m.musicCtrl.Streamer = nil
		speaker.Unlock()
	}
	if m.music != nil {
		m.music.Close()
	}
	m.music = nil
	m.musicCtrl = nil
	m.musicVol = nil
	m.musicName = ""
}

// Music returns the name of the current track, or "".
func (m *Manager) Music() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.musicName
}

// LoadSound decodes a WAV effect into memory under name. It does not need
// the speaker.
func (m *Manager) LoadSound(name string, data []byte) error {
	stream, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(m.resample(format, stream))

	m.mu.Lock()
	m.sounds[name] = buf
	m.mu.Unlock()
	return nil
}

// HasSound reports whether name was loaded.
func (m *Manager) HasSound(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sounds[name]
	return ok
}

// Play starts a loaded effect; effects overlap.
func (m *Manager) Play(name string) error {
	m.mu.RLock()
	buf, ok := m.sounds[name]
	initialized := m.initialized
	v := m.master * m.sfx
	silent := m.muted || v <= 0
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSound, name)
	}
	if silent {
		return nil
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeToDb(v),
	})
	speaker.Unlock()
	return nil
}

func (m *Manager) resample(format beep.Format, s beep.Streamer) beep.Streamer {
	if format.SampleRate == m.sampleRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, m.sampleRate, s)
}

// looped restarts src from the beginning whenever it runs dry.
type looped struct {
	src beep.StreamSeeker
}

func (l *looped) Stream(samples [][2]float64) (int, bool) {
	filled, dry := 0, 0
	for filled < len(samples) {
		n, ok := l.src.Stream(samples[filled:])
		filled += n
		if ok && n > 0 {
			dry = 0
			continue
		}
		dry++
		if dry > 1 || l.src.Len() == 0 || l.src.Seek(0) != nil {
			return filled, filled > 0
		}
	}
	return filled, true
}

func (l *looped) Err() error {
	return l.src.Err()
}

// volumeToDb maps a linear [0, 1] gain to the base-2 exponent effects.Volume
// expects: 1 is unchanged, 0.5 is half amplitude.
func volumeToDb(v float64) float64 {
	if v <= 0 {
		return -10
	}
	return gomath.Log2(v)
}

func clamp(v, lo, hi float64) float64 {
	return gomath.Min(gomath.Max(v, lo), hi)
}
