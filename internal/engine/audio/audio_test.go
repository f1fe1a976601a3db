package audio

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/beyond-sight/internal/config"
)

func TestVolumeToDb(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -10},
		{-1, -10},
	}
	for _, tt := range tests {
		if got := volumeToDb(tt.vol); gomath.Abs(got-tt.want) > 1e-9 {
			t.Errorf("volumeToDb(%v) = %v, want %v", tt.vol, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{1, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestNew_FromConfig(t *testing.T) {
	m := New(config.AudioConfig{MasterVolume: 2, MusicVolume: 0.6, SFXVolume: -1, Muted: true})

	master, music, sfx := m.Volumes()
	if master != 1 || gomath.Abs(music-0.6) > 1e-6 || sfx != 0 {
		t.Errorf("volumes = %v %v %v", master, music, sfx)
	}
	if !m.Muted() {
		t.Error("expected muted")
	}
}

func TestPlay_BeforeInit(t *testing.T) {
	m := New(config.Default().Audio)
	if err := m.Play("hurt"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if err := m.PlayMusic("bgm", nil); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestLoadSound_Invalid(t *testing.T) {
	m := New(config.Default().Audio)
	if err := m.LoadSound("hurt", []byte("not a wav")); err == nil {
		t.Fatal("expected a decode error")
	}
	if m.HasSound("hurt") {
		t.Error("a failed load must not register the sound")
	}
}

func TestSetMasterVolume(t *testing.T) {
	m := New(config.Default().Audio)
	m.SetMasterVolume(3)
	if master, _, _ := m.Volumes(); master != 1 {
		t.Errorf("master = %v, want 1", master)
	}
}
