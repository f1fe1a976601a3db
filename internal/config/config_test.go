package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 960 || cfg.Graphics.Height != 540 {
		t.Errorf("expected 960x540, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Audio.MasterVolume != 0.8 {
		t.Errorf("expected master volume 0.8, got %f", cfg.Audio.MasterVolume)
	}
	if cfg.Game.MapPath == "" {
		t.Error("expected a default map path")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.World.Validate(); err != nil {
		t.Errorf("default world config invalid: %v", err)
	}
}

func TestDefaultWorld(t *testing.T) {
	w := DefaultWorld()

	if w.TileSize != 32 {
		t.Errorf("expected tile size 32, got %v", w.TileSize)
	}
	if w.ChunkWorldSize() != 512 {
		t.Errorf("expected chunk world size 512, got %v", w.ChunkWorldSize())
	}
	if w.ViewMargin != 1000 {
		t.Errorf("expected view margin 1000, got %v", w.ViewMargin)
	}
	if w.TurnDelayTicks != 6 {
		t.Errorf("expected turn delay 6, got %d", w.TurnDelayTicks)
	}
	if w.WalkSpeed != 2 || w.RunSpeed != 4 {
		t.Errorf("expected walk 2 run 4, got %v %v", w.WalkSpeed, w.RunSpeed)
	}
	if w.NPCTurnInterval != 3*time.Second {
		t.Errorf("expected npc turn interval 3s, got %v", w.NPCTurnInterval)
	}
	if w.Composite.SolidFraction != 0.75 {
		t.Errorf("expected solid fraction 0.75, got %v", w.Composite.SolidFraction)
	}
}

func TestWorldRates(t *testing.T) {
	w := DefaultWorld()

	if got := w.TickDuration(); got != time.Second/60 {
		t.Errorf("expected 1/60s tick, got %v", got)
	}

	// 8 seconds at 60 ticks drains 100 stamina.
	if got := w.StaminaDrainPerTick() * 8 * 60; got < 99.999 || got > 100.001 {
		t.Errorf("drain over 8s = %v, expected 100", got)
	}
	if got := w.StaminaRegenPerTick() * 5 * 60; got < 99.999 || got > 100.001 {
		t.Errorf("regen over 5s = %v, expected 100", got)
	}
}

func TestWorldValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorldConfig)
	}{
		{"zero tile size", func(w *WorldConfig) { w.TileSize = 0 }},
		{"zero chunk size", func(w *WorldConfig) { w.ChunkSizeTiles = 0 }},
		{"zero tick rate", func(w *WorldConfig) { w.TickRate = 0 }},
		{"negative margin", func(w *WorldConfig) { w.ViewMargin = -1 }},
		{"zero walk speed", func(w *WorldConfig) { w.WalkSpeed = 0 }},
		{"negative enemy speed", func(w *WorldConfig) { w.EnemySpeed = -1 }},
		{"negative turn delay", func(w *WorldConfig) { w.TurnDelayTicks = -1 }},
		{"zero stamina", func(w *WorldConfig) { w.MaxStamina = 0 }},
		{"zero health", func(w *WorldConfig) { w.MaxHealth = 0 }},
		{"fraction above one", func(w *WorldConfig) { w.Composite.SolidFraction = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWorld()
			tt.mutate(&w)
			if err := w.Validate(); !errors.Is(err, ErrInvalidWorld) {
				t.Errorf("expected ErrInvalidWorld, got %v", err)
			}
		})
	}
}

func TestDefaultSpawns(t *testing.T) {
	s := DefaultSpawns()

	if s.Player != (Point{X: 96, Y: 96}) {
		t.Errorf("unexpected player spawn %+v", s.Player)
	}
	if s.Reaper == nil || *s.Reaper != (Point{X: 864, Y: 80}) {
		t.Errorf("unexpected reaper spawn %+v", s.Reaper)
	}
	if len(s.NPCs) != 5 {
		t.Fatalf("expected 5 NPCs, got %d", len(s.NPCs))
	}
	for _, n := range s.NPCs {
		if n.Sheet.Rows <= 0 || n.Sheet.Cols <= 0 {
			t.Errorf("%s: invalid sheet %+v", n.Name, n.Sheet)
		}
		for facing, row := range n.Sheet.RowMap {
			if row < 0 || row >= n.Sheet.Rows {
				t.Errorf("%s: row %d for %s outside sheet", n.Name, row, facing)
			}
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  zoom: 3

audio:
  master_volume: 0.5
  muted: true
  music: "assets/Sound/night.ogg"

game:
  map_path: "maps/village.tmj"
  show_debug: true

logging:
  level: "debug"
  log_file: "game.log"

world:
  tile_size: 16
  turn_delay_ticks: 4
  npc_turn_interval: 1500ms
  composite:
    tilesets: ["well", "tower"]
    solid_fraction: 0.5

spawns:
  player: {x: 32, y: 64}
  enemies:
    - {x: 100, y: 200}
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Zoom != 3 {
		t.Errorf("expected zoom 3, got %v", cfg.Graphics.Zoom)
	}
	if !cfg.Audio.Muted || cfg.Audio.Music != "assets/Sound/night.ogg" {
		t.Errorf("unexpected audio config %+v", cfg.Audio)
	}
	if cfg.Game.MapPath != "maps/village.tmj" || !cfg.Game.ShowDebug {
		t.Errorf("unexpected game config %+v", cfg.Game)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "game.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}

	// Overridden world keys change, the rest keep their defaults.
	if cfg.World.TileSize != 16 {
		t.Errorf("expected tile size 16, got %v", cfg.World.TileSize)
	}
	if cfg.World.TurnDelayTicks != 4 {
		t.Errorf("expected turn delay 4, got %d", cfg.World.TurnDelayTicks)
	}
	if cfg.World.NPCTurnInterval != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", cfg.World.NPCTurnInterval)
	}
	if cfg.World.ChunkSizeTiles != 16 {
		t.Errorf("expected default chunk size 16, got %d", cfg.World.ChunkSizeTiles)
	}
	if len(cfg.World.Composite.Tilesets) != 2 || cfg.World.Composite.SolidFraction != 0.5 {
		t.Errorf("unexpected composite config %+v", cfg.World.Composite)
	}
	if cfg.World.Composite.Inset != 4 {
		t.Errorf("expected default inset 4, got %v", cfg.World.Composite.Inset)
	}

	if cfg.Spawns.Player != (Point{X: 32, Y: 64}) {
		t.Errorf("unexpected player spawn %+v", cfg.Spawns.Player)
	}
	if len(cfg.Spawns.Enemies) != 1 {
		t.Errorf("expected 1 enemy, got %d", len(cfg.Spawns.Enemies))
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 1280
	cfg.World.NPCTurnInterval = 2 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", loaded.Graphics.Width)
	}
	if loaded.World.NPCTurnInterval != 2*time.Second {
		t.Errorf("expected 2s, got %v", loaded.World.NPCTurnInterval)
	}
	if len(loaded.Spawns.NPCs) != len(cfg.Spawns.NPCs) {
		t.Errorf("expected %d NPCs, got %d", len(cfg.Spawns.NPCs), len(loaded.Spawns.NPCs))
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Game.ShowDebug || !cfg.Game.ShowFPS {
					t.Error("expected debug overlays with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "map flag",
			setup: func() { *flagMap = "maps/cave.tmj" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Game.MapPath != "maps/cave.tmj" {
					t.Errorf("expected map maps/cave.tmj, got %s", cfg.Game.MapPath)
				}
			},
			teardown: func() { *flagMap = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "seed and log file flags",
			setup: func() {
				*flagSeed = 42
				*flagLogFile = "logs/game.log"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Game.Seed != 42 {
					t.Errorf("expected seed 42, got %d", cfg.Game.Seed)
				}
				if cfg.Logging.LogFile != "logs/game.log" {
					t.Errorf("expected log file override, got %q", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagSeed = 0
				*flagLogFile = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalidWorld(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("world:\n  tile_size: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidWorld) {
		t.Errorf("expected ErrInvalidWorld, got %v", err)
	}
}
