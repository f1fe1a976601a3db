// Package config handles game configuration loading and management.
package config

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Game     GameConfig     `yaml:"game"`
	Data     DataConfig     `yaml:"data"`
	HUD      HUDConfig      `yaml:"hud"`
	Logging  LoggingConfig  `yaml:"logging"`
	World    WorldConfig    `yaml:"world"`
	Spawns   SpawnConfig    `yaml:"spawns"`
}

// DataConfig holds game data locations.
type DataConfig struct {
	AssetRoots []string `yaml:"asset_roots"` // Directories searched for assets, last wins
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Zoom       float32 `yaml:"zoom"` // World units to pixels
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	MusicVolume  float32 `yaml:"music_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
	Music        string  `yaml:"music"`      // Background track, empty for none
	HurtSound    string  `yaml:"hurt_sound"` // Played when the player loses a heart
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	MapPath   string `yaml:"map_path"`
	ShowDebug bool   `yaml:"show_debug"` // Hitboxes and chunk grid
	ShowFPS   bool   `yaml:"show_fps"`
	Seed      int64  `yaml:"seed"` // NPC wander seed, 0 picks one from the clock
}

// HUDConfig holds the on-screen status layout in reference pixels at the
// default window height; it scales with the window.
type HUDConfig struct {
	HeartFull    string  `yaml:"heart_full"`
	HeartBroken  string  `yaml:"heart_broken"`
	HeartEmpty   string  `yaml:"heart_empty"`
	HeartSize    float32 `yaml:"heart_size"`
	HeartPad     float32 `yaml:"heart_pad"`
	Margin       float32 `yaml:"margin"`
	BrokenFor    float64 `yaml:"broken_seconds"` // How long a lost heart shows cracked
	StaminaWidth float32 `yaml:"stamina_width"`
	StaminaH     float32 `yaml:"stamina_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      960,
			Height:     540,
			Fullscreen: false,
			VSync:      true,
			Zoom:       2,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			MusicVolume:  0.6,
			SFXVolume:    0.8,
		},
		Game: GameConfig{
			MapPath: "assets/Tiles/map.tmj",
		},
		Data: DataConfig{
			AssetRoots: []string{"."},
		},
		HUD: HUDConfig{
			HeartFull:    "assets/Heart/หัวใจ-1.png",
			HeartBroken:  "assets/Heart/หัวใจ-2.png",
			HeartEmpty:   "assets/Heart/หัวใจ-3.png",
			HeartSize:    48,
			HeartPad:     5,
			Margin:       10,
			BrokenFor:    0.5,
			StaminaWidth: 160,
			StaminaH:     10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		World:  DefaultWorld(),
		Spawns: DefaultSpawns(),
	}
}
