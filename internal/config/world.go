package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWorld is returned by WorldConfig.Validate.
var ErrInvalidWorld = errors.New("invalid world config")

// WorldConfig holds the simulation constants shared by the map builder,
// the streamer and every actor. It is read once at startup and passed by
// value; nothing mutates it afterwards.
type WorldConfig struct {
	TileSize       float64 `yaml:"tile_size"`        // Logical tile size in world units
	ChunkSizeTiles int     `yaml:"chunk_size_tiles"` // Chunk edge in tiles
	ViewMargin     float64 `yaml:"view_margin"`      // Streaming margin around the focal point
	TickRate       int     `yaml:"tick_rate"`        // Fixed updates per second
	UVPadding      float64 `yaml:"uv_padding"`       // Anti-bleed inset in texels

	WalkSpeed      float64 `yaml:"walk_speed"`
	RunSpeed       float64 `yaml:"run_speed"`
	TurnDelayTicks int     `yaml:"turn_delay_ticks"`

	MaxStamina          float64 `yaml:"max_stamina"`
	StaminaDrainSeconds float64 `yaml:"stamina_drain_seconds"` // Full to empty while running
	StaminaRegenSeconds float64 `yaml:"stamina_regen_seconds"` // Empty to full while not running
	MaxHealth           int     `yaml:"max_health"`

	NPCSpeed        float64       `yaml:"npc_speed"`
	NPCTurnInterval time.Duration `yaml:"npc_turn_interval"`
	TalkRadius      float64       `yaml:"talk_radius"`

	ReaperSpeed           float64 `yaml:"reaper_speed"`
	SafeZoneRadius        float64 `yaml:"safe_zone_radius"`
	ReaperDetectionRadius float64 `yaml:"reaper_detection_radius"`

	EnemySpeed           float64 `yaml:"enemy_speed"`
	EnemyDetectionRadius float64 `yaml:"enemy_detection_radius"`
	EnemyForbiddenRadius float64 `yaml:"enemy_forbidden_radius"`

	ForegroundLayerKeywords []string        `yaml:"foreground_layer_keywords"`
	WallLayerKeywords       []string        `yaml:"wall_layer_keywords"`
	Composite               CompositeConfig `yaml:"composite"`
}

// CompositeConfig describes tall props split into a solid base and a
// walk-behind top.
type CompositeConfig struct {
	Tilesets      []string `yaml:"tilesets"`
	SolidFraction float64  `yaml:"solid_fraction"` // Lower share of the height that is solid
	Inset         float64  `yaml:"inset"`          // Horizontal inset of the solid rect
}

// DefaultWorld returns the stock world tuning.
func DefaultWorld() WorldConfig {
	return WorldConfig{
		TileSize:       32,
		ChunkSizeTiles: 16,
		ViewMargin:     1000,
		TickRate:       60,
		UVPadding:      0.05,

		WalkSpeed:      2,
		RunSpeed:       4,
		TurnDelayTicks: 6,

		MaxStamina:          100,
		StaminaDrainSeconds: 8,
		StaminaRegenSeconds: 5,
		MaxHealth:           3,

		NPCSpeed:        1,
		NPCTurnInterval: 3 * time.Second,
		TalkRadius:      48,

		ReaperSpeed:           1.5,
		SafeZoneRadius:        80,
		ReaperDetectionRadius: 150,

		EnemySpeed:           1,
		EnemyDetectionRadius: 200,
		EnemyForbiddenRadius: 80,

		ForegroundLayerKeywords: []string{"roof", "หลังคา"},
		WallLayerKeywords:       []string{"wall", "กำแพง"},
		Composite: CompositeConfig{
			Tilesets:      []string{"well"},
			SolidFraction: 0.75,
			Inset:         4,
		},
	}
}

// ChunkWorldSize returns the edge of a chunk in world units.
func (w WorldConfig) ChunkWorldSize() float64 {
	return w.TileSize * float64(w.ChunkSizeTiles)
}

// TickDuration returns the fixed update step.
func (w WorldConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(w.TickRate)
}

// StaminaDrainPerTick is the stamina spent per running tick.
func (w WorldConfig) StaminaDrainPerTick() float64 {
	return w.MaxStamina / (w.StaminaDrainSeconds * float64(w.TickRate))
}

// StaminaRegenPerTick is the stamina recovered per non-running tick.
func (w WorldConfig) StaminaRegenPerTick() float64 {
	return w.MaxStamina / (w.StaminaRegenSeconds * float64(w.TickRate))
}

// Validate rejects configurations the simulation cannot run with.
func (w WorldConfig) Validate() error {
	switch {
	case w.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be positive, got %v", ErrInvalidWorld, w.TileSize)
	case w.ChunkSizeTiles <= 0:
		return fmt.Errorf("%w: chunk_size_tiles must be positive, got %d", ErrInvalidWorld, w.ChunkSizeTiles)
	case w.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidWorld, w.TickRate)
	case w.ViewMargin < 0:
		return fmt.Errorf("%w: view_margin must not be negative, got %v", ErrInvalidWorld, w.ViewMargin)
	case w.WalkSpeed <= 0 || w.RunSpeed <= 0 || w.NPCSpeed <= 0 || w.ReaperSpeed <= 0 || w.EnemySpeed <= 0:
		return fmt.Errorf("%w: speeds must be positive", ErrInvalidWorld)
	case w.TurnDelayTicks < 0:
		return fmt.Errorf("%w: turn_delay_ticks must not be negative, got %d", ErrInvalidWorld, w.TurnDelayTicks)
	case w.MaxStamina <= 0 || w.StaminaDrainSeconds <= 0 || w.StaminaRegenSeconds <= 0:
		return fmt.Errorf("%w: stamina settings must be positive", ErrInvalidWorld)
	case w.MaxHealth <= 0:
		return fmt.Errorf("%w: max_health must be positive, got %d", ErrInvalidWorld, w.MaxHealth)
	case w.Composite.SolidFraction < 0 || w.Composite.SolidFraction > 1:
		return fmt.Errorf("%w: composite.solid_fraction must be within [0,1], got %v", ErrInvalidWorld, w.Composite.SolidFraction)
	}
	return nil
}

// Point is a world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpawnConfig places actors at world start.
// Positions are snapped down to the tile grid when spawned.
type SpawnConfig struct {
	Player  Point      `yaml:"player"`
	Reaper  *Point     `yaml:"reaper"`
	NPCs    []NPCSpawn `yaml:"npcs"`
	Enemies []Point    `yaml:"enemies"`

	// Actors without a sheet are drawn as flat tiles.
	PlayerSheet *Sheet `yaml:"player_sheet"`
	ReaperSheet *Sheet `yaml:"reaper_sheet"`
}

// NPCSpawn describes one villager.
type NPCSpawn struct {
	Name     string   `yaml:"name"`
	Position Point    `yaml:"position"`
	Sheet    Sheet    `yaml:"sheet"`
	Wander   bool     `yaml:"wander"` // Turns to a random facing on an interval
	Lines    []string `yaml:"lines"`  // Dialogue shown on interaction
}

// Sheet describes a single-state sprite sheet.
// Rows maps a facing name (down, left, right, up) to a sheet row counted
// from the top of the image.
type Sheet struct {
	Path   string         `yaml:"path"`
	Cols   int            `yaml:"cols"`
	Rows   int            `yaml:"rows"`
	RowMap map[string]int `yaml:"row_map"`
	FPS    float64        `yaml:"fps"`
}

// DefaultSpawns returns the stock actor placement.
func DefaultSpawns() SpawnConfig {
	fourRow := map[string]int{"down": 3, "left": 0, "right": 1, "up": 2}
	return SpawnConfig{
		Player: Point{X: 96, Y: 96},
		Reaper: &Point{X: 864, Y: 80},
		NPCs: []NPCSpawn{
			{
				Name:     "NPC1",
				Position: Point{X: 896, Y: 256},
				Sheet:    Sheet{Path: "assets/NPC/NPC1.png", Cols: 1, Rows: 3, RowMap: map[string]int{"down": 2, "left": 0, "right": 1, "up": 0}, FPS: 1},
				Lines:    []string{"The well has been dry for years.", "Mind the Reaper. It watches over us."},
			},
			{
				Name:     "NPC2",
				Position: Point{X: 544, Y: 288},
				Sheet:    Sheet{Path: "assets/NPC/NPC2.png", Cols: 1, Rows: 4, RowMap: fourRow, FPS: 1},
				Lines:    []string{"Stay close to the light."},
			},
			{
				Name:     "NPC3",
				Position: Point{X: 704, Y: 1472},
				Sheet:    Sheet{Path: "assets/NPC/NPC3.png", Cols: 1, Rows: 4, RowMap: fourRow, FPS: 1},
				Lines:    []string{"Something moves beyond the trees."},
			},
			{
				Name:     "NPC4",
				Position: Point{X: 1392, Y: 1072},
				Sheet:    Sheet{Path: "assets/NPC/NPC4.png", Cols: 1, Rows: 2, RowMap: map[string]int{"down": 1, "left": 0, "right": 0, "up": 0}, FPS: 1},
				Lines:    []string{"I lost my way once. Never again."},
			},
			{
				Name:     "NPC5",
				Position: Point{X: 560, Y: 256},
				Sheet:    Sheet{Path: "assets/NPC/NPC5.png", Cols: 1, Rows: 5, RowMap: map[string]int{"down": 4, "left": 3, "right": 2, "up": 1}, FPS: 8},
				Wander:   true,
				Lines:    []string{"Can you hear it too?"},
			},
		},
		Enemies: []Point{
			{X: 480, Y: 640},
			{X: 1216, Y: 544},
		},
		ReaperSheet: &Sheet{Path: "assets/Reaper/Reaper.png", Cols: 1, Rows: 4, RowMap: fourRow, FPS: 1},
	}
}
