// Package game runs the client: window, input, fixed-tick world updates,
// chunk streaming, drawing and sound.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/assets"
	"github.com/Faultbox/beyond-sight/internal/config"
	"github.com/Faultbox/beyond-sight/internal/engine/audio"
	"github.com/Faultbox/beyond-sight/internal/engine/camera"
	"github.com/Faultbox/beyond-sight/internal/engine/character"
	"github.com/Faultbox/beyond-sight/internal/engine/input"
	"github.com/Faultbox/beyond-sight/internal/engine/renderer"
	"github.com/Faultbox/beyond-sight/internal/engine/tilemap"
	"github.com/Faultbox/beyond-sight/internal/engine/ui2d"
	"github.com/Faultbox/beyond-sight/internal/engine/window"
	"github.com/Faultbox/beyond-sight/internal/game/states"
	"github.com/Faultbox/beyond-sight/internal/game/world"
	"github.com/Faultbox/beyond-sight/internal/logger"
)

// Title is the window title.
const Title = "Beyond the Sight"

const hurtSound = "hurt"

// Game is the running client.
type Game struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	input    *input.Input
	renderer *renderer.Renderer
	audio    *audio.Manager
	assets   *assets.Manager

	world    *world.World
	streamer *tilemap.Streamer
	camera   *camera.Camera
	clock    *world.Clock
	hud      *ui2d.HUD
	states   *states.Manager
	rng      *rand.Rand

	sprites  map[uint32]*character.Animator
	dialogue map[uint32]int // Next line per NPC
	debug    bool
}

// New opens the window, loads the map and spawns the world.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		log:      logger.Named("game"),
		sprites:  make(map[uint32]*character.Animator),
		dialogue: make(map[uint32]int),
		debug:    cfg.Game.ShowDebug,
	}

	g.assets = assets.NewManager()
	for _, root := range cfg.Data.AssetRoots {
		if err := g.assets.AddRoot(root); err != nil {
			g.log.Warn("skipping asset root", zap.String("root", root), zap.Error(err))
		}
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := g.window.Size()
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height}, g.assets)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.audio = audio.New(cfg.Audio)
	g.startAudio()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.world = world.Load(cfg, g.renderer, g.rng)
	g.streamer = tilemap.NewStreamer(g.world.Map, cfg.World.ViewMargin, g.renderer)
	g.camera = camera.New(width, height, cfg.Graphics.Zoom)
	g.camera.SetBounds(g.world.Map.Width, g.world.Map.Height)
	g.clock = world.NewClock(cfg.World.TickDuration())
	g.hud = ui2d.NewHUD(cfg.HUD, cfg.World.MaxHealth)
	g.loadHeartImages()
	g.bindSprites()

	g.states = states.NewManager()
	g.states.Change(&playing{g: g})

	g.log.Info("game initialized",
		zap.String("map", cfg.Game.MapPath),
		zap.Int("actors", len(g.world.Actors())),
		zap.Int("quads", g.world.Map.Stats.Quads),
		zap.Int("solids", g.world.Map.Solids.Len()))
	return g, nil
}

func (g *Game) startAudio() {
	if err := g.audio.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		return
	}
	if path := g.cfg.Audio.HurtSound; path != "" {
		if err := g.loadSound(hurtSound, path); err != nil {
			g.log.Warn("hurt sound unavailable", zap.String("path", path), zap.Error(err))
		}
	}
	if path := g.cfg.Audio.Music; path != "" {
		data, err := g.assets.Load(path)
		if err == nil {
			err = g.audio.PlayMusic(path, data)
		}
		if err != nil {
			g.log.Warn("music unavailable", zap.String("path", path), zap.Error(err))
		}
	}
}

func (g *Game) loadSound(name, path string) error {
	data, err := g.assets.Load(path)
	if err != nil {
		return err
	}
	return g.audio.LoadSound(name, data)
}

// Run drives the loop until the window closes or Escape is pressed.
func (g *Game) Run() error {
	g.running = true
	last := time.Now()
	frames := 0
	fpsTimer := last

	g.log.Info("starting game loop", zap.Duration("tick", g.cfg.World.TickDuration()))

	for g.running {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		if err := g.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		g.follow(dt)
		g.render()
		g.window.SwapBuffers()

		frames++
		if since := time.Since(fpsTimer); since >= time.Second {
			if g.cfg.Game.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s  %d fps", Title, frames))
			}
			stats := g.renderer.Stats()
			g.log.Debug("frame stats",
				zap.Int("fps", frames),
				zap.Int("draw_calls", stats.DrawCalls),
				zap.Int("quads", stats.Quads),
				zap.Int("dropped_ticks", g.clock.Dropped()))
			frames = 0
			fpsTimer = now
		}
	}
	return nil
}

func (g *Game) handleEvents() {
	for _, e := range g.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			w, h := g.window.Size()
			g.renderer.Resize(w, h)
			g.camera.Resize(w, h)
		case input.EventKeyDown:
			if e.Repeat {
				continue
			}
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_F3:
				g.debug = !g.debug
			case sdl.SCANCODE_M:
				g.audio.SetMuted(!g.audio.Muted())
			}
		}
	}
}

// simulate runs the world ticks due for this frame.
func (g *Game) simulate(dt float64) {
	keys := heldKeys(g.input)
	tick := g.clock.Tick
	for n := g.clock.Advance(dt); n > 0; n-- {
		for _, e := range g.world.Step(tick, keys) {
			g.handle(e)
		}
	}
}

// follow refreshes the HUD, camera and chunk set from the world.
func (g *Game) follow(dt float64) {
	hud := g.world.HUD()
	g.hud.Update(dt, hud.Health, hud.StaminaRatio)

	focus := g.world.Focus()
	g.camera.Follow(focus)
	g.streamer.UpdateVisible(focus.X, focus.Y)
}

func (g *Game) handle(e world.Event) {
	switch e.Kind {
	case world.EventPlayerHurt:
		if g.audio.HasSound(hurtSound) {
			if err := g.audio.Play(hurtSound); err != nil {
				g.log.Debug("hurt sound failed", zap.Error(err))
			}
		}
	case world.EventPlayerDied:
		g.states.Change(&gameOver{g: g, wait: respawnDelay})
	case world.EventDialogue:
		if len(e.Lines) == 0 {
			return
		}
		i := g.dialogue[e.Actor] % len(e.Lines)
		g.dialogue[e.Actor] = i + 1
		g.window.SetTitle(Title + "  " + e.Lines[i])
		g.log.Info("dialogue", zap.Uint32("npc", e.Actor), zap.String("line", e.Lines[i]))
	}
}

// Close releases everything New created.
func (g *Game) Close() {
	g.log.Info("closing game")
	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
	if g.assets != nil {
		g.assets.Close()
	}
}
