package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/engine/ui2d"
	"github.com/Faultbox/beyond-sight/internal/game/world"
)

// respawnDelay is how long the game-over pause lasts, in seconds.
const respawnDelay = 3.0

// playing advances the world from player input.
type playing struct {
	g *Game
}

func (s *playing) Name() string { return "playing" }

func (s *playing) Enter() error {
	s.g.window.SetTitle(Title)
	return nil
}

func (s *playing) Exit() error { return nil }

func (s *playing) Update(dt float64) error {
	s.g.simulate(dt)
	return nil
}

// gameOver freezes the world, then respawns every actor.
type gameOver struct {
	g    *Game
	wait float64
}

func (s *gameOver) Name() string { return "game_over" }

func (s *gameOver) Enter() error {
	s.g.window.SetTitle(Title + "  (you fell)")
	s.g.log.Info("game over", zap.Uint64("tick", s.g.world.Ticks()))
	return nil
}

func (s *gameOver) Exit() error { return nil }

func (s *gameOver) Update(dt float64) error {
	s.wait -= dt
	if s.wait <= 0 {
		s.g.respawn()
		s.g.states.Change(&playing{g: s.g})
	}
	return nil
}

// respawn rebuilds the actors on the already baked map.
func (g *Game) respawn() {
	g.world = world.New(g.cfg.World, g.world.Map)
	g.world.Spawn(g.cfg.Spawns, g.rng)
	g.clock = world.NewClock(g.cfg.World.TickDuration())
	g.hud = ui2d.NewHUD(g.cfg.HUD, g.cfg.World.MaxHealth)
	g.loadHeartImages()
	clear(g.sprites)
	clear(g.dialogue)
	g.bindSprites()
}
