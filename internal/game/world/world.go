// Package world runs the fixed-tick simulation: actors, collision, damage
// and dialogue triggers over a baked tile map.
package world

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/config"
	"github.com/Faultbox/beyond-sight/internal/engine/collision"
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
	"github.com/Faultbox/beyond-sight/internal/engine/tilemap"
	"github.com/Faultbox/beyond-sight/internal/game/entity"
	"github.com/Faultbox/beyond-sight/internal/logger"
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// EventKind classifies what happened during a step.
type EventKind uint8

const (
	EventPlayerHurt EventKind = iota // An enemy touched the player
	EventPlayerDied                  // The last heart was lost
	EventDialogue                    // The player talked to an NPC
)

// Event is reported by Step for the host to react to (sound, UI).
type Event struct {
	Kind  EventKind
	Actor uint32   // Enemy or NPC involved
	Lines []string // Dialogue lines for EventDialogue
}

// HUDState is the data the on-screen UI consumes.
type HUDState struct {
	Health       int
	MaxHealth    int
	StaminaRatio float64
	Protected    bool // Inside the Reaper's safe zone
}

// World owns the map geometry and every live actor.
type World struct {
	cfg    config.WorldConfig
	Map    *tilemap.Baked
	oracle *collision.Oracle
	actors *entity.Manager

	control  *entity.PlayerControl
	guardian *entity.Guardian

	prevKeys entity.Keys
	ticks    uint64
	log      *zap.Logger
}

// New creates an empty world over baked geometry. A nil map is treated as
// an empty one.
func New(cfg config.WorldConfig, baked *tilemap.Baked) *World {
	if baked == nil {
		baked = tilemap.Empty(cfg.ChunkWorldSize())
	}
	return &World{
		cfg: cfg,
		Map: baked,
		oracle: &collision.Oracle{
			Solids:   baked.Solids,
			Width:    baked.Width,
			Height:   baked.Height,
			TileSize: cfg.TileSize,
		},
		actors: entity.NewManager(),
		log:    logger.Named("world"),
	}
}

// Load bakes the configured map and spawns the configured actors. A map
// that fails to load is logged and replaced by an empty one.
func Load(cfg *config.Config, loader tileatlas.TextureLoader, rng *rand.Rand) *World {
	opts := tilemap.OptionsFromConfig(cfg.World)
	baked, err := tilemap.LoadFile(cfg.Game.MapPath, loader, opts)
	if err != nil {
		logger.Error("map load failed, continuing with an empty map",
			zap.String("path", cfg.Game.MapPath),
			zap.Error(err))
	}

	w := New(cfg.World, baked)
	w.Spawn(cfg.Spawns, rng)
	return w
}

// Spawn places the player, the Reaper, NPCs and enemies in that order,
// which is also their update order. Positions snap down to the tile grid.
func (w *World) Spawn(s config.SpawnConfig, rng *rand.Rand) {
	w.SpawnPlayer(s.Player)
	if s.Reaper != nil {
		w.SpawnReaper(*s.Reaper)
	}
	for _, n := range s.NPCs {
		w.SpawnNPC(n, rng)
	}
	for _, e := range s.Enemies {
		w.SpawnEnemy(e)
	}
	w.log.Info("actors spawned",
		zap.Int("npcs", w.actors.CountByKind(entity.KindNPC)),
		zap.Int("enemies", w.actors.CountByKind(entity.KindEnemy)))
}

func (w *World) grid(p config.Point, speed float64) entity.GridActor {
	cell := math.Vec2{X: p.X, Y: p.Y}.Snap(w.cfg.TileSize)
	return entity.NewGridActor(cell, w.cfg.TileSize, speed, w.cfg.TurnDelayTicks)
}

// SpawnPlayer adds the player. Spawning again replaces it.
func (w *World) SpawnPlayer(p config.Point) *entity.Actor {
	if old := w.actors.Player(); old != nil {
		w.actors.Remove(old.ID)
	}
	w.control = entity.NewPlayerControl(w.cfg)
	a := entity.NewActor(w.actors.NextID(), entity.KindPlayer, w.grid(p, w.cfg.WalkSpeed), w.control)
	a.Name = "player"
	w.actors.Add(a)
	return a
}

// SpawnReaper adds the guardian.
func (w *World) SpawnReaper(p config.Point) *entity.Actor {
	w.guardian = &entity.Guardian{
		SafeRadius:   w.cfg.SafeZoneRadius,
		DetectRadius: w.cfg.ReaperDetectionRadius,
	}
	a := entity.NewActor(w.actors.NextID(), entity.KindReaper, w.grid(p, w.cfg.ReaperSpeed), w.guardian)
	a.Name = "reaper"
	w.actors.Add(a)
	return a
}

// SpawnNPC adds a villager. Wandering NPCs turn on the configured interval.
func (w *World) SpawnNPC(n config.NPCSpawn, rng *rand.Rand) *entity.Actor {
	var policy entity.Policy = entity.Hold{}
	if n.Wander {
		policy = entity.NewWander(w.cfg.NPCTurnInterval, rng)
	}
	a := entity.NewActor(w.actors.NextID(), entity.KindNPC, w.grid(n.Position, w.cfg.NPCSpeed), policy)
	a.Name = n.Name
	a.Lines = n.Lines
	w.actors.Add(a)
	return a
}

// SpawnEnemy adds a chaser.
func (w *World) SpawnEnemy(p config.Point) *entity.Actor {
	chaser := &entity.Chaser{
		DetectionRadius: w.cfg.EnemyDetectionRadius,
		ForbiddenRadius: w.cfg.EnemyForbiddenRadius,
	}
	a := entity.NewActor(w.actors.NextID(), entity.KindEnemy, w.grid(p, w.cfg.EnemySpeed), chaser)
	a.Name = "enemy"
	w.actors.Add(a)
	return a
}

// Step advances the simulation by one fixed tick. Actors update one after
// another in spawn order, each seeing the others' positions as left by the
// actors before it, so the first actor to claim a cell keeps it.
func (w *World) Step(dt float64, keys entity.Keys) []Event {
	w.ticks++
	if w.control != nil {
		w.control.Keys = keys
	}

	for _, a := range w.actors.All() {
		if w.actors.Get(a.ID) != a {
			continue
		}
		self := a
		blocked := func(cell math.Vec2) bool {
			return w.oracle.Blocked(cell, w.actors.Occupied(self))
		}
		a.Update(dt, w.actors, blocked)
	}

	events := w.resolveContacts()

	if keys.Has(entity.KeyInteract) && !w.prevKeys.Has(entity.KeyInteract) {
		if npc, lines := w.Interact(); npc != nil {
			events = append(events, Event{Kind: EventDialogue, Actor: npc.ID, Lines: lines})
		}
	}
	w.prevKeys = keys

	return events
}

// resolveContacts removes every enemy touching the player, costing one
// heart each.
func (w *World) resolveContacts() []Event {
	player := w.actors.Player()
	if player == nil || w.control == nil || w.control.Dead() {
		return nil
	}

	var events []Event
	box := player.Hitbox()
	for _, e := range w.actors.ByKind(entity.KindEnemy) {
		if !collision.Intersects(e.Hitbox(), box) {
			continue
		}
		w.actors.Remove(e.ID)
		if !w.control.Damage() {
			continue
		}
		events = append(events, Event{Kind: EventPlayerHurt, Actor: e.ID})
		w.log.Info("player hurt",
			zap.Uint32("enemy", e.ID),
			zap.Int("health", w.control.Health))
		if w.control.Dead() {
			events = append(events, Event{Kind: EventPlayerDied, Actor: e.ID})
			w.log.Info("player died", zap.Uint64("tick", w.ticks))
		}
	}
	return events
}

// Talkable returns the nearest NPC in front of the player within talk
// range, or nil.
func (w *World) Talkable() *entity.Actor {
	player := w.actors.Player()
	if player == nil {
		return nil
	}
	center := player.Hitbox().Center()
	ahead := player.Facing.Vector(1)

	var best *entity.Actor
	bestDist := w.cfg.TalkRadius
	for _, npc := range w.actors.ByKind(entity.KindNPC) {
		d := npc.Hitbox().Center().Sub(center)
		dist := d.Length()
		if dist > bestDist || d.X*ahead.X+d.Y*ahead.Y <= 0 {
			continue
		}
		best, bestDist = npc, dist
	}
	return best
}

// Interact returns the talkable NPC and its dialogue lines.
func (w *World) Interact() (*entity.Actor, []string) {
	npc := w.Talkable()
	if npc == nil {
		return nil, nil
	}
	return npc, npc.Lines
}

// HUD returns what the status display shows.
func (w *World) HUD() HUDState {
	if w.control == nil {
		return HUDState{}
	}
	return HUDState{
		Health:       w.control.Health,
		MaxHealth:    w.control.MaxHealth,
		StaminaRatio: w.control.StaminaRatio(),
		Protected:    w.guardian != nil && w.guardian.Protecting(),
	}
}

// Focus returns the point the camera and chunk streamer follow.
func (w *World) Focus() math.Vec2 {
	if p := w.actors.Player(); p != nil {
		return p.Hitbox().Center()
	}
	return math.Vec2{}
}

// Player returns the player actor, if any.
func (w *World) Player() *entity.Actor {
	return w.actors.Player()
}

// Reaper returns the Reaper, if any.
func (w *World) Reaper() *entity.Actor {
	return w.actors.Reaper()
}

// Actors returns every live actor in update order.
func (w *World) Actors() []*entity.Actor {
	return w.actors.All()
}

// Control returns the player's input and vitals.
func (w *World) Control() *entity.PlayerControl {
	return w.control
}

// Oracle returns the collision oracle.
func (w *World) Oracle() *collision.Oracle {
	return w.oracle
}

// Ticks returns the number of steps run.
func (w *World) Ticks() uint64 {
	return w.ticks
}
