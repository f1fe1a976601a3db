package entity

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Faultbox/beyond-sight/internal/config"
	"github.com/Faultbox/beyond-sight/pkg/math"
)

type fakeView struct {
	player, reaper *Actor
}

func (v fakeView) Player() *Actor { return v.player }
func (v fakeView) Reaper() *Actor { return v.reaper }

func newActor(id uint32, kind Kind, cell math.Vec2, policy Policy) *Actor {
	return NewActor(id, kind, NewGridActor(cell, tile, 2, 6), policy)
}

func TestKeys_Direction(t *testing.T) {
	tests := []struct {
		keys Keys
		want Facing
		ok   bool
	}{
		{0, FacingDown, false},
		{KeyRun, FacingDown, false},
		{KeyUp, FacingUp, true},
		{KeyDown | KeyRun, FacingDown, true},
		{KeyLeft, FacingLeft, true},
		{KeyRight, FacingRight, true},
		{KeyUp | KeyDown, FacingUp, true},
		{KeyLeft | KeyRight | KeyDown, FacingDown, true},
	}
	for _, tt := range tests {
		got, ok := tt.keys.Direction()
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Keys(%b).Direction() = %v,%v want %v,%v", tt.keys, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPlayerControl_Speed(t *testing.T) {
	w := config.DefaultWorld()
	pc := NewPlayerControl(w)
	a := newActor(1, KindPlayer, math.Vec2{}, pc)

	pc.Keys = KeyUp
	if dx, dy := pc.Decide(a, fakeView{}); dx != 0 || dy != tile || a.Speed != w.WalkSpeed {
		t.Errorf("walk: got (%v,%v) speed %v", dx, dy, a.Speed)
	}

	pc.Keys = KeyUp | KeyRun
	pc.Decide(a, fakeView{})
	if a.Speed != w.RunSpeed {
		t.Errorf("run: expected speed %v, got %v", w.RunSpeed, a.Speed)
	}

	pc.Stamina = 0
	pc.Decide(a, fakeView{})
	if a.Speed != w.WalkSpeed {
		t.Errorf("exhausted: expected walk speed, got %v", a.Speed)
	}

	pc.Keys = KeyRun
	if dx, dy := pc.Decide(a, fakeView{}); dx != 0 || dy != 0 {
		t.Errorf("no direction held: got (%v,%v)", dx, dy)
	}
}

func TestPlayerControl_Stamina(t *testing.T) {
	w := config.DefaultWorld()
	pc := NewPlayerControl(w)
	a := newActor(1, KindPlayer, math.Vec2{}, pc)
	a.Target = math.Vec2{X: 10 * tile}
	a.stepSpeed = pc.RunSpeed

	pc.Keys = KeyRight | KeyRun
	ticks := int(w.StaminaDrainSeconds) * w.TickRate
	for i := 0; i < ticks/2; i++ {
		pc.Tick(a, fakeView{}, 0)
	}
	if got := pc.StaminaRatio(); got < 0.49 || got > 0.51 {
		t.Errorf("expected half stamina after half the drain time, got %v", got)
	}
	for i := 0; i < ticks; i++ {
		pc.Tick(a, fakeView{}, 0)
	}
	if pc.Stamina != 0 {
		t.Errorf("stamina should clamp at 0, got %v", pc.Stamina)
	}
	if !pc.Exhausted() {
		t.Error("expected exhaustion after draining to 0")
	}

	// Exhausted with run held: next steps walk and stamina stays put.
	a.stepSpeed = pc.WalkSpeed
	for i := 0; i < 30; i++ {
		pc.Tick(a, fakeView{}, 0)
	}
	if pc.Stamina != 0 {
		t.Errorf("walking with run held should not regenerate, got %v", pc.Stamina)
	}
	idle := newActor(2, KindPlayer, math.Vec2{}, pc)
	pc.Tick(idle, fakeView{}, 0)
	pc.Decide(idle, fakeView{})
	if idle.Speed != pc.WalkSpeed {
		t.Errorf("exhausted player should walk, got speed %v", idle.Speed)
	}

	// Holding only run while idle regenerates.
	pc.Keys = KeyRun
	a.Target = a.Cell
	regen := int(w.StaminaRegenSeconds) * w.TickRate
	for i := 0; i < regen+10; i++ {
		pc.Tick(a, fakeView{}, 0)
	}
	if pc.Stamina != pc.MaxStamina {
		t.Errorf("stamina should clamp at max, got %v", pc.Stamina)
	}
	if pc.Exhausted() {
		t.Error("a full bar should lift exhaustion")
	}
}

func TestPlayerControl_ReleaseRunClearsExhaustion(t *testing.T) {
	pc := NewPlayerControl(config.DefaultWorld())
	a := newActor(1, KindPlayer, math.Vec2{}, pc)
	a.Target = math.Vec2{X: tile}
	a.stepSpeed = pc.RunSpeed
	pc.Stamina = pc.DrainPerTick / 2
	pc.Keys = KeyRight | KeyRun

	pc.Tick(a, fakeView{}, 0)
	if !pc.Exhausted() {
		t.Fatal("expected exhaustion")
	}

	pc.Keys = KeyRight
	a.stepSpeed = pc.WalkSpeed
	pc.Tick(a, fakeView{}, 0)
	if pc.Exhausted() {
		t.Error("releasing run should clear exhaustion")
	}
	if pc.Stamina <= 0 {
		t.Errorf("walking without run should regenerate, got %v", pc.Stamina)
	}
}

func TestPlayerControl_Damage(t *testing.T) {
	pc := NewPlayerControl(config.DefaultWorld())
	for i := 0; i < 3; i++ {
		if !pc.Damage() {
			t.Fatalf("hit %d should land", i)
		}
	}
	if pc.Damage() || pc.Health != 0 || !pc.Dead() {
		t.Errorf("health should stop at 0, got %d", pc.Health)
	}
}

func TestWander(t *testing.T) {
	w := NewWander(3*time.Second, rand.New(rand.NewSource(7)))
	a := newActor(2, KindNPC, math.Vec2{}, w)

	w.Tick(a, fakeView{}, 2.9)
	if a.Facing != FacingDown {
		t.Fatal("turned before the interval elapsed")
	}

	prev := a.Facing
	for i := 0; i < 50; i++ {
		w.Tick(a, fakeView{}, 3)
		if a.Facing == prev {
			t.Fatalf("turn %d kept facing %v", i, prev)
		}
		prev = a.Facing
	}
	if dx, dy := w.Decide(a, fakeView{}); dx != 0 || dy != 0 {
		t.Error("wandering NPC should never walk")
	}
}

func TestGuardian(t *testing.T) {
	g := &Guardian{SafeRadius: 80}
	reaper := newActor(2, KindReaper, math.Vec2{X: 320, Y: 320}, g)
	player := newActor(1, KindPlayer, math.Vec2{X: 320 + 64, Y: 320}, nil)
	view := fakeView{player: player, reaper: reaper}

	g.Tick(reaper, view, 0)
	if !g.Protecting() {
		t.Error("player at 64 units should be protected")
	}

	player.Cell = math.Vec2{X: 320 + 96, Y: 320}
	g.Tick(reaper, view, 0)
	if g.Protecting() {
		t.Error("player at 96 units should not be protected")
	}

	g.Tick(reaper, fakeView{reaper: reaper}, 0)
	if g.Protecting() {
		t.Error("no player means no protection")
	}
}

func TestGuardian_WatchesPlayer(t *testing.T) {
	g := &Guardian{SafeRadius: 80, DetectRadius: 150}
	reaper := newActor(2, KindReaper, math.Vec2{X: 320, Y: 320}, g)
	reaper.Facing = FacingDown
	player := newActor(1, KindPlayer, math.Vec2{X: 320 - 128, Y: 320}, nil)
	view := fakeView{player: player, reaper: reaper}

	g.Tick(reaper, view, 0)
	if reaper.Facing != FacingLeft {
		t.Errorf("reaper should face the player, facing %v", reaper.Facing)
	}
	if g.Protecting() {
		t.Error("player at 128 units should be watched, not protected")
	}

	player.Cell = math.Vec2{X: 320, Y: 320 + 320}
	g.Tick(reaper, view, 0)
	if reaper.Facing != FacingLeft {
		t.Errorf("player out of range should not turn the reaper, facing %v", reaper.Facing)
	}
	if reaper.IsMoving() {
		t.Error("reaper must not move")
	}
}

func TestChaser(t *testing.T) {
	c := &Chaser{DetectionRadius: 200, ForbiddenRadius: 80}
	enemy := newActor(3, KindEnemy, math.Vec2{X: 0, Y: 0}, c)
	player := newActor(1, KindPlayer, math.Vec2{X: 96, Y: 64}, nil)
	reaper := newActor(2, KindReaper, math.Vec2{X: 640, Y: 0}, nil)
	view := fakeView{player: player, reaper: reaper}

	if dx, dy := c.Decide(enemy, view); dx != 96 || dy != 64 {
		t.Errorf("expected offset to player, got (%v,%v)", dx, dy)
	}

	player.Cell = math.Vec2{X: 256, Y: 0}
	if dx, dy := c.Decide(enemy, view); dx != 0 || dy != 0 {
		t.Errorf("player beyond detection should be ignored, got (%v,%v)", dx, dy)
	}

	if !c.Forbidden(enemy, math.Vec2{X: 576, Y: 0}, view) {
		t.Error("cell 64 from the Reaper should be forbidden")
	}
	if c.Forbidden(enemy, math.Vec2{X: 544, Y: 0}, view) {
		t.Error("cell 96 from the Reaper should be allowed")
	}
	if c.Forbidden(enemy, math.Vec2{X: 640, Y: 0}, fakeView{player: player}) {
		t.Error("no Reaper means no forbidden zone")
	}
	if !c.PassesThrough(player) || c.PassesThrough(reaper) {
		t.Error("enemies pass through the player only")
	}
}

func TestActor_EnemyStopsAtForbiddenZone(t *testing.T) {
	c := &Chaser{DetectionRadius: 400, ForbiddenRadius: 80}
	enemy := newActor(3, KindEnemy, math.Vec2{X: 512, Y: 0}, c)
	enemy.Facing = FacingRight
	player := newActor(1, KindPlayer, math.Vec2{X: 704, Y: 0}, nil)
	reaper := newActor(2, KindReaper, math.Vec2{X: 640, Y: 0}, nil)
	view := fakeView{player: player, reaper: reaper}

	// 544 is 96 from the Reaper: allowed.
	if res := enemy.Update(1.0/60, view, nil); res != MoveStarted {
		t.Fatalf("expected first step, got %v", res)
	}
	for enemy.IsMoving() {
		enemy.Update(1.0/60, view, nil)
	}
	// 576 is 64 from the Reaper: refused.
	if res := enemy.Update(1.0/60, view, nil); res != MoveForbidden {
		t.Errorf("expected forbidden, got %v", res)
	}
	if enemy.Cell != (math.Vec2{X: 544}) || enemy.IsMoving() {
		t.Errorf("enemy should hold at 544, got %+v", enemy.Cell)
	}
}

func TestActor_Animation(t *testing.T) {
	a := newActor(1, KindNPC, math.Vec2{}, nil)
	a.AnimFPS = 8
	a.FrameCount = 4

	a.Update(1.0/16, fakeView{}, nil)
	if a.Frame != 0 {
		t.Errorf("frame advanced early: %d", a.Frame)
	}
	a.Update(1.0/16, fakeView{}, nil)
	if a.Frame != 1 {
		t.Errorf("expected frame 1, got %d", a.Frame)
	}
	a.Update(3.0/8, fakeView{}, nil)
	if a.Frame != 0 {
		t.Errorf("expected wrap to frame 0, got %d", a.Frame)
	}
	if a.State() != StateIdle {
		t.Error("held actor should be idle")
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	player := newActor(m.NextID(), KindPlayer, math.Vec2{X: 0}, nil)
	reaper := newActor(m.NextID(), KindReaper, math.Vec2{X: 64}, nil)
	enemy := newActor(m.NextID(), KindEnemy, math.Vec2{X: 128}, &Chaser{})
	npc := newActor(m.NextID(), KindNPC, math.Vec2{X: 192}, nil)
	for _, a := range []*Actor{player, reaper, enemy, npc} {
		m.Add(a)
	}

	if m.Count() != 4 || m.Player() != player || m.Reaper() != reaper {
		t.Fatalf("unexpected manager state: count=%d", m.Count())
	}
	all := m.All()
	for i, want := range []*Actor{player, reaper, enemy, npc} {
		if all[i] != want {
			t.Errorf("order[%d] = %v, want %v", i, all[i].Kind, want.Kind)
		}
	}
	if m.CountByKind(KindEnemy) != 1 || len(m.ByKind(KindNPC)) != 1 {
		t.Error("kind queries wrong")
	}

	// The player sees every other actor; a moving actor claims its target too.
	npc.Target = math.Vec2{X: 224}
	if got := len(m.Occupied(player)); got != 4 {
		t.Errorf("expected 4 occupied rects for the player, got %d", got)
	}
	// Enemies ignore the player.
	for _, r := range m.Occupied(enemy) {
		if r == player.Hitbox() {
			t.Error("enemy should pass through the player")
		}
	}

	m.Remove(enemy.ID)
	if m.Get(enemy.ID) != nil || m.Count() != 3 {
		t.Error("remove failed")
	}
	m.Remove(999)

	m.Remove(player.ID)
	if m.Player() != nil {
		t.Error("player pointer should clear on removal")
	}

	m.Clear()
	if m.Count() != 0 || m.Reaper() != nil {
		t.Error("clear failed")
	}
}
