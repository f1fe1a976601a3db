package entity

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/beyond-sight/internal/engine/collision"
	"github.com/Faultbox/beyond-sight/pkg/math"
)

const tile = 32

func TestStepFacing(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Facing
		ok     bool
	}{
		{"right", 32, 0, FacingRight, true},
		{"left", -32, 0, FacingLeft, true},
		{"up", 0, 32, FacingUp, true},
		{"down", 0, -32, FacingDown, true},
		{"larger x", 64, 32, FacingRight, true},
		{"larger y", 10, -20, FacingDown, true},
		{"tie goes horizontal", 32, 32, FacingRight, true},
		{"negative tie", -32, 32, FacingLeft, true},
		{"zero", 0, 0, FacingDown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StepFacing(tt.dx, tt.dy)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("StepFacing(%v,%v) = %v,%v want %v,%v", tt.dx, tt.dy, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFacing_RoundTrip(t *testing.T) {
	for _, f := range Facings {
		got, ok := ParseFacing(f.String())
		if !ok || got != f {
			t.Errorf("ParseFacing(%q) = %v,%v", f.String(), got, ok)
		}
	}
	if _, ok := ParseFacing("sideways"); ok {
		t.Error("unknown facing parsed")
	}
}

func TestGridActor_TurnThenStep(t *testing.T) {
	g := NewGridActor(math.Vec2{}, tile, 2, 6)

	if res := g.Update(0, tile, nil, nil); res != MoveTurned {
		t.Fatalf("expected turn, got %v", res)
	}
	if g.Facing != FacingUp || g.TurnDelay != 6 || g.Cell != (math.Vec2{}) || g.IsMoving() {
		t.Fatalf("unexpected state after turn: %+v", g)
	}

	for i := 0; i < 6; i++ {
		if res := g.Update(0, tile, nil, nil); res != MovePaused {
			t.Fatalf("tick %d: expected pause, got %v", i, res)
		}
	}
	if g.TurnDelay != 0 {
		t.Fatalf("turn delay should be spent, got %d", g.TurnDelay)
	}

	if res := g.Update(0, tile, nil, nil); res != MoveStarted {
		t.Fatalf("expected step start, got %v", res)
	}
	if g.Target != (math.Vec2{Y: tile}) || !g.IsMoving() {
		t.Errorf("expected target (0,%d), got %+v", tile, g.Target)
	}

	ticks := 0
	for g.IsMoving() {
		g.Update(0, tile, nil, nil)
		ticks++
		if ticks > 100 {
			t.Fatal("step never finished")
		}
	}
	if ticks != tile/2 {
		t.Errorf("expected %d ticks at speed 2, got %d", tile/2, ticks)
	}
	if g.Cell != g.Target {
		t.Errorf("idle actor off target: %+v", g)
	}
}

func TestGridActor_NoTurnDelayConfigured(t *testing.T) {
	g := NewGridActor(math.Vec2{}, tile, 4, 0)
	if res := g.Update(tile, 0, nil, nil); res != MoveTurned {
		t.Fatalf("expected turn, got %v", res)
	}
	if res := g.Update(tile, 0, nil, nil); res != MoveStarted {
		t.Fatalf("expected immediate step, got %v", res)
	}
}

func TestGridActor_ContinueMoveNeverOvershoots(t *testing.T) {
	speeds := []float64{0.5, 1, 1.5, 3, 5, 7, 31, 32, 40}

	for _, speed := range speeds {
		for tiles := 1; tiles <= 3; tiles++ {
			for _, dir := range Facings {
				g := NewGridActor(math.Vec2{X: 320, Y: 320}, tile, speed, 0)
				start := g.Cell
				g.Target = start.Add(dir.Vector(float64(tiles * tile)))

				limit := int(gomath.Ceil(float64(tiles*tile)/speed)) + 1
				for i := 0; g.IsMoving(); i++ {
					if i > limit {
						t.Fatalf("speed %v: step did not finish in %d ticks", speed, limit)
					}
					g.ContinueMove()
					if overshoots(start, g.Cell, g.Target) {
						t.Fatalf("speed %v dir %v: %v passed target %v", speed, dir, g.Cell, g.Target)
					}
				}
				if g.Cell != g.Target {
					t.Errorf("speed %v: settled at %v, want %v", speed, g.Cell, g.Target)
				}
			}
		}
	}
}

// overshoots reports whether cur went past target along the travel direction.
func overshoots(start, cur, target math.Vec2) bool {
	past := func(s, c, t float64) bool {
		if t >= s {
			return c > t
		}
		return c < t
	}
	return past(start.X, cur.X, target.X) || past(start.Y, cur.Y, target.Y)
}

func TestGridActor_Rejections(t *testing.T) {
	always := func(math.Vec2) bool { return true }
	never := func(math.Vec2) bool { return false }

	tests := []struct {
		name      string
		blocked   CellCheck
		forbidden CellCheck
		want      MoveResult
	}{
		{"clear", never, never, MoveStarted},
		{"nil checks", nil, nil, MoveStarted},
		{"blocked", always, never, MoveBlocked},
		{"forbidden", never, always, MoveForbidden},
		{"forbidden wins over blocked", always, always, MoveForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGridActor(math.Vec2{X: 64, Y: 64}, tile, 2, 6)
			g.Facing = FacingRight

			res := g.RequestMove(tile, 0, tt.blocked, tt.forbidden)
			if res != tt.want {
				t.Errorf("expected %v, got %v", tt.want, res)
			}
			if res != MoveStarted && g.IsMoving() {
				t.Error("rejected move left the actor moving")
			}
		})
	}
}

func TestGridActor_ZeroDeltaIsNoop(t *testing.T) {
	g := NewGridActor(math.Vec2{X: 32}, tile, 2, 6)
	g.Facing = FacingLeft

	if res := g.Update(0, 0, nil, nil); res != MoveNone {
		t.Errorf("expected no-op, got %v", res)
	}
	if g.Facing != FacingLeft || g.TurnDelay != 0 || g.IsMoving() {
		t.Errorf("zero request changed state: %+v", g)
	}
}

func TestGridActor_BusyWhileStepping(t *testing.T) {
	g := NewGridActor(math.Vec2{}, tile, 2, 0)
	g.Facing = FacingRight
	g.RequestMove(tile, 0, nil, nil)

	if res := g.RequestMove(0, tile, nil, nil); res != MoveStepping {
		t.Errorf("expected request to be ignored mid-step, got %v", res)
	}
	if g.Facing != FacingRight || g.Target != (math.Vec2{X: tile}) {
		t.Errorf("mid-step request changed state: %+v", g)
	}
}

func TestGridActor_SpeedFixedAtStepStart(t *testing.T) {
	g := NewGridActor(math.Vec2{}, tile, 2, 0)
	g.Facing = FacingRight
	g.RequestMove(tile, 0, nil, nil)

	g.Speed = 4
	g.ContinueMove()
	if g.Cell.X != 2 {
		t.Errorf("expected the step to keep speed 2, moved to %v", g.Cell.X)
	}
}

func TestGridActor_WorldBounds(t *testing.T) {
	oracle := &collision.Oracle{Width: 320, Height: 240, TileSize: tile}
	blocked := func(cell math.Vec2) bool { return oracle.Blocked(cell, nil) }

	tests := []struct {
		name   string
		start  math.Vec2
		facing Facing
		want   MoveResult
	}{
		{"into last column", math.Vec2{X: 256}, FacingRight, MoveStarted},
		{"past last column", math.Vec2{X: 288}, FacingRight, MoveBlocked},
		{"into top row", math.Vec2{Y: 176}, FacingUp, MoveStarted},
		{"past top row", math.Vec2{Y: 208}, FacingUp, MoveBlocked},
		{"below origin", math.Vec2{}, FacingDown, MoveBlocked},
		{"left of origin", math.Vec2{}, FacingLeft, MoveBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGridActor(tt.start, tile, 2, 0)
			g.Facing = tt.facing
			v := tt.facing.Vector(tile)
			if res := g.RequestMove(v.X, v.Y, blocked, nil); res != tt.want {
				t.Errorf("expected %v, got %v", tt.want, res)
			}
		})
	}
}
