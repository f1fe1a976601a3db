package entity

import (
	gomath "math"

	"github.com/Faultbox/beyond-sight/internal/engine/collision"
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// Facing is one of the four grid directions.
type Facing uint8

const (
	FacingDown Facing = iota
	FacingLeft
	FacingRight
	FacingUp
)

// Facings lists every facing in sheet order.
var Facings = [4]Facing{FacingDown, FacingLeft, FacingRight, FacingUp}

func (f Facing) String() string {
	switch f {
	case FacingDown:
		return "down"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	case FacingUp:
		return "up"
	}
	return "unknown"
}

// ParseFacing converts a facing name back to a Facing.
func ParseFacing(s string) (Facing, bool) {
	for _, f := range Facings {
		if f.String() == s {
			return f, true
		}
	}
	return FacingDown, false
}

// Vector returns the world offset of one step of the given length.
// World Y grows upward.
func (f Facing) Vector(step float64) math.Vec2 {
	switch f {
	case FacingLeft:
		return math.Vec2{X: -step}
	case FacingRight:
		return math.Vec2{X: step}
	case FacingUp:
		return math.Vec2{Y: step}
	default:
		return math.Vec2{Y: -step}
	}
}

// StepFacing picks the facing for a desired offset: the axis with the larger
// magnitude wins and ties go to the horizontal axis. ok is false for a zero
// offset.
func StepFacing(dx, dy float64) (f Facing, ok bool) {
	ax, ay := gomath.Abs(dx), gomath.Abs(dy)
	switch {
	case ax == 0 && ay == 0:
		return FacingDown, false
	case ax >= ay: // |dx| == |dy| resolves to the horizontal axis
		if dx > 0 {
			return FacingRight, true
		}
		return FacingLeft, true
	case dy > 0:
		return FacingUp, true
	default:
		return FacingDown, true
	}
}

// MoveResult reports what a tick did to a grid actor.
type MoveResult uint8

const (
	MoveNone      MoveResult = iota // Nothing requested
	MoveStepping                    // Advanced toward the target
	MoveArrived                     // Reached the target this tick
	MovePaused                      // Waiting out a turn delay
	MoveTurned                      // Changed facing, step deferred
	MoveBlocked                     // Destination occupied or out of bounds
	MoveForbidden                   // Destination inside a forbidden zone
	MoveStarted                     // Committed to a new target
)

var moveResultNames = [...]string{"none", "stepping", "arrived", "paused", "turned", "blocked", "forbidden", "started"}

func (r MoveResult) String() string {
	if int(r) < len(moveResultNames) {
		return moveResultNames[r]
	}
	return "unknown"
}

// CellCheck reports whether a destination cell is rejected. A nil check
// never rejects.
type CellCheck func(cell math.Vec2) bool

// GridActor is the discrete single-tile movement state shared by every
// actor kind. Cell only changes through ContinueMove and never overshoots
// Target; the actor is idle exactly when Cell equals Target.
type GridActor struct {
	Cell   math.Vec2
	Target math.Vec2
	Facing Facing

	// Ticks left before a freshly turned actor may step.
	TurnDelay int
	// Value TurnDelay is reset to on every turn.
	TurnDelayTicks int

	// Units advanced per tick for the next step.
	Speed    float64
	TileSize float64

	stepSpeed float64
}

// NewGridActor places an idle actor facing down at cell.
func NewGridActor(cell math.Vec2, tileSize, speed float64, turnDelayTicks int) GridActor {
	return GridActor{
		Cell:           cell,
		Target:         cell,
		Facing:         FacingDown,
		TurnDelayTicks: turnDelayTicks,
		Speed:          speed,
		TileSize:       tileSize,
	}
}

// IsMoving reports whether the actor is between cells.
func (g *GridActor) IsMoving() bool {
	return g.Cell != g.Target
}

// Hitbox is the tile-sized collision footprint at the current cell.
func (g *GridActor) Hitbox() math.Rect {
	return collision.Hitbox(g.Cell, g.TileSize)
}

// TargetHitbox is the footprint at the cell being walked toward.
func (g *GridActor) TargetHitbox() math.Rect {
	return collision.Hitbox(g.Target, g.TileSize)
}

// ContinueMove advances each axis toward Target by the speed fixed at step
// start, clamped so it lands exactly on Target.
func (g *GridActor) ContinueMove() MoveResult {
	if !g.IsMoving() {
		return MoveNone
	}
	speed := g.stepSpeed
	if speed <= 0 {
		speed = g.Speed
	}
	g.Cell = g.Cell.Approach(g.Target, speed)
	if g.Cell == g.Target {
		return MoveArrived
	}
	return MoveStepping
}

// RequestMove asks for a one-tile step toward the offset (dx, dy). A facing
// change only turns the actor and arms the turn delay; a step in the current
// facing is checked against forbidden and then blocked before it commits.
func (g *GridActor) RequestMove(dx, dy float64, blocked, forbidden CellCheck) MoveResult {
	if g.IsMoving() {
		return MoveStepping
	}
	facing, ok := StepFacing(dx, dy)
	if !ok {
		return MoveNone
	}
	if facing != g.Facing {
		g.Facing = facing
		g.TurnDelay = g.TurnDelayTicks
		return MoveTurned
	}
	if g.TurnDelay > 0 {
		return MovePaused
	}

	dest := g.Cell.Add(facing.Vector(g.TileSize))
	if forbidden != nil && forbidden(dest) {
		return MoveForbidden
	}
	if blocked != nil && blocked(dest) {
		return MoveBlocked
	}

	g.Target = dest
	g.stepSpeed = g.Speed
	return MoveStarted
}

// Update runs one fixed tick: an actor in motion keeps stepping, a paused
// actor counts down its turn delay, and an idle actor evaluates the
// requested offset.
func (g *GridActor) Update(dx, dy float64, blocked, forbidden CellCheck) MoveResult {
	if g.IsMoving() {
		return g.ContinueMove()
	}
	if g.TurnDelay > 0 {
		g.TurnDelay--
		return MovePaused
	}
	return g.RequestMove(dx, dy, blocked, forbidden)
}

// StepSpeed returns the speed the current step started with, or 0 when idle.
func (g *GridActor) StepSpeed() float64 {
	if !g.IsMoving() {
		return 0
	}
	return g.stepSpeed
}
