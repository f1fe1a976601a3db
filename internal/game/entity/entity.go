// Package entity implements grid actors (player, NPCs, the Reaper, enemies)
// and the policies that drive them.
package entity

import (
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// Kind identifies what an actor is.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindNPC
	KindReaper
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindNPC:
		return "npc"
	case KindReaper:
		return "reaper"
	case KindEnemy:
		return "enemy"
	}
	return "unknown"
}

// State is the animation state derived from movement.
type State uint8

const (
	StateIdle State = iota
	StateWalking
)

// Actor is a grid actor with identity, a driving policy and animation timing.
type Actor struct {
	GridActor

	ID     uint32
	Kind   Kind
	Name   string
	Policy Policy

	// Dialogue shown when the player interacts.
	Lines []string

	// Animation clock.
	AnimFPS    float64
	Frame      int
	FrameCount int
	frameTime  float64
}

// NewActor creates an idle actor. A nil policy holds still.
func NewActor(id uint32, kind Kind, grid GridActor, policy Policy) *Actor {
	if policy == nil {
		policy = Hold{}
	}
	return &Actor{
		GridActor:  grid,
		ID:         id,
		Kind:       kind,
		Policy:     policy,
		FrameCount: 1,
	}
}

// State returns the animation state.
func (a *Actor) State() State {
	if a.IsMoving() {
		return StateWalking
	}
	return StateIdle
}

// Update runs one fixed tick. blocked rejects destination cells; it is
// evaluated against the other actors' positions at the time of the call, so
// actors updated earlier in a tick win contested cells.
func (a *Actor) Update(dt float64, view View, blocked CellCheck) MoveResult {
	if t, ok := a.Policy.(Ticker); ok {
		t.Tick(a, view, dt)
	}

	var res MoveResult
	if a.IsMoving() || a.TurnDelay > 0 {
		res = a.GridActor.Update(0, 0, nil, nil)
	} else {
		dx, dy := a.Policy.Decide(a, view)
		var forbidden CellCheck
		if f, ok := a.Policy.(Forbidder); ok {
			forbidden = func(cell math.Vec2) bool { return f.Forbidden(a, cell, view) }
		}
		res = a.GridActor.Update(dx, dy, blocked, forbidden)
	}

	a.advanceFrame(dt)
	return res
}

// advanceFrame steps the animation clock, looping over FrameCount frames.
func (a *Actor) advanceFrame(dt float64) {
	if a.AnimFPS <= 0 || a.FrameCount <= 1 {
		return
	}
	interval := 1 / a.AnimFPS
	a.frameTime += dt
	for a.frameTime >= interval {
		a.frameTime -= interval
		a.Frame = (a.Frame + 1) % a.FrameCount
	}
}

// ResetFrame restarts the animation clock.
func (a *Actor) ResetFrame() {
	a.Frame = 0
	a.frameTime = 0
}

// Manager owns the live actors in spawn order. Spawn order is update order.
type Manager struct {
	order  []*Actor
	byID   map[uint32]*Actor
	player *Actor
	nextID uint32
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		byID:   make(map[uint32]*Actor),
		nextID: 1,
	}
}

// NextID reserves a fresh actor ID.
func (m *Manager) NextID() uint32 {
	id := m.nextID
	m.nextID++
	return id
}

// Add appends an actor. An actor with a taken ID replaces the old one in place.
func (m *Manager) Add(a *Actor) {
	if old, ok := m.byID[a.ID]; ok {
		for i, e := range m.order {
			if e == old {
				m.order[i] = a
			}
		}
	} else {
		m.order = append(m.order, a)
	}
	m.byID[a.ID] = a
	if a.ID >= m.nextID {
		m.nextID = a.ID + 1
	}
	if a.Kind == KindPlayer {
		m.player = a
	}
}

// Remove deletes an actor by ID.
func (m *Manager) Remove(id uint32) {
	a, ok := m.byID[id]
	if !ok {
		return
	}
	delete(m.byID, id)
	for i, e := range m.order {
		if e == a {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.player == a {
		m.player = nil
	}
}

// Get returns an actor by ID.
func (m *Manager) Get(id uint32) *Actor {
	return m.byID[id]
}

// Player returns the player actor, if any.
func (m *Manager) Player() *Actor {
	return m.player
}

// Reaper returns the first Reaper, if any.
func (m *Manager) Reaper() *Actor {
	for _, a := range m.order {
		if a.Kind == KindReaper {
			return a
		}
	}
	return nil
}

// All returns a snapshot of the actors in update order.
func (m *Manager) All() []*Actor {
	out := make([]*Actor, len(m.order))
	copy(out, m.order)
	return out
}

// ByKind returns the actors of one kind in update order.
func (m *Manager) ByKind(kind Kind) []*Actor {
	var out []*Actor
	for _, a := range m.order {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// Count returns the number of actors.
func (m *Manager) Count() int {
	return len(m.order)
}

// CountByKind returns the number of actors of one kind.
func (m *Manager) CountByKind(kind Kind) int {
	n := 0
	for _, a := range m.order {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Occupied returns the hitboxes every actor other than self currently
// claims: its cell and, while stepping, its target cell. Actors self's
// policy passes through are left out.
func (m *Manager) Occupied(self *Actor) []math.Rect {
	var pass PassThrough
	if self != nil {
		pass, _ = self.Policy.(PassThrough)
	}
	out := make([]math.Rect, 0, 2*len(m.order))
	for _, a := range m.order {
		if a == self || (pass != nil && pass.PassesThrough(a)) {
			continue
		}
		out = append(out, a.Hitbox())
		if a.IsMoving() {
			out = append(out, a.TargetHitbox())
		}
	}
	return out
}

// Clear removes every actor.
func (m *Manager) Clear() {
	m.order = nil
	m.byID = make(map[uint32]*Actor)
	m.player = nil
}
