// Package states switches between top-level game phases.
package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/logger"
)

// State is one phase of the game, such as playing or the game-over pause.
type State interface {
	Name() string

	// Enter is called when the state becomes current.
	Enter() error

	// Exit is called when the state is replaced.
	Exit() error

	// Update is called once per frame while current.
	Update(dt float64) error
}

// Manager holds the current state and applies scheduled changes at the
// start of the next Update.
type Manager struct {
	current State
	next    State
}

// NewManager creates a manager with no state.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Is reports whether the current state has the given name.
func (m *Manager) Is(name string) bool {
	return m.current != nil && m.current.Name() == name
}

// Change schedules a transition. A later call before the next Update wins.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update applies a pending transition, then updates the current state.
func (m *Manager) Update(dt float64) error {
	if m.next != nil {
		from := ""
		if m.current != nil {
			from = m.current.Name()
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current, m.next = m.next, nil
		logger.Debug("state change",
			zap.String("from", from),
			zap.String("to", m.current.Name()))
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}
