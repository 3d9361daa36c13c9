// README: Session registry with per-session serialized message handling.
package session

import (
	"context"
	"sync"

	"atlas/internal/llm"
)

// Manager owns all live sessions. Messages for one session id are strictly
// serialized through the session's own mutex; different sessions never block
// each other or share mutable state.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	orch *Orchestrator
	reg  *llm.Registry
}

func NewManager(orch *Orchestrator, reg *llm.Registry) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		orch:     orch,
		reg:      reg,
	}
}

func (m *Manager) session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		sess = NewSession(id, m.reg.DefaultModel())
		m.sessions[id] = sess
	}
	return sess
}

// Process handles one message for the given session id and returns the reply.
func (m *Manager) Process(ctx context.Context, id, message string) string {
	sess := m.session(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return m.orch.ProcessMessage(ctx, sess, message)
}

// Reset clears the session's conversation state. Safe on unknown ids.
func (m *Manager) Reset(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Reset()
}

// SetModel rebinds the session to the model named by displayName.
// Unknown names are a configuration error.
func (m *Manager) SetModel(id, displayName string) error {
	key, err := m.reg.Resolve(displayName)
	if err != nil {
		return err
	}
	sess := m.session(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Model = key
	return nil
}

// CurrentModel returns the display name of the session's model.
func (m *Manager) CurrentModel(id string) string {
	sess := m.session(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	info, err := m.reg.Info(sess.Model)
	if err != nil {
		return sess.Model
	}
	return info.DisplayName
}
