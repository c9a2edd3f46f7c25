package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"signature-builder/internal/autosave"
	"signature-builder/internal/editor"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LocalStore is the durable per-client snapshot store.
type LocalStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

// RemoteSinks hands out the remote autosave target for a signed-in user.
type RemoteSinks interface {
	RemoteSink(userID uint64) autosave.RemoteSink
}

type Options struct {
	HistoryLimit int
	IdleTimeout  time.Duration
	Autosave     autosave.Options
}

// Manager owns every open editing session.
type Manager struct {
	local   LocalStore
	remotes RemoteSinks
	pool    autosave.Submitter
	opts    Options
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager builds a Manager. remotes may be nil, in which case no
// session syncs to a remote store.
func NewManager(local LocalStore, remotes RemoteSinks, pool autosave.Submitter, opts Options) *Manager {
	return &Manager{
		local:    local,
		remotes:  remotes,
		pool:     pool,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// LocalKey is the local snapshot key for clientID. Signed-in owners get
// their own namespace so equal client ids never share a snapshot.
func LocalKey(clientID string, userID uint64) string {
	if userID == 0 {
		return "anon:" + clientID
	}
	return fmt.Sprintf("user:%d:%s", userID, clientID)
}

// Open starts a session for clientID, restoring the owner's last local
// snapshot for that client. A missing or unreadable snapshot yields the
// default document. userID 0 means anonymous: nothing is written remotely.
func (m *Manager) Open(ctx context.Context, clientID string, userID uint64) *Session {
	key := LocalKey(clientID, userID)
	raw, err := m.local.Load(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("client_id", clientID).Msg("session: local snapshot unavailable")
		raw = nil
	}
	initial, err := editor.LoadSnapshot(raw)
	if err != nil {
		log.Warn().Err(err).Str("client_id", clientID).Msg("session: discarding corrupt snapshot")
	}

	var remote autosave.RemoteSink
	if userID != 0 && m.remotes != nil {
		remote = m.remotes.RemoteSink(userID)
	}
	saver := autosave.New(key, m.local, remote, m.pool, m.opts.Autosave)

	s := newSession(uuid.NewString(), clientID, userID, initial, m.opts.HistoryLimit, saver, m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Info().Str("session_id", s.ID).Str("client_id", clientID).Uint64("user_id", userID).Msg("session opened")
	return s
}

// Get returns the session with id and marks it as active.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(m.now())
	}
	return s, ok
}

// Close ends a session, cancelling any pending autosave.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.close()
		log.Info().Str("session_id", id).Msg("session closed")
	}
	return ok
}

// CloseAll ends every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

// Len reports the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes sessions idle for longer than the idle timeout and returns
// how many it closed.
func (m *Manager) Sweep() int {
	if m.opts.IdleTimeout <= 0 {
		return 0
	}
	now := m.now()

	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if s.idleSince(now) > m.opts.IdleTimeout {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	closed := 0
	for _, id := range stale {
		if m.Close(id) {
			closed++
		}
	}
	return closed
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Info().Int("closed", n).Msg("swept idle sessions")
			}
		}
	}
}
