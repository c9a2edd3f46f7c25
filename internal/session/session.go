package session

import (
	"sync"
	"time"

	"signature-builder/internal/autosave"
	"signature-builder/internal/editor"
)

// Session is one editing session: a Store plus the autosaver observing it.
// All access to the Store goes through the session mutex.
type Session struct {
	ID       string
	ClientID string
	UserID   uint64

	mu       sync.Mutex
	store    *editor.Store
	saver    *autosave.Autosaver
	lastSeen time.Time
}

// View is what clients see after every request.
type View struct {
	SessionID string          `json:"session_id"`
	State     editor.Snapshot `json:"state"`
	CanUndo   bool            `json:"can_undo"`
	CanRedo   bool            `json:"can_redo"`
	Status    autosave.Status `json:"status"`
}

func newSession(id, clientID string, userID uint64, initial editor.Snapshot, historyLimit int, saver *autosave.Autosaver, now time.Time) *Session {
	s := &Session{
		ID:       id,
		ClientID: clientID,
		UserID:   userID,
		store:    editor.NewStore(initial, historyLimit),
		saver:    saver,
		lastSeen: now,
	}
	saver.Prime(initial)
	s.store.Subscribe(saver.Observe)
	return s
}

// Dispatch applies cmd in arrival order and returns the resulting view.
func (s *Session) Dispatch(cmd editor.Command) View {
	if cmd.Type == editor.CmdLoadTemplate && !editor.ValidIDs(cmd.Rows) {
		cmd.Rows = editor.RowsWithNewIDs(cmd.Rows)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Dispatch(cmd)
	return s.viewLocked()
}

// View returns the current view without changing anything.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Selected resolves the current selection.
func (s *Session) Selected() (editor.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.store.Selected()
	if !ok {
		return editor.Node{}, false
	}
	return detach(n), true
}

func (s *Session) viewLocked() View {
	return View{
		SessionID: s.ID,
		State:     s.store.State(),
		CanUndo:   s.store.CanUndo(),
		CanRedo:   s.store.CanRedo(),
		Status:    s.saver.Status(),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

func (s *Session) close() {
	s.saver.Close()
}

// detach copies the resolved node so callers never alias history state.
func detach(n editor.Node) editor.Node {
	switch {
	case n.Row != nil:
		rows := editor.CloneRows([]editor.Row{*n.Row})
		n.Row = &rows[0]
	case n.Column != nil:
		rows := editor.CloneRows([]editor.Row{{Columns: []editor.Column{*n.Column}}})
		n.Column = &rows[0].Columns[0]
	case n.Element != nil:
		rows := editor.CloneRows([]editor.Row{{Columns: []editor.Column{{Elements: []editor.Element{*n.Element}}}}})
		n.Element = &rows[0].Columns[0].Elements[0]
	}
	return n
}
