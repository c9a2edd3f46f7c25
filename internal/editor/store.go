package editor

// Listener is notified with the new present snapshot after every dispatch.
type Listener func(Snapshot)

// Store owns the history of one editing session. It is not safe for
// concurrent use; callers that share a Store serialise access themselves.
type Store struct {
	history   History
	listeners []Listener
}

// NewStore creates a store positioned at initial.
func NewStore(initial Snapshot, historyLimit int) *Store {
	return &Store{history: NewHistory(initial, historyLimit)}
}

// Subscribe registers fn to run after each Dispatch.
func (s *Store) Subscribe(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// Dispatch applies cmd and returns the new present snapshot.
func (s *Store) Dispatch(cmd Command) Snapshot {
	s.history = s.history.Apply(cmd)
	for _, fn := range s.listeners {
		fn(s.history.Present)
	}
	return s.history.Present
}

// State returns the present snapshot.
func (s *Store) State() Snapshot { return s.history.Present }

// History returns the full history value.
func (s *Store) History() History { return s.history }

func (s *Store) CanUndo() bool { return s.history.CanUndo() }

func (s *Store) CanRedo() bool { return s.history.CanRedo() }

// Selected resolves the current selection against the present tree.
func (s *Store) Selected() (Node, bool) {
	return Resolve(s.history.Present.Selection, s.history.Present.Rows)
}
