package editor

// DefaultHistoryLimit bounds the undo stack.
const DefaultHistoryLimit = 20

// History wraps a Snapshot with bounded undo and redo stacks. Past and
// Future hold snapshots oldest first; the top of each stack is the last
// element. History values are never mutated in place by Apply.
type History struct {
	Present Snapshot
	Past    []Snapshot
	Future  []Snapshot
	Limit   int
}

// NewHistory starts a history at initial with empty stacks. A limit below
// one falls back to DefaultHistoryLimit.
func NewHistory(initial Snapshot, limit int) History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return History{Present: initial, Limit: limit}
}

// CanUndo reports whether Undo would change anything.
func (h History) CanUndo() bool { return len(h.Past) > 0 }

// CanRedo reports whether Redo would change anything.
func (h History) CanRedo() bool { return len(h.Future) > 0 }

// Apply runs cmd through Reduce. Undoable commands first record the
// current snapshot on Past (dropping the oldest entry past Limit) and
// clear Future. A moveElement that would not move anything records nothing.
func (h History) Apply(cmd Command) History {
	switch cmd.Type {
	case CmdUndo:
		if !h.CanUndo() {
			return h
		}
		last := len(h.Past) - 1
		prev := h.Past[last]
		h.Future = push(h.Future, h.Present, 0)
		h.Past = h.Past[:last:last]
		h.Present = prev
		return h

	case CmdRedo:
		if !h.CanRedo() {
			return h
		}
		last := len(h.Future) - 1
		next := h.Future[last]
		h.Past = push(h.Past, h.Present, h.Limit)
		h.Future = h.Future[:last:last]
		h.Present = next
		return h

	case CmdSelect:
		h.Present = Reduce(h.Present, cmd)
		return h
	}

	if cmd.Type == CmdMoveElement && !canMove(h.Present.Rows, cmd) {
		return h
	}
	h.Past = push(h.Past, h.Present, h.Limit)
	h.Future = nil
	h.Present = Reduce(h.Present, cmd)
	return h
}

// push returns a new stack with s on top, keeping at most limit entries
// (limit 0 means unbounded). The input slice is left untouched.
func push(stack []Snapshot, s Snapshot, limit int) []Snapshot {
	start := 0
	if limit > 0 && len(stack)+1 > limit {
		start = len(stack) + 1 - limit
	}
	out := make([]Snapshot, 0, len(stack)-start+1)
	out = append(out, stack[start:]...)
	return append(out, s)
}
