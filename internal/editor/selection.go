package editor

// Node is a resolved reference into a row tree. Exactly one of Row, Column
// or Element is set, matching Kind.
type Node struct {
	Kind    NodeKind `json:"kind"`
	Row     *Row     `json:"row,omitempty"`
	Column  *Column  `json:"column,omitempty"`
	Element *Element `json:"element,omitempty"`
}

// Resolve walks rows for the node named by sel, searching only the layer
// given by sel.Kind. It returns false for an empty selection or when the
// id is not present in that layer. The returned pointers alias rows.
func Resolve(sel Selection, rows []Row) (Node, bool) {
	if sel.IsEmpty() || sel.Kind == KindNone {
		return Node{}, false
	}
	loc, ok := locate(rows, *sel.ID, sel.Kind)
	if !ok {
		return Node{}, false
	}
	return nodeAt(rows, loc), true
}

func nodeAt(rows []Row, loc location) Node {
	switch loc.kind {
	case KindRow:
		return Node{Kind: KindRow, Row: &rows[loc.row]}
	case KindColumn:
		return Node{Kind: KindColumn, Column: &rows[loc.row].Columns[loc.col]}
	default:
		return Node{Kind: KindElement, Element: &rows[loc.row].Columns[loc.col].Elements[loc.el]}
	}
}
