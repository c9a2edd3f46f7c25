package editor

// Reduce applies one command to s and returns the next revision. It never
// mutates s: every branch that changes the tree works on a deep copy.
// Commands naming a node that does not exist return s unchanged. Undo and
// Redo are history operations and are ignored here; see History.Apply.
func Reduce(s Snapshot, cmd Command) Snapshot {
	switch cmd.Type {
	case CmdSelect:
		if cmd.ID == "" {
			s.Selection = Selection{}
		} else {
			s.Selection = Select(cmd.ID, cmd.Kind)
		}
		return s

	case CmdInsertRow:
		if cmd.Cols < 1 || cmd.Cols > MaxColumns {
			return s
		}
		rows := CloneRows(s.Rows)
		s.Rows = append(rows, newRow(cmd.Cols))
		return s

	case CmdInsertElement:
		if !cmd.ElementType.Valid() {
			return s
		}
		loc, ok := locate(s.Rows, cmd.ColumnID, KindColumn)
		if !ok {
			return s
		}
		rows := CloneRows(s.Rows)
		col := &rows[loc.row].Columns[loc.col]
		el := newElement(cmd.ElementType)
		col.Elements = append(col.Elements, el)
		s.Rows = rows
		s.Selection = Select(el.ID, KindElement)
		return s

	case CmdUpdateStyle:
		loc, ok := locate(s.Rows, cmd.ID)
		if !ok {
			return s
		}
		rows := CloneRows(s.Rows)
		switch n := nodeAt(rows, loc); n.Kind {
		case KindRow:
			n.Row.Style = n.Row.Style.Merge(cmd.Style)
		case KindColumn:
			n.Column.Style = n.Column.Style.Merge(cmd.Style)
		case KindElement:
			n.Element.Style = n.Element.Style.Merge(cmd.Style)
		}
		s.Rows = rows
		return s

	case CmdUpdateContent:
		return updateElement(s, cmd.ID, func(e *Element) {
			e.Content = cmd.Content
		})

	case CmdUpdateSocialLinks:
		return updateElement(s, cmd.ID, func(e *Element) {
			e.SocialLinks = append([]SocialLink{}, cmd.SocialLinks...)
		})

	case CmdUpdateGlobalStyle:
		s.GlobalStyles = s.GlobalStyles.Apply(cmd.Styles)
		return s

	case CmdUpdateColumnWidth:
		if cmd.WidthPercent < 0 || cmd.WidthPercent > 100 {
			return s
		}
		loc, ok := locate(s.Rows, cmd.ID, KindColumn)
		if !ok {
			return s
		}
		rows := CloneRows(s.Rows)
		rows[loc.row].Columns[loc.col].WidthPercent = cmd.WidthPercent
		s.Rows = rows
		return s

	case CmdMoveElement:
		rows, moved := moveElement(s.Rows, cmd)
		if !moved {
			return s
		}
		s.Rows = rows
		s.Selection = Select(cmd.DragID, KindElement)
		return s

	case CmdDuplicateNode:
		return duplicateNode(s, cmd.ID, cmd.ItemType)

	case CmdLoadTemplate:
		s.Rows = CloneRows(cmd.Rows)
		if s.Rows == nil {
			s.Rows = []Row{}
		}
		s.Selection = Selection{}
		return s

	case CmdReset:
		s.Rows = []Row{}
		s.Selection = Selection{}
		return s

	case CmdDelete:
		return deleteNode(s, cmd.ID)
	}
	return s
}

func updateElement(s Snapshot, id string, fn func(e *Element)) Snapshot {
	loc, ok := locate(s.Rows, id, KindElement)
	if !ok {
		return s
	}
	rows := CloneRows(s.Rows)
	fn(&rows[loc.row].Columns[loc.col].Elements[loc.el])
	s.Rows = rows
	return s
}

// canMove reports whether a moveElement command would change anything.
func canMove(rows []Row, cmd Command) bool {
	_, ok := moveElement(rows, cmd)
	return ok
}

// moveElement detaches the dragged element and re-inserts it at the end of
// the target column or right before the target element.
func moveElement(rows []Row, cmd Command) ([]Row, bool) {
	if cmd.DragID == "" || cmd.DragID == cmd.TargetID {
		return nil, false
	}
	if cmd.TargetType != KindColumn && cmd.TargetType != KindElement {
		return nil, false
	}
	from, ok := locate(rows, cmd.DragID, KindElement)
	if !ok {
		return nil, false
	}
	if _, ok := locate(rows, cmd.TargetID, cmd.TargetType); !ok {
		return nil, false
	}

	out := CloneRows(rows)
	src := &out[from.row].Columns[from.col]
	el := src.Elements[from.el]
	src.Elements = append(src.Elements[:from.el:from.el], src.Elements[from.el+1:]...)

	// Indices may have shifted after the removal.
	to, _ := locate(out, cmd.TargetID, cmd.TargetType)
	dst := &out[to.row].Columns[to.col]
	if cmd.TargetType == KindColumn {
		dst.Elements = append(dst.Elements, el)
	} else {
		dst.Elements = insertElementAt(dst.Elements, to.el, el)
	}
	return out, true
}

func insertElementAt(els []Element, i int, el Element) []Element {
	out := make([]Element, 0, len(els)+1)
	out = append(out, els[:i]...)
	out = append(out, el)
	return append(out, els[i:]...)
}

func duplicateNode(s Snapshot, id string, kind NodeKind) Snapshot {
	switch kind {
	case KindRow:
		loc, ok := locate(s.Rows, id, KindRow)
		if !ok {
			return s
		}
		rows := CloneRows(s.Rows)
		dup := rowWithNewIDs(rows[loc.row])
		out := make([]Row, 0, len(rows)+1)
		out = append(out, rows[:loc.row+1]...)
		out = append(out, dup)
		s.Rows = append(out, rows[loc.row+1:]...)
		return s

	case KindElement:
		loc, ok := locate(s.Rows, id, KindElement)
		if !ok {
			return s
		}
		rows := CloneRows(s.Rows)
		col := &rows[loc.row].Columns[loc.col]
		dup := elementWithNewIDs(col.Elements[loc.el])
		col.Elements = insertElementAt(col.Elements, loc.el+1, dup)
		s.Rows = rows
		return s
	}
	return s
}

// deleteNode removes a row or an element. When id is empty the current
// selection is the target. Columns cannot be deleted. A successful delete
// always clears the selection so it never names a removed node.
func deleteNode(s Snapshot, id string) Snapshot {
	if id == "" {
		if s.Selection.IsEmpty() {
			return s
		}
		id = *s.Selection.ID
	}

	kinds := []NodeKind{KindRow, KindElement}
	if s.Selection.Is(id) && s.Selection.Kind != KindNone {
		kinds = []NodeKind{s.Selection.Kind}
	}
	loc, ok := locate(s.Rows, id, kinds...)
	if !ok {
		return s
	}

	rows := CloneRows(s.Rows)
	switch loc.kind {
	case KindRow:
		rows = append(rows[:loc.row:loc.row], rows[loc.row+1:]...)
	case KindElement:
		col := &rows[loc.row].Columns[loc.col]
		col.Elements = append(col.Elements[:loc.el:loc.el], col.Elements[loc.el+1:]...)
	default:
		return s
	}
	s.Rows = rows
	s.Selection = Selection{}
	return s
}
