package editor

// location is the index path of a node inside a row tree. Indices below
// the node's own layer are -1.
type location struct {
	kind NodeKind
	row  int
	col  int
	el   int
}

// walk visits every node depth first (row, then its columns, then each
// column's elements) and stops at the first node for which match returns
// true.
func walk(rows []Row, match func(kind NodeKind, id string) bool) (location, bool) {
	for ri := range rows {
		if match(KindRow, rows[ri].ID) {
			return location{kind: KindRow, row: ri, col: -1, el: -1}, true
		}
		for ci := range rows[ri].Columns {
			col := &rows[ri].Columns[ci]
			if match(KindColumn, col.ID) {
				return location{kind: KindColumn, row: ri, col: ci, el: -1}, true
			}
			for ei := range col.Elements {
				if match(KindElement, col.Elements[ei].ID) {
					return location{kind: KindElement, row: ri, col: ci, el: ei}, true
				}
			}
		}
	}
	return location{}, false
}

// locate finds id in rows. When kinds is non-empty only those layers are
// considered.
func locate(rows []Row, id string, kinds ...NodeKind) (location, bool) {
	if id == "" {
		return location{}, false
	}
	return walk(rows, func(kind NodeKind, nodeID string) bool {
		if nodeID != id {
			return false
		}
		if len(kinds) == 0 {
			return true
		}
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	})
}

// ValidIDs reports whether every node in rows has a non-empty id and no id
// appears twice.
func ValidIDs(rows []Row) bool {
	seen := make(map[string]struct{})
	_, bad := walk(rows, func(_ NodeKind, id string) bool {
		if id == "" {
			return true
		}
		if _, dup := seen[id]; dup {
			return true
		}
		seen[id] = struct{}{}
		return false
	})
	return !bad
}

func cloneElement(e Element) Element {
	e.Style = e.Style.Clone()
	if e.SocialLinks != nil {
		e.SocialLinks = append([]SocialLink(nil), e.SocialLinks...)
	}
	return e
}

func cloneColumn(c Column) Column {
	c.Style = c.Style.Clone()
	if c.Elements != nil {
		els := make([]Element, len(c.Elements))
		for i, e := range c.Elements {
			els[i] = cloneElement(e)
		}
		c.Elements = els
	}
	return c
}

func cloneRow(r Row) Row {
	r.Style = r.Style.Clone()
	if r.Columns != nil {
		cols := make([]Column, len(r.Columns))
		for i, c := range r.Columns {
			cols[i] = cloneColumn(c)
		}
		r.Columns = cols
	}
	return r
}

// CloneRows deep-copies a row tree so the copy can be mutated without
// touching any earlier revision.
func CloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = cloneRow(r)
	}
	return out
}

// elementWithNewIDs returns a deep copy of e carrying a fresh id.
func elementWithNewIDs(e Element) Element {
	e = cloneElement(e)
	e.ID = NewID(prefixElement)
	return e
}

// rowWithNewIDs returns a deep copy of r where the row and every
// descendant column and element carry a fresh id.
func rowWithNewIDs(r Row) Row {
	r = cloneRow(r)
	r.ID = NewID(prefixRow)
	for ci := range r.Columns {
		r.Columns[ci].ID = NewID(prefixColumn)
		for ei := range r.Columns[ci].Elements {
			r.Columns[ci].Elements[ei].ID = NewID(prefixElement)
		}
	}
	return r
}

// RowsWithNewIDs regenerates every id in a row tree. Used when loading a
// template so repeated loads never share ids.
func RowsWithNewIDs(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = rowWithNewIDs(r)
	}
	return out
}
