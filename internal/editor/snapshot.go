package editor

import (
	"encoding/json"
	"errors"
)

// ErrCorruptSnapshot is returned by DecodeSnapshot for persisted data that
// parses but does not describe a document.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// persisted is the stored shape. Pointers let DecodeSnapshot tell a missing
// key from an empty value.
type persisted struct {
	Rows         *[]Row        `json:"rows"`
	GlobalStyles *GlobalStyles `json:"globalStyles"`
	Selection    Selection     `json:"selection"`
}

// EncodeSnapshot serialises s as {rows, globalStyles, selection}.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	if s.Rows == nil {
		s.Rows = []Row{}
	}
	return json.Marshal(s)
}

// DecodeSnapshot parses a persisted snapshot. The stored selection is
// discarded: a reloaded document starts with nothing selected.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return Snapshot{}, err
	}
	if p.Rows == nil || p.GlobalStyles == nil {
		return Snapshot{}, ErrCorruptSnapshot
	}
	if !ValidIDs(*p.Rows) {
		return Snapshot{}, ErrCorruptSnapshot
	}
	return Snapshot{Rows: *p.Rows, GlobalStyles: *p.GlobalStyles}, nil
}

// LoadSnapshot decodes data, falling back to DefaultDocument when data is
// empty or corrupt. The returned error reports why the fallback was taken
// and is informational only.
func LoadSnapshot(data []byte) (Snapshot, error) {
	if len(data) == 0 {
		return DefaultDocument(), nil
	}
	s, err := DecodeSnapshot(data)
	if err != nil {
		return DefaultDocument(), err
	}
	return s, nil
}
