package editor

import "encoding/json"

// NodeKind tags which layer of the tree a node lives in.
type NodeKind string

const (
	KindNone    NodeKind = ""
	KindRow     NodeKind = "row"
	KindColumn  NodeKind = "column"
	KindElement NodeKind = "element"
)

// ElementType is the content type of an element.
type ElementType string

const (
	ElementText   ElementType = "text"
	ElementImage  ElementType = "image"
	ElementSocial ElementType = "social"
	ElementButton ElementType = "button"
)

// Valid reports whether t is one of the supported element types.
func (t ElementType) Valid() bool {
	switch t {
	case ElementText, ElementImage, ElementSocial, ElementButton:
		return true
	}
	return false
}

// Style is an open map of presentation attributes (fontSize, color,
// paddingTop, textAlign, backgroundColor, borderRadius, fontWeight, ...).
type Style map[string]any

// Merge returns a copy of s with patch applied on top. Keys in patch
// overwrite, every other key persists.
func (s Style) Merge(patch Style) Style {
	out := make(Style, len(s)+len(patch))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of s. Nested values stay shared between
// revisions; no code mutates a style value in place.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// SocialLink is one entry of a social element.
type SocialLink struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

// Element is a leaf content node.
type Element struct {
	ID          string       `json:"id"`
	Type        ElementType  `json:"type"`
	Content     string       `json:"content"`
	URL         string       `json:"url,omitempty"`
	SocialLinks []SocialLink `json:"socialLinks,omitempty"`
	Style       Style        `json:"style"`
}

// Column holds an ordered list of elements. WidthPercent is advisory and is
// never re-normalised against sibling columns.
type Column struct {
	ID            string    `json:"id"`
	WidthPercent  float64   `json:"widthPercent"`
	VerticalAlign string    `json:"verticalAlign"`
	Style         Style     `json:"style"`
	Elements      []Element `json:"elements"`
}

// Row holds an ordered list of columns.
type Row struct {
	ID      string   `json:"id"`
	Style   Style    `json:"style"`
	Columns []Column `json:"columns"`
}

// GlobalStyles are the document-level presentation settings.
type GlobalStyles struct {
	FontFamily      string `json:"fontFamily"`
	FontSize        string `json:"fontSize"`
	ThemeColor      string `json:"themeColor"`
	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
}

// GlobalStylesPatch is a partial GlobalStyles; nil fields are left alone.
type GlobalStylesPatch struct {
	FontFamily      *string `json:"fontFamily,omitempty"`
	FontSize        *string `json:"fontSize,omitempty"`
	ThemeColor      *string `json:"themeColor,omitempty"`
	TextColor       *string `json:"textColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
}

// Apply merges p into g.
func (g GlobalStyles) Apply(p GlobalStylesPatch) GlobalStyles {
	if p.FontFamily != nil {
		g.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		g.FontSize = *p.FontSize
	}
	if p.ThemeColor != nil {
		g.ThemeColor = *p.ThemeColor
	}
	if p.TextColor != nil {
		g.TextColor = *p.TextColor
	}
	if p.BackgroundColor != nil {
		g.BackgroundColor = *p.BackgroundColor
	}
	return g
}

// Selection names the active node. A zero Selection means nothing is
// selected and the global settings are shown.
type Selection struct {
	ID   *string  `json:"id"`
	Kind NodeKind `json:"kind"`
}

// Select builds a selection for id of the given kind.
func Select(id string, kind NodeKind) Selection {
	return Selection{ID: &id, Kind: kind}
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.ID == nil
}

// Is reports whether s names id.
func (s Selection) Is(id string) bool {
	return s.ID != nil && *s.ID == id
}

// Snapshot is one revision of the document plus its selection. Snapshots
// are treated as immutable once produced by Reduce.
type Snapshot struct {
	Rows         []Row        `json:"rows"`
	GlobalStyles GlobalStyles `json:"globalStyles"`
	Selection    Selection    `json:"selection"`
}

type selectionJSON struct {
	ID   *string   `json:"id"`
	Kind *NodeKind `json:"kind"`
}

// MarshalJSON writes an empty selection as {"id":null,"kind":null}.
func (s Selection) MarshalJSON() ([]byte, error) {
	out := selectionJSON{ID: s.ID}
	if s.Kind != KindNone {
		kind := s.Kind
		out.Kind = &kind
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts null for either field.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var in selectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.ID = in.ID
	s.Kind = KindNone
	if in.Kind != nil {
		s.Kind = *in.Kind
	}
	return nil
}
