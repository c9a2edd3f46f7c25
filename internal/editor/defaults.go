package editor

import "sort"

// DefaultGlobalStyles are applied to new and reset-from-corrupt documents.
func DefaultGlobalStyles() GlobalStyles {
	return GlobalStyles{
		FontFamily:      "Arial, sans-serif",
		FontSize:        "14px",
		ThemeColor:      "#2563eb",
		TextColor:       "#1f2937",
		BackgroundColor: "#ffffff",
	}
}

func defaultSocialLinks() []SocialLink {
	return []SocialLink{
		{Network: "linkedin", URL: "https://linkedin.com/in/"},
		{Network: "twitter", URL: "https://twitter.com/"},
	}
}

// newElement builds an element of type t with placeholder content.
func newElement(t ElementType) Element {
	el := Element{ID: NewID(prefixElement), Type: t}
	switch t {
	case ElementText:
		el.Content = "New text"
		el.Style = Style{"fontSize": "14px", "color": "#1f2937", "paddingTop": "4px", "paddingBottom": "4px"}
	case ElementImage:
		el.Content = "https://placehold.co/100x100"
		el.Style = Style{"width": "100px", "borderRadius": "0px", "paddingTop": "4px", "paddingBottom": "4px"}
	case ElementSocial:
		el.SocialLinks = defaultSocialLinks()
		el.Style = Style{"iconSize": "24px", "gap": "8px", "paddingTop": "4px", "paddingBottom": "4px"}
	case ElementButton:
		el.Content = "Book a meeting"
		el.URL = "https://"
		el.Style = Style{
			"backgroundColor": "#2563eb",
			"color":           "#ffffff",
			"borderRadius":    "4px",
			"paddingTop":      "8px",
			"paddingBottom":   "8px",
			"paddingLeft":     "16px",
			"paddingRight":    "16px",
			"fontWeight":      "bold",
		}
	}
	return el
}

// newRow builds a row of cols evenly sized, empty columns.
func newRow(cols int) Row {
	row := Row{ID: NewID(prefixRow), Style: Style{"paddingTop": "8px", "paddingBottom": "8px"}}
	width := 100 / float64(cols)
	for i := 0; i < cols; i++ {
		row.Columns = append(row.Columns, Column{
			ID:            NewID(prefixColumn),
			WidthPercent:  width,
			VerticalAlign: "top",
			Style:         Style{},
			Elements:      []Element{},
		})
	}
	return row
}

func textElement(content string, style Style) Element {
	el := newElement(ElementText)
	el.Content = content
	el.Style = el.Style.Merge(style)
	return el
}

func imageElement(url string, style Style) Element {
	el := newElement(ElementImage)
	el.Content = url
	el.Style = el.Style.Merge(style)
	return el
}

// DefaultDocument is the built-in starting tree: an avatar next to the name,
// title and social links.
func DefaultDocument() Snapshot {
	return Snapshot{
		Rows:         classicTemplate(),
		GlobalStyles: DefaultGlobalStyles(),
	}
}

func classicTemplate() []Row {
	row := newRow(2)
	row.Columns[0].WidthPercent = 30
	row.Columns[0].Elements = []Element{
		imageElement("https://placehold.co/100x100", Style{"borderRadius": "50%"}),
	}
	row.Columns[1].WidthPercent = 70
	row.Columns[1].VerticalAlign = "middle"
	row.Columns[1].Elements = []Element{
		textElement("Jane Doe", Style{"fontSize": "18px", "fontWeight": "bold"}),
		textElement("Marketing Manager | Acme Inc.", Style{"color": "#6b7280"}),
		newElement(ElementSocial),
	}
	return []Row{row}
}

func sidebarTemplate() []Row {
	top := newRow(3)
	top.Columns[0].Elements = []Element{imageElement("https://placehold.co/80x80", nil)}
	top.Columns[1].Elements = []Element{
		textElement("Jane Doe", Style{"fontWeight": "bold"}),
		textElement("jane@acme.com", nil),
		textElement("+1 555 0100", nil),
	}
	top.Columns[2].Elements = []Element{newElement(ElementSocial)}
	bottom := newRow(1)
	bottom.Columns[0].Elements = []Element{newElement(ElementButton)}
	return []Row{top, bottom}
}

func minimalTemplate() []Row {
	row := newRow(1)
	row.Columns[0].Elements = []Element{
		textElement("Jane Doe", Style{"fontWeight": "bold"}),
		textElement("Acme Inc.", nil),
	}
	return []Row{row}
}

var templates = map[string]func() []Row{
	"classic": classicTemplate,
	"sidebar": sidebarTemplate,
	"minimal": minimalTemplate,
}

// Templates lists the names of the built-in starting templates.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template builds the rows of the named starting template. Every call
// returns a tree with fresh ids.
func Template(name string) ([]Row, bool) {
	build, ok := templates[name]
	if !ok {
		return nil, false
	}
	return build(), true
}
