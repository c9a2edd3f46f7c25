package editor

// MaxColumns caps the columns of an inserted row.
const MaxColumns = 12

// CommandType names a Command. The string values are the wire names used by
// the editor UI.
type CommandType string

const (
	CmdSelect            CommandType = "select"
	CmdInsertRow         CommandType = "insertRow"
	CmdInsertElement     CommandType = "insertElement"
	CmdUpdateStyle       CommandType = "updateStyle"
	CmdUpdateContent     CommandType = "updateContent"
	CmdUpdateSocialLinks CommandType = "updateSocialLinks"
	CmdUpdateGlobalStyle CommandType = "updateGlobalStyle"
	CmdUpdateColumnWidth CommandType = "updateColumnWidth"
	CmdMoveElement       CommandType = "moveElement"
	CmdDuplicateNode     CommandType = "duplicateNode"
	CmdLoadTemplate      CommandType = "loadTemplate"
	CmdReset             CommandType = "reset"
	CmdDelete            CommandType = "delete"
	CmdUndo              CommandType = "undo"
	CmdRedo              CommandType = "redo"
)

// Undoable reports whether applying t records a history entry. Selection
// changes and history navigation do not.
func (t CommandType) Undoable() bool {
	switch t {
	case CmdSelect, CmdUndo, CmdRedo:
		return false
	}
	return true
}

// Command is one request against the document. Only the fields relevant to
// Type are read.
type Command struct {
	Type CommandType `json:"type" binding:"required,oneof=select insertRow insertElement updateStyle updateContent updateSocialLinks updateGlobalStyle updateColumnWidth moveElement duplicateNode loadTemplate reset delete undo redo"`

	// select, updateStyle, updateContent, updateSocialLinks,
	// updateColumnWidth, duplicateNode, delete
	ID string `json:"id,omitempty"`
	// select
	Kind NodeKind `json:"kind,omitempty"`

	// insertRow
	Cols int `json:"cols,omitempty" binding:"omitempty,min=1,max=12"`

	// insertElement
	ColumnID    string      `json:"columnId,omitempty"`
	ElementType ElementType `json:"elementType,omitempty"`

	Style        Style             `json:"style,omitempty"`
	Content      string            `json:"content,omitempty"`
	SocialLinks  []SocialLink      `json:"socialLinks,omitempty"`
	Styles       GlobalStylesPatch `json:"styles,omitempty"`
	WidthPercent float64           `json:"widthPercent,omitempty" binding:"gte=0,lte=100"`

	// moveElement
	DragID     string   `json:"dragId,omitempty"`
	TargetID   string   `json:"targetId,omitempty"`
	TargetType NodeKind `json:"targetType,omitempty"`

	// duplicateNode
	ItemType NodeKind `json:"itemType,omitempty"`

	// loadTemplate
	Rows []Row `json:"rows,omitempty"`
}

// SelectNode selects id; an empty id clears the selection.
func SelectNode(id string, kind NodeKind) Command {
	return Command{Type: CmdSelect, ID: id, Kind: kind}
}

func InsertRow(cols int) Command {
	return Command{Type: CmdInsertRow, Cols: cols}
}

func InsertElement(columnID string, t ElementType) Command {
	return Command{Type: CmdInsertElement, ColumnID: columnID, ElementType: t}
}

func UpdateStyle(id string, style Style) Command {
	return Command{Type: CmdUpdateStyle, ID: id, Style: style}
}

func UpdateContent(id, content string) Command {
	return Command{Type: CmdUpdateContent, ID: id, Content: content}
}

func UpdateSocialLinks(id string, links []SocialLink) Command {
	return Command{Type: CmdUpdateSocialLinks, ID: id, SocialLinks: links}
}

func UpdateGlobalStyle(patch GlobalStylesPatch) Command {
	return Command{Type: CmdUpdateGlobalStyle, Styles: patch}
}

func UpdateColumnWidth(id string, percent float64) Command {
	return Command{Type: CmdUpdateColumnWidth, ID: id, WidthPercent: percent}
}

func MoveElement(dragID, targetID string, targetType NodeKind) Command {
	return Command{Type: CmdMoveElement, DragID: dragID, TargetID: targetID, TargetType: targetType}
}

func DuplicateNode(id string, itemType NodeKind) Command {
	return Command{Type: CmdDuplicateNode, ID: id, ItemType: itemType}
}

func LoadTemplate(rows []Row) Command {
	return Command{Type: CmdLoadTemplate, Rows: rows}
}

func Reset() Command { return Command{Type: CmdReset} }

// Delete removes id, or the current selection when id is empty.
func Delete(id string) Command { return Command{Type: CmdDelete, ID: id} }

func Undo() Command { return Command{Type: CmdUndo} }

func Redo() Command { return Command{Type: CmdRedo} }
