package action

// Simple is an action without options.
type Simple uint8

const (
	Backspace Simple = iota + 1
	Delete
	DeleteToEndOfLine
	Newline
	Tab
	Copy
	Cut
	Paste
	Undo
	Redo

	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	SelectLeft
	SelectRight
	SelectUp
	SelectDown

	MoveToPreviousWordStart
	MoveToNextWordEnd
	MoveToPreviousSubwordStart
	MoveToNextSubwordEnd
	SelectToPreviousWordStart
	SelectToNextWordEnd
	SelectToPreviousSubwordStart
	SelectToNextSubwordEnd

	MoveToBeginning
	MoveToEnd
	SelectToBeginning
	SelectToEnd
	SelectAll

	PageUp
	PageDown
	ScrollLineUp
	ScrollLineDown
	ScrollCursorTop
	ScrollCursorCenter
	ScrollCursorBottom
	ScrollCursorCenterTopBottom

	numSimple
)

var simpleNames = [numSimple]string{
	Backspace:         "Backspace",
	Delete:            "Delete",
	DeleteToEndOfLine: "DeleteToEndOfLine",
	Newline:           "Newline",
	Tab:               "Tab",
	Copy:              "Copy",
	Cut:               "Cut",
	Paste:             "Paste",
	Undo:              "Undo",
	Redo:              "Redo",

	MoveLeft:    "MoveLeft",
	MoveRight:   "MoveRight",
	MoveUp:      "MoveUp",
	MoveDown:    "MoveDown",
	SelectLeft:  "SelectLeft",
	SelectRight: "SelectRight",
	SelectUp:    "SelectUp",
	SelectDown:  "SelectDown",

	MoveToPreviousWordStart:      "MoveToPreviousWordStart",
	MoveToNextWordEnd:            "MoveToNextWordEnd",
	MoveToPreviousSubwordStart:   "MoveToPreviousSubwordStart",
	MoveToNextSubwordEnd:         "MoveToNextSubwordEnd",
	SelectToPreviousWordStart:    "SelectToPreviousWordStart",
	SelectToNextWordEnd:          "SelectToNextWordEnd",
	SelectToPreviousSubwordStart: "SelectToPreviousSubwordStart",
	SelectToNextSubwordEnd:       "SelectToNextSubwordEnd",

	MoveToBeginning:   "MoveToBeginning",
	MoveToEnd:         "MoveToEnd",
	SelectToBeginning: "SelectToBeginning",
	SelectToEnd:       "SelectToEnd",
	SelectAll:         "SelectAll",

	PageUp:                      "PageUp",
	PageDown:                    "PageDown",
	ScrollLineUp:                "ScrollLineUp",
	ScrollLineDown:              "ScrollLineDown",
	ScrollCursorTop:             "ScrollCursorTop",
	ScrollCursorCenter:          "ScrollCursorCenter",
	ScrollCursorBottom:          "ScrollCursorBottom",
	ScrollCursorCenterTopBottom: "ScrollCursorCenterTopBottom",
}

// Name returns the action name.
func (s Simple) Name() string {
	if s > 0 && s < numSimple {
		return simpleNames[s]
	}
	return "Unknown"
}

// Args returns nil; simple actions take no options.
func (s Simple) Args() map[string]any { return nil }

func (s Simple) String() string { return s.Name() }

func (Simple) action() {}

// Simples returns every simple action in declaration order.
func Simples() []Simple {
	out := make([]Simple, 0, numSimple-1)
	for s := Simple(1); s < numSimple; s++ {
		out = append(out, s)
	}
	return out
}
