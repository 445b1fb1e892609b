package keymap

import "github.com/zakuhq/zaku/internal/action"

type defaultBinding struct {
	keys   string
	action action.Action
}

var defaultBindings = []defaultBinding{
	// Movement
	{"left", action.MoveLeft},
	{"right", action.MoveRight},
	{"up", action.MoveUp},
	{"down", action.MoveDown},
	{"alt+left", action.MoveToPreviousWordStart},
	{"alt+right", action.MoveToNextWordEnd},
	{"ctrl+alt+left", action.MoveToPreviousSubwordStart},
	{"ctrl+alt+right", action.MoveToNextSubwordEnd},
	{"home", action.NewMoveToBeginningOfLine()},
	{"end", action.NewMoveToEndOfLine()},
	{"ctrl+home", action.MoveToBeginning},
	{"ctrl+end", action.MoveToEnd},
	{"pageup", action.PageUp},
	{"pagedown", action.PageDown},

	// Selection
	{"shift+left", action.SelectLeft},
	{"shift+right", action.SelectRight},
	{"shift+up", action.SelectUp},
	{"shift+down", action.SelectDown},
	{"alt+shift+left", action.SelectToPreviousWordStart},
	{"alt+shift+right", action.SelectToNextWordEnd},
	{"ctrl+alt+shift+left", action.SelectToPreviousSubwordStart},
	{"ctrl+alt+shift+right", action.SelectToNextSubwordEnd},
	{"shift+home", action.NewSelectToBeginningOfLine()},
	{"shift+end", action.NewSelectToEndOfLine()},
	{"ctrl+shift+home", action.SelectToBeginning},
	{"ctrl+shift+end", action.SelectToEnd},
	{"ctrl+a", action.SelectAll},

	// Editing
	{"backspace", action.Backspace},
	{"delete", action.Delete},
	{"alt+backspace", action.DeleteToPreviousWordStart{}},
	{"alt+delete", action.DeleteToNextWordEnd{}},
	{"ctrl+backspace", action.DeleteToPreviousSubwordStart{}},
	{"ctrl+delete", action.DeleteToNextSubwordEnd{}},
	{"ctrl+u", action.DeleteToBeginningOfLine{}},
	{"ctrl+k", action.DeleteToEndOfLine},
	{"enter", action.Newline},
	{"tab", action.Tab},

	// Clipboard and history
	{"ctrl+c", action.Copy},
	{"ctrl+x", action.Cut},
	{"ctrl+v", action.Paste},
	{"ctrl+z", action.Undo},
	{"ctrl+shift+z", action.Redo},
	{"ctrl+y", action.Redo},

	// Scrolling
	{"ctrl+up", action.ScrollLineUp},
	{"ctrl+down", action.ScrollLineDown},
	{"ctrl+l", action.ScrollCursorCenterTopBottom},
}

// Default returns a keymap holding the built-in bindings.
func Default() *Keymap {
	k := New()
	for _, b := range defaultBindings {
		k.BindAction(MustParseChord(b.keys), b.action, SourceDefault)
	}
	return k
}
