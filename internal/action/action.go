// Package action defines the closed set of actions an editor consumes.
//
// Payload-free actions are values of Simple. Actions with options are small
// structs; their New* constructors apply the defaults. Consumers dispatch
// with a type switch:
//
//	switch a := act.(type) {
//	case action.Simple:
//		...
//	case action.MoveToBeginningOfLine:
//		moveToBeginningOfLine(a.StopAtIndent)
//	}
//
// Parse builds actions from a name and an argument map, as found in keymap
// files and scripts.
package action

// Action is one of Simple, MoveToBeginningOfLine, SelectToBeginningOfLine,
// DeleteToBeginningOfLine, MoveToEndOfLine, SelectToEndOfLine,
// DeleteToPreviousWordStart, DeleteToNextWordEnd,
// DeleteToPreviousSubwordStart, DeleteToNextSubwordEnd or HandleInput.
type Action interface {
	// Name returns the action name accepted by Parse.
	Name() string
	// Args returns the options of the action in the form accepted by Parse.
	Args() map[string]any

	action()
}

// LineStartOptions configures motion to the start of a line.
type LineStartOptions struct {
	// StopAtSoftWraps stops at a soft wrap instead of the buffer line start.
	StopAtSoftWraps bool
	// StopAtIndent stops at the first non-whitespace character, toggling
	// with column zero on repeated use.
	StopAtIndent bool
}

func (o LineStartOptions) args() map[string]any {
	return map[string]any{
		argStopAtSoftWraps: o.StopAtSoftWraps,
		argStopAtIndent:    o.StopAtIndent,
	}
}

// DefaultLineStartOptions returns the default line start options.
func DefaultLineStartOptions() LineStartOptions {
	return LineStartOptions{StopAtSoftWraps: true}
}

// MoveToBeginningOfLine moves the cursors to the start of their lines.
type MoveToBeginningOfLine LineStartOptions

// NewMoveToBeginningOfLine returns the action with default options.
func NewMoveToBeginningOfLine() MoveToBeginningOfLine {
	return MoveToBeginningOfLine(DefaultLineStartOptions())
}

func (a MoveToBeginningOfLine) Name() string { return "MoveToBeginningOfLine" }
func (a MoveToBeginningOfLine) Args() map[string]any { return LineStartOptions(a).args() }
func (MoveToBeginningOfLine) action() {}

// SelectToBeginningOfLine extends the selections to the start of their
// lines.
type SelectToBeginningOfLine LineStartOptions

// NewSelectToBeginningOfLine returns the action with default options.
func NewSelectToBeginningOfLine() SelectToBeginningOfLine {
	return SelectToBeginningOfLine(DefaultLineStartOptions())
}

func (a SelectToBeginningOfLine) Name() string { return "SelectToBeginningOfLine" }
func (a SelectToBeginningOfLine) Args() map[string]any { return LineStartOptions(a).args() }
func (SelectToBeginningOfLine) action() {}

// DeleteToBeginningOfLine deletes from the cursors to the start of their
// lines.
type DeleteToBeginningOfLine struct {
	StopAtIndent bool
}

func (a DeleteToBeginningOfLine) Name() string { return "DeleteToBeginningOfLine" }

func (a DeleteToBeginningOfLine) Args() map[string]any {
	return map[string]any{argStopAtIndent: a.StopAtIndent}
}

func (DeleteToBeginningOfLine) action() {}

// LineEndOptions configures motion to the end of a line.
type LineEndOptions struct {
	StopAtSoftWraps bool
}

// DefaultLineEndOptions returns the default line end options.
func DefaultLineEndOptions() LineEndOptions {
	return LineEndOptions{StopAtSoftWraps: true}
}

// MoveToEndOfLine moves the cursors to the end of their lines.
type MoveToEndOfLine LineEndOptions

// NewMoveToEndOfLine returns the action with default options.
func NewMoveToEndOfLine() MoveToEndOfLine {
	return MoveToEndOfLine(DefaultLineEndOptions())
}

func (a MoveToEndOfLine) Name() string { return "MoveToEndOfLine" }

func (a MoveToEndOfLine) Args() map[string]any {
	return map[string]any{argStopAtSoftWraps: a.StopAtSoftWraps}
}

func (MoveToEndOfLine) action() {}

// SelectToEndOfLine extends the selections to the end of their lines.
type SelectToEndOfLine LineEndOptions

// NewSelectToEndOfLine returns the action with default options.
func NewSelectToEndOfLine() SelectToEndOfLine {
	return SelectToEndOfLine(DefaultLineEndOptions())
}

func (a SelectToEndOfLine) Name() string { return "SelectToEndOfLine" }

func (a SelectToEndOfLine) Args() map[string]any {
	return map[string]any{argStopAtSoftWraps: a.StopAtSoftWraps}
}

func (SelectToEndOfLine) action() {}

// WordDeleteOptions configures word-wise deletion.
type WordDeleteOptions struct {
	// IgnoreNewlines lets the deletion cross line breaks.
	IgnoreNewlines bool
	// IgnoreBrackets is accepted for keymap compatibility and has no effect.
	IgnoreBrackets bool
}

func (o WordDeleteOptions) args() map[string]any {
	return map[string]any{
		argIgnoreNewlines: o.IgnoreNewlines,
		argIgnoreBrackets: o.IgnoreBrackets,
	}
}

// DeleteToPreviousWordStart deletes back to the previous word start.
type DeleteToPreviousWordStart WordDeleteOptions

func (a DeleteToPreviousWordStart) Name() string { return "DeleteToPreviousWordStart" }
func (a DeleteToPreviousWordStart) Args() map[string]any { return WordDeleteOptions(a).args() }
func (DeleteToPreviousWordStart) action() {}

// DeleteToNextWordEnd deletes forward to the next word end.
type DeleteToNextWordEnd WordDeleteOptions

func (a DeleteToNextWordEnd) Name() string { return "DeleteToNextWordEnd" }
func (a DeleteToNextWordEnd) Args() map[string]any { return WordDeleteOptions(a).args() }
func (DeleteToNextWordEnd) action() {}

// DeleteToPreviousSubwordStart deletes back to the previous subword start.
type DeleteToPreviousSubwordStart WordDeleteOptions

func (a DeleteToPreviousSubwordStart) Name() string { return "DeleteToPreviousSubwordStart" }
func (a DeleteToPreviousSubwordStart) Args() map[string]any { return WordDeleteOptions(a).args() }
func (DeleteToPreviousSubwordStart) action() {}

// DeleteToNextSubwordEnd deletes forward to the next subword end.
type DeleteToNextSubwordEnd WordDeleteOptions

func (a DeleteToNextSubwordEnd) Name() string { return "DeleteToNextSubwordEnd" }
func (a DeleteToNextSubwordEnd) Args() map[string]any { return WordDeleteOptions(a).args() }
func (DeleteToNextSubwordEnd) action() {}

// HandleInput inserts text at every selection.
type HandleInput struct {
	Text string
}

func (a HandleInput) Name() string { return "HandleInput" }
func (a HandleInput) Args() map[string]any { return map[string]any{argText: a.Text} }
func (HandleInput) action() {}
