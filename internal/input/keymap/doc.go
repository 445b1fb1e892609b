// Package keymap maps key chords to editor actions.
//
// A chord is one key press with its modifiers, written as a specification
// such as "ctrl+shift+left", "alt+backspace" or "A". Bindings name actions
// the way the action package parses them, so the settings file can bind
// any action with options:
//
//	[[keymap]]
//	keys = "alt+backspace"
//	action = "DeleteToPreviousWordStart"
//	args = { ignore_newlines = true }
//
// Scripts may bind chords to functions instead of actions.
//
// # Precedence
//
// A chord holds one binding. Defaults are loaded first, then the settings
// file, then scripts; each replaces what came before for the same chord.
package keymap
