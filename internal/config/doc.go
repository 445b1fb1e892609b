// Package config holds the user settings for zaku.
//
// Settings are resolved in layers, each overriding the one below:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← applied by cmd/zaku
//	├─────────────────────────────┤
//	│  3. ZAKU_* environment      │
//	├─────────────────────────────┤
//	│  2. Settings file           │  ← TOML or YAML, by extension
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │
//	└─────────────────────────────┘
//
// Environment variables are named after the setting path, with the section
// and key upper-cased: editor.tab_size is ZAKU_EDITOR_TAB_SIZE.
//
// # Basic Usage
//
//	s, err := config.Load(path)
//	if err != nil {
//	    return err
//	}
//	ed := editor.New(buf, editor.WithTabSize(s.Editor.TabSize))
//
// # Live Reload
//
// Reloader watches the settings file and calls back with freshly loaded
// settings after every change. A file that fails to load or validate is
// reported and the previous settings stay in effect.
package config
