package action

import (
	"errors"
	"fmt"
	"sort"
)

// Argument names.
const (
	argStopAtSoftWraps = "stop_at_soft_wraps"
	argStopAtIndent    = "stop_at_indent"
	argIgnoreNewlines  = "ignore_newlines"
	argIgnoreBrackets  = "ignore_brackets"
	argText            = "text"
)

var (
	// ErrUnknownAction is returned by Parse for names outside the action set.
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidArgs is returned by Parse for unknown or mistyped arguments.
	ErrInvalidArgs = errors.New("invalid action arguments")
)

type parser func(args map[string]any) (Action, error)

var parsers = map[string]parser{
	"MoveToBeginningOfLine": func(args map[string]any) (Action, error) {
		o, err := lineStart(args)
		return MoveToBeginningOfLine(o), err
	},
	"SelectToBeginningOfLine": func(args map[string]any) (Action, error) {
		o, err := lineStart(args)
		return SelectToBeginningOfLine(o), err
	},
	"DeleteToBeginningOfLine": func(args map[string]any) (Action, error) {
		var a DeleteToBeginningOfLine
		err := decode(args, map[string]any{argStopAtIndent: &a.StopAtIndent})
		return a, err
	},
	"MoveToEndOfLine": func(args map[string]any) (Action, error) {
		a := NewMoveToEndOfLine()
		err := decode(args, map[string]any{argStopAtSoftWraps: &a.StopAtSoftWraps})
		return a, err
	},
	"SelectToEndOfLine": func(args map[string]any) (Action, error) {
		a := NewSelectToEndOfLine()
		err := decode(args, map[string]any{argStopAtSoftWraps: &a.StopAtSoftWraps})
		return a, err
	},
	"DeleteToPreviousWordStart": func(args map[string]any) (Action, error) {
		o, err := wordDelete(args)
		return DeleteToPreviousWordStart(o), err
	},
	"DeleteToNextWordEnd": func(args map[string]any) (Action, error) {
		o, err := wordDelete(args)
		return DeleteToNextWordEnd(o), err
	},
	"DeleteToPreviousSubwordStart": func(args map[string]any) (Action, error) {
		o, err := wordDelete(args)
		return DeleteToPreviousSubwordStart(o), err
	},
	"DeleteToNextSubwordEnd": func(args map[string]any) (Action, error) {
		o, err := wordDelete(args)
		return DeleteToNextSubwordEnd(o), err
	},
	"HandleInput": func(args map[string]any) (Action, error) {
		var a HandleInput
		err := decode(args, map[string]any{argText: &a.Text})
		return a, err
	},
}

var simpleByName = func() map[string]Simple {
	m := make(map[string]Simple, numSimple)
	for _, s := range Simples() {
		m[s.Name()] = s
	}
	return m
}()

// Parse returns the action called name configured by args. Missing
// arguments take their defaults.
func Parse(name string, args map[string]any) (Action, error) {
	if s, ok := simpleByName[name]; ok {
		if len(args) > 0 {
			return nil, fmt.Errorf("%s takes no arguments: %w", name, ErrInvalidArgs)
		}
		return s, nil
	}
	p, ok := parsers[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownAction)
	}
	a, err := p(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, nil
}

// MustParse is Parse for names and arguments known to be valid.
func MustParse(name string, args map[string]any) Action {
	a, err := Parse(name, args)
	if err != nil {
		panic(err)
	}
	return a
}

// Names returns the names of all actions, sorted.
func Names() []string {
	names := make([]string, 0, len(simpleByName)+len(parsers))
	for name := range simpleByName {
		names = append(names, name)
	}
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lineStart(args map[string]any) (LineStartOptions, error) {
	o := DefaultLineStartOptions()
	err := decode(args, map[string]any{
		argStopAtSoftWraps: &o.StopAtSoftWraps,
		argStopAtIndent:    &o.StopAtIndent,
	})
	return o, err
}

func wordDelete(args map[string]any) (WordDeleteOptions, error) {
	var o WordDeleteOptions
	err := decode(args, map[string]any{
		argIgnoreNewlines: &o.IgnoreNewlines,
		argIgnoreBrackets: &o.IgnoreBrackets,
	})
	return o, err
}

// decode copies args into the fields pointed to by fields, which hold
// *bool or *string.
func decode(args map[string]any, fields map[string]any) error {
	for key, v := range args {
		dst, ok := fields[key]
		if !ok {
			return fmt.Errorf("unexpected argument %q: %w", key, ErrInvalidArgs)
		}
		switch dst := dst.(type) {
		case *bool:
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("argument %q must be a bool, got %T: %w", key, v, ErrInvalidArgs)
			}
			*dst = b
		case *string:
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("argument %q must be a string, got %T: %w", key, v, ErrInvalidArgs)
			}
			*dst = s
		}
	}
	return nil
}
