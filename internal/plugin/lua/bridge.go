package lua

import lua "github.com/yuin/gopher-lua"

// tableToArgs converts a Lua table of action options to Go values. Only
// string keys are kept.
func tableToArgs(t *lua.LTable) map[string]any {
	args := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		args[string(ks)] = toGoValue(v)
	})
	return args
}

// toGoValue converts a scalar Lua value. Integral numbers become int64.
// Tables and functions have no Go form here and become nil.
func toGoValue(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LString:
		return string(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	default:
		return nil
	}
}
