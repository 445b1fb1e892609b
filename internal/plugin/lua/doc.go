// Package lua runs user macro scripts.
//
// Scripts run in a gopher-lua state with only the base, table, string and
// math libraries. They reach the editor through the zaku module:
//
//	zaku.dispatch(name [, args])  -- run an action; returns whether it applied
//	zaku.insert(text)             -- type text at every cursor
//	zaku.text()                   -- the buffer text
//	zaku.selections()             -- list of {start=, ["end"]=} byte ranges
//	zaku.bind(keys, fn)           -- bind a key chord to fn
//	zaku.log(msg)                 -- write to the host log
//
// For example:
//
//	zaku.bind("ctrl+d", function()
//	    zaku.dispatch("MoveToBeginningOfLine", {stop_at_indent = false})
//	    zaku.dispatch("SelectToEndOfLine")
//	end)
//
// Every call into Lua runs under the runtime's timeout, so a looping script
// cannot hang the host.
package lua
