package lua

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/zakuhq/zaku/internal/action"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/input/keymap"
)

// DefaultTimeout bounds every call into Lua.
const DefaultTimeout = 2 * time.Second

// Host is the editor a script drives.
type Host interface {
	Dispatch(a action.Action) bool
	Text() string
	SelectedRanges() []buffer.Range
}

// Binder receives key bindings made by scripts.
type Binder interface {
	BindFunc(keys string, fn func() error, source string) error
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout sets how long one call into Lua may run. Zero disables the
// timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithBinder sets where zaku.bind registers bindings. Without one,
// zaku.bind raises an error.
func WithBinder(b Binder) Option {
	return func(r *Runtime) {
		r.binder = b
	}
}

// WithLogFunc sets the destination of zaku.log and print.
func WithLogFunc(fn func(string)) Option {
	return func(r *Runtime) {
		r.logf = fn
	}
}

// Runtime is a Lua state wired to an editor. gopher-lua states are not
// goroutine-safe; Runtime serializes every call.
type Runtime struct {
	mu      sync.Mutex
	L       *lua.LState
	host    Host
	binder  Binder
	timeout time.Duration
	logf    func(string)
	closed  bool
}

// New creates a runtime for host with the zaku module installed.
func New(host Host, opts ...Option) *Runtime {
	r := &Runtime{
		host:    host,
		timeout: DefaultTimeout,
		logf:    func(string) {},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.L.SetGlobal("print", r.L.NewFunction(r.luaLog))
	r.L.SetGlobal("zaku", r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"dispatch":   r.luaDispatch,
		"insert":     r.luaInsert,
		"text":       r.luaText,
		"selections": r.luaSelections,
		"bind":       r.luaBind,
		"log":        r.luaLog,
	}))
	return r
}

// openSafeLibraries opens the libraries that cannot reach the file system
// or load code.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoString runs a chunk of Lua code.
func (r *Runtime) DoString(code string) error {
	return r.run(func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// DoFile runs the script at path.
func (r *Runtime) DoFile(path string) error {
	return r.run(func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// Call calls fn with no arguments, discarding its results.
func (r *Runtime) Call(fn *lua.LFunction) error {
	return r.run(func(L *lua.LState) error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	})
}

// Close releases the Lua state.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.L.Close()
	return nil
}

func (r *Runtime) run(fn func(L *lua.LState) error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrStateClosed
	}

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
		r.L.SetContext(ctx)
		defer r.L.RemoveContext()
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()

	err = fn(r.L)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

func (r *Runtime) luaDispatch(L *lua.LState) int {
	name := L.CheckString(1)
	var args map[string]any
	switch v := L.Get(2).(type) {
	case *lua.LNilType:
	case *lua.LTable:
		args = tableToArgs(v)
	default:
		L.ArgError(2, "table expected")
		return 0
	}

	a, err := action.Parse(name, args)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LBool(r.host.Dispatch(a)))
	return 1
}

func (r *Runtime) luaInsert(L *lua.LState) int {
	text := L.CheckString(1)
	L.Push(lua.LBool(r.host.Dispatch(action.HandleInput{Text: text})))
	return 1
}

func (r *Runtime) luaText(L *lua.LState) int {
	L.Push(lua.LString(r.host.Text()))
	return 1
}

func (r *Runtime) luaSelections(L *lua.LState) int {
	ranges := r.host.SelectedRanges()
	t := L.CreateTable(len(ranges), 0)
	for _, rg := range ranges {
		s := L.CreateTable(0, 2)
		s.RawSetString("start", lua.LNumber(rg.Start))
		s.RawSetString("end", lua.LNumber(rg.End))
		t.Append(s)
	}
	L.Push(t)
	return 1
}

func (r *Runtime) luaBind(L *lua.LState) int {
	keys := L.CheckString(1)
	fn := L.CheckFunction(2)
	if r.binder == nil {
		L.RaiseError("zaku.bind: no keymap")
		return 0
	}
	// The binding runs later, outside this call, so it goes through Call
	// to take the lock and the timeout.
	err := r.binder.BindFunc(keys, func() error { return r.Call(fn) }, keymap.SourceScript)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (r *Runtime) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	r.logf(strings.Join(parts, " "))
	return 0
}
