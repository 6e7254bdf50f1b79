// Package script runs Lua init files against the remapping tables.
// The exposed surface is deliberately small: map, noremap, unmap, and
// mapclear, mirroring their Vim commands.
package script

import (
	"errors"
	"fmt"
	"log/slog"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/input/remap"
)

// ErrScript reports a failed init file.
var ErrScript = errors.New("init script failed")

// Runner owns one Lua state bound to a remap engine.
//
// gopher-lua's LState is not goroutine-safe; a Runner must be driven
// from a single goroutine.
type Runner struct {
	L      *lua.LState
	engine *remap.Engine
	log    *slog.Logger
}

// NewRunner creates a runner over a sandboxed Lua state. The io, os,
// debug, and package libraries stay closed; init files only shape
// mapping tables.
func NewRunner(engine *remap.Engine) *Runner {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	r := &Runner{
		L:      L,
		engine: engine,
		log:    slog.Default().With("component", "script"),
	}
	L.SetGlobal("map", L.NewFunction(r.installMapping(true)))
	L.SetGlobal("noremap", L.NewFunction(r.installMapping(false)))
	L.SetGlobal("unmap", L.NewFunction(r.removeMapping))
	L.SetGlobal("mapclear", L.NewFunction(r.clearScope))
	return r
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.L.Close()
}

// RunFile executes an init file.
func (r *Runner) RunFile(path string) error {
	r.log.Debug("running init script", "path", path)
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("%w: %v", ErrScript, err)
	}
	return nil
}

// Run executes init source directly.
func (r *Runner) Run(source string) error {
	if err := r.L.DoString(source); err != nil {
		return fmt.Errorf("%w: %v", ErrScript, err)
	}
	return nil
}

// installMapping backs map(scope, lhs, rhs) and its noremap variant.
func (r *Runner) installMapping(recursive bool) lua.LGFunction {
	return func(L *lua.LState) int {
		scope := L.CheckString(1)
		lhs := r.checkSequence(L, 2)
		rhs, err := key.ParseSequence(L.CheckString(3))
		if err != nil {
			L.ArgError(3, fmt.Sprintf("invalid key sequence: %v", err))
			return 0
		}
		r.engine.Map(remap.Mapping{
			Scope:     scope,
			LHS:       lhs,
			RHS:       rhs,
			Recursive: recursive,
		})
		return 0
	}
}

// removeMapping backs unmap(scope, lhs).
func (r *Runner) removeMapping(L *lua.LState) int {
	scope := L.CheckString(1)
	lhs := r.checkSequence(L, 2)
	r.engine.Unmap(scope, lhs)
	return 0
}

// clearScope backs mapclear(scope).
func (r *Runner) clearScope(L *lua.LState) int {
	r.engine.Clear(L.CheckString(1))
	return 0
}

func (r *Runner) checkSequence(L *lua.LState, arg int) key.Sequence {
	seq, err := key.ParseSequence(L.CheckString(arg))
	if err != nil || seq.IsEmpty() {
		L.ArgError(arg, "invalid key sequence")
	}
	return seq
}
