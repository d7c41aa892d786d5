package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/exploringlines/entitysystem/internal/core/ecs"
	"github.com/exploringlines/entitysystem/internal/core/system"
	"github.com/exploringlines/entitysystem/internal/data"
)

// Lua hook names looked up on every tick. A script that does not define one
// simply does not take part in that stage.
const (
	hookUpdate  = "update"
	hookCleanup = "cleanup"
	hookDestroy = "destroy"
)

// Engine wraps a single gopher-lua VM bound to a Registry.
// Single-goroutine access only (game loop). Reload swaps in a fresh VM.
type Engine struct {
	dir       string
	vm        *lua.LState
	reg       *ecs.Registry
	catalog   *data.Catalog
	templates *data.TemplateTable
	phase     system.Phase
	log       *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTemplates exposes ecs.spawn to scripts.
func WithTemplates(t *data.TemplateTable) Option {
	return func(e *Engine) { e.templates = t }
}

// WithPhase overrides the default PhaseUpdate.
func WithPhase(p system.Phase) Option {
	return func(e *Engine) { e.phase = p }
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, reg *ecs.Registry, catalog *data.Catalog, log *zap.Logger, opts ...Option) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		dir:     scriptsDir,
		reg:     reg,
		catalog: catalog,
		phase:   system.PhaseUpdate,
		log:     log,
	}
	for _, opt := range opts {
		opt(e)
	}

	vm, err := e.newVM()
	if err != nil {
		return nil, err
	}
	e.vm = vm
	return e, nil
}

func (e *Engine) newVM() (*lua.LState, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e.bind(vm)
	if err := e.loadDir(vm, e.dir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return vm, nil
}

// loadDir loads all .lua files in a directory, in file name order.
func (e *Engine) loadDir(vm *lua.LState, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Reload re-runs every script in a fresh VM. On failure the running VM is
// kept and the error returned.
func (e *Engine) Reload() error {
	if e.vm == nil {
		return fmt.Errorf("reload: engine closed")
	}
	vm, err := e.newVM()
	if err != nil {
		return err
	}
	e.vm.Close()
	e.vm = vm
	e.log.Info("lua scripts reloaded", zap.String("dir", e.dir))
	return nil
}

// ── system.Subsystem ──

func (e *Engine) Phase() system.Phase { return e.phase }

// Update calls the Lua update(dt_seconds) hook.
func (e *Engine) Update(dt time.Duration) {
	e.call(hookUpdate, lua.LNumber(dt.Seconds()))
}

func (e *Engine) Cleanup() {
	e.call(hookCleanup)
}

// Destroy calls the Lua destroy() hook and closes the VM.
func (e *Engine) Destroy() {
	e.call(hookDestroy)
	e.Close()
}

// Close shuts down the Lua VM. Later hook calls are no-ops.
func (e *Engine) Close() {
	if e.vm == nil {
		return
	}
	e.vm.Close()
	e.vm = nil
}

// call invokes a global Lua function if the scripts define it.
// Lua errors are logged and never reach the caller.
func (e *Engine) call(name string, args ...lua.LValue) {
	if e.vm == nil {
		return
	}
	fn := e.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
	}
}
