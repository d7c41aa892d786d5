package scripting

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/exploringlines/entitysystem/internal/core/ecs"
)

// bind installs the global "ecs" table into vm.
func (e *Engine) bind(vm *lua.LState) {
	mod := vm.SetFuncs(vm.NewTable(), map[string]lua.LGFunction{
		"create_entity":    e.luaCreateEntity,
		"remove_entity":    e.luaRemoveEntity,
		"has_entity":       e.luaHasEntity,
		"entity_count":     e.luaEntityCount,
		"entity_by_name":   e.luaEntityByName,
		"count":            e.luaCount,
		"has_component":    e.luaHasComponent,
		"remove_component": e.luaRemoveComponent,
		"spawn":            e.luaSpawn,
		"flush":            e.luaFlush,
	})
	vm.SetGlobal("ecs", mod)
}

// ecs.create_entity([name]) -> id
func (e *Engine) luaCreateEntity(L *lua.LState) int {
	var ent *ecs.Entity
	if name, ok := L.Get(1).(lua.LString); ok {
		ent = e.reg.CreateNamedEntity(string(name))
	} else {
		ent = e.reg.CreateEntity()
	}
	L.Push(lua.LNumber(ent.ID()))
	return 1
}

// ecs.remove_entity(id) -> bool
func (e *Engine) luaRemoveEntity(L *lua.LState) int {
	ent, ok := e.entityArg(L, 1)
	if ok {
		e.reg.RemoveEntity(ent)
	}
	L.Push(lua.LBool(ok))
	return 1
}

// ecs.has_entity(id) -> bool
func (e *Engine) luaHasEntity(L *lua.LState) int {
	_, ok := e.entityArg(L, 1)
	L.Push(lua.LBool(ok))
	return 1
}

func (e *Engine) luaEntityCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.reg.EntityCount()))
	return 1
}

// ecs.entity_by_name(name) -> id | nil
func (e *Engine) luaEntityByName(L *lua.LState) int {
	ent, ok := e.reg.EntityByName(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(ent.ID()))
	return 1
}

// ecs.count(type_name) -> size of the cached set for that component type
func (e *Engine) luaCount(L *lua.LState) int {
	t := e.typeArg(L, 1)
	L.Push(lua.LNumber(e.reg.Entities(t).Len()))
	return 1
}

// ecs.has_component(id, type_name) -> bool
func (e *Engine) luaHasComponent(L *lua.LState) int {
	ent, ok := e.entityArg(L, 1)
	t := e.typeArg(L, 2)
	L.Push(lua.LBool(ok && e.reg.HasComponent(ent, t)))
	return 1
}

// ecs.remove_component(id, type_name)
func (e *Engine) luaRemoveComponent(L *lua.LState) int {
	ent, ok := e.entityArg(L, 1)
	t := e.typeArg(L, 2)
	if ok {
		e.reg.RemoveComponent(ent, t)
	}
	return 0
}

// ecs.spawn(template, [name]) -> id
func (e *Engine) luaSpawn(L *lua.LState) int {
	if e.templates == nil {
		L.RaiseError("ecs.spawn: no templates loaded")
		return 0
	}
	tpl := L.CheckString(1)
	name := L.OptString(2, "")
	ent, err := e.templates.Spawn(e.reg, tpl, name)
	if err != nil {
		L.RaiseError("ecs.spawn: %s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(ent.ID()))
	return 1
}

func (e *Engine) luaFlush(L *lua.LState) int {
	e.reg.FlushSetChanges()
	return 0
}

// entityArg resolves a live entity from a numeric id argument.
func (e *Engine) entityArg(L *lua.LState, n int) (*ecs.Entity, bool) {
	v := float64(L.CheckNumber(n))
	if v < 0 || v >= math.MaxUint64 || v != math.Trunc(v) {
		return nil, false
	}
	return e.reg.EntityByID(ecs.EntityID(v))
}

func (e *Engine) typeArg(L *lua.LState, n int) ecs.ComponentType {
	name := L.CheckString(n)
	t, ok := e.catalog.Type(name)
	if !ok {
		L.ArgError(n, "unknown component "+name)
	}
	return t
}
