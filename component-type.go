package ecs

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"sync"
	"sync/atomic"
)

// ComponentTypeId is a small integer identifying a component type within a
// ComponentTypeRegistry. Ids are assigned in first-request order starting at 0.
type ComponentTypeId uint16

// ComponentType describes a registered component type.
type ComponentType struct {
	Id   ComponentTypeId
	Name string
	Type reflect.Type
}

func (c *ComponentType) String() string {
	return c.Name
}

// ComponentTypeRegistry assigns stable ids to component types.
//
// The registry is an explicit object instead of process wide state, so that
// tests and multiple engines can use isolated id spaces.
type ComponentTypeRegistry struct {
	capacity int

	// read path, swapped atomically on every new registration
	types atomic.Pointer[map[reflect.Type]*ComponentType]

	// write path
	mu   sync.Mutex
	byId []*ComponentType
}

// NewComponentTypeRegistry creates a registry that can hold up to MaxComponentTypes types.
func NewComponentTypeRegistry() *ComponentTypeRegistry {
	return NewComponentTypeRegistryWithCapacity(MaxComponentTypes)
}

// NewComponentTypeRegistryWithCapacity creates a registry holding at most capacity types.
// The capacity can not exceed MaxComponentTypes, the width of a ComponentSignature.
func NewComponentTypeRegistryWithCapacity(capacity int) *ComponentTypeRegistry {
	if capacity < 1 || capacity > MaxComponentTypes {
		panic(fmt.Sprintf("registry capacity must be within 1..%d, got %d", MaxComponentTypes, capacity))
	}

	reg := &ComponentTypeRegistry{capacity: capacity}
	reg.types.Store(&map[reflect.Type]*ComponentType{})
	return reg
}

// ComponentTypeOf returns the id of component type C, registering C if needed.
func ComponentTypeOf[C any](reg *ComponentTypeRegistry) ComponentTypeId {
	return reg.TypeIdOf(reflect.TypeFor[C]())
}

// TypeIdOf is the erased version of ComponentTypeOf.
func (r *ComponentTypeRegistry) TypeIdOf(ty reflect.Type) ComponentTypeId {
	return r.typeOf(ty).Id
}

// Lookup returns the registered type for ty without registering it.
func (r *ComponentTypeRegistry) Lookup(ty reflect.Type) (*ComponentType, bool) {
	componentType, ok := (*r.types.Load())[ty]
	return componentType, ok
}

// Type returns the registered type with the given id.
func (r *ComponentTypeRegistry) Type(id ComponentTypeId) (*ComponentType, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if int(id) >= len(r.byId) {
		return nil, false
	}

	return r.byId[id], true
}

// Name returns the go type name of the given component type id.
func (r *ComponentTypeRegistry) Name(id ComponentTypeId) string {
	if componentType, ok := r.Type(id); ok {
		return componentType.Name
	}

	return fmt.Sprintf("<unknown component type %d>", id)
}

// Len returns the number of registered component types.
func (r *ComponentTypeRegistry) Len() int {
	return len(*r.types.Load())
}

// Capacity returns the maximum number of component types this registry can hold.
func (r *ComponentTypeRegistry) Capacity() int {
	return r.capacity
}

func (r *ComponentTypeRegistry) typeOf(ty reflect.Type) *ComponentType {
	if ty == nil {
		panic("component type must not be nil")
	}

	if cached, ok := (*r.types.Load())[ty]; ok {
		return cached
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// somebody else might have registered the type while we waited for the lock
	previousTypes := r.types.Load()
	if cached, ok := (*previousTypes)[ty]; ok {
		return cached
	}

	if len(r.byId) >= r.capacity {
		panic(fmt.Errorf("%w: can not register %s, capacity is %d", ErrTooManyComponentTypes, ty, r.capacity))
	}

	newType := &ComponentType{
		Id:   ComponentTypeId(len(r.byId)),
		Name: ty.String(),
		Type: ty,
	}

	newTypes := maps.Clone(*previousTypes)
	newTypes[ty] = newType

	r.byId = append(r.byId, newType)
	r.types.Store(&newTypes)

	slog.Debug(
		"New component type registered",
		slog.String("name", newType.Name),
		slog.Int("id", int(newType.Id)),
	)

	return newType
}
