package ecs

import (
	"reflect"
)

// Resources holds singleton values indexed by their type.
type Resources struct {
	values map[reflect.Type]reflect.Value
}

func NewResources() *Resources {
	return &Resources{values: map[reflect.Type]reflect.Value{}}
}

// Put stores a copy of the value. If a resource of the same type already exists,
// its value is updated in place, so pointers previously returned
// by ResourceOf stay valid.
func (r *Resources) Put(value any) {
	if value == nil {
		panic("can not put a nil resource")
	}

	ty := reflect.TypeOf(value)
	if ty.Kind() == reflect.Pointer {
		panic("resource must be inserted as value, not as pointer")
	}

	if existing, ok := r.values[ty]; ok {
		existing.Elem().Set(reflect.ValueOf(value))
		return
	}

	// move the value to the heap
	ptrToValue := reflect.New(ty)
	ptrToValue.Elem().Set(reflect.ValueOf(value))

	r.values[ty] = ptrToValue
}

// Get returns a pointer to the resource of the given type.
func (r *Resources) Get(ty reflect.Type) (any, bool) {
	ptrToValue, ok := r.values[ty]
	if !ok {
		return nil, false
	}

	return ptrToValue.Interface(), true
}

func (r *Resources) Len() int {
	return len(r.values)
}

// ResourceOf returns a pointer to the resource of type T. Changes through the
// pointer are visible to every other user of the resource.
func ResourceOf[T any](r *Resources) (*T, bool) {
	value, ok := r.Get(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}

	return value.(*T), true
}

// Resource returns a copy of the resource of type T.
func Resource[T any](r *Resources) (T, bool) {
	ptr, ok := ResourceOf[T](r)
	if !ok {
		var zero T
		return zero, false
	}

	return *ptr, true
}

// RemoveResource removes the resource of type T.
func RemoveResource[T any](r *Resources) {
	delete(r.values, reflect.TypeFor[T]())
}
