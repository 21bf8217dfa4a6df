package ecs

import (
	"fmt"
	"reflect"
)

// Access is implemented by the view shapes Ref and Mut. It is used as a
// type constraint for queries, e.g. NewQuery2[Mut[Position], Ref[Velocity]].
//
// Methods are called on the zero value of the shape to describe and construct a view.
type Access[S any] interface {
	componentType() reflect.Type
	exclusive() bool
	acquire(c *cell) S

	Release()
}

type viewToken struct {
	cell      *cell
	exclusive bool
	released  bool
}

func (t *viewToken) check() {
	if t == nil || t.released {
		panic(ErrViewReleased)
	}
}

func (t *viewToken) release() {
	if t == nil || t.released {
		return
	}

	t.released = true
	t.cell.release(t.exclusive)
}

func castCell[C any](c *cell) *C {
	value, ok := c.value.(*C)
	if !ok {
		panic(fmt.Sprintf(
			"component storage of %s on entity %s holds a value of type %T",
			reflect.TypeFor[C](), c.entity, c.value,
		))
	}

	return value
}

// Ref is a shared view of a component value. Any number of shared views of the
// same component may be alive at the same time, but none while a Mut of that
// component is alive. A Ref must be released by calling Release.
type Ref[C any] struct {
	token *viewToken
	value *C
}

func (Ref[C]) componentType() reflect.Type {
	return reflect.TypeFor[C]()
}

func (Ref[C]) exclusive() bool {
	return false
}

func (Ref[C]) acquire(c *cell) Ref[C] {
	value := castCell[C](c)
	c.borrowShared()

	return Ref[C]{
		token: &viewToken{cell: c},
		value: value,
	}
}

// Get returns a copy of the component value.
func (r Ref[C]) Get() C {
	r.token.check()
	return *r.value
}

// Entity returns the entity owning the component.
func (r Ref[C]) Entity() EntityId {
	r.token.check()
	return r.token.cell.entity
}

// Release ends the borrow. Releasing a view twice is a no-op.
func (r Ref[C]) Release() {
	r.token.release()
}

func (r Ref[C]) IsReleased() bool {
	return r.token == nil || r.token.released
}

// Mut is an exclusive view of a component value. While a Mut is alive, no other
// view of the same component on the same entity can be taken.
type Mut[C any] struct {
	token *viewToken
	value *C
}

func (Mut[C]) componentType() reflect.Type {
	return reflect.TypeFor[C]()
}

func (Mut[C]) exclusive() bool {
	return true
}

func (Mut[C]) acquire(c *cell) Mut[C] {
	value := castCell[C](c)
	c.borrowExclusive()

	return Mut[C]{
		token: &viewToken{cell: c, exclusive: true},
		value: value,
	}
}

// Get returns a pointer to the component value. The pointer must not be retained
// after the view was released.
func (m Mut[C]) Get() *C {
	m.token.check()
	return m.value
}

// Set overwrites the component value.
func (m Mut[C]) Set(value C) {
	m.token.check()
	*m.value = value
}

// Entity returns the entity owning the component.
func (m Mut[C]) Entity() EntityId {
	m.token.check()
	return m.token.cell.entity
}

// Release ends the borrow. Releasing a view twice is a no-op.
func (m Mut[C]) Release() {
	m.token.release()
}

func (m Mut[C]) IsReleased() bool {
	return m.token == nil || m.token.released
}
