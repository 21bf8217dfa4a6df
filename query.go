package ecs

import (
	"iter"
	"reflect"
)

// Query1 yields views of a single component type. The shape A is either
// Ref[C] for shared access or Mut[C] for exclusive access.
//
// A query does not hold any state besides the EntityManager. Every
// call to Values scans the live entities again.
type Query1[A Access[A]] struct {
	em *EntityManager
}

func NewQuery1[A Access[A]](em *EntityManager) Query1[A] {
	return Query1[A]{em: em}
}

// Signature returns the components an entity needs to match the query.
func (q Query1[A]) Signature() ComponentSignature {
	return shapeSignature(q.em, typeOfShape[A]())
}

// Entities returns the matching entities in spawn order.
func (q Query1[A]) Entities() []EntityId {
	return q.em.EntitiesWithSignature(q.Signature())
}

func (q Query1[A]) Count() int {
	return len(q.Entities())
}

// Values yields one view per matching entity. Views are borrowed right before
// they are yielded and released once the loop body returns.
func (q Query1[A]) Values() iter.Seq[A] {
	return func(yield func(A) bool) {
		sig := q.Signature()

		for _, entityId := range q.em.EntitiesWithSignature(sig) {
			if !q.em.matches(entityId, sig) {
				// lost a component while iterating
				continue
			}

			a := acquireView[A](q.em, entityId)

			if !yieldReleasing(func() bool { return yield(a) }, a) {
				return
			}
		}
	}
}

// Get borrows the views for a single entity. The caller must release them.
func (q Query1[A]) Get(entityId EntityId) (A, bool) {
	if !q.em.IsAlive(entityId) || !q.em.matches(entityId, q.Signature()) {
		var zero A
		return zero, false
	}

	return acquireView[A](q.em, entityId), true
}

// Query2 yields views of two component types for every entity having both.
type Query2[A Access[A], B Access[B]] struct {
	em *EntityManager
}

func NewQuery2[A Access[A], B Access[B]](em *EntityManager) Query2[A, B] {
	return Query2[A, B]{em: em}
}

func (q Query2[A, B]) Signature() ComponentSignature {
	return shapeSignature(q.em, typeOfShape[A](), typeOfShape[B]())
}

func (q Query2[A, B]) Entities() []EntityId {
	return q.em.EntitiesWithSignature(q.Signature())
}

func (q Query2[A, B]) Count() int {
	return len(q.Entities())
}

// Values yields one pair of views per matching entity. Asking for two
// exclusive views of the same component type panics with a *BorrowError.
func (q Query2[A, B]) Values() iter.Seq2[A, B] {
	return func(yield func(A, B) bool) {
		sig := q.Signature()

		for _, entityId := range q.em.EntitiesWithSignature(sig) {
			if !q.em.matches(entityId, sig) {
				continue
			}

			a := acquireView[A](q.em, entityId)
			b := acquireView[B](q.em, entityId, a)

			if !yieldReleasing(func() bool { return yield(a, b) }, a, b) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Get(entityId EntityId) (A, B, bool) {
	if !q.em.IsAlive(entityId) || !q.em.matches(entityId, q.Signature()) {
		var a A
		var b B
		return a, b, false
	}

	a := acquireView[A](q.em, entityId)
	b := acquireView[B](q.em, entityId, a)
	return a, b, true
}

// Row3 holds the views yielded by a Query3.
type Row3[A Access[A], B Access[B], C Access[C]] struct {
	Entity EntityId
	A      A
	B      B
	C      C
}

// Query3 yields views of three component types for every entity having all of them.
type Query3[A Access[A], B Access[B], C Access[C]] struct {
	em *EntityManager
}

func NewQuery3[A Access[A], B Access[B], C Access[C]](em *EntityManager) Query3[A, B, C] {
	return Query3[A, B, C]{em: em}
}

func (q Query3[A, B, C]) Signature() ComponentSignature {
	return shapeSignature(q.em, typeOfShape[A](), typeOfShape[B](), typeOfShape[C]())
}

func (q Query3[A, B, C]) Entities() []EntityId {
	return q.em.EntitiesWithSignature(q.Signature())
}

func (q Query3[A, B, C]) Count() int {
	return len(q.Entities())
}

func (q Query3[A, B, C]) Values() iter.Seq[Row3[A, B, C]] {
	return func(yield func(Row3[A, B, C]) bool) {
		sig := q.Signature()

		for _, entityId := range q.em.EntitiesWithSignature(sig) {
			if !q.em.matches(entityId, sig) {
				continue
			}

			row := q.acquire(entityId)

			if !yieldReleasing(func() bool { return yield(row) }, row.A, row.B, row.C) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Get(entityId EntityId) (Row3[A, B, C], bool) {
	if !q.em.IsAlive(entityId) || !q.em.matches(entityId, q.Signature()) {
		return Row3[A, B, C]{}, false
	}

	return q.acquire(entityId), true
}

func (q Query3[A, B, C]) acquire(entityId EntityId) Row3[A, B, C] {
	a := acquireView[A](q.em, entityId)
	b := acquireView[B](q.em, entityId, a)
	c := acquireView[C](q.em, entityId, a, b)

	return Row3[A, B, C]{Entity: entityId, A: a, B: b, C: c}
}

type releaser interface {
	Release()
}

func typeOfShape[S Access[S]]() reflect.Type {
	var shape S
	return shape.componentType()
}

func shapeSignature(em *EntityManager, types ...reflect.Type) ComponentSignature {
	return em.registry.SignatureOf(types...)
}

func (em *EntityManager) matches(entityId EntityId, sig ComponentSignature) bool {
	entitySig, ok := em.signatures[entityId]
	return ok && entitySig.IsSuperset(sig)
}

// acquireView borrows the component of shape S on the given entity. If borrowing
// fails, the views in held are released before the panic continues.
func acquireView[S Access[S]](em *EntityManager, entityId EntityId, held ...releaser) S {
	defer func() {
		if err := recover(); err != nil {
			for _, view := range held {
				view.Release()
			}

			panic(err)
		}
	}()

	var shape S

	c, ok := em.cellOf(shape.componentType(), entityId)
	if !ok {
		panic(missingComponentOfType(shape.componentType(), entityId))
	}

	return shape.acquire(c)
}

func yieldReleasing(yield func() bool, views ...releaser) bool {
	defer func() {
		for _, view := range views {
			view.Release()
		}
	}()

	return yield()
}
