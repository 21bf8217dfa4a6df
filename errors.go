package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrBorrowConflict is the error wrapped by every BorrowError.
	ErrBorrowConflict = errors.New("component borrow conflict")

	// ErrViewReleased is raised when a Ref or Mut is used after it was released.
	ErrViewReleased = errors.New("component view used after release")

	// ErrTooManyComponentTypes is raised when a registry runs out of component type ids.
	ErrTooManyComponentTypes = errors.New("too many component types registered")

	// ErrSignatureCapacity is raised when a signature is asked to hold an id
	// outside of its fixed capacity.
	ErrSignatureCapacity = errors.New("component type id exceeds signature capacity")
)

// BorrowError describes a conflicting borrow of a single component value.
type BorrowError struct {
	Entity    EntityId
	Component string

	// Exclusive is true if the failed borrow was an exclusive one.
	Exclusive bool

	// Readers is the number of shared borrows alive at the time of the conflict,
	// or -1 if an exclusive borrow was alive.
	Readers int
}

func (e *BorrowError) Error() string {
	kind := "shared"
	if e.Exclusive {
		kind = "exclusive"
	}

	held := fmt.Sprintf("%d shared borrows", e.Readers)
	if e.Readers < 0 {
		held = "an exclusive borrow"
	}

	return fmt.Sprintf(
		"%s: can not take %s borrow of %s on entity %s, it is held by %s",
		ErrBorrowConflict, kind, e.Component, e.Entity, held,
	)
}

func (e *BorrowError) Unwrap() error {
	return ErrBorrowConflict
}
