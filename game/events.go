package game

import (
	"github.com/oliverbestmann/ecs"
)

// CollisionEvent is emitted once per frame for every pair of overlapping colliders.
type CollisionEvent struct {
	A, B ecs.EntityId
}

type Key int

const (
	KeyUp Key = iota
	KeyRight
	KeyDown
	KeyLeft
	KeySpace
)

var keyNames = [...]string{"Up", "Right", "Down", "Left", "Space"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "Unknown"
	}

	return keyNames[k]
}

// KeyboardEvent is emitted for every key that was pressed in a frame.
type KeyboardEvent struct {
	Key Key
}
