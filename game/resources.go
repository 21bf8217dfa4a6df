package game

import (
	"time"

	"github.com/oliverbestmann/ecs/gm"
)

// Camera is the visible region of the map, in world coordinates.
type Camera struct {
	gm.Rect
}

// MapDimensions is the size of the map in world coordinates.
type MapDimensions struct {
	gm.Vec
}

// Clock is the game time. It advances by the frame delta, see ClockSystem.
type Clock struct {
	Now time.Time
}
