package game

import (
	"time"

	"github.com/jakecoffman/cp/v2"
	"github.com/oliverbestmann/ecs/gm"
)

type Transform struct {
	Position gm.Vec
	Scale    gm.Vec
	Rotation gm.Rad
}

// TransformAt returns a transform at the given position with a scale of one.
func TransformAt(position gm.Vec) Transform {
	return Transform{Position: position, Scale: gm.VecOne}
}

type Velocity struct {
	gm.Vec
}

// Sprite references an image by its asset name. If Source is empty, the full
// image is drawn, otherwise only the Source region of the image.
type Sprite struct {
	Name   string
	Size   gm.Vec
	Source gm.Rect
	ZIndex int
}

// HasSource reports whether only a region of the image is drawn.
func (s Sprite) HasSource() bool {
	return !s.Source.Size().IsZero()
}

type Animation struct {
	NumFrames    int
	FrameRate    int
	StartTime    time.Time
	Loop         bool
	CurrentFrame int
}

// Box2dCollider is an axis aligned box relative to the Transform of the entity.
type Box2dCollider struct {
	Offset gm.Vec
	Size   gm.Vec
}

// BB returns the bounding box of the collider when placed at the given transform.
func (c Box2dCollider) BB(transform Transform) cp.BB {
	origin := transform.Position.Add(c.Offset)
	return cp.NewBB(origin.X, origin.Y, origin.X+c.Size.X, origin.Y+c.Size.Y)
}

type Health struct {
	Value int
}

// KeyboardControl marks the entity controlled by the player. Speed is the velocity
// set when an arrow key is pressed.
type KeyboardControl struct {
	Speed float64
}

// CameraFollow marks the entity the Camera is centered on.
type CameraFollow struct{}

type Projectile struct {
	MaxDuration time.Duration
	Created     time.Time
	Damage      int
	Friendly    bool
}

// ProjectileEmitter spawns projectiles. If RepeatInterval is zero, projectiles are only
// emitted by pressing space on an entity with KeyboardControl.
type ProjectileEmitter struct {
	Velocity           gm.Vec
	RepeatInterval     time.Duration
	LastEmitted        time.Time
	ProjectileDuration time.Duration
	Damage             int
	Friendly           bool
}
