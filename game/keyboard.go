package game

import (
	"reflect"

	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/gm"
)

// KeyboardMovementSystem sets the velocity of keyboard controlled entities when an
// arrow key is pressed. The sprite row is switched to face the direction of movement.
type KeyboardMovementSystem struct {
	ecs.BaseSystem
}

func NewKeyboardMovementSystem(reg *ecs.ComponentTypeRegistry) *KeyboardMovementSystem {
	return &KeyboardMovementSystem{
		BaseSystem: signature(reg,
			reflect.TypeFor[Velocity](),
			reflect.TypeFor[KeyboardControl](),
			reflect.TypeFor[Sprite](),
		),
	}
}

func (s *KeyboardMovementSystem) Update(ctx *ecs.Context) {}

func (s *KeyboardMovementSystem) EventTypes() []ecs.EventType {
	return []ecs.EventType{ecs.EventTypeOf[KeyboardEvent]()}
}

func (s *KeyboardMovementSystem) OnEvent(em *ecs.EntityManager, event ecs.Event) {
	keyboard, ok := ecs.EventData[KeyboardEvent](event)
	if !ok {
		return
	}

	direction, ok := directionOf(keyboard.Key)
	if !ok {
		return
	}

	for _, entityId := range s.Entities() {
		control := ecs.MustGetComponent[KeyboardControl](em, entityId)
		speed := control.Get().Speed
		control.Release()

		velocity := ecs.MustGetComponentMut[Velocity](em, entityId)
		velocity.Set(Velocity{Vec: direction.Mul(speed)})
		velocity.Release()

		sprite := ecs.MustGetComponentMut[Sprite](em, entityId)
		sprite.Get().Source = spriteRow(sprite.Get().Size, int(keyboard.Key))
		sprite.Release()
	}
}

func directionOf(key Key) (gm.Vec, bool) {
	switch key {
	case KeyUp:
		return gm.VecOf(0, -1), true
	case KeyRight:
		return gm.VecOf(1, 0), true
	case KeyDown:
		return gm.VecOf(0, 1), true
	case KeyLeft:
		return gm.VecOf(-1, 0), true
	default:
		return gm.Vec{}, false
	}
}

// spriteRow returns the first frame of the given row of a sprite sheet.
func spriteRow(size gm.Vec, row int) gm.Rect {
	return gm.RectWithOriginAndSize(gm.VecOf(0, float64(row)*size.Y), size)
}
