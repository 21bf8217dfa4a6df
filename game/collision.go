package game

import (
	"log/slog"
	"reflect"

	"github.com/jakecoffman/cp/v2"
	"github.com/oliverbestmann/ecs"
)

// CollisionSystem emits a CollisionEvent for every pair of entities with
// overlapping colliders. Boxes that only touch collide as well.
type CollisionSystem struct {
	ecs.BaseSystem
}

func NewCollisionSystem(reg *ecs.ComponentTypeRegistry) *CollisionSystem {
	return &CollisionSystem{
		BaseSystem: signature(reg, reflect.TypeFor[Transform](), reflect.TypeFor[Box2dCollider]()),
	}
}

func (s *CollisionSystem) Update(ctx *ecs.Context) {
	entities := s.Entities()

	boxes := make([]cp.BB, len(entities))
	for idx, entityId := range entities {
		transform := ecs.MustGetComponent[Transform](ctx.Entities, entityId)
		collider := ecs.MustGetComponent[Box2dCollider](ctx.Entities, entityId)

		boxes[idx] = collider.Get().BB(transform.Get())

		transform.Release()
		collider.Release()
	}

	for i := range entities {
		for j := i + 1; j < len(entities); j++ {
			if !boxes[i].Intersects(boxes[j]) {
				continue
			}

			slog.Debug(
				"Collision detected",
				slog.Any("a", entities[i]),
				slog.Any("b", entities[j]),
			)

			ecs.Emit(ctx.Events, ctx.Entities, CollisionEvent{A: entities[i], B: entities[j]})
		}
	}
}
