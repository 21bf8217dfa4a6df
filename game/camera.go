package game

import (
	"reflect"

	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/gm"
)

// CameraFollowSystem centers the Camera on the entity with CameraFollow,
// keeping the camera within the MapDimensions.
type CameraFollowSystem struct {
	ecs.BaseSystem
}

func NewCameraFollowSystem(reg *ecs.ComponentTypeRegistry) *CameraFollowSystem {
	return &CameraFollowSystem{
		BaseSystem: signature(reg, reflect.TypeFor[CameraFollow](), reflect.TypeFor[Transform]()),
	}
}

func (s *CameraFollowSystem) Update(ctx *ecs.Context) {
	camera, ok := ecs.ResourceOf[Camera](ctx.Resources)
	if !ok {
		return
	}

	mapDimensions, _ := ecs.Resource[MapDimensions](ctx.Resources)

	for _, entityId := range s.Entities() {
		transform := ecs.MustGetComponent[Transform](ctx.Entities, entityId)
		center := transform.Get().Position
		transform.Release()

		rect := gm.RectWithCenterAndSize(center, camera.Size())

		if !mapDimensions.IsZero() {
			rect = rect.ClampInside(gm.RectWithOriginAndSize(gm.VecZero, mapDimensions.Vec))
		}

		camera.Rect = rect
	}
}
