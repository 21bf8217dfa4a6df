package game

import (
	"reflect"

	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/gm"
)

// AnimationSystem picks the current frame of animated sprites from the Clock. The
// frames of an animation are laid out horizontally in the sprite sheet.
type AnimationSystem struct {
	ecs.BaseSystem
}

func NewAnimationSystem(reg *ecs.ComponentTypeRegistry) *AnimationSystem {
	return &AnimationSystem{
		BaseSystem: signature(reg, reflect.TypeFor[Animation](), reflect.TypeFor[Sprite]()),
	}
}

func (s *AnimationSystem) Update(ctx *ecs.Context) {
	now := gameTime(ctx)

	query := ecs.NewQuery2[ecs.Mut[Animation], ecs.Mut[Sprite]](ctx.Entities)

	for _, entityId := range s.Entities() {
		animation, sprite, ok := query.Get(entityId)
		if !ok {
			panic("animation system member does not match its signature")
		}

		anim := animation.Get()
		anim.CurrentFrame = frameAt(*anim, now.Sub(anim.StartTime).Milliseconds())

		size := sprite.Get().Size
		row := sprite.Get().Source.Min.Y
		sprite.Get().Source = gm.RectWithOriginAndSize(gm.VecOf(float64(anim.CurrentFrame)*size.X, row), size)

		animation.Release()
		sprite.Release()
	}
}

func frameAt(anim Animation, elapsedMillis int64) int {
	if anim.NumFrames <= 1 || elapsedMillis < 0 {
		return 0
	}

	frame := int(elapsedMillis * int64(anim.FrameRate) / 1000)
	if !anim.Loop {
		return min(frame, anim.NumFrames-1)
	}

	return frame % anim.NumFrames
}
