package game

import (
	"reflect"
	"time"

	"github.com/oliverbestmann/ecs"
)

func signature(reg *ecs.ComponentTypeRegistry, types ...reflect.Type) ecs.BaseSystem {
	return ecs.NewBaseSystem(reg.SignatureOf(types...))
}

// AddSystems adds all gameplay systems to the engine in update order and inserts
// the resources they need. Rendering is left to the caller.
func AddSystems(engine *ecs.Engine, start time.Time) {
	reg := engine.Registry()

	engine.InsertResource(Clock{Now: start})

	if _, ok := ecs.ResourceOf[Camera](engine.Resources()); !ok {
		engine.InsertResource(Camera{})
	}

	if _, ok := ecs.ResourceOf[MapDimensions](engine.Resources()); !ok {
		engine.InsertResource(MapDimensions{})
	}

	engine.AddSystem(NewClockSystem())
	engine.AddSystem(NewKeyboardMovementSystem(reg))
	engine.AddSystem(NewMovementSystem(reg))
	engine.AddSystem(NewCameraFollowSystem(reg))
	engine.AddSystem(NewCollisionSystem(reg))
	engine.AddSystem(NewDamageSystem(reg))
	engine.AddSystem(NewAnimationSystem(reg))
	engine.AddSystem(NewProjectileEmitterSystem(reg))
	engine.AddSystem(NewProjectileLifecycleSystem(reg))
}

// ClockSystem advances the Clock resource by the frame delta.
type ClockSystem struct {
	ecs.BaseSystem
}

func NewClockSystem() *ClockSystem {
	return &ClockSystem{}
}

func (s *ClockSystem) Update(ctx *ecs.Context) {
	clock, ok := ecs.ResourceOf[Clock](ctx.Resources)
	if !ok {
		return
	}

	clock.Now = clock.Now.Add(ctx.Delta)
}

func gameTime(ctx *ecs.Context) time.Time {
	clock, ok := ecs.Resource[Clock](ctx.Resources)
	if !ok {
		panic("Clock resource does not exist")
	}

	return clock.Now
}

type MovementSystem struct {
	ecs.BaseSystem
}

func NewMovementSystem(reg *ecs.ComponentTypeRegistry) *MovementSystem {
	return &MovementSystem{
		BaseSystem: signature(reg, reflect.TypeFor[Transform](), reflect.TypeFor[Velocity]()),
	}
}

func (s *MovementSystem) Update(ctx *ecs.Context) {
	query := ecs.NewQuery2[ecs.Mut[Transform], ecs.Ref[Velocity]](ctx.Entities)

	for _, entityId := range s.Entities() {
		transform, velocity, ok := query.Get(entityId)
		if !ok {
			panic("movement system member does not match its signature")
		}

		transform.Get().Position = transform.Get().Position.Add(velocity.Get().Mul(ctx.DeltaSecs()))

		transform.Release()
		velocity.Release()
	}
}
