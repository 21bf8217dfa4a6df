package game

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/gm"
)

var projectileSize = gm.VecOf(4, 4)

// ProjectileEmitterSystem emits projectiles from all entities with a ProjectileEmitter.
// Emitters with a RepeatInterval fire periodically, keyboard controlled entities
// fire when space is pressed.
type ProjectileEmitterSystem struct {
	ecs.BaseSystem

	// time of the last frame, used for keyboard triggered projectiles
	now time.Time
}

func NewProjectileEmitterSystem(reg *ecs.ComponentTypeRegistry) *ProjectileEmitterSystem {
	return &ProjectileEmitterSystem{
		BaseSystem: signature(reg, reflect.TypeFor[ProjectileEmitter](), reflect.TypeFor[Transform]()),
	}
}

func (s *ProjectileEmitterSystem) Update(ctx *ecs.Context) {
	s.now = gameTime(ctx)

	for _, entityId := range s.Entities() {
		emitter := ecs.MustGetComponentMut[ProjectileEmitter](ctx.Entities, entityId)

		interval := emitter.Get().RepeatInterval
		if interval <= 0 || s.now.Sub(emitter.Get().LastEmitted) < interval {
			emitter.Release()
			continue
		}

		emitter.Get().LastEmitted = s.now
		config := *emitter.Get()
		emitter.Release()

		spawnProjectile(ctx.Entities, entityId, config, config.Velocity, s.now)
	}
}

func (s *ProjectileEmitterSystem) EventTypes() []ecs.EventType {
	return []ecs.EventType{ecs.EventTypeOf[KeyboardEvent]()}
}

func (s *ProjectileEmitterSystem) OnEvent(em *ecs.EntityManager, event ecs.Event) {
	keyboard, ok := ecs.EventData[KeyboardEvent](event)
	if !ok || keyboard.Key != KeySpace {
		return
	}

	for _, entityId := range s.Entities() {
		if !ecs.HasComponent[KeyboardControl](em, entityId) {
			continue
		}

		emitter := ecs.MustGetComponentMut[ProjectileEmitter](em, entityId)
		emitter.Get().LastEmitted = s.now
		config := *emitter.Get()
		emitter.Release()

		spawnProjectile(em, entityId, config, aimedVelocity(em, entityId, config.Velocity), s.now)
	}
}

// aimedVelocity points the projectile speed into the direction the entity is moving.
func aimedVelocity(em *ecs.EntityManager, entityId ecs.EntityId, velocity gm.Vec) gm.Vec {
	speed := velocity.Length()

	ref, ok := ecs.GetComponent[Velocity](em, entityId)
	if !ok {
		return velocity
	}

	direction := ref.Get().Normalized()
	ref.Release()

	if direction.IsZero() {
		return velocity
	}

	return direction.Mul(speed)
}

func spawnProjectile(em *ecs.EntityManager, source ecs.EntityId, config ProjectileEmitter, velocity gm.Vec, now time.Time) ecs.EntityId {
	transform := ecs.MustGetComponent[Transform](em, source)
	origin := transform.Get().Position
	transform.Release()

	// start in the center of the sprite, if there is one
	if sprite, ok := ecs.GetComponent[Sprite](em, source); ok {
		origin = origin.Add(sprite.Get().Size.Mul(0.5))
		sprite.Release()
	}

	projectileId := em.CreateEntity()
	em.Insert(projectileId,
		TransformAt(origin),
		Velocity{Vec: velocity},
		Box2dCollider{Size: projectileSize},
		Sprite{Name: "bullet", Size: projectileSize, ZIndex: 4},
		Projectile{
			MaxDuration: config.ProjectileDuration,
			Created:     now,
			Damage:      config.Damage,
			Friendly:    config.Friendly,
		},
	)

	em.Groups().AddToGroup(projectileId, GroupProjectiles)

	slog.Debug("Projectile emitted", slog.Any("source", source), slog.Any("projectile", projectileId))

	return projectileId
}

// ProjectileLifecycleSystem destroys projectiles that exceeded their MaxDuration.
type ProjectileLifecycleSystem struct {
	ecs.BaseSystem
}

func NewProjectileLifecycleSystem(reg *ecs.ComponentTypeRegistry) *ProjectileLifecycleSystem {
	return &ProjectileLifecycleSystem{
		BaseSystem: signature(reg, reflect.TypeFor[Projectile]()),
	}
}

func (s *ProjectileLifecycleSystem) Update(ctx *ecs.Context) {
	now := gameTime(ctx)

	for _, entityId := range s.Entities() {
		projectile := ecs.MustGetComponent[Projectile](ctx.Entities, entityId)
		expired := now.Sub(projectile.Get().Created) >= projectile.Get().MaxDuration
		projectile.Release()

		if expired {
			ctx.Entities.DestroyEntity(entityId)
		}
	}
}
