package game

import (
	"log/slog"
	"reflect"

	"github.com/oliverbestmann/ecs"
)

const (
	TagPlayer        = "player"
	GroupEnemies     = "enemies"
	GroupProjectiles = "projectiles"
)

// DamageSystem applies the damage of projectiles hitting an entity with Health.
// Friendly projectiles hurt enemies, all other projectiles hurt the player.
type DamageSystem struct {
	ecs.BaseSystem
}

func NewDamageSystem(reg *ecs.ComponentTypeRegistry) *DamageSystem {
	return &DamageSystem{
		BaseSystem: signature(reg, reflect.TypeFor[Box2dCollider](), reflect.TypeFor[Health]()),
	}
}

func (s *DamageSystem) Update(ctx *ecs.Context) {}

func (s *DamageSystem) EventTypes() []ecs.EventType {
	return []ecs.EventType{ecs.EventTypeOf[CollisionEvent]()}
}

func (s *DamageSystem) OnEvent(em *ecs.EntityManager, event ecs.Event) {
	collision, ok := ecs.EventData[CollisionEvent](event)
	if !ok {
		return
	}

	s.hit(em, collision.A, collision.B)
	s.hit(em, collision.B, collision.A)
}

func (s *DamageSystem) hit(em *ecs.EntityManager, projectileId, targetId ecs.EntityId) {
	if !s.HasEntity(targetId) || em.IsPendingDespawn(projectileId) || em.IsPendingDespawn(targetId) {
		return
	}

	ref, ok := ecs.GetComponent[Projectile](em, projectileId)
	if !ok {
		return
	}

	projectile := ref.Get()
	ref.Release()

	isPlayer := em.Tags().HasTag(targetId, TagPlayer)
	isEnemy := em.Groups().InGroup(targetId, GroupEnemies)

	if projectile.Friendly && !isEnemy || !projectile.Friendly && !isPlayer {
		return
	}

	health := ecs.MustGetComponentMut[Health](em, targetId)
	health.Get().Value -= projectile.Damage
	remaining := health.Get().Value
	health.Release()

	slog.Debug(
		"Projectile hit",
		slog.Any("projectile", projectileId),
		slog.Any("target", targetId),
		slog.Int("health", remaining),
	)

	em.DestroyEntity(projectileId)

	if remaining <= 0 {
		em.DestroyEntity(targetId)
	}
}
