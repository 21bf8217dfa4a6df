package game

import (
	"testing"
	"time"

	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/gm"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newEngine(systems ...func(reg *ecs.ComponentTypeRegistry) ecs.System) *ecs.Engine {
	engine := ecs.NewEngine()
	engine.InsertResource(Clock{Now: start})

	engine.AddSystem(NewClockSystem())

	for _, system := range systems {
		engine.AddSystem(system(engine.Registry()))
	}

	return engine
}

func movement(reg *ecs.ComponentTypeRegistry) ecs.System  { return NewMovementSystem(reg) }
func collision(reg *ecs.ComponentTypeRegistry) ecs.System { return NewCollisionSystem(reg) }
func damage(reg *ecs.ComponentTypeRegistry) ecs.System    { return NewDamageSystem(reg) }
func keyboard(reg *ecs.ComponentTypeRegistry) ecs.System  { return NewKeyboardMovementSystem(reg) }
func animation(reg *ecs.ComponentTypeRegistry) ecs.System { return NewAnimationSystem(reg) }
func camera(reg *ecs.ComponentTypeRegistry) ecs.System    { return NewCameraFollowSystem(reg) }
func emitter(reg *ecs.ComponentTypeRegistry) ecs.System   { return NewProjectileEmitterSystem(reg) }
func lifecycle(reg *ecs.ComponentTypeRegistry) ecs.System { return NewProjectileLifecycleSystem(reg) }

func componentOf[C any](t *testing.T, engine *ecs.Engine, entityId ecs.EntityId) C {
	t.Helper()

	ref, ok := ecs.GetComponent[C](engine.Entities(), entityId)
	require.True(t, ok)
	defer ref.Release()

	return ref.Get()
}

func recordCollisions(engine *ecs.Engine) *[]CollisionEvent {
	var events []CollisionEvent

	recorder := ecs.NewSystem("recorder", ecs.ComponentSignature{}).WithEvents(
		func(system *ecs.FuncSystem, em *ecs.EntityManager, event ecs.Event) {
			collision, _ := ecs.EventData[CollisionEvent](event)
			events = append(events, collision)
		},
		ecs.EventTypeOf[CollisionEvent](),
	)

	engine.AddSystem(recorder)

	return &events
}

func TestMovementSystem(t *testing.T) {
	engine := newEngine(movement)

	entityId := engine.Spawn(TransformAt(gm.VecZero), Velocity{Vec: gm.VecOf(5, 0)})
	engine.Update(time.Second)

	require.Equal(t, gm.VecOf(5, 0), componentOf[Transform](t, engine, entityId).Position)
}

func TestCollisionSystem(t *testing.T) {
	engine := newEngine(collision)
	events := recordCollisions(engine)

	box := Box2dCollider{Size: gm.VecOf(10, 10)}

	a := engine.Spawn(TransformAt(gm.VecOf(0, 0)), box)
	b := engine.Spawn(TransformAt(gm.VecOf(5, 5)), box)
	engine.Spawn(TransformAt(gm.VecOf(100, 100)), box)

	engine.Update(0)

	require.Equal(t, []CollisionEvent{{A: a, B: b}}, *events)

	// every frame reports the collision again
	engine.Update(0)
	require.Len(t, *events, 2)
}

func TestCollisionSystem_Offset(t *testing.T) {
	engine := newEngine(collision)
	events := recordCollisions(engine)

	engine.Spawn(TransformAt(gm.VecOf(0, 0)), Box2dCollider{Size: gm.VecOf(10, 10)})
	engine.Spawn(TransformAt(gm.VecOf(5, 5)), Box2dCollider{Offset: gm.VecOf(20, 0), Size: gm.VecOf(10, 10)})

	engine.Update(0)
	require.Empty(t, *events)
}

func TestDamageSystem(t *testing.T) {
	spawnEnemy := func(engine *ecs.Engine, health int) ecs.EntityId {
		enemyId := engine.Spawn(TransformAt(gm.VecZero), Box2dCollider{Size: unitSize}, Health{Value: health})
		engine.Entities().Groups().AddToGroup(enemyId, GroupEnemies)
		return enemyId
	}

	spawnBullet := func(engine *ecs.Engine, friendly bool) ecs.EntityId {
		return engine.Spawn(
			TransformAt(gm.VecOf(4, 4)),
			Box2dCollider{Size: projectileSize},
			Projectile{MaxDuration: time.Second, Created: start, Damage: 25, Friendly: friendly},
		)
	}

	t.Run("friendly projectile hurts enemy", func(t *testing.T) {
		engine := newEngine(damage)
		em := engine.Entities()

		enemyId := spawnEnemy(engine, 30)
		bulletId := spawnBullet(engine, true)
		engine.Update(0)

		ecs.Emit(engine.Events(), em, CollisionEvent{A: enemyId, B: bulletId})

		require.Equal(t, 5, componentOf[Health](t, engine, enemyId).Value)
		require.True(t, em.IsPendingDespawn(bulletId))
		require.False(t, em.IsPendingDespawn(enemyId))

		// the same projectile can not hit twice
		ecs.Emit(engine.Events(), em, CollisionEvent{A: bulletId, B: enemyId})
		require.Equal(t, 5, componentOf[Health](t, engine, enemyId).Value)
	})

	t.Run("lethal damage destroys the target", func(t *testing.T) {
		engine := newEngine(damage)
		em := engine.Entities()

		enemyId := spawnEnemy(engine, 20)
		bulletId := spawnBullet(engine, true)
		engine.Update(0)

		ecs.Emit(engine.Events(), em, CollisionEvent{A: bulletId, B: enemyId})

		engine.Update(0)
		require.False(t, em.IsAlive(enemyId))
		require.False(t, em.IsAlive(bulletId))
	})

	t.Run("hostile projectile ignores enemies", func(t *testing.T) {
		engine := newEngine(damage)
		em := engine.Entities()

		enemyId := spawnEnemy(engine, 20)
		bulletId := spawnBullet(engine, false)
		engine.Update(0)

		ecs.Emit(engine.Events(), em, CollisionEvent{A: bulletId, B: enemyId})

		require.Equal(t, 20, componentOf[Health](t, engine, enemyId).Value)
		require.False(t, em.IsPendingDespawn(bulletId))
	})

	t.Run("hostile projectile hurts the player", func(t *testing.T) {
		engine := newEngine(damage)
		em := engine.Entities()

		playerId := SpawnPlayer(engine, gm.VecZero)
		bulletId := spawnBullet(engine, false)
		engine.Update(0)

		ecs.Emit(engine.Events(), em, CollisionEvent{A: playerId, B: bulletId})
		require.Equal(t, 75, componentOf[Health](t, engine, playerId).Value)
	})
}

func TestCollisionAndDamage(t *testing.T) {
	engine := ecs.NewEngine()
	AddSystems(engine, start)

	em := engine.Entities()

	enemyId := SpawnEnemy(engine, EnemyConfig{Sprite: "truck", Position: gm.VecOf(100, 0)})
	bulletId := engine.Spawn(
		TransformAt(gm.VecOf(110, 10)),
		Box2dCollider{Size: projectileSize},
		Projectile{MaxDuration: time.Minute, Created: start, Damage: 100, Friendly: true},
	)

	engine.Update(0)
	require.True(t, em.IsPendingDespawn(enemyId))
	require.True(t, em.IsPendingDespawn(bulletId))

	engine.Update(0)
	require.Empty(t, em.Groups().EntitiesInGroup(GroupEnemies))
	require.False(t, em.IsAlive(bulletId))
}

func TestKeyboardMovementSystem(t *testing.T) {
	engine := newEngine(keyboard)

	entityId := engine.Spawn(Velocity{}, KeyboardControl{Speed: 50}, Sprite{Size: unitSize})
	other := engine.Spawn(Velocity{Vec: gm.VecOf(1, 1)})
	engine.Update(0)

	ecs.Emit(engine.Events(), engine.Entities(), KeyboardEvent{Key: KeyDown})

	require.Equal(t, gm.VecOf(0, 50), componentOf[Velocity](t, engine, entityId).Vec)
	require.Equal(t, 64.0, componentOf[Sprite](t, engine, entityId).Source.Min.Y)

	// entities without keyboard control are not touched
	require.Equal(t, gm.VecOf(1, 1), componentOf[Velocity](t, engine, other).Vec)

	// space does not change the velocity
	ecs.Emit(engine.Events(), engine.Entities(), KeyboardEvent{Key: KeySpace})
	require.Equal(t, gm.VecOf(0, 50), componentOf[Velocity](t, engine, entityId).Vec)
}

func TestAnimationSystem(t *testing.T) {
	engine := newEngine(animation)

	entityId := engine.Spawn(
		Animation{NumFrames: 4, FrameRate: 10, StartTime: start, Loop: true},
		Sprite{Size: gm.VecOf(16, 16), Source: gm.RectWithOriginAndSize(gm.VecOf(0, 16), gm.VecOf(16, 16))},
	)

	// clock advances before the animation system runs
	engine.Update(250 * time.Millisecond)

	require.Equal(t, 2, componentOf[Animation](t, engine, entityId).CurrentFrame)

	sprite := componentOf[Sprite](t, engine, entityId)
	require.Equal(t, gm.VecOf(32, 16), sprite.Source.Min)
	require.Equal(t, gm.VecOf(16, 16), sprite.Source.Size())
}

func TestFrameAt(t *testing.T) {
	looping := Animation{NumFrames: 4, FrameRate: 10, Loop: true}
	require.Equal(t, 0, frameAt(looping, 0))
	require.Equal(t, 2, frameAt(looping, 1000))

	once := Animation{NumFrames: 4, FrameRate: 10}
	require.Equal(t, 3, frameAt(once, 1000))

	require.Equal(t, 0, frameAt(Animation{NumFrames: 1, FrameRate: 10}, 1000))
}

func TestCameraFollowSystem(t *testing.T) {
	engine := newEngine(camera)
	engine.InsertResource(Camera{Rect: gm.RectWithOriginAndSize(gm.VecZero, gm.VecOf(100, 50))})
	engine.InsertResource(MapDimensions{Vec: gm.VecOf(200, 100)})

	entityId := engine.Spawn(CameraFollow{}, TransformAt(gm.VecOf(10, 10)))
	engine.Update(0)

	cam, _ := ecs.Resource[Camera](engine.Resources())
	require.Equal(t, gm.VecZero, cam.Min)
	require.Equal(t, gm.VecOf(100, 50), cam.Size())

	ecs.AddComponentTo(engine, entityId, TransformAt(gm.VecOf(150, 60)))
	engine.Update(0)

	cam, _ = ecs.Resource[Camera](engine.Resources())
	require.Equal(t, gm.VecOf(100, 35), cam.Min)
}

func TestProjectileEmitterSystem(t *testing.T) {
	t.Run("repeat interval", func(t *testing.T) {
		engine := newEngine(emitter)
		em := engine.Entities()

		sourceId := engine.Spawn(TransformAt(gm.VecOf(10, 20)), ProjectileEmitter{
			Velocity:           gm.VecOf(0, 30),
			RepeatInterval:     time.Second,
			LastEmitted:        start,
			ProjectileDuration: time.Second,
			Damage:             10,
		})

		engine.Update(500 * time.Millisecond)
		require.Empty(t, em.PendingSpawn())

		engine.Update(600 * time.Millisecond)
		require.Len(t, em.PendingSpawn(), 1)

		engine.Update(0)

		projectiles := em.Groups().EntitiesInGroup(GroupProjectiles)
		require.Len(t, projectiles, 1)

		require.Equal(t, gm.VecOf(10, 20), componentOf[Transform](t, engine, projectiles[0]).Position)
		require.Equal(t, gm.VecOf(0, 30), componentOf[Velocity](t, engine, projectiles[0]).Vec)
		require.Equal(t, Projectile{MaxDuration: time.Second, Created: start.Add(1100 * time.Millisecond), Damage: 10},
			componentOf[Projectile](t, engine, projectiles[0]))

		require.Equal(t, start.Add(1100*time.Millisecond), componentOf[ProjectileEmitter](t, engine, sourceId).LastEmitted)
	})

	t.Run("space fires in moving direction", func(t *testing.T) {
		engine := newEngine(emitter)
		em := engine.Entities()

		engine.Spawn(
			TransformAt(gm.VecOf(100, 100)),
			Velocity{Vec: gm.VecOf(0, -10)},
			Sprite{Size: unitSize},
			KeyboardControl{Speed: 10},
			ProjectileEmitter{Velocity: gm.VecOf(200, 0), ProjectileDuration: time.Second, Friendly: true},
		)

		// without keyboard control, space is ignored
		engine.Spawn(TransformAt(gm.VecZero), ProjectileEmitter{Velocity: gm.VecOf(200, 0)})

		engine.Update(0)

		ecs.Emit(engine.Events(), em, KeyboardEvent{Key: KeySpace})
		ecs.Emit(engine.Events(), em, KeyboardEvent{Key: KeyUp})
		engine.Update(0)

		projectiles := em.Groups().EntitiesInGroup(GroupProjectiles)
		require.Len(t, projectiles, 1)

		require.Equal(t, gm.VecOf(116, 116), componentOf[Transform](t, engine, projectiles[0]).Position)
		require.Equal(t, gm.VecOf(0, -200), componentOf[Velocity](t, engine, projectiles[0]).Vec)
		require.True(t, componentOf[Projectile](t, engine, projectiles[0]).Friendly)
	})
}

func TestProjectileLifecycleSystem(t *testing.T) {
	engine := newEngine(lifecycle)
	em := engine.Entities()

	projectileId := engine.Spawn(Projectile{MaxDuration: time.Second, Created: start})
	engine.Update(0)
	require.False(t, em.IsPendingDespawn(projectileId))

	engine.Update(time.Second)
	require.True(t, em.IsPendingDespawn(projectileId))

	engine.Update(0)
	require.False(t, em.IsAlive(projectileId))
}

func TestKeyString(t *testing.T) {
	require.Equal(t, "Space", KeySpace.String())
	require.Equal(t, "Unknown", Key(42).String())
}
