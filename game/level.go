package game

import (
	"time"

	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/gm"
)

var unitSize = gm.VecOf(32, 32)

// SpawnPlayer spawns the keyboard controlled tank the camera follows.
func SpawnPlayer(engine *ecs.Engine, position gm.Vec) ecs.EntityId {
	playerId := engine.Spawn(
		TransformAt(position),
		Velocity{},
		Sprite{Name: "tank", Size: unitSize, Source: spriteRow(unitSize, int(KeyRight)), ZIndex: 2},
		Box2dCollider{Size: unitSize},
		Health{Value: 100},
		KeyboardControl{Speed: 100},
		CameraFollow{},
		ProjectileEmitter{
			Velocity:           gm.VecOf(200, 0),
			ProjectileDuration: 3 * time.Second,
			Damage:             25,
			Friendly:           true,
		},
	)

	engine.Entities().Tags().SetTag(playerId, TagPlayer)

	return playerId
}

// EnemyConfig describes an enemy unit.
type EnemyConfig struct {
	Sprite       string
	Position     gm.Vec
	Velocity     gm.Vec
	FireVelocity gm.Vec
	FireInterval time.Duration
	Frames       int
}

// SpawnEnemy spawns an enemy unit that fires projectiles at a fixed interval.
func SpawnEnemy(engine *ecs.Engine, config EnemyConfig) ecs.EntityId {
	components := []any{
		TransformAt(config.Position),
		Velocity{Vec: config.Velocity},
		Sprite{Name: config.Sprite, Size: unitSize, ZIndex: 1},
		Box2dCollider{Size: unitSize},
		Health{Value: 100},
	}

	if config.FireInterval > 0 {
		components = append(components, ProjectileEmitter{
			Velocity:           config.FireVelocity,
			RepeatInterval:     config.FireInterval,
			ProjectileDuration: 2 * time.Second,
			Damage:             10,
		})
	}

	if config.Frames > 1 {
		components = append(components, Animation{NumFrames: config.Frames, FrameRate: 10, Loop: true})
	}

	enemyId := engine.Spawn(components...)
	engine.Entities().Groups().AddToGroup(enemyId, GroupEnemies)

	return enemyId
}
