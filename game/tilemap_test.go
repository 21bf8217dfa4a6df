package game

import (
	"strings"
	"testing"

	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/gm"
	"github.com/stretchr/testify/require"
)

func TestLoadTilemap(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tiles, err := LoadTilemap(strings.NewReader("1,2,3\n4, 5,6\n"))
		require.NoError(t, err)
		require.Len(t, tiles, 6)
		require.Equal(t, Tile{X: 1, Y: 1, SpriteId: 5}, tiles[4])
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := LoadTilemap(strings.NewReader("1,x\n"))
		require.ErrorContains(t, err, "parse sprite id at 1,0")
	})

	t.Run("negative sprite id", func(t *testing.T) {
		_, err := LoadTilemap(strings.NewReader("0,1\n2,-3\n"))
		require.ErrorContains(t, err, "negative sprite id -3 at 1,1")
	})

	t.Run("empty", func(t *testing.T) {
		tiles, err := LoadTilemap(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, tiles)
	})
}

func TestSpawnTilemap(t *testing.T) {
	engine := ecs.NewEngine()

	tiles, err := LoadTilemap(strings.NewReader("0,1,2\n10,11,12\n"))
	require.NoError(t, err)

	dimensions := SpawnTilemap(engine, tiles, TilemapConfig{
		SpriteSheet: "jungle",
		Columns:     10,
		TileSize:    gm.VecOf(32, 32),
		Scale:       2,
	})

	require.Equal(t, gm.VecOf(192, 128), dimensions.Vec)

	stored, ok := ecs.Resource[MapDimensions](engine.Resources())
	require.True(t, ok)
	require.Equal(t, dimensions, stored)

	engine.Update(0)

	query := ecs.NewQuery2[ecs.Ref[Transform], ecs.Ref[Sprite]](engine.Entities())
	require.Equal(t, 6, query.Count())

	// the tile with sprite id 11 is the fifth tile spawned
	entities := query.Entities()
	transform, sprite, ok := query.Get(entities[4])
	require.True(t, ok)
	defer transform.Release()
	defer sprite.Release()

	require.Equal(t, gm.VecOf(64, 64), transform.Get().Position)
	require.Equal(t, gm.VecOf(32, 32), sprite.Get().Source.Min)
	require.Equal(t, "jungle", sprite.Get().Name)
}
