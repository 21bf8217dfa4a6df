package game

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/gm"
)

// Tile is a single cell of a tilemap.
type Tile struct {
	X, Y     int
	SpriteId int
}

// LoadTilemap parses a tilemap with one row of comma separated sprite ids per line.
func LoadTilemap(r io.Reader) ([]Tile, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var tiles []Tile

	for y := 0; ; y++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read tilemap row %d: %w", y, err)
		}

		for x, field := range record {
			spriteId, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("parse sprite id at %d,%d: %w", x, y, err)
			}

			if spriteId < 0 {
				return nil, fmt.Errorf("negative sprite id %d at %d,%d", spriteId, x, y)
			}

			tiles = append(tiles, Tile{X: x, Y: y, SpriteId: spriteId})
		}
	}

	return tiles, nil
}

// TilemapConfig describes how tiles are rendered.
type TilemapConfig struct {
	// asset name of the sprite sheet
	SpriteSheet string

	// number of tiles per row in the sprite sheet
	Columns int

	TileSize gm.Vec
	Scale    float64
}

// SpawnTilemap spawns one entity per tile and stores the MapDimensions resource.
func SpawnTilemap(engine *ecs.Engine, tiles []Tile, config TilemapConfig) MapDimensions {
	if config.Columns <= 0 {
		config.Columns = 1
	}

	if config.Scale == 0 {
		config.Scale = 1
	}

	worldTileSize := config.TileSize.Mul(config.Scale)

	var columns, rows int
	for _, tile := range tiles {
		columns = max(columns, tile.X+1)
		rows = max(rows, tile.Y+1)

		sourceOrigin := gm.VecOf(
			float64(tile.SpriteId%config.Columns)*config.TileSize.X,
			float64(tile.SpriteId/config.Columns)*config.TileSize.Y,
		)

		engine.Spawn(
			Transform{
				Position: gm.VecOf(float64(tile.X), float64(tile.Y)).MulEach(worldTileSize),
				Scale:    gm.VecOne.Mul(config.Scale),
			},
			Sprite{
				Name:   config.SpriteSheet,
				Size:   config.TileSize,
				Source: gm.RectWithOriginAndSize(sourceOrigin, config.TileSize),
			},
		)
	}

	dimensions := MapDimensions{Vec: gm.VecOf(float64(columns), float64(rows)).MulEach(worldTileSize)}
	engine.InsertResource(dimensions)

	return dimensions
}
