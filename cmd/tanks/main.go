package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/ebitenecs"
	"github.com/oliverbestmann/ecs/game"
	"github.com/oliverbestmann/ecs/gm"
	"github.com/pkg/profile"
)

var (
	width      = flag.Int("width", 800, "window width")
	height     = flag.Int("height", 600, "window height")
	assetsPath = flag.String("assets", "assets", "directory containing the images")
	mapPath    = flag.String("map", "assets/tilemaps/jungle.map", "tilemap file, relative to the working directory")
	tileSheet  = flag.String("tiles", "jungle", "name of the tilemap sprite sheet")
	tileScale  = flag.Float64("tile-scale", 2, "scale of the tiles")
	logLevel   = flag.String("log-level", "info", "log level: debug, info, warn or error")
	tps        = flag.Int("tps", ebiten.DefaultTPS, "ticks per second")
	timings    = flag.Bool("timings", false, "collect system timings, press D to show them")
	profileDir = flag.String("profile", "", "write a cpu profile to this directory")
)

func main() {
	flag.Parse()
	os.Exit(runMain())
}

// runMain returns the exit code. Deferred calls must run before os.Exit,
// otherwise the profile is not written.
func runMain() int {
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		return 2
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir)).Stop()
	}

	if err := run(); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("Game failed", slog.String("error", err.Error()))
		return 1
	}

	return 0
}

func run() error {
	assets, err := ebitenecs.LoadAssets(os.DirFS(*assetsPath))
	if err != nil {
		return err
	}

	options := []ecs.Option{ecs.WithAssets(assets)}
	if *timings {
		options = append(options, ecs.WithTimingStats())
	}

	engine := ecs.NewEngine(options...)

	if err := loadMap(engine); err != nil {
		return err
	}

	game.AddSystems(engine, time.Now())

	spawnUnits(engine)

	ebiten.SetTPS(*tps)

	g := ebitenecs.NewGame(engine, time.Second/time.Duration(*tps))

	return ebitenecs.Run(g, ebitenecs.WindowConfig{
		Title:  "Tanks",
		Width:  *width,
		Height: *height,
	})
}

func loadMap(engine *ecs.Engine) error {
	fp, err := os.Open(filepath.Clean(*mapPath))
	if err != nil {
		return fmt.Errorf("open tilemap: %w", err)
	}

	defer fp.Close()

	tiles, err := game.LoadTilemap(fp)
	if err != nil {
		return fmt.Errorf("load tilemap %q: %w", *mapPath, err)
	}

	dims := game.SpawnTilemap(engine, tiles, game.TilemapConfig{
		SpriteSheet: *tileSheet,
		Columns:     10,
		TileSize:    gm.VecOf(32, 32),
		Scale:       *tileScale,
	})

	slog.Info("Tilemap loaded",
		slog.Int("tiles", len(tiles)),
		slog.String("size", dims.String()),
	)

	return nil
}

func spawnUnits(engine *ecs.Engine) {
	game.SpawnPlayer(engine, gm.VecOf(240, 110))

	game.SpawnEnemy(engine, game.EnemyConfig{
		Sprite:   "truck-ford-right",
		Position: gm.VecOf(10, 10),
		Velocity: gm.VecOf(50, 0),
	})

	game.SpawnEnemy(engine, game.EnemyConfig{
		Sprite:       "tank-tiger-right",
		Position:     gm.VecOf(500, 500),
		FireVelocity: gm.VecOf(-150, 0),
		FireInterval: 2 * time.Second,
	})

	game.SpawnEnemy(engine, game.EnemyConfig{
		Sprite:       "chopper-spritesheet",
		Position:     gm.VecOf(100, 400),
		Velocity:     gm.VecOf(60, 0),
		FireVelocity: gm.VecOf(0, 150),
		FireInterval: 3 * time.Second,
		Frames:       2,
	})
}
