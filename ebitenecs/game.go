package ebitenecs

import (
	"fmt"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/game"
	"github.com/oliverbestmann/ecs/gm"
)

type WindowConfig struct {
	Title         string
	Width         int
	Height        int
	DisableResize bool
}

// Game runs an ecs.Engine inside the ebiten game loop. Keyboard input is emitted
// as game.KeyboardEvent, the engine is advanced in fixed steps and entities with a
// Transform and a Sprite are drawn by the RenderSystem.
type Game struct {
	engine *ecs.Engine
	render *RenderSystem
	step   *ecs.FixedStep

	lastUpdate  time.Time
	showTimings bool

	timingsImage  *ebiten.Image
	timingsFrames int
}

// NewGame adds a RenderSystem to the engine and wraps it into a Game.
func NewGame(engine *ecs.Engine, stepInterval time.Duration) *Game {
	render := NewRenderSystem(engine.Registry())
	engine.AddSystem(render)

	step := ecs.NewFixedStep(stepInterval)
	step.MaxSteps = 4

	return &Game{
		engine: engine,
		render: render,
		step:   step,
	}
}

// Run opens the window and blocks until the game ends.
func Run(g *Game, win WindowConfig) error {
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowSize(win.Width, win.Height)

	if !win.DisableResize {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	var options ebiten.RunGameOptions
	options.SingleThread = true

	return ebiten.RunGameWithOptions(g, &options)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.showTimings = !g.showTimings
	}

	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
	}

	delta := now.Sub(g.lastUpdate)
	g.lastUpdate = now

	// subscriptions of the previous frame are still active
	emitKeyboardEvents(g.engine)

	g.step.Advance(delta, g.engine.Update)

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(screen, g.engine)

	if stats := g.engine.Stats(); stats != nil && g.showTimings {
		g.drawTimings(screen, stats)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// the camera always covers the full screen
	if camera, ok := ecs.ResourceOf[game.Camera](g.engine.Resources()); ok {
		size := gm.Vec{X: float64(outsideWidth), Y: float64(outsideHeight)}
		camera.Rect = gm.RectWithOriginAndSize(camera.Min, size)
	}

	return outsideWidth, outsideHeight
}

func (g *Game) drawTimings(screen *ebiten.Image, stats *ecs.TimingStats) {
	g.timingsFrames += 1
	if g.timingsFrames%30 != 0 && g.timingsImage != nil {
		screen.DrawImage(g.timingsImage, nil)
		return
	}

	if g.timingsImage == nil || g.timingsImage.Bounds() != screen.Bounds() {
		b := screen.Bounds()
		g.timingsImage = ebiten.NewImage(b.Dx(), b.Dy())
	}

	g.timingsImage.Clear()

	type systemTimings struct {
		Name    string
		Timings ecs.Timings
	}

	systems := []systemTimings{{Name: "frame", Timings: stats.Frames}}
	maxNameLength := len("frame")

	for _, system := range stats.SystemOrder {
		name := ecs.SystemName(system)
		systems = append(systems, systemTimings{Name: name, Timings: stats.BySystem[system]})
		maxNameLength = max(maxNameLength, len(name))
	}

	slices.SortStableFunc(systems[1:], func(a, b systemTimings) int {
		return int(b.Timings.MovingAverage - a.Timings.MovingAverage)
	})

	for row, sys := range systems {
		text := fmt.Sprintf("%-[1]*s runs=%5d, latest:%6.2fms, min:%6.2fms, max:%6.2fms, avg:%6.2fms",
			maxNameLength,
			sys.Name,
			sys.Timings.Count,
			sys.Timings.Latest.Seconds()*1000,
			sys.Timings.Min.Seconds()*1000,
			sys.Timings.Max.Seconds()*1000,
			sys.Timings.MovingAverage.Seconds()*1000,
		)

		ebitenutil.DebugPrintAt(g.timingsImage, text, 16, 16+16*row)
	}

	// draw the now cached text
	screen.DrawImage(g.timingsImage, nil)
}
