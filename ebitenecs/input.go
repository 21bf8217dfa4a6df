package ebitenecs

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/game"
)

var keyMapping = []struct {
	ebiten ebiten.Key
	game   game.Key
}{
	{ebiten.KeyArrowUp, game.KeyUp},
	{ebiten.KeyArrowRight, game.KeyRight},
	{ebiten.KeyArrowDown, game.KeyDown},
	{ebiten.KeyArrowLeft, game.KeyLeft},
	{ebiten.KeySpace, game.KeySpace},
}

// emitKeyboardEvents emits a game.KeyboardEvent for every key pressed since the last tick.
func emitKeyboardEvents(engine *ecs.Engine) {
	for _, key := range keyMapping {
		if inpututil.IsKeyJustPressed(key.ebiten) {
			ecs.Emit(engine.Events(), engine.Entities(), game.KeyboardEvent{Key: key.game})
		}
	}
}
