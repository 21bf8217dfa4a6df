package ebitenecs

import (
	"cmp"
	"log/slog"
	"reflect"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/ecs"
	"github.com/oliverbestmann/ecs/game"
	"github.com/oliverbestmann/ecs/internal/set"
)

// RenderSystem draws every entity with a Transform and a Sprite, ordered by the
// z index of the sprite and offset by the game.Camera resource.
//
// Drawing happens in Draw, which is called by the ebiten draw callback,
// not during the engine update.
type RenderSystem struct {
	ecs.BaseSystem

	missing set.Set[string]
}

func NewRenderSystem(reg *ecs.ComponentTypeRegistry) *RenderSystem {
	sig := reg.SignatureOf(reflect.TypeFor[game.Transform](), reflect.TypeFor[game.Sprite]())
	return &RenderSystem{BaseSystem: ecs.NewBaseSystem(sig)}
}

func (s *RenderSystem) Update(ctx *ecs.Context) {}

type drawItem struct {
	transform game.Transform
	sprite    game.Sprite
}

func (s *RenderSystem) Draw(screen *ebiten.Image, engine *ecs.Engine) {
	em := engine.Entities()

	items := make([]drawItem, 0, s.EntityCount())
	for _, entityId := range s.Entities() {
		transform := ecs.MustGetComponent[game.Transform](em, entityId)
		sprite := ecs.MustGetComponent[game.Sprite](em, entityId)

		items = append(items, drawItem{transform: transform.Get(), sprite: sprite.Get()})

		transform.Release()
		sprite.Release()
	}

	slices.SortStableFunc(items, func(a, b drawItem) int {
		return cmp.Compare(a.sprite.ZIndex, b.sprite.ZIndex)
	})

	camera, _ := ecs.Resource[game.Camera](engine.Resources())

	for _, item := range items {
		drawable, ok := engine.Assets().Drawable(item.sprite.Name)
		if !ok {
			if s.missing.Insert(item.sprite.Name) {
				slog.Warn("Sprite image not found", slog.String("name", item.sprite.Name))
			}

			continue
		}

		img, ok := drawable.(*ebiten.Image)
		if !ok {
			continue
		}

		if item.sprite.HasSource() {
			img = img.SubImage(item.sprite.Source.ToImageRectangle()).(*ebiten.Image)
		}

		var op ebiten.DrawImageOptions

		// scale the image to the sprite size first
		bounds := img.Bounds()
		if !item.sprite.Size.IsZero() && bounds.Dx() > 0 && bounds.Dy() > 0 {
			op.GeoM.Scale(item.sprite.Size.X/float64(bounds.Dx()), item.sprite.Size.Y/float64(bounds.Dy()))
		}

		scale := item.transform.Scale
		if scale.IsZero() {
			scale.X, scale.Y = 1, 1
		}

		op.GeoM.Scale(scale.X, scale.Y)
		op.GeoM.Rotate(item.transform.Rotation.Radians())

		position := item.transform.Position.Sub(camera.Min)
		op.GeoM.Translate(position.X, position.Y)

		screen.DrawImage(img, &op)
	}
}
