package ecs

// Drawable is an opaque handle to something the renderer can draw, e.g. an image.
type Drawable = any

// AssetProvider gives systems access to loaded assets.
type AssetProvider interface {
	Drawable(name string) (Drawable, bool)
}

// MapAssets is an in memory AssetProvider.
type MapAssets map[string]Drawable

func (m MapAssets) Drawable(name string) (Drawable, bool) {
	drawable, ok := m[name]
	return drawable, ok
}
