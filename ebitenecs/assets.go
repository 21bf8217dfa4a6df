package ebitenecs

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/ecs"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg"}

// Assets holds the images loaded from a file system. The asset name of an image
// is its file name without extension, e.g. "images/tank.png" is named "tank".
type Assets struct {
	images map[string]*ebiten.Image
}

var _ ecs.AssetProvider = (*Assets)(nil)

// LoadAssets loads all images found in fsys.
func LoadAssets(fsys fs.FS) (*Assets, error) {
	assets := &Assets{images: map[string]*ebiten.Image{}}

	err := fs.WalkDir(fsys, ".", func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !isImage(filePath) {
			return nil
		}

		return assets.loadImage(fsys, filePath)
	})

	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}

	return assets, nil
}

func isImage(filePath string) bool {
	ext := strings.ToLower(path.Ext(filePath))
	for _, imageExt := range imageExtensions {
		if ext == imageExt {
			return true
		}
	}

	return false
}

func (a *Assets) loadImage(fsys fs.FS, filePath string) error {
	fp, err := fsys.Open(filePath)
	if err != nil {
		return fmt.Errorf("open %q: %w", filePath, err)
	}

	defer fp.Close()

	img, _, err := image.Decode(fp)
	if err != nil {
		return fmt.Errorf("decode image %q: %w", filePath, err)
	}

	name := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	if _, exists := a.images[name]; exists {
		slog.Warn("Duplicate asset name, keeping the first image", slog.String("name", name), slog.String("path", filePath))
		return nil
	}

	a.images[name] = ebiten.NewImageFromImage(img)

	slog.Debug("Image loaded", slog.String("name", name), slog.String("path", filePath))

	return nil
}

// Drawable returns the *ebiten.Image with the given name.
func (a *Assets) Drawable(name string) (ecs.Drawable, bool) {
	img, ok := a.images[name]
	return img, ok
}

// Image is a typed version of Drawable.
func (a *Assets) Image(name string) (*ebiten.Image, bool) {
	img, ok := a.images[name]
	return img, ok
}
