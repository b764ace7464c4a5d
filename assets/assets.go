package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var (
	//go:embed all:maps all:sprites
	assetFS embed.FS
)

// Embedded returns the bundled demo maps and sprites.
func Embedded() fs.FS {
	return assetFS
}

// ImageCache turns asset files and decoded map images into GPU images, once
// each.
type ImageCache struct {
	fsys      fs.FS
	files     map[string]*ebiten.Image
	converted map[image.Image]*ebiten.Image
	regions   map[region]*ebiten.Image
}

type region struct {
	src  image.Image
	rect image.Rectangle
}

func NewImageCache(fsys fs.FS) *ImageCache {
	return &ImageCache{
		fsys:      fsys,
		files:     make(map[string]*ebiten.Image),
		converted: make(map[image.Image]*ebiten.Image),
		regions:   make(map[region]*ebiten.Image),
	}
}

// Load reads and decodes the image at name.
func (c *ImageCache) Load(name string) (*ebiten.Image, error) {
	if img, ok := c.files[name]; ok {
		return img, nil
	}

	imgBytes, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}

	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}

	c.files[name] = img
	return img, nil
}

// Image converts an already decoded image. nil stays nil so tiles of an
// unloaded sheet keep drawing nothing.
func (c *ImageCache) Image(src image.Image) *ebiten.Image {
	if src == nil {
		return nil
	}
	if img, ok := c.converted[src]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(src)
	c.converted[src] = img
	return img
}

// SubImage returns the r region of a decoded image.
func (c *ImageCache) SubImage(src image.Image, r image.Rectangle) *ebiten.Image {
	key := region{src: src, rect: r}
	if img, ok := c.regions[key]; ok {
		return img
	}
	sheet := c.Image(src)
	if sheet == nil {
		return nil
	}
	img := sheet.SubImage(r).(*ebiten.Image)
	c.regions[key] = img
	return img
}

// Dispose frees every cached image. The cache stays usable.
func (c *ImageCache) Dispose() {
	for name, img := range c.files {
		img.Deallocate()
		delete(c.files, name)
	}
	for src, img := range c.converted {
		img.Deallocate()
		delete(c.converted, src)
	}
	clear(c.regions)
}

// FS is the filesystem images are read from.
func (c *ImageCache) FS() fs.FS {
	return c.fsys
}
