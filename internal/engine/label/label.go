// Package label rasterizes short text strings into images.
package label

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// Measure returns the unscaled pixel size of text.
func Measure(text string) (width, height int) {
	m := face.Metrics()
	return font.MeasureString(face, text).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// Render draws text in c onto a transparent image, enlarged by an integer
// scale with nearest-neighbour sampling to keep the bitmap font crisp.
func Render(text string, c color.Color, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	w, h := Measure(text)
	if w == 0 {
		w = 1
	}

	src := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

type key struct {
	text  string
	color color.RGBA
	scale int
}

// Cache keeps rendered labels so each distinct string is rasterized once.
// The returned images are shared and must not be modified.
type Cache struct {
	entries map[key]*image.RGBA
}

// NewCache creates an empty label cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[key]*image.RGBA)}
}

// Get returns the rendered label, rasterizing it on first use.
func (c *Cache) Get(text string, col color.RGBA, scale int) *image.RGBA {
	k := key{text, col, scale}
	if img, ok := c.entries[k]; ok {
		return img
	}
	img := Render(text, col, scale)
	c.entries[k] = img
	return img
}

// Len returns the number of cached labels.
func (c *Cache) Len() int {
	return len(c.entries)
}
