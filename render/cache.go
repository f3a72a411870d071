package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Generator paints the frame identified by selector onto dst. Generators
// must be deterministic: the same selector always produces the same pixels.
type Generator func(selector int, dst *ebiten.Image)

// FrameCache memoizes a Generator's output across its finite selector
// space. Producing a frame is expensive (procedural rasters, glyph
// rendering, texture upload), so each frame is rendered once into a private
// offscreen bitmap and every later draw reuses it.
type FrameCache struct {
	gen    Generator
	size   int
	frames []*ebiten.Image
}

// NewFrameCache wraps gen in a cache of frameCount entries, each rendered
// at textureSize x textureSize pixels on first use.
func NewFrameCache(gen Generator, textureSize, frameCount int) *FrameCache {
	if gen == nil {
		panic("render: nil generator")
	}
	if textureSize <= 0 || frameCount <= 0 {
		panic(fmt.Sprintf("render: invalid frame cache (size=%d frames=%d)", textureSize, frameCount))
	}
	return &FrameCache{gen: gen, size: textureSize, frames: make([]*ebiten.Image, frameCount)}
}

// Frame returns the rendered bitmap for selector, rendering it on first
// use. Entries never change once populated; callers must not draw onto the
// returned image.
func (c *FrameCache) Frame(selector int) *ebiten.Image {
	if selector < 0 || selector >= len(c.frames) {
		panic(fmt.Sprintf("render: frame selector %d out of range [0,%d)", selector, len(c.frames)))
	}
	img := c.frames[selector]
	if img == nil {
		img = ebiten.NewImage(c.size, c.size)
		c.gen(selector, img)
		c.frames[selector] = img
	}
	return img
}

// Draw paints the frame for selector onto dst. Observably identical to
// running the wrapped generator against dst, except the render happens at
// most once per selector over the cache's lifetime.
func (c *FrameCache) Draw(selector int, dst Target, opts *ebiten.DrawImageOptions) {
	dst.DrawImage(c.Frame(selector), opts)
}

// Generator returns a cache-backed generator with the same call contract
// as the wrapped one.
func (c *FrameCache) Generator() Generator {
	return func(selector int, dst *ebiten.Image) {
		dst.DrawImage(c.Frame(selector), nil)
	}
}

// Size returns the pixel dimension frames are rendered at.
func (c *FrameCache) Size() int { return c.size }

// FrameCount returns the number of selectors the cache accepts.
func (c *FrameCache) FrameCount() int { return len(c.frames) }
