package render

import "fmt"

// Textures owns the two frame caches cell rendering draws from: the idle
// pulse loop and the static frames (digits, outline, flash, mine). A
// registry is built for one texture size and palette; changing either means
// constructing a new registry, never mutating this one.
type Textures struct {
	size    int
	palette Palette
	idle    *FrameCache
	static  *FrameCache
}

// NewTextures builds both caches eagerly for the given texture size and
// palette, so a renderer can never observe a half-initialized registry.
func NewTextures(textureSize int, p Palette) *Textures {
	if textureSize <= 0 {
		panic(fmt.Sprintf("render: invalid texture size %d", textureSize))
	}
	return &Textures{
		size:    textureSize,
		palette: p,
		idle:    NewFrameCache(newIdleGenerator(p, textureSize), textureSize, idleFrameCount),
		static:  NewFrameCache(newStaticGenerator(p, textureSize), textureSize, int(staticFrameCount)),
	}
}

// Idle returns the pulse-loop cache. The same instance is returned for the
// registry's whole lifetime.
func (t *Textures) Idle() *FrameCache { return t.idle }

// Static returns the static-frame cache. The same instance is returned for
// the registry's whole lifetime.
func (t *Textures) Static() *FrameCache { return t.static }

// Size returns the pixel dimension textures are rendered at.
func (t *Textures) Size() int { return t.size }

// Palette returns the palette the registry was built with.
func (t *Textures) Palette() Palette { return t.palette }
