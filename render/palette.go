package render

import "image/color"

// Palette holds every color the texture generators draw with. A palette is
// fixed for the lifetime of a texture registry; changing the theme means
// constructing a new registry.
type Palette struct {
	// Background clears the window each frame. Generators never draw it;
	// it rides along so a theme is one value.
	Background color.RGBA
	// CellBase is the resting body color of an untouched cell.
	CellBase color.RGBA
	// CellGlow is what the idle pulse blends the body toward.
	CellGlow color.RGBA
	// Outline strokes the cell border.
	Outline color.RGBA
	// Revealed is the body color behind digits and mines.
	Revealed color.RGBA
	// Accent tints flagged cells and chordable numbers.
	Accent color.RGBA
	// Flash is the reveal flash body.
	Flash color.RGBA
	// Mine draws the mine glyph.
	Mine color.RGBA
	// Digits holds the glyph color per touching count; index 0 is unused.
	Digits [9]color.RGBA
}
