package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Target is the destination surface cell rendering paints onto. It is the
// minimal capability the renderer requires of a drawing surface;
// *ebiten.Image satisfies it directly and tests substitute a recording
// implementation.
type Target interface {
	DrawImage(img *ebiten.Image, opts *ebiten.DrawImageOptions)
}

// whitePixel backs rectangle fills. Scaling a solid white texture and
// tinting it through ColorScale is how a fill with an explicit blend mode
// is expressed as a draw; the 3x3 backing image is sampled at its center
// pixel so filtering never bleeds in transparent neighbors.
var whitePixel *ebiten.Image

func init() {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	whitePixel = base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// fillRect paints the given rectangle of dst with clr using blend. Options
// are built fresh per call; nothing persists between operations.
func fillRect(dst Target, x, y, w, h float64, clr color.Color, blend ebiten.Blend) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(w, h)
	opts.GeoM.Translate(x, y)
	opts.ColorScale.ScaleWithColor(clr)
	opts.Blend = blend
	dst.DrawImage(whitePixel, opts)
}
