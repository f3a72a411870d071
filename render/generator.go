package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/gobold"
)

// StaticFrame selects one pre-rendered static texture. The digit frames
// occupy 0..8 so a cell's touching-mine count is its own selector.
type StaticFrame int

const (
	StaticEmpty StaticFrame = iota
	StaticOne
	StaticTwo
	StaticThree
	StaticFour
	StaticFive
	StaticSix
	StaticSeven
	StaticEight
	StaticOutline
	StaticFlash
	StaticMine

	staticFrameCount
)

// newIdleGenerator returns the pulse-loop generator. Frame i is one step of
// a seamless cosine pulse that blends the cell body toward the glow color
// in HCL space, strongest at the cell center.
func newIdleGenerator(p Palette, size int) Generator {
	base, _ := colorful.MakeColor(p.CellBase)
	glow, _ := colorful.MakeColor(p.CellGlow)
	return func(selector int, dst *ebiten.Image) {
		t := float64(selector) / float64(idleFrameCount)
		pulse := 0.5 - 0.5*math.Cos(2*math.Pi*t)

		rgba := image.NewRGBA(image.Rect(0, 0, size, size))
		s := float64(size)
		center := s / 2
		inset, radius := cellInset(size), cellRadius(size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				fx, fy := float64(x)+0.5, float64(y)+0.5
				d := roundedRectDist(fx, fy, s, inset, radius)
				cov := clamp01(0.5 - d)
				if cov <= 0 {
					continue
				}
				rr := math.Hypot(fx-center, fy-center) / (center - inset)
				c := base.BlendHcl(glow, pulse*clamp01(1.2-rr)).Clamped()
				cr, cg, cb := c.RGB255()
				rgba.SetRGBA(x, y, scaleRGBA(color.RGBA{R: cr, G: cg, B: cb, A: 0xff}, cov))
			}
		}
		dst.DrawImage(ebiten.NewImageFromImage(rgba), nil)
	}
}

// newStaticGenerator returns the generator behind the StaticFrame enum.
func newStaticGenerator(p Palette, size int) Generator {
	face := &text.GoTextFace{Source: digitFaceSource(), Size: float64(size) * 0.58}
	return func(selector int, dst *ebiten.Image) {
		switch f := StaticFrame(selector); {
		case f == StaticEmpty:
			fillBody(dst, size, p.Revealed)
		case f >= StaticOne && f <= StaticEight:
			fillBody(dst, size, p.Revealed)
			drawDigit(dst, size, face, int(f), p.Digits[int(f)])
		case f == StaticOutline:
			strokeBody(dst, size, p.Outline)
		case f == StaticFlash:
			fillBody(dst, size, p.Flash)
		case f == StaticMine:
			fillBody(dst, size, p.Revealed)
			drawMine(dst, size, p.Mine)
		default:
			panic(fmt.Sprintf("render: unknown static frame %d", selector))
		}
	}
}

// digitSource is the parsed typeface behind the digit frames, built once on
// first use.
var digitSource *text.GoTextFaceSource

func digitFaceSource() *text.GoTextFaceSource {
	if digitSource == nil {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if err != nil {
			panic(fmt.Sprintf("render: parse digit font: %v", err))
		}
		digitSource = s
	}
	return digitSource
}

func drawDigit(dst *ebiten.Image, size int, face text.Face, n int, clr color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(size)/2, float64(size)/2)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, strconv.Itoa(n), face, op)
}

// drawMine rasters the mine body and strokes eight spokes around it.
func drawMine(dst *ebiten.Image, size int, clr color.RGBA) {
	s := float64(size)
	center := s / 2
	body := s * 0.22

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center) - body
			cov := clamp01(0.5 - d)
			if cov <= 0 {
				continue
			}
			rgba.SetRGBA(x, y, scaleRGBA(clr, cov))
		}
	}
	dst.DrawImage(ebiten.NewImageFromImage(rgba), nil)

	spoke := s * 0.34
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		vector.StrokeLine(dst,
			float32(center+math.Cos(a)*body*0.6), float32(center+math.Sin(a)*body*0.6),
			float32(center+math.Cos(a)*spoke), float32(center+math.Sin(a)*spoke),
			float32(s*0.055), clr, true)
	}
}

// fillBody rasters an anti-aliased rounded cell body onto dst.
func fillBody(dst *ebiten.Image, size int, clr color.RGBA) {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	inset, radius := cellInset(size), cellRadius(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := roundedRectDist(float64(x)+0.5, float64(y)+0.5, s, inset, radius)
			cov := clamp01(0.5 - d)
			if cov <= 0 {
				continue
			}
			rgba.SetRGBA(x, y, scaleRGBA(clr, cov))
		}
	}
	dst.DrawImage(ebiten.NewImageFromImage(rgba), nil)
}

// strokeBody rasters the rounded cell border onto dst.
func strokeBody(dst *ebiten.Image, size int, clr color.RGBA) {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	inset, radius := cellInset(size), cellRadius(size)
	width := math.Max(1, s*0.05)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := roundedRectDist(float64(x)+0.5, float64(y)+0.5, s, inset, radius)
			cov := clamp01(width/2 - math.Abs(d) + 0.5)
			if cov <= 0 {
				continue
			}
			rgba.SetRGBA(x, y, scaleRGBA(clr, cov))
		}
	}
	dst.DrawImage(ebiten.NewImageFromImage(rgba), nil)
}

// roundedRectDist returns the signed distance from (x, y) to the rounded
// rectangle inset into a size x size texture. Negative values are inside.
func roundedRectDist(x, y, size, inset, radius float64) float64 {
	half := size/2 - inset
	qx := math.Abs(x-size/2) - (half - radius)
	qy := math.Abs(y-size/2) - (half - radius)
	dx := math.Max(qx, 0)
	dy := math.Max(qy, 0)
	return math.Hypot(dx, dy) + math.Min(math.Max(qx, qy), 0) - radius
}

func cellInset(size int) float64  { return float64(size) * 0.07 }
func cellRadius(size int) float64 { return float64(size) * 0.18 }

// scaleRGBA multiplies a premultiplied color by coverage.
func scaleRGBA(c color.RGBA, a float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R)*a + 0.5),
		G: uint8(float64(c.G)*a + 0.5),
		B: uint8(float64(c.B)*a + 0.5),
		A: uint8(float64(c.A)*a + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
