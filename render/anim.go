package render

import (
	"image/color"
	"math"

	"github.com/fogleman/ease"
	"github.com/hajimehoshi/ebiten/v2"
)

// Animation timeline constants, in milliseconds on the driver's clock.
const (
	idleDuration  = 5000.0
	flashDuration = 320.0

	// The idle loop is discretized at the display rate, one frame per tick
	// across the full loop.
	idleFrameCount = int(idleDuration / 1000 * 60)
)

// Kind names a cell animation behavior.
type Kind int

const (
	KindIdle Kind = iota
	KindFlagged
	KindNumber
	KindFlashIn
	KindFlashOut
)

// completion is the explicit lifecycle of an Anim's done callback.
type completion int

const (
	completionNone completion = iota
	completionPending
	completionFired
)

// Anim tracks one running animation on a cell: the behavior, its start on
// the driver timeline, and an optional one-shot completion callback.
type Anim struct {
	Kind  Kind
	Start float64
	done  func()
	state completion
}

// NewAnim returns a descriptor with no completion callback.
func NewAnim(kind Kind, start float64) *Anim {
	return &Anim{Kind: kind, Start: start}
}

// NewAnimDone returns a descriptor whose done callback fires exactly once,
// on the first paint call that observes saturated progress.
func NewAnimDone(kind Kind, start float64, done func()) *Anim {
	a := &Anim{Kind: kind, Start: start, done: done}
	if done != nil {
		a.state = completionPending
	}
	return a
}

// finish fires the done callback at most once. The callback reference is
// cleared before it runs, so a reentrant paint call cannot fire it again.
func (a *Anim) finish() {
	if a.state != completionPending {
		return
	}
	cb := a.done
	a.done = nil
	a.state = completionFired
	cb()
}

// Done reports whether the completion callback has already fired.
func (a *Anim) Done() bool { return a.state == completionFired }

// Context carries one cell paint call: the current driver timestamp in
// milliseconds, the destination surface, the cell rectangle on it, and the
// cell's animation descriptor.
type Context struct {
	Now  float64
	Dst  Target
	X, Y float64
	W, H float64
	Anim *Anim
}

// CellRenderer draws every visual state of a board cell from cached
// textures. The registry is a mandatory constructor argument; a renderer
// cannot exist before its textures do.
type CellRenderer struct {
	tex    *Textures
	accent color.RGBA
}

// NewCellRenderer returns a renderer over the given registry.
func NewCellRenderer(tex *Textures) *CellRenderer {
	if tex == nil {
		panic("render: nil texture registry")
	}
	return &CellRenderer{tex: tex, accent: tex.Palette().Accent}
}

// idleFrameAt maps a timestamp onto the idle loop's discrete frame space.
// There is deliberately no lower-bound guard: a timestamp before start
// yields a negative selector and trips the cache's bounds check.
func idleFrameAt(now, start float64) int {
	p := math.Mod((now-start)/idleDuration, 1)
	return int(p * float64(idleFrameCount))
}

// Idle draws the perpetual pulse of an untouched cell: the pulse frame at
// 30% opacity under the full-strength outline. It never completes.
func (r *CellRenderer) Idle(ctx Context) {
	r.drawIdle(ctx)
}

// Flagged draws the idle pulse tinted by the accent color. The tint is a
// full-surface fill that keeps destination alpha, so only pixels the cell
// itself painted pick up the accent.
func (r *CellRenderer) Flagged(ctx Context) {
	r.drawIdle(ctx)
	r.fillAccent(ctx)
}

// Number draws the settled reveal state for a cell touching the given
// number of mines. canDoSurroundingReveal adds the accent tint marking the
// cell as chordable.
func (r *CellRenderer) Number(ctx Context, touching int, canDoSurroundingReveal bool) {
	r.tex.Static().Draw(touching, ctx.Dst, r.cellOpts(ctx))
	if canDoSurroundingReveal {
		r.fillAccent(ctx)
	}
}

// Mine draws an uncovered mine.
func (r *CellRenderer) Mine(ctx Context) {
	r.tex.Static().Draw(int(StaticMine), ctx.Dst, r.cellOpts(ctx))
}

// FlashIn fades the flash frame up from transparent. Calls before the
// animation's start paint nothing and leave the callback untouched; the
// callback fires on the first call that reaches full progress.
func (r *CellRenderer) FlashIn(ctx Context) {
	r.flash(ctx, ease.OutQuad)
}

// FlashOut fades the flash frame back to transparent with the same timing
// guards as FlashIn.
func (r *CellRenderer) FlashOut(ctx Context) {
	r.flash(ctx, func(p float64) float64 { return 1 - ease.InOutQuad(p) })
}

func (r *CellRenderer) flash(ctx Context, alpha func(float64) float64) {
	p := (ctx.Now - ctx.Anim.Start) / flashDuration
	if p < 0 {
		return
	}
	saturated := p >= 1
	if saturated {
		p = 1
	}
	opts := r.cellOpts(ctx)
	opts.ColorScale.ScaleAlpha(float32(alpha(p)))
	r.tex.Static().Draw(int(StaticFlash), ctx.Dst, opts)
	if saturated {
		ctx.Anim.finish()
	}
}

func (r *CellRenderer) drawIdle(ctx Context) {
	frame := idleFrameAt(ctx.Now, ctx.Anim.Start)
	opts := r.cellOpts(ctx)
	opts.ColorScale.ScaleAlpha(0.3)
	r.tex.Idle().Draw(frame, ctx.Dst, opts)
	r.tex.Static().Draw(int(StaticOutline), ctx.Dst, r.cellOpts(ctx))
}

// cellOpts returns fresh draw options scaling a texture onto the cell
// rectangle. Options are never shared between draws, so alpha and blend
// changes cannot leak from one paint call into the next.
func (r *CellRenderer) cellOpts(ctx Context) *ebiten.DrawImageOptions {
	opts := &ebiten.DrawImageOptions{}
	s := float64(r.tex.Size())
	opts.GeoM.Scale(ctx.W/s, ctx.H/s)
	opts.GeoM.Translate(ctx.X, ctx.Y)
	return opts
}

func (r *CellRenderer) fillAccent(ctx Context) {
	fillRect(ctx.Dst, ctx.X, ctx.Y, ctx.W, ctx.H, r.accent, ebiten.BlendSourceAtop)
}
