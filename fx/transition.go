package fx

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	phaseIdle = iota
	phaseOut
	phaseIn
)

// Transition fades the screen out, swaps the game underneath at the
// midpoint, and fades back in. The swap callback fires exactly once per
// Start.
type Transition struct {
	phase    int
	frames   int
	duration int
	onSwap   func()
	overlay  *ebiten.Image
}

// NewTransition returns a transition spending duration ticks on each side
// of the swap.
func NewTransition(duration int) *Transition {
	if duration < 1 {
		duration = 1
	}
	overlay := ebiten.NewImage(1, 1)
	overlay.Fill(color.White)
	return &Transition{duration: duration, overlay: overlay}
}

// Active reports whether a fade is running. The driver skips input while
// the screen is covered.
func (t *Transition) Active() bool { return t.phase != phaseIdle }

// Start begins a fade. A transition already running keeps its callback;
// the new one is dropped.
func (t *Transition) Start(onSwap func()) {
	if t.Active() {
		return
	}
	t.phase = phaseOut
	t.frames = 0
	t.onSwap = onSwap
}

// Update advances one tick and reports whether the fade still covers the
// game. The swap callback reference is cleared before it runs, so a
// callback that starts another transition cannot fire twice.
func (t *Transition) Update() bool {
	if !t.Active() {
		return false
	}
	t.frames++
	if t.frames < t.duration {
		return true
	}
	t.frames = 0
	switch t.phase {
	case phaseOut:
		t.phase = phaseIn
		if cb := t.onSwap; cb != nil {
			t.onSwap = nil
			cb()
		}
	case phaseIn:
		t.phase = phaseIdle
	}
	return t.Active()
}

// Draw covers screen with clr at the current fade strength.
func (t *Transition) Draw(screen *ebiten.Image, clr color.Color) {
	if !t.Active() {
		return
	}
	var alpha float64
	switch t.phase {
	case phaseOut:
		alpha = float64(t.frames) / float64(t.duration)
		if alpha > 1 {
			alpha = 1
		}
	case phaseIn:
		alpha = 1 - float64(t.frames)/float64(t.duration)
		if alpha < 0 {
			alpha = 0
		}
	}
	if alpha <= 0 {
		return
	}

	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(t.overlay, op)
}
