package main

import "github.com/milk9111/minesweeper/render"

// viewState is what a cell currently shows, which lags the board state
// while the reveal flash plays out.
type viewState int

const (
	// viewCovered shows the idle pulse (or the flagged tint over it).
	viewCovered viewState = iota
	// viewFlashIn overlays the revealed content with the flash fading up.
	viewFlashIn
	// viewFlashOut fades the flash back off the revealed content.
	viewFlashOut
	// viewSettled shows the revealed content alone.
	viewSettled
)

// cellView is the presentation side of one board cell. The board decides
// what a cell is; the view decides which animation is showing it.
type cellView struct {
	state viewState
	anim  *render.Anim
}

// clock is the one slice of the driver the view transitions need: the
// current timeline position for starting the next animation.
type clock interface {
	nowMillis() float64
}

func (g *Game) nowMillis() float64 { return g.now }

// reveal starts the flash-in over the freshly uncovered cell. The chained
// completion callbacks run synchronously inside the paint call that
// saturates each flash, so the flash-out starts on the exact frame the
// flash-in lands.
func (v *cellView) reveal(c clock) {
	if v.state != viewCovered {
		return
	}
	v.state = viewFlashIn
	v.anim = render.NewAnimDone(render.KindFlashIn, c.nowMillis(), func() {
		v.state = viewFlashOut
		v.anim = render.NewAnimDone(render.KindFlashOut, c.nowMillis(), func() {
			v.state = viewSettled
			v.anim = nil
		})
	})
}
