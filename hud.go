package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/minesweeper/board"
)

// hud draws the status strip above the board: mines left, the clock, the
// best time for the current difficulty and the seed.
type hud struct {
	face ebtext.Face
}

func newHUD() *hud {
	return &hud{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) Draw(screen *ebiten.Image, g *Game) {
	y := float64(g.cfg.Window.Margin) + hudHeight/2

	h.text(screen, fmt.Sprintf("Mines %d", g.board.MinesLeft()), float64(g.boardX), y, ebtext.AlignStart, g)
	h.text(screen, formatClock(g.elapsed), float64(g.width)/2, y, ebtext.AlignCenter, g)

	right := fmt.Sprintf("Seed %d", g.seed)
	if g.hasBest {
		right = fmt.Sprintf("Best %s   %s", formatClock(g.best), right)
	}
	h.text(screen, right, float64(g.width-g.boardX), y, ebtext.AlignEnd, g)

	switch g.board.State() {
	case board.StateWon:
		h.text(screen, "Cleared! R deals again", float64(g.width)/2, y+16, ebtext.AlignCenter, g)
	case board.StateLost:
		h.text(screen, "Boom. R deals again", float64(g.width)/2, y+16, ebtext.AlignCenter, g)
	}
}

func (h *hud) text(screen *ebiten.Image, s string, x, y float64, align ebtext.Align, g *Game) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(g.palette.Flash)
	op.PrimaryAlign = align
	op.SecondaryAlign = ebtext.AlignCenter
	ebtext.Draw(screen, s, h.face, op)
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
