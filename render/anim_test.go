package render

import (
	"image/color"
	"testing"

	"github.com/fogleman/ease"
	"github.com/hajimehoshi/ebiten/v2"
)

const testTextureSize = 8

func testPalette() Palette {
	p := Palette{
		Background: color.RGBA{A: 0xff},
		CellBase:   color.RGBA{R: 0x20, G: 0x24, B: 0x30, A: 0xff},
		CellGlow:   color.RGBA{R: 0x3a, G: 0x46, B: 0x5a, A: 0xff},
		Outline:    color.RGBA{R: 0x50, G: 0x58, B: 0x68, A: 0xff},
		Revealed:   color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff},
		Accent:     color.RGBA{R: 0xff, G: 0x8a, B: 0x00, A: 0xff},
		Flash:      color.RGBA{R: 0xf0, G: 0xf4, B: 0xff, A: 0xff},
		Mine:       color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff},
	}
	for i := range p.Digits {
		p.Digits[i] = color.RGBA{R: uint8(0x30 + i*0x18), G: 0x80, B: 0xc0, A: 0xff}
	}
	return p
}

func newTestRenderer() (*CellRenderer, *Textures) {
	tex := NewTextures(testTextureSize, testPalette())
	return NewCellRenderer(tex), tex
}

// cellCtx places every test paint on the same cell rect so expected
// geometry is shared across cases.
func cellCtx(now float64, rec *drawRecorder, anim *Anim) Context {
	return Context{Now: now, Dst: rec, X: 12, Y: 20, W: 24, H: 24, Anim: anim}
}

func cellGeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(24.0/testTextureSize, 24.0/testTextureSize)
	g.Translate(12, 20)
	return g
}

func fillGeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(24, 24)
	g.Translate(12, 20)
	return g
}

func alphaScale(a float32) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleAlpha(a)
	return cs
}

func colorScaleOf(c color.Color) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleWithColor(c)
	return cs
}

func TestIdleFrameSelection(t *testing.T) {
	cases := []struct {
		name  string
		start float64
		now   float64
		frame int
	}{
		{"at_start", 1000, 1000, 0},
		{"quarter", 1000, 2250, 75},
		{"halfway", 1000, 3500, 150},
		{"wraps_at_period", 1000, 6000, 0},
		{"wraps_past_period", 1000, 8500, 150},
	}

	r, tex := newTestRenderer()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := &drawRecorder{}
			r.Idle(cellCtx(c.now, rec, NewAnim(KindIdle, c.start)))

			if len(rec.calls) != 2 {
				t.Fatalf("expected pulse and outline draws, got %d", len(rec.calls))
			}
			if rec.calls[0].img != tex.Idle().Frame(c.frame) {
				t.Fatalf("expected idle frame %d", c.frame)
			}
			if rec.calls[1].img != tex.Static().Frame(int(StaticOutline)) {
				t.Fatalf("expected outline frame on top")
			}
		})
	}
}

func TestIdleDrawComposition(t *testing.T) {
	r, _ := newTestRenderer()
	rec := &drawRecorder{}
	r.Idle(cellCtx(1000, rec, NewAnim(KindIdle, 1000)))

	if len(rec.calls) != 2 {
		t.Fatalf("expected 2 draws, got %d", len(rec.calls))
	}
	pulse, outline := rec.calls[0], rec.calls[1]
	if pulse.geom != cellGeoM() || outline.geom != cellGeoM() {
		t.Fatalf("expected both draws placed on the cell rect")
	}
	if pulse.color != alphaScale(0.3) {
		t.Fatalf("expected pulse at 30%% opacity")
	}
	if outline.color != (ebiten.ColorScale{}) {
		t.Fatalf("expected outline at full opacity")
	}
	if pulse.blend != (ebiten.Blend{}) {
		t.Fatalf("expected default blend for the pulse")
	}
}

func TestIdleDeterministicAcrossCalls(t *testing.T) {
	r, _ := newTestRenderer()

	render := func() []drawCall {
		rec := &drawRecorder{}
		r.Idle(cellCtx(4321, rec, NewAnim(KindIdle, 1000)))
		return rec.calls
	}

	first, second := render(), render()
	if len(first) != len(second) {
		t.Fatalf("expected identical draw counts, got %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d differs between identical timestamps", i)
		}
	}
}

func TestIdleBeforeStartTripsCacheBounds(t *testing.T) {
	r, _ := newTestRenderer()
	rec := &drawRecorder{}
	mustPanic(t, func() {
		r.Idle(cellCtx(900, rec, NewAnim(KindIdle, 1000)))
	})
}

func TestFlaggedAddsAccentTint(t *testing.T) {
	r, tex := newTestRenderer()
	rec := &drawRecorder{}
	r.Flagged(cellCtx(3500, rec, NewAnim(KindFlagged, 1000)))

	if len(rec.calls) != 3 {
		t.Fatalf("expected pulse, outline and tint draws, got %d", len(rec.calls))
	}
	if rec.calls[0].img != tex.Idle().Frame(150) {
		t.Fatalf("expected flagged cell to reuse the idle pulse")
	}
	tint := rec.calls[2]
	if tint.img != whitePixel {
		t.Fatalf("expected tint to draw the fill texture")
	}
	if tint.blend != ebiten.BlendSourceAtop {
		t.Fatalf("expected tint to keep destination alpha")
	}
	if tint.color != colorScaleOf(testPalette().Accent) {
		t.Fatalf("expected tint in the accent color")
	}
	if tint.geom != fillGeoM() {
		t.Fatalf("expected tint to cover the cell rect")
	}
}

func TestNumberDrawsTouchingFrame(t *testing.T) {
	r, tex := newTestRenderer()

	for touching := 0; touching <= 8; touching++ {
		rec := &drawRecorder{}
		r.Number(cellCtx(0, rec, nil), touching, false)

		if len(rec.calls) != 1 {
			t.Fatalf("touching %d: expected 1 draw, got %d", touching, len(rec.calls))
		}
		if rec.calls[0].img != tex.Static().Frame(touching) {
			t.Fatalf("touching %d: wrong static frame", touching)
		}
	}
}

func TestNumberChordTint(t *testing.T) {
	r, tex := newTestRenderer()
	rec := &drawRecorder{}
	r.Number(cellCtx(0, rec, nil), 3, true)

	if len(rec.calls) != 2 {
		t.Fatalf("expected number and tint draws, got %d", len(rec.calls))
	}
	if rec.calls[0].img != tex.Static().Frame(3) {
		t.Fatalf("expected digit frame under the tint")
	}
	if rec.calls[1].blend != ebiten.BlendSourceAtop {
		t.Fatalf("expected chord tint to keep destination alpha")
	}
}

func TestFlashInTiming(t *testing.T) {
	cases := []struct {
		name  string
		now   float64
		draws int
		alpha float64
		done  bool
	}{
		{"before_start", 980, 0, 0, false},
		{"at_start", 1000, 1, ease.OutQuad(0), false},
		{"halfway", 1160, 1, ease.OutQuad(0.5), false},
		{"at_end", 1320, 1, ease.OutQuad(1), true},
		{"past_end", 2000, 1, ease.OutQuad(1), true},
	}

	r, tex := newTestRenderer()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fired := 0
			anim := NewAnimDone(KindFlashIn, 1000, func() { fired++ })

			rec := &drawRecorder{}
			r.FlashIn(cellCtx(c.now, rec, anim))

			if len(rec.calls) != c.draws {
				t.Fatalf("expected %d draws, got %d", c.draws, len(rec.calls))
			}
			if c.draws == 1 {
				call := rec.calls[0]
				if call.img != tex.Static().Frame(int(StaticFlash)) {
					t.Fatalf("expected the flash frame")
				}
				if call.color != alphaScale(float32(c.alpha)) {
					t.Fatalf("expected alpha %v", c.alpha)
				}
			}
			if (fired == 1) != c.done || anim.Done() != c.done {
				t.Fatalf("expected done=%v, fired %d times", c.done, fired)
			}
		})
	}
}

func TestFlashDoneFiresOnce(t *testing.T) {
	r, _ := newTestRenderer()
	fired := 0
	anim := NewAnimDone(KindFlashIn, 1000, func() { fired++ })

	rec := &drawRecorder{}
	r.FlashIn(cellCtx(1500, rec, anim))
	r.FlashIn(cellCtx(1600, rec, anim))
	r.FlashIn(cellCtx(1700, rec, anim))

	if fired != 1 {
		t.Fatalf("expected completion to fire once, got %d", fired)
	}
	if !anim.Done() {
		t.Fatalf("expected Done after saturation")
	}
	if len(rec.calls) != 3 {
		t.Fatalf("expected saturated frames to keep painting, got %d draws", len(rec.calls))
	}
}

func TestFlashDoneReentrantCallback(t *testing.T) {
	r, _ := newTestRenderer()

	fired := 0
	rec := &drawRecorder{}
	var anim *Anim
	anim = NewAnimDone(KindFlashIn, 1000, func() {
		fired++
		r.FlashIn(cellCtx(2000, rec, anim))
	})

	r.FlashIn(cellCtx(2000, rec, anim))

	if fired != 1 {
		t.Fatalf("expected reentrant paint not to refire completion, got %d", fired)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("expected both paints to draw, got %d", len(rec.calls))
	}
}

func TestFlashWithoutCallback(t *testing.T) {
	r, _ := newTestRenderer()
	rec := &drawRecorder{}
	anim := NewAnim(KindFlashIn, 1000)

	r.FlashIn(cellCtx(5000, rec, anim))

	if anim.Done() {
		t.Fatalf("expected no completion without a callback")
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected flash to paint, got %d draws", len(rec.calls))
	}
}

func TestFlashOutFadesMonotonically(t *testing.T) {
	r, tex := newTestRenderer()

	fired := 0
	anim := NewAnimDone(KindFlashOut, 1000, func() { fired++ })

	rec := &drawRecorder{}
	var alphas []float64
	for i := 0; i <= 8; i++ {
		now := 1000 + float64(i)*40
		r.FlashOut(cellCtx(now, rec, anim))

		p := (now - 1000) / flashDuration
		if p > 1 {
			p = 1
		}
		alphas = append(alphas, 1-ease.InOutQuad(p))
	}

	if len(rec.calls) != len(alphas) {
		t.Fatalf("expected %d draws, got %d", len(alphas), len(rec.calls))
	}
	for i, call := range rec.calls {
		if call.img != tex.Static().Frame(int(StaticFlash)) {
			t.Fatalf("draw %d: expected the flash frame", i)
		}
		if call.color != alphaScale(float32(alphas[i])) {
			t.Fatalf("draw %d: expected alpha %v", i, alphas[i])
		}
		if i > 0 && alphas[i] >= alphas[i-1] {
			t.Fatalf("expected strictly fading alpha, got %v then %v", alphas[i-1], alphas[i])
		}
	}
	if alphas[0] != 1 || alphas[len(alphas)-1] != 0 {
		t.Fatalf("expected fade from 1 to 0, got %v to %v", alphas[0], alphas[len(alphas)-1])
	}
	if fired != 1 {
		t.Fatalf("expected completion at full fade, got %d", fired)
	}
}

func TestFlashOutBeforeStart(t *testing.T) {
	r, _ := newTestRenderer()
	fired := 0
	anim := NewAnimDone(KindFlashOut, 1000, func() { fired++ })

	rec := &drawRecorder{}
	r.FlashOut(cellCtx(500, rec, anim))

	if len(rec.calls) != 0 {
		t.Fatalf("expected nothing painted before start, got %d draws", len(rec.calls))
	}
	if fired != 0 || anim.Done() {
		t.Fatalf("expected completion untouched before start")
	}
}
