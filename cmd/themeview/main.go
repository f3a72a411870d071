// Command themeview renders a theme's full static frame strip alongside
// the looping idle and flagged cells, so a theme edit can be proofed
// without playing a game.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/minesweeper/config"
	"github.com/milk9111/minesweeper/render"
)

const pad = 12

type viewer struct {
	palette  render.Palette
	textures *render.Textures
	renderer *render.CellRenderer
	anim     *render.Anim

	now           float64
	big           int
	width, height int
	layer         *ebiten.Image
}

func newViewer(cfg config.Config) (*viewer, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	size := cfg.Window.CellSize
	tex := render.NewTextures(size, palette)

	v := &viewer{
		palette:  palette,
		textures: tex,
		renderer: render.NewCellRenderer(tex),
		anim:     render.NewAnim(render.KindIdle, 0),
		big:      size * 3,
	}
	v.width = pad + tex.Static().FrameCount()*(size+pad)
	if wide := pad + 2*(v.big+pad); v.width < wide {
		v.width = wide
	}
	v.height = pad + size + pad + v.big + pad
	v.layer = ebiten.NewImage(v.width, v.height)
	return v, nil
}

func (v *viewer) Update() error {
	v.now += 1000.0 / 60
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.palette.Background)

	// Same trick as the game: paint onto a transparent layer so the
	// flagged tint's destination-alpha blend behaves.
	v.layer.Clear()

	size := v.textures.Size()
	for i := 0; i < v.textures.Static().FrameCount(); i++ {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(pad+i*(size+pad)), pad)
		v.textures.Static().Draw(i, v.layer, op)
	}

	row := float64(pad + size + pad)
	v.renderer.Idle(v.cellCtx(float64(pad), row))
	v.renderer.Flagged(v.cellCtx(float64(pad+v.big+pad), row))

	screen.DrawImage(v.layer, nil)
}

func (v *viewer) cellCtx(x, y float64) render.Context {
	return render.Context{
		Now:  v.now,
		Dst:  v.layer,
		X:    x,
		Y:    y,
		W:    float64(v.big),
		H:    float64(v.big),
		Anim: v.anim,
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

func main() {
	configPath := flag.String("config", "", "YAML config path; empty uses the built-in defaults")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config %s: %v", *configPath, err)
		}
		cfg = c
	}

	v, err := newViewer(cfg)
	if err != nil {
		log.Fatalf("build viewer: %v", err)
	}

	ebiten.SetWindowTitle(cfg.Window.Title + " theme")
	ebiten.SetWindowSize(v.width, v.height)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
