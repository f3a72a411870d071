package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/minesweeper/board"
	"github.com/milk9111/minesweeper/config"
	"github.com/milk9111/minesweeper/fx"
	"github.com/milk9111/minesweeper/render"
	"github.com/milk9111/minesweeper/stats"
)

const (
	tickMillis = 1000.0 / 60

	hudHeight       = 44
	transitionTicks = 18
)

// Game is the render-loop driver: it owns the board, the texture registry,
// the per-cell view states and the shell UI, and feeds the cell renderer a
// millisecond timeline advanced once per 60Hz tick.
type Game struct {
	cfg     config.Config
	cfgPath string
	palette render.Palette

	textures *render.Textures
	renderer *render.CellRenderer

	board *board.Board
	setup config.BoardSetup
	gen   board.Generator
	seed  int64
	views []cellView
	rng   *rand.Rand

	now      float64
	started  bool
	startNow float64
	elapsed  time.Duration
	recorded bool

	width, height int
	boardX        int
	boardY        int
	cell          int
	boardLayer    *ebiten.Image

	paused bool
	quit   bool
	ui     *pauseUI
	hud    *hud
	clip   bool

	transition *fx.Transition
	debris     *fx.Debris

	store   *stats.Store
	best    time.Duration
	hasBest bool

	watcher *config.Watcher
}

// NewGame builds the driver for one process run. store and watcher may be
// nil; clip reports whether the clipboard initialized.
func NewGame(cfg config.Config, cfgPath string, gen board.Generator, seed int64, store *stats.Store, watcher *config.Watcher, clip bool) (*Game, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		cfgPath: cfgPath,
		palette: palette,
		gen:     gen,
		cell:    cfg.Window.CellSize,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		store:   store,
		watcher: watcher,
		clip:    clip,
	}
	g.textures = render.NewTextures(g.cell, palette)
	g.renderer = render.NewCellRenderer(g.textures)
	g.hud = newHUD()
	g.ui = newPauseUI(g)
	g.transition = fx.NewTransition(transitionTicks)

	if err := g.newGame(cfg.Board, seed); err != nil {
		return nil, err
	}
	return g, nil
}

// newGame replaces the board and every piece of per-game state. A zero
// seed picks one from the clock so every restart is a fresh layout.
func (g *Game) newGame(setup config.BoardSetup, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b, err := board.New(board.Config{
		Width:  setup.Width,
		Height: setup.Height,
		Mines:  setup.Mines,
		Seed:   seed,
		Gen:    g.gen,
	})
	if err != nil {
		return err
	}

	g.board = b
	g.setup = setup
	g.seed = seed
	g.views = make([]cellView, setup.Width*setup.Height)
	for i := range g.views {
		g.views[i].anim = render.NewAnim(render.KindIdle, 0)
	}
	g.started = false
	g.recorded = false
	g.elapsed = 0

	margin := g.cfg.Window.Margin
	g.boardX = margin
	g.boardY = margin + hudHeight
	g.width = margin*2 + setup.Width*g.cell
	g.height = margin*2 + hudHeight + setup.Height*g.cell
	g.boardLayer = ebiten.NewImage(setup.Width*g.cell, setup.Height*g.cell)
	g.debris = fx.NewDebris(float64(g.cell)*40, float64(g.height))
	ebiten.SetWindowSize(g.width, g.height)

	g.refreshBest()
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.now += tickMillis
	g.pollConfig()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}
	if g.transition.Update() {
		return nil
	}
	g.debris.Update(1.0 / 60)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart(g.setup)
		return nil
	}
	if g.board.State() == board.StatePlaying {
		if g.started {
			g.elapsed = time.Duration(g.now-g.startNow) * time.Millisecond
		}
		g.handleClick()
	}
	return nil
}

// restart fades the screen out, swaps in a fresh board at the midpoint and
// fades back in.
func (g *Game) restart(setup config.BoardSetup) {
	g.paused = false
	g.transition.Start(func() {
		if err := g.newGame(setup, 0); err != nil {
			log.Printf("new game: %v", err)
		}
	})
}

func (g *Game) handleClick() {
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	right := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y, ok := g.cellAt(mx, my)
	if !ok {
		return
	}

	if right {
		g.board.ToggleFlag(x, y)
		return
	}

	var revealed []board.Point
	if g.board.At(x, y).Revealed {
		revealed = g.board.Chord(x, y)
	} else {
		var err error
		revealed, err = g.board.Reveal(x, y)
		if err != nil {
			log.Printf("reveal %d,%d: %v", x, y, err)
			return
		}
		if len(revealed) > 0 && !g.started {
			g.started = true
			g.startNow = g.now
		}
	}

	for _, p := range revealed {
		g.views[g.idx(p.X, p.Y)].reveal(g)
		if g.board.At(p.X, p.Y).Mine {
			g.debris.Burst(
				float64(g.boardX+p.X*g.cell), float64(g.boardY+p.Y*g.cell),
				float64(g.cell), g.palette.Mine, g.rng)
		}
	}
	g.recordResult()
}

// recordResult stores a finished game once, on the move that settled it.
func (g *Game) recordResult() {
	if g.board.State() == board.StatePlaying || g.recorded {
		return
	}
	g.recorded = true
	if g.store == nil {
		return
	}
	err := g.store.Record(stats.Result{
		Difficulty: difficultyName(g.setup),
		Won:        g.board.State() == board.StateWon,
		Duration:   g.elapsed,
		Seed:       g.seed,
	})
	if err != nil {
		log.Printf("%v", err)
		return
	}
	g.refreshBest()
}

func (g *Game) refreshBest() {
	g.best, g.hasBest = 0, false
	if g.store == nil {
		return
	}
	best, ok, err := g.store.Best(difficultyName(g.setup))
	if err != nil {
		log.Printf("%v", err)
		return
	}
	g.best, g.hasBest = best, ok
}

// pollConfig drains the config watcher without blocking the tick and
// rebuilds the texture registry when the theme on disk changed. A broken
// edit keeps the previous theme.
func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case _, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		g.reloadTheme()
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("config watch: %v", err)
		}
	default:
	}
}

func (g *Game) reloadTheme() {
	cfg, err := config.Load(g.cfgPath)
	if err != nil {
		log.Printf("config reload: %v (keeping previous theme)", err)
		return
	}
	palette, err := cfg.Palette()
	if err != nil {
		log.Printf("config reload: %v (keeping previous theme)", err)
		return
	}
	g.cfg.Theme = cfg.Theme
	g.palette = palette
	g.textures = render.NewTextures(g.cell, palette)
	g.renderer = render.NewCellRenderer(g.textures)
	log.Printf("theme reloaded from %s", g.cfgPath)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	// Cells paint onto a transparent layer so destination-alpha composites
	// only touch pixels the cells themselves drew.
	g.boardLayer.Clear()
	g.board.EachCell(g.drawCell)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.boardX), float64(g.boardY))
	screen.DrawImage(g.boardLayer, op)

	g.debris.Draw(screen)
	g.hud.Draw(screen, g)
	if g.paused {
		g.ui.Draw(screen)
	}
	g.transition.Draw(screen, g.palette.Background)
}

func (g *Game) drawCell(x, y int, c board.Cell) {
	v := &g.views[g.idx(x, y)]
	ctx := render.Context{
		Now:  g.now,
		Dst:  g.boardLayer,
		X:    float64(x * g.cell),
		Y:    float64(y * g.cell),
		W:    float64(g.cell),
		H:    float64(g.cell),
		Anim: v.anim,
	}
	switch {
	case !c.Revealed && c.Flagged:
		g.renderer.Flagged(ctx)
	case !c.Revealed:
		g.renderer.Idle(ctx)
	default:
		if c.Mine {
			g.renderer.Mine(ctx)
		} else {
			g.renderer.Number(ctx, c.Touching, g.board.CanChord(x, y))
		}
		switch v.state {
		case viewFlashIn:
			g.renderer.FlashIn(ctx)
		case viewFlashOut:
			g.renderer.FlashOut(ctx)
		}
	}
}

// cellAt maps a window position onto board coordinates.
func (g *Game) cellAt(mx, my int) (x, y int, ok bool) {
	x = (mx - g.boardX) / g.cell
	y = (my - g.boardY) / g.cell
	if mx < g.boardX || my < g.boardY || !g.board.InBounds(x, y) {
		return 0, 0, false
	}
	return x, y, true
}

func (g *Game) idx(x, y int) int { return y*g.board.Width() + x }

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// difficultyName keys stats records. Custom setups share one bucket; best
// times only mean something on the fixed presets anyway.
func difficultyName(setup config.BoardSetup) string {
	if _, ok := config.Preset(setup.Preset); ok {
		return setup.Preset
	}
	return "custom"
}
