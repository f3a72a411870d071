package board

import "fmt"

// Point is a cell coordinate, column x and row y from the top left.
type Point struct {
	X, Y int
}

// Cell is one square of the minefield.
type Cell struct {
	// Mine marks the cell as holding a mine.
	Mine bool
	// Revealed marks the cell as uncovered.
	Revealed bool
	// Flagged marks the cell with a player flag. Flagged cells are never
	// revealed by floods or chords.
	Flagged bool
	// Touching is the number of mines in the eight surrounding cells.
	Touching int
}

// State is the lifecycle of one game.
type State int

const (
	StatePlaying State = iota
	StateWon
	StateLost
)

// Config describes one game setup. Gen defaults to RandGenerator.
type Config struct {
	Width  int
	Height int
	Mines  int
	Seed   int64
	Gen    Generator
}

// Board is one game of minesweeper. Mines are placed lazily on the first
// reveal so the first uncovered cell is never a mine.
type Board struct {
	width, height int
	mines         int
	seed          int64
	gen           Generator
	cells         []Cell
	state         State
	placed        bool
	revealedSafe  int
	flags         int
}

// New validates cfg and returns a fresh board with every cell covered.
func New(cfg Config) (*Board, error) {
	if cfg.Width < 2 || cfg.Height < 2 {
		return nil, fmt.Errorf("board: %dx%d is too small", cfg.Width, cfg.Height)
	}
	if cfg.Mines < 1 || cfg.Mines >= cfg.Width*cfg.Height {
		return nil, fmt.Errorf("board: %d mines cannot fit a %dx%d board", cfg.Mines, cfg.Width, cfg.Height)
	}
	gen := cfg.Gen
	if gen == nil {
		gen = RandGenerator{}
	}
	return &Board{
		width:  cfg.Width,
		height: cfg.Height,
		mines:  cfg.Mines,
		seed:   cfg.Seed,
		gen:    gen,
		cells:  make([]Cell, cfg.Width*cfg.Height),
		state:  StatePlaying,
	}, nil
}

func (b *Board) Width() int   { return b.width }
func (b *Board) Height() int  { return b.height }
func (b *Board) Mines() int   { return b.mines }
func (b *Board) Seed() int64  { return b.seed }
func (b *Board) State() State { return b.state }

// MinesLeft is the mine count minus placed flags. It goes negative when
// the player has overflagged.
func (b *Board) MinesLeft() int { return b.mines - b.flags }

// InBounds reports whether (x, y) is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns a copy of the cell at (x, y).
func (b *Board) At(x, y int) Cell {
	return b.cells[b.idx(x, y)]
}

// EachCell calls fn for every cell in row-major order.
func (b *Board) EachCell(fn func(x, y int, c Cell)) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			fn(x, y, b.cells[y*b.width+x])
		}
	}
}

// Reveal uncovers the cell at (x, y) and returns every point it uncovered,
// including flood-filled neighbors of a zero cell and, on a loss, every
// unflagged mine. The first reveal of a game places the mines, which is
// the only call that can fail.
func (b *Board) Reveal(x, y int) ([]Point, error) {
	if b.state != StatePlaying || !b.InBounds(x, y) {
		return nil, nil
	}
	c := b.At(x, y)
	if c.Revealed || c.Flagged {
		return nil, nil
	}
	if !b.placed {
		if err := b.place(Point{X: x, Y: y}); err != nil {
			return nil, err
		}
	}
	return b.reveal(x, y), nil
}

// ToggleFlag flips the flag on a covered cell and reports whether anything
// changed. Revealed cells and finished games are untouched.
func (b *Board) ToggleFlag(x, y int) bool {
	if b.state != StatePlaying || !b.InBounds(x, y) {
		return false
	}
	c := &b.cells[b.idx(x, y)]
	if c.Revealed {
		return false
	}
	c.Flagged = !c.Flagged
	if c.Flagged {
		b.flags++
	} else {
		b.flags--
	}
	return true
}

// CanChord reports whether (x, y) is a revealed number whose flagged
// neighbor count matches it, with at least one covered neighbor left to
// uncover.
func (b *Board) CanChord(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	c := b.At(x, y)
	if !c.Revealed || c.Mine || c.Touching == 0 {
		return false
	}
	flagged, covered := 0, 0
	for _, n := range b.neighbors(x, y) {
		nc := b.At(n.X, n.Y)
		switch {
		case nc.Flagged:
			flagged++
		case !nc.Revealed:
			covered++
		}
	}
	return flagged == c.Touching && covered > 0
}

// Chord uncovers every unflagged covered neighbor of a chordable number
// and returns the uncovered points. A wrongly placed flag makes this lose
// the game just like revealing the mine directly.
func (b *Board) Chord(x, y int) []Point {
	if b.state != StatePlaying || !b.CanChord(x, y) {
		return nil
	}
	var out []Point
	for _, n := range b.neighbors(x, y) {
		nc := b.At(n.X, n.Y)
		if nc.Revealed || nc.Flagged {
			continue
		}
		out = append(out, b.reveal(n.X, n.Y)...)
	}
	return out
}

func (b *Board) idx(x, y int) int { return y*b.width + x }

func (b *Board) neighbors(x, y int) []Point {
	out := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.InBounds(x+dx, y+dy) {
				out = append(out, Point{X: x + dx, Y: y + dy})
			}
		}
	}
	return out
}

// place asks the generator for a layout avoiding the first-revealed cell,
// validates it, and computes every cell's touching count.
func (b *Board) place(avoid Point) error {
	pts, err := b.gen.Generate(Params{
		Width:  b.width,
		Height: b.height,
		Mines:  b.mines,
		Seed:   b.seed,
		Avoid:  avoid,
	})
	if err != nil {
		return err
	}
	if len(pts) != b.mines {
		return fmt.Errorf("board: generator produced %d mines, want %d", len(pts), b.mines)
	}
	seen := make(map[Point]bool, len(pts))
	for _, p := range pts {
		if !b.InBounds(p.X, p.Y) {
			return fmt.Errorf("board: generator placed a mine at %d,%d outside %dx%d", p.X, p.Y, b.width, b.height)
		}
		if p == avoid {
			return fmt.Errorf("board: generator placed a mine on the first reveal at %d,%d", p.X, p.Y)
		}
		if seen[p] {
			return fmt.Errorf("board: generator placed two mines at %d,%d", p.X, p.Y)
		}
		seen[p] = true
		b.cells[b.idx(p.X, p.Y)].Mine = true
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.cells[b.idx(x, y)].Mine {
				continue
			}
			count := 0
			for _, n := range b.neighbors(x, y) {
				if b.cells[b.idx(n.X, n.Y)].Mine {
					count++
				}
			}
			b.cells[b.idx(x, y)].Touching = count
		}
	}
	b.placed = true
	return nil
}

// reveal uncovers one placed cell, flooding out from zero cells and
// settling the game state. Revealing a mine uncovers the rest of the mines
// so the driver can show them.
func (b *Board) reveal(x, y int) []Point {
	if b.state != StatePlaying {
		return nil
	}
	c := &b.cells[b.idx(x, y)]
	if c.Revealed || c.Flagged {
		return nil
	}
	c.Revealed = true
	if c.Mine {
		b.state = StateLost
		return append([]Point{{X: x, Y: y}}, b.revealMines()...)
	}

	b.revealedSafe++
	out := []Point{{X: x, Y: y}}
	if c.Touching == 0 {
		queue := []Point{{X: x, Y: y}}
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, n := range b.neighbors(p.X, p.Y) {
				nc := &b.cells[b.idx(n.X, n.Y)]
				if nc.Revealed || nc.Flagged || nc.Mine {
					continue
				}
				nc.Revealed = true
				b.revealedSafe++
				out = append(out, n)
				if nc.Touching == 0 {
					queue = append(queue, n)
				}
			}
		}
	}

	if b.revealedSafe == b.width*b.height-b.mines {
		b.state = StateWon
	}
	return out
}

func (b *Board) revealMines() []Point {
	var out []Point
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := &b.cells[b.idx(x, y)]
			if !c.Mine || c.Revealed || c.Flagged {
				continue
			}
			c.Revealed = true
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}
