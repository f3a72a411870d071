package board

import (
	"fmt"
	"math/rand"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Params describes one mine layout request. Avoid is the first-revealed
// cell; generators must never place a mine there.
type Params struct {
	Width  int
	Height int
	Mines  int
	Seed   int64
	Avoid  Point
}

// Generator produces a mine layout. The same Params must always produce
// the same layout so a shared seed replays the same game.
type Generator interface {
	Generate(p Params) ([]Point, error)
}

// RandGenerator shuffles mine positions with a seeded source. The
// first-revealed cell and its neighbors stay clear whenever the board has
// room, so the opening reveal floods.
type RandGenerator struct{}

func (RandGenerator) Generate(p Params) ([]Point, error) {
	total := p.Width * p.Height
	if p.Mines < 1 || p.Mines >= total {
		return nil, fmt.Errorf("board: %d mines cannot fit a %dx%d board", p.Mines, p.Width, p.Height)
	}

	cleared := map[Point]bool{p.Avoid: true}
	if total-9 >= p.Mines+1 {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				cleared[Point{X: p.Avoid.X + dx, Y: p.Avoid.Y + dy}] = true
			}
		}
	}

	candidates := make([]Point, 0, total)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			if pt := (Point{X: x, Y: y}); !cleared[pt] {
				candidates = append(candidates, pt)
			}
		}
	}

	rng := rand.New(rand.NewSource(p.Seed))
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[:p.Mines], nil
}

// ScriptGenerator runs a tengo script to lay out mines. The script sees
// the globals width, height, mines, seed, avoid_x and avoid_y, and must
// assign cells, an array of [x, y] pairs. Layouts the board rejects
// (wrong count, duplicates, out of bounds, mine on the first reveal)
// surface as errors from Generate.
type ScriptGenerator struct {
	compiled *tengo.Compiled
}

// NewScriptGenerator compiles src once; Generate reruns it per layout.
func NewScriptGenerator(src []byte) (*ScriptGenerator, error) {
	script := tengo.NewScript(src)
	_ = script.Add("width", 0)
	_ = script.Add("height", 0)
	_ = script.Add("mines", 0)
	_ = script.Add("seed", 0)
	_ = script.Add("avoid_x", 0)
	_ = script.Add("avoid_y", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("board: compile generator script: %w", err)
	}
	return &ScriptGenerator{compiled: compiled}, nil
}

func (g *ScriptGenerator) Generate(p Params) ([]Point, error) {
	if err := g.compiled.Set("width", p.Width); err != nil {
		return nil, err
	}
	if err := g.compiled.Set("height", p.Height); err != nil {
		return nil, err
	}
	if err := g.compiled.Set("mines", p.Mines); err != nil {
		return nil, err
	}
	if err := g.compiled.Set("seed", p.Seed); err != nil {
		return nil, err
	}
	if err := g.compiled.Set("avoid_x", p.Avoid.X); err != nil {
		return nil, err
	}
	if err := g.compiled.Set("avoid_y", p.Avoid.Y); err != nil {
		return nil, err
	}
	if err := g.compiled.Run(); err != nil {
		return nil, fmt.Errorf("board: run generator script: %w", err)
	}

	v := g.compiled.Get("cells")
	if v == nil || v.IsUndefined() {
		return nil, fmt.Errorf("board: generator script did not set cells")
	}
	return pointsFromScript(v.Object())
}

func pointsFromScript(obj tengo.Object) ([]Point, error) {
	items, ok := arrayItems(obj)
	if !ok {
		return nil, fmt.Errorf("board: generator script cells must be an array, got %s", obj.TypeName())
	}
	pts := make([]Point, 0, len(items))
	for i, item := range items {
		pair, ok := arrayItems(item)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("board: cells[%d] must be an [x, y] pair", i)
		}
		x, okX := intValue(pair[0])
		y, okY := intValue(pair[1])
		if !okX || !okY {
			return nil, fmt.Errorf("board: cells[%d] must hold ints", i)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

func arrayItems(obj tengo.Object) ([]tengo.Object, bool) {
	switch v := obj.(type) {
	case *tengo.Array:
		return v.Value, true
	case *tengo.ImmutableArray:
		return v.Value, true
	}
	return nil, false
}

func intValue(obj tengo.Object) (int, bool) {
	if v, ok := obj.(*tengo.Int); ok {
		return int(v.Value), true
	}
	return 0, false
}
