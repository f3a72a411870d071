package board

import (
	"strings"
	"testing"
)

const rowFillScript = `
cells := []
x := 0
y := 0
for len(cells) < mines {
	if !(x == avoid_x && y == avoid_y) {
		cells = append(cells, [x, y])
	}
	x += 1
	if x >= width {
		x = 0
		y += 1
	}
}
`

func TestScriptGeneratorLayout(t *testing.T) {
	g, err := NewScriptGenerator([]byte(rowFillScript))
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	pts, err := g.Generate(Params{Width: 4, Height: 3, Mines: 3, Seed: 1, Avoid: Point{X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	want := []Point{{0, 0}, {2, 0}, {3, 0}}
	if len(pts) != len(want) {
		t.Fatalf("expected %d mines, got %d", len(want), len(pts))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("mine %d: expected %v, got %v", i, want[i], pts[i])
		}
	}
}

func TestScriptGeneratorDrivesABoard(t *testing.T) {
	g, err := NewScriptGenerator([]byte(rowFillScript))
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	b, err := New(Config{Width: 4, Height: 4, Mines: 2, Gen: g})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pts, err := b.Reveal(3, 3)
	if err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if len(pts) == 0 {
		t.Fatalf("expected the opening to uncover cells")
	}
	if !b.At(0, 0).Mine || !b.At(1, 0).Mine {
		t.Fatalf("expected scripted mines on the first row")
	}
	if b.At(0, 0).Revealed || b.At(1, 0).Revealed {
		t.Fatalf("expected mines to stay covered")
	}
	if b.State() != StateWon {
		t.Fatalf("expected the opening flood to win this layout, got %v", b.State())
	}
}

func TestScriptGeneratorRejectsBadOutput(t *testing.T) {
	cases := []struct {
		name   string
		script string
		errHas string
	}{
		{"not_an_array", "cells := 42", "must be an array"},
		{"missing_cells", "x := 1", "did not set cells"},
		{"bad_pair", "cells := [[1]]", "pair"},
		{"bad_types", `cells := [["a", "b"]]`, "ints"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := NewScriptGenerator([]byte(c.script))
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			_, err = g.Generate(Params{Width: 4, Height: 4, Mines: 1, Seed: 1})
			if err == nil || !strings.Contains(err.Error(), c.errHas) {
				t.Fatalf("expected %q error, got %v", c.errHas, err)
			}
		})
	}
}

func TestScriptGeneratorCompileError(t *testing.T) {
	if _, err := NewScriptGenerator([]byte("cells := [")); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestScriptGeneratorPlacementRejected(t *testing.T) {
	// The script ignores avoid_x/avoid_y, so the board must reject the
	// layout when a mine lands on the first reveal.
	g, err := NewScriptGenerator([]byte(`
cells := []
for i := 0; i < mines; i++ {
	cells = append(cells, [i, 0])
}
`))
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	b, err := New(Config{Width: 4, Height: 4, Mines: 2, Gen: g})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := b.Reveal(0, 0); err == nil {
		t.Fatalf("expected placement rejected")
	}
}
