package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/minesweeper/render"
)

//go:embed default.yaml
var defaultYAML []byte

// Config is everything the game reads from its YAML file. A partial file
// only overrides what it names; the rest keeps the built-in defaults.
type Config struct {
	Window Window     `yaml:"window"`
	Board  BoardSetup `yaml:"board"`
	Theme  Theme      `yaml:"theme"`
	// Generator is an optional path to a tengo script that lays out the
	// mines. Empty means the built-in random layout.
	Generator string `yaml:"generator"`
}

type Window struct {
	Title    string `yaml:"title"`
	CellSize int    `yaml:"cell_size"`
	Margin   int    `yaml:"margin"`
}

// BoardSetup picks the field dimensions. A named preset wins over explicit
// dimensions; set preset to custom (or empty) to use them.
type BoardSetup struct {
	Preset string `yaml:"preset"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Mines  int    `yaml:"mines"`
}

// Theme holds the palette as hex color strings, #rrggbb or #rrggbbaa.
// Digits colors apply to touching counts 1 through 8 in order; a shorter
// list repeats its last color.
type Theme struct {
	Background string   `yaml:"background"`
	CellBase   string   `yaml:"cell_base"`
	CellGlow   string   `yaml:"cell_glow"`
	Outline    string   `yaml:"outline"`
	Revealed   string   `yaml:"revealed"`
	Accent     string   `yaml:"accent"`
	Flash      string   `yaml:"flash"`
	Mine       string   `yaml:"mine"`
	Digits     []string `yaml:"digits"`
}

var presets = map[string]BoardSetup{
	"beginner":     {Width: 9, Height: 9, Mines: 10},
	"intermediate": {Width: 16, Height: 16, Mines: 40},
	"expert":       {Width: 30, Height: 16, Mines: 99},
}

var presetOrder = []string{"beginner", "intermediate", "expert"}

// Preset returns the named difficulty with its dimensions filled in.
func Preset(name string) (BoardSetup, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	p, ok := presets[key]
	if !ok {
		return BoardSetup{}, false
	}
	p.Preset = key
	return p, true
}

// PresetNames lists the difficulties from easiest to hardest.
func PresetNames() []string {
	return append([]string(nil), presetOrder...)
}

func defaults() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: parse embedded defaults: %v", err))
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := defaults()
	if err := cfg.normalize(); err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load reads the file at path over the built-in defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Parse reads YAML over the built-in defaults.
func Parse(b []byte) (Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Window.Title == "" {
		c.Window.Title = "minesweeper"
	}
	if c.Window.CellSize < 8 {
		return fmt.Errorf("config: cell size %d is too small", c.Window.CellSize)
	}
	if c.Window.Margin < 0 {
		c.Window.Margin = 0
	}

	switch name := strings.ToLower(strings.TrimSpace(c.Board.Preset)); name {
	case "", "custom":
	default:
		p, ok := presets[name]
		if !ok {
			return fmt.Errorf("config: unknown preset %q", c.Board.Preset)
		}
		c.Board.Width, c.Board.Height, c.Board.Mines = p.Width, p.Height, p.Mines
	}
	if c.Board.Width < 2 || c.Board.Height < 2 {
		return fmt.Errorf("config: board %dx%d is too small", c.Board.Width, c.Board.Height)
	}
	if c.Board.Mines < 1 || c.Board.Mines >= c.Board.Width*c.Board.Height {
		return fmt.Errorf("config: %d mines cannot fit a %dx%d board", c.Board.Mines, c.Board.Width, c.Board.Height)
	}
	return nil
}

// Palette converts the theme into renderer colors. A bad hex string is an
// error so a broken edit during hot reload can keep the previous theme.
func (c Config) Palette() (render.Palette, error) {
	var p render.Palette
	fields := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"background", c.Theme.Background, &p.Background},
		{"cell_base", c.Theme.CellBase, &p.CellBase},
		{"cell_glow", c.Theme.CellGlow, &p.CellGlow},
		{"outline", c.Theme.Outline, &p.Outline},
		{"revealed", c.Theme.Revealed, &p.Revealed},
		{"accent", c.Theme.Accent, &p.Accent},
		{"flash", c.Theme.Flash, &p.Flash},
		{"mine", c.Theme.Mine, &p.Mine},
	}
	for _, f := range fields {
		clr, err := ParseHexColor(f.hex)
		if err != nil {
			return render.Palette{}, fmt.Errorf("config: theme %s: %w", f.name, err)
		}
		*f.dst = clr
	}

	if len(c.Theme.Digits) == 0 {
		return render.Palette{}, fmt.Errorf("config: theme digits missing")
	}
	if len(c.Theme.Digits) > 8 {
		return render.Palette{}, fmt.Errorf("config: at most 8 digit colors, got %d", len(c.Theme.Digits))
	}
	for i := 1; i <= 8; i++ {
		idx := i - 1
		if idx >= len(c.Theme.Digits) {
			idx = len(c.Theme.Digits) - 1
		}
		clr, err := ParseHexColor(c.Theme.Digits[idx])
		if err != nil {
			return render.Palette{}, fmt.Errorf("config: theme digit %d: %w", i, err)
		}
		p.Digits[i] = clr
	}
	return p, nil
}

// ParseHexColor parses #rrggbb or #rrggbbaa.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if (len(s) != 7 && len(s) != 9) || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
	}

	var r, g, b uint32
	a := uint32(0xff)
	switch len(s) {
	case 7:
		if n, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil || n != 3 {
			return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
		}
	case 9:
		if n, err := fmt.Sscanf(s[1:], "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil || n != 4 {
			return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
		}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}
