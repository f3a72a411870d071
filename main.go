package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/minesweeper/assets"
	"github.com/milk9111/minesweeper/board"
	"github.com/milk9111/minesweeper/config"
	"github.com/milk9111/minesweeper/stats"
)

func main() {
	configPath := flag.String("config", "", "YAML config path; empty uses the built-in defaults")
	seed := flag.Int64("seed", 0, "board seed; 0 picks one from the clock")
	statsPath := flag.String("stats", "minesweeper.db", "best-times database path; empty disables stats")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config %s: %v", *configPath, err)
		}
		cfg = c
	}

	gen, err := resolveGenerator(cfg.Generator)
	if err != nil {
		log.Fatalf("board generator: %v", err)
	}

	var store *stats.Store
	if *statsPath != "" {
		s, err := stats.Open(*statsPath)
		if err != nil {
			log.Printf("stats disabled: %v", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	var watcher *config.Watcher
	if *configPath != "" {
		w, err := config.NewWatcher(*configPath)
		if err != nil {
			log.Printf("config watching disabled: %v", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	clip := clipboard.Init() == nil
	if !clip {
		log.Printf("clipboard unavailable; copy seed disabled")
	}

	game, err := NewGame(cfg, *configPath, gen, *seed, store, watcher, clip)
	if err != nil {
		log.Fatalf("start game: %v", err)
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(game.width, game.height)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// resolveGenerator turns the configured generator reference into a board
// generator: empty means the seeded random layout, otherwise a tengo
// script loaded from disk or, failing that, from the embedded built-ins.
func resolveGenerator(ref string) (board.Generator, error) {
	if ref == "" {
		return board.RandGenerator{}, nil
	}
	src, err := os.ReadFile(ref)
	if err != nil {
		if src, err = assets.GeneratorScript(ref); err != nil {
			return nil, err
		}
	}
	return board.NewScriptGenerator(src)
}
