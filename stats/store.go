package stats

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps finished games in a small SQLite database so play counts and
// best times survive restarts.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    difficulty TEXT NOT NULL,
    won INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    played_at INTEGER NOT NULL     -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_games_difficulty ON games(difficulty);
`

// Result is one finished game.
type Result struct {
	Difficulty string
	Won        bool
	Duration   time.Duration
	Seed       int64
	// When defaults to the current time when zero.
	When time.Time
}

// Summary aggregates every recorded game of one difficulty.
type Summary struct {
	Difficulty string
	Played     int
	Won        int
	// Best is the fastest winning time, zero when nothing was won yet.
	Best time.Duration
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("stats: create directory: %w", err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("stats: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record stores one finished game.
func (s *Store) Record(r Result) error {
	if r.Difficulty == "" {
		return fmt.Errorf("stats: result needs a difficulty")
	}
	when := r.When
	if when.IsZero() {
		when = time.Now()
	}
	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.Exec(
		"INSERT INTO games (difficulty, won, duration_ms, seed, played_at) VALUES (?, ?, ?, ?, ?)",
		r.Difficulty, won, r.Duration.Milliseconds(), r.Seed, when.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("stats: record game: %w", err)
	}
	return nil
}

// Best returns the fastest winning time for a difficulty. ok is false when
// no game of that difficulty was won yet.
func (s *Store) Best(difficulty string) (time.Duration, bool, error) {
	var ms sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(duration_ms) FROM games WHERE difficulty = ? AND won = 1",
		difficulty,
	).Scan(&ms)
	if err != nil {
		return 0, false, fmt.Errorf("stats: query best: %w", err)
	}
	if !ms.Valid {
		return 0, false, nil
	}
	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}

// ForDifficulty aggregates played and won counts plus the best time.
func (s *Store) ForDifficulty(difficulty string) (Summary, error) {
	sum := Summary{Difficulty: difficulty}
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(won), 0) FROM games WHERE difficulty = ?",
		difficulty,
	).Scan(&sum.Played, &sum.Won)
	if err != nil {
		return Summary{}, fmt.Errorf("stats: query summary: %w", err)
	}
	best, ok, err := s.Best(difficulty)
	if err != nil {
		return Summary{}, err
	}
	if ok {
		sum.Best = best
	}
	return sum, nil
}
