package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"snake-ai/game"
	"snake-ai/game/manager"

	_ "modernc.org/sqlite"
)

// History stores finished rounds in sqlite
type History struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenHistory opens (creating if needed) the round database at path
func OpenHistory(path string, logger *log.Logger) (*History, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// One writer; sqlite serialises anyway
	db.SetMaxOpenConns(1)

	h := &History{db: db, logger: logger}
	if err := h.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			score INTEGER NOT NULL,
			reason TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			length INTEGER NOT NULL,
			growth_count INTEGER DEFAULT 0,
			shrink_count INTEGER DEFAULT 0,
			negative_count INTEGER DEFAULT 0,
			autopilot INTEGER DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS rounds_ended_at ON rounds (ended_at)`,
	}

	for _, query := range queries {
		if _, err := h.db.Exec(query); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Record inserts a finished round. Recording the same id twice replaces it.
func (h *History) Record(ctx context.Context, r game.Round) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO rounds
			(id, started_at, ended_at, score, reason, ticks, length,
			 growth_count, shrink_count, negative_count, autopilot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UnixNano(), r.EndedAt.UnixNano(), r.Score, r.Reason.String(),
		r.Ticks, r.Length, r.Counters.Growth, r.Counters.Shrink, r.Counters.Negative,
		r.Autopilot,
	)
	if err != nil {
		return fmt.Errorf("record round %s: %w", r.ID, err)
	}
	return nil
}

const roundColumns = `id, started_at, ended_at, score, reason, ticks, length,
	growth_count, shrink_count, negative_count, autopilot`

// Recent returns up to limit rounds, newest first
func (h *History) Recent(ctx context.Context, limit int) ([]game.Round, error) {
	return h.query(ctx, `SELECT `+roundColumns+` FROM rounds ORDER BY ended_at DESC LIMIT ?`, limit)
}

// Best returns up to limit rounds with the highest scores
func (h *History) Best(ctx context.Context, limit int) ([]game.Round, error) {
	return h.query(ctx, `SELECT `+roundColumns+` FROM rounds ORDER BY score DESC, ended_at ASC LIMIT ?`, limit)
}

// Summary aggregates every stored round
func (h *History) Summary(ctx context.Context) (Summary, error) {
	rounds, err := h.query(ctx, `SELECT `+roundColumns+` FROM rounds`)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(rounds), nil
}

func (h *History) query(ctx context.Context, query string, args ...any) ([]game.Round, error) {
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []game.Round
	for rows.Next() {
		var (
			r                  game.Round
			started, ended     int64
			reason             string
			growth, shrink, ng int
		)
		if err := rows.Scan(&r.ID, &started, &ended, &r.Score, &reason, &r.Ticks, &r.Length,
			&growth, &shrink, &ng, &r.Autopilot); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		r.StartedAt = time.Unix(0, started).UTC()
		r.EndedAt = time.Unix(0, ended).UTC()
		r.Counters = manager.Counters{Growth: growth, Shrink: shrink, Negative: ng}
		if err := r.Reason.UnmarshalText([]byte(reason)); err != nil {
			h.logger.Printf("Round %s has unknown reason %q", r.ID, reason)
		}
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

// OnEvent records every round that ends. Failures are logged; the game goes on.
func (h *History) OnEvent(e game.Event) {
	if e.Type != game.EventGameOver {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.Record(ctx, e.Round); err != nil {
		h.logger.Printf("Could not save round: %v", err)
	}
}

func (h *History) Close() error {
	return h.db.Close()
}
