// Package store handles SQLite persistence of finished games.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/verte-zerg/mohall/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Simulated filter values for model.StatsConfig.
const (
	SimulatedAll  = "all"
	SimulatedOnly = "only"
	SimulatedNone = "none"
)

// Rows per INSERT; keeps bound parameters under SQLite's limit.
const insertBatchSize = 500

// Fixed-width UTC timestamps keep text comparison in SQL chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var gameColumns = []string{
	"id",
	"session_id",
	"played_at",
	"player_name",
	"simulated_game",
	"player_swapped",
	"player_won",
	"door_count",
	"reward_door_number",
	"first_chosen_door_number",
	"final_chosen_door_number",
}

// Store wraps SQLite access for the games collection.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			played_at TEXT NOT NULL,
			player_name TEXT NOT NULL,
			simulated_game INTEGER NOT NULL,
			player_swapped INTEGER NOT NULL,
			player_won INTEGER NOT NULL,
			door_count INTEGER NOT NULL,
			reward_door_number INTEGER NOT NULL,
			first_chosen_door_number INTEGER NOT NULL,
			final_chosen_door_number INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_played_at ON games(played_at);`,
		`CREATE INDEX IF NOT EXISTS idx_games_player_name ON games(player_name);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame appends a finished game and returns its row id.
func (s *Store) InsertGame(ctx context.Context, entry model.GameEntry) (int64, error) {
	query, args, err := sq.Insert("games").
		Columns(gameColumns[1:]...).
		Values(
			entry.SessionID,
			entry.PlayedAt.UTC().Format(timeLayout),
			entry.PlayerName,
			entry.SimulatedGame,
			entry.PlayerSwapped,
			entry.PlayerWon,
			entry.DoorCount,
			entry.RewardDoorNumber,
			entry.FirstChosenDoorNumber,
			entry.FinalChosenDoorNumber,
		).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertGames appends several games in one transaction.
func (s *Store) InsertGames(ctx context.Context, entries []model.GameEntry) (err error) {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	for start := 0; start < len(entries); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		builder := sq.Insert("games").Columns(gameColumns[1:]...)
		for _, entry := range entries[start:end] {
			builder = builder.Values(
				entry.SessionID,
				entry.PlayedAt.UTC().Format(timeLayout),
				entry.PlayerName,
				entry.SimulatedGame,
				entry.PlayerSwapped,
				entry.PlayerWon,
				entry.DoorCount,
				entry.RewardDoorNumber,
				entry.FirstChosenDoorNumber,
				entry.FinalChosenDoorNumber,
			)
		}
		query, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListGames returns games matching the filter, oldest first.
func (s *Store) ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameEntry, error) {
	builder := sq.Select(gameColumns...).From("games")
	if cfg.Player != "" {
		builder = builder.Where(sq.Eq{"player_name": cfg.Player})
	}
	switch cfg.Simulated {
	case SimulatedOnly:
		builder = builder.Where(sq.Eq{"simulated_game": true})
	case SimulatedNone:
		builder = builder.Where(sq.Eq{"simulated_game": false})
	case "", SimulatedAll:
	default:
		return nil, fmt.Errorf("unknown simulated filter %q", cfg.Simulated)
	}
	if cfg.Since != nil {
		builder = builder.Where(sq.GtOrEq{"played_at": cfg.Since.UTC().Format(timeLayout)})
	}
	query, args, err := builder.OrderBy("played_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameEntry
	for rows.Next() {
		var entry model.GameEntry
		var playedAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&playedAt,
			&entry.PlayerName,
			&entry.SimulatedGame,
			&entry.PlayerSwapped,
			&entry.PlayerWon,
			&entry.DoorCount,
			&entry.RewardDoorNumber,
			&entry.FirstChosenDoorNumber,
			&entry.FinalChosenDoorNumber,
		); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, playedAt)
		if err != nil {
			return nil, err
		}
		entry.PlayedAt = parsed
		games = append(games, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}
	return games, nil
}

// ListPlayers returns the distinct player names, sorted.
func (s *Store) ListPlayers(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("DISTINCT player_name").From("games").OrderBy("player_name").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var players []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		players = append(players, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}
