package stats

import (
	"context"
	"fmt"

	"github.com/verte-zerg/mohall/internal/model"
)

// GameStore is the durable collection of finished games.
type GameStore interface {
	InsertGame(ctx context.Context, entry model.GameEntry) (int64, error)
	ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameEntry, error)
}

// Tracker keeps the aggregates of a GameStore current. It receives
// finished rounds from the game engine.
type Tracker struct {
	store   GameStore
	cfg     model.StatsConfig
	summary Summary
}

// NewTracker loads the current aggregates for the filter in cfg.
func NewTracker(ctx context.Context, st GameStore, cfg model.StatsConfig) (*Tracker, error) {
	t := &Tracker{store: st, cfg: cfg, summary: Summarize(nil)}
	if err := t.Update(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// AddEntry appends a finished game and recomputes the aggregates.
func (t *Tracker) AddEntry(ctx context.Context, entry model.GameEntry) error {
	if _, err := t.store.InsertGame(ctx, entry); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return t.Update(ctx)
}

// Update recomputes the aggregates from the stored games.
func (t *Tracker) Update(ctx context.Context) error {
	games, err := t.store.ListGames(ctx, t.cfg)
	if err != nil {
		return fmt.Errorf("failed to load games: %w", err)
	}
	t.summary = Summarize(games)
	return nil
}

// Summary returns the aggregates as of the last update.
func (t *Tracker) Summary() Summary {
	return t.summary
}
