// Package simulate plays batches of games through the engine with a fixed strategy.
package simulate

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/mohall/internal/game"
	"github.com/verte-zerg/mohall/internal/model"
)

// PlayerName is recorded on every simulated game.
const PlayerName = "simulator"

// Strategies for the final choice.
const (
	StrategySwap   = "swap"
	StrategyStay   = "stay"
	StrategyRandom = "random"
)

// Strategies lists the accepted strategy names.
var Strategies = []string{StrategySwap, StrategyStay, StrategyRandom}

// ValidStrategy reports whether name is a known strategy.
func ValidStrategy(name string) bool {
	for _, s := range Strategies {
		if s == name {
			return true
		}
	}
	return false
}

type collector struct {
	entries []model.GameEntry
}

func (c *collector) AddEntry(_ context.Context, entry model.GameEntry) error {
	c.entries = append(c.entries, entry)
	return nil
}

// Run plays cfg.Games rounds and returns their entries in order.
func Run(ctx context.Context, cfg model.SimulateConfig, sessionID string) ([]model.GameEntry, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("games must be > 0")
	}
	if !ValidStrategy(cfg.Strategy) {
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
	src := game.NewSource()
	if cfg.Seed != 0 {
		src = game.NewSeededSource(cfg.Seed)
	}
	sink := &collector{entries: make([]model.GameEntry, 0, cfg.Games)}
	engine := game.NewEngine(game.Options{
		Doors:     cfg.Doors,
		Player:    PlayerName,
		Simulated: true,
		SessionID: sessionID,
		Source:    src,
		Sink:      sink,
		Now:       time.Now,
	})

	for i := 0; i < cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			return sink.entries, err
		}
		if err := playRound(ctx, engine, src, cfg.Strategy); err != nil {
			return sink.entries, err
		}
	}
	return sink.entries, nil
}

func playRound(ctx context.Context, engine *game.Engine, src game.Source, strategy string) error {
	engine.SelectDoor(src.Intn(engine.DoorCount()) + 1)
	for engine.Stage() != game.StageReveal {
		if err := engine.AdvanceStage(ctx); err != nil {
			return err
		}
	}
	if shouldSwap(src, strategy) {
		engine.SelectDoor(swapTarget(engine.Doors(), src))
	}
	for engine.Stage() != game.StageOutcome {
		if err := engine.AdvanceStage(ctx); err != nil {
			return err
		}
	}
	return engine.AdvanceStage(ctx)
}

func shouldSwap(src game.Source, strategy string) bool {
	switch strategy {
	case StrategySwap:
		return true
	case StrategyRandom:
		return src.Intn(2) == 1
	default:
		return false
	}
}

// swapTarget picks uniformly among the closed doors other than the selected one.
func swapTarget(doors *game.DoorSet, src game.Source) int {
	var candidates []int
	for n := 1; n <= doors.Len(); n++ {
		st := doors.Door(n)
		if st.Open || st.Selected {
			continue
		}
		candidates = append(candidates, n)
	}
	return candidates[src.Intn(len(candidates))]
}
