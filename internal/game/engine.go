package game

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/mohall/internal/model"
)

// EntrySink receives the entry of every finished round.
type EntrySink interface {
	AddEntry(ctx context.Context, entry model.GameEntry) error
}

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Doors     int
	Player    string
	Simulated bool
	SessionID string
	Source    Source
	Sink      EntrySink
	Now       func() time.Time
}

// Engine drives a round through its stages and records the result.
type Engine struct {
	opts  Options
	stage Stage
	doors *DoorSet
	entry model.GameEntry
	round int
}

// NewEngine creates an engine at StagePick with a fresh round.
func NewEngine(opts Options) *Engine {
	if opts.Source == nil {
		opts.Source = NewSource()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	e := &Engine{
		opts:  opts,
		stage: StagePick,
		doors: NewDoorSet(opts.Doors, opts.Source),
		round: 1,
	}
	e.resetEntry()
	return e
}

// Stage returns the current stage.
func (e *Engine) Stage() Stage {
	return e.stage
}

// Doors exposes the door set for reading and subscriptions.
func (e *Engine) Doors() *DoorSet {
	return e.doors
}

// DoorCount returns the number of doors in play.
func (e *Engine) DoorCount() int {
	return e.doors.Len()
}

// Round returns the 1-based number of the round in progress.
func (e *Engine) Round() int {
	return e.round
}

// Entry returns a copy of the pending entry. It is complete only once
// StageOutcome has been entered.
func (e *Engine) Entry() model.GameEntry {
	return e.entry
}

// SelectDoor selects door n. It never changes the stage.
func (e *Engine) SelectDoor(n int) {
	e.doors.SelectDoor(n)
}

// SelectedDoorHasReward reports whether the selected door holds the reward.
func (e *Engine) SelectedDoorHasReward() bool {
	return e.doors.SelectedDoorNumber() == e.doors.RewardDoorNumber()
}

// NewGame abandons the current round and starts a fresh one at StagePick.
func (e *Engine) NewGame() {
	e.newRound()
	e.round++
}

func (e *Engine) newRound() {
	e.stage = StagePick
	e.doors.ResetAll()
	e.resetEntry()
}

// AdvanceStage moves to the next stage and applies its effects. Without a
// selected door the call does nothing. From StageOutcome it starts a new round.
// The only error comes from recording the finished round.
func (e *Engine) AdvanceStage(ctx context.Context) error {
	if e.doors.SelectedDoorNumber() == -1 {
		return nil
	}
	if e.stage < StageOutcome {
		e.stage++
	} else {
		e.stage = StagePick
	}
	return e.enterStage(ctx)
}

func (e *Engine) enterStage(ctx context.Context) error {
	switch e.stage {
	case StagePick:
		e.NewGame()
		e.entry.RewardDoorNumber = e.doors.RewardDoorNumber()
		e.doors.EnableAll(true)
	case StageLock:
		e.entry.FirstChosenDoorNumber = e.doors.SelectedDoorNumber()
		e.doors.EnableAll(false)
	case StageReveal:
		if _, err := e.doors.OpenRandomSafeDoor(); err != nil {
			panic(fmt.Sprintf("game: reveal with %d doors: %v", e.doors.Len(), err))
		}
		e.doors.EnableAll(true)
	case StageFinal:
		e.entry.FinalChosenDoorNumber = e.doors.SelectedDoorNumber()
		e.entry.PlayerSwapped = e.entry.FirstChosenDoorNumber != e.entry.FinalChosenDoorNumber
		e.doors.EnableAll(false)
	case StageOutcome:
		e.entry.PlayerWon = e.SelectedDoorHasReward()
		e.doors.OpenAll()
		e.entry.PlayedAt = e.opts.Now()
		if e.opts.Sink != nil {
			if err := e.opts.Sink.AddEntry(ctx, e.entry); err != nil {
				return fmt.Errorf("failed to record game: %w", err)
			}
		}
	}
	return nil
}

// DirectionsKey returns the key of the directions for the current stage.
func (e *Engine) DirectionsKey() string {
	if e.stage == StageOutcome {
		if e.SelectedDoorHasReward() {
			return DirectionsVictory
		}
		return DirectionsDefeat
	}
	return e.stage.String()
}

// Directions returns the player-facing text for the current stage.
func (e *Engine) Directions() string {
	return DirectionsText(e.DirectionsKey())
}

func (e *Engine) resetEntry() {
	e.entry = model.NewGameEntry(e.opts.Player)
	e.entry.SessionID = e.opts.SessionID
	e.entry.SimulatedGame = e.opts.Simulated
	e.entry.DoorCount = e.doors.Len()
	e.entry.RewardDoorNumber = e.doors.RewardDoorNumber()
}
