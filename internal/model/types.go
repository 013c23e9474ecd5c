// Package model defines shared data structures.
package model

import "time"

// DefaultPlayerName is recorded when no player name was configured.
const DefaultPlayerName = "unknown"

// MaxDoors is the largest door count a game is recorded with.
const MaxDoors = 1000

// UnsetDoor marks a door number that has not been chosen yet.
const UnsetDoor = -1

// Config defines play settings.
type Config struct {
	Doors       int
	Player      string
	AutoAdvance bool
}

// StatsConfig defines filters for stats output.
type StatsConfig struct {
	Player string
	// Simulated selects which games are included: "all", "only" or "none".
	Simulated   string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SimulateConfig defines a batch of simulated games.
type SimulateConfig struct {
	Games    int
	Doors    int
	Strategy string
	Seed     int64
	DryRun   bool
}

// GameEntry records the outcome of one finished round.
// Door numbers are 1-based; UnsetDoor means the choice was never made.
type GameEntry struct {
	ID                    int64     `json:"id" yaml:"id"`
	SessionID             string    `json:"session_id" yaml:"session_id"`
	PlayedAt              time.Time `json:"played_at" yaml:"played_at"`
	PlayerName            string    `json:"player_name" yaml:"player_name"`
	SimulatedGame         bool      `json:"simulated_game" yaml:"simulated_game"`
	PlayerSwapped         bool      `json:"player_swapped" yaml:"player_swapped"`
	PlayerWon             bool      `json:"player_won" yaml:"player_won"`
	DoorCount             int       `json:"door_count" yaml:"door_count"`
	RewardDoorNumber      int       `json:"reward_door_number" yaml:"reward_door_number"`
	FirstChosenDoorNumber int       `json:"first_chosen_door_number" yaml:"first_chosen_door_number"`
	FinalChosenDoorNumber int       `json:"final_chosen_door_number" yaml:"final_chosen_door_number"`
}

// NewGameEntry returns an entry with every field at its default.
func NewGameEntry(player string) GameEntry {
	if player == "" {
		player = DefaultPlayerName
	}
	return GameEntry{
		PlayerName:            player,
		RewardDoorNumber:      UnsetDoor,
		FirstChosenDoorNumber: UnsetDoor,
		FinalChosenDoorNumber: UnsetDoor,
	}
}
