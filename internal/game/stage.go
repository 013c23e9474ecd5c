package game

// Stage is a phase of a round. Stages run in order and wrap from
// StageOutcome back to StagePick.
type Stage int

const (
	// StagePick: the player picks a door.
	StagePick Stage = iota
	// StageLock: the first choice is locked in.
	StageLock
	// StageReveal: one empty door is opened and the player may switch.
	StageReveal
	// StageFinal: the final choice is locked in.
	StageFinal
	// StageOutcome: every door is opened and the round is recorded.
	StageOutcome
)

var stageNames = [...]string{"Stage1", "Stage2", "Stage3", "Stage4", "Stage4_1"}

func (s Stage) String() string {
	if s < StagePick || s > StageOutcome {
		return "Stage(?)"
	}
	return stageNames[s]
}

// Directions keys for the outcome stage.
const (
	DirectionsVictory = "victory"
	DirectionsDefeat  = "defeat"
)

var directions = map[string]string{
	StagePick.String():   `Pick a door. Behind one of the doors is a reward. The other doors are empty. Press "Continue" when you're ready.`,
	StageLock.String():   "From the remaining doors, I will now open one that contains no reward.",
	StageReveal.String(): "Next, the remaining doors will be opened. However, before that happens, I will allow you to change your choice. If you want to, you can pick another door. Once you continue, your choice will become final.",
	StageFinal.String():  "Your choice is now set in stone. Let's open the remaining doors!",
	DirectionsVictory:    "Congratulations, you've won the reward!",
	DirectionsDefeat:     "You've lost. Better luck next time!",
}

// DirectionsText returns the text for a directions key, or "" for unknown keys.
func DirectionsText(key string) string {
	return directions[key]
}
