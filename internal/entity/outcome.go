package entity

// Outcome is the result of a single move attempt.
type Outcome uint8

const (
	OutcomeInProgress Outcome = iota
	OutcomeWin
	OutcomeTie
	// OutcomeInvalidMove is reported per attempt and never persists as session state.
	OutcomeInvalidMove
)

func (that Outcome) String() string {
	switch that {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeWin:
		return "win"
	case OutcomeTie:
		return "tie"
	case OutcomeInvalidMove:
		return "invalid_move"
	default:
		return "unknown"
	}
}

// IsFinished reports whether the outcome ends the game.
func (that Outcome) IsFinished() bool {
	return that == OutcomeWin || that == OutcomeTie
}
