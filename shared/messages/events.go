package messages

// RoundStartEvent is broadcast when the countdown ends.
type RoundStartEvent struct {
	MatchID string
}

// RoundOverEvent is broadcast once a round has a result.
type RoundOverEvent struct {
	MatchID   string
	Winner    uint64
	HasWinner bool
	Draw      bool
}

// FighterLeftEvent is broadcast when a fighter is knocked out or disconnects.
type FighterLeftEvent struct {
	FighterID uint64
	Name      string
}
