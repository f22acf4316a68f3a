package netcomponents

import "github.com/yohamta/donburi"

type NetMatchData struct {
	MatchID string
	Arena   string
	Phase   string
	// Countdown is the seconds left before fighting starts.
	Countdown float64
	Winner    uint64
	HasWinner bool
	Draw      bool
}

var NetMatch = donburi.NewComponentType[NetMatchData]()
