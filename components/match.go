package components

import (
	"time"

	"github.com/automoto/arena-mp/combat"
	"github.com/yohamta/donburi"
)

// MatchData is the singleton round state mirrored out of the round machine.
type MatchData struct {
	ID        string
	Phase     string
	Countdown time.Duration
	Winner    combat.FighterID
	HasWinner bool
	Draw      bool
}

var Match = donburi.NewComponentType[MatchData]()
