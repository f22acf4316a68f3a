package render

import (
	"testing"

	"github.com/automoto/arena-mp/scenes"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/stretchr/testify/assert"
)

func TestBanner(t *testing.T) {
	two := []netcomponents.NetFighterData{{FighterID: 1, Name: "red"}, {FighterID: 2, Name: "blue"}}

	assert.Equal(t, "Waiting for fighters",
		Banner(netcomponents.NetMatchData{Phase: scenes.PhaseCountdown, Countdown: 3}, two[:1]))
	assert.Equal(t, "3", Banner(netcomponents.NetMatchData{Phase: scenes.PhaseCountdown, Countdown: 2.2}, two))
	assert.Equal(t, "", Banner(netcomponents.NetMatchData{Phase: scenes.PhaseFighting}, two))
	assert.Equal(t, "blue wins",
		Banner(netcomponents.NetMatchData{Phase: scenes.PhaseOver, Winner: 2, HasWinner: true}, two))
	assert.Equal(t, "Fighter 9 wins",
		Banner(netcomponents.NetMatchData{Phase: scenes.PhaseOver, Winner: 9, HasWinner: true}, two))
	assert.Equal(t, "Draw", Banner(netcomponents.NetMatchData{Phase: scenes.PhaseOver, Draw: true}, two))
}
