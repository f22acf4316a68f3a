package core

import (
	"testing"
	"time"

	"github.com/automoto/arena-mp/assets"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/scenes"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

const dt = 1.0 / 60

type fakeConn struct {
	sent []any
}

func (f *fakeConn) SendMessage(msg any) error {
	f.sent = append(f.sent, msg)
	return nil
}

func noTrack(*donburi.Entity, donburi.IComponentType, bool) error { return nil }

func testServer(t *testing.T) *Server {
	t.Helper()
	catalog, err := assets.Characters(zap.NewNop())
	require.NoError(t, err)
	level, err := assets.Level("arena")
	require.NoError(t, err)
	arena, err := scenes.NewArena(catalog, level, nil)
	require.NoError(t, err)
	return newServer(donburi.NewWorld(), arena, Options{
		Name:     "test",
		Version:  "1",
		TickRate: 60,
		Results:  100 * time.Millisecond,
	}, nil, noTrack)
}

func join(t *testing.T, s *Server, id, name, character string) *fakeConn {
	t.Helper()
	conn := &fakeConn{}
	s.handleConnect(id, conn)
	s.handleJoin(id, messages.JoinRequest{Version: "1", PlayerName: name, Character: character})
	require.NotEmpty(t, conn.sent)
	_, ok := conn.sent[0].(messages.JoinAccepted)
	require.True(t, ok, "got %T", conn.sent[0])
	return conn
}

func netFighters(s *Server) []netcomponents.NetFighterData {
	var out []netcomponents.NetFighterData
	netcomponents.NetFighter.Each(s.world, func(e *donburi.Entry) {
		out = append(out, *netcomponents.NetFighter.Get(e))
	})
	return out
}

func TestJoinAccepted(t *testing.T) {
	s := testServer(t)
	conn := join(t, s, "a", "ann", "gunner")

	acc := conn.sent[0].(messages.JoinAccepted)
	assert.Equal(t, uint64(1), acc.FighterID)
	assert.Equal(t, "arena", acc.Arena)
	assert.Equal(t, "test", acc.ServerName)
	assert.Equal(t, []string{"brawler", "gunner"}, acc.Characters)
	assert.Equal(t, 1, s.PlayerCount())

	fighters := netFighters(s)
	require.Len(t, fighters, 1)
	assert.Equal(t, "ann", fighters[0].Name)
	assert.Equal(t, "gunner", fighters[0].Character)
	assert.NotEmpty(t, fighters[0].Parts)
}

func TestJoinDefaultsCharacter(t *testing.T) {
	s := testServer(t)
	join(t, s, "a", "ann", "")
	assert.Equal(t, "brawler", netFighters(s)[0].Character)
}

func TestJoinRejected(t *testing.T) {
	s := testServer(t)

	old := &fakeConn{}
	s.handleConnect("old", old)
	s.handleJoin("old", messages.JoinRequest{Version: "0", PlayerName: "x"})
	require.Len(t, old.sent, 1)
	assert.IsType(t, messages.JoinRejected{}, old.sent[0])

	odd := &fakeConn{}
	s.handleConnect("odd", odd)
	s.handleJoin("odd", messages.JoinRequest{Version: "1", PlayerName: "y", Character: "wizard"})
	require.Len(t, odd.sent, 1)
	assert.IsType(t, messages.JoinRejected{}, odd.sent[0])

	assert.Zero(t, s.PlayerCount())
	assert.Empty(t, netFighters(s))
}

func TestJoinWithoutConnectIgnored(t *testing.T) {
	s := testServer(t)
	s.handleJoin("ghost", messages.JoinRequest{Version: "1"})
	assert.Empty(t, s.arena.Seats())
}

func TestStaleInputDropped(t *testing.T) {
	s := testServer(t)
	join(t, s, "a", "ann", "brawler")

	in := messages.NewFighterInput(5)
	s.handleInput("a", in)
	assert.Equal(t, uint32(5), s.peers["a"].lastSeq)

	s.handleInput("a", messages.NewFighterInput(3))
	assert.Equal(t, uint32(5), s.peers["a"].lastSeq)
}

func TestInputReachesFighterWhileFighting(t *testing.T) {
	s := testServer(t)
	join(t, s, "a", "ann", "brawler")
	join(t, s, "b", "bob", "brawler")
	for i := 0; i < 1000 && !s.arena.Round.Fighting(); i++ {
		s.Tick(dt)
	}
	require.True(t, s.arena.Round.Fighting())

	in := messages.NewFighterInput(1)
	in.Actions[cfg.ActionLeft] = true
	s.commands.push(func() { s.handleInput("a", in) })
	s.Tick(dt)

	entry, ok := s.arena.Sim.Fighter(1)
	require.True(t, ok)
	assert.True(t, components.Input.Get(entry).Current[cfg.ActionLeft])
	assert.Equal(t, combat.FacingLeft, components.Fighter.Get(entry).Facing())
}

func TestRoundLifecycleBroadcasts(t *testing.T) {
	s := testServer(t)
	a := join(t, s, "a", "ann", "brawler")
	b := join(t, s, "b", "bob", "gunner")
	firstMatch := s.arena.ID

	for i := 0; i < 1000 && !s.arena.Round.Fighting(); i++ {
		s.Tick(dt)
	}
	assert.IsType(t, messages.RoundStartEvent{}, a.sent[len(a.sent)-1])

	s.commands.push(func() { s.handleDisconnect("b") })
	s.Tick(dt)
	assert.Equal(t, scenes.PhaseOver, s.arena.Round.Phase())
	over, ok := a.sent[len(a.sent)-1].(messages.RoundOverEvent)
	require.True(t, ok)
	assert.True(t, over.HasWinner)
	assert.Equal(t, uint64(1), over.Winner)
	assert.Len(t, netFighters(s), 1)

	nb := len(b.sent)
	for i := 0; i < 20 && s.arena.Round.Phase() == scenes.PhaseOver; i++ {
		s.Tick(dt)
	}
	assert.Equal(t, scenes.PhaseCountdown, s.arena.Round.Phase())
	assert.NotEqual(t, firstMatch, s.arena.ID)
	assert.Equal(t, nb, len(b.sent), "disconnected peers get nothing")
	assert.Equal(t, 1, s.PlayerCount())
}

func TestBotSeat(t *testing.T) {
	s := testServer(t)
	scripts, err := assets.Bots()
	require.NoError(t, err)
	require.NoError(t, s.AddBot("cpu", "gunner", scripts["turret"]))

	conn := join(t, s, "a", "ann", "brawler")
	acc := conn.sent[0].(messages.JoinAccepted)
	assert.Equal(t, uint64(2), acc.FighterID)
	assert.True(t, s.arena.Sim.IsBot(1))
	assert.Equal(t, 1, s.PlayerCount())
}
