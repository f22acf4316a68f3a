package network

import (
	"testing"

	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func fighterAt(id uint64, x float64) netcomponents.NetFighterData {
	return netcomponents.NetFighterData{FighterID: id, Name: "p", X: x, Health: 100, MaxHealth: 100}
}

func TestReplicaCreatesAndRemoves(t *testing.T) {
	r := NewReplica(donburi.NewWorld(), 60)

	r.Apply([]Entity{
		{ID: esync.NetworkId(2), Components: []any{fighterAt(2, 10)}},
		{ID: esync.NetworkId(1), Components: []any{fighterAt(1, 0)}},
		{ID: esync.NetworkId(3), Components: []any{netcomponents.NetProjectileData{Owner: 1, Template: "ball", X: 4}}},
	})

	fighters := r.Fighters()
	require.Len(t, fighters, 2)
	assert.Equal(t, uint64(1), fighters[0].FighterID)
	assert.Equal(t, 10.0, fighters[1].X, "first snapshot is drawn as-is")
	require.Len(t, r.Projectiles(), 1)

	r.Apply([]Entity{{ID: esync.NetworkId(1), Components: []any{fighterAt(1, 0)}}})
	assert.Len(t, r.Fighters(), 1)
	assert.Empty(t, r.Projectiles())
	assert.Equal(t, 1, r.World().Len())
}

func TestReplicaBlendsBetweenSnapshots(t *testing.T) {
	r := NewReplica(donburi.NewWorld(), 60)
	id := esync.NetworkId(7)

	r.Apply([]Entity{{ID: id, Components: []any{fighterAt(1, 0)}}})
	r.Apply([]Entity{{ID: id, Components: []any{fighterAt(1, 10)}}})
	assert.Equal(t, 0.0, r.Fighters()[0].X)

	r.Advance(1.0 / 120)
	assert.InDelta(t, 5.0, r.Fighters()[0].X, 1e-9)

	r.Advance(1)
	assert.Equal(t, 10.0, r.Fighters()[0].X)
}

func TestReplicaMatch(t *testing.T) {
	r := NewReplica(donburi.NewWorld(), 60)
	_, ok := r.Match()
	assert.False(t, ok)

	r.Apply([]Entity{{ID: esync.NetworkId(9), Components: []any{netcomponents.NetMatchData{Phase: "fighting", Arena: "arena"}}}})
	m, ok := r.Match()
	require.True(t, ok)
	assert.Equal(t, "fighting", m.Phase)
}
