package systems

import (
	"testing"

	"github.com/automoto/arena-mp/combat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFighterViews(t *testing.T) {
	s := newSim(t, 2, 1)
	s.Step(dt)

	views := s.Fighters()
	require.Len(t, views, 2)
	assert.Equal(t, uint64(1), views[0].FighterID)
	assert.Equal(t, "dummy", views[0].Character)
	assert.Equal(t, 100.0, views[0].MaxHealth)
	assert.Equal(t, 1.0, views[0].HealthShown)

	require.Len(t, views[0].Parts, 2, "core visual and one limb")
	assert.Equal(t, "body", views[0].Parts[0].Asset)
	assert.Equal(t, "hand", views[0].Parts[1].Asset)
}

func TestProjectileViews(t *testing.T) {
	s := newSim(t, 1)
	assert.Empty(t, s.Projectiles())

	comboOneTwo(s, 1)
	views := s.Projectiles()
	require.NotEmpty(t, views)
	for _, v := range views {
		assert.Equal(t, uint64(combat.FighterID(1)), v.Data.Owner)
		assert.Equal(t, "ball", v.Data.Template)
	}
}

func TestColliderViews(t *testing.T) {
	s := newSim(t, 1)
	s.Step(dt)

	kinds := map[combat.ColliderKind]int{}
	for _, c := range s.Colliders() {
		assert.False(t, c.Static)
		assert.Less(t, c.L, c.R)
		assert.Less(t, c.B, c.T)
		kinds[c.Kind]++
	}
	assert.Equal(t, 1, kinds[combat.ColliderSolid], "hull")
	assert.Equal(t, 1, kinds[combat.ColliderJumpReset], "feet")
}
