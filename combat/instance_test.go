package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

var testTag = donburi.NewTag().SetName("test")

func TestBatchQueueDrainsOnce(t *testing.T) {
	world := donburi.NewWorld()
	e := world.Create(testTag)

	q := NewBatchQueue()
	inst := InstanceMap{}
	inst.Push(InstanceKey{Facing: FacingRight, Tag: "orb"}, e)

	b1 := q.Enqueue(1, []MoveAttack{{ID: "push", InstanceTag: "orb"}}, inst)
	b2 := q.Enqueue(2, nil, InstanceMap{})
	assert.Equal(t, uint64(1), b1.ID)
	assert.Equal(t, uint64(2), b2.ID)
	assert.Equal(t, 2, q.Len())

	drained := q.Drain()
	require.Len(t, drained, 2)
	assert.Same(t, b1, drained[0])
	assert.Equal(t, []donburi.Entity{e}, drained[0].Instances[InstanceKey{Facing: FacingRight, Tag: "orb"}])

	assert.Empty(t, q.Drain())
	assert.Equal(t, 0, q.Len())

	b3 := q.Enqueue(1, nil, nil)
	assert.Equal(t, uint64(3), b3.ID, "ids keep increasing after a drain")
}

func TestAttackSlots(t *testing.T) {
	var s AttackSlots
	_, ok := s.Get(ComboOneOne)
	assert.False(t, ok)

	s.Set(ComboTwoOne, AttackSlot{Actions: []string{"a", "b"}})
	slot, ok := s.Get(ComboTwoOne)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, slot.Actions)
}

func TestAttackGraphKeepsDeclarationOrder(t *testing.T) {
	g := AttackGraph{}
	g.Add(SpawnProjectile{ID: "fire", InstanceTag: "x"})
	g.Add(MoveAttack{ID: "fire", InstanceTag: "x"})
	g.Add(MoveAttack{ID: "other"})

	require.Len(t, g["fire"], 2)
	_, isSpawn := g["fire"][0].(SpawnProjectile)
	_, isMove := g["fire"][1].(MoveAttack)
	assert.True(t, isSpawn)
	assert.True(t, isMove)
}
