package systems

import (
	"testing"

	"github.com/automoto/arena-mp/chardef"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/physics"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/automoto/arena-mp/systems/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

const dt = 1.0 / 60

const dummyYAML = `
info:
  name: dummy
core:
  asset: body
  physobj_id: core
  enable_sync_rotation: true
components:
  - asset: hand
    origin: [5, 0]
assets:
  - id: body
    kind: vector
    size: [20, 40]
physics_objects:
  - id: core
    collider_ids: [hull, feet]
    disable_rotation: true
  - id: shot
    collider_ids: [ball]
colliders:
  cuboid:
    - id: hull
      width: 20
      height: 40
    - id: feet
      width: 16
      height: 4
      origin: [0, -20]
  circle:
    - id: ball
      radius: 4
  jump_reset: [feet]
descriptor:
  maximum_jumps: 2
health:
  maximum: 100
attacks:
  one_two:
    actions: [fire]
    cooldown: 1
  two_one:
    actions: [ghost]
projectiles:
  - id: ball
    physobj_id: shot
    damage: 30
    pierce: 2
    lifetime: 0.5
    spawn_origin_looking_radius: 30
spawn_projectile_actions:
  - id: fire
    none_id: ball
    right_id: ball
    instance_id: b
  - id: ghost
    left_id: ball
    instance_id: g
movement_attack_actions:
  - id: fire
    none_id: push
    right_id: push
    instance_id: b
  - id: ghost
    right_id: push
    instance_id: g
movement_actions:
  - id: push
    add_velocity: [100, 0]
`

func dummy(t *testing.T) *chardef.Character {
	t.Helper()
	def, err := chardef.Parse([]byte(dummyYAML))
	require.NoError(t, err)
	ch, err := def.Build(zap.NewNop())
	require.NoError(t, err)
	return ch
}

func newSim(t *testing.T, fighters ...combat.FighterID) *Sim {
	t.Helper()
	s := NewSim(zap.NewNop())
	ch := dummy(t)
	for i, id := range fighters {
		_, err := s.AddFighter(id, "p", ch, gamemath.V(100+float64(i)*200, 300))
		require.NoError(t, err)
	}
	return s
}

func hold(actions ...cfg.ActionID) components.Buttons {
	var b components.Buttons
	for _, a := range actions {
		b[a] = true
	}
	return b
}

func projectiles(s *Sim) []*donburi.Entry {
	var out []*donburi.Entry
	components.Projectile.Each(s.ECS.World, func(e *donburi.Entry) {
		out = append(out, e)
	})
	return out
}

// comboOneTwo feeds right+A then right+B over three ticks.
func comboOneTwo(s *Sim, id combat.FighterID) {
	s.SetInput(id, hold(cfg.ActionRight))
	s.Step(dt)
	s.SetInput(id, hold(cfg.ActionRight, cfg.ActionAttackA))
	s.Step(dt)
	s.SetInput(id, hold(cfg.ActionRight, cfg.ActionAttackB))
	s.Step(dt)
}

func TestSpawnThenMoveAppliesOnce(t *testing.T) {
	s := newSim(t, 1)
	comboOneTwo(s, 1)

	ps := projectiles(s)
	require.Len(t, ps, 1)
	body := components.Body.Get(ps[0])
	assert.InDelta(t, 100, body.Velocity().X, 1e-6)

	s.Step(dt)
	assert.InDelta(t, 100, body.Velocity().X, 1e-6, "batch must not be applied twice")
	assert.Equal(t, 0, s.Batches.Len())
	assert.Equal(t, uint64(1), s.Batches.LastID())

	owner, _ := s.Fighter(1)
	assert.Greater(t, body.Position().X, components.Body.Get(owner).Position().X)
}

func TestUnpairedMoveResolvesToNothing(t *testing.T) {
	s := newSim(t, 1)
	s.SetInput(1, hold(cfg.ActionRight))
	s.Step(dt)
	s.SetInput(1, hold(cfg.ActionRight, cfg.ActionAttackB))
	s.Step(dt)
	s.SetInput(1, hold(cfg.ActionRight, cfg.ActionAttackA))
	s.Step(dt)

	assert.Empty(t, projectiles(s))
	assert.Equal(t, uint64(1), s.Batches.LastID(), "batch was created")
	assert.Equal(t, 0, s.Batches.Len(), "and dropped after one attempt")

	fighter, _ := s.Fighter(1)
	assert.InDelta(t, 0, components.Body.Get(fighter).Velocity().X, 1e-6)

	s.Step(dt)
	assert.Equal(t, uint64(1), s.Batches.LastID())
}

func TestCooldownSuppressesRepeat(t *testing.T) {
	s := newSim(t, 1)
	fighter, _ := s.Fighter(1)
	components.Fighter.Get(fighter).Dirs.Set(combat.DirRight, true)

	s.Execute(fighter, combat.ComboOneTwo)
	s.Execute(fighter, combat.ComboOneTwo)
	assert.Len(t, projectiles(s), 1)

	s.Now += cfg.Combat.BufferTimeout * 4
	s.Execute(fighter, combat.ComboOneTwo)
	assert.Len(t, projectiles(s), 2)
}

func TestUnboundComboIsInert(t *testing.T) {
	s := newSim(t, 1)
	fighter, _ := s.Fighter(1)
	s.Execute(fighter, combat.ComboTwoTwo)
	assert.Empty(t, projectiles(s))
	assert.Equal(t, 0, s.Cooldowns.Len())
}

func TestStaleBufferDoesNotFire(t *testing.T) {
	s := newSim(t, 1)
	s.SetInput(1, hold(cfg.ActionAttackA))
	s.Step(dt)
	s.SetInput(1, hold())
	for i := 0; i < 60; i++ {
		s.Step(dt)
	}
	s.SetInput(1, hold(cfg.ActionAttackB))
	s.Step(dt)
	assert.Empty(t, projectiles(s))
	assert.Equal(t, uint64(0), s.Batches.LastID())
}

func TestTwoFighterJumpReset(t *testing.T) {
	s := newSim(t, 1, 2, 3)
	a, _ := s.Fighter(1)
	b, _ := s.Fighter(2)
	c, _ := s.Fighter(3)
	for _, e := range []*donburi.Entry{a, b, c} {
		components.Fighter.Get(e).Jumps.Available = 0
	}

	feet := contactSide{kind: combat.ColliderJumpReset, fighter: a}
	hull := contactSide{kind: combat.ColliderSolid, fighter: b}

	s.resolveContact(physics.ContactStarted, feet, hull)
	assert.Equal(t, uint32(2), components.Fighter.Get(a).Jumps.Available)
	assert.Equal(t, uint32(2), components.Fighter.Get(b).Jumps.Available)
	assert.Equal(t, uint32(0), components.Fighter.Get(c).Jumps.Available)

	s.resolveContact(physics.ContactStopped, feet, hull)
	assert.Equal(t, uint32(1), components.Fighter.Get(a).Jumps.Available)
	assert.Equal(t, uint32(1), components.Fighter.Get(b).Jumps.Available)
	assert.Equal(t, uint32(0), components.Fighter.Get(c).Jumps.Available)
}

func TestTwoFighterHullContactResetsJumps(t *testing.T) {
	s := newSim(t, 1, 2)
	a, _ := s.Fighter(1)
	b, _ := s.Fighter(2)
	components.Fighter.Get(a).Jumps.Available = 0
	components.Fighter.Get(b).Jumps.Available = 0

	hullA := contactSide{kind: combat.ColliderSolid, fighter: a}
	hullB := contactSide{kind: combat.ColliderSolid, fighter: b}

	s.resolveContact(physics.ContactStarted, hullA, hullB)
	assert.Equal(t, uint32(2), components.Fighter.Get(a).Jumps.Available)
	assert.Equal(t, uint32(2), components.Fighter.Get(b).Jumps.Available)

	s.resolveContact(physics.ContactStopped, hullB, hullA)
	assert.Equal(t, uint32(1), components.Fighter.Get(a).Jumps.Available)
	assert.Equal(t, uint32(1), components.Fighter.Get(b).Jumps.Available)
}

func TestLoneFighterJumpResetAndDominance(t *testing.T) {
	s := newSim(t, 1)
	a, _ := s.Fighter(1)
	j := &components.Fighter.Get(a).Jumps
	j.Available = 0

	ground := contactSide{kind: combat.ColliderSolid}
	feet := contactSide{kind: combat.ColliderJumpReset, fighter: a}

	s.resolveContact(physics.ContactStarted, feet, ground)
	assert.Equal(t, uint32(2), j.Available)
	assert.True(t, j.Dominance)

	j.Available = 0
	s.updateDominance(s.ECS)
	assert.Equal(t, uint32(2), j.Available)

	s.resolveContact(physics.ContactStopped, ground, feet)
	assert.Equal(t, uint32(1), j.Available)
	assert.False(t, j.Dominance)
}

func TestProjectileHitRules(t *testing.T) {
	s := newSim(t, 1, 2)
	shooter, _ := s.Fighter(1)
	victim, _ := s.Fighter(2)
	components.Fighter.Get(shooter).Dirs.Set(combat.DirRight, true)
	s.Execute(shooter, combat.ComboOneTwo)
	ps := projectiles(s)
	require.Len(t, ps, 1)
	p := ps[0]
	components.Projectile.Get(p).Pierce = 5
	health := components.Health.Get(victim)

	s.projectileHit(p, contactSide{kind: combat.ColliderSolid, fighter: shooter})
	assert.Equal(t, 100.0, components.Health.Get(shooter).Current, "no self damage")

	s.projectileHit(p, contactSide{kind: combat.ColliderJumpReset, fighter: victim})
	assert.Equal(t, 100.0, health.Current, "sensors take no damage")
	assert.Equal(t, uint32(5), components.Projectile.Get(p).Pierce)

	s.projectileHit(p, contactSide{kind: combat.ColliderSolid, fighter: victim})
	assert.Equal(t, 70.0, health.Current)
	assert.Equal(t, uint32(4), components.Projectile.Get(p).Pierce)

	for i := 0; i < 3; i++ {
		s.projectileHit(p, contactSide{kind: combat.ColliderSolid, fighter: victim})
	}
	assert.Equal(t, 0.0, health.Current, "health clamps at zero")
	assert.Equal(t, uint32(1), components.Projectile.Get(p).Pierce)

	s.projectileHit(p, contactSide{kind: combat.ColliderSolid, fighter: victim})
	assert.Equal(t, 0.0, health.Current)

	s.Step(dt)
	_, alive := s.Fighter(2)
	assert.False(t, alive, "knocked out fighter despawns")
	assert.Empty(t, projectiles(s), "spent projectile despawns")
}

func TestProjectileLifetime(t *testing.T) {
	s := newSim(t, 1)
	fighter, _ := s.Fighter(1)
	s.Execute(fighter, combat.ComboOneTwo)
	require.Len(t, projectiles(s), 1)

	for i := 0; i < 29; i++ {
		s.Step(dt)
	}
	assert.Len(t, projectiles(s), 1)
	for i := 0; i < 3; i++ {
		s.Step(dt)
	}
	assert.Empty(t, projectiles(s))
}

func TestSyncHonoursRotationInherit(t *testing.T) {
	s := newSim(t, 1)
	fighter, _ := s.Fighter(1)
	body := components.Body.Get(fighter)
	body.SetAngle(0.5)
	s.Step(dt)

	pos := body.Position()
	core := components.Transform.Get(fighter)
	assert.InDelta(t, 0.5, core.Rot, 1e-9)
	anchor := gamemath.V(10, -20).Rotate(0.5)
	assert.InDelta(t, pos.X-anchor.X, core.Pos.X, 1e-9)
	assert.InDelta(t, pos.Y-anchor.Y, core.Pos.Y, 1e-9)

	var limb *donburi.Entry
	for _, dep := range components.SyncGroup.Get(fighter).Dependents[1:] {
		e := s.ECS.World.Entry(dep.Entity)
		if e.HasComponent(components.Visual) && components.Visual.Get(e).Asset == "hand" {
			limb = e
		}
	}
	require.NotNil(t, limb)
	lt := components.Transform.Get(limb)
	assert.Equal(t, 0.0, lt.Rot)
	assert.InDelta(t, pos.X+5, lt.Pos.X, 1e-9)
	assert.InDelta(t, pos.Y, lt.Pos.Y, 1e-9)
}

func TestDeathZoneDespawnsGroup(t *testing.T) {
	s := newSim(t, 1)
	fighter, _ := s.Fighter(1)
	pos := components.Body.Get(fighter).Position()
	deps := components.SyncGroup.Get(fighter).Dependents

	require.NoError(t, s.LoadArena(&leveldata.CollisionData{
		MapWidth:   400,
		MapHeight:  400,
		DeathZones: []leveldata.Rect{{X: pos.X - 50, Y: pos.Y - 50, W: 100, H: 100}},
	}))
	s.Step(dt)

	_, ok := s.Fighter(1)
	assert.False(t, ok)
	for _, d := range deps {
		assert.False(t, s.ECS.World.Valid(d.Entity))
	}
	assert.Empty(t, s.FighterIDs())
}

func TestLandingOnWall(t *testing.T) {
	s := NewSim(zap.NewNop())
	require.NoError(t, s.LoadArena(&leveldata.CollisionData{
		MapWidth:   400,
		MapHeight:  400,
		SolidRects: []leveldata.Rect{{X: 0, Y: 0, W: 400, H: 10}},
	}))
	_, err := s.AddFighter(1, "p", dummy(t), gamemath.V(100, 30))
	require.NoError(t, err)
	fighter, _ := s.Fighter(1)
	components.Fighter.Get(fighter).Jumps.Available = 0

	s.Step(dt)
	j := components.Fighter.Get(fighter).Jumps
	assert.True(t, j.Dominance)
	assert.Equal(t, uint32(2), j.Available)
}

func TestMissingCorePhysicsObject(t *testing.T) {
	s := NewSim(zap.NewNop())
	ch := dummy(t)
	ch.Core.PhysObjID = "nope"
	_, err := s.AddFighter(1, "p", ch, gamemath.V(0, 0))
	assert.ErrorIs(t, err, factory.ErrMissingPhysicsObject)
	assert.Empty(t, s.FighterIDs())
}

func TestHealthBarEases(t *testing.T) {
	s := newSim(t, 1)
	fighter, _ := s.Fighter(1)
	var bar *components.HealthBarData
	components.HealthBar.Each(s.ECS.World, func(e *donburi.Entry) {
		bar = components.HealthBar.Get(e)
	})
	require.NotNil(t, bar)

	components.Health.Get(fighter).Damage(50)
	s.Step(dt)
	assert.Less(t, bar.Shown, 1.0)
	assert.Greater(t, bar.Shown, 0.5)

	for i := 0; i < 30; i++ {
		s.Step(dt)
	}
	assert.InDelta(t, 0.5, bar.Shown, 1e-6)
}
