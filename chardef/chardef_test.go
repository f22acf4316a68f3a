package chardef

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
info:
  name: tester
core:
  asset: body
  physobj_id: core
components:
  - asset: hand
    physobj_id: core
    face_dir_looking_radius: 10
    face_dir_looking_angles:
      none: 90
assets:
  - id: body
    kind: vector
    size: [20, 40]
    color: "#102030"
physics_objects:
  - id: core
    collider_ids: [hull, feet, missing]
    mass: 2
    disable_rotation: true
  - id: shot
    collider_ids: [ball]
    gravity_scale: 0
colliders:
  cuboid:
    - id: hull
      width: 20
      height: 40
    - id: feet
      width: 18
      height: 4
      origin: [0, -20]
  circle:
    - id: ball
      radius: 3
  jump_reset: [feet]
descriptor:
  maximum_jumps: 3
velocity_cap:
  max_velocity: [100, 200]
movement:
  pressed_up:
    require_available_jumps: true
    set_velocity: [0, 300]
  unpressed_left:
    add_external_force: [5, 0]
health:
  maximum: 50
attacks:
  one_two:
    actions: [fire, nothing]
    cooldown: 0.5
projectiles:
  - id: ball
    physobj_id: shot
    damage: 4
    pierce: 2
    lifetime: 1.5
  - id: ball
    physobj_id: shot
    spawn_origin_rel_abs: [0, 5]
spawn_projectile_actions:
  - id: fire
    right_id: ball
    instance_id: b
movement_attack_actions:
  - id: fire
    right_id: push
    instance_id: b
movement_actions:
  - id: push
    instance_affected_id: b
    add_velocity: [10, 0]
    required_jumps: 2
`

func build(t *testing.T, src string) *Character {
	t.Helper()
	def, err := Parse([]byte(src))
	require.NoError(t, err)
	ch, err := def.Build(nil)
	require.NoError(t, err)
	return ch
}

func TestBuildMoveset(t *testing.T) {
	ch := build(t, sample)
	ms := ch.Moveset

	slot, ok := ms.Slots.Get(combat.ComboOneTwo)
	require.True(t, ok)
	assert.Equal(t, []string{"fire", "nothing"}, slot.Actions)
	assert.Equal(t, 500*time.Millisecond, slot.Cooldown)

	_, ok = ms.Slots.Get(combat.ComboOneOne)
	assert.False(t, ok)

	actions := ms.Graph["fire"]
	require.Len(t, actions, 2)
	spawn, ok := actions[0].(combat.SpawnProjectile)
	require.True(t, ok, "spawn actions come first")
	assert.Equal(t, "ball", spawn.Targets.For(combat.FacingRight))
	assert.Equal(t, "", spawn.Targets.For(combat.FacingLeft))
	assert.Equal(t, "b", spawn.InstanceTag)
	move, ok := actions[1].(combat.MoveAttack)
	require.True(t, ok)
	assert.Equal(t, "push", move.Targets.For(combat.FacingRight))

	require.Len(t, ms.Projectiles["ball"], 2)
	assert.Equal(t, 1500*time.Millisecond, ms.Projectiles["ball"][0].Lifetime)
	assert.Equal(t, 5.0, ms.Projectiles["ball"][1].RelAbs.Y)

	push := ms.Movements["push"]
	require.Len(t, push, 1)
	assert.Equal(t, uint32(2), push[0].RequiredJumps)
	assert.Equal(t, uint32(1), push[0].JumpsRemoved)
	assert.Equal(t, "b", push[0].InstanceAffected)
}

func TestBuildControls(t *testing.T) {
	ch := build(t, sample)
	up := ch.Moveset.Controls.For(combat.DirUp, combat.EdgePressed)
	require.NotNil(t, up)
	assert.True(t, up.RequireJumps)
	assert.Equal(t, 300.0, up.SetVelocity.Y)

	left := ch.Moveset.Controls.For(combat.DirLeft, combat.EdgeReleased)
	require.NotNil(t, left)
	assert.Equal(t, 5.0, left.AddForce.X)

	assert.Nil(t, ch.Moveset.Controls.For(combat.DirDown, combat.EdgePressed))
}

func TestBuildObjects(t *testing.T) {
	ch := build(t, sample)
	assert.Equal(t, uint32(3), ch.MaxJumps)
	assert.Equal(t, 50.0, ch.MaxHealth)

	core, ok := ch.Object("core")
	require.True(t, ok)
	require.Len(t, core.Colliders, 2, "unknown collider ids are skipped")
	assert.Equal(t, combat.ColliderSolid, core.Colliders[0].Kind)
	assert.False(t, core.Colliders[0].Shape.Sensor)
	assert.Equal(t, combat.ColliderJumpReset, core.Colliders[1].Kind)
	assert.True(t, core.Colliders[1].Shape.Sensor)
	assert.Equal(t, 1.0, core.Body.GravityScale)
	assert.Equal(t, 200.0, core.Body.Cap.Velocity.Y)
	assert.True(t, core.Body.DisableRotation)

	shot, ok := ch.Object("shot")
	require.True(t, ok)
	assert.Equal(t, 0.0, shot.Body.GravityScale)
	assert.Equal(t, physics.ShapeCircle, shot.Colliders[0].Shape.Kind)
}

func TestBuildParts(t *testing.T) {
	ch := build(t, sample)
	assert.Equal(t, "core", ch.Core.PhysObjID)
	require.Len(t, ch.Limbs, 1)
	hand := ch.Limbs[0]
	assert.Equal(t, 10.0, hand.LookRadius)
	assert.Equal(t, 90.0, hand.LookAngles[combat.FacingNone])
	assert.Equal(t, 180.0, hand.LookAngles[combat.FacingLeft])

	body, ok := ch.Asset("body")
	require.True(t, ok)
	assert.True(t, body.Vector)
	assert.Equal(t, 40.0, body.Size.Y)
	assert.Equal(t, uint8(0x20), body.Color.G)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse([]byte("info: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = Parse([]byte("info:\n  name: \"\"\n"))
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	def, err := Parse([]byte("info:\n  name: x\nhealth:\n  maximum: 0\n"))
	require.NoError(t, err)
	_, err = def.Build(nil)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0x80), c.A)

	_, err = ParseColor("red")
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	fsys := fstest.MapFS{
		"chars/tester.yaml": {Data: []byte(sample)},
		"chars/readme.txt":  {Data: []byte("ignored")},
	}
	cat, err := LoadCatalog(fsys, "chars", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tester"}, cat.Names())

	ch, err := cat.Get("tester")
	require.NoError(t, err)
	assert.Equal(t, "tester", ch.Name)

	_, err = cat.Get("nobody")
	assert.ErrorIs(t, err, ErrUnknownCharacter)

	fsys["chars/broken.yaml"] = &fstest.MapFile{Data: []byte("info: [")}
	assert.Error(t, cat.Reload())
	assert.Equal(t, []string{"tester"}, cat.Names(), "failed reload keeps previous characters")
}
