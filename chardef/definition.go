// Package chardef loads character definition files and turns them into the
// runtime data a match needs: movesets, physics objects, colliders and assets.
package chardef

import (
	"errors"
	"fmt"

	"github.com/automoto/arena-mp/shared/gamemath"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidDefinition = errors.New("invalid character definition")
	ErrUnknownCharacter  = errors.New("unknown character")
)

// Vec2 is written as [x, y].
type Vec2 [2]float64

func (v Vec2) Vec() gamemath.Vec {
	return gamemath.V(v[0], v[1])
}

func (v *Vec2) ptr() *gamemath.Vec {
	if v == nil {
		return nil
	}
	out := v.Vec()
	return &out
}

// Definition is one character file.
type Definition struct {
	Info           Info            `yaml:"info"`
	Core           Component       `yaml:"core"`
	Components     []Component     `yaml:"components"`
	Assets         []Asset         `yaml:"assets"`
	PhysicsObjects []PhysicsObject `yaml:"physics_objects"`
	Colliders      Colliders       `yaml:"colliders"`
	Descriptor     Descriptor      `yaml:"descriptor"`
	VelocityCap    VelocityCap     `yaml:"velocity_cap"`
	Movement       Movement        `yaml:"movement"`
	Health         Health          `yaml:"health"`
	NameTag        NameTag         `yaml:"name_tag"`
	Attacks        Attacks         `yaml:"attacks"`

	Projectiles            []Projectile     `yaml:"projectiles"`
	SpawnProjectileActions []DirectedAction `yaml:"spawn_projectile_actions"`
	MovementAttackActions  []DirectedAction `yaml:"movement_attack_actions"`
	MovementActions        []MovementAction `yaml:"movement_actions"`
}

type Info struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Component is a visual piece of the character. The core component also
// names the physics object driving the whole character.
type Component struct {
	Asset              string  `yaml:"asset"`
	PhysObjID          string  `yaml:"physobj_id"`
	Scale              *Vec2   `yaml:"scale"`
	Origin             Vec2    `yaml:"origin"`
	Z                  float64 `yaml:"z"`
	Rotation           float64 `yaml:"rotation"`
	EnableSyncRotation bool    `yaml:"enable_sync_rotation"`
	LookRadius         float64 `yaml:"face_dir_looking_radius"`
	LookAngles         *Angles `yaml:"face_dir_looking_angles"`
}

// Asset is a drawable. Vector assets carry an intrinsic size that drives
// their anchor correction.
type Asset struct {
	ID     string `yaml:"id"`
	Kind   string `yaml:"kind"`
	Size   Vec2   `yaml:"size"`
	Color  string `yaml:"color"`
	Radius float64 `yaml:"radius"`
}

// Angles overrides the default look angle per facing, in degrees.
type Angles struct {
	None      *float64 `yaml:"none"`
	Up        *float64 `yaml:"up"`
	Down      *float64 `yaml:"down"`
	Left      *float64 `yaml:"left"`
	Right     *float64 `yaml:"right"`
	UpLeft    *float64 `yaml:"up_left"`
	UpRight   *float64 `yaml:"up_right"`
	DownLeft  *float64 `yaml:"down_left"`
	DownRight *float64 `yaml:"down_right"`
}

type PhysicsObject struct {
	ID              string   `yaml:"id"`
	ColliderIDs     []string `yaml:"collider_ids"`
	Mass            float64  `yaml:"mass"`
	GravityScale    *float64 `yaml:"gravity_scale"`
	DisableRotation bool     `yaml:"disable_rotation"`
	LinearDamping   float64  `yaml:"linear_damping"`
	AngularDamping  float64  `yaml:"angular_damping"`
}

type Colliders struct {
	Cuboid    []Cuboid `yaml:"cuboid"`
	Circle    []Circle `yaml:"circle"`
	JumpReset []string `yaml:"jump_reset"`
	Death     []string `yaml:"death"`
}

type Cuboid struct {
	ID          string  `yaml:"id"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Origin      Vec2    `yaml:"origin"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

type Circle struct {
	ID          string  `yaml:"id"`
	Radius      float64 `yaml:"radius"`
	Origin      Vec2    `yaml:"origin"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

type Descriptor struct {
	MaximumJumps   *uint32 `yaml:"maximum_jumps"`
	LockJumpsAtMax bool    `yaml:"lock_jumps_at_max"`
}

type VelocityCap struct {
	MaxVelocity      *Vec2    `yaml:"max_velocity"`
	MaxAngVel        *float64 `yaml:"max_angvel"`
	MaxExternalForce *Vec2    `yaml:"max_external_force"`
	MaxTorque        *float64 `yaml:"max_external_torque"`
}

// Movement binds movement actions to direction edges on the core body.
type Movement struct {
	PressedUp      *MovementAction `yaml:"pressed_up"`
	PressedDown    *MovementAction `yaml:"pressed_down"`
	PressedLeft    *MovementAction `yaml:"pressed_left"`
	PressedRight   *MovementAction `yaml:"pressed_right"`
	UnpressedUp    *MovementAction `yaml:"unpressed_up"`
	UnpressedDown  *MovementAction `yaml:"unpressed_down"`
	UnpressedLeft  *MovementAction `yaml:"unpressed_left"`
	UnpressedRight *MovementAction `yaml:"unpressed_right"`
}

type Health struct {
	Maximum  float64 `yaml:"maximum"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Distance float64 `yaml:"healthbar_distance"`
}

type NameTag struct {
	Distance float64 `yaml:"distance"`
	Size     float64 `yaml:"size"`
}

type Attacks struct {
	OneOne *Attack `yaml:"one_one"`
	OneTwo *Attack `yaml:"one_two"`
	TwoOne *Attack `yaml:"two_one"`
	TwoTwo *Attack `yaml:"two_two"`
}

// Attack lists action ids in execution order. Cooldown is in seconds.
type Attack struct {
	Actions  []string `yaml:"actions"`
	Cooldown float64  `yaml:"cooldown"`
}

type Projectile struct {
	ID               string  `yaml:"id"`
	Asset            string  `yaml:"asset"`
	Rotation         float64 `yaml:"rotation"`
	Scale            *Vec2   `yaml:"scale"`
	SpawnZ           float64 `yaml:"spawn_z_axis"`
	LookRadius       float64 `yaml:"spawn_origin_looking_radius"`
	RelAbs           Vec2    `yaml:"spawn_origin_rel_abs"`
	SyncOffset       Vec2    `yaml:"sync_offset"`
	DontPhaseThrough bool    `yaml:"dont_phase_through"`
	Damage           float64 `yaml:"damage"`
	Pierce           uint32  `yaml:"pierce"`
	// Lifetime is in seconds.
	Lifetime    float64 `yaml:"lifetime"`
	ObeyGravity bool    `yaml:"obey_gravity"`
	PhysObjID   string  `yaml:"physobj_id"`
	LookAngles  *Angles `yaml:"face_dir_looking_angles"`
}

// DirectedAction is an attack action with one target id per facing.
type DirectedAction struct {
	ID          string `yaml:"id"`
	NoneID      string `yaml:"none_id"`
	UpID        string `yaml:"up_id"`
	DownID      string `yaml:"down_id"`
	LeftID      string `yaml:"left_id"`
	RightID     string `yaml:"right_id"`
	UpLeftID    string `yaml:"up_left_id"`
	UpRightID   string `yaml:"up_right_id"`
	DownLeftID  string `yaml:"down_left_id"`
	DownRightID string `yaml:"down_right_id"`
	InstanceID  string `yaml:"instance_id"`
}

type MovementAction struct {
	ID                 string   `yaml:"id"`
	InstanceAffectedID string   `yaml:"instance_affected_id"`
	SetVelocity        *Vec2    `yaml:"set_velocity"`
	AddVelocity        *Vec2    `yaml:"add_velocity"`
	SetAngVel          *float64 `yaml:"set_angvel"`
	AddAngVel          *float64 `yaml:"add_angvel"`
	SetExternalForce   *Vec2    `yaml:"set_external_force"`
	AddExternalForce   *Vec2    `yaml:"add_external_force"`
	SetExternalTorque  *float64 `yaml:"set_external_torque"`
	AddExternalTorque  *float64 `yaml:"add_external_torque"`
	SetLinDamping      *float64 `yaml:"set_lin_damping"`
	AddLinDamping      *float64 `yaml:"add_lin_damping"`
	SetAngDamping      *float64 `yaml:"set_ang_damping"`
	AddAngDamping      *float64 `yaml:"add_ang_damping"`

	RequireAvailableJumps bool    `yaml:"require_available_jumps"`
	RequiredJumps         *uint32 `yaml:"required_jumps"`
	JumpsRemoved          *uint32 `yaml:"jumps_removed"`
}

// Parse decodes one character file.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if def.Info.Name == "" {
		return nil, fmt.Errorf("%w: info.name is empty", ErrInvalidDefinition)
	}
	return &def, nil
}
