package chardef

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/physics"
	"github.com/automoto/arena-mp/shared/gamemath"
	"go.uber.org/zap"
)

// Character is a definition compiled into runtime data.
type Character struct {
	Name        string
	Description string

	Moveset *combat.Moveset
	Core    Part
	Limbs   []Part
	Objects map[string]*Object
	Assets  map[string]AssetSpec

	MaxJumps  uint32
	LockJumps bool
	MaxHealth float64
	HealthBar HealthBarSpec
	NameTag   NameTagSpec
}

// Part is a visual piece of a fighter synced to one of its bodies.
type Part struct {
	Asset           string
	PhysObjID       string
	Scale           gamemath.Vec
	Offset          gamemath.Vec
	Z               float64
	Rotation        float64
	InheritRotation bool
	LookRadius      float64
	LookAngles      combat.LookAngles
}

// Object is a physics object: a body definition plus its colliders.
type Object struct {
	ID        string
	Body      physics.BodyDef
	Colliders []ColliderSpec
}

// ColliderSpec ties a shape to the combat role it plays.
type ColliderSpec struct {
	ID    string
	Shape physics.ShapeDef
	Kind  combat.ColliderKind
}

type AssetSpec struct {
	ID     string
	Vector bool
	Size   gamemath.Vec
	Radius float64
	Color  color.RGBA
}

type HealthBarSpec struct {
	Width, Height, Distance float64
}

type NameTagSpec struct {
	Distance, Size float64
}

// Object returns the named physics object.
func (c *Character) Object(id string) (*Object, bool) {
	o, ok := c.Objects[id]
	return o, ok
}

// Asset returns the named asset.
func (c *Character) Asset(id string) (AssetSpec, bool) {
	a, ok := c.Assets[id]
	return a, ok
}

// Build compiles the definition. References that point nowhere are logged and
// skipped; only structural problems fail.
func (d *Definition) Build(log *zap.Logger) (*Character, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("character", d.Info.Name))

	ch := &Character{
		Name:        d.Info.Name,
		Description: d.Info.Description,
		Moveset:     combat.NewMoveset(),
		Objects:     make(map[string]*Object),
		Assets:      make(map[string]AssetSpec),
		MaxJumps:    config.Combat.DefaultMaxJumps,
		LockJumps:   d.Descriptor.LockJumpsAtMax,
		MaxHealth:   d.Health.Maximum,
		HealthBar: HealthBarSpec{
			Width:    d.Health.Width,
			Height:   d.Health.Height,
			Distance: d.Health.Distance,
		},
		NameTag: NameTagSpec{Distance: d.NameTag.Distance, Size: d.NameTag.Size},
	}
	if d.Descriptor.MaximumJumps != nil {
		ch.MaxJumps = *d.Descriptor.MaximumJumps
	}
	if ch.MaxHealth <= 0 {
		return nil, fmt.Errorf("%w: %s: health.maximum must be positive", ErrInvalidDefinition, d.Info.Name)
	}

	for _, a := range d.Assets {
		spec, err := buildAsset(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, d.Info.Name, err)
		}
		ch.Assets[a.ID] = spec
	}

	if err := d.buildObjects(ch, log); err != nil {
		return nil, err
	}

	ch.Core = buildPart(d.Core)
	for _, c := range d.Components {
		ch.Limbs = append(ch.Limbs, buildPart(c))
	}

	d.buildMoveset(ch.Moveset, log)
	return ch, nil
}

func buildAsset(a Asset) (AssetSpec, error) {
	spec := AssetSpec{
		ID:     a.ID,
		Size:   a.Size.Vec(),
		Radius: a.Radius,
		Color:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	switch a.Kind {
	case "", "sprite":
	case "vector":
		spec.Vector = true
	default:
		return spec, fmt.Errorf("asset %s: unknown kind %q", a.ID, a.Kind)
	}
	if a.Color != "" {
		c, err := ParseColor(a.Color)
		if err != nil {
			return spec, fmt.Errorf("asset %s: %w", a.ID, err)
		}
		spec.Color = c
	}
	return spec, nil
}

// ParseColor reads #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func (d *Definition) buildObjects(ch *Character, log *zap.Logger) error {
	shapes := make(map[string]physics.ShapeDef)
	for _, c := range d.Colliders.Cuboid {
		shapes[c.ID] = physics.ShapeDef{
			Kind:       physics.ShapeBox,
			Width:      c.Width,
			Height:     c.Height,
			Offset:     c.Origin.Vec(),
			Friction:   c.Friction,
			Elasticity: c.Restitution,
		}
	}
	for _, c := range d.Colliders.Circle {
		if _, dup := shapes[c.ID]; dup {
			return fmt.Errorf("%w: %s: collider %s declared twice", ErrInvalidDefinition, d.Info.Name, c.ID)
		}
		shapes[c.ID] = physics.ShapeDef{
			Kind:       physics.ShapeCircle,
			Radius:     c.Radius,
			Offset:     c.Origin.Vec(),
			Friction:   c.Friction,
			Elasticity: c.Restitution,
		}
	}

	kinds := make(map[string]combat.ColliderKind)
	for _, id := range d.Colliders.JumpReset {
		kinds[id] = combat.ColliderJumpReset
	}
	for _, id := range d.Colliders.Death {
		kinds[id] = combat.ColliderDeath
	}

	capDef := physics.Cap{}
	if v := d.VelocityCap.MaxVelocity; v != nil {
		capDef.Velocity = v.Vec()
	}
	if v := d.VelocityCap.MaxAngVel; v != nil {
		capDef.AngVel = *v
	}
	if v := d.VelocityCap.MaxExternalForce; v != nil {
		capDef.Force = v.Vec()
	}
	if v := d.VelocityCap.MaxTorque; v != nil {
		capDef.Torque = *v
	}

	for _, po := range d.PhysicsObjects {
		if po.ID == "" {
			return fmt.Errorf("%w: %s: physics object without id", ErrInvalidDefinition, d.Info.Name)
		}
		obj := &Object{
			ID: po.ID,
			Body: physics.BodyDef{
				Mass:            po.Mass,
				GravityScale:    1,
				DisableRotation: po.DisableRotation,
				LinearDamping:   po.LinearDamping,
				AngularDamping:  po.AngularDamping,
			},
		}
		if po.GravityScale != nil {
			obj.Body.GravityScale = *po.GravityScale
		}
		for _, cid := range po.ColliderIDs {
			shape, ok := shapes[cid]
			if !ok {
				log.Warn("unknown collider", zap.String("object", po.ID), zap.String("collider", cid))
				continue
			}
			kind := kinds[cid]
			if kind != combat.ColliderSolid {
				shape.Sensor = true
			}
			obj.Colliders = append(obj.Colliders, ColliderSpec{ID: cid, Shape: shape, Kind: kind})
		}
		ch.Objects[po.ID] = obj
	}
	// velocity_cap applies to the core body only
	if core, ok := ch.Objects[d.Core.PhysObjID]; ok {
		core.Body.Cap = capDef
	}
	return nil
}

func buildPart(c Component) Part {
	p := Part{
		Asset:           c.Asset,
		PhysObjID:       c.PhysObjID,
		Scale:           gamemath.V(1, 1),
		Offset:          c.Origin.Vec(),
		Z:               c.Z,
		Rotation:        gamemath.Radians(c.Rotation),
		InheritRotation: c.EnableSyncRotation,
		LookRadius:      c.LookRadius,
		LookAngles:      c.LookAngles.resolve(),
	}
	if c.Scale != nil {
		p.Scale = c.Scale.Vec()
	}
	return p
}

func (a *Angles) resolve() combat.LookAngles {
	out := combat.DefaultLookAngles
	if a == nil {
		return out
	}
	for f, v := range map[combat.Facing]*float64{
		combat.FacingNone:      a.None,
		combat.FacingUp:        a.Up,
		combat.FacingDown:      a.Down,
		combat.FacingLeft:      a.Left,
		combat.FacingRight:     a.Right,
		combat.FacingUpLeft:    a.UpLeft,
		combat.FacingUpRight:   a.UpRight,
		combat.FacingDownLeft:  a.DownLeft,
		combat.FacingDownRight: a.DownRight,
	} {
		if v != nil {
			out[f] = *v
		}
	}
	return out
}

func (a DirectedAction) targets() combat.PerFacing {
	var p combat.PerFacing
	p[combat.FacingNone] = a.NoneID
	p[combat.FacingUp] = a.UpID
	p[combat.FacingDown] = a.DownID
	p[combat.FacingLeft] = a.LeftID
	p[combat.FacingRight] = a.RightID
	p[combat.FacingUpLeft] = a.UpLeftID
	p[combat.FacingUpRight] = a.UpRightID
	p[combat.FacingDownLeft] = a.DownLeftID
	p[combat.FacingDownRight] = a.DownRightID
	return p
}

func (d *Definition) buildMoveset(ms *combat.Moveset, log *zap.Logger) {
	attacks := []struct {
		key    combat.ComboKey
		attack *Attack
	}{
		{combat.ComboOneOne, d.Attacks.OneOne},
		{combat.ComboOneTwo, d.Attacks.OneTwo},
		{combat.ComboTwoOne, d.Attacks.TwoOne},
		{combat.ComboTwoTwo, d.Attacks.TwoTwo},
	}
	for _, a := range attacks {
		if a.attack == nil {
			continue
		}
		ms.Slots.Set(a.key, combat.AttackSlot{
			Actions:  append([]string(nil), a.attack.Actions...),
			Cooldown: seconds(a.attack.Cooldown),
		})
	}

	for _, a := range d.SpawnProjectileActions {
		ms.Graph.Add(combat.SpawnProjectile{ID: a.ID, Targets: a.targets(), InstanceTag: a.InstanceID})
	}
	for _, a := range d.MovementAttackActions {
		ms.Graph.Add(combat.MoveAttack{ID: a.ID, Targets: a.targets(), InstanceTag: a.InstanceID})
	}

	for _, p := range d.Projectiles {
		t := combat.ProjectileTemplate{
			ID:               p.ID,
			Asset:            p.Asset,
			Rotation:         gamemath.Radians(p.Rotation),
			Scale:            gamemath.V(1, 1),
			SpawnZ:           p.SpawnZ,
			LookRadius:       p.LookRadius,
			RelAbs:           p.RelAbs.Vec(),
			SyncOffset:       p.SyncOffset.Vec(),
			DontPhaseThrough: p.DontPhaseThrough,
			Damage:           p.Damage,
			Pierce:           p.Pierce,
			Lifetime:         seconds(p.Lifetime),
			ObeyGravity:      p.ObeyGravity,
			PhysObjID:        p.PhysObjID,
			LookAngles:       p.LookAngles.resolve(),
		}
		if p.Scale != nil {
			t.Scale = p.Scale.Vec()
		}
		ms.Projectiles[p.ID] = append(ms.Projectiles[p.ID], t)
	}

	for _, m := range d.MovementActions {
		ms.Movements[m.ID] = append(ms.Movements[m.ID], m.build())
	}

	controls := []struct {
		dir     combat.Dir
		pressed bool
		action  *MovementAction
	}{
		{combat.DirUp, true, d.Movement.PressedUp},
		{combat.DirDown, true, d.Movement.PressedDown},
		{combat.DirLeft, true, d.Movement.PressedLeft},
		{combat.DirRight, true, d.Movement.PressedRight},
		{combat.DirUp, false, d.Movement.UnpressedUp},
		{combat.DirDown, false, d.Movement.UnpressedDown},
		{combat.DirLeft, false, d.Movement.UnpressedLeft},
		{combat.DirRight, false, d.Movement.UnpressedRight},
	}
	for _, c := range controls {
		if c.action == nil {
			continue
		}
		act := c.action.build()
		if c.pressed {
			ms.Controls.Pressed[c.dir] = &act
		} else {
			ms.Controls.Unpressed[c.dir] = &act
		}
	}

	for _, slot := range attacks {
		if slot.attack == nil {
			continue
		}
		for _, id := range slot.attack.Actions {
			if _, ok := ms.Graph[id]; !ok {
				log.Warn("attack references unknown action", zap.Stringer("combo", slot.key), zap.String("action", id))
			}
		}
	}
}

func (m MovementAction) build() combat.MovementAction {
	out := combat.MovementAction{
		ID:               m.ID,
		InstanceAffected: m.InstanceAffectedID,
		SetVelocity:      m.SetVelocity.ptr(),
		AddVelocity:      m.AddVelocity.ptr(),
		SetAngVel:        m.SetAngVel,
		AddAngVel:        m.AddAngVel,
		SetForce:         m.SetExternalForce.ptr(),
		AddForce:         m.AddExternalForce.ptr(),
		SetTorque:        m.SetExternalTorque,
		AddTorque:        m.AddExternalTorque,
		SetLinDamping:    m.SetLinDamping,
		AddLinDamping:    m.AddLinDamping,
		SetAngDamping:    m.SetAngDamping,
		AddAngDamping:    m.AddAngDamping,
		RequireJumps:     m.RequireAvailableJumps,
		RequiredJumps:    1,
		JumpsRemoved:     1,
	}
	if m.RequiredJumps != nil {
		out.RequiredJumps = *m.RequiredJumps
	}
	if m.JumpsRemoved != nil {
		out.JumpsRemoved = *m.JumpsRemoved
	}
	return out
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
