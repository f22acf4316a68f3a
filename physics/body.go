package physics

import (
	"math"

	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/jakecoffman/cp"
)

// ShapeKind selects the collider geometry.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// ShapeDef describes one collider. Offset is relative to the body origin.
type ShapeDef struct {
	Kind       ShapeKind
	Width      float64
	Height     float64
	Radius     float64
	Offset     gamemath.Vec
	Friction   float64
	Elasticity float64
	Sensor     bool
	UserData   interface{}
}

func (d ShapeDef) build(body *cp.Body) *cp.Shape {
	var shape *cp.Shape
	switch d.Kind {
	case ShapeCircle:
		shape = cp.NewCircle(body, d.Radius, cp.Vector{X: d.Offset.X, Y: d.Offset.Y})
	default:
		shape = cp.NewBox2(body, cp.BB{
			L: d.Offset.X - d.Width/2,
			B: d.Offset.Y - d.Height/2,
			R: d.Offset.X + d.Width/2,
			T: d.Offset.Y + d.Height/2,
		}, 0)
	}
	shape.SetFriction(d.Friction)
	shape.SetElasticity(d.Elasticity)
	shape.SetCollisionType(collisionTypeCollider)
	if d.Sensor {
		shape.SetSensor(true)
	}
	return shape
}

func (d ShapeDef) area() float64 {
	if d.Kind == ShapeCircle {
		return math.Pi * d.Radius * d.Radius
	}
	return d.Width * d.Height
}

func (d ShapeDef) moment(mass float64) float64 {
	if d.Kind == ShapeCircle {
		return cp.MomentForCircle(mass, 0, d.Radius, cp.Vector{X: d.Offset.X, Y: d.Offset.Y})
	}
	// parallel axis for the offset
	return cp.MomentForBox(mass, d.Width, d.Height) + mass*(d.Offset.X*d.Offset.X+d.Offset.Y*d.Offset.Y)
}

// BodyDef describes a dynamic rigid body.
type BodyDef struct {
	Mass            float64
	GravityScale    float64
	DisableRotation bool
	LinearDamping   float64
	AngularDamping  float64
	Cap             Cap
	Shapes          []ShapeDef
}

// Cap clamps a body's motion every step, per axis. A zero component leaves
// that axis unclamped.
type Cap struct {
	Velocity gamemath.Vec
	AngVel   float64
	Force    gamemath.Vec
	Torque   float64
}

func (c Cap) velocity(v gamemath.Vec) gamemath.Vec {
	return gamemath.V(gamemath.ClampAbs(v.X, c.Velocity.X), gamemath.ClampAbs(v.Y, c.Velocity.Y))
}

func (c Cap) force(f gamemath.Vec) gamemath.Vec {
	return gamemath.V(gamemath.ClampAbs(f.X, c.Force.X), gamemath.ClampAbs(f.Y, c.Force.Y))
}

// Body is a dynamic rigid body. Force and Torque are persistent: they are
// applied every step until changed.
type Body struct {
	world     *World
	body      *cp.Body
	moment    float64
	colliders []*Collider
	removed   bool

	GravityScale float64
	Force        gamemath.Vec
	Torque       float64
	LinDamping   float64
	AngDamping   float64
	Cap          Cap

	UserData interface{}
}

// AddBody creates a dynamic body with its colliders at pos.
func (w *World) AddBody(def BodyDef, pos gamemath.Vec, angle float64) *Body {
	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}

	moment := math.Inf(1)
	if !def.DisableRotation {
		moment = bodyMoment(mass, def.Shapes)
	}

	cb := cp.NewBody(mass, moment)
	cb.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	cb.SetAngle(angle)

	b := &Body{
		world:        w,
		body:         cb,
		moment:       moment,
		GravityScale: def.GravityScale,
		LinDamping:   def.LinearDamping,
		AngDamping:   def.AngularDamping,
		Cap:          def.Cap,
	}
	cb.SetVelocityUpdateFunc(func(_ *cp.Body, gravity cp.Vector, _ float64, dt float64) {
		b.integrate(gravity, dt)
	})

	w.space.AddBody(cb)
	for _, sd := range def.Shapes {
		b.AddCollider(sd)
	}
	return b
}

func bodyMoment(mass float64, shapes []ShapeDef) float64 {
	var total float64
	for _, s := range shapes {
		if !s.Sensor {
			total += s.area()
		}
	}
	if total <= 0 {
		return cp.MomentForCircle(mass, 0, 1, cp.Vector{})
	}

	var moment float64
	for _, s := range shapes {
		if s.Sensor {
			continue
		}
		moment += s.moment(mass * s.area() / total)
	}
	return moment
}

// integrate replaces Chipmunk's default velocity integration so every body
// gets its own gravity scale, damping, persistent force and caps.
func (b *Body) integrate(gravity cp.Vector, dt float64) {
	b.Force = b.Cap.force(b.Force)
	b.Torque = gamemath.ClampAbs(b.Torque, b.Cap.Torque)

	v := b.body.Velocity()
	v = v.Mult(1 / (1 + dt*b.LinDamping))
	v = v.Add(gravity.Mult(b.GravityScale * dt))
	v = v.Add(cp.Vector{X: b.Force.X, Y: b.Force.Y}.Mult(dt / b.body.Mass()))

	capped := b.Cap.velocity(gamemath.V(v.X, v.Y))
	b.body.SetVelocity(capped.X, capped.Y)

	w := b.body.AngularVelocity() / (1 + dt*b.AngDamping)
	if !math.IsInf(b.moment, 1) && b.moment > 0 {
		w += b.Torque * dt / b.moment
	}
	b.body.SetAngularVelocity(gamemath.ClampAbs(w, b.Cap.AngVel))
}

// AddCollider attaches another collider to the body.
func (b *Body) AddCollider(def ShapeDef) *Collider {
	shape := def.build(b.body)
	c := &Collider{world: b.world, shape: shape, Body: b, Sensor: def.Sensor, UserData: def.UserData}
	b.world.space.AddShape(shape)
	b.world.shapes[shape] = c
	b.colliders = append(b.colliders, c)
	return c
}

// Colliders returns the body's live colliders.
func (b *Body) Colliders() []*Collider {
	return b.colliders
}

func (b *Body) Position() gamemath.Vec {
	p := b.body.Position()
	return gamemath.V(p.X, p.Y)
}

func (b *Body) SetPosition(p gamemath.Vec) {
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

// Angle is the body rotation in radians.
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

func (b *Body) SetAngle(a float64) {
	b.body.SetAngle(a)
}

func (b *Body) Velocity() gamemath.Vec {
	v := b.body.Velocity()
	return gamemath.V(v.X, v.Y)
}

func (b *Body) SetVelocity(v gamemath.Vec) {
	b.body.SetVelocity(v.X, v.Y)
}

func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

// Motion snapshots the state movement actions operate on.
func (b *Body) Motion() combat.Motion {
	return combat.Motion{
		Velocity:   b.Velocity(),
		AngVel:     b.body.AngularVelocity(),
		Force:      b.Force,
		Torque:     b.Torque,
		LinDamping: b.LinDamping,
		AngDamping: b.AngDamping,
	}
}

// SetMotion writes m back to the body.
func (b *Body) SetMotion(m combat.Motion) {
	b.body.SetVelocity(m.Velocity.X, m.Velocity.Y)
	b.body.SetAngularVelocity(m.AngVel)
	b.Force = m.Force
	b.Torque = m.Torque
	b.LinDamping = m.LinDamping
	b.AngDamping = m.AngDamping
}

// Removed reports whether the body was taken out of its world.
func (b *Body) Removed() bool {
	return b.removed
}

// RemoveBody removes the body and all of its colliders. Contacts involving
// them end with Removed set.
func (w *World) RemoveBody(b *Body) {
	if b == nil || b.removed {
		return
	}
	for _, c := range b.colliders {
		w.RemoveCollider(c)
	}
	w.space.RemoveBody(b.body)
	b.colliders = nil
	b.removed = true
}

// Collider is one shape in the world, attached to a body or static.
type Collider struct {
	world   *World
	shape   *cp.Shape
	removed bool

	// Body is nil for static colliders.
	Body     *Body
	Sensor   bool
	UserData interface{}
}

// Bounds returns the collider's world-space bounding box as left, bottom,
// right, top.
func (c *Collider) Bounds() (l, b, r, t float64) {
	bb := c.shape.BB()
	return bb.L, bb.B, bb.R, bb.T
}

func (c *Collider) Removed() bool {
	return c.removed
}
