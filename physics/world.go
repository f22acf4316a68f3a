// Package physics adapts Chipmunk2D (jakecoffman/cp) to what the arena needs:
// rigid bodies with per-body damping, gravity scale, external force and
// velocity caps, box and circle colliders, and a queue of collision
// start/stop events.
package physics

import (
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/jakecoffman/cp"
)

const collisionTypeCollider cp.CollisionType = 1

// ContactKind is the edge a contact went through.
type ContactKind uint8

const (
	ContactStarted ContactKind = iota + 1
	ContactStopped
)

func (k ContactKind) String() string {
	if k == ContactStarted {
		return "started"
	}
	return "stopped"
}

// ContactEvent reports that two colliders started or stopped touching.
// Removed is set when the contact ended because a collider was removed from
// the world; consumers ignore such events.
type ContactEvent struct {
	Kind    ContactKind
	A, B    *Collider
	Removed bool
}

// World owns a Chipmunk space and every body and collider added to it.
type World struct {
	space    *cp.Space
	shapes   map[*cp.Shape]*Collider
	events   []ContactEvent
	removing bool
}

func NewWorld(gravity gamemath.Vec, iterations int) *World {
	space := cp.NewSpace()
	if iterations > 0 {
		space.Iterations = uint(iterations)
	}
	space.SetGravity(cp.Vector{X: gravity.X, Y: gravity.Y})

	w := &World{
		space:  space,
		shapes: make(map[*cp.Shape]*Collider),
	}
	w.setupHandlers()
	return w
}

func (w *World) setupHandlers() {
	h := w.space.NewCollisionHandler(collisionTypeCollider, collisionTypeCollider)
	h.UserData = w
	h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok {
			return true
		}
		world.record(ContactStarted, arb)
		return true
	}
	h.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok {
			return
		}
		world.record(ContactStopped, arb)
	}
}

func (w *World) record(kind ContactKind, arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	a, okA := w.shapes[shapeA]
	b, okB := w.shapes[shapeB]
	if !okA || !okB {
		return
	}
	w.events = append(w.events, ContactEvent{
		Kind:    kind,
		A:       a,
		B:       b,
		Removed: w.removing,
	})
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// Events returns and clears the contact events recorded since the last call.
func (w *World) Events() []ContactEvent {
	out := w.events
	w.events = nil
	return out
}

// SetGravity changes the world gravity.
func (w *World) SetGravity(g gamemath.Vec) {
	w.space.SetGravity(cp.Vector{X: g.X, Y: g.Y})
}

// AddStatic adds a collider fixed in world space, centred on pos.
func (w *World) AddStatic(def ShapeDef, pos gamemath.Vec) *Collider {
	def.Offset = def.Offset.Add(pos)
	shape := def.build(w.space.StaticBody)
	c := &Collider{world: w, shape: shape, Sensor: def.Sensor, UserData: def.UserData}
	w.space.AddShape(shape)
	w.shapes[shape] = c
	return c
}

// RemoveCollider removes a single collider. Contacts it was part of end with
// Removed set.
func (w *World) RemoveCollider(c *Collider) {
	if c == nil || c.removed {
		return
	}
	w.removing = true
	w.space.RemoveShape(c.shape)
	w.removing = false
	delete(w.shapes, c.shape)
	c.removed = true
}

// ColliderCount is the number of live colliders.
func (w *World) ColliderCount() int {
	return len(w.shapes)
}

// EachCollider visits every live collider.
func (w *World) EachCollider(fn func(c *Collider)) {
	for _, c := range w.shapes {
		fn(c)
	}
}
