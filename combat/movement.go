package combat

import "github.com/automoto/arena-mp/shared/gamemath"

// Motion is the mutable rigid-body state a movement action writes.
type Motion struct {
	Velocity   gamemath.Vec
	AngVel     float64
	Force      gamemath.Vec
	Torque     float64
	LinDamping float64
	AngDamping float64
}

// MovementAction overwrites and then accumulates motion fields. Nil fields are
// left alone.
type MovementAction struct {
	ID               string
	InstanceAffected string

	SetVelocity *gamemath.Vec
	AddVelocity *gamemath.Vec
	SetAngVel   *float64
	AddAngVel   *float64
	SetForce    *gamemath.Vec
	AddForce    *gamemath.Vec
	SetTorque   *float64
	AddTorque   *float64

	SetLinDamping *float64
	AddLinDamping *float64
	SetAngDamping *float64
	AddAngDamping *float64

	RequireJumps  bool
	RequiredJumps uint32
	JumpsRemoved  uint32
}

// Apply writes the set fields and then adds the add fields.
func (a *MovementAction) Apply(m *Motion) {
	a.set(m)
	a.add(m)
}

func (a *MovementAction) set(m *Motion) {
	if a.SetVelocity != nil {
		m.Velocity = *a.SetVelocity
	}
	if a.SetAngVel != nil {
		m.AngVel = *a.SetAngVel
	}
	if a.SetForce != nil {
		m.Force = *a.SetForce
	}
	if a.SetTorque != nil {
		m.Torque = *a.SetTorque
	}
	if a.SetLinDamping != nil {
		m.LinDamping = *a.SetLinDamping
	}
	if a.SetAngDamping != nil {
		m.AngDamping = *a.SetAngDamping
	}
}

func (a *MovementAction) add(m *Motion) {
	if a.AddVelocity != nil {
		m.Velocity = m.Velocity.Add(*a.AddVelocity)
	}
	if a.AddAngVel != nil {
		m.AngVel += *a.AddAngVel
	}
	if a.AddForce != nil {
		m.Force = m.Force.Add(*a.AddForce)
	}
	if a.AddTorque != nil {
		m.Torque += *a.AddTorque
	}
	if a.AddLinDamping != nil {
		m.LinDamping += *a.AddLinDamping
	}
	if a.AddAngDamping != nil {
		m.AngDamping += *a.AddAngDamping
	}
}

// SpendJumps gates the action on the fighter's jump counter. When the action
// requires jumps and enough are available it removes JumpsRemoved, unless the
// fighter holds collision dominance. The counter never drops below zero.
func (a *MovementAction) SpendJumps(jumps *uint32, dominance bool) bool {
	if !a.RequireJumps {
		return true
	}
	if *jumps < a.RequiredJumps {
		return false
	}
	if !dominance {
		if *jumps > a.JumpsRemoved {
			*jumps -= a.JumpsRemoved
		} else {
			*jumps = 0
		}
	}
	return true
}

// Controls are the movement actions applied to a fighter's core body on
// direction press and release edges.
type Controls struct {
	Pressed   [4]*MovementAction
	Unpressed [4]*MovementAction
}

// For returns the action bound to d for the given edge, if any.
func (c *Controls) For(d Dir, edge Edge) *MovementAction {
	if d > DirRight {
		return nil
	}
	switch edge {
	case EdgePressed:
		return c.Pressed[d]
	case EdgeReleased:
		return c.Unpressed[d]
	}
	return nil
}
