package combat

import (
	"time"

	"github.com/automoto/arena-mp/shared/gamemath"
)

// AttackSlot is the attack bound to one combo key.
type AttackSlot struct {
	Actions  []string
	Cooldown time.Duration
}

// AttackSlots binds each combo key to an optional attack.
type AttackSlots struct {
	slots [comboCount]*AttackSlot
}

func (s *AttackSlots) Set(key ComboKey, slot AttackSlot) {
	if key < comboCount {
		s.slots[key] = &slot
	}
}

// Get returns the attack bound to key. Unbound keys are inert.
func (s *AttackSlots) Get(key ComboKey) (AttackSlot, bool) {
	if key >= comboCount || s.slots[key] == nil {
		return AttackSlot{}, false
	}
	return *s.slots[key], true
}

// AttackAction is either SpawnProjectile or MoveAttack.
type AttackAction interface {
	attackAction()
	ActionID() string
}

// SpawnProjectile spawns the projectile templates registered under the
// facing-specific id and files their handles under InstanceTag.
type SpawnProjectile struct {
	ID          string
	Targets     PerFacing
	InstanceTag string
}

// MoveAttack applies the facing-specific movement templates to whatever a
// sibling SpawnProjectile filed under the same instance tag.
type MoveAttack struct {
	ID          string
	Targets     PerFacing
	InstanceTag string
}

func (SpawnProjectile) attackAction() {}
func (MoveAttack) attackAction()      {}

func (a SpawnProjectile) ActionID() string { return a.ID }
func (a MoveAttack) ActionID() string      { return a.ID }

// AttackGraph maps a symbolic action id to the actions it expands to, in
// declaration order.
type AttackGraph map[string][]AttackAction

func (g AttackGraph) Add(a AttackAction) {
	g[a.ActionID()] = append(g[a.ActionID()], a)
}

// ProjectileTemplate describes one projectile an attack can spawn. Several
// templates may share an id; they spawn together.
type ProjectileTemplate struct {
	ID    string
	Asset string
	// Rotation is the initial body rotation in radians.
	Rotation         float64
	Scale            gamemath.Vec
	SpawnZ           float64
	LookRadius       float64
	RelAbs           gamemath.Vec
	SyncOffset       gamemath.Vec
	DontPhaseThrough bool
	Damage           float64
	Pierce           uint32
	Lifetime         time.Duration
	ObeyGravity      bool
	PhysObjID        string
	LookAngles       LookAngles
}

// SpawnPoint is where the projectile appears for an owner at origin facing f.
func (t ProjectileTemplate) SpawnPoint(origin gamemath.Vec, f Facing) gamemath.Vec {
	return origin.Add(t.RelAbs).Add(t.LookAngles.Offset(f, t.LookRadius))
}

// Moveset is everything a character can do, built once per character when
// definitions are loaded.
type Moveset struct {
	Slots       AttackSlots
	Graph       AttackGraph
	Projectiles map[string][]ProjectileTemplate
	Movements   map[string][]MovementAction
	Controls    Controls
}

func NewMoveset() *Moveset {
	return &Moveset{
		Graph:       make(AttackGraph),
		Projectiles: make(map[string][]ProjectileTemplate),
		Movements:   make(map[string][]MovementAction),
	}
}
