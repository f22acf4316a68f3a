package combat

// ColliderKind classifies a fighter or arena collider.
type ColliderKind uint8

const (
	// ColliderSolid takes projectile hits.
	ColliderSolid ColliderKind = iota
	// ColliderJumpReset restores jumps while touching something.
	ColliderJumpReset
	// ColliderDeath knocks out any fighter touching it.
	ColliderDeath
)

func (k ColliderKind) String() string {
	switch k {
	case ColliderJumpReset:
		return "jump_reset"
	case ColliderDeath:
		return "death"
	}
	return "solid"
}

// Jumps is a fighter's jump counter. Available never exceeds Max.
type Jumps struct {
	Available uint32
	Max       uint32
	// Dominance is held while a jump-reset contact is active and stops the
	// counter from decaying.
	Dominance bool
	LockAtMax bool
}

func NewJumps(max uint32, lock bool) Jumps {
	return Jumps{Available: max, Max: max, LockAtMax: lock}
}

// Land handles a jump-reset contact starting for a lone fighter.
func (j *Jumps) Land() {
	j.Available = j.Max
	j.Dominance = true
}

// Leave handles a jump-reset contact ending for a lone fighter.
func (j *Jumps) Leave() {
	j.Available = j.belowMax()
	j.Dominance = false
}

// Refill restores every jump without touching dominance.
func (j *Jumps) Refill() {
	j.Available = j.Max
}

// Decay drops to one below maximum unless dominance is held.
func (j *Jumps) Decay() {
	if !j.Dominance {
		j.Available = j.belowMax()
	}
}

// Enforce runs every tick: dominance and lock-at-max pin the counter to Max.
func (j *Jumps) Enforce() {
	if j.Dominance || j.LockAtMax {
		j.Available = j.Max
	}
	if j.Available > j.Max {
		j.Available = j.Max
	}
}

func (j *Jumps) belowMax() uint32 {
	if j.Max == 0 {
		return 0
	}
	return j.Max - 1
}
