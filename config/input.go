package config

// ActionID represents a logical fighter action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionAttackA
	ActionAttackB
	ActionReset
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	"none", "up", "down", "left", "right", "attack_a", "attack_b", "reset",
}

func (a ActionID) String() string {
	if a >= 0 && a < ActionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction maps a name back to its action.
func ParseAction(name string) (ActionID, bool) {
	for i, n := range actionNames {
		if n == name {
			return ActionID(i), true
		}
	}
	return ActionNone, false
}
