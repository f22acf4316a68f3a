package components

import (
	"github.com/automoto/arena-mp/chardef"
	"github.com/automoto/arena-mp/combat"
	"github.com/yohamta/donburi"
)

// FighterData is the combat state of one fighter. The fighter entity is also
// the primary of its sync group and owns the core body.
type FighterData struct {
	ID        combat.FighterID
	Name      string
	Character *chardef.Character
	Dirs      combat.DirSet
	Jumps     combat.Jumps
	Buffer    combat.AttackBuffer
}

// Facing resolves the current canonical facing.
func (f *FighterData) Facing() combat.Facing {
	return f.Dirs.Facing()
}

var Fighter = donburi.NewComponentType[FighterData]()
