// Package controls turns keyboard and gamepad state into fighter buttons for
// the local client.
package controls

import (
	"fmt"

	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/settings"
	"github.com/hajimehoshi/ebiten/v2"
)

// Keymap lists the keys bound to each action.
type Keymap [cfg.ActionCount][]ebiten.Key

// Parse resolves a saved binding. Key names are the ones ebiten.Key
// marshals to, e.g. "W" or "ArrowUp".
func Parse(b settings.Binding) (Keymap, error) {
	var km Keymap
	for name, keyName := range b {
		action, ok := cfg.ParseAction(name)
		if !ok || action == cfg.ActionNone {
			return Keymap{}, fmt.Errorf("unknown action %q", name)
		}
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(keyName)); err != nil {
			return Keymap{}, fmt.Errorf("action %s: %w", name, err)
		}
		km[action] = append(km[action], key)
	}
	return km, nil
}

// Held reports which actions have at least one pressed key.
func (k Keymap) Held(pressed func(ebiten.Key) bool) components.Buttons {
	var b components.Buttons
	for action, keys := range k {
		for _, key := range keys {
			if pressed(key) {
				b[action] = true
				break
			}
		}
	}
	return b
}

// Pad maps standard gamepad buttons to actions.
var Pad = [cfg.ActionCount][]ebiten.StandardGamepadButton{
	cfg.ActionUp:      {ebiten.StandardGamepadButtonLeftTop, ebiten.StandardGamepadButtonRightBottom},
	cfg.ActionDown:    {ebiten.StandardGamepadButtonLeftBottom},
	cfg.ActionLeft:    {ebiten.StandardGamepadButtonLeftLeft},
	cfg.ActionRight:   {ebiten.StandardGamepadButtonLeftRight},
	cfg.ActionAttackA: {ebiten.StandardGamepadButtonRightLeft},
	cfg.ActionAttackB: {ebiten.StandardGamepadButtonRightTop},
	cfg.ActionReset:   {ebiten.StandardGamepadButtonCenterRight},
}

// stickDeadzone is how far the left stick must move to count as a press.
const stickDeadzone = 0.5

// Seat polls one local player: a keymap plus, when connected, a gamepad.
type Seat struct {
	Keys    Keymap
	Gamepad ebiten.GamepadID
	HasPad  bool
}

// Poll reads the live keyboard and gamepad.
func (s *Seat) Poll() components.Buttons {
	b := s.Keys.Held(ebiten.IsKeyPressed)
	if !s.HasPad || !ebiten.IsStandardGamepadLayoutAvailable(s.Gamepad) {
		return b
	}
	for action, buttons := range Pad {
		for _, btn := range buttons {
			if ebiten.IsStandardGamepadButtonPressed(s.Gamepad, btn) {
				b[action] = true
			}
		}
	}
	x := ebiten.StandardGamepadAxisValue(s.Gamepad, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(s.Gamepad, ebiten.StandardGamepadAxisLeftStickVertical)
	b[cfg.ActionLeft] = b[cfg.ActionLeft] || x < -stickDeadzone
	b[cfg.ActionRight] = b[cfg.ActionRight] || x > stickDeadzone
	b[cfg.ActionUp] = b[cfg.ActionUp] || y < -stickDeadzone
	b[cfg.ActionDown] = b[cfg.ActionDown] || y > stickDeadzone
	return b
}

// AssignGamepads hands connected gamepads to seats in order.
func AssignGamepads(seats []*Seat) {
	ids := ebiten.AppendGamepadIDs(nil)
	for i, s := range seats {
		s.HasPad = i < len(ids)
		if s.HasPad {
			s.Gamepad = ids[i]
		}
	}
}
