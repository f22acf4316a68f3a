package messages

import "github.com/automoto/arena-mp/config"

// FighterInput is sent from client to server each frame with the buttons the
// player holds. The server uses the latest one received as the fighter's
// snapshot for the next tick.
type FighterInput struct {
	Sequence  uint32                   // Incrementing ID; older inputs are dropped
	Actions   map[config.ActionID]bool // Which actions are currently pressed
	Timestamp int64                    // Client timestamp (Unix ms)
}

// NewFighterInput creates a FighterInput with initialized map
func NewFighterInput(seq uint32) FighterInput {
	return FighterInput{
		Sequence: seq,
		Actions:  make(map[config.ActionID]bool),
	}
}

// Held flattens Actions into a fixed array. Unknown actions are ignored.
func (in FighterInput) Held() [config.ActionCount]bool {
	var out [config.ActionCount]bool
	for a, down := range in.Actions {
		if a > config.ActionNone && a < config.ActionCount {
			out[a] = down
		}
	}
	return out
}
