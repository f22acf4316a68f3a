package combat

import "time"

// AttackKey is one recognised attack button.
type AttackKey uint8

const (
	ButtonA AttackKey = iota + 1
	ButtonB
)

// BufferInput is what the input source reports to an attack buffer.
type BufferInput uint8

const (
	InputButtonA BufferInput = iota + 1
	InputButtonB
	InputReset
)

// Edge is the transition a button went through this tick.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgePressed
	EdgeReleased
	EdgeHeld
)

// ComboKey is an ordered pair of attack presses.
type ComboKey uint8

const (
	ComboOneOne ComboKey = iota
	ComboOneTwo
	ComboTwoOne
	ComboTwoTwo
	comboCount
)

// Combos lists every combo key.
var Combos = [comboCount]ComboKey{ComboOneOne, ComboOneTwo, ComboTwoOne, ComboTwoTwo}

// ComboOf builds the combo key for two presses in order.
func ComboOf(first, second AttackKey) ComboKey {
	switch {
	case first == ButtonA && second == ButtonA:
		return ComboOneOne
	case first == ButtonA && second == ButtonB:
		return ComboOneTwo
	case first == ButtonB && second == ButtonA:
		return ComboTwoOne
	}
	return ComboTwoTwo
}

func (k ComboKey) String() string {
	switch k {
	case ComboOneOne:
		return "1-1"
	case ComboOneTwo:
		return "1-2"
	case ComboTwoOne:
		return "2-1"
	case ComboTwoTwo:
		return "2-2"
	}
	return "?"
}

const bufferCap = 2

// AttackBuffer queues at most two attack presses and the time of the last
// accepted one.
type AttackBuffer struct {
	keys [bufferCap]AttackKey
	n    int
	last time.Duration
}

// Record feeds one input edge into the buffer. Only press edges count; a
// reset press clears the buffer unconditionally. Presses beyond the second
// are dropped until the buffer is resolved.
func (b *AttackBuffer) Record(in BufferInput, edge Edge, now time.Duration) {
	if edge != EdgePressed {
		return
	}

	var key AttackKey
	switch in {
	case InputReset:
		b.Clear()
		return
	case InputButtonA:
		key = ButtonA
	case InputButtonB:
		key = ButtonB
	default:
		return
	}

	if b.n < bufferCap {
		b.keys[b.n] = key
		b.n++
	}
	b.last = now
}

// Resolve returns the combo key once two presses are buffered. A buffer whose
// last press is older than timeout is cleared and yields nothing.
func (b *AttackBuffer) Resolve(now, timeout time.Duration) (ComboKey, bool) {
	if b.last+timeout < now {
		b.Clear()
		return 0, false
	}
	if b.n < bufferCap {
		return 0, false
	}

	key := ComboOf(b.keys[0], b.keys[1])
	b.Clear()
	return key, true
}

func (b *AttackBuffer) Clear() {
	b.keys = [bufferCap]AttackKey{}
	b.n = 0
	b.last = 0
}

func (b *AttackBuffer) Len() int {
	return b.n
}

// Keys returns the buffered presses in order.
func (b *AttackBuffer) Keys() []AttackKey {
	return append([]AttackKey(nil), b.keys[:b.n]...)
}

// String renders the buffer the way the in-game attack indicator shows it,
// e.g. "12".
func (b *AttackBuffer) String() string {
	out := make([]byte, 0, bufferCap)
	for _, k := range b.keys[:b.n] {
		if k == ButtonA {
			out = append(out, '1')
		} else {
			out = append(out, '2')
		}
	}
	return string(out)
}
