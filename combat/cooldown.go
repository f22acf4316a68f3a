package combat

import "time"

// FighterID identifies a fighter for the length of a match.
type FighterID uint64

// CooldownEntry is one running cooldown.
type CooldownEntry struct {
	Start    time.Duration
	Duration time.Duration
}

// Expired reports whether the cooldown has fully elapsed at now.
func (e CooldownEntry) Expired(now time.Duration) bool {
	return now-e.Start >= e.Duration
}

// Remaining is never negative.
func (e CooldownEntry) Remaining(now time.Duration) time.Duration {
	r := e.Duration - (now - e.Start)
	if r < 0 {
		return 0
	}
	return r
}

// CooldownTable tracks running cooldowns per fighter and combo.
type CooldownTable struct {
	entries map[FighterID]map[ComboKey]CooldownEntry
}

func NewCooldownTable() *CooldownTable {
	return &CooldownTable{entries: make(map[FighterID]map[ComboKey]CooldownEntry)}
}

// BeginIfReady starts a cooldown for (fighter, key) and returns true when no
// unexpired cooldown is running for it. Otherwise the attack is suppressed and
// false is returned.
func (t *CooldownTable) BeginIfReady(fighter FighterID, key ComboKey, duration, now time.Duration) bool {
	byKey, ok := t.entries[fighter]
	if !ok {
		byKey = make(map[ComboKey]CooldownEntry)
		t.entries[fighter] = byKey
	}
	if e, running := byKey[key]; running && !e.Expired(now) {
		return false
	}
	byKey[key] = CooldownEntry{Start: now, Duration: duration}
	return true
}

// Prune drops every expired entry.
func (t *CooldownTable) Prune(now time.Duration) {
	for fighter, byKey := range t.entries {
		for key, e := range byKey {
			if e.Expired(now) {
				delete(byKey, key)
			}
		}
		if len(byKey) == 0 {
			delete(t.entries, fighter)
		}
	}
}

// Remaining reports how long the cooldown for (fighter, key) still runs.
func (t *CooldownTable) Remaining(fighter FighterID, key ComboKey, now time.Duration) (time.Duration, bool) {
	e, ok := t.entries[fighter][key]
	if !ok {
		return 0, false
	}
	return e.Remaining(now), true
}

// Forget removes every cooldown held by fighter.
func (t *CooldownTable) Forget(fighter FighterID) {
	delete(t.entries, fighter)
}

// Len counts running entries across all fighters.
func (t *CooldownTable) Len() int {
	n := 0
	for _, byKey := range t.entries {
		n += len(byKey)
	}
	return n
}
