package components

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// HealthData is never negative.
type HealthData struct {
	Current float64
	Max     float64
}

// Damage subtracts amount and clamps at zero.
func (h *HealthData) Damage(amount float64) {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

func (h *HealthData) Kill() {
	h.Current = 0
}

func (h *HealthData) Dead() bool {
	return h.Current <= 0
}

// Fraction is Current/Max in [0, 1].
func (h *HealthData) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	f := h.Current / h.Max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// HealthBarData is the displayed fill of a fighter's health bar. Shown eases
// toward the fighter's health fraction instead of jumping.
type HealthBarData struct {
	Fighter donburi.Entity
	Width   float64
	Height  float64
	Shown   float64

	target float64
	tween  *gween.Tween
}

// NewHealthBar returns a full bar for fighter.
func NewHealthBar(fighter donburi.Entity, width, height float64) HealthBarData {
	return HealthBarData{Fighter: fighter, Width: width, Height: height, Shown: 1, target: 1}
}

// Retarget starts easing toward fraction if it differs from the last target.
func (b *HealthBarData) Retarget(fraction float64, seconds float32) {
	if fraction == b.target {
		return
	}
	b.target = fraction
	if seconds <= 0 {
		b.Shown = fraction
		b.tween = nil
		return
	}
	b.tween = gween.New(float32(b.Shown), float32(fraction), seconds, ease.Linear)
}

// Update advances the ease by dt seconds.
func (b *HealthBarData) Update(dt float32) {
	if b.tween == nil {
		return
	}
	cur, done := b.tween.Update(dt)
	b.Shown = float64(cur)
	if done {
		b.Shown = b.target
		b.tween = nil
	}
}

var (
	Health    = donburi.NewComponentType[HealthData]()
	HealthBar = donburi.NewComponentType[HealthBarData]()
)
