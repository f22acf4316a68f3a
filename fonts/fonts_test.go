package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaledMeasure(t *testing.T) {
	LoadDefaults()

	w1, h1 := Regular.Get().Measure("abc")
	w3, h3 := Title.Get().Measure("abc")
	assert.Greater(t, w1, 0.0)
	assert.InDelta(t, w1*3, w3, 1e-9)
	assert.InDelta(t, h1*3, h3, 1e-9)
}

func TestMissingFontPanics(t *testing.T) {
	assert.Panics(t, func() { FontName("nope").Get() })
}
