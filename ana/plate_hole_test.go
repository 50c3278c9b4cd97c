package ana

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlateHole(t *testing.T) {
	var (
		sig = 100.
		ph  = NewPlateHole(2, 3, 0.5, sig, 0)
	)
	// Perpendicular to the load the hoop stress is three times the load
	sx, sy, sxy := ph.Stress(2, 3.5)
	assert.InDelta(t, 3*sig, sx, 1.e-10)
	assert.InDelta(t, 0, sy, 1.e-10)
	assert.InDelta(t, 0, sxy, 1.e-10)
	// On the load axis the hoop stress is compressive
	sx, sy, _ = ph.Stress(2.5, 3)
	assert.InDelta(t, 0, sx, 1.e-10)
	assert.InDelta(t, -sig, sy, 1.e-10)
	// Far field
	sx, sy, sxy = ph.Stress(2+1.e4, 3+1.e4)
	assert.InDelta(t, sig, sx, 1.e-4)
	assert.InDelta(t, 0, sy, 1.e-4)
	assert.InDelta(t, 0, sxy, 1.e-4)
	// Traction free hole edge
	for _, a := range []float64{0.1, 0.7, 1.3, 2.9} {
		sr, _, srt := ph.Polar(2+0.5*math.Cos(a), 3+0.5*math.Sin(a))
		assert.InDelta(t, 0, sr, 1.e-10)
		assert.InDelta(t, 0, srt, 1.e-10)
	}
	// Equal biaxial load
	ph = NewPlateHole(0, 0, 1, sig, sig)
	_, st, _ := ph.Polar(0, 1)
	assert.InDelta(t, 2*sig, st, 1.e-10)
}

func TestKt(t *testing.T) {
	E, nu := 70.e3, 0.3
	assert.InDelta(t, 3, OrthotropicHoleKt(E, E, nu, E/(2*(1+nu))), 1.e-12)
	// Stiff fibre direction concentrates more
	assert.Greater(t, OrthotropicHoleKt(140.e3, 10.e3, 0.3, 5.e3), 3.)
	assert.InDelta(t, 3, HeywoodKt(1.e-9, 1), 1.e-6)
	assert.InDelta(t, 3.14, HeywoodKt(0.2, 1), 1.e-12)
}
