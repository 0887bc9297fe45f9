package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-td-core/pkg/utils"
)

func TestDerivativeSuppressedOnFirstCompute(t *testing.T) {
	a := New[Scalar](Gains{P: 0, I: 0, D: 1})
	a.SetTarget(100)

	assert.Equal(t, Scalar(0), a.Compute(0.1, 3))

	// error moves from 97 to 90 over 0.5s
	out := a.Compute(0.5, 10)
	assert.InDelta(t, -14.0, float64(out), 1e-9)
}

func TestProportionalAndIntegral(t *testing.T) {
	a := New[Scalar](Gains{P: 2, I: 0.5, D: 0})
	a.SetTarget(10)

	// error 10, integral 10*0.5
	assert.InDelta(t, 22.5, float64(a.Compute(0.5, 0)), 1e-9)
	// error 6, integral 5 + 6*0.5
	assert.InDelta(t, 16.0, float64(a.Compute(0.5, 4)), 1e-9)

	lastErr, integral, primed := a.Terms()
	assert.Equal(t, Scalar(6), lastErr)
	assert.InDelta(t, 8.0, float64(integral), 1e-9)
	assert.True(t, primed)
}

func TestSetTargetKeepsHistory(t *testing.T) {
	a := New[Scalar](Gains{P: 0, I: 1, D: 0})
	a.SetTarget(4)
	a.Compute(1, 0)

	a.SetTarget(-4)
	_, integral, primed := a.Terms()
	assert.Equal(t, Scalar(4), integral)
	assert.True(t, primed)
	assert.Equal(t, Scalar(-4), a.Target())
}

func TestIntegralHasNoWindupLimit(t *testing.T) {
	a := New[Scalar](Gains{I: 1})
	a.SetTarget(1)
	for i := 0; i < 1000; i++ {
		a.Compute(1, 0)
	}
	_, integral, _ := a.Terms()
	assert.Equal(t, Scalar(1000), integral)
}

func TestVectorAxisConverges(t *testing.T) {
	a := New[utils.Vec3](Gains{P: 0.2, I: 0, D: 0.01})
	target := utils.V3(5, -3, 2)
	a.SetTarget(target)

	aim := utils.Vec3{}
	for i := 0; i < 200; i++ {
		aim = aim.Add(a.Compute(1.0/60.0, aim))
	}
	assert.InDelta(t, 0, aim.Distance(target), 1e-3)
}
