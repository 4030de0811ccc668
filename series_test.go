package geodesic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinCosSeries(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		x := (rng.Float64() - 0.5) * 2 * math.Pi
		sinx, cosx := math.Sincos(x)

		c := make([]float64, 1+rng.Intn(7))
		for j := range c {
			c[j] = rng.Float64() - 0.5
		}

		var want float64
		for j := 1; j < len(c); j++ {
			want += c[j] * math.Sin(2*float64(j)*x)
		}
		assert.InDelta(t, want, sinCosSeries(true, sinx, cosx, c), 1e-14)

		want = 0
		for j := 0; j < len(c); j++ {
			want += c[j] * math.Cos(float64(2*j+1)*x)
		}
		assert.InDelta(t, want, sinCosSeries(false, sinx, cosx, c), 1e-14)
	}
}

func TestC1Reversion(t *testing.T) {
	// tau = sig + sum(C1 sin(2 l sig)) is inverted by
	// sig = tau + sum(C1' sin(2 l tau)).
	for _, eps := range []float64{0, 1e-4, 1e-3, 0.005} {
		var c1 c1Coeffs
		var c1p c1pCoeffs
		c1f(eps, &c1)
		c1pf(eps, &c1p)
		for sig := -3.0; sig <= 3; sig += 0.25 {
			ssig, csig := math.Sincos(sig)
			tau := sig + sinCosSeries(true, ssig, csig, c1[:])
			stau, ctau := math.Sincos(tau)
			got := tau + sinCosSeries(true, stau, ctau, c1p[:])
			assert.InDelta(t, sig, got, 1e-13, "eps=%v sig=%v", eps, sig)
		}
	}
}

func TestEpsOf(t *testing.T) {
	assert.Equal(t, 0.0, epsOf(0))
	for _, k2 := range []float64{1e-6, 0.5, 0.0067, 3} {
		k := math.Sqrt(1 + k2)
		assert.InDelta(t, (k-1)/(k+1), epsOf(k2), 1e-15)
	}
}

func TestSeriesLeadingTerms(t *testing.T) {
	assert.Equal(t, 0.0, a1m1f(0))
	assert.Equal(t, 0.0, a2m1f(0))
	eps := 1e-3
	e2 := eps * eps
	assert.InDelta(t, (1+e2/4+e2*e2/64+e2*e2*e2/256)/(1-eps)-1, a1m1f(eps), 1e-15)
	assert.InDelta(t, (1-3*e2/4-7*e2*e2/64-11*e2*e2*e2/256)/(1+eps)-1, a2m1f(eps), 1e-15)

	var c1 c1Coeffs
	c1f(eps, &c1)
	assert.InDelta(t, -eps/2, c1[1], 1e-9)
	assert.InDelta(t, -e2/16, c1[2], 1e-12)

	var c2 c2Coeffs
	c2f(eps, &c2)
	assert.InDelta(t, eps/2, c2[1], 1e-9)
	assert.InDelta(t, 3*e2/16, c2[2], 1e-12)
}

func TestSphereSeries(t *testing.T) {
	// On a sphere (n = 0) the series reduce to their n^0 terms.
	a3x := generateA3(0)
	assert.Equal(t, 1.0, a3x[nA3x-1])
	assert.Equal(t, -0.5, a3x[nA3x-2])

	c3x := generateC3(0)
	assert.Equal(t, 0.25, c3x[nC3-2])

	c4x := generateC4(0)
	assert.InDelta(t, 2.0/3, c4x[nC4-1], 1e-16)
	assert.InDelta(t, -0.2, c4x[nC4-2], 1e-16)
}

func TestAstroid(t *testing.T) {
	tests := [][2]float64{
		{-0.5, 0.1}, {0.3, 0.7}, {-2, 0.01}, {1, 1}, {-0.9, 1e-3}, {5, 0.2},
	}
	for _, tt := range tests {
		x, y := tt[0], tt[1]
		k := astroid(x, y)
		assert.Greater(t, k, 0.0)
		r := k*k*k*k + 2*k*k*k - (x*x+y*y-1)*k*k - 2*y*y*k - y*y
		assert.InDelta(t, 0, r, 1e-12, "x=%v y=%v", x, y)
	}
	// Inside the astroid on the x axis the root is zero.
	assert.Equal(t, 0.0, astroid(-0.9, 0))
}
