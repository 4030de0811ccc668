package geomath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wgs84f = 1 / 298.257223563

func TestSinCosdSymmetry(t *testing.T) {
	s9, _ := SinCosd(9)
	_, c81 := SinCosd(81)
	sBig, _ := SinCosd(123456789)
	require.Equal(t, s9, c81)
	require.Equal(t, s9, -sBig)

	s, c := SinCosd(90)
	require.Equal(t, 1.0, s)
	require.Equal(t, 0.0, c)
	require.False(t, math.Signbit(c))

	s, c = SinCosd(-90)
	require.Equal(t, -1.0, s)
	require.Equal(t, 0.0, c)

	s, c = SinCosd(180)
	require.Equal(t, 0.0, s)
	require.False(t, math.Signbit(s))
	require.Equal(t, -1.0, c)

	s, _ = SinCosd(math.Copysign(0, -1))
	require.True(t, math.Signbit(s), "sin(-0) must be -0")

	for _, x := range []float64{-720, -270, -135, -45, 0, 15, 45, 135, 300, 1e6} {
		s, c := SinCosd(x)
		assert.InDelta(t, math.Sin(x*math.Pi/180), s, 1e-9, "sin %v", x)
		assert.InDelta(t, math.Cos(x*math.Pi/180), c, 1e-9, "cos %v", x)
	}

	s, c = SinCosd(math.Inf(1))
	require.True(t, math.IsNaN(s))
	require.True(t, math.IsNaN(c))
}

func TestTand(t *testing.T) {
	require.Equal(t, 1/Sq(Epsilon), Tand(90))
	require.Equal(t, -1/Sq(Epsilon), Tand(-90))
	assert.InDelta(t, 1, Tand(45), 1e-15)
	require.Equal(t, 0.0, Tand(0))
}

func TestAtan2d(t *testing.T) {
	require.Equal(t, 90.0, Atan2d(1, 0))
	require.Equal(t, -90.0, Atan2d(-1, 0))
	require.Equal(t, 180.0, Atan2d(0, -1))
	require.Equal(t, -180.0, Atan2d(math.Copysign(0, -1), -1))
	require.Equal(t, 0.0, Atan2d(0, 1))
	assert.InDelta(t, 135, Atan2d(1, -1), 1e-13)
	assert.InDelta(t, -45, Atan2d(-1, 1), 1e-13)
	assert.InDelta(t, 30, Atand(math.Sqrt(3)/3), 1e-13)
}

func TestAngNormalize(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{-180, 180},
		{180, 180},
		{540, 180},
		{-540, 180},
		{-190, 170},
		{190, -170},
		{360, 0},
		{45, 45},
	} {
		require.Equal(t, tc.want, AngNormalize(tc.in), "AngNormalize(%v)", tc.in)
	}
}

func TestAngDiff(t *testing.T) {
	d, e := AngDiff(179, -179)
	require.Equal(t, 2.0, d)
	require.Equal(t, 0.0, e)

	d, _ = AngDiff(-179, 179)
	require.Equal(t, -2.0, d)

	d, _ = AngDiff(1, 181)
	require.Equal(t, 180.0, d)

	// The small part of a large angle survives the reduction.
	y := 1e7 + 1e-9
	frac := y - 1e7
	require.NotZero(t, frac)
	d, e = AngDiff(0, y)
	assert.InDelta(t, -80+frac, d+e, 1e-15)
}

func TestAngRound(t *testing.T) {
	require.Equal(t, 0.0, AngRound(1e-20))
	require.True(t, math.Signbit(AngRound(-1e-20)))
	require.Equal(t, 0.0, AngRound(-1e-20))
	require.Equal(t, 1.0/16, AngRound(1.0/16))
	require.Equal(t, 45.0, AngRound(45))
}

func TestLatFix(t *testing.T) {
	require.True(t, math.IsNaN(LatFix(91)))
	require.True(t, math.IsNaN(LatFix(-90.5)))
	require.Equal(t, -90.0, LatFix(-90))
	require.Equal(t, 12.5, LatFix(12.5))
}

func TestSum(t *testing.T) {
	s, e := Sum(1, 1e-17)
	require.Equal(t, 1.0, s)
	require.Equal(t, 1e-17, e)

	s, e = Sum(3, 4)
	require.Equal(t, 7.0, s)
	require.Equal(t, 0.0, e)
}

func TestPolyVal(t *testing.T) {
	p := []float64{9, 1, 2, 3}
	require.Equal(t, 0.0, PolyVal(-1, p, 0, 2))
	require.Equal(t, 9.0, PolyVal(0, p, 0, 2))
	require.Equal(t, 5.0, PolyVal(1, p, 1, 3))
	require.Equal(t, 11.0, PolyVal(2, p, 1, 2))
}

func TestNorm(t *testing.T) {
	x, y := Norm(3, 4)
	require.InDelta(t, 0.6, x, 1e-16)
	require.InDelta(t, 0.8, y, 1e-16)
}

func TestTaupfTauf(t *testing.T) {
	es := math.Sqrt(wgs84f * (2 - wgs84f))
	for _, tau := range []float64{-1e3, -70, -3, -1, -0.1, 0, 0.01, 0.5, 1, 7, 80, 1e5} {
		taup := Taupf(tau, es)
		require.InDelta(t, tau, Tauf(taup, es), 1e-12*math.Max(1, math.Abs(tau)), "tau %v", tau)
		if tau != 0 {
			require.Less(t, math.Abs(taup), math.Abs(tau))
		}
	}
	require.Equal(t, 2.5, Taupf(2.5, 0))
	require.True(t, math.IsInf(Taupf(math.Inf(1), es), 1))
	require.True(t, math.IsNaN(Tauf(math.NaN(), es)))

	// Prolate ellipsoids use the negative signed eccentricity.
	esp := -math.Sqrt(0.01)
	require.InDelta(t, 0.3, Tauf(Taupf(0.3, esp), esp), 1e-14)
}

func TestAuxiliaryLatitudes(t *testing.T) {
	for _, phi := range []float64{-90, -60, -10, 0, 1e-3, 30, 45, 89.9, 90} {
		beta := ParametricLatitude(phi, wgs84f)
		assert.InDelta(t, phi, GeodeticFromParametric(beta, wgs84f), 1e-12)
		theta := GeocentricLatitude(phi, wgs84f)
		assert.InDelta(t, phi, GeodeticFromGeocentric(theta, wgs84f), 1e-12)
		chi := ConformalLatitude(phi, wgs84f)
		assert.InDelta(t, phi, GeodeticFromConformal(chi, wgs84f), 1e-12)
		if phi > 0 && phi < 90 {
			assert.Less(t, theta, beta)
			assert.Less(t, beta, phi)
			assert.Less(t, chi, phi)
		}
	}
	require.Equal(t, 90.0, ConformalLatitude(90, wgs84f))
	require.True(t, math.IsNaN(ParametricLatitude(100, wgs84f)))
	require.InDelta(t, 45.0, ParametricLatitude(45, 0), 1e-13)
}
