// Package geomath holds the numeric building blocks used by the geodesic
// routines: degree based trigonometry that keeps exact symmetries, accurate
// angle reduction and differencing, polynomial evaluation, and conversions
// between auxiliary latitudes.
//
// None of these functions return errors. Out of range input gives NaN, and
// NaN propagates.
package geomath

import "math"

// Digits is the number of bits in the mantissa of a float64.
const Digits = 53

// Epsilon is the difference between 1 and the next float64.
const Epsilon = 0x1p-52

// Min is the smallest positive normalized float64.
const Min = 0x1p-1022

const (
	qd = 90.0
	hd = 2 * qd
	td = 2 * hd

	degree = math.Pi / hd
)

// Sq returns x*x.
func Sq(x float64) float64 {
	return x * x
}

// Sum returns the error-free sum of u and v as s = round(u + v) and the
// round-off t, so that u + v = s + t exactly.
func Sum(u, v float64) (s, t float64) {
	s = u + v
	up := s - v
	vpp := s - up
	up -= u
	vpp -= v
	t = -(up + vpp)
	return s, t
}

// PolyVal evaluates the polynomial of degree n whose coefficients, highest
// power first, are p[s], p[s+1], ..., p[s+n], using Horner's method.
// A negative n gives 0.
func PolyVal(n int, p []float64, s int, x float64) float64 {
	if n < 0 {
		return 0
	}
	y := p[s]
	for ; n > 0; n-- {
		s++
		y = y*x + p[s]
	}
	return y
}

// Remainder returns x mod y in [-y/2, y/2].
func Remainder(x, y float64) float64 {
	return math.Remainder(x, y)
}

// AngNormalize reduces the angle x (degrees) to (-180, 180].
func AngNormalize(x float64) float64 {
	y := math.Remainder(x, td)
	if y == -hd {
		return hd
	}
	return y
}

// LatFix replaces latitudes outside [-90, 90] with NaN.
func LatFix(x float64) float64 {
	if math.Abs(x) > qd {
		return math.NaN()
	}
	return x
}

// AngDiff returns the exact difference y - x of two angles (degrees),
// reduced to (-180, 180], as the rounded value d and the round-off e.
func AngDiff(x, y float64) (d, e float64) {
	d, t := Sum(AngNormalize(-x), AngNormalize(y))
	d = AngNormalize(d)
	if d == hd && t > 0 {
		return Sum(-hd, t)
	}
	return Sum(d, t)
}

// AngRound rounds an angle so that small values underflow to zero. The
// smallest gap in x is 1/16 - nextafter(1/16, 0) = 1/2^57, about 0.7 pm on
// the earth when x is in degrees. This avoids near singular cases when x is
// tiny but non-zero (e.g. 1e-200).
func AngRound(x float64) float64 {
	const z = 1.0 / 16
	y := math.Abs(x)
	if y < z {
		// z - (z - y), which must not be simplified to y
		w := z - y
		y = z - w
	}
	return math.Copysign(y, x)
}

// SinCosd returns the sine and cosine of x (degrees).
//
// The argument is reduced to [-45, 45] before calling the native
// functions, so that sin(9) == cos(81) == -sin(123456789) exactly and
// sin(-0) is -0.
func SinCosd(x float64) (sinx, cosx float64) {
	r := math.Mod(x, td)
	q := 0
	if !math.IsNaN(r) {
		q = int(math.Round(r / qd))
	}
	r -= qd * float64(q)
	r *= degree
	s, c := math.Sin(r), math.Cos(r)
	switch uint(q) & 3 {
	case 0:
		sinx, cosx = s, c
	case 1:
		sinx, cosx = c, -s
	case 2:
		sinx, cosx = -s, -c
	default:
		sinx, cosx = -c, s
	}
	// Convert -0 to 0 for cos and give sin the sign of x at zero.
	cosx += 0
	if sinx == 0 {
		sinx = math.Copysign(sinx, x)
	}
	return sinx, cosx
}

// Sind returns the sine of x (degrees).
func Sind(x float64) float64 {
	s, _ := SinCosd(x)
	return s
}

// Cosd returns the cosine of x (degrees).
func Cosd(x float64) float64 {
	_, c := SinCosd(x)
	return c
}

// Tand returns the tangent of x (degrees). Values near 90 are clamped to a
// large finite number rather than overflowing.
func Tand(x float64) float64 {
	overflow := 1 / Sq(Epsilon)
	s, c := SinCosd(x)
	if c != 0 {
		return s / c
	}
	if s < 0 {
		return -overflow
	}
	return overflow
}

// Atan2d returns atan2(y, x) in degrees, in [-180, 180]. The quadrant is
// resolved before calling math.Atan2 so that multiples of 90 come out exact
// and atan2d(+0, -1) is 180 while atan2d(-0, -1) is -180.
func Atan2d(y, x float64) float64 {
	q := 0
	if math.Abs(y) > math.Abs(x) {
		x, y = y, x
		q = 2
	}
	if math.Signbit(x) {
		x = -x
		q++
	}
	ang := math.Atan2(y, x) / degree
	switch q {
	case 1:
		ang = math.Copysign(hd, y) - ang
	case 2:
		ang = qd - ang
	case 3:
		ang = -qd + ang
	}
	return ang
}

// Atand returns atan(x) in degrees.
func Atand(x float64) float64 {
	return Atan2d(x, 1)
}

// Norm scales the vector (x, y) to unit length.
func Norm(x, y float64) (float64, float64) {
	r := math.Hypot(x, y)
	return x / r, y / r
}

// Eatanhe returns e*atanh(e*x) where e = sqrt(e^2) for es > 0 and
// -e*atan(e*x) with e = sqrt(-e^2) for es < 0, es being the signed
// eccentricity.
func Eatanhe(x, es float64) float64 {
	if es > 0 {
		return es * math.Atanh(es*x)
	}
	return -es * math.Atan(es*x)
}

// Taupf returns tan(chi), the tangent of the conformal latitude, given
// tau = tan(phi) and the signed eccentricity es.
func Taupf(tau, es float64) float64 {
	if math.IsInf(tau, 0) || math.IsNaN(tau) {
		return tau
	}
	tau1 := math.Hypot(1, tau)
	sig := math.Sinh(Eatanhe(tau/tau1, es))
	return math.Hypot(1, sig)*tau - sig*tau1
}

// Tauf inverts Taupf with Newton's method, returning tan(phi) given
// taup = tan(chi). Two iterations suffice for full precision; at most five
// are made.
func Tauf(taup, es float64) float64 {
	const numit = 5
	tol := math.Sqrt(Epsilon) / 10
	taumax := 2 / math.Sqrt(Epsilon)
	e2m := 1 - Sq(es)
	// To lowest order taup = e2m * tau. Near the poles use the large tau
	// asymptote instead.
	var tau float64
	if math.Abs(taup) > 70 {
		tau = taup * math.Exp(Eatanhe(1, es))
	} else {
		tau = taup / e2m
	}
	stol := tol * math.Max(1, math.Abs(taup))
	if !(math.Abs(tau) < taumax) {
		// +/-inf, NaN, or so large that the guess is already exact
		return tau
	}
	for i := 0; i < numit; i++ {
		taupa := Taupf(tau, es)
		dtau := (taup - taupa) * (1 + e2m*Sq(tau)) /
			(e2m * math.Hypot(1, tau) * math.Hypot(1, taupa))
		tau += dtau
		if !(math.Abs(dtau) >= stol) {
			break
		}
	}
	return tau
}
