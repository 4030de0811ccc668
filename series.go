package geodesic

import (
	"math"

	"github.com/tidwall/geodesic/v2/geomath"
)

// Truncated series for the elliptic integrals of a geodesic, in powers of
// the third flattening n (fixed per ellipsoid) and of eps (per geodesic).
// The order is tuned for |f| up to about 1/150. The coefficients are from
// C. F. F. Karney, Algorithms for geodesics, J. Geodesy 87, 43-55 (2013).

const (
	order = 6

	nA1  = order
	nC1  = order
	nC1p = order
	nA2  = order
	nC2  = order
	nA3  = order
	nA3x = nA3
	nC3  = order
	nC3x = (nC3 * (nC3 - 1)) / 2
	nC4  = order
	nC4x = (nC4 * (nC4 + 1)) / 2
)

// Per-call coefficient buffers. Index 0 is unused for the sine series.
type (
	c1Coeffs  [nC1 + 1]float64
	c1pCoeffs [nC1p + 1]float64
	c2Coeffs  [nC2 + 1]float64
	c3Coeffs  [nC3]float64
	c4Coeffs  [nC4]float64
)

// epsOf returns the expansion parameter eps for k2 = ep2 cos(alp0)^2.
func epsOf(k2 float64) float64 {
	return k2 / (2*(1+math.Sqrt(1+k2)) + k2)
}

// a1m1f returns A1 - 1.
func a1m1f(eps float64) float64 {
	coeff := [...]float64{
		// (1-eps)*A1-1, polynomial in eps2 of order 3
		1, 4, 64, 0, 256,
	}
	m := nA1 / 2
	t := geomath.PolyVal(m, coeff[:], 0, geomath.Sq(eps)) / coeff[m+1]
	return (t + eps) / (1 - eps)
}

// c1f sets c[1..nC1] to the coefficients C1[l].
func c1f(eps float64, c *c1Coeffs) {
	coeff := [...]float64{
		// C1[1]/eps^1, polynomial in eps2 of order 2
		-1, 6, -16, 32,
		// C1[2]/eps^2, polynomial in eps2 of order 2
		-9, 64, -128, 2048,
		// C1[3]/eps^3, polynomial in eps2 of order 1
		9, -16, 768,
		// C1[4]/eps^4, polynomial in eps2 of order 1
		3, -5, 512,
		// C1[5]/eps^5, polynomial in eps2 of order 0
		-7, 1280,
		// C1[6]/eps^6, polynomial in eps2 of order 0
		-7, 2048,
	}
	eps2 := geomath.Sq(eps)
	d := eps
	o := 0
	for l := 1; l <= nC1; l++ {
		m := (nC1 - l) / 2 // order of polynomial in eps^2
		c[l] = d * geomath.PolyVal(m, coeff[:], o, eps2) / coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// c1pf sets c[1..nC1p] to the coefficients C1'[l] of the reverted series.
func c1pf(eps float64, c *c1pCoeffs) {
	coeff := [...]float64{
		// C1p[1]/eps^1, polynomial in eps2 of order 2
		205, -432, 768, 1536,
		// C1p[2]/eps^2, polynomial in eps2 of order 2
		4005, -4736, 3840, 12288,
		// C1p[3]/eps^3, polynomial in eps2 of order 1
		-225, 116, 384,
		// C1p[4]/eps^4, polynomial in eps2 of order 1
		-7173, 2695, 7680,
		// C1p[5]/eps^5, polynomial in eps2 of order 0
		3467, 7680,
		// C1p[6]/eps^6, polynomial in eps2 of order 0
		38081, 61440,
	}
	eps2 := geomath.Sq(eps)
	d := eps
	o := 0
	for l := 1; l <= nC1p; l++ {
		m := (nC1p - l) / 2
		c[l] = d * geomath.PolyVal(m, coeff[:], o, eps2) / coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// a2m1f returns A2 - 1.
func a2m1f(eps float64) float64 {
	coeff := [...]float64{
		// (eps+1)*A2-1, polynomial in eps2 of order 3
		-11, -28, -192, 0, 256,
	}
	m := nA2 / 2
	t := geomath.PolyVal(m, coeff[:], 0, geomath.Sq(eps)) / coeff[m+1]
	return (t - eps) / (1 + eps)
}

// c2f sets c[1..nC2] to the coefficients C2[l].
func c2f(eps float64, c *c2Coeffs) {
	coeff := [...]float64{
		// C2[1]/eps^1, polynomial in eps2 of order 2
		1, 2, 16, 32,
		// C2[2]/eps^2, polynomial in eps2 of order 2
		35, 64, 384, 2048,
		// C2[3]/eps^3, polynomial in eps2 of order 1
		15, 80, 768,
		// C2[4]/eps^4, polynomial in eps2 of order 1
		7, 35, 512,
		// C2[5]/eps^5, polynomial in eps2 of order 0
		63, 1280,
		// C2[6]/eps^6, polynomial in eps2 of order 0
		77, 2048,
	}
	eps2 := geomath.Sq(eps)
	d := eps
	o := 0
	for l := 1; l <= nC2; l++ {
		m := (nC2 - l) / 2
		c[l] = d * geomath.PolyVal(m, coeff[:], o, eps2) / coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// generateA3 returns the coefficients of A3 as polynomials in eps, highest
// power first, for third flattening n.
func generateA3(n float64) [nA3x]float64 {
	coeff := [...]float64{
		// A3, coeff of eps^5, polynomial in n of order 0
		-3, 128,
		// A3, coeff of eps^4, polynomial in n of order 1
		-2, -3, 64,
		// A3, coeff of eps^3, polynomial in n of order 2
		-1, -3, -1, 16,
		// A3, coeff of eps^2, polynomial in n of order 2
		3, -1, -2, 8,
		// A3, coeff of eps^1, polynomial in n of order 1
		1, -1, 2,
		// A3, coeff of eps^0, polynomial in n of order 0
		1, 1,
	}
	var a3x [nA3x]float64
	o, k := 0, 0
	for j := nA3 - 1; j >= 0; j-- {
		m := min(nA3-j-1, j) // order of polynomial in n
		a3x[k] = geomath.PolyVal(m, coeff[:], o, n) / coeff[o+m+1]
		k++
		o += m + 2
	}
	return a3x
}

// generateC3 returns the coefficients of C3[l], l = 1..nC3-1, as
// polynomials in eps for third flattening n.
func generateC3(n float64) [nC3x]float64 {
	coeff := [...]float64{
		// C3[1], coeff of eps^5, polynomial in n of order 0
		3, 128,
		// C3[1], coeff of eps^4, polynomial in n of order 1
		2, 5, 128,
		// C3[1], coeff of eps^3, polynomial in n of order 2
		-1, 3, 3, 64,
		// C3[1], coeff of eps^2, polynomial in n of order 2
		-1, 0, 1, 8,
		// C3[1], coeff of eps^1, polynomial in n of order 1
		-1, 1, 4,
		// C3[2], coeff of eps^5, polynomial in n of order 0
		5, 256,
		// C3[2], coeff of eps^4, polynomial in n of order 1
		1, 3, 128,
		// C3[2], coeff of eps^3, polynomial in n of order 2
		-3, -2, 3, 64,
		// C3[2], coeff of eps^2, polynomial in n of order 2
		1, -3, 2, 32,
		// C3[3], coeff of eps^5, polynomial in n of order 0
		7, 512,
		// C3[3], coeff of eps^4, polynomial in n of order 1
		-10, 9, 384,
		// C3[3], coeff of eps^3, polynomial in n of order 2
		5, -9, 5, 192,
		// C3[4], coeff of eps^5, polynomial in n of order 0
		7, 512,
		// C3[4], coeff of eps^4, polynomial in n of order 1
		-14, 7, 512,
		// C3[5], coeff of eps^5, polynomial in n of order 0
		21, 2560,
	}
	var c3x [nC3x]float64
	o, k := 0, 0
	for l := 1; l < nC3; l++ {
		for j := nC3 - 1; j >= l; j-- {
			m := min(nC3-j-1, j)
			c3x[k] = geomath.PolyVal(m, coeff[:], o, n) / coeff[o+m+1]
			k++
			o += m + 2
		}
	}
	return c3x
}

// generateC4 returns the coefficients of C4[l], l = 0..nC4-1, as
// polynomials in eps for third flattening n.
func generateC4(n float64) [nC4x]float64 {
	coeff := [...]float64{
		// C4[0], coeff of eps^5, polynomial in n of order 0
		97, 15015,
		// C4[0], coeff of eps^4, polynomial in n of order 1
		1088, 156, 45045,
		// C4[0], coeff of eps^3, polynomial in n of order 2
		-224, -4784, 1573, 45045,
		// C4[0], coeff of eps^2, polynomial in n of order 3
		-10656, 14144, -4576, -858, 45045,
		// C4[0], coeff of eps^1, polynomial in n of order 4
		64, 624, -4576, 6864, -3003, 15015,
		// C4[0], coeff of eps^0, polynomial in n of order 5
		100, 208, 572, 3432, -12012, 30030, 45045,
		// C4[1], coeff of eps^5, polynomial in n of order 0
		1, 9009,
		// C4[1], coeff of eps^4, polynomial in n of order 1
		-2944, 468, 135135,
		// C4[1], coeff of eps^3, polynomial in n of order 2
		5792, 1040, -1287, 135135,
		// C4[1], coeff of eps^2, polynomial in n of order 3
		5952, -11648, 9152, -2574, 135135,
		// C4[1], coeff of eps^1, polynomial in n of order 4
		-64, -624, 4576, -6864, 3003, 135135,
		// C4[2], coeff of eps^5, polynomial in n of order 0
		8, 10725,
		// C4[2], coeff of eps^4, polynomial in n of order 1
		1856, -936, 225225,
		// C4[2], coeff of eps^3, polynomial in n of order 2
		-8448, 4992, -1144, 225225,
		// C4[2], coeff of eps^2, polynomial in n of order 3
		-1440, 4160, -4576, 1716, 225225,
		// C4[3], coeff of eps^5, polynomial in n of order 0
		-136, 63063,
		// C4[3], coeff of eps^4, polynomial in n of order 1
		1024, -208, 105105,
		// C4[3], coeff of eps^3, polynomial in n of order 2
		3584, -3328, 1144, 315315,
		// C4[4], coeff of eps^5, polynomial in n of order 0
		-128, 135135,
		// C4[4], coeff of eps^4, polynomial in n of order 1
		-2560, 832, 405405,
		// C4[5], coeff of eps^5, polynomial in n of order 0
		128, 99099,
	}
	var c4x [nC4x]float64
	o, k := 0, 0
	for l := 0; l < nC4; l++ {
		for j := nC4 - 1; j >= l; j-- {
			m := nC4 - j - 1
			c4x[k] = geomath.PolyVal(m, coeff[:], o, n) / coeff[o+m+1]
			k++
			o += m + 2
		}
	}
	return c4x
}

// a3f evaluates A3 at eps.
func (e *Ellipsoid) a3f(eps float64) float64 {
	return geomath.PolyVal(nA3-1, e.a3x[:], 0, eps)
}

// c3f sets c[1..nC3-1] to C3[l] at eps.
func (e *Ellipsoid) c3f(eps float64, c *c3Coeffs) {
	mult := 1.0
	o := 0
	for l := 1; l < nC3; l++ {
		m := nC3 - l - 1 // order of polynomial in eps
		mult *= eps
		c[l] = mult * geomath.PolyVal(m, e.c3x[:], o, eps)
		o += m + 1
	}
}

// c4f sets c[0..nC4-1] to C4[l] at eps.
func (e *Ellipsoid) c4f(eps float64, c *c4Coeffs) {
	mult := 1.0
	o := 0
	for l := 0; l < nC4; l++ {
		m := nC4 - l - 1
		c[l] = mult * geomath.PolyVal(m, e.c4x[:], o, eps)
		o += m + 1
		mult *= eps
	}
}

// sinCosSeries evaluates, by Clenshaw summation,
//
//	sinp:  sum(c[i] * sin(2*i*x), i = 1..n)       with n = len(c)-1
//	!sinp: sum(c[i] * cos((2*i+1)*x), i = 0..n-1) with n = len(c)
//
// given sinx and cosx.
func sinCosSeries(sinp bool, sinx, cosx float64, c []float64) float64 {
	k := len(c)
	n := k
	if sinp {
		n--
	}
	ar := 2 * (cosx - sinx) * (cosx + sinx) // 2 * cos(2 * x)
	var y0, y1 float64
	if n&1 != 0 {
		k--
		y0 = c[k]
	}
	// Now n is even
	for n /= 2; n > 0; n-- {
		// Unrolled x 2, so the accumulators return to their original role
		k--
		y1 = ar*y0 - y1 + c[k]
		k--
		y0 = ar*y1 - y0 + c[k]
	}
	if sinp {
		return 2 * sinx * cosx * y0 // sin(2 * x) * y0
	}
	return cosx * (y0 - y1) // cos(x) * (y0 - y1)
}
