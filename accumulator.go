package geodesic

import "github.com/tidwall/geodesic/v2/geomath"

// Accumulator is a running sum kept at about twice the precision of a
// float64, using Shewchuk's error-free transformations. The zero value is
// a sum of zero.
type Accumulator struct {
	s, t float64
}

// Set replaces the sum with y.
func (a *Accumulator) Set(y float64) {
	a.s, a.t = y, 0
}

// Add adds y to the sum.
func (a *Accumulator) Add(y float64) {
	// hold the exact sum as [s, t, u], accumulating from the least
	// significant end
	var u float64
	y, u = geomath.Sum(y, a.t)
	a.s, a.t = geomath.Sum(y, a.s)
	// s, t, u are now non-adjacent and decreasing (except for possible
	// zeros); fold u back in approximately.
	if a.s == 0 {
		// This implies t == 0, so result is u
		a.s = u
	} else {
		// otherwise just accumulate u to t
		a.t += u
	}
}

// Sum returns the sum plus y without changing the accumulator.
func (a *Accumulator) Sum(y float64) float64 {
	if y == 0 {
		return a.s
	}
	b := *a
	b.Add(y)
	return b.s
}

// Negate flips the sign of the sum.
func (a *Accumulator) Negate() {
	a.s = -a.s
	a.t = -a.t
}

// Remainder reduces the sum to the range [-y/2, y/2].
func (a *Accumulator) Remainder(y float64) {
	a.s = geomath.Remainder(a.s, y)
	a.Add(0)
}
