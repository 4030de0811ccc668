package geodesic

import (
	"math"

	"github.com/tidwall/geodesic/v2/geomath"
)

// Line is a single geodesic: a starting point, an azimuth and the set of
// quantities it can compute. Build it with one of the Ellipsoid line
// constructors. The zero Line is inert and every query on it returns NaN.
//
// Position queries only read the Line. SetDistance and SetArc modify it.
type Line struct {
	a, f, b, c2, f1 float64
	caps            Mask

	lat1, lon1, azi1           float64
	salp1, calp1, dn1          float64
	salp0, calp0               float64
	ssig1, csig1, somg1, comg1 float64
	stau1, ctau1               float64
	k2                         float64

	A1m1, A2m1, A3c, A4 float64
	B11, B21, B31, B41  float64

	c1a  c1Coeffs
	c1pa c1pCoeffs
	c2a  c2Coeffs
	c3a  c3Coeffs
	c4a  c4Coeffs

	// point 3
	s13, a13 float64
}

// newLine builds a line. If salp1 and calp1 are NaN they are computed from
// azi1; otherwise azi1 is taken to be already normalized.
func newLine(e *Ellipsoid, lat1, lon1, azi1, salp1, calp1 float64, caps Mask) *Line {
	l := &Line{
		a:  e.a,
		f:  e.f,
		b:  e.b,
		c2: e.c2,
		f1: e.f1,
		// Always allow latitude and azimuth and unrolling of longitude
		caps: caps | Latitude | Azimuth | LongUnroll,
	}
	l.lat1 = geomath.LatFix(lat1)
	l.lon1 = lon1
	if math.IsNaN(salp1) || math.IsNaN(calp1) {
		l.azi1 = geomath.AngNormalize(azi1)
		l.salp1, l.calp1 = geomath.SinCosd(geomath.AngRound(l.azi1))
	} else {
		l.azi1 = azi1
		l.salp1, l.calp1 = salp1, calp1
	}

	sbet1, cbet1 := geomath.SinCosd(geomath.AngRound(l.lat1))
	sbet1 *= l.f1
	// Ensure cbet1 = +epsilon at poles
	sbet1, cbet1 = geomath.Norm(sbet1, cbet1)
	cbet1 = math.Max(tiny, cbet1)
	l.dn1 = math.Sqrt(1 + e.ep2*geomath.Sq(sbet1))

	// Evaluate alp0 from sin(alp1) * cos(bet1) = sin(alp0),
	l.salp0 = l.salp1 * cbet1 // alp0 in [0, pi/2 - |bet1|]
	// Alt: calp0 = hypot(sbet1, calp1 * cbet1). The following is slightly
	// better (consider the case salp1 = 0).
	l.calp0 = math.Hypot(l.calp1, l.salp1*sbet1)
	// Evaluate sig with tan(bet1) = tan(sig1) * cos(alp1).
	// sig = 0 is nearest northward crossing of equator.
	// With bet1 = 0, alp1 = pi/2, we have sig1 = 0 (equatorial line).
	// With bet1 =  pi/2, alp1 = -pi, sig1 =  pi/2
	// With bet1 = -pi/2, alp1 =  0 , sig1 = -pi/2
	// Evaluate omg1 with tan(omg1) = sin(alp0) * tan(sig1).
	// With alp0 in (0, pi/2], quadrants for sig and omg coincide.
	// No atan2(0,0) ambiguity at poles since cbet1 = +epsilon.
	// With alp0 = 0, omg1 = 0 for alp1 = 0, omg1 = pi for alp1 = pi.
	l.ssig1 = sbet1
	l.somg1 = l.salp0 * sbet1
	if sbet1 != 0 || l.calp1 != 0 {
		l.csig1 = cbet1 * l.calp1
	} else {
		l.csig1 = 1
	}
	l.comg1 = l.csig1
	// sig1 in (-pi, pi]
	l.ssig1, l.csig1 = geomath.Norm(l.ssig1, l.csig1)
	// somg1, comg1 need not be normalized

	l.k2 = geomath.Sq(l.calp0) * e.ep2
	eps := epsOf(l.k2)

	if l.caps&capC1 != 0 {
		l.A1m1 = a1m1f(eps)
		c1f(eps, &l.c1a)
		l.B11 = sinCosSeries(true, l.ssig1, l.csig1, l.c1a[:])
		s, c := math.Sin(l.B11), math.Cos(l.B11)
		// tau1 = sig1 + B11
		l.stau1 = l.ssig1*c + l.csig1*s
		l.ctau1 = l.csig1*c - l.ssig1*s
		// Not necessary because c1pa reverts c1a
		//    B11 = -sinCosSeries(true, stau1, ctau1, c1pa)
	}
	if l.caps&capC1p != 0 {
		c1pf(eps, &l.c1pa)
	}
	if l.caps&capC2 != 0 {
		l.A2m1 = a2m1f(eps)
		c2f(eps, &l.c2a)
		l.B21 = sinCosSeries(true, l.ssig1, l.csig1, l.c2a[:])
	}
	if l.caps&capC3 != 0 {
		e.c3f(eps, &l.c3a)
		l.A3c = -l.f * l.salp0 * e.a3f(eps)
		l.B31 = sinCosSeries(true, l.ssig1, l.csig1, l.c3a[:])
	}
	if l.caps&capC4 != 0 {
		e.c4f(eps, &l.c4a)
		// Multiplier = a^2 * e^2 * cos(alpha0) * sin(alpha0)
		l.A4 = geomath.Sq(l.a) * l.calp0 * l.salp0 * e.e2
		l.B41 = sinCosSeries(false, l.ssig1, l.csig1, l.c4a[:])
	}

	l.s13 = math.NaN()
	l.a13 = math.NaN()
	return l
}

// Position returns the point at distance s12 (meters) from the start of
// the line. The line must have been built with DistanceIn.
func (l *Line) Position(s12 float64) Result {
	return l.GenPosition(false, s12, Standard)
}

// ArcPosition returns the point at arc length a12 (degrees) from the start
// of the line.
func (l *Line) ArcPosition(a12 float64) Result {
	return l.GenPosition(true, a12, Standard)
}

// GenPosition is the general position function. If arcmode is set, s12a12
// is the arc length a12 (degrees), otherwise it is the distance s12
// (meters). Outputs are limited to those selected by both mask and the
// capabilities the line was built with; the rest are NaN.
func (l *Line) GenPosition(arcmode bool, s12a12 float64, mask Mask) Result {
	r := nanResult()
	mask &= l.caps & outMask
	if !l.Initialized() || !(arcmode || l.caps&(outMask&DistanceIn) != 0) {
		// Uninitialized or impossible distance calculation requested
		return r
	}

	var sig12, ssig12, csig12, B12, AB1 float64
	if arcmode {
		// Interpret s12a12 as spherical arc length
		sig12 = s12a12 * math.Pi / 180
		ssig12, csig12 = geomath.SinCosd(s12a12)
	} else {
		// Interpret s12a12 as distance
		tau12 := s12a12 / (l.b * (1 + l.A1m1))
		if !isFinite(tau12) {
			tau12 = math.NaN()
		}
		s, c := math.Sin(tau12), math.Cos(tau12)
		// tau2 = tau1 + tau12
		B12 = -sinCosSeries(true,
			l.stau1*c+l.ctau1*s,
			l.ctau1*c-l.stau1*s,
			l.c1pa[:])
		sig12 = tau12 - (B12 - l.B11)
		ssig12, csig12 = math.Sin(sig12), math.Cos(sig12)
		if math.Abs(l.f) > 0.01 {
			// The reverted distance series loses accuracy for |f| > 1/100,
			// so correct sig12 with one Newton iteration.
			ssig2 := l.ssig1*csig12 + l.csig1*ssig12
			csig2 := l.csig1*csig12 - l.ssig1*ssig12
			B12 = sinCosSeries(true, ssig2, csig2, l.c1a[:])
			serr := (1+l.A1m1)*(sig12+(B12-l.B11)) - s12a12/l.b
			sig12 -= serr / math.Sqrt(1+l.k2*geomath.Sq(ssig2))
			ssig12, csig12 = math.Sin(sig12), math.Cos(sig12)
		}
	}

	// sig2 = sig1 + sig12
	ssig2 := l.ssig1*csig12 + l.csig1*ssig12
	csig2 := l.csig1*csig12 - l.ssig1*ssig12
	dn2 := math.Sqrt(1 + l.k2*geomath.Sq(ssig2))
	if mask&(Distance|ReducedLength|GeodesicScale) != 0 {
		if arcmode || math.Abs(l.f) > 0.01 {
			B12 = sinCosSeries(true, ssig2, csig2, l.c1a[:])
		}
		AB1 = (1 + l.A1m1) * (B12 - l.B11)
	}
	// sin(bet2) = cos(alp0) * sin(sig2)
	sbet2 := l.calp0 * ssig2
	// Alt: cbet2 = hypot(csig2, salp0 * ssig2)
	cbet2 := math.Hypot(l.salp0, l.calp0*csig2)
	if cbet2 == 0 {
		// I.e., salp0 = 0, csig2 = 0. Break the degeneracy in this case
		cbet2 = tiny
		csig2 = tiny
	}
	// tan(alp0) = cos(sig2)*tan(alp2)
	salp2 := l.salp0
	calp2 := l.calp0 * csig2 // No need to normalize

	if mask&Distance != 0 {
		if arcmode {
			r.S12 = l.b * ((1+l.A1m1)*sig12 + AB1)
		} else {
			r.S12 = s12a12
		}
	}

	r.Lat1 = l.lat1
	r.Azi1 = l.azi1
	if mask&LongUnroll != 0 {
		r.Lon1 = l.lon1
	} else {
		r.Lon1 = geomath.AngNormalize(l.lon1)
	}

	if mask&Longitude != 0 {
		// tan(omg2) = sin(alp0) * tan(sig2)
		somg2 := l.salp0 * ssig2
		comg2 := csig2 // No need to normalize
		E := math.Copysign(1, l.salp0)
		// omg12 = omg2 - omg1
		var omg12 float64
		if mask&LongUnroll != 0 {
			omg12 = E * (sig12 -
				(math.Atan2(ssig2, csig2) - math.Atan2(l.ssig1, l.csig1)) +
				(math.Atan2(E*somg2, comg2) - math.Atan2(E*l.somg1, l.comg1)))
		} else {
			omg12 = math.Atan2(somg2*l.comg1-comg2*l.somg1,
				comg2*l.comg1+somg2*l.somg1)
		}
		lam12 := omg12 + l.A3c*
			(sig12+(sinCosSeries(true, ssig2, csig2, l.c3a[:])-l.B31))
		lon12 := lam12 * 180 / math.Pi
		if mask&LongUnroll != 0 {
			r.Lon2 = l.lon1 + lon12
		} else {
			r.Lon2 = geomath.AngNormalize(
				geomath.AngNormalize(l.lon1) + geomath.AngNormalize(lon12))
		}
	}

	if mask&Latitude != 0 {
		r.Lat2 = geomath.Atan2d(sbet2, l.f1*cbet2)
	}

	if mask&Azimuth != 0 {
		r.Azi2 = geomath.Atan2d(salp2, calp2)
	}

	if mask&(ReducedLength|GeodesicScale) != 0 {
		B22 := sinCosSeries(true, ssig2, csig2, l.c2a[:])
		AB2 := (1 + l.A2m1) * (B22 - l.B21)
		J12 := (l.A1m1-l.A2m1)*sig12 + (AB1 - AB2)
		if mask&ReducedLength != 0 {
			// Add parens around (csig1 * ssig2) and (ssig1 * csig2) to
			// ensure accurate cancellation in the case of coincident points.
			r.ReducedLength = l.b * ((dn2*(l.csig1*ssig2) -
				l.dn1*(l.ssig1*csig2)) - l.csig1*csig2*J12)
		}
		if mask&GeodesicScale != 0 {
			t := l.k2 * (ssig2 - l.ssig1) * (ssig2 + l.ssig1) / (l.dn1 + dn2)
			r.M12 = csig12 + (t*ssig2-csig2*J12)*l.ssig1/l.dn1
			r.M21 = csig12 - (t*l.ssig1-l.csig1*J12)*ssig2/dn2
		}
	}

	if mask&Area != 0 {
		B42 := sinCosSeries(false, ssig2, csig2, l.c4a[:])
		var salp12, calp12 float64
		if l.calp0 == 0 || l.salp0 == 0 {
			// alp12 = alp2 - alp1, used in atan2 so no need to normalize
			salp12 = salp2*l.calp1 - calp2*l.salp1
			calp12 = calp2*l.calp1 + salp2*l.salp1
		} else {
			// tan(alp) = tan(alp0) * sec(sig)
			// tan(alp2-alp1) = (tan(alp2) -tan(alp1)) / (tan(alp2)*tan(alp1)+1)
			// = calp0 * salp0 * (csig1-csig2) / (salp0^2 + calp0^2 * csig1*csig2)
			// If csig12 > 0, write
			//   csig1 - csig2 = ssig12 * (csig1 * ssig12 / (1 + csig12) + ssig1)
			// else
			//   csig1 - csig2 = csig1 * (1 - csig12) + ssig12 * ssig1
			// No need to normalize
			var mult float64
			if csig12 <= 0 {
				mult = l.csig1*(1-csig12) + ssig12*l.ssig1
			} else {
				mult = ssig12 * (l.csig1*ssig12/(1+csig12) + l.ssig1)
			}
			salp12 = l.calp0 * l.salp0 * mult
			calp12 = geomath.Sq(l.salp0) + geomath.Sq(l.calp0)*l.csig1*csig2
		}
		r.Area = l.c2*math.Atan2(salp12, calp12) + l.A4*(B42-l.B41)
	}

	if arcmode {
		r.A12 = s12a12
	} else {
		r.A12 = sig12 * 180 / math.Pi
	}
	return r
}

// SetDistance sets the distance s13 (meters) from the start of the line to
// point 3 and updates the arc length a13 to match.
func (l *Line) SetDistance(s13 float64) {
	l.s13 = s13
	l.a13 = l.GenPosition(false, s13, Empty).A12
}

// SetArc sets the arc length a13 (degrees) from the start of the line to
// point 3 and updates the distance s13 to match. s13 is NaN unless the
// line was built with Distance.
func (l *Line) SetArc(a13 float64) {
	l.a13 = a13
	l.s13 = l.GenPosition(true, a13, Distance).S12
}

// GenSetDistance calls SetArc if arcmode is set, otherwise SetDistance.
func (l *Line) GenSetDistance(arcmode bool, s13a13 float64) {
	if arcmode {
		l.SetArc(s13a13)
	} else {
		l.SetDistance(s13a13)
	}
}

// Initialized reports whether the line was built by an Ellipsoid.
func (l *Line) Initialized() bool {
	return l.caps != 0
}

func (l *Line) value(x float64) float64 {
	if !l.Initialized() {
		return math.NaN()
	}
	return x
}

// Latitude of point 1 (degrees).
func (l *Line) Latitude() float64 { return l.value(l.lat1) }

// Longitude of point 1 (degrees).
func (l *Line) Longitude() float64 { return l.value(l.lon1) }

// Azimuth at point 1 (degrees).
func (l *Line) Azimuth() float64 { return l.value(l.azi1) }

// EquatorialAzimuth is the azimuth (degrees) of the geodesic line as it
// crosses the equator in a northward direction.
func (l *Line) EquatorialAzimuth() float64 {
	return l.value(geomath.Atan2d(l.salp0, l.calp0))
}

// EquatorialArc is the arc length (degrees) between the northward
// equatorial crossing and point 1.
func (l *Line) EquatorialArc() float64 {
	return l.value(geomath.Atan2d(l.ssig1, l.csig1))
}

// MajorRadius is the equatorial radius of the ellipsoid (meters).
func (l *Line) MajorRadius() float64 { return l.value(l.a) }

// Flattening of the ellipsoid.
func (l *Line) Flattening() float64 { return l.value(l.f) }

// Capabilities returns the mask the line was built with, including the
// outputs that are always supplied.
func (l *Line) Capabilities() Mask { return l.caps }

// Has reports whether the line can compute every output in mask.
func (l *Line) Has(mask Mask) bool { return l.caps.Has(mask) }

// Distance is the distance s13 to point 3 (meters).
func (l *Line) Distance() float64 { return l.value(l.s13) }

// Arc is the arc length a13 to point 3 (degrees).
func (l *Line) Arc() float64 { return l.value(l.a13) }
