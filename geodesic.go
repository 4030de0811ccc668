// Package geodesic solves the direct and inverse geodesic problems on an
// ellipsoid of revolution.
//
// The distance, azimuths, reduced length, geodesic scales and area are
// computed to roundoff for |f| <= 1/50 using the series of C. F. F. Karney,
// Algorithms for geodesics, J. Geodesy 87, 43-55 (2013).
//
// An Ellipsoid is immutable once built and may be shared between
// goroutines. A Line is a handle to one geodesic; it may be queried
// concurrently but SetDistance and SetArc need external synchronization.
package geodesic

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/geodesic/v2/geomath"
)

// WGS84 conforming ellipsoid parameters
// https://en.wikipedia.org/wiki/World_Geodetic_System
const (
	WGS84EquatorialRadius = 6378137.0
	WGS84Flattening       = 1 / 298.257223563
)

// ErrInvalidEllipsoid is returned, wrapped with detail, when the
// equatorial radius or the polar semi-axis is not a finite positive number.
var ErrInvalidEllipsoid = errors.New("invalid ellipsoid")

const (
	maxit1 = 20
	maxit2 = maxit1 + geomath.Digits + 10
)

var (
	tiny    = math.Sqrt(geomath.Min)
	tol0    = geomath.Epsilon
	tol1    = 200 * tol0
	tol2    = math.Sqrt(tol0)
	tolb    = tol0 * tol2 // check on bisection interval
	xthresh = 1000 * tol2
)

// Ellipsoid is an object for performing geodesic operations.
type Ellipsoid struct {
	a, f, f1, e2, ep2, n, b, c2, etol2 float64

	a3x [nA3x]float64
	c3x [nC3x]float64
	c4x [nC4x]float64
}

// NewEllipsoid initializes a new geodesic ellipsoid object.
//
// Param a is the equatorial radius (meters).
// Param f is the flattening of the ellipsoid. Setting f = 0 gives a sphere
// and negative f gives a prolate ellipsoid.
//
// An error wrapping ErrInvalidEllipsoid is returned if a or the polar
// semi-axis b = a (1 - f) is not a finite positive number.
func NewEllipsoid(a, f float64) (*Ellipsoid, error) {
	b := a * (1 - f)
	if !(isFinite(a) && a > 0) {
		return nil, errors.Wrapf(ErrInvalidEllipsoid,
			"equatorial radius %v is not positive", a)
	}
	if !(isFinite(b) && b > 0) {
		return nil, errors.Wrapf(ErrInvalidEllipsoid,
			"polar semi-axis %v is not positive", b)
	}
	e := &Ellipsoid{
		a:  a,
		f:  f,
		f1: 1 - f,
		e2: f * (2 - f),
		n:  f / (2 - f),
		b:  b,
	}
	e.ep2 = e.e2 / geomath.Sq(e.f1)
	// authalic radius squared
	ratio := 1.0
	if e.e2 != 0 {
		es := math.Copysign(math.Sqrt(math.Abs(e.e2)), f)
		ratio = geomath.Eatanhe(1, es) / e.e2
	}
	e.c2 = (geomath.Sq(a) + geomath.Sq(b)*ratio) / 2
	// The sig12 threshold for "really short". Using the auxiliary sphere
	// solution with dnm computed at (bet1 + bet2) / 2, the relative error in
	// the azimuth consistency check is sig12^2 * abs(f) * min(1, 1-f/2) / 2.
	// Setting this equal to epsilon gives sig12 = etol2. Here 0.1 is a
	// safety factor and max(0.001, abs(f)) stops etol2 getting too large in
	// the nearly spherical case.
	e.etol2 = 0.1 * tol2 /
		math.Sqrt(math.Max(0.001, math.Abs(f))*math.Min(1, 1-f/2)/2)
	e.a3x = generateA3(e.n)
	e.c3x = generateC3(e.n)
	e.c4x = generateC4(e.n)
	return e, nil
}

// MustNewEllipsoid is like NewEllipsoid but panics on invalid parameters.
func MustNewEllipsoid(a, f float64) *Ellipsoid {
	e, err := NewEllipsoid(a, f)
	if err != nil {
		panic(err)
	}
	return e
}

// NewWGS84 returns an ellipsoid representing Earth. Build it once and share
// it; it is safe for concurrent use.
func NewWGS84() *Ellipsoid {
	return MustNewEllipsoid(WGS84EquatorialRadius, WGS84Flattening)
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// MajorRadius is the equatorial radius of the ellipsoid (meters).
func (e *Ellipsoid) MajorRadius() float64 {
	return e.a
}

// MinorRadius is the polar semi-axis of the ellipsoid (meters).
func (e *Ellipsoid) MinorRadius() float64 {
	return e.b
}

// Flattening of the ellipsoid.
func (e *Ellipsoid) Flattening() float64 {
	return e.f
}

// EllipsoidArea is the total area of the ellipsoid (meters^2).
func (e *Ellipsoid) EllipsoidArea() float64 {
	return 4 * math.Pi * e.c2
}

// Direct solves the direct geodesic problem.
//
// Param lat1 is the latitude of point 1 (degrees).
// Param lon1 is the longitude of point 1 (degrees).
// Param azi1 is the azimuth at point 1 (degrees).
// Param s12 is the distance from point 1 to point 2 (meters). Negative is
// ok.
//
// The Standard outputs are filled: lat2, lon2, azi2, plus a12.
// lat1 should be in the range [-90,+90]. The values of lon2 and azi2
// returned are in the range [-180,+180].
func (e *Ellipsoid) Direct(lat1, lon1, azi1, s12 float64) Result {
	return e.GenDirect(lat1, lon1, azi1, false, s12, Standard)
}

// ArcDirect solves the direct geodesic problem with the distance given as
// the arc length a12 (degrees) on the auxiliary sphere.
func (e *Ellipsoid) ArcDirect(lat1, lon1, azi1, a12 float64) Result {
	return e.GenDirect(lat1, lon1, azi1, true, a12, Standard)
}

// GenDirect is the general direct problem. If arcmode is set, s12a12 is the
// arc length a12 (degrees), otherwise it is the distance s12 (meters).
// The mask selects the outputs; with LongUnroll the returned lon2 is
// lon1 plus the signed longitude travelled.
func (e *Ellipsoid) GenDirect(
	lat1, lon1, azi1 float64, arcmode bool, s12a12 float64, mask Mask,
) Result {
	// Automatically supply DistanceIn if necessary
	if !arcmode {
		mask |= DistanceIn
	}
	l := e.Line(lat1, lon1, azi1, mask)
	return l.GenPosition(arcmode, s12a12, mask)
}

// Inverse solves the inverse geodesic problem.
//
// Param lat1 is latitude of point 1 (degrees).
// Param lon1 is longitude of point 1 (degrees).
// Param lat2 is latitude of point 2 (degrees).
// Param lon2 is longitude of point 2 (degrees).
//
// The Standard outputs are filled: s12, azi1, azi2, plus a12.
// lat1 and lat2 should be in the range [-90,+90]. The values of azi1 and
// azi2 returned are in the range [-180,+180].
//
// The solution to the inverse problem is found using Newton's method. If
// this fails to converge (this is very unlikely in geodetic applications
// but does occur for very eccentric ellipsoids), then the bisection method
// is used to refine the solution.
func (e *Ellipsoid) Inverse(lat1, lon1, lat2, lon2 float64) Result {
	return e.GenInverse(lat1, lon1, lat2, lon2, Standard)
}

// GenInverse is the general inverse problem with the outputs selected by
// mask. With LongUnroll, lon1 is returned unchanged and lon2 is lon1 plus
// the longitude difference in (-180, 180].
func (e *Ellipsoid) GenInverse(lat1, lon1, lat2, lon2 float64, mask Mask) Result {
	sol := e.genInverse(lat1, lon1, lat2, lon2, mask)
	mask = mask.out()
	r := nanResult()
	r.Lat1 = geomath.LatFix(lat1)
	r.Lat2 = geomath.LatFix(lat2)
	if mask&LongUnroll != 0 {
		lon12, lon12e := geomath.AngDiff(lon1, lon2)
		r.Lon1 = lon1
		r.Lon2 = (lon1 + lon12) + lon12e
	} else {
		r.Lon1 = geomath.AngNormalize(lon1)
		r.Lon2 = geomath.AngNormalize(lon2)
	}
	r.A12 = sol.a12
	if mask&Distance != 0 {
		r.S12 = sol.s12
	}
	if mask&Azimuth != 0 {
		r.Azi1 = geomath.Atan2d(sol.salp1, sol.calp1)
		r.Azi2 = geomath.Atan2d(sol.salp2, sol.calp2)
	}
	if mask&ReducedLength != 0 {
		r.ReducedLength = sol.m12
	}
	if mask&GeodesicScale != 0 {
		r.M12 = sol.M12
		r.M21 = sol.M21
	}
	if mask&Area != 0 {
		r.Area = sol.S12
	}
	return r
}

// Line returns a geodesic line starting at (lat1, lon1) with azimuth azi1.
// The caps mask sets which quantities the line can compute; Latitude,
// Azimuth and LongUnroll are always included. Use DistanceIn to allow
// Position to be called with a distance.
func (e *Ellipsoid) Line(lat1, lon1, azi1 float64, caps Mask) *Line {
	return newLine(e, lat1, lon1, azi1, math.NaN(), math.NaN(), caps)
}

// DirectLine returns the geodesic line through (lat1, lon1) with azimuth
// azi1 and point 3 set at distance s13 (meters).
func (e *Ellipsoid) DirectLine(lat1, lon1, azi1, s13 float64, caps Mask) *Line {
	return e.GenDirectLine(lat1, lon1, azi1, false, s13, caps)
}

// ArcDirectLine returns the geodesic line through (lat1, lon1) with azimuth
// azi1 and point 3 set at arc length a13 (degrees).
func (e *Ellipsoid) ArcDirectLine(lat1, lon1, azi1, a13 float64, caps Mask) *Line {
	return e.GenDirectLine(lat1, lon1, azi1, true, a13, caps)
}

// GenDirectLine is the general form of DirectLine and ArcDirectLine.
func (e *Ellipsoid) GenDirectLine(
	lat1, lon1, azi1 float64, arcmode bool, s13a13 float64, caps Mask,
) *Line {
	azi1 = geomath.AngNormalize(azi1)
	salp1, calp1 := geomath.SinCosd(geomath.AngRound(azi1))
	// Automatically supply DistanceIn if necessary
	if !arcmode {
		caps |= DistanceIn
	}
	l := newLine(e, lat1, lon1, azi1, salp1, calp1, caps)
	l.GenSetDistance(arcmode, s13a13)
	return l
}

// InverseLine returns the geodesic line from (lat1, lon1) to (lat2, lon2)
// with point 3 set at point 2. For a shortest path the line's Distance and
// Arc are then s12 and a12.
func (e *Ellipsoid) InverseLine(lat1, lon1, lat2, lon2 float64, caps Mask) *Line {
	sol := e.genInverse(lat1, lon1, lat2, lon2, Empty)
	azi1 := geomath.Atan2d(sol.salp1, sol.calp1)
	if caps&(outMask&DistanceIn) != 0 {
		caps |= Distance
	}
	l := newLine(e, lat1, lon1, azi1, sol.salp1, sol.calp1, caps)
	l.SetArc(sol.a12)
	return l
}
