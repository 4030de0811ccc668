// Package spheroid exposes the geodesic engine over golang/geo s1 and s2
// types, for callers that keep their geography as s2 points.
package spheroid

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tidwall/geodesic/v2"
)

// MaxSegmentizePoints bounds the number of points Segmentize may produce
// for a single pair of endpoints.
const MaxSegmentizePoints = 1 << 16

// WGS84 is the spheroid used by most geographic data.
var WGS84 = mustNew(geodesic.WGS84EquatorialRadius, geodesic.WGS84Flattening)

// Spheroid is an ellipsoid of revolution along with its commonly used
// derived radii.
type Spheroid struct {
	e *geodesic.Ellipsoid

	Radius       float64
	Flattening   float64
	SphereRadius float64
}

// New creates a spheroid from the equatorial radius (meters) and the
// flattening.
func New(radius, flattening float64) (*Spheroid, error) {
	e, err := geodesic.NewEllipsoid(radius, flattening)
	if err != nil {
		return nil, errors.Wrap(err, "creating spheroid")
	}
	minorAxis := e.MinorRadius()
	return &Spheroid{
		e:            e,
		Radius:       radius,
		Flattening:   flattening,
		SphereRadius: (radius*2 + minorAxis) / 3,
	}, nil
}

func mustNew(radius, flattening float64) *Spheroid {
	s, err := New(radius, flattening)
	if err != nil {
		panic(err)
	}
	return s
}

// Ellipsoid returns the geodesic engine behind the spheroid.
func (s *Spheroid) Ellipsoid() *geodesic.Ellipsoid {
	return s.e
}

// Inverse solves the geodetic inverse problem on the spheroid.
// Returns s12 (distance in meters), az1 (azimuth at point 1) and az2
// (azimuth at point 2), the azimuths in degrees.
func (s *Spheroid) Inverse(a, b s2.LatLng) (s12, az1, az2 float64) {
	r := s.e.Inverse(a.Lat.Degrees(), a.Lng.Degrees(), b.Lat.Degrees(), b.Lng.Degrees())
	return r.S12, r.Azi1, r.Azi2
}

// InverseBatch sums the distances (meters) of the edges of a chain of
// points.
func (s *Spheroid) InverseBatch(points []s2.Point) float64 {
	var sum geodesic.Accumulator
	for i := 1; i < len(points); i++ {
		a := s2.LatLngFromPoint(points[i-1])
		b := s2.LatLngFromPoint(points[i])
		r := s.e.GenInverse(a.Lat.Degrees(), a.Lng.Degrees(),
			b.Lat.Degrees(), b.Lng.Degrees(), geodesic.Distance)
		sum.Add(r.S12)
	}
	return sum.Sum(0)
}

// AreaAndPerimeter computes the signed area (square meters, positive for
// counter-clockwise loops) and the perimeter (meters) of the loop through
// points. The loop is closed implicitly.
func (s *Spheroid) AreaAndPerimeter(points []s2.Point) (area, perimeter float64) {
	p := s.e.NewPolygon(false)
	for _, pt := range points {
		ll := s2.LatLngFromPoint(pt)
		p.AddPoint(ll.Lat.Degrees(), ll.Lng.Degrees())
	}
	_, perimeter, area = p.Compute(false, true)
	return area, perimeter
}

// Project returns the point reached by travelling distance (meters) from
// point along the given azimuth.
func (s *Spheroid) Project(point s2.LatLng, distance float64, azimuth s1.Angle) s2.LatLng {
	r := s.e.Direct(point.Lat.Degrees(), point.Lng.Degrees(), azimuth.Degrees(), distance)
	return s2.LatLngFromDegrees(r.Lat2, r.Lon2)
}

// Segmentize returns the points of the geodesic from a to b cut into equal
// pieces no longer than maxSegmentLength (meters). The number of pieces is
// the smallest power of 2 that satisfies the bound. The result starts with
// a and does not include b.
func (s *Spheroid) Segmentize(a, b s2.LatLng, maxSegmentLength float64) ([]s2.LatLng, error) {
	if !(maxSegmentLength > 0) {
		return nil, errors.Newf("maximum segment length must be positive")
	}
	l := s.e.InverseLine(a.Lat.Degrees(), a.Lng.Degrees(), b.Lat.Degrees(), b.Lng.Degrees(),
		geodesic.Latitude|geodesic.Longitude|geodesic.DistanceIn)
	length := l.Distance()
	segments := 1.0
	if length > maxSegmentLength {
		// 2^n >= length/maxSegmentLength > 2^(n-1)
		segments = math.Pow(2, math.Ceil(math.Log2(length/maxSegmentLength)))
	}
	// the result holds one point per segment since b is left out
	if segments > MaxSegmentizePoints {
		return nil, errors.Newf(
			"attempting to segmentize into too many coordinates; need %v points between %v and %v, max %d",
			segments, a, b, MaxSegmentizePoints)
	}
	n := int(segments)
	ret := make([]s2.LatLng, 0, n)
	ret = append(ret, a)
	for i := 1; i < n; i++ {
		r := l.Position(length * float64(i) / segments)
		ret = append(ret, s2.LatLngFromDegrees(r.Lat2, r.Lon2))
	}
	return ret, nil
}
