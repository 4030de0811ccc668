package spheroid

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"
)

// SegmentizeLineString returns a copy of ls in which no edge is longer than
// maxSegmentLength (meters). Each edge is cut as by Segmentize. Coordinates
// are read as X = longitude and Y = latitude (degrees); any other ordinates
// are dropped and the result has the XY layout.
func (s *Spheroid) SegmentizeLineString(ls *geom.LineString, maxSegmentLength float64) (*geom.LineString, error) {
	n := ls.NumCoords()
	if n < 2 {
		flat := make([]float64, 0, 2*n)
		for i := 0; i < n; i++ {
			flat = append(flat, ls.Coord(i).X(), ls.Coord(i).Y())
		}
		return geom.NewLineStringFlat(geom.XY, flat), nil
	}
	flat := make([]float64, 0, 2*n)
	for i := 1; i < n; i++ {
		a, b := ls.Coord(i-1), ls.Coord(i)
		pts, err := s.Segmentize(
			s2.LatLngFromDegrees(a.Y(), a.X()),
			s2.LatLngFromDegrees(b.Y(), b.X()),
			maxSegmentLength,
		)
		if err != nil {
			return nil, errors.Wrapf(err, "segmentizing edge %d", i-1)
		}
		// keep the input vertex exactly
		flat = append(flat, a.X(), a.Y())
		for _, p := range pts[1:] {
			flat = append(flat, p.Lng.Degrees(), p.Lat.Degrees())
		}
	}
	last := ls.Coord(n - 1)
	flat = append(flat, last.X(), last.Y())
	return geom.NewLineStringFlat(geom.XY, flat), nil
}

// PolygonAreaAndPerimeter returns the area (square meters) and perimeter
// (meters) of p. The first ring is the shell and the rest are holes; ring
// orientation is ignored. Coordinates are X = longitude, Y = latitude.
func (s *Spheroid) PolygonAreaAndPerimeter(p *geom.Polygon) (area, perimeter float64) {
	for i := 0; i < p.NumLinearRings(); i++ {
		poly := s.e.NewPolygon(false)
		for _, c := range p.LinearRing(i).Coords() {
			poly.AddPoint(c.Y(), c.X())
		}
		_, ringPerimeter, ringArea := poly.Compute(false, true)
		perimeter += ringPerimeter
		if i == 0 {
			area += math.Abs(ringArea)
		} else {
			area -= math.Abs(ringArea)
		}
	}
	return area, perimeter
}
