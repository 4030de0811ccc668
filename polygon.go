package geodesic

import (
	"math"

	"github.com/tidwall/geodesic/v2/geomath"
)

// Polygon struct for accumulating information about a geodesic polygon.
// Used for computing the perimeter and area of a polygon.
// This must be initialized from Ellipsoid.NewPolygon before use.
type Polygon struct {
	e        *Ellipsoid
	polyline bool
	mask     Mask
	area0    float64 // full ellipsoid area

	num       int
	crossings int
	areasum   Accumulator
	perimsum  Accumulator

	lat0, lon0 float64 // first point
	lat1, lon1 float64 // current point
}

// NewPolygon initializes a polygon.
// Param polyline for polyline instead of a polygon.
//
// If polyline is not set, then the sequence of vertices and edges added by
// Polygon.AddPoint() and Polygon.AddEdge() define a polygon and
// the perimeter and area are returned by Polygon.Compute().
// If polyline is set, then the vertices and edges define a polyline and
// only the perimeter is returned by Polygon.Compute().
//
// The area and perimeter are accumulated at two times the standard floating
// point precision to guard against the loss of accuracy with many-sided
// polygons.  At any point you can ask for the perimeter and area so far.
func (e *Ellipsoid) NewPolygon(polyline bool) *Polygon {
	p := &Polygon{
		e:        e,
		polyline: polyline,
		mask:     Latitude | Longitude | Distance,
		area0:    e.EllipsoidArea(),
	}
	if !polyline {
		p.mask |= Area | LongUnroll
	}
	p.Clear()
	return p
}

// Clear the polygon, allowing a new polygon to be started.
func (p *Polygon) Clear() {
	p.num = 0
	p.crossings = 0
	p.areasum.Set(0)
	p.perimsum.Set(0)
	nan := math.NaN()
	p.lat0, p.lon0, p.lat1, p.lon1 = nan, nan, nan, nan
}

// NumPoints returns the number of vertices added so far.
func (p *Polygon) NumPoints() int {
	return p.num
}

// CurrentPoint returns the most recently added vertex, or NaNs if the
// polygon is empty.
func (p *Polygon) CurrentPoint() (lat, lon float64) {
	return p.lat1, p.lon1
}

// AddPoint adds a point to the polygon or polyline.
//
// Param lat is the latitude of the point (degrees).
// Param lon is the longitude of the point (degrees).
func (p *Polygon) AddPoint(lat, lon float64) {
	if p.num == 0 {
		p.lat0, p.lat1 = lat, lat
		p.lon0, p.lon1 = lon, lon
	} else {
		r := p.e.GenInverse(p.lat1, p.lon1, lat, lon, p.mask)
		p.perimsum.Add(r.S12)
		if !p.polyline {
			p.areasum.Add(r.Area)
			p.crossings += transit(p.lon1, lon)
		}
		p.lat1, p.lon1 = lat, lon
	}
	p.num++
}

// AddEdge adds an edge to the polygon or polyline. It does nothing if no
// points have been added yet.
//
// Param azi is the azimuth at current point (degrees).
// Param s is the distance from current point to next point (meters).
func (p *Polygon) AddEdge(azi, s float64) {
	if p.num == 0 {
		return
	}
	r := p.e.GenDirect(p.lat1, p.lon1, azi, false, s, p.mask)
	p.perimsum.Add(s)
	if !p.polyline {
		p.areasum.Add(r.Area)
		p.crossings += transitDirect(p.lon1, r.Lon2)
	}
	p.lat1, p.lon1 = r.Lat2, geomath.AngNormalize(r.Lon2)
	p.num++
}

// Compute the results for a polygon
//
// Param reverse, if set then clockwise (instead of
// counter-clockwise) traversal counts as a positive area.
// Param sign, if set then return a signed result for the area if
// the polygon is traversed in the "wrong" direction instead of returning
// the area for the rest of the earth.
//
// Returns the number of points, the perimeter of the polygon or length of
// the polyline (meters) and the area of the polygon (meters-squared). The
// area of a polyline is NaN.
//
// Arbitrarily complex polygons are allowed. In the case of
// self-intersecting polygons the area is accumulated "algebraically", e.g.,
// the areas of the 2 loops in a figure-8 polygon will partially cancel.
// There's no need to "close" the polygon by repeating the first vertex.
//
// More points can be added to the polygon after this call.
func (p *Polygon) Compute(reverse, sign bool) (num int, perimeter, area float64) {
	if p.num < 2 {
		if p.polyline {
			return p.num, 0, math.NaN()
		}
		return p.num, 0, 0
	}
	r := p.e.GenInverse(p.lat1, p.lon1, p.lat0, p.lon0, p.mask)
	perimeter = p.perimsum.Sum(r.S12)
	if p.polyline {
		return p.num, perimeter, math.NaN()
	}
	tempsum := p.areasum
	tempsum.Add(r.Area)
	crossings := p.crossings + transit(p.lon1, p.lon0)
	area = reduceAreaSum(&tempsum, p.area0, crossings, reverse, sign)
	return p.num, perimeter, area
}

// TestPoint returns the results of Compute as if the point (lat, lon) had
// been added, without adding it.
func (p *Polygon) TestPoint(lat, lon float64, reverse, sign bool) (num int, perimeter, area float64) {
	if p.num == 0 {
		if p.polyline {
			return 1, 0, math.NaN()
		}
		return 1, 0, 0
	}
	num = p.num + 1
	perimeter = p.perimsum.Sum(0)
	tempsum := 0.0
	if !p.polyline {
		tempsum = p.areasum.Sum(0)
	}
	crossings := p.crossings
	legs := 2
	if p.polyline {
		legs = 1
	}
	for i := 0; i < legs; i++ {
		lat1, lon1, lat2, lon2 := p.lat1, p.lon1, lat, lon
		if i != 0 {
			lat1, lon1, lat2, lon2 = lat, lon, p.lat0, p.lon0
		}
		r := p.e.GenInverse(lat1, lon1, lat2, lon2, p.mask)
		perimeter += r.S12
		if !p.polyline {
			tempsum += r.Area
			crossings += transit(lon1, lon2)
		}
	}
	if p.polyline {
		return num, perimeter, math.NaN()
	}
	area = reduceArea(tempsum, p.area0, crossings, reverse, sign)
	return num, perimeter, area
}

// TestEdge returns the results of Compute as if an edge with azimuth azi
// (degrees) and length s (meters) had been added, without adding it.
func (p *Polygon) TestEdge(azi, s float64, reverse, sign bool) (num int, perimeter, area float64) {
	if p.num == 0 {
		return 0, math.NaN(), math.NaN()
	}
	num = p.num + 1
	perimeter = p.perimsum.Sum(0) + s
	if p.polyline {
		return num, perimeter, math.NaN()
	}
	tempsum := p.areasum.Sum(0)
	crossings := p.crossings
	d := p.e.GenDirect(p.lat1, p.lon1, azi, false, s, p.mask)
	tempsum += d.Area
	crossings += transitDirect(p.lon1, d.Lon2)
	r := p.e.GenInverse(d.Lat2, d.Lon2, p.lat0, p.lon0, p.mask)
	perimeter += r.S12
	tempsum += r.Area
	crossings += transit(d.Lon2, p.lon0)
	area = reduceArea(tempsum, p.area0, crossings, reverse, sign)
	return num, perimeter, area
}

// transit counts crossings of the prime meridian going from lon1 to lon2:
// +1 eastward, -1 westward, 0 otherwise.
func transit(lon1, lon2 float64) int {
	lon12, _ := geomath.AngDiff(lon1, lon2)
	lon1 = geomath.AngNormalize(lon1)
	lon2 = geomath.AngNormalize(lon2)
	switch {
	case lon12 > 0 && ((lon1 < 0 && lon2 >= 0) || (lon1 > 0 && lon2 == 0)):
		return 1
	case lon12 < 0 && lon1 >= 0 && lon2 < 0:
		return -1
	}
	return 0
}

// transitDirect is transit for unrolled longitudes. It gives the parity of
// floor(lon2/360) - floor(lon1/360), so that lon = 0 falls on the same side
// of the cut as it does in transit.
func transitDirect(lon1, lon2 float64) int {
	lon1 = geomath.Remainder(lon1, 720)
	lon2 = geomath.Remainder(lon2, 720)
	return westOfCut(lon2) - westOfCut(lon1)
}

func westOfCut(lon float64) int {
	if lon >= 0 && lon < 360 {
		return 0
	}
	return 1
}

// reduceAreaSum brings an accumulated area into [0, area0), or
// (-area0/2, area0/2] if sign is set.
func reduceAreaSum(area *Accumulator, area0 float64, crossings int, reverse, sign bool) float64 {
	area.Remainder(area0)
	if crossings&1 != 0 {
		if area.Sum(0) < 0 {
			area.Add(area0 / 2)
		} else {
			area.Add(-area0 / 2)
		}
	}
	// area is with the clockwise sense. If !reverse convert to
	// counter-clockwise convention.
	if !reverse {
		area.Negate()
	}
	// If sign put area in (-area0/2, area0/2], else put area in [0, area0)
	if sign {
		if area.Sum(0) > area0/2 {
			area.Add(-area0)
		} else if area.Sum(0) <= -area0/2 {
			area.Add(area0)
		}
	} else {
		if area.Sum(0) >= area0 {
			area.Add(-area0)
		} else if area.Sum(0) < 0 {
			area.Add(area0)
		}
	}
	return 0 + area.Sum(0)
}

// reduceArea is reduceAreaSum for a plain float64.
func reduceArea(area, area0 float64, crossings int, reverse, sign bool) float64 {
	area = geomath.Remainder(area, area0)
	if crossings&1 != 0 {
		if area < 0 {
			area += area0 / 2
		} else {
			area -= area0 / 2
		}
	}
	if !reverse {
		area *= -1
	}
	if sign {
		if area > area0/2 {
			area -= area0
		} else if area <= -area0/2 {
			area += area0
		}
	} else {
		if area >= area0 {
			area -= area0
		} else if area < 0 {
			area += area0
		}
	}
	return 0 + area
}
