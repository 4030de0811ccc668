package geodesic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolygon(polyline bool, pts [][2]float64) *Polygon {
	p := wgs84.NewPolygon(polyline)
	for _, pt := range pts {
		p.AddPoint(pt[0], pt[1])
	}
	return p
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name      string
		pts       [][2]float64
		perimeter float64
		area      float64
	}{
		{"square", [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, 443770.9172, 12308778361.469},
		{"diamond", [][2]float64{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}, 627598.2732, 24619419146.886},
		{"octant", [][2]float64{{90, 0}, {0, 0}, {0, 90}}, 30022685.6300, 63758202715511.055},
		{"pole", [][2]float64{{89, 0.1}, {89, 90.1}, {89, -179.9}}, 539297.6671, 12476152839.0},
		{"antimeridian", [][2]float64{{0, 179.5}, {0, -179.5}, {1, -179.5}, {1, 179.5}}, 443770.9172, 12308778361.469},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPolygon(false, tt.pts)
			num, perimeter, area := p.Compute(false, true)
			assert.Equal(t, len(tt.pts), num)
			assert.InDelta(t, tt.perimeter, perimeter, 1e-4)
			assert.InDelta(t, tt.area, area, 1)

			_, _, area = p.Compute(true, true)
			assert.InDelta(t, -tt.area, area, 1)
		})
	}
}

func TestPolygonOrientation(t *testing.T) {
	area0 := wgs84.EllipsoidArea()
	p := newTestPolygon(false, [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})

	_, _, area := p.Compute(false, true)
	assert.InDelta(t, -12308778361.469, area, 1)

	// Unsigned, a clockwise polygon is the rest of the earth.
	_, _, area = p.Compute(false, false)
	assert.InDelta(t, area0-12308778361.469, area, 1)

	_, _, area = p.Compute(true, false)
	assert.InDelta(t, 12308778361.469, area, 1)
}

func TestPolyline(t *testing.T) {
	p := newTestPolygon(true, [][2]float64{{90, 0}, {0, 0}, {0, 90}})
	num, perimeter, area := p.Compute(false, true)
	assert.Equal(t, 3, num)
	assert.InDelta(t, 30022685.6300, perimeter, 1e-4)
	assert.True(t, math.IsNaN(area))

	p = newTestPolygon(true, [][2]float64{{0, 0}, {0, 1}, {1, 1}})
	num, perimeter, area = p.TestPoint(1, 0, false, true)
	assert.Equal(t, 4, num)
	assert.InDelta(t, 333196.5287, perimeter, 1e-4)
	assert.True(t, math.IsNaN(area))

	num, perimeter, area = p.TestEdge(-90, 1000, false, true)
	assert.Equal(t, 4, num)
	assert.InDelta(t, 222893.8794, perimeter, 1e-4)
	assert.True(t, math.IsNaN(area))

	p = wgs84.NewPolygon(true)
	num, perimeter, area = p.Compute(false, true)
	assert.Equal(t, 0, num)
	assert.Equal(t, 0.0, perimeter)
	assert.True(t, math.IsNaN(area))
}

func TestPolygonFewPoints(t *testing.T) {
	p := wgs84.NewPolygon(false)
	num, perimeter, area := p.Compute(false, true)
	assert.Equal(t, 0, num)
	assert.Equal(t, 0.0, perimeter)
	assert.Equal(t, 0.0, area)

	lat, lon := p.CurrentPoint()
	assert.True(t, math.IsNaN(lat))
	assert.True(t, math.IsNaN(lon))

	num, perimeter, area = p.TestPoint(1, 1, false, true)
	assert.Equal(t, 1, num)
	assert.Equal(t, 0.0, perimeter)
	assert.Equal(t, 0.0, area)

	// No start point to measure an edge from.
	num, perimeter, area = p.TestEdge(90, 1, false, true)
	assert.Equal(t, 0, num)
	assert.True(t, math.IsNaN(perimeter))
	assert.True(t, math.IsNaN(area))

	p.AddEdge(90, 1000)
	assert.Equal(t, 0, p.NumPoints())

	p.AddPoint(1, 1)
	num, perimeter, area = p.Compute(false, true)
	assert.Equal(t, 1, num)
	assert.Equal(t, 0.0, perimeter)
	assert.Equal(t, 0.0, area)

	num, perimeter, area = p.TestPoint(1, 2, false, true)
	assert.Equal(t, 2, num)
	assert.InDelta(t, 222605.2987, perimeter, 1e-4)
	assert.InDelta(t, 0, area, 1e-6)
}

func TestPolygonClear(t *testing.T) {
	p := newTestPolygon(false, [][2]float64{{0, 0}, {0, 1}, {1, 1}})
	require.Equal(t, 3, p.NumPoints())
	lat, lon := p.CurrentPoint()
	assert.Equal(t, 1.0, lat)
	assert.Equal(t, 1.0, lon)

	p.Clear()
	assert.Equal(t, 0, p.NumPoints())
	lat, lon = p.CurrentPoint()
	assert.True(t, math.IsNaN(lat))
	assert.True(t, math.IsNaN(lon))

	for _, pt := range [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}} {
		p.AddPoint(pt[0], pt[1])
	}
	_, perimeter, area := p.Compute(false, true)
	assert.InDelta(t, 443770.9172, perimeter, 1e-4)
	assert.InDelta(t, 12308778361.469, area, 1)
}

func TestPolygonTestPoint(t *testing.T) {
	p := newTestPolygon(false, [][2]float64{{0, 0}, {0, 1}, {1, 1}})
	num, perimeter, area := p.TestPoint(1, 0, false, true)
	assert.Equal(t, 4, num)
	assert.InDelta(t, 443770.9172, perimeter, 1e-4)
	assert.InDelta(t, 12308778361.469, area, 1)

	// TestPoint leaves the polygon alone.
	assert.Equal(t, 3, p.NumPoints())

	p.AddPoint(1, 0)
	num2, perimeter2, area2 := p.Compute(false, true)
	assert.Equal(t, num, num2)
	assert.InDelta(t, perimeter, perimeter2, 1e-8)
	assert.InDelta(t, area, area2, 1e-3)
}

func TestPolygonAddEdge(t *testing.T) {
	p := newTestPolygon(false, [][2]float64{{0, 0}, {0, 1}})
	num, perimeter, area := p.TestEdge(0, 111000, false, true)
	assert.Equal(t, 3, num)
	assert.InDelta(t, 379519.2665, perimeter, 1e-4)
	assert.InDelta(t, 6178546615.536, area, 1)
	assert.Equal(t, 2, p.NumPoints())

	p.AddEdge(0, 111000)
	num2, perimeter2, area2 := p.Compute(false, true)
	assert.Equal(t, num, num2)
	assert.InDelta(t, perimeter, perimeter2, 1e-8)
	assert.InDelta(t, area, area2, 1e-3)
}

func TestPolygonEdgesFromPrimeMeridian(t *testing.T) {
	// A start on lon = 0 followed by edges must not count a spurious
	// crossing of the prime meridian.
	p := newTestPolygon(false, [][2]float64{{0, 0}})
	p.AddEdge(90, 1000)
	_, perimeter, area := p.Compute(false, true)
	assert.InDelta(t, 2000, perimeter, 1e-8)
	assert.InDelta(t, 0, area, 1e-3)

	num, perimeter, area := p.TestEdge(0, 1000, false, true)
	assert.Equal(t, 3, num)
	assert.InDelta(t, 3414.2136, perimeter, 1e-4)
	assert.InDelta(t, 500000, area, 0.01)

	p.AddEdge(0, 1000)
	p.AddEdge(-90, 1000)
	num, perimeter, area = p.Compute(false, true)
	assert.Equal(t, 4, num)
	assert.InDelta(t, 4000, perimeter, 1e-4)
	assert.InDelta(t, 1e6, area, 0.01)
}

func TestPolygonAddEdgeAcrossAntimeridian(t *testing.T) {
	p := newTestPolygon(false, [][2]float64{{0, 179}})
	p.AddEdge(90, 3e5)
	_, lon := p.CurrentPoint()
	assert.InDelta(t, -178.30505414764144, lon, 1e-9)

	l := newTestPolygon(true, [][2]float64{{0, 179}})
	l.AddEdge(90, 3e5)
	_, llon := l.CurrentPoint()
	assert.InDelta(t, llon, lon, 1e-12)

	for i := 0; i < 400; i++ {
		p.AddEdge(90, 1e6)
		_, lon = p.CurrentPoint()
		require.True(t, lon > -180 && lon <= 180, "lon=%v", lon)
	}

	// A square built from edges across the antimeridian.
	p = newTestPolygon(false, [][2]float64{{0, 179.5}})
	p.AddEdge(90, 111319.49)
	_, lon = p.CurrentPoint()
	assert.InDelta(t, -179.5, lon, 1e-6)
	p.AddEdge(0, 110574)
	p.AddEdge(-90, 111319.49)
	num, perimeter, area := p.Compute(false, true)
	assert.Equal(t, 4, num)
	assert.InDelta(t, 443770.0251, perimeter, 1e-4)
	assert.InDelta(t, 12308722428.411, area, 1)
}

func TestTransit(t *testing.T) {
	assert.Equal(t, 1, transit(-1, 1))
	assert.Equal(t, 1, transit(-1, 0))
	assert.Equal(t, -1, transit(1, -1))
	assert.Equal(t, -1, transit(0, -1))
	assert.Equal(t, 0, transit(0, 1))
	assert.Equal(t, 0, transit(179, -179))
	assert.Equal(t, 0, transit(10, 20))

	// Only the parity of transitDirect matters.
	assert.Equal(t, 0, transitDirect(0, 1))
	assert.Equal(t, -1, transitDirect(-1, 1))
	assert.Equal(t, 1, transitDirect(1, -1))
	assert.Equal(t, 1, transitDirect(359, 361))
	assert.Equal(t, 1, transitDirect(10, 370))
	assert.Equal(t, 0, transitDirect(10, 730))
}

func TestAccumulator(t *testing.T) {
	var a Accumulator
	assert.Equal(t, 0.0, a.Sum(0))

	a.Add(1e20)
	a.Add(1)
	a.Add(-1e20)
	assert.Equal(t, 1.0, a.Sum(0))

	a.Set(0)
	for i := 0; i < 10; i++ {
		a.Add(0.1)
	}
	assert.Equal(t, 1.0, a.Sum(0))
	// The residual below the leading float64 is kept.
	assert.InDelta(t, 5.551115123125783e-17, a.Sum(-1), 1e-30)
	assert.Equal(t, 1.0, a.Sum(0))

	a.Set(7)
	a.Remainder(5)
	assert.Equal(t, 2.0, a.Sum(0))
	a.Negate()
	assert.Equal(t, -2.0, a.Sum(0))

	a.Set(370)
	a.Remainder(360)
	assert.Equal(t, 10.0, a.Sum(0))
}

func BenchmarkPolygon(b *testing.B) {
	pts := [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	p := wgs84.NewPolygon(false)
	for i := 0; i < b.N; i++ {
		p.Clear()
		for _, pt := range pts {
			p.AddPoint(pt[0], pt[1])
		}
		p.Compute(false, true)
	}
}
