package geodesic

import "math"

// Result holds the outcome of a direct, inverse or line position
// calculation. Angles are in degrees, lengths in meters and areas in
// square meters. Any quantity that was not requested, or that the line
// was not built to compute, is NaN.
type Result struct {
	Lat1, Lon1, Azi1 float64
	Lat2, Lon2, Azi2 float64

	// S12 is the distance from point 1 to point 2.
	S12 float64
	// A12 is the arc length on the auxiliary sphere. Values above 180
	// indicate a geodesic that is not a shortest path.
	A12 float64
	// ReducedLength is m12.
	ReducedLength float64
	// M12 and M21 are the geodesic scales.
	M12, M21 float64
	// Area is S12, the area between the geodesic and the equator.
	Area float64
}

func nanResult() Result {
	nan := math.NaN()
	return Result{
		Lat1: nan, Lon1: nan, Azi1: nan,
		Lat2: nan, Lon2: nan, Azi2: nan,
		S12: nan, A12: nan,
		ReducedLength: nan, M12: nan, M21: nan,
		Area: nan,
	}
}
