package geodesic

// Mask selects the quantities a geodesic calculation computes. Output bits
// are combined with bitwise OR. A line built with a Mask can only report
// the outputs that were requested when it was built; anything else comes
// back as NaN.
type Mask uint32

// Series needed by each output. These occupy the low bits of a Mask.
const (
	capNone Mask = 0
	capC1   Mask = 1 << 0
	capC1p  Mask = 1 << 1
	capC2   Mask = 1 << 2
	capC3   Mask = 1 << 3
	capC4   Mask = 1 << 4
	capAll  Mask = 0x1f

	outAll  Mask = 0x7f80
	outMask Mask = 0xff80 // outAll plus LongUnroll
)

const (
	// Empty requests nothing beyond the arc length.
	Empty Mask = 0
	// Latitude of point 2.
	Latitude Mask = 1<<7 | capNone
	// Longitude of point 2.
	Longitude Mask = 1<<8 | capC3
	// Azimuth at both points.
	Azimuth Mask = 1<<9 | capNone
	// Distance s12.
	Distance Mask = 1<<10 | capC1
	// Standard is Latitude, Longitude, Azimuth and Distance.
	Standard Mask = Latitude | Longitude | Azimuth | Distance
	// DistanceIn allows the distance to be given as input to a Line.
	DistanceIn Mask = 1<<11 | capC1 | capC1p
	// ReducedLength m12.
	ReducedLength Mask = 1<<12 | capC1 | capC2
	// GeodesicScale M12 and M21.
	GeodesicScale Mask = 1<<13 | capC1 | capC2
	// Area S12 between the geodesic and the equator.
	Area Mask = 1<<14 | capC4
	// LongUnroll reports longitudes unrolled instead of reduced to
	// (-180, 180], so that lon2 - lon1 is the signed distance travelled
	// east.
	LongUnroll Mask = 1 << 15
	// All outputs except LongUnroll.
	All Mask = outAll | capAll
)

// Has reports whether every output in other is present in m.
func (m Mask) Has(other Mask) bool {
	other &= outAll
	return m&other == other
}

func (m Mask) out() Mask {
	return m & outMask
}
