package geomath

import "math"

// Auxiliary latitudes of an ellipsoid with flattening f. All angles are in
// degrees. Latitudes outside [-90, 90] give NaN.

// ParametricLatitude returns the parametric (reduced) latitude beta of the
// geodetic latitude phi: tan(beta) = (1-f) tan(phi).
func ParametricLatitude(phi, f float64) float64 {
	s, c := SinCosd(LatFix(phi))
	return Atan2d((1-f)*s, c)
}

// GeodeticFromParametric is the inverse of ParametricLatitude.
func GeodeticFromParametric(beta, f float64) float64 {
	s, c := SinCosd(LatFix(beta))
	return Atan2d(s, (1-f)*c)
}

// GeocentricLatitude returns the geocentric latitude theta of the geodetic
// latitude phi: tan(theta) = (1-f)^2 tan(phi).
func GeocentricLatitude(phi, f float64) float64 {
	s, c := SinCosd(LatFix(phi))
	return Atan2d(Sq(1-f)*s, c)
}

// GeodeticFromGeocentric is the inverse of GeocentricLatitude.
func GeodeticFromGeocentric(theta, f float64) float64 {
	s, c := SinCosd(LatFix(theta))
	return Atan2d(s, Sq(1-f)*c)
}

// signedEccentricity returns sqrt(|e^2|) carrying the sign of f.
func signedEccentricity(f float64) float64 {
	e2 := f * (2 - f)
	return math.Copysign(math.Sqrt(math.Abs(e2)), f)
}

// ConformalLatitude returns the conformal latitude chi of the geodetic
// latitude phi.
func ConformalLatitude(phi, f float64) float64 {
	phi = LatFix(phi)
	if math.Abs(phi) == qd {
		return phi
	}
	return Atand(Taupf(Tand(phi), signedEccentricity(f)))
}

// GeodeticFromConformal is the inverse of ConformalLatitude.
func GeodeticFromConformal(chi, f float64) float64 {
	chi = LatFix(chi)
	if math.Abs(chi) == qd {
		return chi
	}
	return Atand(Tauf(Tand(chi), signedEccentricity(f)))
}
