package orrery

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/precess"
	"github.com/soniakeys/unit"
)

// Tilt is the orientation of the Earth's orbital plane of date with respect to the reference
// ecliptic: the cosine and sine of its inclination, and the longitude of its ascending node.
type Tilt struct {
	Cos, Sin float64
	Node     float64 // radians
}

// Z returns the height above the reference ecliptic of the point (x, y) of the tilted plane.
// The tilt is small, so this is a linear correction of the planar solution.
func (t Tilt) Z(x, y float64) float64 {
	if t.Sin == 0 {
		return 0
	}
	sΩ, cΩ := math.Sincos(t.Node)
	return t.Sin / t.Cos * (y*cΩ - x*sΩ)
}

// EclipticOrientation provides the slowly varying orientation of the Earth's orbit.
type EclipticOrientation interface {
	Orientation(epoch float64) Tilt
}

// PrecessionOrientation follows the precession of the ecliptic of date in the J2000 ecliptic frame.
// It should be paired with ephemerides expressed in that frame, such as VSOP87B.
type PrecessionOrientation struct{}

// Orientation implements the EclipticOrientation interface.
// The pole of the ecliptic of date is carried to J2000: its colatitude is the tilt, and the
// ascending node is a quarter turn ahead of its longitude.
func (PrecessionOrientation) Orientation(epoch float64) Tilt {
	year := 2000 + epoch/base.JulianYear
	pole := &coord.Ecliptic{Lat: unit.AngleFromDeg(90), Lon: 0}
	var j2000 coord.Ecliptic
	precess.NewEclipticPrecessor(year, 2000).Precess(pole, &j2000)
	s, c := math.Sincos(math.Pi/2 - j2000.Lat.Rad())
	return Tilt{Cos: c, Sin: s, Node: j2000.Lon.Rad() + math.Pi/2}
}

// FlatOrientation keeps the Earth exactly in the reference ecliptic.
type FlatOrientation struct{}

// Orientation implements the EclipticOrientation interface.
func (FlatOrientation) Orientation(float64) Tilt {
	return Tilt{Cos: 1}
}
