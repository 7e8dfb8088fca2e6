package orrery

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/unit"
)

// Ephemeris provides the true heliocentric positions of the bodies.
// Positions are in AU in the J2000 ecliptic frame; epochs are in days since J2000.
type Ephemeris interface {
	HeliocentricPosition(b Body, epoch float64) ([]float64, error)
}

// DirectionSample is what an observer on Earth sees at a given epoch.
type DirectionSample struct {
	Epoch  float64
	Sun2D  []float64 // unit vector towards the Sun, projected on the ecliptic
	Mars2D []float64 // unit vector towards Mars, projected on the ecliptic
	Mars3D []float64 // unit vector towards Mars, including the ecliptic latitude
}

// Elongation returns the angle between the Sun and Mars as projected on the ecliptic, in radians.
func (d DirectionSample) Elongation() float64 {
	return math.Atan2(math.Abs(cross2D(d.Sun2D, d.Mars2D)), dot(d.Sun2D, d.Mars2D))
}

// String implements the Stringer interface.
func (d DirectionSample) String() string {
	return fmt.Sprintf("t=%.3f sun=%+v mars=%+v", d.Epoch, d.Sun2D, d.Mars3D)
}

// Direction returns the directions to the Sun and to Mars as seen from Earth at the provided epoch.
func Direction(eph Ephemeris, epoch float64) (DirectionSample, error) {
	e, err := eph.HeliocentricPosition(Earth, epoch)
	if err != nil {
		return DirectionSample{}, err
	}
	m, err := eph.HeliocentricPosition(Mars, epoch)
	if err != nil {
		return DirectionSample{}, err
	}
	sun := Unit([]float64{-e[0], -e[1], -e[2]})
	mars := Unit(sub(m, e))
	return DirectionSample{Epoch: epoch, Sun2D: planar(sun), Mars2D: planar(mars), Mars3D: mars}, nil
}

// EpochToTime converts an epoch (days since J2000) to a time.
func EpochToTime(epoch float64) time.Time {
	return julian.JDToTime(base.J2000 + epoch)
}

// TimeToEpoch converts a time to an epoch (days since J2000).
func TimeToEpoch(dt time.Time) float64 {
	return julian.TimeToJD(dt) - base.J2000
}

// Position returns the heliocentric position of a body on these elements, ignoring the rates.
func (e Elements) Position() []float64 {
	E := kepler.Kepler3(e.E, unit.AngleFromDeg(e.L-e.Peri))
	ν := kepler.True(E, e.E).Rad()
	r := kepler.Radius(E, e.E, e.A)
	sν, cν := math.Sincos(ν)
	return PQW2Ecliptic(e.I*deg2rad, (e.Peri-e.Node)*deg2rad, e.Node*deg2rad, []float64{r * cν, r * sν, 0})
}

// KeplerEphemeris computes positions from mean orbital elements and their secular rates.
// It also provides the orientation of the Earth's orbit of date.
type KeplerEphemeris struct {
	earth, mars Elements
}

// NewKeplerEphemeris returns a new ephemeris from the provided Earth and Mars elements.
func NewKeplerEphemeris(earth, mars Elements) *KeplerEphemeris {
	return &KeplerEphemeris{earth, mars}
}

// MeanKeplerEphemeris uses the JPL approximate elements with their rates.
func MeanKeplerEphemeris() *KeplerEphemeris {
	return NewKeplerEphemeris(EarthElements, MarsElements)
}

// FrozenKeplerEphemeris uses the JPL approximate elements without secular rates: both orbits are
// exactly periodic, which makes the reconstruction exact when the true periods are used.
func FrozenKeplerEphemeris() *KeplerEphemeris {
	return NewKeplerEphemeris(EarthElements.Frozen(), MarsElements.Frozen())
}

// Elements returns the elements of the provided body.
func (k *KeplerEphemeris) Elements(b Body) (Elements, error) {
	switch b {
	case Earth:
		return k.earth, nil
	case Mars:
		return k.mars, nil
	default:
		return Elements{}, fmt.Errorf("no elements for %s: %w", b, ErrInvalidParameter)
	}
}

// Period returns the sidereal period of the body in days.
func (k *KeplerEphemeris) Period(b Body) float64 {
	el, err := k.Elements(b)
	if err != nil {
		return math.Inf(1)
	}
	return el.Period()
}

// HeliocentricPosition implements the Ephemeris interface.
func (k *KeplerEphemeris) HeliocentricPosition(b Body, epoch float64) ([]float64, error) {
	if b == Sun {
		return []float64{0, 0, 0}, nil
	}
	el, err := k.Elements(b)
	if err != nil {
		return nil, err
	}
	return el.At(epoch / base.JulianCentury).Position(), nil
}

// Orientation implements the EclipticOrientation interface from the Earth's own elements.
func (k *KeplerEphemeris) Orientation(epoch float64) Tilt {
	el := k.earth.At(epoch / base.JulianCentury)
	s, c := math.Sincos(el.I * deg2rad)
	return Tilt{Cos: c, Sin: s, Node: el.Node * deg2rad}
}
