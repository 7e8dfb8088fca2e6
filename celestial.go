package orrery

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/meeus/v3/base"
)

// Body identifies one of the bodies of the orrery.
type Body uint8

const (
	// Sun is at the origin of the heliocentric frame.
	Sun Body = iota
	// Earth is where the observer stands.
	Earth
	// Mars is the observed planet.
	Mars
)

// String implements the Stringer interface.
func (b Body) String() string {
	switch b {
	case Sun:
		return "Sun"
	case Earth:
		return "Earth"
	case Mars:
		return "Mars"
	default:
		return fmt.Sprintf("Body(%d)", uint8(b))
	}
}

// BodyFromString returns the body from its name.
func BodyFromString(name string) (Body, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	default:
		return Sun, fmt.Errorf("undefined body '%s'", name)
	}
}

// Elements are mean orbital elements referred to the J2000 ecliptic and equinox.
// Distances are in AU, angles in degrees, and rates are per Julian century.
type Elements struct {
	A, E, I, L, Peri, Node                         float64
	ARate, ERate, IRate, LRate, PeriRate, NodeRate float64
}

// At returns the elements evaluated T Julian centuries after J2000 (rates are zeroed).
func (e Elements) At(T float64) Elements {
	return Elements{
		A:    e.A + e.ARate*T,
		E:    e.E + e.ERate*T,
		I:    e.I + e.IRate*T,
		L:    e.L + e.LRate*T,
		Peri: e.Peri + e.PeriRate*T,
		Node: e.Node + e.NodeRate*T,
	}
}

// Frozen returns these elements with all rates zeroed except the mean longitude, making the orbit
// exactly periodic.
func (e Elements) Frozen() Elements {
	return Elements{A: e.A, E: e.E, I: e.I, L: e.L, Peri: e.Peri, Node: e.Node, LRate: e.LRate}
}

// Period returns the sidereal period in days.
func (e Elements) Period() float64 {
	if e.LRate == 0 {
		return math.Inf(1)
	}
	return 360 / math.Abs(e.LRate) * base.JulianCentury
}

// String implements the Stringer interface.
func (e Elements) String() string {
	return fmt.Sprintf("a=%.6f AU e=%.6f i=%.4f° Ω=%.4f° ϖ=%.4f° L=%.4f°", e.A, e.E, e.I, e.Node, e.Peri, e.L)
}

/* Definitions */

// EarthElements are the mean elements of the Earth-Moon barycenter (JPL approximate positions, 1800-2050).
var EarthElements = Elements{
	A: 1.00000261, E: 0.01671123, I: -0.00001531, L: 100.46457166, Peri: 102.93768193, Node: 0,
	ARate: 0.00000562, ERate: -0.00004392, IRate: -0.01294668, LRate: 35999.37244981, PeriRate: 0.32327364, NodeRate: 0,
}

// MarsElements are the mean elements of Mars (JPL approximate positions, 1800-2050).
var MarsElements = Elements{
	A: 1.52371034, E: 0.09339410, I: 1.84969142, L: -4.55343205, Peri: -23.94362959, Node: 49.55953891,
	ARate: 0.00001847, ERate: 0.00007882, IRate: -0.00813131, LRate: 19140.30268499, PeriRate: 0.44441088, NodeRate: -0.29257343,
}
