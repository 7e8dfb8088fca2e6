package orrery

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/planetposition"
)

// VSOP87Ephemeris provides heliocentric positions from the VSOP87B series (J2000 ecliptic).
// The whole files are loaded at creation, which requires the VSOP87 data directory.
type VSOP87Ephemeris struct {
	earth, mars *planetposition.V87Planet
}

// NewVSOP87Ephemeris loads the Earth and Mars VSOP87B series from the provided directory.
func NewVSOP87Ephemeris(dir string) (*VSOP87Ephemeris, error) {
	v := &VSOP87Ephemeris{}
	for _, b := range []Body{Earth, Mars} {
		var vsopPosition int
		switch b {
		case Earth:
			vsopPosition = 3
		case Mars:
			vsopPosition = 4
		}
		planet, err := planetposition.LoadPlanetPath(vsopPosition-1, dir)
		if err != nil {
			return nil, fmt.Errorf("could not load planet number %d: %w", vsopPosition, err)
		}
		if b == Earth {
			v.earth = planet
		} else {
			v.mars = planet
		}
	}
	return v, nil
}

// HeliocentricPosition implements the Ephemeris interface.
func (v *VSOP87Ephemeris) HeliocentricPosition(b Body, epoch float64) ([]float64, error) {
	var pp *planetposition.V87Planet
	switch b {
	case Sun:
		return []float64{0, 0, 0}, nil
	case Earth:
		pp = v.earth
	case Mars:
		pp = v.mars
	default:
		return nil, fmt.Errorf("unknown object %s: %w", b, ErrInvalidParameter)
	}
	l, β, r := pp.Position2000(base.J2000 + epoch)
	// Get the Cartesian coordinates from L,B,R.
	sB, cB := math.Sincos(β.Rad())
	sL, cL := math.Sincos(l.Rad())
	return []float64{r * cB * cL, r * cB * sL, r * sB}, nil
}
