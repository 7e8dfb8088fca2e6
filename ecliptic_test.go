package orrery

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestTiltZ(t *testing.T) {
	for _, c := range []struct{ i, Ω float64 }{{0.5, 30}, {1.85, 49.56}, {0.01, 174.8}, {3, 300}} {
		s, co := math.Sincos(c.i * deg2rad)
		tilt := Tilt{Cos: co, Sin: s, Node: c.Ω * deg2rad}
		for k := 0; k < 8; k++ {
			ν := float64(k) * math.Pi / 4
			r := PQW2Ecliptic(c.i*deg2rad, 0.7, c.Ω*deg2rad, []float64{math.Cos(ν), math.Sin(ν), 0})
			if z := tilt.Z(r[0], r[1]); !scalar.EqualWithinAbs(z, r[2], 1e-12) {
				t.Fatalf("i=%f Ω=%f ν=%f: z=%f expected %f", c.i, c.Ω, ν, z, r[2])
			}
		}
	}
	if z := (FlatOrientation{}).Orientation(1000).Z(1, 1); z != 0 {
		t.Fatalf("flat orientation has z=%f", z)
	}
}

func TestPrecessionOrientation(t *testing.T) {
	var o PrecessionOrientation
	if tilt := o.Orientation(0); math.Abs(tilt.Sin) > 1e-9 {
		t.Fatalf("ecliptic of J2000 is tilted by %f\"", math.Asin(tilt.Sin)/deg2rad*3600)
	}
	// The ecliptic moves by about 47" per century.
	tilt := o.Orientation(36525)
	if arcsec := math.Asin(tilt.Sin) / deg2rad * 3600; arcsec < 46.5 || arcsec > 47.5 {
		t.Fatalf("ecliptic of 2100 is tilted by %f\"", arcsec)
	}
	if !scalar.EqualWithinAbs(tilt.Cos*tilt.Cos+tilt.Sin*tilt.Sin, 1, 1e-12) {
		t.Fatalf("invalid tilt %+v", tilt)
	}
}

func TestKeplerOrientation(t *testing.T) {
	// The height of the Earth follows from its own orbital plane.
	eph := MeanKeplerEphemeris()
	for _, epoch := range []float64{-5000, 0, 1234.5, 7000} {
		r, _ := eph.HeliocentricPosition(Earth, epoch)
		if z := eph.Orientation(epoch).Z(r[0], r[1]); !scalar.EqualWithinAbs(z, r[2], 1e-12) {
			t.Fatalf("t=%f: z=%e expected %e", epoch, z, r[2])
		}
	}
}
