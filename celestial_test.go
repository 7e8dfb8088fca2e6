package orrery

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestBodies(t *testing.T) {
	for _, b := range []Body{Sun, Earth, Mars} {
		got, err := BodyFromString(b.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != b {
			t.Fatalf("got %s expected %s", got, b)
		}
	}
	if _, err := BodyFromString("Vesta"); err == nil {
		t.Fatal("Vesta is not a body of the orrery")
	}
	if b, err := BodyFromString("MARS"); err != nil || b != Mars {
		t.Fatalf("got %s (%v)", b, err)
	}
}

func TestPeriods(t *testing.T) {
	if p := EarthElements.Period(); !scalar.EqualWithinAbs(p, 365.256, 1e-3) {
		t.Fatalf("Earth period %f", p)
	}
	if p := MarsElements.Period(); !scalar.EqualWithinAbs(p, 686.98, 1e-2) {
		t.Fatalf("Mars period %f", p)
	}
	frozen := MarsElements.Frozen()
	if frozen.NodeRate != 0 || frozen.IRate != 0 || frozen.Period() != MarsElements.Period() {
		t.Fatalf("frozen elements: %+v", frozen)
	}
	if p := (Elements{A: 1}).Period(); !math.IsInf(p, 1) {
		t.Fatalf("period without motion = %f", p)
	}
}

func TestElementsPosition(t *testing.T) {
	// At perihelion, on the ecliptic.
	el := Elements{A: 1, E: 0.1, L: 30, Peri: 30}
	s, c := math.Sincos(30 * deg2rad)
	if r := el.Position(); !vectorsEqual(r, []float64{0.9 * c, 0.9 * s, 0}) {
		t.Fatalf("got %+v", r)
	}
	// At aphelion.
	el.L = 210
	if r := el.Position(); !vectorsEqual(r, []float64{-1.1 * c, -1.1 * s, 0}) {
		t.Fatalf("got %+v", r)
	}
}

func TestKeplerEphemeris(t *testing.T) {
	eph := MeanKeplerEphemeris()
	sun, err := eph.HeliocentricPosition(Sun, 0)
	if err != nil || norm(sun) != 0 {
		t.Fatalf("sun=%+v (%v)", sun, err)
	}
	// Early January is close to the perihelion of the Earth.
	earth, _ := eph.HeliocentricPosition(Earth, 0)
	if r := norm(earth); r < 0.98 || r > 0.99 {
		t.Fatalf("Earth at %f AU", r)
	}
	mars, _ := eph.HeliocentricPosition(Mars, 0)
	if r := norm(mars); r < 1.38 || r > 1.67 {
		t.Fatalf("Mars at %f AU", r)
	}
	if β := math.Asin(mars[2] / norm(mars)); math.Abs(β) > 1.86*deg2rad {
		t.Fatalf("Mars latitude %f°", β/deg2rad)
	}
	// Frozen orbits repeat exactly.
	frozen := FrozenKeplerEphemeris()
	m0, _ := frozen.HeliocentricPosition(Mars, 100)
	m1, _ := frozen.HeliocentricPosition(Mars, 100+3*frozen.Period(Mars))
	if !vectorsEqualWithin(m0, m1, 1e-10) {
		t.Fatalf("%+v != %+v", m0, m1)
	}
	if _, err := eph.Elements(Sun); err == nil {
		t.Fatal("the Sun has no elements")
	}
}

func TestEpochs(t *testing.T) {
	if dt := EpochToTime(0); dt.Sub(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)).Abs() > time.Millisecond {
		t.Fatalf("J2000 is %s", dt)
	}
	dt := time.Date(2003, 8, 28, 9, 51, 0, 0, time.UTC)
	if e := TimeToEpoch(dt); !scalar.EqualWithinAbs(e, 1334.910417, 1e-6) {
		t.Fatalf("epoch=%f", e)
	}
	if back := EpochToTime(TimeToEpoch(dt)); back.Sub(dt).Abs() > time.Millisecond {
		t.Fatalf("%s != %s", back, dt)
	}
}
