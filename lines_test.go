package orrery

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func TestIntersect2D(t *testing.T) {
	for _, c := range []struct {
		name   string
		l1, l2 Line2D
		exp    []float64
	}{
		{"axes", Line2D{Direction: []float64{1, 0}}, Line2D{Point: []float64{3, -2}, Direction: []float64{0, 1}}, []float64{3, 0}},
		{"diagonals", Line2D{Point: []float64{0, 2}, Direction: []float64{1, -1}}, Line2D{Direction: []float64{1, 1}}, []float64{1, 1}},
		{"unnormalized", Line2D{Direction: []float64{-2, -4}}, Line2D{Point: []float64{5, 0}, Direction: []float64{-1, 2}}, []float64{2.5, 5}},
	} {
		p, err := Intersect2D(c.l1, c.l2)
		if err != nil {
			t.Fatalf("%s: %s", c.name, err)
		}
		if !vectorsEqual(p, c.exp) {
			t.Fatalf("%s: got %+v expected %+v", c.name, p, c.exp)
		}
	}
	_, err := Intersect2D(Line2D{Direction: []float64{1, 1}}, Line2D{Point: []float64{0, 1}, Direction: []float64{-2, -2}})
	if !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("parallel lines should be degenerate, got %v", err)
	}
}

func TestSolveSymmetric3x3(t *testing.T) {
	m := Sym3{XX: 2.5, XY: -0.3, XZ: 0.1, YY: 1.7, YZ: -0.2, ZZ: 3}
	b := []float64{1, -2, 0.5}
	x, err := SolveSymmetric3x3(m, b)
	if err != nil {
		t.Fatal(err)
	}
	// Compare with the Cholesky solution.
	sym := mat.NewSymDense(3, []float64{m.XX, m.XY, m.XZ, m.XY, m.YY, m.YZ, m.XZ, m.YZ, m.ZZ})
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		t.Fatal("matrix is not positive definite")
	}
	var exp mat.VecDense
	if err := chol.SolveVecTo(&exp, mat.NewVecDense(3, b)); err != nil {
		t.Fatal(err)
	}
	if !vectorsEqual(x, exp.RawVector().Data) {
		t.Fatalf("got %+v expected %+v", x, exp.RawVector().Data)
	}

	// mzz is not dominant.
	if _, err := SolveSymmetric3x3(Sym3{XX: 10, YY: 10, ZZ: 1e-3}, b); !errors.Is(err, ErrIllConditioned) {
		t.Fatalf("expected an ill-conditioned error, got %v", err)
	}
	// Singular once z is eliminated.
	if _, err := SolveSymmetric3x3(Sym3{XX: 1, XY: 1, YY: 1, ZZ: 1}, b); !errors.Is(err, ErrIllConditioned) {
		t.Fatalf("expected an ill-conditioned error, got %v", err)
	}
}

func TestClosestPointExact(t *testing.T) {
	P := []float64{1.2, -0.7, 0.3}
	var lines []SightLine
	for _, dir := range [][]float64{{1, 0, 0.1}, {0, 1, -0.2}, {1, 1, 0.05}} {
		e := Unit(dir)
		anchor := []float64{P[0] - 2*e[0], P[1] - 2*e[1], P[2] - 2*e[2]}
		lines = append(lines, NewSightLine(anchor, dir))
	}
	for _, angular := range []bool{false, true} {
		p, rss, err := ClosestPointToLines(lines, angular)
		if err != nil {
			t.Fatal(err)
		}
		if !vectorsEqual(p, P) {
			t.Fatalf("angular=%v: got %+v expected %+v", angular, p, P)
		}
		if !scalar.EqualWithinAbs(rss, 0, 1e-20) {
			t.Fatalf("angular=%v: rss=%e", angular, rss)
		}
	}
}

func TestClosestPointOffset(t *testing.T) {
	// Three lines of the plane z = 0.4, tangent to a circle of radius d around P.
	P := []float64{0.5, 1.5, 0.4}
	d := 0.01
	var lines []SightLine
	for k := 0; k < 3; k++ {
		s, c := math.Sincos(float64(k) * 2 * math.Pi / 3)
		e := []float64{c, s, 0}
		n := []float64{-s, c, 0}
		anchor := []float64{P[0] + d*n[0] + 3*e[0], P[1] + d*n[1] + 3*e[1], P[2]}
		lines = append(lines, NewSightLine(anchor, e))
	}
	for _, angular := range []bool{false, true} {
		p, rss, err := ClosestPointToLines(lines, angular)
		if err != nil {
			t.Fatal(err)
		}
		if !vectorsEqual(p, P) {
			t.Fatalf("angular=%v: got %+v expected %+v", angular, p, P)
		}
		if exp := float64(len(lines)) * d * d; !scalar.EqualWithinRel(rss, exp, 1e-9) {
			t.Fatalf("angular=%v: rss=%e expected %e", angular, rss, exp)
		}
	}
}

func TestClosestPointFailures(t *testing.T) {
	one := []SightLine{NewSightLine([]float64{0, 0, 0}, []float64{1, 0, 0})}
	if _, _, err := ClosestPointToLines(one, false); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected insufficient data, got %v", err)
	}
	parallel := []SightLine{
		NewSightLine([]float64{0, 0, 0}, []float64{1, 0, 0}),
		NewSightLine([]float64{0, 1, 0}, []float64{-1, 0, 0}),
		NewSightLine([]float64{0, 2, 0}, []float64{1, 0, 0}),
	}
	if _, _, err := ClosestPointToLines(parallel, false); !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("expected degenerate geometry, got %v", err)
	}
}

func TestSightLineDistance(t *testing.T) {
	l := NewSightLine([]float64{0, 0, 0}, []float64{0, 0, 5})
	if d2 := l.Distance2([]float64{3, 4, 100}); !scalar.EqualWithinAbs(d2, 25, 1e-9) {
		t.Fatalf("distance² = %f != 25", d2)
	}
	assertPanic(t, func() {
		NewSightLine([]float64{0, 0}, []float64{1, 0})
	})
}
