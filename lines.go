package orrery

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// pivotRatio is the smallest acceptable |mzz| / max(|mxx|, |myy|) for SolveSymmetric3x3.
	pivotRatio = 1e-1
	// conditionε is the smallest acceptable ratio of extreme eigenvalues of the normal matrix.
	conditionε = 1e-10
)

// Line2D is a line in the ecliptic plane. A nil Point defines a line through the origin (the Sun).
type Line2D struct {
	Point     []float64
	Direction []float64
}

// SightLine is a ray from an anchor towards an observed target.
type SightLine struct {
	Anchor    []float64
	Direction []float64 // unit vector
}

// NewSightLine returns a sight line, normalizing the provided direction.
func NewSightLine(anchor, direction []float64) SightLine {
	if len(anchor) != 3 || len(direction) != 3 {
		panic("sight lines must be built from 3x1 vectors")
	}
	return SightLine{Anchor: anchor, Direction: Unit(direction)}
}

// Distance2 returns the squared perpendicular distance from p to the line.
func (l SightLine) Distance2(p []float64) float64 {
	d := sub(p, l.Anchor)
	floats.AddScaled(d, -dot(d, l.Direction), l.Direction)
	return dot(d, d)
}

// Sym3 holds the six independent entries of a symmetric 3x3 matrix.
type Sym3 struct {
	XX, XY, XZ, YY, YZ, ZZ float64
}

// Intersect2D returns the intersection of two lines of the ecliptic plane by solving
// c1·d1 − c2·d2 = p2 − p1.
// Nearly parallel lines return ErrDegenerateGeometry: callers are expected to have excluded
// them beforehand.
func Intersect2D(l1, l2 Line2D) ([]float64, error) {
	p1 := l1.Point
	if p1 == nil {
		p1 = []float64{0, 0}
	}
	p2 := l2.Point
	if p2 == nil {
		p2 = []float64{0, 0}
	}
	d1, d2 := l1.Direction, l2.Direction
	cr := cross2D(d1, d2)
	if math.Abs(cr) < zeroε*norm(d1)*norm(d2) || cr == 0 {
		return nil, fmt.Errorf("intersect2D: cross product of %.3e: %w", cr, ErrDegenerateGeometry)
	}
	Δ := []float64{p2[0] - p1[0], p2[1] - p1[1]}
	c1 := cross2D(Δ, d2) / cr
	return []float64{p1[0] + c1*d1[0], p1[1] + c1*d1[1]}, nil
}

// SolveSymmetric3x3 solves M·x = b for a symmetric M by Gaussian elimination without pivoting.
// The z unknown is eliminated first, so mzz must be the dominant (or comparably large) diagonal
// entry: this holds for sight lines lying close to the ecliptic. An ErrIllConditioned error is
// returned when it does not, or when the reduced system is singular.
func SolveSymmetric3x3(m Sym3, b []float64) ([]float64, error) {
	if len(b) != 3 {
		panic("right hand side must be a 3x1 vector")
	}
	maxXY := math.Max(math.Abs(m.XX), math.Abs(m.YY))
	if math.Abs(m.ZZ) < zeroε || math.Abs(m.ZZ) < pivotRatio*maxXY {
		return nil, fmt.Errorf("mzz=%.3e against max(mxx, myy)=%.3e: %w", m.ZZ, maxXY, ErrIllConditioned)
	}
	a11 := m.XX - m.XZ*m.XZ/m.ZZ
	a12 := m.XY - m.XZ*m.YZ/m.ZZ
	a22 := m.YY - m.YZ*m.YZ/m.ZZ
	r1 := b[0] - m.XZ*b[2]/m.ZZ
	r2 := b[1] - m.YZ*b[2]/m.ZZ
	det := a11*a22 - a12*a12
	if scale := math.Abs(a11*a22) + a12*a12; scale == 0 || math.Abs(det) < zeroε*scale {
		return nil, fmt.Errorf("reduced determinant %.3e: %w", det, ErrIllConditioned)
	}
	x := (r1*a22 - a12*r2) / det
	y := (a11*r2 - a12*r1) / det
	z := (b[2] - m.XZ*x - m.YZ*y) / m.ZZ
	return []float64{x, y, z}, nil
}

// ClosestPointToLines returns the point minimizing the sum of squared perpendicular distances
// to all lines, and that sum.
// If angular is set, one reweighting pass is performed where each line contributes with a weight
// of 1/d², d being the distance from its anchor to the first solution. This single pass only
// approximates the minimum angular deviation; it is not iterated to convergence.
func ClosestPointToLines(lines []SightLine, angular bool) (point []float64, rss float64, err error) {
	if len(lines) < 2 {
		err = fmt.Errorf("%d sight line(s): %w", len(lines), ErrInsufficientData)
		return
	}
	if point, err = solveLines(lines, nil); err != nil {
		return
	}
	if angular {
		w := make([]float64, len(lines))
		for k, l := range lines {
			w[k] = 1 / math.Max(dot(sub(point, l.Anchor), sub(point, l.Anchor)), zeroε)
		}
		if point, err = solveLines(lines, w); err != nil {
			return
		}
	}
	for _, l := range lines {
		rss += l.Distance2(point)
	}
	return
}

// solveLines builds and solves the normal equations Σ w(I − e·eᵗ)·x = Σ w(I − e·eᵗ)·a.
func solveLines(lines []SightLine, w []float64) ([]float64, error) {
	eye := mat.NewDiagDense(3, []float64{1, 1, 1})
	m := mat.NewSymDense(3, nil)
	b := make([]float64, 3)
	for k, l := range lines {
		wk := 1.0
		if w != nil {
			wk = w[k]
		}
		var proj mat.SymDense
		proj.SymRankOne(eye, -1, mat.NewVecDense(3, l.Direction))
		var pa mat.VecDense
		pa.MulVec(&proj, mat.NewVecDense(3, l.Anchor))
		floats.AddScaled(b, wk, pa.RawVector().Data)
		proj.ScaleSym(wk, &proj)
		m.AddSym(m, &proj)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(m, false); !ok {
		return nil, fmt.Errorf("eigen decomposition failed: %w", ErrDegenerateGeometry)
	}
	λ := eig.Values(nil) // ascending
	if λ[2] <= 0 || λ[0]/λ[2] < conditionε {
		return nil, fmt.Errorf("eigenvalue ratio %.3e: %w", λ[0]/λ[2], ErrDegenerateGeometry)
	}
	return SolveSymmetric3x3(Sym3{m.At(0, 0), m.At(0, 1), m.At(0, 2), m.At(1, 1), m.At(1, 2), m.At(2, 2)}, b)
}
